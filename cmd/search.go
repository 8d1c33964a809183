/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbexplore/dbexplore/internal/format"
	"github.com/dbexplore/dbexplore/internal/utils"
)

var (
	searchTables string
	searchLimit  int
)

var searchCmd = &cobra.Command{
	Use:     "search <database> <term>",
	Short:   "Search for a term across text columns in all tables",
	Example: `  dbexplore search mydata.db "admin" --tables users,sessions --limit 25`,
	Args:    cobra.ExactArgs(2),
	RunE:    runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validateFormat(outputFormat, "text", "json"); err != nil {
		return err
	}

	db, err := openExplorer(args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	term := args[1]
	tables := utils.SplitTablesFlag(searchTables)
	logger.Debugw("searching", "term", term, "tables", tables, "limit", searchLimit)

	matches, err := db.Search(term, tables, searchLimit)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		out, err := format.JSON(matches)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}
	fmt.Println(searchText(term, matches))
	return nil
}

func init() {
	searchCmd.Flags().StringVar(&searchTables, "tables", "", "Comma-separated table names to search (default: all)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", cfg.SearchLimit, "Maximum total matches across all tables")
}
