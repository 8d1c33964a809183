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

	"github.com/dbexplore/dbexplore/internal/explorer"
	"github.com/dbexplore/dbexplore/internal/format"
)

var (
	browseLimit   int
	browseOffset  int
	browseWhere   string
	browseOrderBy string
)

var browseCmd = &cobra.Command{
	Use:     "browse <database> <table>",
	Short:   "Browse table data with pagination",
	Example: `  dbexplore browse mydata.db users --limit 20 --where "age > 30"`,
	Args:    cobra.ExactArgs(2),
	RunE:    runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if err := validateFormat(outputFormat, "text", "json", "md"); err != nil {
		return err
	}

	db, err := openExplorer(args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := db.Browse(args[1], explorer.BrowseOptions{
		Limit:   browseLimit,
		Offset:  browseOffset,
		Where:   browseWhere,
		OrderBy: browseOrderBy,
	})
	if err != nil {
		return err
	}

	switch outputFormat {
	case "json":
		out, err := format.JSON(result)
		if err != nil {
			return err
		}
		fmt.Println(out)
	case "md":
		fmt.Println(format.Markdown(result.Headers, result.Rows))
	default:
		title := fmt.Sprintf("TABLE: %s  [%s]", result.Table, result.Showing)
		fmt.Println(format.Table(result.Headers, result.Rows, format.Options{Title: title, MaxWidth: cfg.MaxWidth}))
	}
	return nil
}

func init() {
	browseCmd.Flags().IntVar(&browseLimit, "limit", cfg.BrowseLimit, "Rows per page")
	browseCmd.Flags().IntVar(&browseOffset, "offset", 0, "Starting row offset")
	browseCmd.Flags().StringVar(&browseWhere, "where", "", "WHERE clause filter (without the WHERE keyword)")
	browseCmd.Flags().StringVar(&browseOrderBy, "order-by", "", "ORDER BY clause (without the ORDER BY keywords)")
}
