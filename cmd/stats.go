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
)

var statsCmd = &cobra.Command{
	Use:     "stats <database> <table>",
	Short:   "Per-column statistics for a table",
	Example: `  dbexplore stats mydata.db users`,
	Args:    cobra.ExactArgs(2),
	RunE:    runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	if err := validateFormat(outputFormat, "text", "json", "md"); err != nil {
		return err
	}

	db, err := openExplorer(args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := db.Stats(args[1])
	if err != nil {
		return err
	}

	switch outputFormat {
	case "json":
		out, err := format.JSON(stats)
		if err != nil {
			return err
		}
		fmt.Println(out)
	case "md":
		headers, rows := statsResultSet(stats)
		fmt.Println(format.Markdown(headers, rows))
	default:
		headers, rows := statsResultSet(stats)
		title := "STATS: " + args[1]
		fmt.Println(format.Table(headers, rows, format.Options{Title: title, MaxWidth: 30}))
	}
	return nil
}
