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

var queryCmd = &cobra.Command{
	Use:     "query <database> <sql>",
	Short:   "Execute a SQL query",
	Example: `  dbexplore query mydata.db "SELECT * FROM users LIMIT 5"`,
	Args:    cobra.ExactArgs(2),
	RunE:    runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	if err := validateFormat(outputFormat, "text", "json", "md"); err != nil {
		return err
	}

	db, err := openExplorer(args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Debugw("executing query", "sql", args[1])
	result, err := db.Query(args[1])
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
		echo := result.SQL
		if r := []rune(echo); len(r) > 60 {
			echo = string(r[:60]) + "..."
		}
		title := fmt.Sprintf("QUERY: %s  (%d rows)", echo, result.RowCount)
		fmt.Println(format.Table(result.Headers, result.Rows, format.Options{Title: title, MaxWidth: cfg.MaxWidth}))
	}
	return nil
}
