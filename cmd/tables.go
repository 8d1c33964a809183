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

var tablesCmd = &cobra.Command{
	Use:     "tables <database>",
	Short:   "List all tables with row and column counts",
	Example: `  dbexplore tables mydata.db --format md`,
	Args:    cobra.ExactArgs(1),
	RunE:    runTables,
}

func runTables(cmd *cobra.Command, args []string) error {
	if err := validateFormat(outputFormat, "text", "json", "md"); err != nil {
		return err
	}

	db, err := openExplorer(args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	tables, err := db.Tables()
	if err != nil {
		return err
	}

	out, err := tablesOutput(tables, outputFormat)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// tablesOutput renders the listing. An empty database renders as a plain
// notice in every format except json.
func tablesOutput(tables []explorer.TableInfo, outFormat string) (string, error) {
	if outFormat == "json" {
		return format.JSON(tables)
	}
	if len(tables) == 0 {
		return "(no tables found)", nil
	}
	headers, rows := tablesResultSet(tables)
	if outFormat == "md" {
		return format.Markdown(headers, rows), nil
	}
	return format.Table(headers, rows, format.Options{Title: "TABLES"}), nil
}
