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
	"github.com/dbexplore/dbexplore/internal/utils"
)

var (
	exportFormat string
	exportOutput string
	exportQuery  string
)

var exportCmd = &cobra.Command{
	Use:     "export <database> <table>",
	Short:   "Export table data to CSV, JSON, or Markdown",
	Example: `  dbexplore export mydata.db users --format json --output users.json`,
	Args:    cobra.ExactArgs(2),
	RunE:    runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := validateFormat(exportFormat, "csv", "json", "md"); err != nil {
		return err
	}

	db, err := openExplorer(args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	var result *explorer.QueryResult
	if exportQuery != "" {
		result, err = db.Query(exportQuery)
	} else {
		result, err = db.Dump(args[1])
	}
	if err != nil {
		return err
	}

	var content string
	switch exportFormat {
	case "json":
		content, err = format.JSON(format.Records(result.Headers, result.Rows))
	case "md":
		content = format.Markdown(result.Headers, result.Rows)
	default:
		content, err = format.CSV(result.Headers, result.Rows)
	}
	if err != nil {
		return err
	}

	if exportOutput != "" {
		if err := utils.WriteOutputFile(exportOutput, content); err != nil {
			return err
		}
		logger.Infow("export written", "path", exportOutput, "rows", result.RowCount)
		fmt.Printf("[OK] Exported to: %s\n", exportOutput)
		return nil
	}
	fmt.Print(content)
	if len(content) > 0 && content[len(content)-1] != '\n' {
		fmt.Println()
	}
	return nil
}

func init() {
	// Local --format shadows the persistent flag: export defaults to csv,
	// not text.
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, json, md)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: stdout)")
	exportCmd.Flags().StringVar(&exportQuery, "query", "", "SQL query to export instead of the full table")
}
