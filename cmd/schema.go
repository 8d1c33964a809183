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

var schemaCmd = &cobra.Command{
	Use:     "schema <database> [table]",
	Short:   "Show table schemas, indexes, and foreign keys",
	Example: `  dbexplore schema mydata.db users`,
	Args:    cobra.RangeArgs(1, 2),
	RunE:    runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	if err := validateFormat(outputFormat, "text", "json", "md"); err != nil {
		return err
	}

	db, err := openExplorer(args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	table := ""
	if len(args) > 1 {
		table = args[1]
	}
	schemas, err := db.Schema(table)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		out, err := format.JSON(schemas)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}
	fmt.Println(schemaText(schemas, outputFormat == "md"))
	return nil
}
