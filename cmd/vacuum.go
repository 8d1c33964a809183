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

var vacuumConfirm bool

var vacuumCmd = &cobra.Command{
	Use:     "vacuum <database>",
	Short:   "Compact the database and reclaim free space",
	Example: `  dbexplore vacuum mydata.db --confirm`,
	Args:    cobra.ExactArgs(1),
	RunE:    runVacuum,
}

func runVacuum(cmd *cobra.Command, args []string) error {
	if err := validateFormat(outputFormat, "text", "json"); err != nil {
		return err
	}

	db, err := openExplorer(args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	if !vacuumConfirm {
		fmt.Println("[!] Vacuum modifies the database file.")
		fmt.Println("    Add --confirm to proceed.")
		fmt.Println("    Recommended: backup your database first.")
		return nil
	}

	logger.Infow("running vacuum", "path", db.Path())
	result, err := db.Vacuum()
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		out, err := format.JSON(result)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}
	fmt.Println(vacuumText(result))
	return nil
}

func init() {
	vacuumCmd.Flags().BoolVar(&vacuumConfirm, "confirm", false, "Required flag to actually vacuum")
}
