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

var infoCmd = &cobra.Command{
	Use:     "info <database>",
	Short:   "Database metadata and overview",
	Example: `  dbexplore info mydata.db`,
	Args:    cobra.ExactArgs(1),
	RunE:    runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	if err := validateFormat(outputFormat, "text", "json"); err != nil {
		return err
	}

	db, err := openExplorer(args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	info, err := db.Info()
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		out, err := format.JSON(info)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}
	fmt.Println(infoText(info))
	return nil
}
