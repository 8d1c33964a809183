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
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dbexplore/dbexplore/internal/config"
	"github.com/dbexplore/dbexplore/internal/explorer"
)

const version = "1.0.0"

var (
	cfg    = config.Load()
	logger *zap.SugaredLogger

	verbose      bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "dbexplore",
	Short: "Inspect, query, and compare SQLite database files",
	Long: `dbexplore is a CLI tool for exploring SQLite databases: browse schemas,
run queries, compute column statistics, search across tables, export to
CSV/JSON/Markdown, compare two databases, and reclaim free space.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initLogger,
}

// initLogger builds the shared logger; verbosity is flag-gated.
func initLogger(cmd *cobra.Command, args []string) error {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zcfg.OutputPaths = []string{"stderr"}
	l, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l.Sugar()
	return nil
}

// openExplorer validates the path and constructs the explorer handle.
func openExplorer(path string) (*explorer.Explorer, error) {
	db, err := explorer.New(path)
	if err != nil {
		return nil, err
	}
	logger.Debugw("opened database", "path", db.Path())
	return db, nil
}

// validateFormat checks the --format flag against a command's choices.
func validateFormat(format string, choices ...string) error {
	for _, c := range choices {
		if format == c {
			return nil
		}
	}
	return fmt.Errorf("unsupported format: %s (choose one of %s)", format, strings.Join(choices, ", "))
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", cfg.Format, "Output format")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(sizeCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(vacuumCmd)
}
