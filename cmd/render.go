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

	"github.com/dbexplore/dbexplore/internal/explorer"
	"github.com/dbexplore/dbexplore/internal/format"
	"github.com/dbexplore/dbexplore/internal/utils"
)

const bannerWidth = 60

func banner(title string) []string {
	rule := strings.Repeat("=", bannerWidth)
	return []string{rule, title, rule}
}

func infoText(info *explorer.Info) string {
	lines := banner("DATABASE INFO")
	lines = append(lines,
		fmt.Sprintf("  Path:           %s", info.Path),
		fmt.Sprintf("  File Size:      %s (%d bytes)", info.FileSizeDisplay, info.FileSize),
		fmt.Sprintf("  Last Modified:  %s", info.Modified),
		fmt.Sprintf("  SQLite Version: %s", info.SQLiteVersion),
		fmt.Sprintf("  Encoding:       %s", info.Encoding),
		fmt.Sprintf("  Journal Mode:   %s", info.JournalMode),
		fmt.Sprintf("  Page Size:      %s", utils.FormatSize(info.PageSize)),
		fmt.Sprintf("  Page Count:     %d", info.PageCount),
		fmt.Sprintf("  Free Pages:     %d", info.FreelistCount),
		strings.Repeat("-", bannerWidth),
		fmt.Sprintf("  Tables:         %d", info.TableCount),
		fmt.Sprintf("  Indexes:        %d", info.IndexCount),
		fmt.Sprintf("  Views:          %d", info.ViewCount),
		fmt.Sprintf("  Triggers:       %d", info.TriggerCount),
		strings.Repeat("=", bannerWidth),
	)
	return strings.Join(lines, "\n")
}

// tablesResultSet builds the shared listing shape, with a trailing total
// row summing the known row counts.
func tablesResultSet(tables []explorer.TableInfo) ([]string, [][]explorer.Value) {
	headers := []string{"Table Name", "Rows", "Columns"}
	rows := make([][]explorer.Value, 0, len(tables)+1)
	var total int64
	for _, t := range tables {
		rows = append(rows, []explorer.Value{
			explorer.TextValue(t.Name),
			explorer.IntValue(t.RowCount),
			explorer.IntValue(int64(t.ColumnCount)),
		})
		if t.RowCount >= 0 {
			total += t.RowCount
		}
	}
	rows = append(rows, []explorer.Value{
		explorer.TextValue("--- TOTAL ---"),
		explorer.IntValue(total),
		explorer.TextValue(""),
	})
	return headers, rows
}

func schemaText(schemas []explorer.TableSchema, md bool) string {
	parts := make([]string, 0, len(schemas))
	for _, schema := range schemas {
		lines := banner("TABLE: " + schema.Table)

		headers := []string{"#", "Column", "Type", "NotNull", "Default", "PK"}
		rows := make([][]explorer.Value, 0, len(schema.Columns))
		for _, col := range schema.Columns {
			notNull, pk, dflt := "", "", ""
			if col.NotNull {
				notNull = "YES"
			}
			if col.PK {
				pk = "PK"
			}
			if col.Default != nil {
				dflt = *col.Default
			}
			rows = append(rows, []explorer.Value{
				explorer.IntValue(int64(col.CID)),
				explorer.TextValue(col.Name),
				explorer.TextValue(col.Type),
				explorer.TextValue(notNull),
				explorer.TextValue(dflt),
				explorer.TextValue(pk),
			})
		}
		if md {
			lines = append(lines, format.Markdown(headers, rows))
		} else {
			lines = append(lines, format.Table(headers, rows, format.Options{}))
		}

		if len(schema.Indexes) > 0 {
			lines = append(lines, "", "  Indexes:")
			for _, idx := range schema.Indexes {
				unique := ""
				if idx.Unique {
					unique = " (UNIQUE)"
				}
				lines = append(lines, fmt.Sprintf("    - %s%s: %s",
					idx.Name, unique, strings.Join(idx.Columns, ", ")))
			}
		}

		if len(schema.ForeignKeys) > 0 {
			lines = append(lines, "", "  Foreign Keys:")
			for _, fk := range schema.ForeignKeys {
				lines = append(lines, fmt.Sprintf("    - %s -> %s.%s", fk.From, fk.Table, fk.To))
			}
		}

		lines = append(lines, "", "  CREATE SQL:", "    "+schema.CreateSQL)
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

// statsResultSet flattens column statistics into the shared shape.
// Absent aggregates render as empty cells.
func statsResultSet(stats []explorer.ColumnStat) ([]string, [][]explorer.Value) {
	headers := []string{"Column", "Type", "Non-Null", "Null", "Null%", "Distinct", "Min", "Max", "Avg"}
	rows := make([][]explorer.Value, 0, len(stats))
	optional := func(v *explorer.Value) explorer.Value {
		if v == nil || v.IsNull() {
			return explorer.TextValue("")
		}
		return *v
	}
	for _, s := range stats {
		avg := explorer.TextValue("")
		if s.Avg != nil {
			avg = explorer.FloatValue(*s.Avg)
		}
		rows = append(rows, []explorer.Value{
			explorer.TextValue(s.Column),
			explorer.TextValue(s.Type),
			explorer.IntValue(s.NonNull),
			explorer.IntValue(s.NullCount),
			explorer.TextValue(s.NullPct),
			explorer.IntValue(s.Distinct),
			optional(s.Min),
			optional(s.Max),
			avg,
		})
	}
	return headers, rows
}

func searchText(term string, matches []explorer.Match) string {
	if len(matches) == 0 {
		return fmt.Sprintf("No matches found for %q", term)
	}

	lines := banner(fmt.Sprintf("SEARCH: %q  (%d matches)", term, len(matches)))
	for i, match := range matches {
		matched := make(map[string]bool, len(match.MatchedColumns))
		for _, col := range match.MatchedColumns {
			matched[col] = true
		}
		lines = append(lines, "", fmt.Sprintf("--- Match %d [%s] (columns: %s) ---",
			i+1, match.Table, strings.Join(match.MatchedColumns, ", ")))
		for _, col := range match.ColumnOrder() {
			v := match.Data[col]
			var display string
			switch {
			case v.IsNull():
				display = "NULL"
			case v.Kind == explorer.KindBlob:
				display = fmt.Sprintf("<BLOB %d bytes>", len(v.Blob))
			default:
				display = v.String()
				if r := []rune(display); len(r) > 80 {
					display = string(r[:77]) + "..."
				}
			}
			marker := ""
			if matched[col] {
				marker = " <<"
			}
			lines = append(lines, fmt.Sprintf("  %s: %s%s", col, display, marker))
		}
	}

	plural := "es"
	if len(matches) == 1 {
		plural = ""
	}
	lines = append(lines, "", fmt.Sprintf("(%d match%s)", len(matches), plural))
	return strings.Join(lines, "\n")
}

func sizeText(report *explorer.SizeReport) string {
	lines := banner("SIZE ANALYSIS")
	lines = append(lines,
		fmt.Sprintf("  File Size:   %s", report.FileSizeDisplay),
		fmt.Sprintf("  Used Space:  %s (%d pages)", report.UsedSpaceDisplay, report.UsedPages),
		fmt.Sprintf("  Free Space:  %s (%d pages, %s)", report.FreeSpaceDisplay, report.FreePages, report.FreePct),
		fmt.Sprintf("  Page Size:   %s", utils.FormatSize(report.PageSize)),
		strings.Repeat("-", bannerWidth),
	)

	if len(report.Tables) > 0 {
		headers := []string{"Table", "Rows", "Columns", "Est. Data Size"}
		rows := make([][]explorer.Value, 0, len(report.Tables))
		for _, t := range report.Tables {
			rows = append(rows, []explorer.Value{
				explorer.TextValue(t.Table),
				explorer.IntValue(t.Rows),
				explorer.IntValue(int64(t.Columns)),
				explorer.TextValue(t.EstimatedSizeDisplay),
			})
		}
		lines = append(lines, format.Table(headers, rows, format.Options{Title: "TABLE SIZES"}))
	} else {
		lines = append(lines, "  (no tables)")
	}

	if report.FreePages > 0 {
		lines = append(lines, "",
			fmt.Sprintf("  [!] %s of free space detected. Run 'vacuum' to reclaim.", report.FreeSpaceDisplay))
	}
	return strings.Join(lines, "\n")
}

func diffText(diff *explorer.SchemaDiff) string {
	lines := banner("SCHEMA DIFF")
	lines = append(lines,
		fmt.Sprintf("  A: %s", diff.DatabaseA),
		fmt.Sprintf("  B: %s", diff.DatabaseB),
		fmt.Sprintf("  Common tables: %d", diff.CommonTables),
		strings.Repeat("-", bannerWidth),
	)

	if diff.IdenticalSchema {
		lines = append(lines, "  [OK] Schemas are identical!")
		return strings.Join(lines, "\n")
	}

	if len(diff.TablesOnlyInA) > 0 {
		lines = append(lines, "", "  Tables only in A:")
		for _, t := range diff.TablesOnlyInA {
			lines = append(lines, "    + "+t)
		}
	}
	if len(diff.TablesOnlyInB) > 0 {
		lines = append(lines, "", "  Tables only in B:")
		for _, t := range diff.TablesOnlyInB {
			lines = append(lines, "    + "+t)
		}
	}

	if len(diff.TableDifferences) > 0 {
		lines = append(lines, "", "  Table Differences:")
		for _, td := range diff.TableDifferences {
			lines = append(lines, "    Table: "+td.Table)
			if len(td.ColumnsOnlyInA) > 0 {
				lines = append(lines, "      Columns only in A: "+strings.Join(td.ColumnsOnlyInA, ", "))
			}
			if len(td.ColumnsOnlyInB) > 0 {
				lines = append(lines, "      Columns only in B: "+strings.Join(td.ColumnsOnlyInB, ", "))
			}
			for _, tdiff := range td.TypeDifferences {
				lines = append(lines, fmt.Sprintf("      Column '%s': %s (A) vs %s (B)",
					tdiff.Column, tdiff.TypeA, tdiff.TypeB))
			}
			if td.RowDiff != 0 {
				lines = append(lines, fmt.Sprintf("      Row count: %d (A) vs %d (B) [diff: %+d]",
					td.RowCountA, td.RowCountB, td.RowDiff))
			}
		}
	}

	lines = append(lines, strings.Repeat("=", bannerWidth))
	return strings.Join(lines, "\n")
}

func vacuumText(result *explorer.VacuumResult) string {
	lines := banner("VACUUM COMPLETE")
	lines = append(lines,
		fmt.Sprintf("  Before: %s", result.BeforeSizeDisplay),
		fmt.Sprintf("  After:  %s", result.AfterSizeDisplay),
		fmt.Sprintf("  Saved:  %s (%s)", result.SavedDisplay, result.SavedPct),
		strings.Repeat("=", bannerWidth),
	)
	return strings.Join(lines, "\n")
}
