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
package explorer

import (
	"fmt"
	"math"
)

// ColumnStat holds per-column statistics for one table. The numeric
// aggregates are present only when the aggregate query succeeded for the
// column's values; a text column full of numbers still gets them, an empty
// numeric column gets them as NULLs, and a failed attempt leaves them
// absent entirely.
type ColumnStat struct {
	Column    string   `json:"column"`
	Type      string   `json:"type"`
	TotalRows int64    `json:"total_rows"`
	NonNull   int64    `json:"non_null"`
	NullCount int64    `json:"null_count"`
	NullPct   string   `json:"null_pct"`
	Distinct  int64    `json:"distinct"`
	Min       *Value   `json:"min"`
	Max       *Value   `json:"max"`
	Avg       *float64 `json:"avg"`
	Sum       *Value   `json:"sum"`
}

// Stats computes per-column null/distinct counts and numeric aggregates
// for one table. Declared types are not consulted when deciding whether to
// attempt the numeric aggregates; the attempt itself decides.
func (e *Explorer) Stats(table string) ([]ColumnStat, error) {
	db, err := e.conn()
	if err != nil {
		return nil, err
	}
	if err := e.requireTable(table); err != nil {
		return nil, err
	}

	cols, err := e.tableColumns(table)
	if err != nil {
		return nil, err
	}

	var totalRows int64
	if err := db.QueryRow("SELECT COUNT(*) FROM " + quoteIdent(table)).Scan(&totalRows); err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	stats := make([]ColumnStat, 0, len(cols))
	for _, col := range cols {
		qcol := quoteIdent(col.Name)
		qtbl := quoteIdent(table)

		var nonNull, distinct int64
		countSQL := fmt.Sprintf(
			"SELECT COUNT(%s), COUNT(DISTINCT %s) FROM %s", qcol, qcol, qtbl)
		if err := db.QueryRow(countSQL).Scan(&nonNull, &distinct); err != nil {
			return nil, fmt.Errorf("failed to compute counts for column %s: %w", col.Name, err)
		}

		nullCount := totalRows - nonNull
		nullPct := "N/A"
		if totalRows > 0 {
			nullPct = fmt.Sprintf("%.1f%%", float64(nullCount)/float64(totalRows)*100)
		}

		stat := ColumnStat{
			Column:    col.Name,
			Type:      col.Type,
			TotalRows: totalRows,
			NonNull:   nonNull,
			NullCount: nullCount,
			NullPct:   nullPct,
			Distinct:  distinct,
		}

		// Best effort: a failure here means "not a numeric column", not
		// an error for the caller.
		aggSQL := fmt.Sprintf(
			"SELECT MIN(%s), MAX(%s), AVG(%s), SUM(%s) FROM %s",
			qcol, qcol, qcol, qcol, qtbl)
		var rawMin, rawMax, rawAvg, rawSum any
		if err := db.QueryRow(aggSQL).Scan(&rawMin, &rawMax, &rawAvg, &rawSum); err == nil {
			min := fromDriver(rawMin)
			max := fromDriver(rawMax)
			sum := fromDriver(rawSum)
			stat.Min = &min
			stat.Max = &max
			stat.Sum = &sum
			if avg := fromDriver(rawAvg); avg.Kind == KindFloat {
				rounded := math.Round(avg.Float*10000) / 10000
				stat.Avg = &rounded
			} else if avg.Kind == KindInt {
				v := float64(avg.Int)
				stat.Avg = &v
			}
		}

		stats = append(stats, stat)
	}
	return stats, nil
}
