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
	"os"

	"github.com/dbexplore/dbexplore/internal/utils"
)

// TableSize is a per-table size estimate: the stringified length of one
// sampled row multiplied by the row count. Not exact, but cheap.
type TableSize struct {
	Table                string `json:"table"`
	Rows                 int64  `json:"rows"`
	Columns              int    `json:"columns"`
	EstimatedSize        int64  `json:"estimated_data_size"`
	EstimatedSizeDisplay string `json:"estimated_data_size_display"`
}

// SizeReport combines page accounting with per-table estimates.
type SizeReport struct {
	FileSize         int64       `json:"file_size"`
	FileSizeDisplay  string      `json:"file_size_display"`
	PageSize         int64       `json:"page_size"`
	PageCount        int64       `json:"page_count"`
	UsedPages        int64       `json:"used_pages"`
	FreePages        int64       `json:"free_pages"`
	UsedSpace        int64       `json:"used_space"`
	UsedSpaceDisplay string      `json:"used_space_display"`
	FreeSpace        int64       `json:"free_space"`
	FreeSpaceDisplay string      `json:"free_space_display"`
	FreePct          string      `json:"free_pct"`
	Tables           []TableSize `json:"tables"`
}

// Size analyzes database storage: used and free space from page
// accounting plus a size estimate per table. Tables whose sample query
// fails, or with no rows, report an estimate of 0 with an N/A display
// marker rather than being dropped.
func (e *Explorer) Size() (*SizeReport, error) {
	db, err := e.conn()
	if err != nil {
		return nil, err
	}

	fi, err := os.Stat(e.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}

	report := &SizeReport{
		FileSize:        fi.Size(),
		FileSizeDisplay: utils.FormatSize(fi.Size()),
	}
	pragmas := []struct {
		name string
		dst  *int64
	}{
		{"page_size", &report.PageSize},
		{"page_count", &report.PageCount},
		{"freelist_count", &report.FreePages},
	}
	for _, p := range pragmas {
		if err := db.QueryRow("PRAGMA " + p.name).Scan(p.dst); err != nil {
			return nil, fmt.Errorf("failed to read pragma %s: %w", p.name, err)
		}
	}

	report.UsedPages = report.PageCount - report.FreePages
	report.UsedSpace = report.UsedPages * report.PageSize
	report.FreeSpace = report.FreePages * report.PageSize
	report.UsedSpaceDisplay = utils.FormatSize(report.UsedSpace)
	report.FreeSpaceDisplay = utils.FormatSize(report.FreeSpace)
	report.FreePct = "0.0%"
	if report.PageCount > 0 {
		report.FreePct = fmt.Sprintf("%.1f%%", float64(report.FreePages)/float64(report.PageCount)*100)
	}

	tables, err := e.Tables()
	if err != nil {
		return nil, err
	}
	report.Tables = make([]TableSize, 0, len(tables))
	for _, tbl := range tables {
		entry := TableSize{
			Table:   tbl.Name,
			Rows:    tbl.RowCount,
			Columns: tbl.ColumnCount,
		}
		sample, err := e.sampleRowSize(tbl.Name)
		if err != nil {
			entry.EstimatedSizeDisplay = "N/A"
		} else if sample > 0 && tbl.RowCount > 0 {
			entry.EstimatedSize = sample * tbl.RowCount
			entry.EstimatedSizeDisplay = utils.FormatSize(entry.EstimatedSize)
		} else {
			entry.EstimatedSizeDisplay = "N/A"
		}
		report.Tables = append(report.Tables, entry)
	}
	return report, nil
}

// sampleRowSize sums the stringified lengths of the values of one sampled
// row. Returns 0 for an empty table.
func (e *Explorer) sampleRowSize(table string) (int64, error) {
	db, err := e.conn()
	if err != nil {
		return 0, err
	}
	rows, err := db.Query("SELECT * FROM " + quoteIdent(table) + " LIMIT 1")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return 0, err
	}
	if !rows.Next() {
		return 0, rows.Err()
	}
	vals, err := scanRow(rows, len(headers))
	if err != nil {
		return 0, err
	}

	var size int64
	for _, v := range vals {
		if v.Kind == KindBlob {
			size += int64(len(v.Blob))
			continue
		}
		size += int64(len(v.String()))
	}
	return size, nil
}
