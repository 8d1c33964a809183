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

// Package format renders header/row result sets as aligned text tables,
// JSON, CSV, or Markdown. The four renderings are independent; each
// applies the value rules for its format directly.
package format

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dbexplore/dbexplore/internal/explorer"
)

// DefaultMaxWidth caps text-table column widths unless overridden.
const DefaultMaxWidth = 40

// Options control the text-table rendering.
type Options struct {
	// Title is printed above the table when non-empty.
	Title string
	// MaxWidth caps column widths; zero means DefaultMaxWidth.
	MaxWidth int
}

// cellText stringifies a value for the text-table and its derivatives:
// NULL marker, blob placeholder, 6 significant digits for floats, and
// newline escaping so a logical row stays on one display line.
func cellText(v explorer.Value) string {
	switch v.Kind {
	case explorer.KindNull:
		return "NULL"
	case explorer.KindBlob:
		return fmt.Sprintf("<BLOB %d bytes>", len(v.Blob))
	case explorer.KindFloat:
		return fmt.Sprintf("%.6g", v.Float)
	default:
		s := v.String()
		s = strings.ReplaceAll(s, "\n", `\n`)
		return strings.ReplaceAll(s, "\r", `\r`)
	}
}

// truncate shortens s to width runes, ending in an ellipsis. Widths too
// narrow to hold the ellipsis drop it and keep a plain prefix.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

func pad(s string, width int, right bool) string {
	n := width - len([]rune(s))
	if n <= 0 {
		return s
	}
	fill := strings.Repeat(" ", n)
	if right {
		return fill + s
	}
	return s + fill
}

// looksNumeric reports whether the pre-truncation string form of a cell
// parses as a floating-point number. Alignment is decided per cell, not
// per column.
func looksNumeric(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return false
	}
	_, err := strconv.ParseFloat(t, 64)
	return err == nil
}

// Table renders headers and rows as an aligned, bordered text table with
// a pluralized row-count footer. Column width is the longest of the
// header and every cell, capped at MaxWidth; cells past the cap are
// truncated with an ellipsis. Alignment is decided after widths, from
// each cell's original un-truncated string.
func Table(headers []string, rows [][]explorer.Value, opts Options) string {
	if len(headers) == 0 {
		return "(no columns)"
	}
	maxWidth := opts.MaxWidth
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}

	strRows := make([][]string, len(rows))
	for i, row := range rows {
		strRow := make([]string, len(row))
		for j, v := range row {
			strRow[j] = cellText(v)
		}
		strRows[i] = strRow
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	for _, row := range strRows {
		for i, cell := range row {
			if i < len(widths) {
				if l := len([]rune(cell)); l > widths[i] {
					widths[i] = l
				}
			}
		}
	}
	for i := range widths {
		if widths[i] > maxWidth {
			widths[i] = maxWidth
		}
	}

	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	sep := "+-" + strings.Join(seps, "-+-") + "-+"

	var lines []string
	if opts.Title != "" {
		lines = append(lines, "", opts.Title)
	}

	headerCells := make([]string, len(headers))
	for i, h := range headers {
		headerCells[i] = pad(truncate(h, widths[i]), widths[i], false)
	}
	lines = append(lines, sep, "| "+strings.Join(headerCells, " | ")+" |", sep)

	for _, row := range strRows {
		cells := make([]string, len(widths))
		for i, w := range widths {
			orig := ""
			present := i < len(row)
			if present {
				orig = row[i]
			}
			cell := truncate(orig, w)
			cells[i] = pad(cell, w, present && looksNumeric(orig))
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
	}
	lines = append(lines, sep)

	switch len(strRows) {
	case 1:
		lines = append(lines, "(1 row)")
	default:
		lines = append(lines, fmt.Sprintf("(%d rows)", len(strRows)))
	}
	return strings.Join(lines, "\n")
}

// JSON serializes any value as indented JSON. Cell values marshal through
// explorer.Value's rules: null stays null, numbers keep native precision,
// blobs become byte-count placeholders.
func JSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize to JSON: %w", err)
	}
	return string(data), nil
}

// CSV renders a header row followed by one row per record with RFC-4180
// quoting. NULL renders as an empty field, blobs as the placeholder.
func CSV(headers []string, rows [][]explorer.Value) (string, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = v.String()
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.String(), nil
}

// Markdown renders a pipe-delimited table with a --- separator row. Pipe
// characters in values are escaped so they cannot break cell boundaries;
// short rows are padded with empty cells up to header length.
func Markdown(headers []string, rows [][]explorer.Value) string {
	if len(headers) == 0 {
		return "(no columns)"
	}

	var lines []string
	lines = append(lines, "| "+strings.Join(headers, " | ")+" |")

	dashes := make([]string, len(headers))
	for i := range dashes {
		dashes[i] = "---"
	}
	lines = append(lines, "| "+strings.Join(dashes, " | ")+" |")

	for _, row := range rows {
		cells := make([]string, len(headers))
		for i := range headers {
			if i >= len(row) {
				cells[i] = ""
				continue
			}
			v := row[i]
			switch v.Kind {
			case explorer.KindNull:
				cells[i] = "NULL"
			case explorer.KindBlob:
				cells[i] = fmt.Sprintf("`<BLOB %d bytes>`", len(v.Blob))
			default:
				cells[i] = strings.ReplaceAll(v.String(), "|", `\|`)
			}
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
	}
	return strings.Join(lines, "\n")
}

// Records converts a result set into an array of name-to-value objects,
// the shape of a JSON record export.
func Records(headers []string, rows [][]explorer.Value) []map[string]explorer.Value {
	records := make([]map[string]explorer.Value, 0, len(rows))
	for _, row := range rows {
		record := make(map[string]explorer.Value, len(headers))
		for i, h := range headers {
			if i < len(row) {
				record[h] = row[i]
			} else {
				record[h] = explorer.Null()
			}
		}
		records = append(records, record)
	}
	return records
}
