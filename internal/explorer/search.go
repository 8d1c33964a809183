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
	"strings"
)

// Match is one row that contained the search term. MatchedColumns names
// the eligible columns whose value individually contained the term; Data
// is the full row keyed by column name.
type Match struct {
	Table          string           `json:"table"`
	MatchedColumns []string         `json:"matched_columns"`
	Data           map[string]Value `json:"data"`
	columnOrder    []string
}

// ColumnOrder returns the row's column names in table order, for display.
func (m *Match) ColumnOrder() []string { return m.columnOrder }

// textTypeNames are declared types treated as text-like verbatim.
var textTypeNames = map[string]bool{
	"":         true,
	"TEXT":     true,
	"VARCHAR":  true,
	"CHAR":     true,
	"CLOB":     true,
	"ANY":      true,
	"STRING":   true,
	"NVARCHAR": true,
}

// nonTextPrefixes are declared-type prefixes that exclude a column from
// search. Anything not matching either list is an unknown custom type and
// stays eligible.
var nonTextPrefixes = []string{"INT", "REAL", "FLOAT", "DOUBLE", "NUMERIC", "BLOB", "BOOLEAN"}

// isTextLike decides search eligibility from a declared type string.
func isTextLike(declaredType string) bool {
	t := strings.ToUpper(declaredType)
	if textTypeNames[t] {
		return true
	}
	for _, prefix := range nonTextPrefixes {
		if strings.HasPrefix(t, prefix) {
			return false
		}
	}
	return true
}

// Search scans text-like columns for a case-insensitive substring match.
// tables limits the scan (nil means every user table, in catalog order);
// limit caps the total matches across all tables combined. Tables whose
// scan fails are skipped.
func (e *Explorer) Search(term string, tables []string, limit int) ([]Match, error) {
	db, err := e.conn()
	if err != nil {
		return nil, err
	}

	searchTables := tables
	if len(searchTables) == 0 {
		searchTables, err = e.tableNames()
		if err != nil {
			return nil, err
		}
	}

	lowerTerm := strings.ToLower(term)
	matches := []Match{}
	remaining := limit

	for _, tbl := range searchTables {
		if remaining <= 0 {
			break
		}

		cols, err := e.tableColumns(tbl)
		if err != nil {
			continue
		}
		var allNames, textCols []string
		for _, col := range cols {
			allNames = append(allNames, col.Name)
			if isTextLike(col.Type) {
				textCols = append(textCols, col.Name)
			}
		}
		if len(textCols) == 0 {
			continue
		}

		conditions := make([]string, len(textCols))
		params := make([]any, len(textCols))
		for i, col := range textCols {
			conditions[i] = quoteIdent(col) + " LIKE ?"
			params[i] = "%" + term + "%"
		}
		query := fmt.Sprintf("SELECT * FROM %s WHERE %s LIMIT %d",
			quoteIdent(tbl), strings.Join(conditions, " OR "), remaining)

		rows, err := db.Query(query, params...)
		if err != nil {
			continue
		}
		for rows.Next() {
			vals, err := scanRow(rows, len(allNames))
			if err != nil {
				break
			}

			// The OR scan only proves some column matched; re-verify
			// locally to name the columns that did.
			byName := make(map[string]Value, len(allNames))
			for i, name := range allNames {
				byName[name] = vals[i]
			}
			var matched []string
			for _, col := range textCols {
				v := byName[col]
				if !v.IsNull() && strings.Contains(strings.ToLower(v.String()), lowerTerm) {
					matched = append(matched, col)
				}
			}

			matches = append(matches, Match{
				Table:          tbl,
				MatchedColumns: matched,
				Data:           byName,
				columnOrder:    allNames,
			})
			remaining--
			if remaining <= 0 {
				break
			}
		}
		rows.Close()
	}
	return matches, nil
}
