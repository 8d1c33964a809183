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

import "sort"

// TypeDiff records a declared-type mismatch for a column present in both
// databases. Types compare verbatim, case-sensitively.
type TypeDiff struct {
	Column string `json:"column"`
	TypeA  string `json:"type_a"`
	TypeB  string `json:"type_b"`
}

// TableDiff records the differences for one common table. An entry exists
// only when the table actually differs.
type TableDiff struct {
	Table           string     `json:"table"`
	ColumnsOnlyInA  []string   `json:"columns_only_in_a"`
	ColumnsOnlyInB  []string   `json:"columns_only_in_b"`
	TypeDifferences []TypeDiff `json:"type_differences"`
	RowCountA       int64      `json:"row_count_a"`
	RowCountB       int64      `json:"row_count_b"`
	RowDiff         int64      `json:"row_diff"`
}

// SchemaDiff is the structured comparison of two databases.
type SchemaDiff struct {
	DatabaseA        string      `json:"database_a"`
	DatabaseB        string      `json:"database_b"`
	IdenticalSchema  bool        `json:"identical_schema"`
	TablesOnlyInA    []string    `json:"tables_only_in_a"`
	TablesOnlyInB    []string    `json:"tables_only_in_b"`
	CommonTables     int         `json:"common_tables"`
	TableDifferences []TableDiff `json:"table_differences"`
}

// sortedDifference returns the sorted names present in a but not b.
func sortedDifference(a, b map[string]struct{}) []string {
	out := []string{}
	for name := range a {
		if _, ok := b[name]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// sortedIntersection returns the sorted names present in both a and b.
func sortedIntersection(a, b map[string]struct{}) []string {
	out := []string{}
	for name := range a {
		if _, ok := b[name]; ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Diff compares this database's schema against the database at otherPath.
// The second connection lives only for the duration of the call and is
// released on every exit path.
func (e *Explorer) Diff(otherPath string) (*SchemaDiff, error) {
	other, err := New(otherPath)
	if err != nil {
		return nil, err
	}
	defer other.Close()
	return e.diffAgainst(other)
}

func (e *Explorer) diffAgainst(other *Explorer) (*SchemaDiff, error) {
	myTables, err := e.Tables()
	if err != nil {
		return nil, err
	}
	otherTables, err := other.Tables()
	if err != nil {
		return nil, err
	}

	myByName := make(map[string]TableInfo, len(myTables))
	mySet := make(map[string]struct{}, len(myTables))
	for _, t := range myTables {
		myByName[t.Name] = t
		mySet[t.Name] = struct{}{}
	}
	otherByName := make(map[string]TableInfo, len(otherTables))
	otherSet := make(map[string]struct{}, len(otherTables))
	for _, t := range otherTables {
		otherByName[t.Name] = t
		otherSet[t.Name] = struct{}{}
	}

	onlyInA := sortedDifference(mySet, otherSet)
	onlyInB := sortedDifference(otherSet, mySet)
	common := sortedIntersection(mySet, otherSet)

	tableDiffs := []TableDiff{}
	for _, tbl := range common {
		mySchemas, err := e.Schema(tbl)
		if err != nil {
			return nil, err
		}
		otherSchemas, err := other.Schema(tbl)
		if err != nil {
			return nil, err
		}

		myCols := make(map[string]Column)
		myColSet := make(map[string]struct{})
		for _, c := range mySchemas[0].Columns {
			myCols[c.Name] = c
			myColSet[c.Name] = struct{}{}
		}
		otherCols := make(map[string]Column)
		otherColSet := make(map[string]struct{})
		for _, c := range otherSchemas[0].Columns {
			otherCols[c.Name] = c
			otherColSet[c.Name] = struct{}{}
		}

		colsOnlyA := sortedDifference(myColSet, otherColSet)
		colsOnlyB := sortedDifference(otherColSet, myColSet)

		typeDiffs := []TypeDiff{}
		for _, col := range sortedIntersection(myColSet, otherColSet) {
			if myCols[col].Type != otherCols[col].Type {
				typeDiffs = append(typeDiffs, TypeDiff{
					Column: col,
					TypeA:  myCols[col].Type,
					TypeB:  otherCols[col].Type,
				})
			}
		}

		rowDiff := myByName[tbl].RowCount - otherByName[tbl].RowCount
		if len(colsOnlyA) > 0 || len(colsOnlyB) > 0 || len(typeDiffs) > 0 || rowDiff != 0 {
			tableDiffs = append(tableDiffs, TableDiff{
				Table:           tbl,
				ColumnsOnlyInA:  colsOnlyA,
				ColumnsOnlyInB:  colsOnlyB,
				TypeDifferences: typeDiffs,
				RowCountA:       myByName[tbl].RowCount,
				RowCountB:       otherByName[tbl].RowCount,
				RowDiff:         rowDiff,
			})
		}
	}

	return &SchemaDiff{
		DatabaseA:        e.path,
		DatabaseB:        other.path,
		IdenticalSchema:  len(onlyInA) == 0 && len(onlyInB) == 0 && len(tableDiffs) == 0,
		TablesOnlyInA:    onlyInA,
		TablesOnlyInB:    onlyInB,
		CommonTables:     len(common),
		TableDifferences: tableDiffs,
	}, nil
}
