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
	"database/sql"
	"fmt"
)

// TableInfo is a catalog listing entry. RowCount is a point-in-time
// snapshot; -1 means the count query failed and the value is unknown.
type TableInfo struct {
	Name        string `json:"name"`
	RowCount    int64  `json:"row_count"`
	ColumnCount int    `json:"column_count"`
}

// Column describes one column of a table, as reported by the catalog.
type Column struct {
	CID     int     `json:"cid"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	NotNull bool    `json:"notnull"`
	Default *string `json:"default"`
	PK      bool    `json:"pk"`
}

// Index describes a table index and the columns it covers, in order.
type Index struct {
	Name    string   `json:"name"`
	Unique  bool     `json:"unique"`
	Columns []string `json:"columns"`
}

// ForeignKey describes one foreign key edge of a table.
type ForeignKey struct {
	ID    int    `json:"id"`
	Table string `json:"table"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// TableSchema is the full normalized description of one table. Values are
// produced fresh on each catalog read and never mutated.
type TableSchema struct {
	Table       string       `json:"table"`
	Columns     []Column     `json:"columns"`
	Indexes     []Index      `json:"indexes"`
	ForeignKeys []ForeignKey `json:"foreign_keys"`
	CreateSQL   string       `json:"create_sql"`
}

// tableNames lists user tables sorted by name, excluding the engine's
// internal sqlite_* tables.
func (e *Explorer) tableNames() ([]string, error) {
	db, err := e.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(
		"SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("error querying tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating table rows: %w", err)
	}
	return names, nil
}

// tableExists checks the catalog for a table with the given name.
func (e *Explorer) tableExists(name string) (bool, error) {
	db, err := e.conn()
	if err != nil {
		return false, err
	}
	var found string
	err = db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking table existence: %w", err)
	}
	return true, nil
}

// requireTable returns a NotFoundError naming the available tables when
// the given table does not exist.
func (e *Explorer) requireTable(name string) error {
	ok, err := e.tableExists(name)
	if err != nil {
		return err
	}
	if !ok {
		available, lerr := e.tableNames()
		if lerr != nil {
			available = nil
		}
		return &NotFoundError{Table: name, Available: available}
	}
	return nil
}

// Tables lists all user tables with row and column counts. Row count
// failures degrade to -1 rather than failing the listing; counts are
// advisory.
func (e *Explorer) Tables() ([]TableInfo, error) {
	db, err := e.conn()
	if err != nil {
		return nil, err
	}
	names, err := e.tableNames()
	if err != nil {
		return nil, err
	}

	tables := make([]TableInfo, 0, len(names))
	for _, name := range names {
		var rowCount int64 = -1
		if err := db.QueryRow("SELECT COUNT(*) FROM " + quoteIdent(name)).Scan(&rowCount); err != nil {
			rowCount = -1
		}
		cols, err := e.tableColumns(name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, TableInfo{
			Name:        name,
			RowCount:    rowCount,
			ColumnCount: len(cols),
		})
	}
	return tables, nil
}

// tableColumns reads PRAGMA table_info for one table. An absent declared
// type defaults to ANY.
func (e *Explorer) tableColumns(table string) ([]Column, error) {
	db, err := e.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query("PRAGMA table_info(" + quoteIdent(table) + ")")
	if err != nil {
		return nil, fmt.Errorf("error reading columns for table %s: %w", table, err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   sql.NullString
			notnull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("error scanning column info: %w", err)
		}
		col := Column{
			CID:     cid,
			Name:    name,
			Type:    "ANY",
			NotNull: notnull != 0,
			PK:      pk != 0,
		}
		if ctype.Valid && ctype.String != "" {
			col.Type = ctype.String
		}
		if dflt.Valid {
			v := dflt.String
			col.Default = &v
		}
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column rows: %w", err)
	}
	return cols, nil
}

// tableIndexes reads PRAGMA index_list / index_info for one table.
func (e *Explorer) tableIndexes(table string) ([]Index, error) {
	db, err := e.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query("PRAGMA index_list(" + quoteIdent(table) + ")")
	if err != nil {
		return nil, fmt.Errorf("error reading indexes for table %s: %w", table, err)
	}

	type indexEntry struct {
		name   string
		unique bool
	}
	var entries []indexEntry
	for rows.Next() {
		var (
			seq     int
			name    string
			unique  int
			origin  string
			partial int
		)
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			rows.Close()
			return nil, fmt.Errorf("error scanning index list: %w", err)
		}
		entries = append(entries, indexEntry{name: name, unique: unique != 0})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating index rows: %w", err)
	}
	rows.Close()

	var indexes []Index
	for _, entry := range entries {
		colRows, err := db.Query("PRAGMA index_info(" + quoteIdent(entry.name) + ")")
		if err != nil {
			return nil, fmt.Errorf("error reading index %s: %w", entry.name, err)
		}
		var columns []string
		for colRows.Next() {
			var (
				seqno int
				cid   int
				cname sql.NullString
			)
			if err := colRows.Scan(&seqno, &cid, &cname); err != nil {
				colRows.Close()
				return nil, fmt.Errorf("error scanning index info: %w", err)
			}
			if cname.Valid {
				columns = append(columns, cname.String)
			}
		}
		if err := colRows.Err(); err != nil {
			colRows.Close()
			return nil, fmt.Errorf("error iterating index columns: %w", err)
		}
		colRows.Close()
		indexes = append(indexes, Index{Name: entry.name, Unique: entry.unique, Columns: columns})
	}
	return indexes, nil
}

// tableForeignKeys reads PRAGMA foreign_key_list for one table.
func (e *Explorer) tableForeignKeys(table string) ([]ForeignKey, error) {
	db, err := e.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query("PRAGMA foreign_key_list(" + quoteIdent(table) + ")")
	if err != nil {
		return nil, fmt.Errorf("error reading foreign keys for table %s: %w", table, err)
	}
	defer rows.Close()

	var fks []ForeignKey
	for rows.Next() {
		var (
			id       int
			seq      int
			refTable string
			from     string
			to       sql.NullString
			onUpdate string
			onDelete string
			match    string
		)
		if err := rows.Scan(&id, &seq, &refTable, &from, &to, &onUpdate, &onDelete, &match); err != nil {
			return nil, fmt.Errorf("error scanning foreign key: %w", err)
		}
		fks = append(fks, ForeignKey{ID: id, Table: refTable, From: from, To: to.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foreign key rows: %w", err)
	}
	return fks, nil
}

// Schema returns the full schema for one table, or for every user table
// when name is empty.
func (e *Explorer) Schema(name string) ([]TableSchema, error) {
	db, err := e.conn()
	if err != nil {
		return nil, err
	}

	var names []string
	if name != "" {
		if err := e.requireTable(name); err != nil {
			return nil, err
		}
		names = []string{name}
	} else {
		names, err = e.tableNames()
		if err != nil {
			return nil, err
		}
	}

	schemas := make([]TableSchema, 0, len(names))
	for _, tbl := range names {
		cols, err := e.tableColumns(tbl)
		if err != nil {
			return nil, err
		}
		indexes, err := e.tableIndexes(tbl)
		if err != nil {
			return nil, err
		}
		fks, err := e.tableForeignKeys(tbl)
		if err != nil {
			return nil, err
		}
		var createSQL sql.NullString
		if err := db.QueryRow(
			"SELECT sql FROM sqlite_master WHERE type='table' AND name=?", tbl).Scan(&createSQL); err != nil {
			return nil, fmt.Errorf("error reading create statement for %s: %w", tbl, err)
		}
		schemas = append(schemas, TableSchema{
			Table:       tbl,
			Columns:     cols,
			Indexes:     indexes,
			ForeignKeys: fks,
			CreateSQL:   createSQL.String,
		})
	}
	return schemas, nil
}

// Dump materializes all rows of one table, for export.
func (e *Explorer) Dump(table string) (*QueryResult, error) {
	if err := e.requireTable(table); err != nil {
		return nil, err
	}
	return e.Query("SELECT * FROM " + quoteIdent(table))
}
