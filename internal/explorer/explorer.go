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

// Package explorer provides read-only inspection of SQLite database files:
// catalog introspection, column statistics, cross-table search, schema
// diffing and size analysis.
package explorer

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dbexplore/dbexplore/internal/utils"
)

// Explorer owns a single lazily-established read-only connection to one
// database file. Construct with New, release with Close. Close is
// idempotent and must run on every exit path.
type Explorer struct {
	path string
	db   *sql.DB
}

// New validates the database path and returns a ready-to-use Explorer.
// The connection itself is established on first use.
func New(path string) (*Explorer, error) {
	if path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found: %s", abs)
		}
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("path is not a file: %s", abs)
	}
	return &Explorer{path: abs}, nil
}

// newWithDB wires an Explorer to an already-open handle. Used by tests to
// substitute a mock connection.
func newWithDB(path string, db *sql.DB) *Explorer {
	return &Explorer{path: path, db: db}
}

// Path returns the resolved absolute path of the database file.
func (e *Explorer) Path() string { return e.path }

// conn returns the shared read-only connection, opening it on first use.
func (e *Explorer) conn() (*sql.DB, error) {
	if e.db != nil {
		return e.db, nil
	}
	dsn := "file:" + filepath.ToSlash(e.path) + "?mode=ro"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database %s: %w", e.path, err)
	}
	e.db = db
	return e.db, nil
}

// Close releases the connection. Safe to call multiple times.
func (e *Explorer) Close() error {
	if e.db == nil {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	return err
}

// quoteIdent quotes an identifier for embedding in SQL text, doubling any
// embedded quote characters.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Info is the database overview returned by Info.
type Info struct {
	Path            string `json:"path"`
	FileSize        int64  `json:"file_size"`
	FileSizeDisplay string `json:"file_size_display"`
	Modified        string `json:"modified"`
	SQLiteVersion   string `json:"sqlite_version"`
	PageSize        int64  `json:"page_size"`
	PageCount       int64  `json:"page_count"`
	FreelistCount   int64  `json:"freelist_count"`
	JournalMode     string `json:"journal_mode"`
	Encoding        string `json:"encoding"`
	TableCount      int64  `json:"table_count"`
	IndexCount      int64  `json:"index_count"`
	ViewCount       int64  `json:"view_count"`
	TriggerCount    int64  `json:"trigger_count"`
}

// Info collects file-level and catalog-level metadata for the database.
func (e *Explorer) Info() (*Info, error) {
	db, err := e.conn()
	if err != nil {
		return nil, err
	}

	fi, err := os.Stat(e.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}

	info := &Info{
		Path:            e.path,
		FileSize:        fi.Size(),
		FileSizeDisplay: utils.FormatSize(fi.Size()),
		Modified:        fi.ModTime().Format(time.RFC3339),
	}

	if err := db.QueryRow("SELECT sqlite_version()").Scan(&info.SQLiteVersion); err != nil {
		return nil, fmt.Errorf("failed to read sqlite version: %w", err)
	}
	pragmas := []struct {
		name string
		dst  any
	}{
		{"page_size", &info.PageSize},
		{"page_count", &info.PageCount},
		{"freelist_count", &info.FreelistCount},
		{"journal_mode", &info.JournalMode},
		{"encoding", &info.Encoding},
	}
	for _, p := range pragmas {
		if err := db.QueryRow("PRAGMA " + p.name).Scan(p.dst); err != nil {
			return nil, fmt.Errorf("failed to read pragma %s: %w", p.name, err)
		}
	}

	counts := []struct {
		query string
		dst   *int64
	}{
		{"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'", &info.TableCount},
		{"SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name NOT LIKE 'sqlite_%'", &info.IndexCount},
		{"SELECT COUNT(*) FROM sqlite_master WHERE type='view'", &info.ViewCount},
		{"SELECT COUNT(*) FROM sqlite_master WHERE type='trigger'", &info.TriggerCount},
	}
	for _, c := range counts {
		if err := db.QueryRow(c.query).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("failed to count catalog objects: %w", err)
		}
	}

	return info, nil
}

// QueryResult holds the outcome of an arbitrary read query.
type QueryResult struct {
	SQL      string    `json:"sql"`
	Headers  []string  `json:"headers"`
	Rows     [][]Value `json:"rows"`
	RowCount int       `json:"row_count"`
}

// Query executes a raw SQL statement and materializes the full result set.
func (e *Explorer) Query(query string) (*QueryResult, error) {
	db, err := e.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	result := &QueryResult{SQL: query, Headers: headers, Rows: [][]Value{}}
	for rows.Next() {
		vals, err := scanRow(rows, len(headers))
		if err != nil {
			return nil, err
		}
		result.Rows = append(result.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating result rows: %w", err)
	}
	result.RowCount = len(result.Rows)
	return result, nil
}

// BrowseOptions control pagination and filtering for Browse.
type BrowseOptions struct {
	Limit   int
	Offset  int
	Where   string
	OrderBy string
}

// BrowseResult is one page of table data.
type BrowseResult struct {
	Table     string    `json:"table"`
	Headers   []string  `json:"headers"`
	Rows      [][]Value `json:"rows"`
	TotalRows int64     `json:"total_rows"`
	Limit     int       `json:"limit"`
	Offset    int       `json:"offset"`
	Showing   string    `json:"showing"`
}

// Browse pages through a table's rows with optional filtering and ordering.
func (e *Explorer) Browse(table string, opts BrowseOptions) (*BrowseResult, error) {
	db, err := e.conn()
	if err != nil {
		return nil, err
	}
	if err := e.requireTable(table); err != nil {
		return nil, err
	}

	countSQL := "SELECT COUNT(*) FROM " + quoteIdent(table)
	if opts.Where != "" {
		countSQL += " WHERE " + opts.Where
	}
	var total int64
	if err := db.QueryRow(countSQL).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	querySQL := "SELECT * FROM " + quoteIdent(table)
	if opts.Where != "" {
		querySQL += " WHERE " + opts.Where
	}
	if opts.OrderBy != "" {
		querySQL += " ORDER BY " + opts.OrderBy
	}
	querySQL += fmt.Sprintf(" LIMIT %d OFFSET %d", opts.Limit, opts.Offset)

	page, err := e.Query(querySQL)
	if err != nil {
		return nil, err
	}

	from := 0
	if len(page.Rows) > 0 {
		from = opts.Offset + 1
	}
	return &BrowseResult{
		Table:     table,
		Headers:   page.Headers,
		Rows:      page.Rows,
		TotalRows: total,
		Limit:     opts.Limit,
		Offset:    opts.Offset,
		Showing:   fmt.Sprintf("%d-%d of %d", from, opts.Offset+len(page.Rows), total),
	}, nil
}

// VacuumResult reports the effect of a VACUUM run.
type VacuumResult struct {
	BeforeSize        int64  `json:"before_size"`
	BeforeSizeDisplay string `json:"before_size_display"`
	AfterSize         int64  `json:"after_size"`
	AfterSizeDisplay  string `json:"after_size_display"`
	Saved             int64  `json:"saved"`
	SavedDisplay      string `json:"saved_display"`
	SavedPct          string `json:"saved_pct"`
}

// Vacuum compacts the database file. The read-only handle is released
// first; the writable connection exists only for the duration of the call.
func (e *Explorer) Vacuum() (*VacuumResult, error) {
	fi, err := os.Stat(e.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}
	before := fi.Size()

	if err := e.Close(); err != nil {
		return nil, fmt.Errorf("failed to close read-only connection: %w", err)
	}

	wdb, err := sql.Open("sqlite", "file:"+filepath.ToSlash(e.path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database for writing: %w", err)
	}
	_, vacErr := wdb.Exec("VACUUM")
	closeErr := wdb.Close()
	if vacErr != nil {
		return nil, fmt.Errorf("vacuum failed: %w", vacErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close writable connection: %w", closeErr)
	}

	fi, err = os.Stat(e.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat database after vacuum: %w", err)
	}
	after := fi.Size()
	saved := before - after

	savedPct := "0.0%"
	if before > 0 {
		savedPct = fmt.Sprintf("%.1f%%", float64(saved)/float64(before)*100)
	}
	return &VacuumResult{
		BeforeSize:        before,
		BeforeSizeDisplay: utils.FormatSize(before),
		AfterSize:         after,
		AfterSizeDisplay:  utils.FormatSize(after),
		Saved:             saved,
		SavedDisplay:      utils.FormatSize(saved),
		SavedPct:          savedPct,
	}, nil
}
