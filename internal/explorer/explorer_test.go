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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createFixture writes a SQLite database to dir and returns its path.
// Layout: users (5 rows, one NULL email, one NULL age), products (4 rows,
// 3 distinct categories), orders (4 rows, FK to users and products).
func createFixture(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)

	db, err := sql.Open("sqlite", "file:"+filepath.ToSlash(path))
	require.NoError(t, err)
	defer db.Close()

	stmts := []string{
		`CREATE TABLE users (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT,
			age INTEGER,
			bio TEXT DEFAULT 'n/a'
		)`,
		`CREATE INDEX idx_users_email ON users(email)`,
		`CREATE TABLE products (
			id INTEGER PRIMARY KEY,
			name TEXT,
			category TEXT,
			price REAL
		)`,
		`CREATE TABLE orders (
			id INTEGER PRIMARY KEY,
			user_id INTEGER,
			product_id INTEGER,
			quantity INTEGER,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (product_id) REFERENCES products(id)
		)`,
		`INSERT INTO users (id, name, email, age) VALUES
			(1, 'Alice Johnson', 'alice@example.com', 34),
			(2, 'Bob Smith', 'bob@example.com', 28),
			(3, 'Carol White', NULL, 45),
			(4, 'Dan Brown', 'dan@example.com', NULL),
			(5, 'Eve Davis', 'eve@example.com', 52)`,
		`INSERT INTO products (id, name, category, price) VALUES
			(1, 'Laptop', 'electronics', 999.99),
			(2, 'Mouse', 'electronics', 24.5),
			(3, 'Desk', 'furniture', 150.0),
			(4, 'Notebook', 'stationery', 3.25)`,
		`INSERT INTO orders (id, user_id, product_id, quantity) VALUES
			(1, 1, 1, 1),
			(2, 2, 2, 3),
			(3, 1, 4, 10),
			(4, 5, 3, 1)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

// createDB builds a throwaway database from the given statements and
// returns an Explorer over it, closed automatically at test end.
func createDB(t *testing.T, stmts ...string) *Explorer {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", "file:"+filepath.ToSlash(path))
	require.NoError(t, err)
	defer db.Close()
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	e, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

// openFixture creates the standard fixture and an Explorer over it,
// closed automatically at test end.
func openFixture(t *testing.T) *Explorer {
	t.Helper()
	path := createFixture(t, t.TempDir(), "fixture.db")
	e, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func TestNewPreconditions(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name:    "empty path",
			path:    func(t *testing.T) string { return "" },
			wantErr: "database path cannot be empty",
		},
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.db") },
			wantErr: "database not found",
		},
		{
			name:    "path is a directory",
			path:    func(t *testing.T) string { return t.TempDir() },
			wantErr: "path is not a file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.path(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCloseIdempotent(t *testing.T) {
	e := openFixture(t)
	_, err := e.Tables() // force the lazy connection open
	require.NoError(t, err)

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())
}

func TestInfo(t *testing.T) {
	e := openFixture(t)
	info, err := e.Info()
	require.NoError(t, err)

	assert.Equal(t, e.Path(), info.Path)
	assert.Greater(t, info.FileSize, int64(0))
	assert.NotEmpty(t, info.SQLiteVersion)
	assert.Greater(t, info.PageSize, int64(0))
	assert.Greater(t, info.PageCount, int64(0))
	assert.Equal(t, int64(3), info.TableCount)
	assert.Equal(t, int64(1), info.IndexCount)
	assert.Equal(t, int64(0), info.ViewCount)
	assert.Equal(t, int64(0), info.TriggerCount)
}

func TestQuery(t *testing.T) {
	e := openFixture(t)
	result, err := e.Query("SELECT id, name FROM users ORDER BY id LIMIT 2")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name"}, result.Headers)
	require.Equal(t, 2, result.RowCount)
	assert.Equal(t, IntValue(1), result.Rows[0][0])
	assert.Equal(t, TextValue("Alice Johnson"), result.Rows[0][1])
}

func TestQueryEngineFault(t *testing.T) {
	e := openFixture(t)
	_, err := e.Query("SELECT * FROM does_not_exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query failed")
}

func TestBrowse(t *testing.T) {
	e := openFixture(t)

	result, err := e.Browse("users", BrowseOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.TotalRows)
	assert.Len(t, result.Rows, 2)
	assert.Equal(t, "2-3 of 5", result.Showing)

	filtered, err := e.Browse("users", BrowseOptions{Limit: 50, Where: "age > 40", OrderBy: "age DESC"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), filtered.TotalRows)
	require.Len(t, filtered.Rows, 2)
	assert.Equal(t, IntValue(52), filtered.Rows[0][3])
}

func TestBrowseEmptyPage(t *testing.T) {
	e := openFixture(t)
	result, err := e.Browse("users", BrowseOptions{Limit: 10, Offset: 100})
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
	assert.Equal(t, "0-100 of 5", result.Showing)
}

func TestBrowseNotFound(t *testing.T) {
	e := openFixture(t)
	_, err := e.Browse("nope", BrowseOptions{Limit: 10})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "nope", nf.Table)
}

func TestVacuum(t *testing.T) {
	e := openFixture(t)

	result, err := e.Vacuum()
	require.NoError(t, err)
	assert.Greater(t, result.BeforeSize, int64(0))
	assert.Greater(t, result.AfterSize, int64(0))
	assert.Equal(t, result.BeforeSize-result.AfterSize, result.Saved)
	assert.NotEmpty(t, result.SavedPct)

	// The explorer stays usable after vacuum reopens the connection.
	tables, err := e.Tables()
	require.NoError(t, err)
	assert.Len(t, tables, 3)
}

func TestValueFromDriver(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, Null()},
		{"int64", int64(7), IntValue(7)},
		{"float64", 2.5, FloatValue(2.5)},
		{"string", "hi", TextValue("hi")},
		{"bytes", []byte{1, 2}, BlobValue([]byte{1, 2})},
		{"bool true", true, IntValue(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fromDriver(tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"null is empty", Null(), ""},
		{"int", IntValue(-12), "-12"},
		{"float", FloatValue(1.5), "1.5"},
		{"text", TextValue("abc"), "abc"},
		{"blob placeholder", BlobValue(make([]byte, 4)), "<BLOB 4 bytes>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNotFoundErrorMessage(t *testing.T) {
	err := &NotFoundError{Table: "ghost", Available: []string{"orders", "users"}}
	assert.Equal(t, "table 'ghost' not found. Available tables: orders, users", err.Error())

	empty := &NotFoundError{Table: "ghost"}
	assert.Equal(t, "table 'ghost' not found. Available tables: (none)", empty.Error())
}

func TestEmptyDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.db")
	db, err := sql.Open("sqlite", "file:"+filepath.ToSlash(path))
	require.NoError(t, err)
	// Force file creation; an untouched handle leaves no file behind.
	_, err = db.Exec("PRAGMA user_version = 1")
	require.NoError(t, err)
	require.NoError(t, db.Close())
	_, err = os.Stat(path)
	require.NoError(t, err)

	e, err := New(path)
	require.NoError(t, err)
	defer e.Close()

	tables, err := e.Tables()
	require.NoError(t, err)
	assert.Empty(t, tables)

	_, err = e.Schema("anything")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Contains(t, err.Error(), "(none)")
}
