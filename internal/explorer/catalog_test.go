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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesListing(t *testing.T) {
	e := openFixture(t)

	tables, err := e.Tables()
	require.NoError(t, err)
	require.Len(t, tables, 3)

	names := make([]string, len(tables))
	for i, tbl := range tables {
		names[i] = tbl.Name
	}
	assert.Equal(t, []string{"orders", "products", "users"}, names)

	byName := make(map[string]TableInfo)
	for _, tbl := range tables {
		byName[tbl.Name] = tbl
	}
	assert.Equal(t, int64(5), byName["users"].RowCount)
	assert.Equal(t, 5, byName["users"].ColumnCount)
	assert.Equal(t, int64(4), byName["products"].RowCount)
	assert.Equal(t, int64(4), byName["orders"].RowCount)
}

func TestSchemaSingleTable(t *testing.T) {
	e := openFixture(t)

	schemas, err := e.Schema("users")
	require.NoError(t, err)
	require.Len(t, schemas, 1)

	schema := schemas[0]
	assert.Equal(t, "users", schema.Table)
	assert.Contains(t, schema.CreateSQL, "CREATE TABLE users")

	require.Len(t, schema.Columns, 5)
	id := schema.Columns[0]
	assert.Equal(t, 0, id.CID)
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, "INTEGER", id.Type)
	assert.True(t, id.PK)

	name := schema.Columns[1]
	assert.Equal(t, "TEXT", name.Type)
	assert.True(t, name.NotNull)
	assert.Nil(t, name.Default)

	bio := schema.Columns[4]
	require.NotNil(t, bio.Default)
	assert.Equal(t, "'n/a'", *bio.Default)

	require.Len(t, schema.Indexes, 1)
	assert.Equal(t, "idx_users_email", schema.Indexes[0].Name)
	assert.False(t, schema.Indexes[0].Unique)
	assert.Equal(t, []string{"email"}, schema.Indexes[0].Columns)

	assert.Empty(t, schema.ForeignKeys)
}

func TestSchemaForeignKeys(t *testing.T) {
	e := openFixture(t)

	schemas, err := e.Schema("orders")
	require.NoError(t, err)
	require.Len(t, schemas, 1)

	fks := schemas[0].ForeignKeys
	require.Len(t, fks, 2)

	targets := make(map[string]string)
	for _, fk := range fks {
		targets[fk.From] = fk.Table + "." + fk.To
	}
	assert.Equal(t, "users.id", targets["user_id"])
	assert.Equal(t, "products.id", targets["product_id"])
}

func TestSchemaAllTables(t *testing.T) {
	e := openFixture(t)

	schemas, err := e.Schema("")
	require.NoError(t, err)
	require.Len(t, schemas, 3)
	assert.Equal(t, "orders", schemas[0].Table)
	assert.Equal(t, "products", schemas[1].Table)
	assert.Equal(t, "users", schemas[2].Table)
}

func TestSchemaNotFound(t *testing.T) {
	e := openFixture(t)

	_, err := e.Schema("customers")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "customers", nf.Table)
	// The hint enumerates what does exist, sorted.
	assert.Contains(t, err.Error(), "orders, products, users")
}

func TestDump(t *testing.T) {
	e := openFixture(t)

	result, err := e.Dump("products")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "category", "price"}, result.Headers)
	assert.Equal(t, 4, result.RowCount)

	_, err = e.Dump("missing")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestColumnTypeDefaultsToAny(t *testing.T) {
	e := createDB(t, `CREATE TABLE notes (body)`)

	schemas, err := e.Schema("notes")
	require.NoError(t, err)
	require.Len(t, schemas[0].Columns, 1)
	assert.Equal(t, "ANY", schemas[0].Columns[0].Type)
}
