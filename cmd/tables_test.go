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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbexplore/dbexplore/internal/explorer"
)

func TestTablesOutputEmptyDatabase(t *testing.T) {
	for _, f := range []string{"text", "md"} {
		out, err := tablesOutput([]explorer.TableInfo{}, f)
		require.NoError(t, err)
		assert.Equal(t, "(no tables found)", out, "format %s", f)
	}

	out, err := tablesOutput([]explorer.TableInfo{}, "json")
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestTablesOutputFormats(t *testing.T) {
	tables := []explorer.TableInfo{
		{Name: "users", RowCount: 5, ColumnCount: 3},
		{Name: "orders", RowCount: -1, ColumnCount: 4},
	}

	md, err := tablesOutput(tables, "md")
	require.NoError(t, err)
	assert.Contains(t, md, "| users | 5 | 3 |")
	assert.Contains(t, md, "| --- TOTAL --- | 5 |")

	text, err := tablesOutput(tables, "text")
	require.NoError(t, err)
	assert.Contains(t, text, "TABLES")
	assert.Contains(t, text, "users")
}
