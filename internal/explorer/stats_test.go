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

func statByName(t *testing.T, stats []ColumnStat, column string) ColumnStat {
	t.Helper()
	for _, s := range stats {
		if s.Column == column {
			return s
		}
	}
	t.Fatalf("no stat for column %q", column)
	return ColumnStat{}
}

func TestStatsProducts(t *testing.T) {
	e := openFixture(t)

	stats, err := e.Stats("products")
	require.NoError(t, err)
	require.Len(t, stats, 4)

	category := statByName(t, stats, "category")
	assert.Equal(t, int64(4), category.TotalRows)
	assert.Equal(t, int64(4), category.NonNull)
	assert.Equal(t, int64(0), category.NullCount)
	assert.Equal(t, "0.0%", category.NullPct)
	assert.Equal(t, int64(3), category.Distinct)

	price := statByName(t, stats, "price")
	require.NotNil(t, price.Min)
	require.NotNil(t, price.Max)
	require.NotNil(t, price.Avg)
	require.NotNil(t, price.Sum)
	assert.Equal(t, FloatValue(3.25), *price.Min)
	assert.Equal(t, FloatValue(999.99), *price.Max)
	assert.InDelta(t, 294.435, *price.Avg, 0.0001)
}

func TestStatsNullHandling(t *testing.T) {
	e := openFixture(t)

	stats, err := e.Stats("users")
	require.NoError(t, err)

	email := statByName(t, stats, "email")
	assert.Equal(t, int64(5), email.TotalRows)
	assert.Equal(t, int64(4), email.NonNull)
	assert.Equal(t, int64(1), email.NullCount)
	assert.Equal(t, "20.0%", email.NullPct)

	age := statByName(t, stats, "age")
	assert.Equal(t, int64(4), age.NonNull)
	assert.Equal(t, int64(1), age.NullCount)
	require.NotNil(t, age.Min)
	assert.Equal(t, IntValue(28), *age.Min)
	assert.Equal(t, IntValue(52), *age.Max)
}

func TestStatsAvgRounding(t *testing.T) {
	e := createDB(t,
		`CREATE TABLE samples (v REAL)`,
		`INSERT INTO samples (v) VALUES (1.0), (2.0), (2.00002)`,
	)

	stats, err := e.Stats("samples")
	require.NoError(t, err)
	v := statByName(t, stats, "v")
	require.NotNil(t, v.Avg)
	// (1 + 2 + 2.00002) / 3 = 1.6666733... rounds to 4 decimal places.
	assert.Equal(t, 1.6667, *v.Avg)
}

func TestStatsAllNullColumn(t *testing.T) {
	e := createDB(t,
		`CREATE TABLE t (v TEXT)`,
		`INSERT INTO t (v) VALUES (NULL), (NULL), (NULL)`,
	)

	stats, err := e.Stats("t")
	require.NoError(t, err)
	v := statByName(t, stats, "v")

	assert.Equal(t, int64(3), v.TotalRows)
	assert.Equal(t, int64(0), v.NonNull)
	assert.Equal(t, int64(0), v.Distinct)
	assert.Equal(t, "100.0%", v.NullPct)

	// Aggregates over nothing come back NULL, not as numbers.
	require.NotNil(t, v.Min)
	assert.True(t, v.Min.IsNull())
	assert.True(t, v.Max.IsNull())
	assert.True(t, v.Sum.IsNull())
	assert.Nil(t, v.Avg)
}

func TestStatsEmptyTable(t *testing.T) {
	e := createDB(t, `CREATE TABLE empty (a INTEGER, b TEXT)`)

	stats, err := e.Stats("empty")
	require.NoError(t, err)
	require.Len(t, stats, 2)
	for _, s := range stats {
		assert.Equal(t, int64(0), s.TotalRows)
		assert.Equal(t, "N/A", s.NullPct, "null pct is not applicable without rows")
		assert.Nil(t, s.Avg)
	}
}

func TestStatsTextColumnWithNumericValues(t *testing.T) {
	// Declared types are advisory: a TEXT column holding numbers still
	// gets numeric aggregates.
	e := createDB(t,
		`CREATE TABLE readings (v TEXT)`,
		`INSERT INTO readings (v) VALUES ('10'), ('20'), ('30')`,
	)

	stats, err := e.Stats("readings")
	require.NoError(t, err)
	v := statByName(t, stats, "v")
	require.NotNil(t, v.Avg)
	assert.Equal(t, 20.0, *v.Avg)
}

func TestStatsNotFound(t *testing.T) {
	e := openFixture(t)
	_, err := e.Stats("missing")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}
