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
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies the storage class of a cell value as reported by the
// engine. Declared column types are advisory in SQLite, so all dispatch
// happens on this tag rather than on the column's type string.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindText
	KindBlob
)

// Value is a single cell value returned by the engine.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Text  string
	Blob  []byte
}

func Null() Value { return Value{Kind: KindNull} }

func IntValue(v int64) Value { return Value{Kind: KindInt, Int: v} }

func FloatValue(v float64) Value { return Value{Kind: KindFloat, Float: v} }

func TextValue(v string) Value { return Value{Kind: KindText, Text: v} }

func BlobValue(v []byte) Value { return Value{Kind: KindBlob, Blob: v} }

// IsNull reports whether the value is the SQL NULL.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// String returns the plain string form of the value: the form used for
// substring matching, size estimation and CSV cells. NULL renders as the
// empty string here; display-specific markers live in the format package.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return ""
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindText:
		return v.Text
	case KindBlob:
		return fmt.Sprintf("<BLOB %d bytes>", len(v.Blob))
	}
	return ""
}

// MarshalJSON renders NULL as null, numbers natively at full precision,
// text as a JSON string, and blobs as the byte-count placeholder since
// binary cannot round-trip through JSON text.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindInt:
		return []byte(strconv.FormatInt(v.Int, 10)), nil
	case KindFloat:
		return json.Marshal(v.Float)
	case KindText:
		return json.Marshal(v.Text)
	case KindBlob:
		return json.Marshal(fmt.Sprintf("<BLOB %d bytes>", len(v.Blob)))
	}
	return nil, fmt.Errorf("unknown value kind %d", v.Kind)
}

// fromDriver classifies a raw database/sql scan result into a Value.
func fromDriver(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Null()
	case int64:
		return IntValue(x)
	case float64:
		return FloatValue(x)
	case string:
		return TextValue(x)
	case []byte:
		b := make([]byte, len(x))
		copy(b, x)
		return BlobValue(b)
	case bool:
		if x {
			return IntValue(1)
		}
		return IntValue(0)
	default:
		return TextValue(fmt.Sprint(x))
	}
}

// scanRow reads the current row of rows into a slice of Values.
func scanRow(rows *sql.Rows, width int) ([]Value, error) {
	raw := make([]any, width)
	ptrs := make([]any, width)
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("error scanning row: %w", err)
	}
	vals := make([]Value, width)
	for i, r := range raw {
		vals[i] = fromDriver(r)
	}
	return vals, nil
}
