// pkg/model/table.go
package model

import (
	"fmt"
	"strconv"
)

// Row holds the cell values for a single record, keyed by column name.
// Cell values are string, int64, float64, or nil (null).
type Row map[string]interface{}

// Table is an ordered collection of rows sharing a common column set.
// Column order is preserved from the source file; after cleaning, all
// column names are canonical (lower_snake_case) and unique.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given column set.
func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{
		Columns: cols,
		Rows:    make([]Row, 0),
	}
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumColumns returns the number of columns in the table.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// HasColumn reports whether the table contains the named column.
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the table. Mutating the copy never
// affects the original.
func (t *Table) Clone() *Table {
	clone := NewTable(t.Columns)
	clone.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		newRow := make(Row, len(row))
		for k, v := range row {
			newRow[k] = v
		}
		clone.Rows[i] = newRow
	}
	return clone
}

// AsFloat converts a cell value to float64 if it holds a numeric type.
// Returns false for nulls, strings, and anything else.
func AsFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int64:
		return float64(val), true
	case int:
		return float64(val), true
	default:
		return 0, false
	}
}

// AsString converts a cell value to its string form for display and
// CSV output. Nulls render as the empty string.
func AsString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
