// pkg/cleaner/operations.go
package cleaner

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/stat"

	"github.com/hoopsight/data-quality/pkg/model"
)

// canonicalColumnName converts a source column name to its canonical
// form: lower-cased, trimmed, with runs of whitespace and punctuation
// collapsed to single underscores.
func canonicalColumnName(name string) string {
	var b strings.Builder
	lastUnderscore := false

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	return strings.Trim(b.String(), "_")
}

// trimCell strips surrounding whitespace from string cells. Reports
// whether the value changed.
func trimCell(v interface{}) (interface{}, bool) {
	s, ok := v.(string)
	if !ok {
		return v, false
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == s {
		return v, false
	}
	return trimmed, true
}

// coerceNumeric parses a string cell into the column's numeric type,
// tolerating thousands separators and stray whitespace. Integer columns
// accept whole-valued floats ("24.0"); fractional values in an integer
// column fall back to float64 rather than losing precision.
func coerceNumeric(raw string, colType model.ColumnType) (interface{}, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return nil, fmt.Errorf("empty numeric value")
	}

	if colType == model.TypeInt {
		if i, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
			return i, nil
		}
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q as %s: %w", raw, colType, err)
	}

	if colType == model.TypeInt && f == math.Trunc(f) {
		return int64(f), nil
	}
	return f, nil
}

// rowFingerprint builds a deterministic key identifying a row's full
// contents, used for exact-duplicate detection. Type markers keep the
// string "1" distinct from the integer 1.
func rowFingerprint(columns []string, row model.Row) string {
	var b strings.Builder
	for _, col := range columns {
		fmt.Fprintf(&b, "%T=%v\x1f", row[col], row[col])
	}
	return b.String()
}

// columnMean computes the arithmetic mean over the column's non-null
// numeric values. Returns false when the column has no such values.
func columnMean(table *model.Table, col string) (float64, bool) {
	var values []float64
	for _, row := range table.Rows {
		if f, ok := model.AsFloat(row[col]); ok {
			values = append(values, f)
		}
	}
	if len(values) == 0 {
		return 0, false
	}
	return stat.Mean(values, nil), true
}

// roundToInt rounds a mean to the nearest integer for imputation into
// integer-typed columns, keeping the column uniformly typed.
func roundToInt(f float64) int64 {
	return int64(math.Round(f))
}
