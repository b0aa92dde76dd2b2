// pkg/cleaner/cleaner.go
package cleaner

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hoopsight/data-quality/pkg/model"
)

// DataCleaner applies deterministic normalization and imputation rules
// to a raw table. Cleaning is lenient: malformed values degrade to
// nulls and are surfaced later by validation, never raised here.
type DataCleaner struct {
	schema  *model.Schema
	aliases map[string]string
	logger  *zap.Logger
}

// NewDataCleaner creates a new DataCleaner instance. The schema drives
// type coercion and the alias map drives team-name normalization; both
// are injected so tests can supply alternate domains.
func NewDataCleaner(schema *model.Schema, aliases map[string]string, logger *zap.Logger) (*DataCleaner, error) {
	if schema == nil {
		return nil, errors.New("schema cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if aliases == nil {
		aliases = map[string]string{}
	}
	return &DataCleaner{
		schema:  schema,
		aliases: aliases,
		logger:  logger,
	}, nil
}

// Clean transforms a raw table into an analysis-ready one. The input is
// never mutated; the same input always yields the same output, and
// cleaning an already-clean table is a no-op.
//
// Steps run in a fixed order because later steps depend on earlier
// canonicalization:
//  1. canonicalize column names
//  2. trim whitespace from string cells
//  3. coerce numeric columns, parse failures become null
//  4. normalize team names through the alias map
//  5. collapse fully identical rows, first occurrence wins
//  6. impute missing values (numeric: column mean, text: "Unknown")
func (c *DataCleaner) Clean(raw *model.Table) (*model.Table, []model.CleaningOperation, error) {
	if raw == nil {
		return nil, nil, errors.New("table cannot be nil")
	}

	table := raw.Clone()
	var operations []model.CleaningOperation

	operations = append(operations, c.canonicalizeColumns(table)...)
	operations = append(operations, c.trimWhitespace(table)...)
	operations = append(operations, c.coerceTypes(table)...)
	operations = append(operations, c.normalizeTeams(table)...)

	table, dedupeOps := c.removeDuplicates(table)
	operations = append(operations, dedupeOps...)

	operations = append(operations, c.imputeMissing(table)...)

	c.logger.Info("Cleaning complete",
		zap.Int("rows", table.NumRows()),
		zap.Int("operations", len(operations)))

	return table, operations, nil
}

// canonicalizeColumns rewrites every column name to its canonical
// lower_snake_case form. Collisions after canonicalization get a
// numeric suffix so names stay unique.
func (c *DataCleaner) canonicalizeColumns(table *model.Table) []model.CleaningOperation {
	var operations []model.CleaningOperation
	seen := make(map[string]int, len(table.Columns))

	type rename struct{ from, to string }
	var renames []rename

	for i, original := range table.Columns {
		canonical := canonicalColumnName(original)
		seen[canonical]++
		if seen[canonical] > 1 {
			canonical = fmt.Sprintf("%s_%d", canonical, seen[canonical])
		}

		if canonical == original {
			continue
		}

		table.Columns[i] = canonical
		renames = append(renames, rename{from: original, to: canonical})
		operations = append(operations, model.CleaningOperation{
			ColumnName:    canonical,
			Row:           model.DatasetRow,
			OriginalValue: original,
			NewValue:      canonical,
			Operation:     model.OpColumnRename,
			Reason:        "non_canonical_column_name",
		})
	}

	if len(renames) == 0 {
		return nil
	}

	// Two-phase remap: a canonical name can collide with another source
	// column ("Player Name" next to "player_name"), so read every moved
	// cell before writing any of them back.
	for _, row := range table.Rows {
		moved := make(map[string]interface{}, len(renames))
		for _, r := range renames {
			if v, ok := row[r.from]; ok {
				moved[r.to] = v
				delete(row, r.from)
			}
		}
		for to, v := range moved {
			row[to] = v
		}
	}

	return operations
}

// trimWhitespace strips leading/trailing whitespace from every string
// cell in the table.
func (c *DataCleaner) trimWhitespace(table *model.Table) []model.CleaningOperation {
	var operations []model.CleaningOperation

	for i, row := range table.Rows {
		for _, col := range table.Columns {
			trimmed, changed := trimCell(row[col])
			if !changed {
				continue
			}
			operations = append(operations, model.CleaningOperation{
				ColumnName:    col,
				Row:           i,
				OriginalValue: row[col],
				NewValue:      trimmed,
				Operation:     model.OpWhitespaceTrim,
				Reason:        "surrounding_whitespace",
			})
			row[col] = trimmed
		}
	}

	return operations
}

// coerceTypes converts string cells in declared numeric columns to
// their numeric type. Values that fail to parse become null; cleaning
// is lenient, validation is strict.
func (c *DataCleaner) coerceTypes(table *model.Table) []model.CleaningOperation {
	var operations []model.CleaningOperation

	for _, col := range table.Columns {
		spec := c.schema.ColumnByName(col)
		if spec == nil || !spec.IsNumeric() {
			continue
		}

		for i, row := range table.Rows {
			raw, isString := row[col].(string)
			if !isString {
				continue // already typed or null
			}

			coerced, err := coerceNumeric(raw, spec.Type)
			if err != nil {
				operations = append(operations, model.CleaningOperation{
					ColumnName:    col,
					Row:           i,
					OriginalValue: raw,
					NewValue:      nil,
					Operation:     model.OpTypeCoercion,
					Reason:        "unparseable_numeric_value",
				})
				row[col] = nil
				continue
			}

			operations = append(operations, model.CleaningOperation{
				ColumnName:    col,
				Row:           i,
				OriginalValue: raw,
				NewValue:      coerced,
				Operation:     model.OpTypeCoercion,
				Reason:        fmt.Sprintf("converted_to_%s", spec.Type),
			})
			row[col] = coerced
		}
	}

	return operations
}

// normalizeTeams maps known team abbreviations and aliases to canonical
// full names. Unrecognized values pass through unchanged; validation
// flags them later if they are not in the allowed set.
func (c *DataCleaner) normalizeTeams(table *model.Table) []model.CleaningOperation {
	var operations []model.CleaningOperation

	for _, col := range []string{"team", "team_name"} {
		if !table.HasColumn(col) {
			continue
		}
		for i, row := range table.Rows {
			value, ok := row[col].(string)
			if !ok {
				continue
			}
			canonical, known := c.aliases[value]
			if !known || canonical == value {
				continue
			}
			operations = append(operations, model.CleaningOperation{
				ColumnName:    col,
				Row:           i,
				OriginalValue: value,
				NewValue:      canonical,
				Operation:     model.OpTeamNormalization,
				Reason:        "known_alias",
			})
			row[col] = canonical
		}
	}

	return operations
}

// removeDuplicates collapses rows that are fully identical across all
// columns, preserving the first occurrence's position.
func (c *DataCleaner) removeDuplicates(table *model.Table) (*model.Table, []model.CleaningOperation) {
	var operations []model.CleaningOperation
	seen := make(map[string]bool, len(table.Rows))
	deduped := model.NewTable(table.Columns)

	for i, row := range table.Rows {
		key := rowFingerprint(table.Columns, row)
		if seen[key] {
			operations = append(operations, model.CleaningOperation{
				Row:       i,
				Operation: model.OpDuplicateRemoval,
				Reason:    "fully_identical_row",
			})
			continue
		}
		seen[key] = true
		deduped.Rows = append(deduped.Rows, row)
	}

	if removed := table.NumRows() - deduped.NumRows(); removed > 0 {
		c.logger.Info("Removed duplicate rows", zap.Int("count", removed))
	}

	return deduped, operations
}

// imputeMissing fills nulls column by column. Numeric columns use the
// arithmetic mean of their non-null values; each column's mean is
// computed before any imputation in that column, and columns never
// interact. Text columns use the "Unknown" sentinel. A fully null
// numeric column has no mean and stays null for validation to flag.
func (c *DataCleaner) imputeMissing(table *model.Table) []model.CleaningOperation {
	var operations []model.CleaningOperation

	for _, col := range table.Columns {
		spec := c.schema.ColumnByName(col)
		if spec != nil && spec.IsNumeric() {
			operations = append(operations, c.imputeNumericColumn(table, col, spec.Type)...)
			continue
		}
		operations = append(operations, c.imputeTextColumn(table, col)...)
	}

	return operations
}

func (c *DataCleaner) imputeNumericColumn(table *model.Table, col string, colType model.ColumnType) []model.CleaningOperation {
	mean, ok := columnMean(table, col)
	if !ok {
		return nil // entirely null column, cannot impute
	}

	fill := interface{}(mean)
	if colType == model.TypeInt {
		fill = roundToInt(mean)
	}

	var operations []model.CleaningOperation
	for i, row := range table.Rows {
		if row[col] != nil {
			continue
		}
		operations = append(operations, model.CleaningOperation{
			ColumnName: col,
			Row:        i,
			NewValue:   fill,
			Operation:  model.OpImputation,
			Reason:     "column_mean",
		})
		row[col] = fill
	}
	return operations
}

func (c *DataCleaner) imputeTextColumn(table *model.Table, col string) []model.CleaningOperation {
	var operations []model.CleaningOperation
	for i, row := range table.Rows {
		value := row[col]
		if s, isString := value.(string); value != nil && !(isString && s == "") {
			continue
		}
		operations = append(operations, model.CleaningOperation{
			ColumnName:    col,
			Row:           i,
			OriginalValue: value,
			NewValue:      model.UnknownSentinel,
			Operation:     model.OpImputation,
			Reason:        "missing_text_value",
		})
		row[col] = model.UnknownSentinel
	}
	return operations
}
