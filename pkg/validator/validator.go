// pkg/validator/validator.go
package validator

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hoopsight/data-quality/pkg/model"
)

// rosterLimit is the most distinct players a single team can
// plausibly carry in one season's extract.
const rosterLimit = 20

// DataValidator runs a fixed battery of rule checks against a cleaned
// table. It is read-only over its input: every finding becomes an
// Issue, rows are never discarded or modified, and no rule
// short-circuits another.
type DataValidator struct {
	schema *model.Schema
	rules  []Rule
	logger *zap.Logger
}

// NewDataValidator creates a new DataValidator instance with the rule
// battery derived from the schema.
func NewDataValidator(schema *model.Schema, logger *zap.Logger) (*DataValidator, error) {
	if schema == nil {
		return nil, errors.New("schema cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &DataValidator{
		schema: schema,
		rules:  RulesFromSchema(schema),
		logger: logger,
	}, nil
}

// Validate evaluates the full rule battery and returns the ordered
// issue list: dataset-level issues first, then row issues by row index
// ascending, then rule evaluation order within a row. It returns an
// error only when the input is not table-shaped at all.
func (v *DataValidator) Validate(table *model.Table) ([]model.Issue, error) {
	if table == nil {
		return nil, errors.New("table cannot be nil")
	}

	missing := v.missingColumns(table)

	var issues []model.Issue
	issues = append(issues, v.datasetIssues(table, missing)...)

	duplicates := v.duplicatePlayerRows(table)

	for i, row := range table.Rows {
		for _, rule := range v.rules {
			if missing[rule.Column] || !table.HasColumn(rule.Column) {
				continue
			}
			issues = append(issues, v.evaluate(rule, i, row)...)
		}
		if duplicates[i] {
			issues = append(issues, model.Issue{
				Row:      i,
				Column:   "player_name",
				Severity: model.SeverityWarning,
				Code:     model.CodeDuplicatePlayer,
				Message: fmt.Sprintf("Duplicate player/team/season combination: %s / %s",
					model.AsString(row["player_name"]), model.AsString(row["team"])),
			})
		}
	}

	v.logger.Info("Validation complete",
		zap.Int("rows", table.NumRows()),
		zap.Int("issues", len(issues)))

	return issues, nil
}

// missingColumns returns the set of required schema columns absent from
// the table. Row-level checks for those columns do not proceed.
func (v *DataValidator) missingColumns(table *model.Table) map[string]bool {
	missing := make(map[string]bool)
	for _, name := range v.schema.RequiredColumns() {
		if !table.HasColumn(name) {
			missing[name] = true
		}
	}
	return missing
}

// datasetIssues runs the dataset-wide checks: schema completeness,
// empty dataset, unique-column duplicates, and roster size.
func (v *DataValidator) datasetIssues(table *model.Table, missing map[string]bool) []model.Issue {
	var issues []model.Issue

	for _, name := range v.schema.RequiredColumns() {
		if missing[name] {
			issues = append(issues, model.Issue{
				Row:      model.DatasetRow,
				Column:   name,
				Severity: model.SeverityError,
				Code:     model.CodeMissingColumn,
				Message:  fmt.Sprintf("Missing required column: %s", name),
			})
		}
	}

	if table.NumRows() == 0 {
		issues = append(issues, model.Issue{
			Row:      model.DatasetRow,
			Severity: model.SeverityError,
			Code:     model.CodeEmptyDataset,
			Message:  "Table contains no rows after cleaning",
		})
		return issues
	}

	issues = append(issues, v.uniqueColumnIssues(table)...)
	issues = append(issues, v.rosterIssues(table)...)

	return issues
}

// uniqueColumnIssues flags repeated values in columns the schema
// declares unique, such as player_id.
func (v *DataValidator) uniqueColumnIssues(table *model.Table) []model.Issue {
	var issues []model.Issue

	for _, col := range v.schema.Columns {
		if !col.Unique || !table.HasColumn(col.Name) {
			continue
		}

		counts := make(map[string]int)
		var order []string
		for _, row := range table.Rows {
			value := row[col.Name]
			if value == nil {
				continue
			}
			key := model.AsString(value)
			if counts[key] == 0 {
				order = append(order, key)
			}
			counts[key]++
		}

		for _, key := range order {
			if counts[key] > 1 {
				issues = append(issues, model.Issue{
					Row:      model.DatasetRow,
					Column:   col.Name,
					Severity: model.SeverityWarning,
					Code:     model.CodeDuplicateID,
					Message:  fmt.Sprintf("Value %s appears %d times in unique column '%s'", key, counts[key], col.Name),
				})
			}
		}
	}

	return issues
}

// rosterIssues warns when a team carries more distinct players than a
// plausible season roster.
func (v *DataValidator) rosterIssues(table *model.Table) []model.Issue {
	if !table.HasColumn("team") || !table.HasColumn("player_name") {
		return nil
	}

	players := make(map[string]map[string]bool)
	var teams []string
	for _, row := range table.Rows {
		team := model.AsString(row["team"])
		name := model.AsString(row["player_name"])
		if team == "" || name == "" {
			continue
		}
		if players[team] == nil {
			players[team] = make(map[string]bool)
			teams = append(teams, team)
		}
		players[team][strings.ToLower(name)] = true
	}

	var issues []model.Issue
	for _, team := range teams {
		if count := len(players[team]); count > rosterLimit {
			issues = append(issues, model.Issue{
				Row:      model.DatasetRow,
				Column:   "team",
				Severity: model.SeverityWarning,
				Code:     model.CodeRosterOverflow,
				Message:  fmt.Sprintf("Team '%s' has %d distinct players, above the roster limit of %d", team, count, rosterLimit),
			})
		}
	}
	return issues
}

// evaluate applies one rule descriptor to one row.
func (v *DataValidator) evaluate(rule Rule, rowIdx int, row model.Row) []model.Issue {
	value := row[rule.Column]

	switch rule.Kind {
	case RuleRange:
		return v.evaluateRange(rule, rowIdx, value)
	case RuleCategory:
		return v.evaluateCategory(rule, rowIdx, value)
	case RuleCritical:
		return v.evaluateCritical(rule, rowIdx, value)
	default:
		return nil
	}
}

// evaluateRange checks a numeric cell against the rule's bounds. A null
// numeric after cleaning means the column could not be imputed, which
// makes the record unusable for analysis.
func (v *DataValidator) evaluateRange(rule Rule, rowIdx int, value interface{}) []model.Issue {
	if value == nil {
		return []model.Issue{{
			Row:      rowIdx,
			Column:   rule.Column,
			Severity: model.SeverityError,
			Code:     model.CodeMissingCriticalField,
			Message:  fmt.Sprintf("Numeric field '%s' is missing and could not be imputed", rule.Column),
		}}
	}

	f, ok := model.AsFloat(value)
	if !ok {
		return nil // uncoerced cell, not a range rule's concern
	}

	if rule.Min != nil && f < *rule.Min {
		return []model.Issue{{
			Row:      rowIdx,
			Column:   rule.Column,
			Severity: model.SeverityError,
			Code:     model.CodeOutOfRange,
			Message:  fmt.Sprintf("Value %v in '%s' below lower bound %v", f, rule.Column, *rule.Min),
		}}
	}
	if rule.Max != nil && f > *rule.Max {
		return []model.Issue{{
			Row:      rowIdx,
			Column:   rule.Column,
			Severity: model.SeverityError,
			Code:     model.CodeOutOfRange,
			Message:  fmt.Sprintf("Value %v in '%s' above upper bound %v", f, rule.Column, *rule.Max),
		}}
	}

	return nil
}

// evaluateCategory checks a cell against the rule's allowed set. A
// violation is a warning rather than an error: it does not block
// downstream numeric analysis.
func (v *DataValidator) evaluateCategory(rule Rule, rowIdx int, value interface{}) []model.Issue {
	if value == nil {
		return nil
	}
	s := model.AsString(value)
	if rule.Allowed[s] {
		return nil
	}
	return []model.Issue{{
		Row:      rowIdx,
		Column:   rule.Column,
		Severity: model.SeverityWarning,
		Code:     model.CodeInvalidCategory,
		Message:  fmt.Sprintf("Value '%s' in '%s' is not in the allowed set", s, rule.Column),
	}}
}

// evaluateCritical checks that a critical field carries a real value.
// The imputation sentinel counts as missing: a player record without a
// name is unusable.
func (v *DataValidator) evaluateCritical(rule Rule, rowIdx int, value interface{}) []model.Issue {
	s := model.AsString(value)
	if value != nil && strings.TrimSpace(s) != "" && s != model.UnknownSentinel {
		return nil
	}
	return []model.Issue{{
		Row:      rowIdx,
		Column:   rule.Column,
		Severity: model.SeverityError,
		Code:     model.CodeMissingCriticalField,
		Message:  fmt.Sprintf("Missing or unknown value in critical field '%s'", rule.Column),
	}}
}

// duplicatePlayerRows returns the set of row indexes that repeat an
// earlier row's normalized (player_name, team, season_year) tuple. The
// first occurrence is never flagged.
func (v *DataValidator) duplicatePlayerRows(table *model.Table) map[int]bool {
	if !table.HasColumn("player_name") || !table.HasColumn("team") {
		return nil
	}

	seen := make(map[string]bool, len(table.Rows))
	duplicates := make(map[int]bool)

	for i, row := range table.Rows {
		key := duplicateKey(row)
		if seen[key] {
			duplicates[i] = true
			continue
		}
		seen[key] = true
	}

	return duplicates
}

// duplicateKey normalizes the identifying tuple for duplicate
// detection. season_year contributes when present so the same player
// can appear across seasons without a false positive.
func duplicateKey(row model.Row) string {
	parts := []string{
		strings.ToLower(strings.TrimSpace(model.AsString(row["player_name"]))),
		strings.ToLower(strings.TrimSpace(model.AsString(row["team"]))),
		model.AsString(row["season_year"]),
	}
	return strings.Join(parts, "\x1f")
}
