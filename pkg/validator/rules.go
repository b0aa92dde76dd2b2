// pkg/validator/rules.go
package validator

import (
	"github.com/hoopsight/data-quality/pkg/model"
)

// RuleKind selects which check a rule descriptor performs.
type RuleKind string

const (
	// RuleRange checks that a numeric value lies inside a fixed
	// plausible range and that no numeric value is left null.
	RuleRange RuleKind = "range"
	// RuleCategory checks that a value comes from a fixed allowed set.
	RuleCategory RuleKind = "category"
	// RuleCritical checks that a critical field has a real value
	// rather than an empty string or the imputation sentinel.
	RuleCritical RuleKind = "critical"
)

// Rule is a declarative validation descriptor. The battery is data,
// not code per rule: one generic engine evaluates every descriptor, so
// adding a rule means adding an entry, not new dispatch logic.
type Rule struct {
	Column  string
	Kind    RuleKind
	Min     *float64
	Max     *float64
	Allowed map[string]bool
}

// RulesFromSchema derives the row-level rule battery from a dataset
// schema. Numeric columns become range rules (unbounded ones still get
// the null check), categorical columns become allowed-set rules, and
// critical columns become critical-field rules. Rule order follows schema column order, with a
// column's critical check last so issue ordering within a row is
// stable.
func RulesFromSchema(schema *model.Schema) []Rule {
	var rules []Rule

	for _, col := range schema.Columns {
		if col.IsNumeric() {
			rules = append(rules, Rule{
				Column: col.Name,
				Kind:   RuleRange,
				Min:    col.Min,
				Max:    col.Max,
			})
		}
		if len(col.Allowed) > 0 {
			allowed := make(map[string]bool, len(col.Allowed))
			for _, v := range col.Allowed {
				allowed[v] = true
			}
			rules = append(rules, Rule{
				Column:  col.Name,
				Kind:    RuleCategory,
				Allowed: allowed,
			})
		}
		if col.Critical {
			rules = append(rules, Rule{
				Column: col.Name,
				Kind:   RuleCritical,
			})
		}
	}

	return rules
}
