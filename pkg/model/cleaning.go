// pkg/model/cleaning.go
package model

// CleaningOperation records a single value change made during cleaning.
// The cleaner emits one operation per modified cell so every repair is
// auditable in the run log and report summary.
type CleaningOperation struct {
	ColumnName    string      // Column that was cleaned
	Row           int         // Row index, DatasetRow for table-wide operations
	OriginalValue interface{} // Original value (may be nil)
	NewValue      interface{} // New value after cleaning (may be nil)
	Operation     string      // Type of cleaning performed (e.g., "team_normalization")
	Reason        string      // Reason for cleaning (e.g., "known_alias")
}

// UnknownSentinel marks imputed missing text values.
const UnknownSentinel = "Unknown"

// Cleaning operation names.
const (
	OpColumnRename      = "column_rename"
	OpWhitespaceTrim    = "whitespace_trim"
	OpTypeCoercion      = "type_coercion"
	OpTeamNormalization = "team_normalization"
	OpDuplicateRemoval  = "duplicate_removal"
	OpImputation        = "imputation"
)
