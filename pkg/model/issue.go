// pkg/model/issue.go
package model

// Severity classifies how serious a validation finding is.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Issue codes. Stable machine-readable labels; downstream consumers
// key on these, so they must not change between releases.
const (
	CodeMissingColumn        = "MISSING_COLUMN"
	CodeOutOfRange           = "OUT_OF_RANGE"
	CodeMissingCriticalField = "MISSING_CRITICAL_FIELD"
	CodeInvalidCategory      = "INVALID_CATEGORY"
	CodeDuplicatePlayer      = "DUPLICATE_PLAYER"
	CodeDuplicateID          = "DUPLICATE_ID"
	CodeEmptyDataset         = "EMPTY_DATASET"
	CodeRosterOverflow       = "ROSTER_OVERFLOW"
)

// DatasetRow marks an issue that applies to the dataset as a whole
// rather than to a single row.
const DatasetRow = -1

// Issue is a single validation finding. Issues are pure outputs; the
// validator never mutates the table it inspects.
type Issue struct {
	Row      int      // Row index into the table, DatasetRow for dataset-wide issues
	Column   string   // Offending column, empty for dataset-wide issues
	Severity Severity // ERROR or WARNING
	Code     string   // Stable machine-readable label
	Message  string   // Human-readable description
}

// IsDatasetLevel reports whether the issue applies to the whole dataset.
func (i Issue) IsDatasetLevel() bool {
	return i.Row == DatasetRow
}
