// pkg/extract/extract.go
package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/hoopsight/data-quality/pkg/model"
)

// Extraction errors.
var (
	ErrEmptyInput = errors.New("input file contains no data rows")
	ErrNoHeader   = errors.New("input file has no header row")
)

// naSpellings are source values treated as null on load, compared
// case-insensitively after trimming.
var naSpellings = map[string]bool{
	"na":   true,
	"n/a":  true,
	"null": true,
	"none": true,
	"-":    true,
}

// Extractor reads raw CSV extracts into tables.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates a new Extractor instance.
func NewExtractor(logger *zap.Logger) (*Extractor, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Extractor{logger: logger}, nil
}

// LoadCSV reads the CSV file at path into a table. The first record is
// the header row defining source column names. A missing file or a file
// with zero data rows is a load error, never a silent empty success.
func (e *Extractor) LoadCSV(path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raw data file %q: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows handled below

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file %q: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoHeader, path)
	}
	if len(records) == 1 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyInput, path)
	}

	header := records[0]
	table := model.NewTable(header)

	for _, record := range records[1:] {
		row := make(model.Row, len(header))
		for i, col := range header {
			// Short rows pad with nulls; extra trailing fields are dropped.
			if i >= len(record) {
				row[col] = nil
				continue
			}
			row[col] = cellValue(record[i])
		}
		table.Rows = append(table.Rows, row)
	}

	e.logger.Info("Loaded raw data",
		zap.String("path", path),
		zap.Int("rows", table.NumRows()),
		zap.Int("columns", table.NumColumns()))

	return table, nil
}

// cellValue maps a raw CSV field to its initial cell value. Empty and
// NA-spelled fields load as null; everything else stays a string for
// the cleaner to coerce.
func cellValue(field string) interface{} {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" || naSpellings[strings.ToLower(trimmed)] {
		return nil
	}
	return field
}
