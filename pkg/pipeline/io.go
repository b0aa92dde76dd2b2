// pkg/pipeline/io.go
package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hoopsight/data-quality/pkg/model"
)

// writeCSV opens path (creating parent directories), hands the writer
// to fill, and flushes and closes on every exit path.
func writeCSV(path string, fill func(w *csv.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory for %q: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := fill(w); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}

// WriteTableCSV writes the cleaned table with its canonical columns in
// table order.
func WriteTableCSV(table *model.Table, path string) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write(table.Columns); err != nil {
			return err
		}
		record := make([]string, len(table.Columns))
		for _, row := range table.Rows {
			for i, col := range table.Columns {
				record[i] = model.AsString(row[col])
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteIssuesCSV writes the validation issues, one row per issue.
// Dataset-level issues leave the row field empty.
func WriteIssuesCSV(issues []model.Issue, path string) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write([]string{"row", "column", "severity", "code", "message"}); err != nil {
			return err
		}
		for _, issue := range issues {
			row := ""
			if !issue.IsDatasetLevel() {
				row = strconv.Itoa(issue.Row)
			}
			record := []string{row, issue.Column, string(issue.Severity), issue.Code, issue.Message}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteAnomaliesCSV writes the anomaly records. The team column is
// included only when the source table carries one.
func WriteAnomaliesCSV(anomalies []model.AnomalyRecord, metric string, withTeam bool, path string) error {
	return writeCSV(path, func(w *csv.Writer) error {
		header := []string{"player_name", metric}
		if withTeam {
			header = append(header, "team")
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, a := range anomalies {
			record := []string{a.PlayerName, strconv.FormatFloat(a.Value, 'g', -1, 64)}
			if withTeam {
				record = append(record, a.Team)
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}
