// pkg/report/report.go
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/hoopsight/data-quality/pkg/model"
)

// maxTableRows caps how many issue/anomaly rows are rendered in the
// PDF; the full lists live in the CSV outputs.
const maxTableRows = 40

// Summary carries the run-level figures shown on the report title page.
type Summary struct {
	RunID        string
	GeneratedAt  time.Time
	SourcePath   string
	Rows         int
	Columns      int
	Teams        int
	CleaningOps  int
	IssueCount   int
	AnomalyCount int
}

// Reporter assembles the data-quality PDF. Like the visualizer it is a
// thin collaborator: it formats prior outputs and holds no rules.
type Reporter struct {
	logger *zap.Logger
}

// NewReporter creates a new Reporter instance.
func NewReporter(logger *zap.Logger) (*Reporter, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Reporter{logger: logger}, nil
}

// Generate writes the PDF report: title page with summary statistics,
// the validation-issue table, the anomaly table, and one page per
// chart image. The generation timestamp is the only non-deterministic
// content.
func (r *Reporter) Generate(
	summary Summary,
	issues []model.Issue,
	anomalies []model.AnomalyRecord,
	chartPaths map[string]string,
	outPath string,
) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)

	r.titlePage(pdf, summary)
	r.issuePage(pdf, issues)
	r.anomalyPage(pdf, anomalies)
	r.chartPages(pdf, chartPaths)

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("failed to write report %q: %w", outPath, err)
	}

	r.logger.Info("Report generated",
		zap.String("path", outPath),
		zap.String("run_id", summary.RunID))

	return nil
}

func (r *Reporter) titlePage(pdf *fpdf.Fpdf, s Summary) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 14, "WNBA Data Quality Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Run %s - generated %s", s.RunID, s.GeneratedAt.Format(time.RFC3339)), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Source file: %s", s.SourcePath),
		fmt.Sprintf("Total records: %d", s.Rows),
		fmt.Sprintf("Total columns: %d", s.Columns),
		fmt.Sprintf("Number of teams: %d", s.Teams),
		fmt.Sprintf("Cleaning operations applied: %d", s.CleaningOps),
		fmt.Sprintf("Validation issues: %d", s.IssueCount),
		fmt.Sprintf("Anomalies detected: %d", s.AnomalyCount),
	}
	for _, line := range lines {
		pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}
}

func (r *Reporter) issuePage(pdf *fpdf.Fpdf, issues []model.Issue) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Validation Issues", "", 1, "L", false, 0, "")

	if len(issues) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, "No validation issues found.", "", 1, "L", false, 0, "")
		return
	}

	widths := []float64{14, 34, 22, 44, 76}
	headers := []string{"Row", "Column", "Severity", "Code", "Message"}

	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for i, issue := range issues {
		if i >= maxTableRows {
			pdf.CellFormat(0, 7, fmt.Sprintf("... and %d more (see validation CSV)", len(issues)-maxTableRows), "", 1, "L", false, 0, "")
			break
		}
		row := ""
		if !issue.IsDatasetLevel() {
			row = fmt.Sprintf("%d", issue.Row)
		}
		cells := []string{row, issue.Column, string(issue.Severity), issue.Code, truncate(issue.Message, 60)}
		for j, cell := range cells {
			pdf.CellFormat(widths[j], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func (r *Reporter) anomalyPage(pdf *fpdf.Fpdf, anomalies []model.AnomalyRecord) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Anomalies", "", 1, "L", false, 0, "")

	if len(anomalies) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, "No anomalies detected.", "", 1, "L", false, 0, "")
		return
	}

	widths := []float64{60, 44, 30, 56}
	headers := []string{"Player", "Metric", "Value", "Team"}

	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for i, a := range anomalies {
		if i >= maxTableRows {
			pdf.CellFormat(0, 7, fmt.Sprintf("... and %d more (see anomalies CSV)", len(anomalies)-maxTableRows), "", 1, "L", false, 0, "")
			break
		}
		cells := []string{a.PlayerName, a.Metric, fmt.Sprintf("%.2f", a.Value), a.Team}
		for j, cell := range cells {
			pdf.CellFormat(widths[j], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// chartPages embeds each chart image on its own page, in stable name
// order. Charts that were skipped or deleted are silently omitted.
func (r *Reporter) chartPages(pdf *fpdf.Fpdf, chartPaths map[string]string) {
	names := make([]string, 0, len(chartPaths))
	for name := range chartPaths {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := chartPaths[name]
		if _, err := os.Stat(path); err != nil {
			r.logger.Warn("Skipping missing chart image", zap.String("path", path))
			continue
		}

		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 10, name, "", 1, "C", false, 0, "")
		pdf.ImageOptions(path, 15, 30, 180, 0, false, fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
