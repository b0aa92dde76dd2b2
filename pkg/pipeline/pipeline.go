// pkg/pipeline/pipeline.go
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hoopsight/data-quality/pkg/anomaly"
	"github.com/hoopsight/data-quality/pkg/cleaner"
	"github.com/hoopsight/data-quality/pkg/config"
	"github.com/hoopsight/data-quality/pkg/extract"
	"github.com/hoopsight/data-quality/pkg/model"
	"github.com/hoopsight/data-quality/pkg/report"
	"github.com/hoopsight/data-quality/pkg/visualize"
)

// Pipeline orchestrates the full batch run: extract, clean, validate,
// detect anomalies, render charts, and compile the PDF report. The run
// is a strict linear sequence over an in-memory table; only a load
// error aborts it, every other defect becomes data in the outputs.
type Pipeline struct {
	cfg        *config.Config
	extractor  *extract.Extractor
	cleaner    *cleaner.DataCleaner
	validator  Validator
	detector   *anomaly.Detector
	visualizer *visualize.Visualizer
	reporter   *report.Reporter
	logger     *zap.Logger
}

// Validator is the subset of the validation engine the pipeline needs.
type Validator interface {
	Validate(table *model.Table) ([]model.Issue, error)
}

// Result summarizes one completed pipeline run.
type Result struct {
	RunID     string
	Cleaned   *model.Table
	Issues    []model.Issue
	Anomalies []model.AnomalyRecord
	Charts    map[string]string
	Metrics   *RunMetrics
}

// New wires the pipeline stages for the WNBA schema. The schema and
// alias map come from the model package; everything else is configured
// through cfg.
func New(cfg *config.Config, validator Validator, logger *zap.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if validator == nil {
		return nil, errors.New("validator cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	extractor, err := extract.NewExtractor(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}
	dataCleaner, err := cleaner.NewDataCleaner(model.WNBASchema(), model.TeamAliases(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create cleaner: %w", err)
	}
	detector, err := anomaly.NewDetector(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create detector: %w", err)
	}
	visualizer, err := visualize.NewVisualizer(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create visualizer: %w", err)
	}
	reporter, err := report.NewReporter(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create reporter: %w", err)
	}

	return &Pipeline{
		cfg:        cfg,
		extractor:  extractor,
		cleaner:    dataCleaner,
		validator:  validator,
		detector:   detector,
		visualizer: visualizer,
		reporter:   reporter,
		logger:     logger,
	}, nil
}

// Run executes the pipeline end to end and returns the run result.
func (p *Pipeline) Run() (*Result, error) {
	runID := uuid.New().String()
	logger := p.logger.With(zap.String("run_id", runID))
	metrics := NewRunMetrics(runID, logger)

	logger.Info("Starting pipeline run", zap.String("input", p.cfg.RawDataPath))

	// Extract. A missing or empty input aborts before cleaning begins.
	stage := metrics.StartStage("extract")
	raw, err := p.extractor.LoadCSV(p.cfg.RawDataPath)
	if err != nil {
		return nil, fmt.Errorf("load failed: %w", err)
	}
	metrics.EndStage(stage, raw.NumRows())
	metrics.RowsLoaded = raw.NumRows()

	// Clean.
	stage = metrics.StartStage("clean")
	cleaned, operations, err := p.cleaner.Clean(raw)
	if err != nil {
		return nil, fmt.Errorf("cleaning failed: %w", err)
	}
	metrics.EndStage(stage, cleaned.NumRows())
	metrics.RowsCleaned = cleaned.NumRows()
	metrics.CleaningOps = len(operations)

	if err := WriteTableCSV(cleaned, p.cfg.CleanedDataPath); err != nil {
		return nil, err
	}

	// Validate. Findings are advisory data, never a run failure.
	stage = metrics.StartStage("validate")
	issues, err := p.validator.Validate(cleaned)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	metrics.EndStage(stage, len(issues))
	metrics.IssuesFound = len(issues)

	if err := WriteIssuesCSV(issues, p.cfg.ValidationPath); err != nil {
		return nil, err
	}

	// Detect anomalies on the configured metric. An absent metric column
	// is already reported as a validation issue, so it degrades to an
	// empty anomaly set rather than aborting the run.
	stage = metrics.StartStage("detect")
	anomalies, err := p.detector.Detect(cleaned, p.cfg.MetricColumn)
	if err != nil {
		if !errors.Is(err, anomaly.ErrUnknownMetric) {
			return nil, fmt.Errorf("anomaly detection failed: %w", err)
		}
		logger.Warn("Metric column not in input, skipping anomaly detection",
			zap.String("metric", p.cfg.MetricColumn))
		anomalies = nil
	}
	metrics.EndStage(stage, len(anomalies))
	metrics.AnomaliesFound = len(anomalies)

	if err := WriteAnomaliesCSV(anomalies, p.cfg.MetricColumn, cleaned.HasColumn("team"), p.cfg.AnomaliesPath); err != nil {
		return nil, err
	}

	// Charts.
	stage = metrics.StartStage("visualize")
	charts, err := p.visualizer.CreateCharts(cleaned, anomalies, p.cfg.MetricColumn, p.cfg.ChartsDir)
	if err != nil {
		return nil, fmt.Errorf("chart rendering failed: %w", err)
	}
	metrics.EndStage(stage, len(charts))
	metrics.ChartsCreated = len(charts)

	// Report.
	stage = metrics.StartStage("report")
	summary := report.Summary{
		RunID:        runID,
		GeneratedAt:  time.Now(),
		SourcePath:   p.cfg.RawDataPath,
		Rows:         cleaned.NumRows(),
		Columns:      cleaned.NumColumns(),
		Teams:        countTeams(cleaned),
		CleaningOps:  len(operations),
		IssueCount:   len(issues),
		AnomalyCount: len(anomalies),
	}
	if err := p.reporter.Generate(summary, issues, anomalies, charts, p.cfg.ReportPath); err != nil {
		return nil, fmt.Errorf("report generation failed: %w", err)
	}
	metrics.EndStage(stage, 1)

	metrics.LogSummary()

	return &Result{
		RunID:     runID,
		Cleaned:   cleaned,
		Issues:    issues,
		Anomalies: anomalies,
		Charts:    charts,
		Metrics:   metrics,
	}, nil
}

// countTeams returns the number of distinct team values in the table.
func countTeams(table *model.Table) int {
	if !table.HasColumn("team") {
		return 0
	}
	teams := make(map[string]bool)
	for _, row := range table.Rows {
		if team := model.AsString(row["team"]); team != "" {
			teams[team] = true
		}
	}
	return len(teams)
}
