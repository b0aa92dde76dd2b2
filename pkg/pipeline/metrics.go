// pkg/pipeline/metrics.go
package pipeline

import (
	"time"

	"go.uber.org/zap"
)

// StageMetrics tracks metrics for a single pipeline stage.
type StageMetrics struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Records   int
}

// Duration returns how long the stage ran.
func (sm *StageMetrics) Duration() time.Duration {
	if sm.EndTime.IsZero() {
		return time.Since(sm.StartTime)
	}
	return sm.EndTime.Sub(sm.StartTime)
}

// RunMetrics tracks metrics for a full pipeline run. The pipeline is
// single-threaded, so no locking is needed.
type RunMetrics struct {
	RunID          string
	StartTime      time.Time
	EndTime        time.Time
	Stages         []*StageMetrics
	RowsLoaded     int
	RowsCleaned    int
	CleaningOps    int
	IssuesFound    int
	AnomaliesFound int
	ChartsCreated  int
	logger         *zap.Logger
}

// NewRunMetrics creates a new RunMetrics instance.
func NewRunMetrics(runID string, logger *zap.Logger) *RunMetrics {
	return &RunMetrics{
		RunID:     runID,
		StartTime: time.Now(),
		Stages:    make([]*StageMetrics, 0),
		logger:    logger,
	}
}

// StartStage begins tracking a pipeline stage.
func (rm *RunMetrics) StartStage(name string) *StageMetrics {
	sm := &StageMetrics{
		Name:      name,
		StartTime: time.Now(),
	}
	rm.Stages = append(rm.Stages, sm)
	return sm
}

// EndStage completes tracking for a stage.
func (rm *RunMetrics) EndStage(sm *StageMetrics, records int) {
	sm.EndTime = time.Now()
	sm.Records = records

	if rm.logger != nil {
		rm.logger.Info("Stage complete",
			zap.String("stage", sm.Name),
			zap.Int("records", records),
			zap.Duration("duration", sm.Duration()))
	}
}

// Duration returns the total run duration.
func (rm *RunMetrics) Duration() time.Duration {
	if rm.EndTime.IsZero() {
		return time.Since(rm.StartTime)
	}
	return rm.EndTime.Sub(rm.StartTime)
}

// LogSummary emits the end-of-run summary.
func (rm *RunMetrics) LogSummary() {
	rm.EndTime = time.Now()

	if rm.logger == nil {
		return
	}
	rm.logger.Info("Pipeline run complete",
		zap.String("run_id", rm.RunID),
		zap.Duration("duration", rm.Duration()),
		zap.Int("rows_loaded", rm.RowsLoaded),
		zap.Int("rows_cleaned", rm.RowsCleaned),
		zap.Int("cleaning_operations", rm.CleaningOps),
		zap.Int("validation_issues", rm.IssuesFound),
		zap.Int("anomalies", rm.AnomaliesFound),
		zap.Int("charts", rm.ChartsCreated))
}
