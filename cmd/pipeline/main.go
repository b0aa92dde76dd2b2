// Package main runs the WNBA data-quality batch pipeline.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hoopsight/data-quality/pkg/config"
	"github.com/hoopsight/data-quality/pkg/model"
	"github.com/hoopsight/data-quality/pkg/pipeline"
	"github.com/hoopsight/data-quality/pkg/validator"
)

func main() {
	input := flag.String("input", "", "Path to raw CSV input (overrides RAW_DATA_PATH)")
	reportPath := flag.String("report", "", "Path to PDF report output (overrides REPORT_PATH)")
	metric := flag.String("metric", "", "Metric column for anomaly detection (overrides METRIC_COLUMN)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	if *input != "" {
		cfg.RawDataPath = *input
	}
	if *reportPath != "" {
		cfg.ReportPath = *reportPath
	}
	if *metric != "" {
		cfg.MetricColumn = *metric
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dataValidator, err := validator.NewDataValidator(model.WNBASchema(), logger)
	if err != nil {
		logger.Fatal("Failed to create validator", zap.Error(err))
	}

	p, err := pipeline.New(cfg, dataValidator, logger)
	if err != nil {
		logger.Fatal("Failed to create pipeline", zap.Error(err))
	}

	result, err := p.Run()
	if err != nil {
		logger.Error("Pipeline run failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Report written",
		zap.String("path", cfg.ReportPath),
		zap.Int("issues", len(result.Issues)),
		zap.Int("anomalies", len(result.Anomalies)))
}

// newLogger builds a zap logger from the configured level and format.
func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	if format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)

	return zapCfg.Build()
}
