package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hoopsight/data-quality/pkg/model"
)

func testSummary() Summary {
	return Summary{
		RunID:        "test-run",
		GeneratedAt:  time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC),
		SourcePath:   "data/raw/wnba_raw.csv",
		Rows:         5,
		Columns:      11,
		Teams:        3,
		CleaningOps:  7,
		IssueCount:   3,
		AnomalyCount: 1,
	}
}

func TestNewReporter_NilLogger(t *testing.T) {
	_, err := NewReporter(nil)
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	r, err := NewReporter(zap.NewNop())
	require.NoError(t, err)

	issues := []model.Issue{
		{Row: model.DatasetRow, Column: "games_played", Severity: model.SeverityError, Code: model.CodeMissingColumn, Message: "Missing required column: games_played"},
		{Row: 3, Column: "points_per_game", Severity: model.SeverityError, Code: model.CodeOutOfRange, Message: "Value 55 in 'points_per_game' above upper bound 40"},
	}
	anomalies := []model.AnomalyRecord{
		{Row: 3, PlayerName: "B. Jones", Team: "Atlanta Dream", Metric: "points_per_game", Value: 55},
	}

	outPath := filepath.Join(t.TempDir(), "reports", "report.pdf")
	err = r.Generate(testSummary(), issues, anomalies, nil, outPath)
	require.NoError(t, err)

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerate_EmptyFindings(t *testing.T) {
	r, err := NewReporter(zap.NewNop())
	require.NoError(t, err)

	outPath := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, r.Generate(testSummary(), nil, nil, nil, outPath))

	_, err = os.Stat(outPath)
	assert.NoError(t, err)
}

func TestGenerate_SkipsMissingChartImages(t *testing.T) {
	r, err := NewReporter(zap.NewNop())
	require.NoError(t, err)

	charts := map[string]string{
		"points_by_team": filepath.Join(t.TempDir(), "never_written.png"),
	}

	outPath := filepath.Join(t.TempDir(), "report.pdf")
	assert.NoError(t, r.Generate(testSummary(), nil, nil, charts, outPath))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "this is...", truncate("this is far too long", 10))

	// Multi-byte names must not be cut mid-rune.
	got := truncate("Ñahimana Uwizeyimana", 10)
	assert.Equal(t, "Ñahiman...", got)
	assert.True(t, utf8.ValidString(got))
}
