// pkg/visualize/visualize.go
package visualize

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.uber.org/zap"

	"github.com/hoopsight/data-quality/pkg/model"
)

// Chart output file names.
const (
	chartPointsByTeam       = "points_by_team.png"
	chartPointsDistribution = "points_distribution.png"
	chartAnomaliesScatter   = "anomalies_scatter.png"
)

const histogramBins = 10

// Visualizer renders summary charts for a cleaned table as PNG files.
// It carries no business logic: missing columns skip the affected
// chart rather than failing the run.
type Visualizer struct {
	logger *zap.Logger
}

// NewVisualizer creates a new Visualizer instance.
func NewVisualizer(logger *zap.Logger) (*Visualizer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Visualizer{logger: logger}, nil
}

// CreateCharts writes the chart set for the table under outDir and
// returns a map from chart name to file path. Anomalies feed the
// scatter chart; the other charts ignore them.
func (v *Visualizer) CreateCharts(
	table *model.Table,
	anomalies []model.AnomalyRecord,
	metric string,
	outDir string,
) (map[string]string, error) {
	if table == nil {
		return nil, errors.New("table cannot be nil")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create charts directory %q: %w", outDir, err)
	}

	paths := make(map[string]string)

	if table.HasColumn("team") && table.HasColumn(metric) {
		path := filepath.Join(outDir, chartPointsByTeam)
		if err := v.renderTeamAverages(table, metric, path); err != nil {
			return nil, err
		}
		paths["points_by_team"] = path
	}

	if table.HasColumn(metric) {
		path := filepath.Join(outDir, chartPointsDistribution)
		if err := v.renderDistribution(table, metric, path); err != nil {
			return nil, err
		}
		paths["points_distribution"] = path
	}

	if len(anomalies) > 0 && table.HasColumn(metric) && table.HasColumn("games_played") {
		path := filepath.Join(outDir, chartAnomaliesScatter)
		if err := v.renderAnomalyScatter(table, anomalies, metric, path); err != nil {
			return nil, err
		}
		paths["anomalies_scatter"] = path
	}

	v.logger.Info("Charts created",
		zap.Int("count", len(paths)),
		zap.String("dir", outDir))

	return paths, nil
}

// renderTeamAverages draws a bar chart of the mean metric value per
// team, sorted ascending.
func (v *Visualizer) renderTeamAverages(table *model.Table, metric, path string) error {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, row := range table.Rows {
		team := model.AsString(row["team"])
		value, ok := model.AsFloat(row[metric])
		if team == "" || !ok {
			continue
		}
		sums[team] += value
		counts[team]++
	}
	if len(counts) == 0 {
		return nil
	}

	bars := make([]chart.Value, 0, len(counts))
	for team, count := range counts {
		bars = append(bars, chart.Value{
			Label: team,
			Value: sums[team] / float64(count),
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Value < bars[j].Value })

	graph := chart.BarChart{
		Title:      fmt.Sprintf("Average %s by Team", metric),
		Height:     512,
		BarWidth:   48,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Bars:       bars,
	}

	return renderPNG(&graph, path)
}

// renderDistribution draws a fixed-bin histogram of the metric values.
func (v *Visualizer) renderDistribution(table *model.Table, metric, path string) error {
	var values []float64
	for _, row := range table.Rows {
		if f, ok := model.AsFloat(row[metric]); ok {
			values = append(values, f)
		}
	}
	if len(values) == 0 {
		return nil
	}

	min, max := values[0], values[0]
	for _, f := range values {
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
	}

	width := (max - min) / histogramBins
	if width == 0 {
		width = 1 // all values identical, single bucket
	}

	frequencies := make([]int, histogramBins)
	for _, f := range values {
		bin := int((f - min) / width)
		if bin >= histogramBins {
			bin = histogramBins - 1
		}
		frequencies[bin]++
	}

	bars := make([]chart.Value, histogramBins)
	for i, freq := range frequencies {
		bars[i] = chart.Value{
			Label: fmt.Sprintf("%.1f", min+float64(i)*width),
			Value: float64(freq),
		}
	}

	graph := chart.BarChart{
		Title:      fmt.Sprintf("Distribution of %s", metric),
		Height:     512,
		BarWidth:   40,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Bars:       bars,
	}

	return renderPNG(&graph, path)
}

// renderAnomalyScatter draws metric against games_played with the
// anomalous rows highlighted.
func (v *Visualizer) renderAnomalyScatter(
	table *model.Table,
	anomalies []model.AnomalyRecord,
	metric, path string,
) error {
	flagged := make(map[int]bool, len(anomalies))
	for _, a := range anomalies {
		if a.Metric == metric {
			flagged[a.Row] = true
		}
	}

	var xs, ys, axs, ays []float64
	for i, row := range table.Rows {
		x, okX := model.AsFloat(row["games_played"])
		y, okY := model.AsFloat(row[metric])
		if !okX || !okY {
			continue
		}
		if flagged[i] {
			axs = append(axs, x)
			ays = append(ays, y)
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) == 0 && len(axs) == 0 {
		return nil
	}

	var series []chart.Series
	if len(xs) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name: "Normal",
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
			},
			XValues: xs,
			YValues: ys,
		})
	}
	if len(axs) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name: "Anomaly",
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    8,
				DotColor:    drawing.ColorRed,
			},
			XValues: axs,
			YValues: ays,
		})
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s vs games_played (anomalies highlighted)", metric),
		Height: 512,
		XAxis:  chart.XAxis{Name: "games_played"},
		YAxis:  chart.YAxis{Name: metric},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(&graph, path)
}

// renderable is satisfied by every go-chart graph type.
type renderable interface {
	Render(provider chart.RendererProvider, w io.Writer) error
}

// renderPNG writes a chart to disk, closing the file on every path.
func renderPNG(graph renderable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file %q: %w", path, err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("failed to render chart %q: %w", path, err)
	}
	return nil
}
