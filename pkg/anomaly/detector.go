// pkg/anomaly/detector.go
package anomaly

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/hoopsight/data-quality/pkg/model"
)

// minSamples is the fewest non-null values for which quartiles are
// meaningful. Below this the IQR is degenerate and detection returns an
// empty result rather than spurious flags.
const minSamples = 4

// iqrMultiplier sets the outlier fences at 1.5 IQRs beyond the
// quartiles, the standard Tukey rule.
const iqrMultiplier = 1.5

// ErrUnknownMetric is returned when the requested metric column is not
// present in the table.
var ErrUnknownMetric = errors.New("metric column not found in table")

// Detector flags statistical outliers in numeric metric columns using
// the IQR rule. It is read-only and side-effect-free.
type Detector struct {
	logger *zap.Logger
}

// NewDetector creates a new Detector instance.
func NewDetector(logger *zap.Logger) (*Detector, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Detector{logger: logger}, nil
}

// Detect returns the rows whose value in metric lies strictly outside
// the IQR fences, in original table order. It works with any numeric
// column, not only the default metric.
func (d *Detector) Detect(table *model.Table, metric string) ([]model.AnomalyRecord, error) {
	if table == nil {
		return nil, errors.New("table cannot be nil")
	}
	if !table.HasColumn(metric) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}

	var values []float64
	for _, row := range table.Rows {
		if f, ok := model.AsFloat(row[metric]); ok {
			values = append(values, f)
		}
	}

	if len(values) < minSamples {
		d.logger.Warn("Too few values for IQR detection",
			zap.String("metric", metric),
			zap.Int("values", len(values)),
			zap.Int("required", minSamples))
		return nil, nil
	}

	sort.Float64s(values)
	q1 := stat.Quantile(0.25, stat.LinInterp, values, nil)
	q3 := stat.Quantile(0.75, stat.LinInterp, values, nil)
	iqr := q3 - q1
	lower := q1 - iqrMultiplier*iqr
	upper := q3 + iqrMultiplier*iqr

	var anomalies []model.AnomalyRecord
	for i, row := range table.Rows {
		f, ok := model.AsFloat(row[metric])
		if !ok {
			continue
		}
		if f >= lower && f <= upper {
			continue
		}
		anomalies = append(anomalies, model.AnomalyRecord{
			Row:        i,
			PlayerName: model.AsString(row["player_name"]),
			Team:       model.AsString(row["team"]),
			Metric:     metric,
			Value:      f,
		})
	}

	d.logger.Info("Anomaly detection complete",
		zap.String("metric", metric),
		zap.Float64("lower_bound", lower),
		zap.Float64("upper_bound", upper),
		zap.Int("anomalies", len(anomalies)))

	return anomalies, nil
}

// DetectAll runs Detect over every metric column in order and
// concatenates the results.
func (d *Detector) DetectAll(table *model.Table, metrics []string) ([]model.AnomalyRecord, error) {
	var all []model.AnomalyRecord
	for _, metric := range metrics {
		records, err := d.Detect(table, metric)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}
