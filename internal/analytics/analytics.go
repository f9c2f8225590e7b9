// Package analytics turns employee snapshots into chart-ready label/series
// data and summary statistics. It is read-only: aggregation happens over
// rows the store already fetched, never by mutating anything.
package analytics

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/rosterhq/roster/internal/model"
)

// ErrInvalidRequest marks chart requests that a user can trigger with bad
// input: unknown chart kinds, missing or unrecognized axes, bad
// aggregations. Callers render these as a structured error payload rather
// than a server fault.
var ErrInvalidRequest = errors.New("invalid chart request")

// ChartKind enumerates the supported chart types. Dispatch over kinds is
// exhaustive; adding a kind means adding an arm in BuildChart.
type ChartKind string

const (
	KindBar       ChartKind = "bar"
	KindLine      ChartKind = "line"
	KindPie       ChartKind = "pie"
	KindScatter   ChartKind = "scatter"
	KindHistogram ChartKind = "histogram"
	KindBox       ChartKind = "box"
)

// ParseChartKind validates a chart type string.
func ParseChartKind(s string) (ChartKind, error) {
	switch ChartKind(s) {
	case KindBar, KindLine, KindPie, KindScatter, KindHistogram, KindBox:
		return ChartKind(s), nil
	default:
		return "", fmt.Errorf("%w: unsupported chart type %q", ErrInvalidRequest, s)
	}
}

// ChartRequest describes one chart computation. YAxis is required for
// bar/line/pie (where "count" or "" means record counts) and scatter
// (where it must be a numeric column); histogram always aggregates the
// x-axis column's own distribution and ignores YAxis.
type ChartRequest struct {
	Kind      ChartKind
	XAxis     string
	YAxis     string
	Aggregate string // "count", "sum", or "avg"; defaults per chart kind
	GroupBy   string // "", "year", or "month"; temporal bucketing for date axes
}

// Point is a single scatter coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dataset is one named series. Data holds []float64 for bar/line/pie/
// histogram/box and []Point for scatter, aligned positionally with the
// chart labels.
type Dataset struct {
	Label string      `json:"label"`
	Data  interface{} `json:"data"`
	Color string      `json:"color"`
}

// Chart is the chart-ready aggregation result.
type Chart struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// chartColumns are the employee attributes charts may reference.
var chartColumns = map[string]bool{
	"id":        true,
	"full_name": true,
	"position":  true,
	"hire_date": true,
	"salary":    true,
	"boss_id":   true,
}

// numericColumns are the columns usable as y-axis aggregation input and
// histogram/scatter axes.
var numericColumns = map[string]bool{
	"id":     true,
	"salary": true,
}

// BuildChart computes the chart described by req over the given snapshot.
// All request-shape failures wrap ErrInvalidRequest.
func BuildChart(req ChartRequest, employees []model.Employee) (*Chart, error) {
	if req.XAxis == "" {
		return nil, fmt.Errorf("%w: x_axis is required", ErrInvalidRequest)
	}
	if !chartColumns[req.XAxis] {
		return nil, fmt.Errorf("%w: unknown column %q", ErrInvalidRequest, req.XAxis)
	}

	switch req.Kind {
	case KindBar, KindPie:
		return groupedChart(req, employees)
	case KindLine:
		return groupedChart(req, employees)
	case KindScatter:
		return scatterChart(req, employees)
	case KindHistogram:
		return histogramChart(req, employees)
	case KindBox:
		return boxChart(req, employees)
	default:
		return nil, fmt.Errorf("%w: unsupported chart type %q", ErrInvalidRequest, string(req.Kind))
	}
}

// groupedChart serves bar, pie, and line: group records by the x-axis
// value (optionally time-bucketed), then count or aggregate a numeric
// column per group. Labels come out sorted, which for bucketed dates means
// chronological order.
func groupedChart(req ChartRequest, employees []model.Employee) (*Chart, error) {
	agg, err := resolveAggregate(req)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]float64)
	counts := make(map[string]int)
	for _, e := range employees {
		label, ok := groupLabel(e, req.XAxis, req.GroupBy)
		if !ok {
			continue
		}
		counts[label]++
		if agg != "count" {
			v, ok := numericValue(e, req.YAxis)
			if !ok {
				continue
			}
			groups[label] = append(groups[label], v)
		}
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	data := make([]float64, len(labels))
	for i, label := range labels {
		switch agg {
		case "count":
			data[i] = float64(counts[label])
		case "sum":
			data[i] = sum(groups[label])
		case "avg":
			data[i] = mean(groups[label])
		}
	}

	seriesLabel := agg
	if agg != "count" {
		seriesLabel = agg + " " + req.YAxis
	}
	colors := Colors(1)

	return &Chart{
		Labels: labels,
		Datasets: []Dataset{{
			Label: seriesLabel + " by " + req.XAxis,
			Data:  data,
			Color: colors[0],
		}},
	}, nil
}

// resolveAggregate picks the per-group aggregation for bar/line/pie.
func resolveAggregate(req ChartRequest) (string, error) {
	if req.YAxis == "" || req.YAxis == "count" {
		return "count", nil
	}
	if !numericColumns[req.YAxis] {
		return "", fmt.Errorf("%w: y_axis %q is not a numeric column", ErrInvalidRequest, req.YAxis)
	}
	switch req.Aggregate {
	case "", "avg":
		return "avg", nil
	case "sum":
		return "sum", nil
	case "count":
		return "count", nil
	default:
		return "", fmt.Errorf("%w: unsupported aggregation %q", ErrInvalidRequest, req.Aggregate)
	}
}

// scatterChart emits one (x, y) pair per record. Both axes must be numeric.
func scatterChart(req ChartRequest, employees []model.Employee) (*Chart, error) {
	if !numericColumns[req.XAxis] {
		return nil, fmt.Errorf("%w: scatter x_axis %q must be numeric", ErrInvalidRequest, req.XAxis)
	}
	if req.YAxis == "" {
		return nil, fmt.Errorf("%w: y_axis is required for scatter", ErrInvalidRequest)
	}
	if !numericColumns[req.YAxis] {
		return nil, fmt.Errorf("%w: scatter y_axis %q must be numeric", ErrInvalidRequest, req.YAxis)
	}

	points := make([]Point, 0, len(employees))
	for _, e := range employees {
		x, okX := numericValue(e, req.XAxis)
		y, okY := numericValue(e, req.YAxis)
		if !okX || !okY {
			continue
		}
		points = append(points, Point{X: x, Y: y})
	}

	colors := Colors(1)
	return &Chart{
		Datasets: []Dataset{{
			Label: req.YAxis + " vs " + req.XAxis,
			Data:  points,
			Color: colors[0],
		}},
	}, nil
}

// histogramBins is the fixed bin count for histograms.
const histogramBins = 10

// histogramChart buckets the x-axis column's values into equal-width bins.
// The bin counts always sum to the number of records with a usable x value.
func histogramChart(req ChartRequest, employees []model.Employee) (*Chart, error) {
	if !numericColumns[req.XAxis] {
		return nil, fmt.Errorf("%w: histogram x_axis %q must be numeric", ErrInvalidRequest, req.XAxis)
	}

	values := make([]float64, 0, len(employees))
	for _, e := range employees {
		if v, ok := numericValue(e, req.XAxis); ok {
			values = append(values, v)
		}
	}

	colors := Colors(1)
	if len(values) == 0 {
		return &Chart{
			Labels:   []string{},
			Datasets: []Dataset{{Label: req.XAxis, Data: []float64{}, Color: colors[0]}},
		}, nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	bins := histogramBins
	if lo == hi {
		bins = 1
	}
	width := (hi - lo) / float64(bins)

	labels := make([]string, bins)
	data := make([]float64, bins)
	for i := 0; i < bins; i++ {
		lower := lo + float64(i)*width
		upper := lower + width
		labels[i] = formatNum(lower) + " - " + formatNum(upper)
	}
	for _, v := range values {
		idx := bins - 1
		if width > 0 {
			idx = int((v - lo) / width)
			if idx >= bins { // the max value lands in the last bin
				idx = bins - 1
			}
		}
		data[idx]++
	}

	return &Chart{
		Labels:   labels,
		Datasets: []Dataset{{Label: req.XAxis, Data: data, Color: colors[0]}},
	}, nil
}

// boxChart computes a five-number summary of the y-axis column for each
// distinct x-axis value, one dataset per group in label order.
func boxChart(req ChartRequest, employees []model.Employee) (*Chart, error) {
	if req.YAxis == "" {
		return nil, fmt.Errorf("%w: y_axis is required for box", ErrInvalidRequest)
	}
	if !numericColumns[req.YAxis] {
		return nil, fmt.Errorf("%w: box y_axis %q must be numeric", ErrInvalidRequest, req.YAxis)
	}

	groups := make(map[string][]float64)
	for _, e := range employees {
		label, ok := groupLabel(e, req.XAxis, req.GroupBy)
		if !ok {
			continue
		}
		v, ok := numericValue(e, req.YAxis)
		if !ok {
			continue
		}
		groups[label] = append(groups[label], v)
	}

	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	colors := Colors(len(labels))
	datasets := make([]Dataset, len(labels))
	for i, label := range labels {
		s := fiveNumberSummary(groups[label])
		datasets[i] = Dataset{
			Label: label,
			Data:  []float64{s.Min, s.Q1, s.Median, s.Q3, s.Max},
			Color: colors[i],
		}
	}

	return &Chart{Labels: labels, Datasets: datasets}, nil
}

// groupLabel renders the grouping key for one record. ok is false when the
// record has no usable value for the column (a missing boss reference).
func groupLabel(e model.Employee, column, groupBy string) (string, bool) {
	switch column {
	case "id":
		return strconv.FormatInt(e.ID, 10), true
	case "full_name":
		return e.FullName, true
	case "position":
		return e.Position, true
	case "salary":
		return strconv.FormatInt(e.Salary, 10), true
	case "boss_id":
		if e.BossID == nil {
			return "", false
		}
		return strconv.FormatInt(*e.BossID, 10), true
	case "hire_date":
		switch groupBy {
		case "year":
			if len(e.HireDate) >= 4 {
				return e.HireDate[:4], true
			}
		case "month":
			if len(e.HireDate) >= 7 {
				return e.HireDate[:7], true
			}
		}
		return e.HireDate, e.HireDate != ""
	default:
		return "", false
	}
}

// numericValue extracts a numeric column from a record.
func numericValue(e model.Employee, column string) (float64, bool) {
	switch column {
	case "id":
		return float64(e.ID), true
	case "salary":
		return float64(e.Salary), true
	default:
		return 0, false
	}
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
