package analytics

import (
	"errors"
	"reflect"
	"testing"

	"github.com/rosterhq/roster/internal/model"
)

func int64p(v int64) *int64 { return &v }

// fixtureEmployees mirrors the seed dataset used across the store tests.
func fixtureEmployees() []model.Employee {
	return []model.Employee{
		{ID: 1, FullName: "Ivan Ivanov", Position: "Developer", HireDate: "2020-01-15", Salary: 100000},
		{ID: 2, FullName: "Petr Petrov", Position: "Manager", HireDate: "2021-05-20", Salary: 150000, BossID: int64p(1)},
		{ID: 3, FullName: "Sidor Sidorov", Position: "Analyst", HireDate: "2022-03-10", Salary: 120000, BossID: int64p(2)},
		{ID: 4, FullName: "Anna Annova", Position: "Developer", HireDate: "2023-08-05", Salary: 110000, BossID: int64p(1)},
		{ID: 5, FullName: "Maria Marinova", Position: "Tester", HireDate: "2024-01-10", Salary: 90000, BossID: int64p(2)},
	}
}

func TestParseChartKind(t *testing.T) {
	for _, kind := range []string{"bar", "line", "pie", "scatter", "histogram", "box"} {
		if _, err := ParseChartKind(kind); err != nil {
			t.Errorf("ParseChartKind(%q) unexpected error: %v", kind, err)
		}
	}

	_, err := ParseChartKind("unknown")
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("ParseChartKind(unknown) error = %v, want ErrInvalidRequest", err)
	}
}

func TestBarChartCountByPosition(t *testing.T) {
	chart, err := BuildChart(ChartRequest{Kind: KindBar, XAxis: "position", YAxis: "count"}, fixtureEmployees())
	if err != nil {
		t.Fatalf("BuildChart: %v", err)
	}

	wantLabels := []string{"Analyst", "Developer", "Manager", "Tester"}
	if !reflect.DeepEqual(chart.Labels, wantLabels) {
		t.Errorf("labels = %v, want %v", chart.Labels, wantLabels)
	}
	if len(chart.Datasets) != 1 {
		t.Fatalf("datasets = %d, want 1", len(chart.Datasets))
	}

	data, ok := chart.Datasets[0].Data.([]float64)
	if !ok {
		t.Fatalf("dataset data type = %T, want []float64", chart.Datasets[0].Data)
	}
	wantData := []float64{1, 2, 1, 1}
	if !reflect.DeepEqual(data, wantData) {
		t.Errorf("data = %v, want %v", data, wantData)
	}
	if chart.Datasets[0].Color == "" {
		t.Error("dataset color is empty")
	}
}

func TestPieChartValuesSumToRecordCount(t *testing.T) {
	chart, err := BuildChart(ChartRequest{Kind: KindPie, XAxis: "position", YAxis: "count"}, fixtureEmployees())
	if err != nil {
		t.Fatalf("BuildChart: %v", err)
	}

	data := chart.Datasets[0].Data.([]float64)
	var total float64
	for _, v := range data {
		total += v
	}
	if total != 5 {
		t.Errorf("pie values sum = %v, want 5", total)
	}
}

func TestBarChartAvgSalaryByPosition(t *testing.T) {
	chart, err := BuildChart(ChartRequest{
		Kind: KindBar, XAxis: "position", YAxis: "salary", Aggregate: "avg",
	}, fixtureEmployees())
	if err != nil {
		t.Fatalf("BuildChart: %v", err)
	}

	data := chart.Datasets[0].Data.([]float64)
	// Labels sort to [Analyst, Developer, Manager, Tester].
	want := []float64{120000, 105000, 150000, 90000}
	if !reflect.DeepEqual(data, want) {
		t.Errorf("avg salaries = %v, want %v", data, want)
	}
}

func TestLineChartGroupsByYear(t *testing.T) {
	chart, err := BuildChart(ChartRequest{
		Kind: KindLine, XAxis: "hire_date", YAxis: "count", GroupBy: "year",
	}, fixtureEmployees())
	if err != nil {
		t.Fatalf("BuildChart: %v", err)
	}

	wantLabels := []string{"2020", "2021", "2022", "2023", "2024"}
	if !reflect.DeepEqual(chart.Labels, wantLabels) {
		t.Errorf("labels = %v, want %v", chart.Labels, wantLabels)
	}
	data := chart.Datasets[0].Data.([]float64)
	want := []float64{1, 1, 1, 1, 1}
	if !reflect.DeepEqual(data, want) {
		t.Errorf("data = %v, want %v", data, want)
	}
}

func TestScatterChartEmitsOnePointPerRecord(t *testing.T) {
	chart, err := BuildChart(ChartRequest{Kind: KindScatter, XAxis: "id", YAxis: "salary"}, fixtureEmployees())
	if err != nil {
		t.Fatalf("BuildChart: %v", err)
	}

	points, ok := chart.Datasets[0].Data.([]Point)
	if !ok {
		t.Fatalf("dataset data type = %T, want []Point", chart.Datasets[0].Data)
	}
	if len(points) != 5 {
		t.Fatalf("points = %d, want 5", len(points))
	}
	if points[1] != (Point{X: 2, Y: 150000}) {
		t.Errorf("points[1] = %+v, want {2 150000}", points[1])
	}
}

func TestScatterChartRejectsNonNumericAxis(t *testing.T) {
	_, err := BuildChart(ChartRequest{Kind: KindScatter, XAxis: "position", YAxis: "salary"}, fixtureEmployees())
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("error = %v, want ErrInvalidRequest", err)
	}
}

func TestHistogramBinCountsSumToRecords(t *testing.T) {
	chart, err := BuildChart(ChartRequest{Kind: KindHistogram, XAxis: "salary"}, fixtureEmployees())
	if err != nil {
		t.Fatalf("BuildChart: %v", err)
	}

	data := chart.Datasets[0].Data.([]float64)
	if len(data) != histogramBins {
		t.Errorf("bins = %d, want %d", len(data), histogramBins)
	}
	var total float64
	for _, v := range data {
		total += v
	}
	if total != 5 {
		t.Errorf("bin counts sum = %v, want 5", total)
	}
	if len(chart.Labels) != len(data) {
		t.Errorf("labels = %d, data = %d; want equal", len(chart.Labels), len(data))
	}
}

func TestHistogramSingleValueCollapsesToOneBin(t *testing.T) {
	employees := []model.Employee{
		{ID: 1, Salary: 50000}, {ID: 2, Salary: 50000}, {ID: 3, Salary: 50000},
	}
	chart, err := BuildChart(ChartRequest{Kind: KindHistogram, XAxis: "salary"}, employees)
	if err != nil {
		t.Fatalf("BuildChart: %v", err)
	}
	data := chart.Datasets[0].Data.([]float64)
	if len(data) != 1 || data[0] != 3 {
		t.Errorf("data = %v, want [3]", data)
	}
}

func TestHistogramEmptySnapshot(t *testing.T) {
	chart, err := BuildChart(ChartRequest{Kind: KindHistogram, XAxis: "salary"}, nil)
	if err != nil {
		t.Fatalf("BuildChart: %v", err)
	}
	if data := chart.Datasets[0].Data.([]float64); len(data) != 0 {
		t.Errorf("data = %v, want empty", data)
	}
}

func TestBoxChartFiveNumberSummaryPerPosition(t *testing.T) {
	chart, err := BuildChart(ChartRequest{Kind: KindBox, XAxis: "position", YAxis: "salary"}, fixtureEmployees())
	if err != nil {
		t.Fatalf("BuildChart: %v", err)
	}

	if len(chart.Datasets) != 4 {
		t.Fatalf("datasets = %d, want 4 (one per position)", len(chart.Datasets))
	}

	// Developer group holds salaries {100000, 110000}.
	var dev *Dataset
	for i := range chart.Datasets {
		if chart.Datasets[i].Label == "Developer" {
			dev = &chart.Datasets[i]
		}
	}
	if dev == nil {
		t.Fatal("no Developer dataset")
	}
	got := dev.Data.([]float64)
	want := []float64{100000, 102500, 105000, 107500, 110000}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Developer summary = %v, want %v", got, want)
	}
}

func TestBuildChartInvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		req  ChartRequest
	}{
		{"unknown kind", ChartRequest{Kind: "donut", XAxis: "position"}},
		{"missing x axis", ChartRequest{Kind: KindBar, YAxis: "count"}},
		{"unknown x column", ChartRequest{Kind: KindBar, XAxis: "shoe_size"}},
		{"non-numeric y axis", ChartRequest{Kind: KindBar, XAxis: "position", YAxis: "full_name"}},
		{"unknown aggregation", ChartRequest{Kind: KindBar, XAxis: "position", YAxis: "salary", Aggregate: "mode"}},
		{"histogram over text column", ChartRequest{Kind: KindHistogram, XAxis: "position"}},
		{"box without y axis", ChartRequest{Kind: KindBox, XAxis: "position"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildChart(tt.req, fixtureEmployees())
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("error = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestColorsDistinctAndStable(t *testing.T) {
	for _, n := range []int{1, 5, 20} {
		colors := Colors(n)
		if len(colors) != n {
			t.Fatalf("Colors(%d) returned %d values", n, len(colors))
		}
		seen := make(map[string]bool)
		for _, c := range colors {
			if seen[c] {
				t.Errorf("Colors(%d) repeated %q", n, c)
			}
			seen[c] = true
		}
		if !reflect.DeepEqual(colors, Colors(n)) {
			t.Errorf("Colors(%d) is not stable across calls", n)
		}
	}
}

func TestAvailableColumns(t *testing.T) {
	info := AvailableColumns()

	names := make(map[string]bool)
	for _, c := range info.Columns {
		names[c.Name] = true
	}
	for _, want := range []string{"position", "salary", "hire_date"} {
		if !names[want] {
			t.Errorf("columns missing %q", want)
		}
	}
	if len(info.Aggregations) != 3 {
		t.Errorf("aggregations = %d, want 3", len(info.Aggregations))
	}
	if len(info.ChartTypes) != 6 {
		t.Errorf("chart types = %d, want 6", len(info.ChartTypes))
	}
}
