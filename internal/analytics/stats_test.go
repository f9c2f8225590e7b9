package analytics

import (
	"math"
	"testing"
)

func TestSummarizeFixture(t *testing.T) {
	stats := Summarize(fixtureEmployees())

	if stats.TotalEmployees != 5 {
		t.Errorf("TotalEmployees = %d, want 5", stats.TotalEmployees)
	}
	if stats.MinSalary != 90000 {
		t.Errorf("MinSalary = %d, want 90000", stats.MinSalary)
	}
	if stats.MaxSalary != 150000 {
		t.Errorf("MaxSalary = %d, want 150000", stats.MaxSalary)
	}
	if stats.AvgSalary != 114000 {
		t.Errorf("AvgSalary = %v, want 114000", stats.AvgSalary)
	}
	if stats.MedianSalary != 110000 {
		t.Errorf("MedianSalary = %v, want 110000", stats.MedianSalary)
	}
	if float64(stats.MinSalary) > stats.AvgSalary || stats.AvgSalary > float64(stats.MaxSalary) {
		t.Errorf("min <= avg <= max violated: %d / %v / %d", stats.MinSalary, stats.AvgSalary, stats.MaxSalary)
	}

	// Population standard deviation of {100000,150000,120000,110000,90000}.
	want := math.Sqrt((14000.0*14000 + 36000.0*36000 + 6000.0*6000 + 4000.0*4000 + 24000.0*24000) / 5)
	if math.Abs(stats.SalaryStd-want) > 1e-9 {
		t.Errorf("SalaryStd = %v, want %v", stats.SalaryStd, want)
	}
}

func TestSummarizeEmptySnapshot(t *testing.T) {
	stats := Summarize(nil)
	if stats != (Stats{}) {
		t.Errorf("Summarize(nil) = %+v, want zero stats", stats)
	}
}

func TestFiveNumberSummary(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   FiveNumber
	}{
		{
			"single value",
			[]float64{42},
			FiveNumber{Min: 42, Q1: 42, Median: 42, Q3: 42, Max: 42},
		},
		{
			"odd count",
			[]float64{1, 2, 3, 4, 5},
			FiveNumber{Min: 1, Q1: 2, Median: 3, Q3: 4, Max: 5},
		},
		{
			"even count interpolates",
			[]float64{10, 20},
			FiveNumber{Min: 10, Q1: 12.5, Median: 15, Q3: 17.5, Max: 20},
		},
		{
			"unsorted input",
			[]float64{5, 1, 3, 2, 4},
			FiveNumber{Min: 1, Q1: 2, Median: 3, Q3: 4, Max: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fiveNumberSummary(tt.values); got != tt.want {
				t.Errorf("fiveNumberSummary(%v) = %+v, want %+v", tt.values, got, tt.want)
			}
		})
	}
}

func TestMedian(t *testing.T) {
	if got := median([]float64{3, 1, 2}); got != 2 {
		t.Errorf("median odd = %v, want 2", got)
	}
	if got := median([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Errorf("median even = %v, want 2.5", got)
	}
	if got := median(nil); got != 0 {
		t.Errorf("median empty = %v, want 0", got)
	}
}
