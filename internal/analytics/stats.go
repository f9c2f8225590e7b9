package analytics

import (
	"math"
	"sort"

	"github.com/rosterhq/roster/internal/model"
)

// Stats is the summary-statistics block for a (possibly filtered) employee
// snapshot. SalaryStd is the population standard deviation. On an empty
// snapshot every field is zero; there is no divide-by-zero path.
type Stats struct {
	TotalEmployees int     `json:"total_employees"`
	AvgSalary      float64 `json:"avg_salary"`
	MaxSalary      int64   `json:"max_salary"`
	MinSalary      int64   `json:"min_salary"`
	SalaryStd      float64 `json:"salary_std"`
	MedianSalary   float64 `json:"median_salary"`
}

// Summarize computes summary statistics over the given snapshot.
func Summarize(employees []model.Employee) Stats {
	if len(employees) == 0 {
		return Stats{}
	}

	salaries := make([]float64, len(employees))
	min, max := employees[0].Salary, employees[0].Salary
	for i, e := range employees {
		salaries[i] = float64(e.Salary)
		if e.Salary < min {
			min = e.Salary
		}
		if e.Salary > max {
			max = e.Salary
		}
	}

	avg := mean(salaries)
	return Stats{
		TotalEmployees: len(employees),
		AvgSalary:      avg,
		MaxSalary:      max,
		MinSalary:      min,
		SalaryStd:      populationStd(salaries, avg),
		MedianSalary:   median(salaries),
	}
}

// FiveNumber is a box-plot five-number summary.
type FiveNumber struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// fiveNumberSummary computes min, Q1, median, Q3, max over values. The
// quartiles use linear interpolation between order statistics. values must
// be non-empty.
func fiveNumberSummary(values []float64) FiveNumber {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return FiveNumber{
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
}

// quantile returns the q-th quantile of sorted (ascending) values using
// linear interpolation.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return quantile(sorted, 0.5)
}

func populationStd(values []float64, avg float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - avg
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}
