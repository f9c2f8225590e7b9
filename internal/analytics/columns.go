package analytics

// Column describes a chartable employee attribute for the UI.
type Column struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Type  string `json:"type"` // "numeric", "text", or "date"
}

// Option is a name/label pair for aggregations, chart types, and grouping
// choices.
type Option struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// ColumnsInfo is the metadata block the chart-builder UI consumes.
type ColumnsInfo struct {
	Columns      []Column `json:"columns"`
	Aggregations []Option `json:"aggregations"`
	ChartTypes   []Option `json:"chart_types"`
	GroupOptions []Option `json:"group_options"`
}

// AvailableColumns returns the chartable columns, aggregations, chart
// kinds, and grouping options.
func AvailableColumns() ColumnsInfo {
	return ColumnsInfo{
		Columns: []Column{
			{Name: "id", Label: "ID", Type: "numeric"},
			{Name: "full_name", Label: "Full name", Type: "text"},
			{Name: "position", Label: "Position", Type: "text"},
			{Name: "hire_date", Label: "Hire date", Type: "date"},
			{Name: "salary", Label: "Salary", Type: "numeric"},
			{Name: "boss_id", Label: "Boss", Type: "numeric"},
		},
		Aggregations: []Option{
			{Name: "count", Label: "Count"},
			{Name: "avg", Label: "Average"},
			{Name: "sum", Label: "Sum"},
		},
		ChartTypes: []Option{
			{Name: "bar", Label: "Bar"},
			{Name: "line", Label: "Line"},
			{Name: "pie", Label: "Pie"},
			{Name: "scatter", Label: "Scatter"},
			{Name: "histogram", Label: "Histogram"},
			{Name: "box", Label: "Box plot"},
		},
		GroupOptions: []Option{
			{Name: "year", Label: "By year"},
			{Name: "month", Label: "By month"},
		},
	}
}
