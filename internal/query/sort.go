package query

import "strings"

// sortableColumns whitelists the employee attributes a caller may sort by.
// Anything else silently falls back to id, which keeps unrecognized input
// from ever reaching the SQL text.
var sortableColumns = map[string]bool{
	"id":        true,
	"full_name": true,
	"position":  true,
	"hire_date": true,
	"salary":    true,
	"boss_id":   true,
}

// Sort describes a single-column ordering over employees.
type Sort struct {
	By    string // column name; unrecognized names fall back to "id"
	Order string // "asc" (default) or "desc"
}

// Column returns the validated sort column.
func (s Sort) Column() string {
	col := strings.ToLower(strings.TrimSpace(s.By))
	if !sortableColumns[col] {
		return "id"
	}
	return col
}

// Direction returns "ASC" unless descending order was explicitly requested.
func (s Sort) Direction() string {
	if strings.EqualFold(strings.TrimSpace(s.Order), "desc") {
		return "DESC"
	}
	return "ASC"
}

// OrderClause renders the ORDER BY body. Ties on the sort column resolve
// by id ascending so repeated queries over unchanged data return an
// identical ordering.
func (s Sort) OrderClause() string {
	col := s.Column()
	clause := col + " " + s.Direction()
	if col != "id" {
		clause += ", id ASC"
	}
	return clause
}
