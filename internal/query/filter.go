// Package query composes the dynamic parts of roster SQL: the employee
// filter predicate, the sort clause, and pagination. Everything it emits is
// parameterized; column names never come from user input unvalidated.
package query

import "strings"

// Filter holds the optional criteria applied to employee listings and
// analytics. Absent criteria (nil pointers, empty strings) impose no
// constraint. The criteria are combined with AND; the free-text criterion
// matches if full_name OR position contains the text, case-insensitively.
type Filter struct {
	Text      string
	MinSalary *int64
	MaxSalary *int64
	StartDate string // ISO date, inclusive lower bound on hire_date
	EndDate   string // ISO date, inclusive upper bound on hire_date
}

// IsZero reports whether no criteria are set.
func (f Filter) IsZero() bool {
	return f.Text == "" && f.MinSalary == nil && f.MaxSalary == nil &&
		f.StartDate == "" && f.EndDate == ""
}

// WhereClause renders the filter as a SQL fragment with ? placeholders and
// its matching argument list. Returns ("", nil) when no criteria are set;
// callers prepend "WHERE " themselves. Bound ordering (min > max,
// start > end) is not corrected here — the HTTP layer swaps reversed
// bounds before constructing a Filter.
func (f Filter) WhereClause() (string, []interface{}) {
	var conds []string
	var args []interface{}

	if q := strings.TrimSpace(f.Text); q != "" {
		conds = append(conds, `(LOWER(full_name) LIKE ? ESCAPE '\' OR LOWER(position) LIKE ? ESCAPE '\')`)
		pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
		args = append(args, pattern, pattern)
	}
	if f.MinSalary != nil {
		conds = append(conds, "salary >= ?")
		args = append(args, *f.MinSalary)
	}
	if f.MaxSalary != nil {
		conds = append(conds, "salary <= ?")
		args = append(args, *f.MaxSalary)
	}
	// ISO dates stored as TEXT compare correctly with string comparison.
	if f.StartDate != "" {
		conds = append(conds, "hire_date >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		conds = append(conds, "hire_date <= ?")
		args = append(args, f.EndDate)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return strings.Join(conds, " AND "), args
}

// likeEscaper backslash-escapes the LIKE metacharacters. Matches treats
// free text as literal characters, so the SQL pattern has to as well.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Matches re-evaluates the predicate against a single record's fields.
// It mirrors WhereClause exactly and exists so tests can verify result
// sets without a second query path drifting from the SQL one.
func (f Filter) Matches(fullName, position, hireDate string, salary int64) bool {
	if q := strings.TrimSpace(f.Text); q != "" {
		lq := strings.ToLower(q)
		if !strings.Contains(strings.ToLower(fullName), lq) &&
			!strings.Contains(strings.ToLower(position), lq) {
			return false
		}
	}
	if f.MinSalary != nil && salary < *f.MinSalary {
		return false
	}
	if f.MaxSalary != nil && salary > *f.MaxSalary {
		return false
	}
	if f.StartDate != "" && hireDate < f.StartDate {
		return false
	}
	if f.EndDate != "" && hireDate > f.EndDate {
		return false
	}
	return true
}
