package model

// DateFormat is the wire and storage format for calendar dates.
const DateFormat = "2006-01-02"

// Employee is a single roster record. BossID is a self-referential link to
// the employee's direct manager; nil means the employee reports to no one.
type Employee struct {
	ID       int64  `db:"id" json:"id"`
	FullName string `db:"full_name" json:"full_name"`
	Position string `db:"position" json:"position"`
	HireDate string `db:"hire_date" json:"hire_date"` // ISO date, e.g. "2021-05-20"
	Salary   int64  `db:"salary" json:"salary"`
	BossID   *int64 `db:"boss_id" json:"boss_id"`
	BossName string `db:"boss_name" json:"boss_name,omitempty"`
}

// EmployeeInput carries the writable fields of an employee for create and
// update operations.
type EmployeeInput struct {
	FullName string `json:"full_name"`
	Position string `json:"position"`
	HireDate string `json:"hire_date"`
	Salary   int64  `json:"salary"`
	BossID   *int64 `json:"boss_id"`
}

// EmployeeRef is the trimmed record returned by the typeahead search
// endpoint.
type EmployeeRef struct {
	ID       int64  `db:"id" json:"id"`
	FullName string `db:"full_name" json:"full_name"`
	Position string `db:"position" json:"position"`
}
