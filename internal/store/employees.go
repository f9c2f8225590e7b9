package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rosterhq/roster/internal/model"
	"github.com/rosterhq/roster/internal/query"
)

// CreateEmployee inserts a new employee and populates its ID. A boss_id
// referencing a nonexistent employee fails with ErrConstraint. The boss is
// checked before the insert rather than left to the foreign key: the FK
// would accept a boss_id equal to the row's own freshly assigned id, which
// would make the employee its own boss.
func (s *Store) CreateEmployee(ctx context.Context, in model.EmployeeInput) (*model.Employee, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create employee: %w", err)
	}
	defer tx.Rollback()

	if in.BossID != nil {
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			"SELECT EXISTS (SELECT 1 FROM employees WHERE id = ?)", *in.BossID); err != nil {
			return nil, fmt.Errorf("check boss: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: boss %d does not exist", ErrConstraint, *in.BossID)
		}
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO employees (full_name, position, hire_date, salary, boss_id)
		 VALUES (?, ?, ?, ?, ?)`,
		in.FullName, in.Position, in.HireDate, in.Salary, in.BossID)
	if err != nil {
		return nil, classifyWriteError("insert employee", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get employee id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create employee: %w", err)
	}
	return s.GetEmployee(ctx, id)
}

// GetEmployee returns a single employee by ID, with the boss name resolved.
func (s *Store) GetEmployee(ctx context.Context, id int64) (*model.Employee, error) {
	var e model.Employee
	const q = `SELECT e.id, e.full_name, e.position, e.hire_date, e.salary, e.boss_id,
		COALESCE(b.full_name, '') AS boss_name
		FROM employees e LEFT JOIN employees b ON e.boss_id = b.id
		WHERE e.id = ?`
	if err := s.db.GetContext(ctx, &e, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// ListEmployees returns one page of employees matching the filter, ordered
// by the sort clause, together with the total pre-pagination match count.
// A page past the end returns an empty slice and the true total.
func (s *Store) ListEmployees(ctx context.Context, f query.Filter, sort query.Sort, page query.Page) ([]model.Employee, int64, error) {
	where, args := f.WhereClause()

	countSQL := "SELECT COUNT(*) FROM employees"
	if where != "" {
		countSQL += " WHERE " + where
	}
	var total int64
	if err := s.db.GetContext(ctx, &total, countSQL, args...); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	limit, offset := page.LimitOffset()
	listSQL := "SELECT id, full_name, position, hire_date, salary, boss_id FROM employees"
	if where != "" {
		listSQL += " WHERE " + where
	}
	listSQL += " ORDER BY " + sort.OrderClause() + " LIMIT ? OFFSET ?"
	listArgs := append(append([]interface{}{}, args...), limit, offset)

	items := make([]model.Employee, 0, limit)
	if err := s.db.SelectContext(ctx, &items, listSQL, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}

	if err := s.resolveBossNames(ctx, items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// resolveBossNames fills BossName on the given records with one lookup over
// the distinct referenced boss IDs. The reverse relationship is queried
// lazily rather than materialized.
func (s *Store) resolveBossNames(ctx context.Context, items []model.Employee) error {
	idSet := make(map[int64]bool)
	for _, e := range items {
		if e.BossID != nil {
			idSet[*e.BossID] = true
		}
	}
	if len(idSet) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(idSet))
	args := make([]interface{}, 0, len(idSet))
	for id := range idSet {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}

	var rows []model.EmployeeRef
	q := "SELECT id, full_name, position FROM employees WHERE id IN (" + strings.Join(placeholders, ", ") + ")"
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return fmt.Errorf("resolve boss names: %w", err)
	}

	names := make(map[int64]string, len(rows))
	for _, r := range rows {
		names[r.ID] = r.FullName
	}
	for i := range items {
		if items[i].BossID != nil {
			items[i].BossName = names[*items[i].BossID]
		}
	}
	return nil
}

// UpdateEmployee applies new field values to an existing employee. An
// employee cannot become its own boss; that is rejected before the write.
func (s *Store) UpdateEmployee(ctx context.Context, id int64, in model.EmployeeInput) (*model.Employee, error) {
	if in.BossID != nil && *in.BossID == id {
		return nil, fmt.Errorf("%w: employee cannot be its own boss", ErrConstraint)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE employees SET full_name = ?, position = ?, hire_date = ?, salary = ?, boss_id = ?
		 WHERE id = ?`,
		in.FullName, in.Position, in.HireDate, in.Salary, in.BossID, id)
	if err != nil {
		return nil, classifyWriteError("update employee", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update employee rows affected: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.GetEmployee(ctx, id)
}

// DeleteEmployee removes an employee. Direct subordinates keep their rows
// and lose only the boss reference; the clear and the delete commit in one
// transaction so no partial state is ever visible.
func (s *Store) DeleteEmployee(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete employee: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "UPDATE employees SET boss_id = NULL WHERE boss_id = ?", id); err != nil {
		return fmt.Errorf("clear subordinate boss refs: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete employee rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete employee: %w", err)
	}
	return nil
}

// Subordinates returns the direct reports of the given employee, ordered
// by ID.
func (s *Store) Subordinates(ctx context.Context, bossID int64) ([]model.Employee, error) {
	items := make([]model.Employee, 0)
	const q = `SELECT id, full_name, position, hire_date, salary, boss_id
		FROM employees WHERE boss_id = ? ORDER BY id`
	if err := s.db.SelectContext(ctx, &items, q, bossID); err != nil {
		return nil, fmt.Errorf("list subordinates: %w", err)
	}
	return items, nil
}

// SearchEmployees is the typeahead lookup: a case-insensitive substring
// match on the full name only, capped at limit records.
func (s *Store) SearchEmployees(ctx context.Context, text string, limit int) ([]model.EmployeeRef, error) {
	if limit <= 0 {
		limit = 10
	}
	refs := make([]model.EmployeeRef, 0, limit)
	pattern := "%" + strings.ToLower(strings.TrimSpace(text)) + "%"
	const q = `SELECT id, full_name, position FROM employees
		WHERE LOWER(full_name) LIKE ? ORDER BY full_name, id LIMIT ?`
	if err := s.db.SelectContext(ctx, &refs, q, pattern, limit); err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}
	return refs, nil
}

// Positions returns the distinct position titles in use, alphabetically.
func (s *Store) Positions(ctx context.Context) ([]string, error) {
	positions := make([]string, 0)
	if err := s.db.SelectContext(ctx, &positions, "SELECT DISTINCT position FROM employees ORDER BY position"); err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	return positions, nil
}

// Snapshot returns every employee matching the filter, ordered by ID. The
// analytics aggregator consumes these rows as a read-only snapshot.
func (s *Store) Snapshot(ctx context.Context, f query.Filter) ([]model.Employee, error) {
	where, args := f.WhereClause()
	q := "SELECT id, full_name, position, hire_date, salary, boss_id FROM employees"
	if where != "" {
		q += " WHERE " + where
	}
	q += " ORDER BY id"

	items := make([]model.Employee, 0)
	if err := s.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, fmt.Errorf("snapshot employees: %w", err)
	}
	return items, nil
}

// classifyWriteError maps SQLite constraint failures onto ErrConstraint so
// callers can distinguish them from transport errors.
func classifyWriteError(op string, err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "not null constraint") ||
		strings.Contains(msg, "check constraint") {
		return fmt.Errorf("%s: %w: %v", op, ErrConstraint, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
