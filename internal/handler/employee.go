package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rosterhq/roster/internal/model"
	"github.com/rosterhq/roster/internal/query"
	"github.com/rosterhq/roster/internal/store"
)

// EmployeeHandler handles CRUD, search, and listing operations on the
// employee roster.
type EmployeeHandler struct {
	store *store.Store
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(st *store.Store) *EmployeeHandler {
	return &EmployeeHandler{store: st}
}

// List returns a filtered, sorted, paginated page of employees.
// GET /api/v1/employees
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sort := query.Sort{By: queryString(r, "sort_by"), Order: queryString(r, "order")}
	page := query.Page{
		Number: queryInt(r, "page", 1),
		Size:   queryInt(r, "page_size", query.DefaultPageSize),
	}.Normalize()

	items, total, err := h.store.ListEmployees(r.Context(), filter, sort, page)
	if err != nil {
		writeStoreError(w, err, "list employees")
		return
	}

	writeJSON(w, http.StatusOK, model.PagedEmployees{
		Items:      items,
		TotalCount: total,
		Page:       page.Number,
		PageSize:   page.Size,
	})
}

// Get returns a single employee by ID.
// GET /api/v1/employees/{id}
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	e, err := h.store.GetEmployee(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "get employee")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Create inserts a new employee.
// POST /api/v1/employees
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.EmployeeInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if msg := validateEmployeeInput(in); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	e, err := h.store.CreateEmployee(r.Context(), in)
	if err != nil {
		writeStoreError(w, err, "create employee")
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// Update replaces an employee's writable fields.
// PUT /api/v1/employees/{id}
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	var in model.EmployeeInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if msg := validateEmployeeInput(in); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	e, err := h.store.UpdateEmployee(r.Context(), id, in)
	if err != nil {
		writeStoreError(w, err, "update employee")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Delete removes an employee. Subordinates keep their rows; their boss
// reference is cleared.
// DELETE /api/v1/employees/{id}
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	if err := h.store.DeleteEmployee(r.Context(), id); err != nil {
		writeStoreError(w, err, "delete employee")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Subordinates returns the employees reporting directly to the given boss.
// GET /api/v1/employees/{id}/subordinates
func (h *EmployeeHandler) Subordinates(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	// Verify the boss exists so a bad ID is a 404, not an empty list.
	if _, err := h.store.GetEmployee(r.Context(), id); err != nil {
		writeStoreError(w, err, "get employee")
		return
	}

	subs, err := h.store.Subordinates(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "list subordinates")
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

// Search is the typeahead lookup over employee names.
// GET /api/v1/employees/search?q=
func (h *EmployeeHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(queryString(r, "q"))
	if q == "" {
		writeJSON(w, http.StatusOK, []model.EmployeeRef{})
		return
	}

	refs, err := h.store.SearchEmployees(r.Context(), q, queryInt(r, "limit", 0))
	if err != nil {
		writeStoreError(w, err, "search employees")
		return
	}
	writeJSON(w, http.StatusOK, refs)
}

// Positions returns the distinct position titles in the roster.
// GET /api/v1/positions
func (h *EmployeeHandler) Positions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.store.Positions(r.Context())
	if err != nil {
		writeStoreError(w, err, "list positions")
		return
	}
	writeJSON(w, http.StatusOK, positions)
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// parseFilter builds the employee filter from query parameters. Reversed
// ranges (min above max, start after end) are swapped rather than
// rejected.
func parseFilter(r *http.Request) (query.Filter, error) {
	f := query.Filter{
		Text:      strings.TrimSpace(queryString(r, "q")),
		MinSalary: queryInt64Ptr(r, "min_salary"),
		MaxSalary: queryInt64Ptr(r, "max_salary"),
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
	}

	for _, d := range []string{f.StartDate, f.EndDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(model.DateFormat, d); err != nil {
			return query.Filter{}, &badDateError{d}
		}
	}

	if f.MinSalary != nil && f.MaxSalary != nil && *f.MinSalary > *f.MaxSalary {
		f.MinSalary, f.MaxSalary = f.MaxSalary, f.MinSalary
	}
	if f.StartDate != "" && f.EndDate != "" && f.StartDate > f.EndDate {
		f.StartDate, f.EndDate = f.EndDate, f.StartDate
	}
	return f, nil
}

type badDateError struct{ value string }

func (e *badDateError) Error() string {
	return "invalid date " + strconv.Quote(e.value) + ", expected YYYY-MM-DD"
}

// validateEmployeeInput checks the writable fields. Returns an empty string
// when the input is acceptable.
func validateEmployeeInput(in model.EmployeeInput) string {
	if strings.TrimSpace(in.FullName) == "" {
		return "full_name is required"
	}
	if strings.TrimSpace(in.Position) == "" {
		return "position is required"
	}
	if _, err := time.Parse(model.DateFormat, in.HireDate); err != nil {
		return "hire_date must be a YYYY-MM-DD date"
	}
	if in.Salary < 0 {
		return "salary must not be negative"
	}
	return ""
}
