package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rosterhq/roster/internal/model"
	"github.com/rosterhq/roster/internal/store"
)

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, http.StatusBadRequest, "bad input")

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp model.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error.Code != 400 || resp.Error.Message != "bad input" {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestWriteStoreError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", store.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", errors.Join(store.ErrNotFound), http.StatusNotFound},
		{"constraint", store.ErrConstraint, http.StatusConflict},
		{"other", errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeStoreError(rr, tt.err, "op")
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestQueryInt64Ptr(t *testing.T) {
	tests := []struct {
		url  string
		want *int64
	}{
		{"/x?v=100000", int64p(100000)},
		{"/x?v=", nil},
		{"/x", nil},
		{"/x?v=abc", nil},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.url, nil)
		got := queryInt64Ptr(r, "v")
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("%s: got %d, want nil", tt.url, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("%s: got %v, want %d", tt.url, got, *tt.want)
		}
	}
}

func int64p(v int64) *int64 { return &v }

func TestParseFilterSwapsReversedBounds(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/employees?min_salary=200&max_salary=100&start_date=2024-01-01&end_date=2020-01-01", nil)
	f, err := parseFilter(r)
	if err != nil {
		t.Fatalf("parseFilter: %v", err)
	}
	if *f.MinSalary != 100 || *f.MaxSalary != 200 {
		t.Errorf("salary bounds = %d..%d, want 100..200", *f.MinSalary, *f.MaxSalary)
	}
	if f.StartDate != "2020-01-01" || f.EndDate != "2024-01-01" {
		t.Errorf("date bounds = %s..%s", f.StartDate, f.EndDate)
	}
}

func TestParseFilterRejectsBadDate(t *testing.T) {
	r := httptest.NewRequest("GET", "/employees?start_date=20.01.2020", nil)
	if _, err := parseFilter(r); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestValidateEmployeeInput(t *testing.T) {
	valid := model.EmployeeInput{
		FullName: "Ivan Ivanov", Position: "Developer", HireDate: "2020-01-15", Salary: 100000,
	}
	if msg := validateEmployeeInput(valid); msg != "" {
		t.Errorf("valid input rejected: %s", msg)
	}

	tests := []struct {
		name   string
		mutate func(*model.EmployeeInput)
	}{
		{"blank name", func(in *model.EmployeeInput) { in.FullName = "  " }},
		{"blank position", func(in *model.EmployeeInput) { in.Position = "" }},
		{"bad date", func(in *model.EmployeeInput) { in.HireDate = "15/01/2020" }},
		{"negative salary", func(in *model.EmployeeInput) { in.Salary = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			if msg := validateEmployeeInput(in); msg == "" {
				t.Error("expected validation message")
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.7:51234"
	if ip := clientIP(r); ip != "192.0.2.7" {
		t.Errorf("clientIP = %q, want 192.0.2.7", ip)
	}

	r.Header.Set("X-Forwarded-For", "198.51.100.3")
	if ip := clientIP(r); ip != "198.51.100.3" {
		t.Errorf("clientIP = %q, want forwarded address", ip)
	}
}
