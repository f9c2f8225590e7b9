package handler

import (
	"errors"
	"net/http"

	"github.com/rosterhq/roster/internal/analytics"
	"github.com/rosterhq/roster/internal/model"
	"github.com/rosterhq/roster/internal/store"
)

// AnalyticsHandler serves chart aggregations and summary statistics over
// the employee roster. Every endpoint accepts the same filter parameters
// as the employee list, so charts reflect whatever slice the caller is
// looking at.
type AnalyticsHandler struct {
	store *store.Store
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(st *store.Store) *AnalyticsHandler {
	return &AnalyticsHandler{store: st}
}

// Columns describes the chartable columns, aggregations, and chart kinds.
// GET /api/v1/analytics/columns
func (h *AnalyticsHandler) Columns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analytics.AvailableColumns())
}

// Chart computes one chart over the filtered roster snapshot. Bad chart
// parameters produce a structured 400 payload, never a server fault.
// GET /api/v1/analytics/chart
func (h *AnalyticsHandler) Chart(w http.ResponseWriter, r *http.Request) {
	kind, err := analytics.ParseChartKind(queryString(r, "chart_type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req := analytics.ChartRequest{
		Kind:      kind,
		XAxis:     queryString(r, "x_axis"),
		YAxis:     queryString(r, "y_axis"),
		Aggregate: queryString(r, "aggregate"),
		GroupBy:   queryString(r, "group_by"),
	}

	snapshot, err := h.snapshot(w, r)
	if err != nil {
		return
	}

	chart, err := analytics.BuildChart(req, snapshot)
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "build chart: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

// Summary returns the roster-wide summary statistics for the filtered
// snapshot.
// GET /api/v1/analytics/summary
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshot(w, r)
	if err != nil {
		return
	}
	writeJSON(w, http.StatusOK, analytics.Summarize(snapshot))
}

// snapshot loads the filtered employee rows shared by the analytics
// endpoints. On failure the response is already written; callers just
// return.
func (h *AnalyticsHandler) snapshot(w http.ResponseWriter, r *http.Request) ([]model.Employee, error) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, err
	}
	snapshot, err := h.store.Snapshot(r.Context(), filter)
	if err != nil {
		writeStoreError(w, err, "load snapshot")
		return nil, err
	}
	return snapshot, nil
}
