package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Underwriter/internal/report"
	"github.com/MikeSquared-Agency/Underwriter/internal/store"
)

// AuditReader is the read side of the audit trail.
type AuditReader interface {
	GetReport(ctx context.Context, id uuid.UUID) (*report.AnalysisReport, error)
	ListReports(ctx context.Context, filter store.ReportFilter) ([]*store.AuditRecord, error)
}

type AuditHandler struct {
	reader AuditReader
}

func NewAuditHandler(r AuditReader) *AuditHandler {
	return &AuditHandler{reader: r}
}

func (h *AuditHandler) enabled(w http.ResponseWriter) bool {
	if h.reader == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "audit trail not configured"})
		return false
	}
	return true
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.enabled(w) {
		return
	}
	q := r.URL.Query()
	filter := store.ReportFilter{Category: q.Get("category")}
	if v := q.Get("mode"); v != "" {
		mode, err := report.ParseMode(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		filter.Mode = &mode
	}
	if v := q.Get("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "since must be RFC3339"})
			return
		}
		filter.Since = &since
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	records, err := h.reader.ListReports(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if records == nil {
		records = []*store.AuditRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *AuditHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !h.enabled(w) {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid report id"})
		return
	}
	rep, err := h.reader.GetReport(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if rep == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "report not found"})
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
