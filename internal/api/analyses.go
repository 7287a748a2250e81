package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/Underwriter/internal/applicant"
	"github.com/MikeSquared-Agency/Underwriter/internal/orchestrator"
	"github.com/MikeSquared-Agency/Underwriter/internal/report"
)

const maxBodyBytes = 1 << 20

type AnalysesHandler struct {
	orch   *orchestrator.Orchestrator
	logger *slog.Logger
}

func NewAnalysesHandler(o *orchestrator.Orchestrator, logger *slog.Logger) *AnalysesHandler {
	return &AnalysesHandler{orch: o, logger: logger}
}

// AnalysisRequest is an application plus the requested mode. The mode may also be given
// as the ?mode= query parameter.
type AnalysisRequest struct {
	Mode string `json:"mode,omitempty"`
	applicant.Application
}

func (h *AnalysesHandler) decode(w http.ResponseWriter, r *http.Request) (AnalysisRequest, bool) {
	var req AnalysisRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return req, false
	}
	return req, true
}

// Create runs one analysis and returns the report in the format named by ?format=.
func (h *AnalysesHandler) Create(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	modeName := req.Mode
	if modeName == "" {
		modeName = r.URL.Query().Get("mode")
	}
	mode, err := report.ParseMode(modeName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rep, err := h.orch.Run(r.Context(), req.Application, mode)
	if err != nil {
		h.writeRunError(w, err)
		return
	}

	if format == report.FormatJSON {
		writeJSON(w, http.StatusOK, rep)
		return
	}
	body, err := report.Export(rep, format)
	if err != nil {
		h.logger.Error("failed to export report", "report_id", rep.ID.String(), "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "export failed"})
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="underwriting_report_%s.%s"`, rep.ID, extension(format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// Compare runs the application in both modes.
func (h *AnalysesHandler) Compare(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	c, err := h.orch.Compare(r.Context(), req.Application)
	if err != nil {
		h.writeRunError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *AnalysesHandler) writeRunError(w http.ResponseWriter, err error) {
	var verr *applicant.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid application", "problems": verr.Problems})
	case errors.Is(err, orchestrator.ErrAIUnavailable):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
}

func extension(f report.Format) string {
	if f == report.FormatText {
		return "txt"
	}
	return string(f)
}
