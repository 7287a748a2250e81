package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Underwriter/internal/applicant"
	"github.com/MikeSquared-Agency/Underwriter/internal/orchestrator"
)

// ReferenceHandler serves the read-only data a front end needs to build its form.
type ReferenceHandler struct {
	orch     *orchestrator.Orchestrator
	provider string
}

func NewReferenceHandler(o *orchestrator.Orchestrator, provider string) *ReferenceHandler {
	return &ReferenceHandler{orch: o, provider: provider}
}

func (h *ReferenceHandler) Samples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, applicant.Samples())
}

func (h *ReferenceHandler) Sample(w http.ResponseWriter, r *http.Request) {
	s, ok := applicant.SampleByKey(chi.URLParam(r, "key"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "sample not found"})
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *ReferenceHandler) Modes(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"modes":        h.orch.Modes(),
		"ai_available": h.orch.AIAvailable(),
	}
	if h.orch.AIAvailable() {
		resp["provider"] = h.provider
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ReferenceHandler) Reference(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"occupations":       applicant.Occupations,
		"health_statuses":   applicant.HealthStatuses,
		"lifestyle_factors": applicant.LifestyleFactors,
		"claim_types":       applicant.ClaimTypes,
		"driving_records":   applicant.DrivingRecords,
	})
}
