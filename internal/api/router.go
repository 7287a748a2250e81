package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Underwriter/internal/orchestrator"
)

// RouterConfig carries the settings NewRouter needs beyond its collaborators.
type RouterConfig struct {
	AdminToken     string
	Provider       string
	RateLimitPerIP int
}

// NewRouter builds the public API. audit may be nil when no database is configured.
func NewRouter(o *orchestrator.Orchestrator, audit AuditReader, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))

	limit := cfg.RateLimitPerIP
	if limit <= 0 {
		limit = 60
	}

	analyses := NewAnalysesHandler(o, logger)
	ref := NewReferenceHandler(o, cfg.Provider)
	auditH := NewAuditHandler(audit)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/samples", ref.Samples)
		r.Get("/samples/{key}", ref.Sample)
		r.Get("/modes", ref.Modes)
		r.Get("/reference", ref.Reference)

		r.Group(func(r chi.Router) {
			r.Use(RateLimitMiddleware(limit))
			r.Post("/analyses", analyses.Create)
			r.Post("/analyses/compare", analyses.Compare)
		})

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))
			r.Get("/audit/reports", auditH.List)
			r.Get("/audit/reports/{id}", auditH.Get)
		})
	})

	return r
}

// BreakerState reports the LLM circuit breaker state for health checks.
type BreakerState interface {
	State() string
}

// NewMetricsRouter serves /health and /metrics. breaker may be nil.
func NewMetricsRouter(breaker BreakerState) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]string{"status": "ok"}
		if breaker != nil {
			resp["llm_breaker"] = breaker.State()
		}
		writeJSON(w, http.StatusOK, resp)
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
