package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "underwriter"

// Metrics holds the collectors recorded by analysis runs.
type Metrics struct {
	Analyses      *prometheus.CounterVec
	AgentOutputs  *prometheus.CounterVec
	LLMLatency    *prometheus.HistogramVec
	RiskScores    prometheus.Histogram
	AuditFailures prometheus.Counter
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in main so
// promhttp.Handler exposes them; tests pass a fresh registry.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Analyses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Completed analysis runs by requested mode.",
		}, []string{"mode"}),
		AgentOutputs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agent_outputs_total",
			Help:      "Narratives produced, by agent slot and provenance.",
		}, []string{"agent", "provenance"}),
		LLMLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_call_duration_seconds",
			Help:      "Latency of LLM collaborator calls by agent slot and outcome.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"agent", "outcome"}),
		RiskScores: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "risk_score",
			Help:      "Distribution of computed risk scores.",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}),
		AuditFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_write_failures_total",
			Help:      "Reports that could not be written to the audit trail.",
		}),
	}
}

// ObserveLLM records one collaborator call. A nil receiver is a no-op.
func (m *Metrics) ObserveLLM(agent string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.LLMLatency.WithLabelValues(agent, outcome).Observe(d.Seconds())
}

func (m *Metrics) ObserveOutput(agent, provenance string) {
	if m == nil {
		return
	}
	m.AgentOutputs.WithLabelValues(agent, provenance).Inc()
}

func (m *Metrics) ObserveAnalysis(mode string, score int) {
	if m == nil {
		return
	}
	m.Analyses.WithLabelValues(mode).Inc()
	m.RiskScores.Observe(float64(score))
}

func (m *Metrics) AuditFailed() {
	if m == nil {
		return
	}
	m.AuditFailures.Inc()
}
