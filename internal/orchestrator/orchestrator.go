// Package orchestrator runs one underwriting analysis: the four narrative agents in
// fixed order, the risk scorer exactly once, and the per-slot choice between the LLM
// collaborator and the rule-based narrative.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Underwriter/internal/agents"
	"github.com/MikeSquared-Agency/Underwriter/internal/applicant"
	"github.com/MikeSquared-Agency/Underwriter/internal/events"
	"github.com/MikeSquared-Agency/Underwriter/internal/llm"
	"github.com/MikeSquared-Agency/Underwriter/internal/metrics"
	"github.com/MikeSquared-Agency/Underwriter/internal/report"
	"github.com/MikeSquared-Agency/Underwriter/internal/scoring"
)

// ErrAIUnavailable is returned for an AI-mode request when no collaborator is configured.
var ErrAIUnavailable = errors.New("ai mode unavailable: no llm provider configured")

const (
	DefaultCallTimeout = 30 * time.Second
	sideEffectTimeout  = 5 * time.Second
)

// ReportSaver receives every completed report. *store.PostgresStore satisfies it.
type ReportSaver interface {
	SaveReport(ctx context.Context, r *report.AnalysisReport) error
}

type Option func(*Orchestrator)

func WithCallTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.callTimeout = d
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

func WithPublisher(p events.Publisher) Option {
	return func(o *Orchestrator) { o.publisher = p }
}

func WithAudit(s ReportSaver) Option {
	return func(o *Orchestrator) { o.audit = s }
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(o *Orchestrator) { o.newID = newID }
}

// Orchestrator is safe for concurrent use; it holds no per-run state.
type Orchestrator struct {
	completer   llm.Completer
	summarizer  agents.Agent
	claims      agents.Agent
	riskFactors agents.Agent
	recommender agents.Agent
	callTimeout time.Duration
	metrics     *metrics.Metrics
	publisher   events.Publisher
	audit       ReportSaver
	now         func() time.Time
	newID       func() uuid.UUID
	logger      *slog.Logger
}

// New builds an orchestrator. A nil completer means AI mode is not offered.
func New(completer llm.Completer, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		completer:   completer,
		summarizer:  agents.Summarizer{},
		claims:      agents.ClaimsAnalyst{},
		riskFactors: agents.RiskFactorIdentifier{},
		recommender: agents.Recommender{},
		callTimeout: DefaultCallTimeout,
		now:         time.Now,
		newID:       uuid.New,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) AIAvailable() bool {
	return o.completer != nil
}

// Modes lists the modes this orchestrator can run.
func (o *Orchestrator) Modes() []report.Mode {
	if o.AIAvailable() {
		return []report.Mode{report.ModeAI, report.ModeRuleBased}
	}
	return []report.Mode{report.ModeRuleBased}
}

// Run analyses app in the requested mode. Collaborator failures never fail a run; the
// only errors are invalid input, an unknown mode, and AI mode without a collaborator.
func (o *Orchestrator) Run(ctx context.Context, app applicant.Application, mode report.Mode) (*report.AnalysisReport, error) {
	if err := app.Validate(); err != nil {
		return nil, err
	}
	switch mode {
	case report.ModeRuleBased:
	case report.ModeAI:
		if !o.AIAvailable() {
			return nil, ErrAIUnavailable
		}
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	id := o.newID()
	logger := o.logger.With("report_id", id.String(), "mode", string(mode))
	in := agents.Inputs{Application: app, Prior: make(map[agents.Slot]string, len(agents.Slots))}
	provenance := make(map[agents.Slot]report.Provenance, len(agents.Slots))

	for _, a := range []agents.Agent{o.summarizer, o.claims, o.riskFactors} {
		text, p := o.narrate(ctx, id, logger, a, in, mode)
		in.Prior[a.Slot()] = text
		provenance[a.Slot()] = p
	}

	assessment := scoring.Score(app)
	in.Assessment = &assessment

	text, p := o.narrate(ctx, id, logger, o.recommender, in, mode)
	in.Prior[o.recommender.Slot()] = text
	provenance[o.recommender.Slot()] = p

	r := report.New(id, mode, o.now(), app, assessment)
	for _, slot := range agents.Slots {
		r.Set(slot, in.Prior[slot], provenance[slot])
		o.metrics.ObserveOutput(string(slot), string(provenance[slot]))
	}
	o.metrics.ObserveAnalysis(string(mode), assessment.Score)

	logger.Info("analysis completed",
		"risk_score", assessment.Score,
		"risk_category", string(assessment.Category),
		"fallback_slots", r.FallbackCount(),
	)

	o.record(ctx, logger, r)
	return r, nil
}

// narrate produces one slot's text. Any collaborator failure, including an empty
// completion or a timeout, yields that agent's rule-based narrative. There is no retry.
func (o *Orchestrator) narrate(ctx context.Context, id uuid.UUID, logger *slog.Logger, a agents.Agent, in agents.Inputs, mode report.Mode) (string, report.Provenance) {
	if mode != report.ModeAI || !a.Consults(in) {
		return a.Fallback(in), report.ProvenanceFallback
	}
	if ctx.Err() != nil {
		logger.Debug("run context done, skipping llm call", "agent", string(a.Slot()), "error", ctx.Err())
		return a.Fallback(in), report.ProvenanceFallback
	}

	callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
	start := time.Now()
	text, err := o.completer.Complete(callCtx, a.RenderPrompt(in), a.MaxTokens())
	cancel()
	if err == nil && strings.TrimSpace(text) == "" {
		err = llm.ErrEmptyResponse
	}
	o.metrics.ObserveLLM(string(a.Slot()), err, time.Since(start))

	if err != nil {
		logger.Warn("llm call failed, using rule-based narrative", "agent", string(a.Slot()), "error", err)
		o.publish(ctx, logger, events.SubjectAgentFallback(id.String()), events.AgentFallbackEvent{
			ReportID: id.String(),
			Agent:    string(a.Slot()),
			Error:    err.Error(),
		})
		return a.Fallback(in), report.ProvenanceFallback
	}
	return strings.TrimSpace(text), report.ProvenanceAI
}

// record publishes the completion event and appends to the audit trail. Neither can
// fail the run.
func (o *Orchestrator) record(ctx context.Context, logger *slog.Logger, r *report.AnalysisReport) {
	prov := make(map[string]string, len(r.Provenance))
	for slot, p := range r.Provenance {
		prov[string(slot)] = string(p)
	}
	o.publish(ctx, logger, events.SubjectAnalysisCompleted(r.ID.String()), events.AnalysisCompletedEvent{
		ReportID:      r.ID.String(),
		Mode:          string(r.Mode),
		RiskScore:     r.Assessment.Score,
		RiskCategory:  string(r.Assessment.Category),
		TotalClaims:   r.TotalClaims,
		Provenance:    prov,
		FallbackSlots: r.FallbackCount(),
		Timestamp:     r.Timestamp,
	})

	if o.audit == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()
	if err := o.audit.SaveReport(saveCtx, r); err != nil {
		o.metrics.AuditFailed()
		logger.Error("failed to write audit record", "error", err)
	}
}

func (o *Orchestrator) publish(ctx context.Context, logger *slog.Logger, subject string, data interface{}) {
	if o.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()
	if err := o.publisher.Publish(pubCtx, subject, data); err != nil {
		logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
