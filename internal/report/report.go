package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Underwriter/internal/agents"
	"github.com/MikeSquared-Agency/Underwriter/internal/applicant"
	"github.com/MikeSquared-Agency/Underwriter/internal/scoring"
)

// Mode selects whether agents consult the LLM collaborator before falling back.
type Mode string

const (
	ModeAI        Mode = "ai"
	ModeRuleBased Mode = "rule_based"
)

// ParseMode accepts the API and CLI spellings of a mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ai":
		return ModeAI, nil
	case "rule_based", "rule-based", "rules", "":
		return ModeRuleBased, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected ai or rule_based)", s)
	}
}

// Label is the human-readable mode name used in text exports.
func (m Mode) Label() string {
	if m == ModeAI {
		return "AI"
	}
	return "Rule-Based"
}

// Provenance records where one narrative came from.
type Provenance string

const (
	ProvenanceAI       Provenance = "ai"
	ProvenanceFallback Provenance = "fallback"
)

// AnalysisReport is the complete, immutable result of one analysis run.
type AnalysisReport struct {
	ID               uuid.UUID                  `json:"id" yaml:"id"`
	Mode             Mode                       `json:"mode" yaml:"mode"`
	Timestamp        time.Time                  `json:"analysis_timestamp" yaml:"analysis_timestamp"`
	Application      applicant.Application      `json:"application" yaml:"application"`
	Assessment       scoring.Assessment         `json:"assessment" yaml:"assessment"`
	Outputs          map[agents.Slot]string     `json:"agent_outputs" yaml:"agent_outputs"`
	Provenance       map[agents.Slot]Provenance `json:"provenance" yaml:"provenance"`
	TotalClaims      int                        `json:"total_claims" yaml:"total_claims"`
	TotalClaimAmount int64                      `json:"total_claim_amount" yaml:"total_claim_amount"`
}

// New starts a report for app. Outputs and provenance are filled in by the caller.
func New(id uuid.UUID, mode Mode, ts time.Time, app applicant.Application, a scoring.Assessment) *AnalysisReport {
	return &AnalysisReport{
		ID:               id,
		Mode:             mode,
		Timestamp:        ts.UTC(),
		Application:      app,
		Assessment:       a,
		Outputs:          make(map[agents.Slot]string, len(agents.Slots)),
		Provenance:       make(map[agents.Slot]Provenance, len(agents.Slots)),
		TotalClaims:      app.Claims.Count(),
		TotalClaimAmount: app.Claims.TotalAmount(),
	}
}

// Set records one slot's narrative and where it came from.
func (r *AnalysisReport) Set(slot agents.Slot, text string, p Provenance) {
	r.Outputs[slot] = text
	r.Provenance[slot] = p
}

// Complete reports whether every slot holds a non-empty narrative.
func (r *AnalysisReport) Complete() bool {
	for _, s := range agents.Slots {
		if strings.TrimSpace(r.Outputs[s]) == "" {
			return false
		}
	}
	return true
}

// FallbackCount returns how many slots used the rule-based narrative.
func (r *AnalysisReport) FallbackCount() int {
	n := 0
	for _, p := range r.Provenance {
		if p == ProvenanceFallback {
			n++
		}
	}
	return n
}
