// Package agents implements the four underwriting narrative roles. Each role builds the
// prompt sent to the LLM collaborator and a deterministic rule-based narrative used when
// the collaborator is not consulted or fails. Both are pure functions of their inputs.
package agents

import (
	"github.com/dustin/go-humanize"

	"github.com/MikeSquared-Agency/Underwriter/internal/applicant"
	"github.com/MikeSquared-Agency/Underwriter/internal/scoring"
)

// Slot names one narrative in a report.
type Slot string

const (
	SlotApplicantSummary Slot = "applicant_summary"
	SlotClaimsAnalysis   Slot = "claims_analysis"
	SlotRiskFactors      Slot = "risk_factors"
	SlotRecommendation   Slot = "recommendation"
)

// Slots lists every narrative slot in pipeline order.
var Slots = []Slot{SlotApplicantSummary, SlotClaimsAnalysis, SlotRiskFactors, SlotRecommendation}

// Inputs carries everything an agent may read. Assessment is nil until the scorer has
// run; Prior holds narratives produced earlier in the same run.
type Inputs struct {
	Application applicant.Application
	Assessment  *scoring.Assessment
	Prior       map[Slot]string
}

// Agent is one narrative role.
type Agent interface {
	Slot() Slot
	// MaxTokens bounds the collaborator's completion length.
	MaxTokens() int
	// Consults reports whether the collaborator has anything to add for these inputs.
	Consults(in Inputs) bool
	RenderPrompt(in Inputs) string
	Fallback(in Inputs) string
}

func money(amount int64) string {
	return "$" + humanize.Comma(amount)
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
