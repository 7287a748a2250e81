package orchestrator

import (
	"context"

	"github.com/MikeSquared-Agency/Underwriter/internal/agents"
	"github.com/MikeSquared-Agency/Underwriter/internal/applicant"
	"github.com/MikeSquared-Agency/Underwriter/internal/report"
)

// Comparison holds an AI run and a rule-based run over the same application.
type Comparison struct {
	AI             *report.AnalysisReport `json:"ai" yaml:"ai"`
	RuleBased      *report.AnalysisReport `json:"rule_based" yaml:"rule_based"`
	ScoresMatch    bool                   `json:"scores_match" yaml:"scores_match"`
	DifferingSlots []agents.Slot          `json:"differing_slots" yaml:"differing_slots"`
}

// Compare runs both modes on app. The two reports are independent values; nothing is
// carried from one run into the other.
func (o *Orchestrator) Compare(ctx context.Context, app applicant.Application) (*Comparison, error) {
	if !o.AIAvailable() {
		return nil, ErrAIUnavailable
	}
	rule, err := o.Run(ctx, app, report.ModeRuleBased)
	if err != nil {
		return nil, err
	}
	ai, err := o.Run(ctx, app, report.ModeAI)
	if err != nil {
		return nil, err
	}

	c := &Comparison{
		AI:             ai,
		RuleBased:      rule,
		ScoresMatch:    ai.Assessment.Score == rule.Assessment.Score && ai.Assessment.Category == rule.Assessment.Category,
		DifferingSlots: []agents.Slot{},
	}
	for _, slot := range agents.Slots {
		if ai.Outputs[slot] != rule.Outputs[slot] {
			c.DifferingSlots = append(c.DifferingSlots, slot)
		}
	}
	return c, nil
}
