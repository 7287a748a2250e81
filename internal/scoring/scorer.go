package scoring

import (
	"github.com/MikeSquared-Agency/Underwriter/internal/applicant"
)

const (
	BaseScore = 50
	MinScore  = 0
	MaxScore  = 100
)

type Category string

const (
	CategoryLow    Category = "Low"
	CategoryMedium Category = "Medium"
	CategoryHigh   Category = "High"
)

// Assessment is the scorer's output for one application.
type Assessment struct {
	Score       int          `json:"risk_score" yaml:"risk_score"`
	Category    Category     `json:"risk_category" yaml:"risk_category"`
	RawScore    int          `json:"raw_score" yaml:"raw_score"`
	Adjustments []Adjustment `json:"adjustments" yaml:"adjustments"`
}

// Score computes the additive risk score for an application.
//
//	score = clamp(50 + age + claims + health + smoker + sports + credit + criminal, 0, 100)
//
// Every delta is independent of the others, so evaluation order does not matter.
func Score(app applicant.Application) Assessment {
	adjustments := []Adjustment{
		AgeFactor(app.Applicant),
		ClaimsFactor(app.Claims),
		HealthFactor(app.Applicant),
		SmokerFactor(app.Applicant),
		HighRiskSportsFactor(app.Applicant),
		CreditFactor(app.Reports),
		CriminalRecordFactor(app.Reports),
	}

	raw := BaseScore
	for _, a := range adjustments {
		raw += a.Delta
	}
	score := clamp(raw, MinScore, MaxScore)

	return Assessment{
		Score:       score,
		Category:    CategoryFor(score),
		RawScore:    raw,
		Adjustments: adjustments,
	}
}

// CategoryFor maps a score to its category: 0-39=Low, 40-69=Medium, 70-100=High.
func CategoryFor(score int) Category {
	switch {
	case score < 40:
		return CategoryLow
	case score < 70:
		return CategoryMedium
	default:
		return CategoryHigh
	}
}
