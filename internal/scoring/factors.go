package scoring

import (
	"fmt"

	"github.com/MikeSquared-Agency/Underwriter/internal/applicant"
)

// Adjustment captures one factor's contribution to the risk score.
type Adjustment struct {
	Factor string `json:"factor" yaml:"factor"`
	Delta  int    `json:"delta" yaml:"delta"`
	Reason string `json:"reason" yaml:"reason"`
}

// --- Individual factor calculators ---

// AgeFactor penalises applicants under 25 and over 65.
func AgeFactor(p applicant.Profile) Adjustment {
	switch {
	case p.Age < 25:
		return Adjustment{Factor: "age", Delta: 10, Reason: fmt.Sprintf("age %d is under 25", p.Age)}
	case p.Age > 65:
		return Adjustment{Factor: "age", Delta: 15, Reason: fmt.Sprintf("age %d is over 65", p.Age)}
	default:
		return Adjustment{Factor: "age", Delta: -5, Reason: fmt.Sprintf("age %d is in the standard band", p.Age)}
	}
}

// ClaimsFactor tiers on claim count only; amounts do not affect the score.
func ClaimsFactor(c applicant.Claims) Adjustment {
	n := c.Count()
	switch {
	case n > 3:
		return Adjustment{Factor: "claims", Delta: 20, Reason: fmt.Sprintf("%d prior claims", n)}
	case n > 0:
		return Adjustment{Factor: "claims", Delta: 10, Reason: fmt.Sprintf("%d prior claims", n)}
	default:
		return Adjustment{Factor: "claims", Delta: -10, Reason: "no prior claims"}
	}
}

func HealthFactor(p applicant.Profile) Adjustment {
	switch p.HealthStatus {
	case applicant.HealthExcellent:
		return Adjustment{Factor: "health", Delta: -15, Reason: "excellent health"}
	case applicant.HealthPoor:
		return Adjustment{Factor: "health", Delta: 25, Reason: "poor health"}
	default:
		return Adjustment{Factor: "health", Delta: 0, Reason: fmt.Sprintf("%s health", p.HealthStatus)}
	}
}

func SmokerFactor(p applicant.Profile) Adjustment {
	if p.HasLifestyle(applicant.LifestyleSmoker) {
		return Adjustment{Factor: "smoker", Delta: 15, Reason: "smoker"}
	}
	return Adjustment{Factor: "smoker", Delta: 0, Reason: "not a smoker"}
}

func HighRiskSportsFactor(p applicant.Profile) Adjustment {
	if p.HasLifestyle(applicant.LifestyleHighRiskSports) {
		return Adjustment{Factor: "high_risk_sports", Delta: 10, Reason: "participates in high-risk sports"}
	}
	return Adjustment{Factor: "high_risk_sports", Delta: 0, Reason: "no high-risk sports"}
}

// CreditFactor leaves scores in 600–750 untouched.
func CreditFactor(r applicant.ExternalReports) Adjustment {
	switch {
	case r.CreditScore < 600:
		return Adjustment{Factor: "credit", Delta: 10, Reason: fmt.Sprintf("credit score %d below 600", r.CreditScore)}
	case r.CreditScore > 750:
		return Adjustment{Factor: "credit", Delta: -5, Reason: fmt.Sprintf("credit score %d above 750", r.CreditScore)}
	default:
		return Adjustment{Factor: "credit", Delta: 0, Reason: fmt.Sprintf("credit score %d", r.CreditScore)}
	}
}

func CriminalRecordFactor(r applicant.ExternalReports) Adjustment {
	if r.CriminalRecord {
		return Adjustment{Factor: "criminal_record", Delta: 20, Reason: "criminal record on file"}
	}
	return Adjustment{Factor: "criminal_record", Delta: 0, Reason: "no criminal record"}
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
