package agents

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/Underwriter/internal/applicant"
)

const (
	maxRiskFactors     = 5
	riskFactorBullet   = "• "
	lowRiskProfileLine = riskFactorBullet + "Low risk profile: no significant risk factors identified in the applicant data, claims history or external reports."
)

// RiskFactorIdentifier lists the most significant risk factors.
type RiskFactorIdentifier struct{}

func (RiskFactorIdentifier) Slot() Slot           { return SlotRiskFactors }
func (RiskFactorIdentifier) MaxTokens() int       { return 300 }
func (RiskFactorIdentifier) Consults(Inputs) bool { return true }

func (RiskFactorIdentifier) RenderPrompt(in Inputs) string {
	p := in.Application.Applicant
	r := in.Application.Reports
	criminal := "No"
	if r.CriminalRecord {
		criminal = "Yes"
	}
	return fmt.Sprintf(`You are a risk assessment specialist. Identify the top 3-5 key risk factors based on:

Applicant: Age %d, %s, Health: %s
Lifestyle: %s
Claims: %d previous claims
Credit Score: %d
Criminal Record: %s
Driving Record: %s

List the most significant risk factors in bullet points, each with a brief explanation.`,
		p.Age, p.Occupation, p.HealthStatus, p.LifestyleList(), in.Application.Claims.Count(), r.CreditScore, criminal, r.DrivingRecord)
}

func (RiskFactorIdentifier) Fallback(in Inputs) string {
	found := TriggeredRiskFactors(in.Application)
	if len(found) == 0 {
		return lowRiskProfileLine
	}
	if len(found) > maxRiskFactors {
		found = found[:maxRiskFactors]
	}
	lines := make([]string, len(found))
	for i, f := range found {
		lines[i] = riskFactorBullet + f
	}
	return strings.Join(lines, "\n")
}

// TriggeredRiskFactors evaluates the checklist in order and returns every matching line.
func TriggeredRiskFactors(app applicant.Application) []string {
	p := app.Applicant
	r := app.Reports
	n := app.Claims.Count()

	var out []string
	if p.Age < 25 {
		out = append(out, fmt.Sprintf("Young applicant (age %d): applicants under 25 show statistically higher claim frequency.", p.Age))
	}
	if p.Age > 65 {
		out = append(out, fmt.Sprintf("Senior applicant (age %d): applicants over 65 carry elevated health and mortality risk.", p.Age))
	}
	if n > 3 {
		out = append(out, fmt.Sprintf("Frequent prior claims (%d): a repeated claims pattern indicates elevated likelihood of future claims.", n))
	} else if n > 0 {
		out = append(out, fmt.Sprintf("Prior claims history (%d): previous claims are a moderate predictor of future claims.", n))
	}
	if p.HealthStatus == applicant.HealthPoor {
		out = append(out, "Poor health status: significantly increases the likelihood of health-related claims.")
	}
	if p.HasLifestyle(applicant.LifestyleSmoker) {
		out = append(out, "Smoker: tobacco use is strongly associated with chronic illness and higher mortality.")
	}
	if p.HasLifestyle(applicant.LifestyleHighRiskSports) {
		out = append(out, "High-risk sports: participation raises the probability of accidental injury.")
	}
	if r.CreditScore < 600 {
		out = append(out, fmt.Sprintf("Low credit score (%d): indicates potential financial instability.", r.CreditScore))
	}
	if r.CriminalRecord {
		out = append(out, "Criminal record: present on external reports and treated as elevated risk.")
	}
	if r.DrivingRecord != applicant.DrivingClean {
		out = append(out, fmt.Sprintf("Driving record (%s): violations indicate elevated auto and liability risk.", strings.ToLower(string(r.DrivingRecord))))
	}
	return out
}
