package agents

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/Underwriter/internal/applicant"
)

var (
	highRiskOccupations     = []string{"pilot", "firefighter", "police officer", "stunt person", "construction worker", "roofer", "electrician"}
	moderateRiskOccupations = []string{"nurse", "doctor", "teacher", "lawyer", "truck driver"}
)

// Summarizer condenses the applicant profile.
type Summarizer struct{}

func (Summarizer) Slot() Slot           { return SlotApplicantSummary }
func (Summarizer) MaxTokens() int       { return 200 }
func (Summarizer) Consults(Inputs) bool { return true }

func (Summarizer) RenderPrompt(in Inputs) string {
	p := in.Application.Applicant
	return fmt.Sprintf(`You are an insurance underwriting assistant. Analyze and summarize the following applicant information in 2-3 concise sentences, highlighting key risk-relevant factors:

Applicant Details:
- Name: %s
- Age: %d years
- Occupation: %s
- Location: %s
- Coverage Amount Requested: %s
- Health Status: %s
- Lifestyle Factors: %s

Provide a professional summary focusing on risk-relevant aspects.`,
		p.Name, p.Age, p.Occupation, p.Location, money(p.CoverageAmount), p.HealthStatus, p.LifestyleList())
}

func (Summarizer) Fallback(in Inputs) string {
	p := in.Application.Applicant

	location := p.Location
	if strings.TrimSpace(location) == "" {
		location = "the applicant's location"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s is a %d-year-old %s based in %s. ", p.Name, p.Age, p.Occupation, location)
	fmt.Fprintf(&b, "Demographic risk: the applicant's age falls in the %s risk band and the occupation is classified as %s risk. ",
		strings.ToLower(AgeRisk(p.Age)), strings.ToLower(OccupationRisk(p.Occupation)))
	fmt.Fprintf(&b, "Health risk: a reported health status of %s indicates %s health risk%s. ",
		p.HealthStatus, strings.ToLower(HealthRisk(p.HealthStatus)), lifestyleClause(p))
	fmt.Fprintf(&b, "Financial exposure: the requested coverage of %s represents a %s financial exposure. ",
		money(p.CoverageAmount), CoverageBand(p.CoverageAmount))
	fmt.Fprintf(&b, "Geographic risk: %s carries no location-specific loading under current guidelines.", location)
	return b.String()
}

// AgeRisk buckets age: High under 25 or 65 and over, Moderate 55–64, Low otherwise.
func AgeRisk(age int) string {
	switch {
	case age < 25 || age >= 65:
		return "High"
	case age >= 55:
		return "Moderate"
	default:
		return "Low"
	}
}

// OccupationRisk matches occupation keywords, high-risk list first.
func OccupationRisk(occupation string) string {
	o := strings.ToLower(occupation)
	for _, k := range highRiskOccupations {
		if strings.Contains(o, k) {
			return "High"
		}
	}
	for _, k := range moderateRiskOccupations {
		if strings.Contains(o, k) {
			return "Moderate"
		}
	}
	return "Standard"
}

func HealthRisk(h applicant.HealthStatus) string {
	switch h {
	case applicant.HealthExcellent, applicant.HealthGood:
		return "Low"
	case applicant.HealthFair:
		return "Moderate"
	default:
		return "High"
	}
}

// CoverageBand classifies the requested coverage amount.
func CoverageBand(amount int64) string {
	switch {
	case amount > 1000000:
		return "significant"
	case amount > 500000:
		return "moderate"
	default:
		return "standard"
	}
}

func lifestyleClause(p applicant.Profile) string {
	var adverse []string
	for _, f := range []applicant.LifestyleFactor{applicant.LifestyleSmoker, applicant.LifestyleHighRiskSports, applicant.LifestyleAlcoholConsumption} {
		if p.HasLifestyle(f) {
			adverse = append(adverse, strings.ToLower(string(f)))
		}
	}
	if len(adverse) == 0 {
		return ", with no adverse lifestyle factors reported"
	}
	return ", with adverse lifestyle factors noted (" + strings.Join(adverse, ", ") + ")"
}
