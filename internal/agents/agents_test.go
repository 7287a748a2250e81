package agents

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Underwriter/internal/applicant"
	"github.com/MikeSquared-Agency/Underwriter/internal/scoring"
)

func sample(t *testing.T, key string) applicant.Application {
	t.Helper()
	s, ok := applicant.SampleByKey(key)
	require.True(t, ok)
	return s.Application
}

func allAgents() []Agent {
	return []Agent{Summarizer{}, ClaimsAnalyst{}, RiskFactorIdentifier{}, Recommender{}}
}

func TestAgentSlotsMatchPipelineOrder(t *testing.T) {
	for i, a := range allAgents() {
		assert.Equal(t, Slots[i], a.Slot())
		assert.Greater(t, a.MaxTokens(), 0)
	}
}

func TestFallbacksAreNonEmptyForSamples(t *testing.T) {
	for _, s := range applicant.Samples() {
		in := Inputs{Application: s.Application}
		a := scoring.Score(s.Application)
		in.Assessment = &a
		for _, ag := range allAgents() {
			assert.NotEmpty(t, strings.TrimSpace(ag.Fallback(in)), "%s/%s", s.Key, ag.Slot())
			assert.NotEmpty(t, ag.RenderPrompt(in))
		}
	}
}

func TestFallbacksAreDeterministic(t *testing.T) {
	in := Inputs{Application: sample(t, "high")}
	for _, ag := range allAgents() {
		assert.Equal(t, ag.Fallback(in), ag.Fallback(in))
	}
}

func TestAgeRiskBuckets(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{18, "High"}, {24, "High"}, {25, "Low"}, {54, "Low"}, {55, "Moderate"}, {64, "Moderate"}, {65, "High"}, {80, "High"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AgeRisk(tt.age), "age %d", tt.age)
	}
}

func TestOccupationRisk(t *testing.T) {
	tests := map[string]string{
		"Pilot":               "High",
		"Construction Worker": "High",
		"Police Officer":      "High",
		"Teacher":             "Moderate",
		"Truck Driver":        "Moderate",
		"Nurse":               "Moderate",
		"Software Engineer":   "Standard",
		"Sales Manager":       "Standard",
	}
	for occupation, want := range tests {
		assert.Equal(t, want, OccupationRisk(occupation), occupation)
	}
}

func TestHealthRiskAndCoverageBand(t *testing.T) {
	assert.Equal(t, "Low", HealthRisk(applicant.HealthExcellent))
	assert.Equal(t, "Low", HealthRisk(applicant.HealthGood))
	assert.Equal(t, "Moderate", HealthRisk(applicant.HealthFair))
	assert.Equal(t, "High", HealthRisk(applicant.HealthPoor))

	assert.Equal(t, "standard", CoverageBand(500000))
	assert.Equal(t, "moderate", CoverageBand(500001))
	assert.Equal(t, "moderate", CoverageBand(1000000))
	assert.Equal(t, "significant", CoverageBand(1000001))
}

func TestSummarizerFallbackCoversAllDimensions(t *testing.T) {
	out := Summarizer{}.Fallback(Inputs{Application: sample(t, "high")})
	assert.Contains(t, out, "Robert Wilson is a 68-year-old Pilot based in Miami, FL.")
	assert.Contains(t, out, "Demographic risk:")
	assert.Contains(t, out, "high risk band")
	assert.Contains(t, out, "Health risk:")
	assert.Contains(t, out, "smoker, high-risk sports")
	assert.Contains(t, out, "Financial exposure: the requested coverage of $2,000,000 represents a significant financial exposure.")
	assert.Contains(t, out, "Geographic risk: Miami, FL")
}

func TestClaimsFallbackEmptyHistory(t *testing.T) {
	app := sample(t, "high")
	app.Claims = nil
	assert.Equal(t, NoClaimsNarrative, ClaimsAnalyst{}.Fallback(Inputs{Application: app}))
	assert.False(t, ClaimsAnalyst{}.Consults(Inputs{Application: app}))

	low := sample(t, "low")
	assert.Equal(t, NoClaimsNarrative, ClaimsAnalyst{}.Fallback(Inputs{Application: low}))
}

func TestClaimsFallbackClassifies(t *testing.T) {
	out := ClaimsAnalyst{}.Fallback(Inputs{Application: sample(t, "medium")})
	assert.Equal(t,
		"The applicant has a limited claims history with 2 claims totalling $12,000 across 2 claim types (Auto, Property). "+
			"The average claim amount of $6,000 is classified as moderate. "+
			"Claim frequency alone does not indicate a concerning pattern.",
		out)
}

func TestClaimFrequencyAndSeverity(t *testing.T) {
	assert.Equal(t, "single", ClaimFrequency(1))
	assert.Equal(t, "limited", ClaimFrequency(2))
	assert.Equal(t, "moderate", ClaimFrequency(3))
	assert.Equal(t, "moderate", ClaimFrequency(4))
	assert.Equal(t, "high", ClaimFrequency(5))

	assert.Equal(t, "low-severity", ClaimSeverity(4999))
	assert.Equal(t, "moderate", ClaimSeverity(5000))
	assert.Equal(t, "moderate", ClaimSeverity(14999))
	assert.Equal(t, "significant", ClaimSeverity(15000))
}

func TestRiskFactorFallbackTruncatesToFive(t *testing.T) {
	app := sample(t, "high")
	all := TriggeredRiskFactors(app)
	require.Greater(t, len(all), 5)

	out := RiskFactorIdentifier{}.Fallback(Inputs{Application: app})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "• Senior applicant (age 68)"))
	assert.True(t, strings.HasPrefix(lines[1], "• Frequent prior claims (5)"))
	assert.True(t, strings.HasPrefix(lines[2], "• Poor health status"))
	assert.True(t, strings.HasPrefix(lines[3], "• Smoker"))
	assert.True(t, strings.HasPrefix(lines[4], "• High-risk sports"))
}

func TestRiskFactorFallbackLowRisk(t *testing.T) {
	out := RiskFactorIdentifier{}.Fallback(Inputs{Application: sample(t, "low")})
	assert.Equal(t, lowRiskProfileLine, out)
}

func TestRiskFactorClaimsBulletsAreExclusive(t *testing.T) {
	app := sample(t, "high")
	found := TriggeredRiskFactors(app)
	var claimLines int
	for _, f := range found {
		if strings.Contains(f, "claims") && strings.Contains(f, "(5)") {
			claimLines++
		}
	}
	assert.Equal(t, 1, claimLines)
}

func TestRecommendTemplates(t *testing.T) {
	tests := []struct {
		score    int
		decision Decision
		premium  string
	}{
		{15, DecisionApprove, "Standard premium"},
		{39, DecisionApprove, "Standard premium"},
		{40, DecisionApproveWithConditions, "10–15%"},
		{59, DecisionApproveWithConditions, "10–15%"},
		{60, DecisionApproveWithConditions, "15–25%"},
		{69, DecisionApproveWithConditions, "15–25%"},
		{70, DecisionManualReview, "senior underwriter"},
		{100, DecisionManualReview, "senior underwriter"},
	}
	for _, tt := range tests {
		r := Recommend(tt.score, scoring.CategoryFor(tt.score))
		assert.Equal(t, tt.decision, r.Decision, "score %d", tt.score)
		assert.Contains(t, r.PremiumAdjustment, tt.premium, "score %d", tt.score)
		assert.NotEmpty(t, r.Rationale)
		assert.NotEmpty(t, r.AdditionalSteps)
	}
}

func TestRecommenderFallbackIgnoresPriorText(t *testing.T) {
	app := sample(t, "medium")
	a := scoring.Score(app)
	bare := Recommender{}.Fallback(Inputs{Application: app, Assessment: &a})
	withPrior := Recommender{}.Fallback(Inputs{Application: app, Assessment: &a, Prior: map[Slot]string{
		SlotApplicantSummary: "anything",
		SlotClaimsAnalysis:   "else",
	}})
	assert.Equal(t, bare, withPrior)
	assert.True(t, strings.HasPrefix(bare, "Decision: APPROVE WITH CONDITIONS\nRationale: A risk score of 55/100 (Medium risk)"))
}

func TestRecommenderPromptIncludesContext(t *testing.T) {
	app := sample(t, "medium")
	a := scoring.Score(app)
	prompt := Recommender{}.RenderPrompt(Inputs{Application: app, Assessment: &a, Prior: map[Slot]string{
		SlotApplicantSummary: "Summary text.",
		SlotClaimsAnalysis:   "Claims text.",
	}})
	assert.Contains(t, prompt, "Risk Score: 55/100")
	assert.Contains(t, prompt, "Risk Category: Medium Risk")
	assert.Contains(t, prompt, "Key Factors: Summary text. Claims text.")
}

func TestPromptsCarryApplicantData(t *testing.T) {
	app := sample(t, "medium")
	in := Inputs{Application: app}

	summary := Summarizer{}.RenderPrompt(in)
	assert.Contains(t, summary, "- Name: Mike Davis")
	assert.Contains(t, summary, "- Coverage Amount Requested: $500,000")
	assert.Contains(t, summary, "- Lifestyle Factors: Non-smoker")

	claims := ClaimsAnalyst{}.RenderPrompt(in)
	assert.Contains(t, claims, "- Total Number of Claims: 2")
	assert.Contains(t, claims, "- Total Claim Amount: $12,000")
	assert.Contains(t, claims, `"date": "2023-03-14"`)

	risk := RiskFactorIdentifier{}.RenderPrompt(in)
	assert.Contains(t, risk, "Applicant: Age 45, Construction Worker, Health: Fair")
	assert.Contains(t, risk, "Criminal Record: No")
	assert.Contains(t, risk, "Driving Record: Minor violations")
}
