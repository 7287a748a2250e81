package agents

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/Underwriter/internal/scoring"
)

type Decision string

const (
	DecisionApprove               Decision = "APPROVE"
	DecisionApproveWithConditions Decision = "APPROVE WITH CONDITIONS"
	DecisionManualReview          Decision = "MANUAL REVIEW REQUIRED"
)

// Recommendation is one filled-in decision template.
type Recommendation struct {
	Decision          Decision
	Rationale         string
	PremiumAdjustment string
	AdditionalSteps   string
}

func (r Recommendation) String() string {
	return fmt.Sprintf("Decision: %s\nRationale: %s\nPremium Adjustment: %s\nAdditional Steps: %s",
		r.Decision, r.Rationale, r.PremiumAdjustment, r.AdditionalSteps)
}

// Recommender produces the underwriting decision. It must run after the scorer.
type Recommender struct{}

func (Recommender) Slot() Slot           { return SlotRecommendation }
func (Recommender) MaxTokens() int       { return 250 }
func (Recommender) Consults(Inputs) bool { return true }

func (Recommender) RenderPrompt(in Inputs) string {
	score, category := assessmentOf(in)
	keyFactors := strings.TrimSpace(in.Prior[SlotApplicantSummary] + " " + in.Prior[SlotClaimsAnalysis])
	return fmt.Sprintf(`You are a senior underwriter. Based on the following risk assessment, provide a clear underwriting decision and recommendation:

Risk Score: %d/100
Risk Category: %s Risk
Key Factors: %s

Provide:
1. Clear decision (Approve/Approve with Conditions/Decline/Manual Review)
2. Specific recommendations for premium adjustments or policy conditions
3. Any additional steps needed

Keep response concise and actionable (3-4 sentences).`, score, category, keyFactors)
}

// Fallback ignores prior narratives; only the score band matters.
func (Recommender) Fallback(in Inputs) string {
	score, category := assessmentOf(in)
	return Recommend(score, category).String()
}

// Recommend selects the decision template for a score: <40 approve, 40–69 approve with
// conditions, 70+ manual review.
func Recommend(score int, category scoring.Category) Recommendation {
	switch {
	case score < 40:
		return Recommendation{
			Decision:          DecisionApprove,
			Rationale:         fmt.Sprintf("A risk score of %d/100 (%s risk) indicates a favourable profile that meets standard underwriting criteria.", score, category),
			PremiumAdjustment: "Standard premium rates apply; no adjustment recommended.",
			AdditionalSteps:   "Issue the policy on standard terms and schedule a routine review at renewal.",
		}
	case score < 70:
		increase := "10–15%"
		if score >= 60 {
			increase = "15–25%"
		}
		return Recommendation{
			Decision:          DecisionApproveWithConditions,
			Rationale:         fmt.Sprintf("A risk score of %d/100 (%s risk) indicates elevated but manageable risk.", score, category),
			PremiumAdjustment: fmt.Sprintf("Increase the premium by %s over standard rates.", increase),
			AdditionalSteps:   "Consider exclusions for the identified risk factors and request supporting documentation before issuing the policy.",
		}
	default:
		return Recommendation{
			Decision:          DecisionManualReview,
			Rationale:         fmt.Sprintf("A risk score of %d/100 (%s risk) exceeds the threshold for automated approval.", score, category),
			PremiumAdjustment: "A substantial premium loading is likely; final pricing is to be set by a senior underwriter.",
			AdditionalSteps:   "Refer the application to a senior underwriter, obtain a full medical examination and verify all external reports before any decision.",
		}
	}
}

func assessmentOf(in Inputs) (int, scoring.Category) {
	if in.Assessment == nil {
		a := scoring.Score(in.Application)
		return a.Score, a.Category
	}
	return in.Assessment.Score, in.Assessment.Category
}
