package agents

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NoClaimsNarrative is the claims analysis for an empty history, in both modes.
const NoClaimsNarrative = "No previous claims on record. This is a positive indicator for risk assessment."

// ClaimsAnalyst reviews the claims history.
type ClaimsAnalyst struct{}

func (ClaimsAnalyst) Slot() Slot     { return SlotClaimsAnalysis }
func (ClaimsAnalyst) MaxTokens() int { return 200 }

// Consults is false for an empty history: there is nothing for the model to analyse.
func (ClaimsAnalyst) Consults(in Inputs) bool {
	return len(in.Application.Claims) > 0
}

func (ClaimsAnalyst) RenderPrompt(in Inputs) string {
	claims := in.Application.Claims
	details, err := json.MarshalIndent(claims, "", "  ")
	if err != nil {
		details = []byte("[]")
	}
	return fmt.Sprintf(`You are an insurance claims analyst. Analyze the following claims history and provide insights about risk patterns:

Claims Summary:
- Total Number of Claims: %d
- Total Claim Amount: %s
- Types of Claims: %s
- Claims Details: %s

Provide a 2-3 sentence analysis focusing on frequency, severity, and any concerning patterns.`,
		claims.Count(), money(claims.TotalAmount()), claimTypeList(in), string(details))
}

func (ClaimsAnalyst) Fallback(in Inputs) string {
	claims := in.Application.Claims
	n := claims.Count()
	if n == 0 {
		return NoClaimsNarrative
	}

	total := claims.TotalAmount()
	average := total / int64(n)
	types := claims.Types()
	frequency := ClaimFrequency(n)

	var b strings.Builder
	fmt.Fprintf(&b, "The applicant has a %s claims history with %d %s totalling %s across %d claim %s (%s). ",
		frequency, n, plural(n, "claim", "claims"), money(total), len(types), plural(len(types), "type", "types"), claimTypeList(in))
	fmt.Fprintf(&b, "The average claim amount of %s is classified as %s. ", money(average), ClaimSeverity(average))
	if frequency == "moderate" || frequency == "high" {
		b.WriteString("Claim frequency is a material consideration for pricing and policy conditions.")
	} else {
		b.WriteString("Claim frequency alone does not indicate a concerning pattern.")
	}
	return b.String()
}

// ClaimFrequency labels a claim count: 1 single, 2 limited, 3–4 moderate, 5+ high.
func ClaimFrequency(n int) string {
	switch {
	case n <= 1:
		return "single"
	case n == 2:
		return "limited"
	case n <= 4:
		return "moderate"
	default:
		return "high"
	}
}

// ClaimSeverity labels an average claim amount.
func ClaimSeverity(average int64) string {
	switch {
	case average < 5000:
		return "low-severity"
	case average < 15000:
		return "moderate"
	default:
		return "significant"
	}
}

func claimTypeList(in Inputs) string {
	types := in.Application.Claims.Types()
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
