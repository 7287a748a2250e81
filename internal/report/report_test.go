package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Underwriter/internal/agents"
	"github.com/MikeSquared-Agency/Underwriter/internal/applicant"
	"github.com/MikeSquared-Agency/Underwriter/internal/scoring"
)

var fixedTime = time.Date(2025, time.May, 6, 14, 30, 0, 0, time.UTC)

func sampleReport(t *testing.T) *AnalysisReport {
	t.Helper()
	s, ok := applicant.SampleByKey("medium")
	require.True(t, ok)
	r := New(uuid.MustParse("6f1c2a3e-8d41-4f0b-9a57-2c3d4e5f6a7b"), ModeAI, fixedTime, s.Application, scoring.Score(s.Application))
	r.Set(agents.SlotApplicantSummary, "Summary narrative.", ProvenanceAI)
	r.Set(agents.SlotClaimsAnalysis, "Claims narrative.", ProvenanceFallback)
	r.Set(agents.SlotRiskFactors, "• Prior claims history (2)", ProvenanceAI)
	r.Set(agents.SlotRecommendation, "Decision: APPROVE WITH CONDITIONS", ProvenanceFallback)
	return r
}

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"ai":         ModeAI,
		"AI":         ModeAI,
		"rule_based": ModeRuleBased,
		"rule-based": ModeRuleBased,
		"":           ModeRuleBased,
	}
	for in, want := range tests {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMode("hybrid")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	assert.Equal(t, "application/yaml", f.ContentType())

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestNewComputesTotals(t *testing.T) {
	r := sampleReport(t)
	assert.Equal(t, 2, r.TotalClaims)
	assert.Equal(t, int64(12000), r.TotalClaimAmount)
	assert.True(t, r.Complete())
	assert.Equal(t, 2, r.FallbackCount())
}

func TestCompleteDetectsBlankSlot(t *testing.T) {
	r := sampleReport(t)
	r.Set(agents.SlotRiskFactors, "   ", ProvenanceAI)
	assert.False(t, r.Complete())
}

func TestJSONIsLossless(t *testing.T) {
	r := sampleReport(t)
	data, err := JSON(r)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "ai", raw["mode"])
	assert.Equal(t, "2025-05-06T14:30:00Z", raw["analysis_timestamp"])
	assert.EqualValues(t, 2, raw["total_claims"])
	assert.EqualValues(t, 12000, raw["total_claim_amount"])
	assessment := raw["assessment"].(map[string]any)
	assert.EqualValues(t, 55, assessment["risk_score"])
	assert.Equal(t, "Medium", assessment["risk_category"])

	var back AnalysisReport
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r.ID, back.ID)
	assert.Equal(t, r.Outputs, back.Outputs)
	assert.Equal(t, r.Provenance, back.Provenance)
	assert.Equal(t, r.Application.Claims[0].Date.String(), back.Application.Claims[0].Date.String())
}

func TestYAMLExport(t *testing.T) {
	data, err := YAML(sampleReport(t))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Equal(t, "6f1c2a3e-8d41-4f0b-9a57-2c3d4e5f6a7b", raw["id"])
	outputs := raw["agent_outputs"].(map[string]any)
	assert.Equal(t, "Summary narrative.", outputs["applicant_summary"])
	assert.Contains(t, string(data), "2023-03-14")
}

func TestTextExportSections(t *testing.T) {
	out := Text(sampleReport(t))

	for _, want := range []string{
		"UNDERWRITING ANALYSIS REPORT\n" + strings.Repeat("=", 28) + "\n",
		"Report ID: 6f1c2a3e-8d41-4f0b-9a57-2c3d4e5f6a7b",
		"Analysis Mode: AI",
		"Generated: 2025-05-06T14:30:00Z",
		"Name: Mike Davis",
		"Coverage Amount: $500,000",
		"Criminal Record: No",
		"Driving Record: Minor violations",
		"Total Claims: 2",
		"Total Claim Amount: $12,000",
		"Risk Score: 55/100",
		"Risk Category: Medium",
		"  +10 claims (2 prior claims)",
		"APPLICANT SUMMARY [ai]\n" + strings.Repeat("-", 22) + "\nSummary narrative.",
		"CLAIMS ANALYSIS [fallback]",
		"UNDERWRITING RECOMMENDATION [fallback]",
	} {
		assert.Contains(t, out, want)
	}

	// narrative sections follow pipeline order
	last := -1
	for _, slot := range agents.Slots {
		idx := strings.Index(out, slotTitles[slot])
		require.NotEqual(t, -1, idx)
		assert.Greater(t, idx, last)
		last = idx
	}
}

func TestExportSelectsFormat(t *testing.T) {
	r := sampleReport(t)
	for _, f := range []Format{FormatJSON, FormatYAML, FormatText} {
		data, err := Export(r, f)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
	_, err := Export(r, Format("xml"))
	assert.Error(t, err)
}
