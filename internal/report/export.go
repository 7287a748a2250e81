package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Underwriter/internal/agents"
)

// Format is an export projection of a report.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected json, yaml or text)", s)
	}
}

// ContentType returns the HTTP media type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Export renders r in format f.
func Export(r *AnalysisReport, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return JSON(r)
	case FormatYAML:
		return YAML(r)
	case FormatText:
		return []byte(Text(r)), nil
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
}

func JSON(r *AnalysisReport) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report json: %w", err)
	}
	return data, nil
}

func YAML(r *AnalysisReport) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal report yaml: %w", err)
	}
	return data, nil
}

var slotTitles = map[agents.Slot]string{
	agents.SlotApplicantSummary: "APPLICANT SUMMARY",
	agents.SlotClaimsAnalysis:   "CLAIMS ANALYSIS",
	agents.SlotRiskFactors:      "KEY RISK FACTORS",
	agents.SlotRecommendation:   "UNDERWRITING RECOMMENDATION",
}

// SlotTitle is the section heading used for a narrative slot.
func SlotTitle(s agents.Slot) string { return slotTitles[s] }

// Text renders the flat, human-readable report with one delimited section per field group.
func Text(r *AnalysisReport) string {
	var b strings.Builder
	p := r.Application.Applicant
	ext := r.Application.Reports

	heading(&b, "UNDERWRITING ANALYSIS REPORT", "=")
	fmt.Fprintf(&b, "Report ID: %s\n", r.ID)
	fmt.Fprintf(&b, "Analysis Mode: %s\n", r.Mode.Label())
	fmt.Fprintf(&b, "Generated: %s\n", r.Timestamp.Format(time.RFC3339))

	section(&b, "APPLICANT INFORMATION")
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	fmt.Fprintf(&b, "Age: %d\n", p.Age)
	fmt.Fprintf(&b, "Occupation: %s\n", p.Occupation)
	fmt.Fprintf(&b, "Location: %s\n", p.Location)
	fmt.Fprintf(&b, "Coverage Amount: $%s\n", humanize.Comma(p.CoverageAmount))
	fmt.Fprintf(&b, "Health Status: %s\n", p.HealthStatus)
	fmt.Fprintf(&b, "Lifestyle Factors: %s\n", p.LifestyleList())

	section(&b, "EXTERNAL REPORTS")
	fmt.Fprintf(&b, "Credit Score: %d\n", ext.CreditScore)
	fmt.Fprintf(&b, "Criminal Record: %s\n", yesNo(ext.CriminalRecord))
	fmt.Fprintf(&b, "Driving Record: %s\n", ext.DrivingRecord)

	section(&b, "CLAIMS HISTORY")
	fmt.Fprintf(&b, "Total Claims: %d\n", r.TotalClaims)
	fmt.Fprintf(&b, "Total Claim Amount: $%s\n", humanize.Comma(r.TotalClaimAmount))
	for _, c := range r.Application.Claims {
		fmt.Fprintf(&b, "  - %s  %-9s $%s\n", c.Date, c.Type, humanize.Comma(c.Amount))
	}

	section(&b, "RISK ASSESSMENT")
	fmt.Fprintf(&b, "Risk Score: %d/100\n", r.Assessment.Score)
	fmt.Fprintf(&b, "Risk Category: %s\n", r.Assessment.Category)
	for _, a := range r.Assessment.Adjustments {
		if a.Delta == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %+d %s (%s)\n", a.Delta, a.Factor, a.Reason)
	}

	for _, slot := range agents.Slots {
		section(&b, fmt.Sprintf("%s [%s]", slotTitles[slot], r.Provenance[slot]))
		b.WriteString(strings.TrimSpace(r.Outputs[slot]))
		b.WriteString("\n")
	}
	return b.String()
}

func heading(b *strings.Builder, title, rule string) {
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat(rule, len(title)))
	b.WriteString("\n")
}

func section(b *strings.Builder, title string) {
	b.WriteString("\n")
	heading(b, title, "-")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
