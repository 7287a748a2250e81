package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Underwriter/internal/agents"
	"github.com/MikeSquared-Agency/Underwriter/internal/applicant"
	"github.com/MikeSquared-Agency/Underwriter/internal/orchestrator"
	"github.com/MikeSquared-Agency/Underwriter/internal/report"
	"github.com/MikeSquared-Agency/Underwriter/internal/scoring"
)

func writeReport(w io.Writer, r *report.AnalysisReport, output string) error {
	if output == outputHuman {
		displayReport(w, r)
		return nil
	}
	f, err := report.ParseFormat(output)
	if err != nil {
		return err
	}
	body, err := report.Export(r, f)
	if err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

func writeComparison(w io.Writer, c *orchestrator.Comparison, output string) error {
	switch output {
	case outputHuman:
		displayComparison(w, c)
		return nil
	case string(report.FormatJSON):
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case string(report.FormatYAML):
		data, err := yaml.Marshal(c)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("comparison supports human, json and yaml output, not %q", output)
	}
}

func displayReport(w io.Writer, r *report.AnalysisReport) {
	app := r.Application
	printHeader(w, fmt.Sprintf("Underwriting Analysis: %s", app.Applicant.Name))
	fmt.Fprintf(w, "Report:   %s\n", r.ID)
	fmt.Fprintf(w, "Mode:     %s\n", r.Mode.Label())
	fmt.Fprintf(w, "Coverage: $%s\n", humanize.Comma(app.Applicant.CoverageAmount))
	fmt.Fprintf(w, "Claims:   %d totalling $%s\n", r.TotalClaims, humanize.Comma(r.TotalClaimAmount))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Risk Score: %s\n", categoryColor(r.Assessment.Category).Sprintf("%d/100 (%s Risk)", r.Assessment.Score, r.Assessment.Category))
	for _, adj := range r.Assessment.Adjustments {
		if adj.Delta == 0 {
			continue
		}
		fmt.Fprintf(w, "  %+3d  %s\n", adj.Delta, adj.Reason)
	}

	for _, slot := range agents.Slots {
		fmt.Fprintln(w)
		title := color.New(color.Bold).Sprint(report.SlotTitle(slot))
		if r.Provenance[slot] == report.ProvenanceFallback && r.Mode == report.ModeAI {
			title += color.YellowString(" (rule-based fallback)")
		}
		fmt.Fprintln(w, title)
		fmt.Fprintln(w, strings.TrimSpace(r.Outputs[slot]))
	}

	if n := r.FallbackCount(); n > 0 && r.Mode == report.ModeAI {
		fmt.Fprintln(w)
		printError(w, fmt.Sprintf("%d of %d narratives used the rule-based fallback", n, len(agents.Slots)))
	}
}

func displayComparison(w io.Writer, c *orchestrator.Comparison) {
	printHeader(w, "AI vs Rule-Based Comparison")
	if c.ScoresMatch {
		printSuccess(w, fmt.Sprintf("Both modes scored %d/100 (%s Risk)", c.AI.Assessment.Score, c.AI.Assessment.Category))
	} else {
		printError(w, fmt.Sprintf("Scores differ: AI %d, rule-based %d", c.AI.Assessment.Score, c.RuleBased.Assessment.Score))
	}
	if len(c.DifferingSlots) == 0 {
		fmt.Fprintln(w, "All narratives are identical.")
		return
	}
	for _, slot := range c.DifferingSlots {
		fmt.Fprintln(w)
		fmt.Fprintln(w, color.New(color.Bold).Sprint(report.SlotTitle(slot)))
		fmt.Fprintf(w, "%s %s\n", color.CyanString("AI:"), strings.TrimSpace(c.AI.Outputs[slot]))
		fmt.Fprintf(w, "%s %s\n", color.MagentaString("Rule-based:"), strings.TrimSpace(c.RuleBased.Outputs[slot]))
	}
}

func categoryColor(c scoring.Category) *color.Color {
	switch c {
	case scoring.CategoryLow:
		return color.New(color.FgGreen, color.Bold)
	case scoring.CategoryMedium:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func printHeader(w io.Writer, text string) {
	c := color.New(color.FgCyan, color.Bold)
	c.Fprintln(w, text)
	c.Fprintln(w, strings.Repeat("=", len(text)))
}

func printSuccess(w io.Writer, text string) {
	color.New(color.FgGreen).Fprintf(w, "✓ %s\n", text)
}

func printError(w io.Writer, text string) {
	color.New(color.FgRed).Fprintf(w, "✗ %s\n", text)
}

func writeApplication(w io.Writer, app applicant.Application, output string) error {
	switch output {
	case string(report.FormatJSON):
		data, err := json.MarshalIndent(app, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case string(report.FormatYAML):
		data, err := yaml.Marshal(app)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported output %q (json, yaml)", output)
	}
}
