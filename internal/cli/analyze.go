package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Underwriter/internal/applicant"
	"github.com/MikeSquared-Agency/Underwriter/internal/config"
	"github.com/MikeSquared-Agency/Underwriter/internal/llm"
	"github.com/MikeSquared-Agency/Underwriter/internal/orchestrator"
	"github.com/MikeSquared-Agency/Underwriter/internal/report"
)

const outputHuman = "human"

type analyzeOptions struct {
	input   string
	sample  string
	mode    string
	output  string
	outFile string
	compare bool
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score an application and write the underwriting report",
		Example: `  uwctl analyze --sample high
  uwctl analyze -f application.yaml --mode ai -o yaml
  uwctl analyze -f application.json -o text --out report.txt
  uwctl samples medium -o yaml | uwctl analyze -f -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "file", "f", "", "Application file (JSON or YAML, - for stdin)")
	cmd.Flags().StringVar(&opts.sample, "sample", "", "Use a built-in sample application (low, medium, high)")
	cmd.Flags().StringVar(&opts.mode, "mode", string(report.ModeRuleBased), "Analysis mode (ai, rule_based)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputHuman, "Output format (human, json, yaml, text)")
	cmd.Flags().StringVar(&opts.outFile, "out", "", "Write the report to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.compare, "compare", false, "Run both modes and show where they differ")
	cmd.MarkFlagsMutuallyExclusive("file", "sample")
	return cmd
}

func runAnalyze(cmd *cobra.Command, root *rootOptions, opts *analyzeOptions) error {
	app, err := opts.application(cmd.InOrStdin())
	if err != nil {
		return err
	}
	mode, err := report.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	if opts.output != outputHuman {
		if _, err := report.ParseFormat(opts.output); err != nil {
			return err
		}
	}

	cfg, err := config.Load(root.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := root.logger()
	c, err := completer(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = llm.Close(c) }()
	o := orchestrator.New(c, logger, orchestrator.WithCallTimeout(cfg.LLMTimeout()))

	out := cmd.OutOrStdout()
	if opts.outFile != "" {
		f, err := os.Create(opts.outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = fmt.Sprintf(" Analyzing %s (%s)...", app.Applicant.Name, mode.Label())
	s.Start()

	if opts.compare {
		cmp, err := o.Compare(cmd.Context(), app)
		s.Stop()
		if err != nil {
			return err
		}
		return writeComparison(out, cmp, opts.output)
	}

	rep, err := o.Run(cmd.Context(), app, mode)
	s.Stop()
	if err != nil {
		return err
	}
	if err := writeReport(out, rep, opts.output); err != nil {
		return err
	}
	if opts.outFile != "" {
		printSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Report %s written to %s", rep.ID, opts.outFile))
	}
	return nil
}

func (o *analyzeOptions) application(stdin io.Reader) (applicant.Application, error) {
	switch {
	case o.sample != "":
		s, ok := applicant.SampleByKey(o.sample)
		if !ok {
			return applicant.Application{}, fmt.Errorf("unknown sample %q (available: low, medium, high)", o.sample)
		}
		return s.Application, nil
	case o.input == "-":
		return decodeApplication(stdin, "")
	case o.input != "":
		return loadApplication(o.input)
	default:
		return applicant.Application{}, fmt.Errorf("either --file or --sample is required")
	}
}

func loadApplication(path string) (applicant.Application, error) {
	f, err := os.Open(path)
	if err != nil {
		return applicant.Application{}, err
	}
	defer f.Close()
	return decodeApplication(f, filepath.Ext(path))
}

// decodeApplication reads JSON for a .json extension and YAML otherwise. YAML is a
// superset of JSON, so stdin input of either kind decodes.
func decodeApplication(r io.Reader, ext string) (applicant.Application, error) {
	var app applicant.Application
	if strings.EqualFold(ext, ".json") {
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&app); err != nil {
			return app, fmt.Errorf("parsing application: %w", err)
		}
		return app, nil
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&app); err != nil {
		return app, fmt.Errorf("parsing application: %w", err)
	}
	return app, nil
}
