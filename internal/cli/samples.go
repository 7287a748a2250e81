package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Underwriter/internal/applicant"
	"github.com/MikeSquared-Agency/Underwriter/internal/scoring"
)

func newSamplesCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "samples [key]",
		Short: "List the built-in sample applications or print one",
		Long: `Without an argument, lists the sample applications with their risk scores.
With a key, prints that application so it can be edited and fed back to
"uwctl analyze -f".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				printHeader(w, "Sample Applications")
				for _, s := range applicant.Samples() {
					a := scoring.Score(s.Application)
					fmt.Fprintf(w, "%-7s %-14s score %3d  %-6s coverage $%s\n",
						s.Key, s.Application.Applicant.Name, a.Score, a.Category,
						humanize.Comma(s.Application.Applicant.CoverageAmount))
				}
				return nil
			}
			s, ok := applicant.SampleByKey(args[0])
			if !ok {
				return fmt.Errorf("unknown sample %q (available: low, medium, high)", args[0])
			}
			if output == outputHuman {
				output = "yaml"
			}
			return writeApplication(w, s.Application, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format for a single sample (json, yaml)")
	return cmd
}
