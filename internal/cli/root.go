// Package cli implements the uwctl command-line client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Underwriter/internal/config"
	"github.com/MikeSquared-Agency/Underwriter/internal/llm"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "uwctl",
		Short: "Insurance underwriting risk analysis",
		Long: `uwctl scores an insurance application and writes the four underwriting
narratives (applicant summary, claims analysis, risk factors, recommendation),
either with an LLM provider or with the built-in rule-based analysts.`,
		SilenceUsage: true,
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log collaborator failures and fallbacks")

	rootCmd.AddCommand(
		newAnalyzeCmd(opts),
		newSamplesCmd(),
		newVersionCmd(version),
	)
	return rootCmd
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "uwctl version %s\n", version)
		},
	}
}

func (o *rootOptions) logger() *slog.Logger {
	level := slog.LevelError
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// completer returns nil when no provider credential is configured.
func completer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (llm.Completer, error) {
	c, err := llm.New(ctx, llm.Settings{
		Provider: llm.Provider(cfg.LLM.Provider),
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  cfg.LLMTimeout(),
	})
	if errors.Is(err, llm.ErrUnavailable) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if cfg.LLM.Breaker.Enabled {
		c = llm.NewBreaker(c, llm.BreakerSettings{
			Name:         cfg.LLM.Provider,
			MinRequests:  cfg.LLM.Breaker.MinRequests,
			FailureRatio: cfg.LLM.Breaker.FailureRatio,
			OpenTimeout:  cfg.BreakerOpenTimeout(),
		}, logger)
	}
	return c, nil
}
