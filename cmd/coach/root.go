package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"forgefit/coach/pkg/cli"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configFile  string
	envFiles    []string
	provider    string
	fallback    bool
	secondary   string
	output      string
	metricsFile string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "coach",
		Short: "Coach - AI training program generation",
		Long: `Coach generates and adapts training plans using an AI backend.

Each command performs a single request against the selected backend
(OpenAI, Anthropic or Ollama) and prints the normalized result:
  - program:   periodized training program for a target event
  - challenge: short goal-oriented challenge
  - adapt:     planned workout adapted to current circumstances
  - deload:    reduced-load variants of a workout
  - analyze:   insights from logged training

Credentials are read from the environment (OPENAI_API_KEY, ANTHROPIC_API_KEY,
OLLAMA_API_KEY), a .env file, or the configuration file.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file path (optional)")
	flags.StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv file(s) to load (default: ./.env if present)")
	flags.StringVarP(&opts.provider, "provider", "p", "", "backend: openai, anthropic, ollama (default: ai.provider or openai)")
	flags.BoolVar(&opts.fallback, "fallback", false, "retry once on a secondary backend when the primary fails")
	flags.StringVar(&opts.secondary, "secondary", "", "secondary backend for --fallback (default: ai.fallback_provider)")
	flags.StringVarP(&opts.output, "output", "o", string(cli.FormatText), "output format: text, json, yaml")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the command")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		newProgramCmd(opts),
		newChallengeCmd(opts),
		newAdaptCmd(opts),
		newDeloadCmd(opts),
		newAnalyzeCmd(opts),
		newPhaseCmd(opts),
		newProvidersCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(opts),
	)

	return rootCmd
}

// Execute runs the root command and exits with a status derived from the error.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}
