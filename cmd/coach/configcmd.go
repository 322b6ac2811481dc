package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"forgefit/coach/pkg/cli"
	"forgefit/coach/pkg/config"
	"forgefit/coach/pkg/telemetry/logging"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		Long: `Load the configuration file (if any), dotenv files and environment
overrides, and report every validation error.

Examples:
  coach config validate --config coach.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(opts); err != nil {
				return err
			}
			source := opts.configFile
			if source == "" {
				source = "environment"
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "configuration is valid (%s)\n", source)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with credentials masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseOutputFormat(opts.output)
			if err != nil {
				return err
			}
			if format == cli.FormatText {
				format = cli.FormatYAML
			}
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), format, maskCredentials(*cfg))
		},
	})

	return cmd
}

// maskCredentials returns cfg with every API key shortened to its prefix.
func maskCredentials(cfg config.Config) config.Config {
	for _, b := range []*config.BackendConfig{&cfg.AI.OpenAI, &cfg.AI.Anthropic, &cfg.AI.Ollama} {
		if b.APIKey != "" {
			b.APIKey = logging.RedactAPIKey(b.APIKey)
		}
	}
	return cfg
}
