package main

import (
	"time"

	"github.com/spf13/cobra"

	"forgefit/coach/pkg/cli"
	"forgefit/coach/pkg/providers"
	"forgefit/coach/pkg/training"
)

func newPhaseCmd(opts *globalOptions) *cobra.Command {
	var flags struct {
		program string
		start   string
		at      string
	}

	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Show which phase and week a program is in",
		Long: `Show which periodization phase and week a generated program is in.

The program's phases must each carry a name and a week count. The start
date defaults to the program's created_at date; --at defaults to today.

Examples:
  coach phase --program program.json
  coach phase --program program.json --start 2025-03-03 --at 2025-04-14`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseOutputFormat(opts.output)
			if err != nil {
				return err
			}

			var program providers.Program
			if err := decodeFile(flags.program, cmd.InOrStdin(), &program); err != nil {
				return inputError("program", err)
			}
			phases, err := training.PhasesFromProgram(program.Phases)
			if err != nil {
				return inputError("program", err)
			}

			start := program.CreatedAt
			if flags.start != "" {
				if start, err = training.ParseDate(flags.start); err != nil {
					return inputError("start", err)
				}
			}
			if start.IsZero() {
				return cli.NewConfigError("start", "program has no created_at; pass --start")
			}

			at := time.Now()
			if flags.at != "" {
				if at, err = training.ParseDate(flags.at); err != nil {
					return inputError("at", err)
				}
			}

			status, err := training.CurrentPhase(start, phases, at)
			if err != nil {
				return cli.NewCommandError(cmd.Name(), err)
			}
			return printResult(cmd.OutOrStdout(), format, phaseView{status})
		},
	}

	cmd.Flags().StringVar(&flags.program, "program", "", "program file (JSON or YAML, - for stdin)")
	cmd.Flags().StringVar(&flags.start, "start", "", "program start date (default: created_at)")
	cmd.Flags().StringVar(&flags.at, "at", "", "date to evaluate (default: today)")
	_ = cmd.MarkFlagRequired("program")

	return cmd
}
