package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"forgefit/coach/pkg/cli"
	"forgefit/coach/pkg/providers"
	"forgefit/coach/pkg/training"
)

// inputError reports a bad input file as a usage problem.
func inputError(flag string, err error) error {
	return cli.NewConfigError(flag, err.Error())
}

func newProgramCmd(opts *globalOptions) *cobra.Command {
	var flags struct {
		profile string
		event   string
		context string
	}

	cmd := &cobra.Command{
		Use:   "program",
		Short: "Generate a periodized training program",
		Long: `Generate a periodized training program for an athlete and a target event.

The reply is normalized: a missing id, status, target event, current context
or performance tracking block is filled with defaults.

Examples:
  # Generate from JSON inputs
  coach program --profile athlete.json --event marathon.json

  # Add scheduling constraints and print YAML
  coach program --profile athlete.yaml --event marathon.yaml --context constraints.yaml -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var profile providers.UserProfile
			if err := decodeFile(flags.profile, cmd.InOrStdin(), &profile); err != nil {
				return inputError("profile", err)
			}
			var event providers.TargetEvent
			if err := decodeFile(flags.event, cmd.InOrStdin(), &event); err != nil {
				return inputError("event", err)
			}
			var pctx providers.ProgramGenerationContext
			hasContext, err := decodeOptional(flags.context, cmd.InOrStdin(), &pctx)
			if err != nil {
				return inputError("context", err)
			}

			return runOperation(cmd, opts, providers.OpGenerateProgram, profile.ID,
				func(ctx context.Context, p providers.Provider) (any, error) {
					var pc *providers.ProgramGenerationContext
					if hasContext {
						pc = &pctx
					}
					program, err := p.GenerateProgram(ctx, profile, event, pc)
					if err != nil {
						return nil, err
					}
					return programView{*program}, nil
				})
		},
	}

	cmd.Flags().StringVar(&flags.profile, "profile", "", "athlete profile file (JSON or YAML, - for stdin)")
	cmd.Flags().StringVar(&flags.event, "event", "", "target event file")
	cmd.Flags().StringVar(&flags.context, "context", "", "program constraints file (optional)")
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("event")

	return cmd
}

func newChallengeCmd(opts *globalOptions) *cobra.Command {
	var flags struct {
		profile       string
		challengeType string
	}

	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "Generate a training challenge",
		Long: `Generate a short, goal-oriented challenge for an athlete.

Examples:
  coach challenge --profile athlete.json
  coach challenge --profile athlete.json --type endurance`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var profile providers.UserProfile
			if err := decodeFile(flags.profile, cmd.InOrStdin(), &profile); err != nil {
				return inputError("profile", err)
			}

			return runOperation(cmd, opts, providers.OpGenerateChallenge, profile.ID,
				func(ctx context.Context, p providers.Provider) (any, error) {
					challenge, err := p.GenerateChallenge(ctx, profile, flags.challengeType)
					if err != nil {
						return nil, err
					}
					return challengeView{*challenge}, nil
				})
		},
	}

	cmd.Flags().StringVar(&flags.profile, "profile", "", "athlete profile file (JSON or YAML, - for stdin)")
	cmd.Flags().StringVar(&flags.challengeType, "type", "", "challenge type (default: general)")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func newAdaptCmd(opts *globalOptions) *cobra.Command {
	var flags struct {
		workout string
		context string
	}

	cmd := &cobra.Command{
		Use:   "adapt",
		Short: "Adapt a planned workout to current circumstances",
		Long: `Adapt a planned workout to time, equipment, readiness, travel or injury.

Fields the backend changes are merged over the planned workout; everything
else is kept.

Examples:
  coach adapt --workout tempo.json --context hotel-gym.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var workout providers.Workout
			if err := decodeFile(flags.workout, cmd.InOrStdin(), &workout); err != nil {
				return inputError("workout", err)
			}
			var wctx providers.WorkoutAdaptationContext
			if _, err := decodeOptional(flags.context, cmd.InOrStdin(), &wctx); err != nil {
				return inputError("context", err)
			}

			return runOperation(cmd, opts, providers.OpAdaptWorkout, "",
				func(ctx context.Context, p providers.Provider) (any, error) {
					adapted, err := p.AdaptWorkout(ctx, workout, wctx)
					if err != nil {
						return nil, err
					}
					return workoutView{*adapted}, nil
				})
		},
	}

	cmd.Flags().StringVar(&flags.workout, "workout", "", "planned workout file (JSON or YAML, - for stdin)")
	cmd.Flags().StringVar(&flags.context, "context", "", "adaptation context file (optional)")
	_ = cmd.MarkFlagRequired("workout")

	return cmd
}

func newDeloadCmd(opts *globalOptions) *cobra.Command {
	var flags struct {
		workout       string
		reason        string
		logs          string
		lastDeload    string
		intervalWeeks int
		rpeThreshold  float64
		check         bool
		force         bool
	}

	cmd := &cobra.Command{
		Use:   "deload",
		Short: "Propose deload variants of a workout",
		Long: `Propose one or two reduced-load variants of a workout.

With --logs, recent sessions are checked first: the command only asks the
backend when a deload is due (weeks since the last deload, high recent RPE,
or poor adherence), and the detected reasons are passed along. Use --check
to print the assessment without calling the backend, or --force to ask
regardless.

Examples:
  coach deload --workout squat-day.json --reason "sleep deprived"
  coach deload --workout squat-day.json --logs sessions.json --last-deload 2025-05-01
  coach deload --logs sessions.json --check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseOutputFormat(opts.output)
			if err != nil {
				return err
			}

			reason := flags.reason
			if flags.logs != "" {
				var logs []providers.SessionLog
				if err := decodeFile(flags.logs, cmd.InOrStdin(), &logs); err != nil {
					return inputError("logs", err)
				}
				var lastDeload time.Time
				if flags.lastDeload != "" {
					if lastDeload, err = training.ParseDate(flags.lastDeload); err != nil {
						return inputError("last-deload", err)
					}
				}

				assessment := training.CheckDeloadEligibility(logs, lastDeload, time.Now(), training.DeloadPolicy{
					IntervalWeeks: flags.intervalWeeks,
					RPEThreshold:  flags.rpeThreshold,
				})
				if flags.check || (!assessment.Eligible && !flags.force) {
					return printResult(cmd.OutOrStdout(), format, assessmentView{assessment})
				}
				if reason == "" {
					reason = assessment.Reason()
				}
			} else if flags.check {
				return cli.NewConfigError("logs", "--check requires --logs")
			}

			if flags.workout == "" {
				return cli.NewConfigError("workout", "--workout is required to generate deload options")
			}
			var workout providers.Workout
			if err := decodeFile(flags.workout, cmd.InOrStdin(), &workout); err != nil {
				return inputError("workout", err)
			}

			return runOperation(cmd, opts, providers.OpGenerateDeloadOptions, "",
				func(ctx context.Context, p providers.Provider) (any, error) {
					options, err := p.GenerateDeloadOptions(ctx, workout, reason)
					if err != nil {
						return nil, err
					}
					return deloadView(options), nil
				})
		},
	}

	cmd.Flags().StringVar(&flags.workout, "workout", "", "workout file (JSON or YAML, - for stdin)")
	cmd.Flags().StringVar(&flags.reason, "reason", "", "why a deload is needed")
	cmd.Flags().StringVar(&flags.logs, "logs", "", "session log file (array of sessions)")
	cmd.Flags().StringVar(&flags.lastDeload, "last-deload", "", "date of the last deload (YYYY-MM-DD)")
	cmd.Flags().IntVar(&flags.intervalWeeks, "interval-weeks", training.DefaultDeloadIntervalWeeks, "weeks between deloads")
	cmd.Flags().Float64Var(&flags.rpeThreshold, "rpe-threshold", training.DefaultRPEThreshold, "recent average RPE that triggers a deload")
	cmd.Flags().BoolVar(&flags.check, "check", false, "only print the deload assessment")
	cmd.Flags().BoolVar(&flags.force, "force", false, "generate options even when no deload is due")

	return cmd
}

func newAnalyzeCmd(opts *globalOptions) *cobra.Command {
	var flags struct {
		profile string
		data    string
		program string
	}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze logged training against a program",
		Long: `Analyze an athlete's logged training against their program.

Session aggregates (completion rate, average RPE, total minutes) are
computed locally and sent along with the raw sessions.

Examples:
  coach analyze --profile athlete.json --data last-4-weeks.json --program program.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var profile providers.UserProfile
			if _, err := decodeOptional(flags.profile, cmd.InOrStdin(), &profile); err != nil {
				return inputError("profile", err)
			}
			var data providers.PerformanceData
			if err := decodeFile(flags.data, cmd.InOrStdin(), &data); err != nil {
				return inputError("data", err)
			}
			var program providers.Program
			if err := decodeFile(flags.program, cmd.InOrStdin(), &program); err != nil {
				return inputError("program", err)
			}
			training.Annotate(&data)

			user := profile.ID
			if user == "" {
				user = program.UserID
			}

			return runOperation(cmd, opts, providers.OpAnalyzePerformance, user,
				func(ctx context.Context, p providers.Provider) (any, error) {
					analysis, err := p.AnalyzePerformance(ctx, profile, data, program)
					if err != nil {
						return nil, err
					}
					return analysisView{*analysis}, nil
				})
		},
	}

	cmd.Flags().StringVar(&flags.profile, "profile", "", "athlete profile file (optional)")
	cmd.Flags().StringVar(&flags.data, "data", "", "performance data file")
	cmd.Flags().StringVar(&flags.program, "program", "", "program file")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("program")

	return cmd
}
