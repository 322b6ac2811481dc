/*
Package cli provides command-line interface utilities for the coach command.

Output Formatting:

Results can be printed as text, JSON or YAML:

	format, err := cli.ParseOutputFormat(flagValue)
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, result); err != nil {
		return err
	}

Types that implement TextRenderer control their own text layout; everything
else falls back to YAML in text mode.

Errors and Exit Codes:

Commands return *CommandError for failed operations and *ConfigError for bad
configuration or flags. ExitCode maps either to a process exit status.

Signal Handling:

For cancellation on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
	// Use ctx for the backend call so Ctrl-C aborts it
*/
package cli
