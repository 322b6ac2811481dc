package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"forgefit/coach/pkg/cli"
)

var (
	// Version is the semantic version (set by build flags)
	Version = "0.1.0"
	// GitCommit is the git commit hash (set by build flags)
	GitCommit = "unknown"
	// BuildDate is the build timestamp (set by build flags)
	BuildDate = "unknown"
)

// versionInfo is the build information printed by the version command.
type versionInfo struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

func currentVersion() versionInfo {
	return versionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (v versionInfo) RenderText(w io.Writer) error {
	table := uitable.New()
	table.RightAlign(0)
	table.Separator = " "
	table.AddRow("Version:", v.Version)
	table.AddRow("Git Commit:", v.GitCommit)
	table.AddRow("Build Date:", v.BuildDate)
	table.AddRow("Go Version:", v.GoVersion)
	table.AddRow("OS/Arch:", v.Platform)
	_, err := fmt.Fprintln(w, table)
	return err
}

func newVersionCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including Git commit and build date.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseOutputFormat(opts.output)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), format, currentVersion())
		},
	}
}
