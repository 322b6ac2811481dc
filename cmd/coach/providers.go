package main

import (
	"fmt"
	"io"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"forgefit/coach/pkg/cli"
	"forgefit/coach/pkg/config"
	"forgefit/coach/pkg/providerfactory"
	"forgefit/coach/pkg/providers/anthropic"
	"forgefit/coach/pkg/providers/ollama"
	"forgefit/coach/pkg/providers/openai"
)

// backendInfo describes one backend as configured.
type backendInfo struct {
	Name       string `json:"name" yaml:"name"`
	Default    bool   `json:"default" yaml:"default"`
	Fallback   bool   `json:"fallback" yaml:"fallback"`
	BaseURL    string `json:"base_url" yaml:"base_url"`
	Model      string `json:"model" yaml:"model"`
	Credential string `json:"credential" yaml:"credential"`
	Status     string `json:"status,omitempty" yaml:"status,omitempty"`
}

type backendList []backendInfo

func (l backendList) RenderText(w io.Writer) error {
	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("NAME", "DEFAULT", "FALLBACK", "MODEL", "BASE URL", "CREDENTIAL", "STATUS")
	for _, b := range l {
		table.AddRow(b.Name, yesNo(b.Default), yesNo(b.Fallback), b.Model, b.BaseURL, b.Credential, b.Status)
	}
	_, err := fmt.Fprintln(w, table)
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}

// defaults returns the endpoint and model a backend uses when unset.
func defaults(name string) (baseURL, model string) {
	switch name {
	case openai.Name:
		return openai.DefaultBaseURL, openai.DefaultModel
	case anthropic.Name:
		return anthropic.DefaultBaseURL, anthropic.DefaultModel
	case ollama.Name:
		return ollama.DefaultBaseURL, ollama.DefaultModel
	}
	return "", ""
}

func describeBackends(cfg *config.Config) backendList {
	factory := providerfactory.New(cfg.AI)
	defaultName := factory.Resolve("")

	var list backendList
	for _, name := range providerfactory.Names() {
		backend, _ := cfg.AI.Backend(name)
		baseURL, model := defaults(name)
		if backend.BaseURL != "" {
			baseURL = backend.BaseURL
		}
		if backend.Model != "" {
			model = backend.Model
		}
		credential := "missing"
		if backend.APIKey != "" {
			credential = "set"
		}
		list = append(list, backendInfo{
			Name:       name,
			Default:    name == defaultName,
			Fallback:   name == cfg.AI.FallbackProvider,
			BaseURL:    baseURL,
			Model:      model,
			Credential: credential,
		})
	}
	return list
}

func newProvidersCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List AI backends and their configuration",
		Long: `List the supported AI backends with the endpoint, model and credential
state each would be built with.

Examples:
  coach providers
  coach providers check
  coach providers check ollama -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseOutputFormat(opts.output)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), format, describeBackends(cfg))
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check [name...]",
		Short: "Build each backend and report construction errors",
		Long: `Build each named backend (all of them by default) the way the
operation commands would and report whether construction succeeds.
No request is sent to the backend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseOutputFormat(opts.output)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			names := args
			if len(names) == 0 {
				names = providerfactory.Names()
			}

			factory := providerfactory.New(cfg.AI)
			described := map[string]backendInfo{}
			for _, b := range describeBackends(cfg) {
				described[b.Name] = b
			}

			var (
				list   backendList
				failed int
			)
			for _, name := range names {
				info, ok := described[name]
				if !ok {
					info = backendInfo{Name: name}
				}
				info.Status = "ok"

				p, err := factory.Create(name)
				if err != nil {
					info.Status = err.Error()
					failed++
				} else {
					closeProvider(p, nil)
				}
				list = append(list, info)
			}

			if err := printResult(cmd.OutOrStdout(), format, list); err != nil {
				return err
			}
			if failed > 0 {
				return cli.NewCommandError("providers check", fmt.Errorf("%d of %d backends failed to build", failed, len(list)))
			}
			return nil
		},
	})

	return cmd
}
