package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"forgefit/coach/pkg/cli"
	"forgefit/coach/pkg/config"
	"forgefit/coach/pkg/providerfactory"
	"forgefit/coach/pkg/providers"
	"forgefit/coach/pkg/telemetry/logging"
	"forgefit/coach/pkg/telemetry/metrics"
	"forgefit/coach/pkg/telemetry/tracing"
)

// shutdownTimeout bounds the span flush after a command.
const shutdownTimeout = 5 * time.Second

// app is the per-invocation wiring: configuration, telemetry and the
// provider factory.
type app struct {
	opts    *globalOptions
	cfg     *config.Config
	format  cli.OutputFormat
	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	factory *providerfactory.Factory
}

// loadConfig reads dotenv files and the optional config file, then applies
// flag overrides.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	if err := config.LoadDotEnv(opts.envFiles...); err != nil {
		return nil, cli.NewConfigError("env-file", err.Error())
	}

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, cli.NewConfigError("config", err.Error())
	}

	if opts.verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if opts.metricsFile != "" {
		cfg.Telemetry.Metrics.TextfilePath = opts.metricsFile
	}
	return cfg, nil
}

func newApp(cmd *cobra.Command, opts *globalOptions) (*app, error) {
	format, err := cli.ParseOutputFormat(opts.output)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, cmd.ErrOrStderr()))
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)

	tracer, err := tracing.New(cfg.Telemetry.Tracing, Version)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.tracing", err.Error())
	}

	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)

	return &app{
		opts:    opts,
		cfg:     cfg,
		format:  format,
		logger:  logger,
		metrics: collector,
		tracer:  tracer,
		factory: providerfactory.New(cfg.AI,
			providerfactory.WithLogger(logger),
			providerfactory.WithObserver(collector),
		),
	}, nil
}

// provider builds the backend selected by the flags.
func (a *app) provider() (providers.Provider, error) {
	var (
		p   providers.Provider
		err error
	)
	if a.opts.fallback {
		p, err = a.factory.CreateWithFallback(a.opts.provider, a.opts.secondary)
	} else {
		p, err = a.factory.Create(a.opts.provider)
	}
	if err != nil {
		var cfgErr *providers.ConfigError
		if errors.As(err, &cfgErr) {
			return nil, cli.NewConfigError(cfgErr.Field, err.Error())
		}
		return nil, err
	}
	return p, nil
}

// close flushes telemetry: the metrics textfile, if configured, and pending spans.
func (a *app) close(ctx context.Context) error {
	var errs []error

	if path := a.cfg.Telemetry.Metrics.TextfilePath; path != "" && a.cfg.Telemetry.Metrics.IsEnabled() {
		errs = append(errs, a.metrics.WriteToTextfile(path))
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	errs = append(errs, a.tracer.Shutdown(shutdownCtx))

	return errors.Join(errs...)
}

// operationFunc performs one backend call and returns the value to print.
type operationFunc func(ctx context.Context, p providers.Provider) (any, error)

// runOperation wires up the app, runs fn against the selected backend under
// a signal-cancellable context and prints the result.
func runOperation(cmd *cobra.Command, opts *globalOptions, operation, user string, fn operationFunc) error {
	a, err := newApp(cmd, opts)
	if err != nil {
		return err
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()
	defer func() {
		if err := a.close(ctx); err != nil {
			a.logger.Warn("failed to flush telemetry", "error", err)
		}
	}()

	p, err := a.provider()
	if err != nil {
		return err
	}
	defer closeProvider(p, a.logger)

	ctx = logging.WithRequestID(ctx, uuid.NewString())
	ctx = logging.WithProvider(ctx, p.GetName())
	ctx = logging.WithOperation(ctx, operation)
	if user != "" {
		ctx = logging.WithUser(ctx, user)
	}

	ctx, span := a.tracer.Start(ctx, "coach."+operation)
	defer span.End()
	tracing.SetRequestAttributes(span, logging.GetRequestID(ctx), user)

	start := time.Now()
	result, err := fn(ctx, p)
	if err != nil {
		tracing.SetErrorAttributes(span, err, providers.ErrorType(err))
		a.logger.ErrorContext(ctx, "operation failed",
			"error", err,
			"error_type", providers.ErrorType(err),
			"duration", time.Since(start),
		)
		return cli.NewCommandError(cmd.Name(), err)
	}
	tracing.SetOK(span)
	a.logger.InfoContext(ctx, "operation completed",
		"duration", time.Since(start),
		"trace_id", tracing.TraceID(ctx),
	)

	return printResult(cmd.OutOrStdout(), a.format, result)
}

func closeProvider(p providers.Provider, logger *slog.Logger) {
	c, ok := p.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil && logger != nil {
		logger.Debug("failed to close provider", "provider", p.GetName(), "error", err)
	}
}

func printResult(w io.Writer, format cli.OutputFormat, result any) error {
	if err := cli.NewFormatter(format).FormatTo(w, result); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
