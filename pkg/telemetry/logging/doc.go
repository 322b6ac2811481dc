// Package logging builds the process logger.
//
// New returns a plain *slog.Logger whose handler does two things on top of
// the standard JSON or text handler:
//
//   - adds request-scoped fields stored in the context (request_id, user,
//     provider, operation) to every record logged with a *Context method;
//   - masks credentials (OpenAI and Anthropic keys, bearer tokens, values of
//     keys such as api_key or authorization) when RedactSecrets is set.
//
// # Usage
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stderr))
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger)
//
//	ctx = logging.WithRequestID(ctx, "req-123")
//	logger.InfoContext(ctx, "program generated", "api_key", key) // api_key masked
package logging
