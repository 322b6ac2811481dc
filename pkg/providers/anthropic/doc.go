// Package anthropic implements the Anthropic provider adapter.
//
// Requests go to {base}/v1/messages with the system instruction as a
// top-level field and the anthropic-version header set. The Messages API has
// no JSON mode, so requests end with an assistant turn of "{" and the reply
// is read from the first text content block with that prefix restored.
//
// # Basic Usage
//
//	config := providers.ProviderConfig{
//	    Name:   "anthropic",
//	    APIKey: cfg.AI.Anthropic.APIKey,
//	}
//
//	provider, err := anthropic.NewProvider(config, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	options, err := provider.GenerateDeloadOptions(ctx, workout, "accumulated fatigue")
package anthropic
