// Package openai implements the OpenAI provider adapter.
//
// Requests go to {base}/chat/completions with response_format json_object,
// and the model's JSON payload is read from choices[0].message.content.
//
// # Basic Usage
//
//	config := providers.ProviderConfig{
//	    Name:   "openai",
//	    APIKey: cfg.AI.OpenAI.APIKey,
//	    Model:  "gpt-4o",
//	}
//
//	provider, err := openai.NewProvider(config, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	challenge, err := provider.GenerateChallenge(ctx, profile, "endurance")
//
// # Configuration
//
// The API key is required and construction fails without it. BaseURL
// defaults to https://api.openai.com/v1 and may point at any
// OpenAI-compatible endpoint.
package openai
