// Package fallback provides a decorator that retries a failed coaching
// operation against a second provider.
//
// Per call the decorator moves through:
//
//	CALL_PRIMARY --success--> result
//	CALL_PRIMARY --failure--> CALL_SECONDARY
//	CALL_SECONDARY --success--> result
//	CALL_SECONDARY --failure--> secondary's error
//
// Any primary failure (transport, non-2xx status, malformed payload) triggers
// the hop. Exactly one hop is made; a fallback provider may itself be wrapped,
// but the decorator never chains on its own.
//
// # Usage
//
//	primary, _ := openai.NewProvider(openaiCfg, logger)
//	secondary, _ := anthropic.NewProvider(anthropicCfg, logger)
//
//	provider := fallback.New(primary, secondary,
//	    fallback.WithLogger(logger),
//	    fallback.WithObserver(collector),
//	)
//
// Most callers use providerfactory.CreateWithFallback instead.
package fallback
