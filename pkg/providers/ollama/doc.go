// Package ollama implements the Ollama provider adapter.
//
// Requests go to {base}/api/chat with stream disabled and format "json";
// the payload is read from message.content. The base URL defaults to the
// local daemon (http://localhost:11434) and must use http or https.
//
// The API key is sent as a bearer token, as required by hosted Ollama and by
// authenticating proxies in front of a local daemon. Construction fails
// without it.
package ollama
