package ollama

import (
	"fmt"

	"forgefit/coach/pkg/providers"
)

// Ollama API request/response types

// ChatRequest represents an Ollama /api/chat request.
type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Format   string        `json:"format,omitempty"`
	Options  *ChatOptions  `json:"options,omitempty"`
}

// ChatOptions carries sampling parameters.
type ChatOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ChatMessage represents a message in Ollama format.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse represents a non-streaming Ollama /api/chat response.
type ChatResponse struct {
	Model           string      `json:"model"`
	CreatedAt       string      `json:"created_at"`
	Message         ChatMessage `json:"message"`
	Done            bool        `json:"done"`
	DoneReason      string      `json:"done_reason,omitempty"`
	PromptEvalCount int         `json:"prompt_eval_count"`
	EvalCount       int         `json:"eval_count"`
	Error           string      `json:"error,omitempty"`
}

// transformRequest transforms a provider-agnostic request to Ollama format.
func transformRequest(req *providers.CompletionRequest) *ChatRequest {
	messages := make([]ChatMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, ChatMessage{Role: providers.RoleSystem, Content: req.System})
	}
	for _, msg := range req.Messages {
		messages = append(messages, ChatMessage{Role: msg.Role, Content: msg.Content})
	}

	chatReq := &ChatRequest{
		Model:    req.Model,
		Messages: messages,
		Stream:   false,
	}

	if req.JSONMode {
		chatReq.Format = "json"
	}

	if req.Temperature != 0 || req.MaxTokens != 0 {
		chatReq.Options = &ChatOptions{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		}
	}

	return chatReq
}

// transformResponse transforms an Ollama response to provider-agnostic format.
func transformResponse(resp *ChatResponse) (*providers.CompletionResponse, error) {
	if resp.Error != "" {
		return nil, fmt.Errorf("ollama error: %s", resp.Error)
	}
	if resp.Message.Content == "" {
		return nil, fmt.Errorf("empty message content (done_reason %q)", resp.DoneReason)
	}

	return &providers.CompletionResponse{
		Model:        resp.Model,
		Content:      resp.Message.Content,
		FinishReason: resp.DoneReason,
		Usage: providers.TokenUsage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		},
	}, nil
}
