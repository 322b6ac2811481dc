package anthropic

import (
	"fmt"
	"strings"

	"forgefit/coach/pkg/providers"
)

// defaultMaxTokens is sent when none is configured; the API requires max_tokens.
const defaultMaxTokens = 4096

// jsonPrefill is the assistant turn that steers the model into a JSON object.
// The Messages API has no JSON mode, so the reply continues after "{".
const jsonPrefill = "{"

// Anthropic API request/response types

// AnthropicRequest represents an Anthropic messages request.
type AnthropicRequest struct {
	Model       string             `json:"model"`
	Messages    []AnthropicMessage `json:"messages"`
	System      string             `json:"system,omitempty"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature,omitempty"`
}

// AnthropicMessage represents a message in Anthropic format.
type AnthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ContentBlock represents a content block in Anthropic format.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// AnthropicResponse represents an Anthropic messages response.
type AnthropicResponse struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Content    []ContentBlock `json:"content"`
	Model      string         `json:"model"`
	StopReason string         `json:"stop_reason"`
	Usage      AnthropicUsage `json:"usage"`
}

// AnthropicUsage represents token usage in Anthropic format.
type AnthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// transformRequest transforms a provider-agnostic request to Anthropic format.
// The system instruction is a top-level field; system-role messages are folded into it.
func transformRequest(req *providers.CompletionRequest) (*AnthropicRequest, error) {
	anthropicReq := &AnthropicRequest{
		Model:       req.Model,
		Messages:    make([]AnthropicMessage, 0, len(req.Messages)+1),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	if anthropicReq.MaxTokens == 0 {
		anthropicReq.MaxTokens = defaultMaxTokens
	}

	system := []string{}
	if req.System != "" {
		system = append(system, req.System)
	}
	for _, msg := range req.Messages {
		if msg.Role == providers.RoleSystem {
			system = append(system, msg.Content)
			continue
		}
		anthropicReq.Messages = append(anthropicReq.Messages, AnthropicMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	anthropicReq.System = strings.Join(system, "\n\n")

	if req.JSONMode {
		anthropicReq.Messages = append(anthropicReq.Messages, AnthropicMessage{
			Role:    providers.RoleAssistant,
			Content: jsonPrefill,
		})
	}

	if err := validateMessageSequence(anthropicReq.Messages); err != nil {
		return nil, err
	}

	return anthropicReq, nil
}

// validateMessageSequence validates that messages alternate between user and assistant.
func validateMessageSequence(messages []AnthropicMessage) error {
	if len(messages) == 0 {
		return fmt.Errorf("at least one message is required")
	}

	if messages[0].Role != providers.RoleUser {
		return fmt.Errorf("first message must be from user, got %q", messages[0].Role)
	}

	for i := 1; i < len(messages); i++ {
		if messages[i-1].Role == messages[i].Role {
			return fmt.Errorf("messages must alternate between user and assistant, found consecutive %s messages at index %d",
				messages[i].Role, i)
		}
	}

	return nil
}

// transformResponse transforms an Anthropic response to provider-agnostic format.
// prefilled reports whether the request ended with the JSON prefill, in which
// case the prefill is restored in front of the returned text.
func transformResponse(resp *AnthropicResponse, prefilled bool) (*providers.CompletionResponse, error) {
	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content = block.Text
			break
		}
	}

	if content == "" {
		return nil, fmt.Errorf("no text content block in response (stop_reason %q)", resp.StopReason)
	}

	if prefilled && !strings.HasPrefix(strings.TrimSpace(content), jsonPrefill) {
		content = jsonPrefill + content
	}

	return &providers.CompletionResponse{
		ID:           resp.ID,
		Model:        resp.Model,
		Content:      content,
		FinishReason: resp.StopReason,
		Usage: providers.TokenUsage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}, nil
}
