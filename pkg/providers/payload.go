package providers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ErrNoJSONObject is returned when a model reply contains no JSON object.
var ErrNoJSONObject = errors.New("no JSON object found in model reply")

// DecodePayload extracts the JSON object from a model reply and decodes it into v.
//
// Replies may be wrapped in markdown code fences or surrounded by prose; the
// outermost {...} span is used. If strict decoding fails the content is passed
// through jsonrepair once before giving up.
func DecodePayload(provider, content string, v any) error {
	object, err := extractJSONObject(content)
	if err != nil {
		return &ParseError{
			Provider:    provider,
			RawResponse: content,
			Cause:       err,
		}
	}

	strictErr := json.Unmarshal([]byte(object), v)
	if strictErr == nil {
		return nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(object)
	if repairErr != nil {
		return &ParseError{
			Provider:    provider,
			RawResponse: content,
			Cause:       fmt.Errorf("invalid JSON payload: %w (repair failed: %v)", strictErr, repairErr),
		}
	}

	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return &ParseError{
			Provider:    provider,
			RawResponse: content,
			Cause:       fmt.Errorf("invalid JSON payload after repair: %w", err),
		}
	}

	return nil
}

// extractJSONObject returns the outermost JSON object in content.
func extractJSONObject(content string) (string, error) {
	s := strings.TrimSpace(stripCodeFence(content))
	if s == "" {
		return "", ErrNoJSONObject
	}

	start := strings.Index(s, "{")
	if start < 0 {
		return "", ErrNoJSONObject
	}

	end := strings.LastIndex(s, "}")
	if end < start {
		// Truncated object; let jsonrepair try to close it.
		return s[start:], nil
	}

	return s[start : end+1], nil
}

// stripCodeFence removes a surrounding ```json ... ``` block, if present.
func stripCodeFence(content string) string {
	s := strings.TrimSpace(content)
	open := strings.Index(s, "```")
	if open < 0 {
		return s
	}

	rest := s[open+3:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 && !strings.Contains(rest[:nl], "{") {
		// Drop the language tag line (```json).
		rest = rest[nl+1:]
	}

	if closing := strings.LastIndex(rest, "```"); closing >= 0 {
		rest = rest[:closing]
	}

	return rest
}
