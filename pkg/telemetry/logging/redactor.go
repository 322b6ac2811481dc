package logging

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Redactor masks credentials in log messages and attributes.
type Redactor struct {
	patterns []*redactPattern
}

// Pattern is a named redaction rule.
type Pattern struct {
	Name        string
	Regex       string
	Replacement string
}

// redactPattern contains a compiled regex and replacement string.
type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Built-in pattern names.
const (
	PatternAPIKey       = "api_key"
	PatternAnthropicKey = "anthropic_key"
	PatternBearerToken  = "bearer_token"
	PatternPassword     = "password"
	PatternEmail        = "email"
)

// builtinPatterns run in order; the Anthropic key pattern must precede the
// generic sk- pattern so the longer prefix wins.
var builtinPatterns = []Pattern{
	{PatternAnthropicKey, `sk-ant-[a-zA-Z0-9\-_]+`, "sk-ant-***"},
	{PatternAPIKey, `sk-(?:proj-)?[a-zA-Z0-9]{8,}[a-zA-Z0-9\-_]*`, "sk-***"},
	{PatternBearerToken, `Bearer\s+[a-zA-Z0-9\-._~+/]+=*`, "Bearer ***"},
	{PatternPassword, `(password|passwd|pwd)[:=]\s*[^\s]+`, "$1: ***"},
	{PatternEmail, `([a-zA-Z0-9._%+-])[a-zA-Z0-9._%+-]*@([a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`, "$1***@$2"},
}

// sensitiveKeys mark attributes whose value is masked regardless of content.
var sensitiveKeys = []string{
	"password", "passwd", "pwd",
	"secret", "token", "api_key", "apikey",
	"authorization", "x-api-key", "credential",
	"private_key", "privatekey",
}

// NewRedactor creates a Redactor with the built-in patterns followed by extra.
func NewRedactor(extra []Pattern) (*Redactor, error) {
	r := &Redactor{}
	for _, p := range append(append([]Pattern(nil), builtinPatterns...), extra...) {
		regex, err := regexp.Compile(p.Regex)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", p.Name, err)
		}
		r.patterns = append(r.patterns, &redactPattern{
			name:        p.Name,
			regex:       regex,
			replacement: p.Replacement,
		})
	}
	return r, nil
}

// RedactString masks every pattern match in value.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}
	for _, p := range r.patterns {
		value = p.regex.ReplaceAllString(value, p.replacement)
	}
	return value
}

// RedactAttr masks a single attribute. Group members are redacted recursively.
func (r *Redactor) RedactAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()

	if v.Kind() == slog.KindGroup {
		group := v.Group()
		redacted := make([]any, len(group))
		for i, member := range group {
			redacted[i] = r.RedactAttr(member)
		}
		return slog.Group(a.Key, redacted...)
	}

	if isSensitiveKey(a.Key) {
		return slog.String(a.Key, maskValue(v))
	}

	switch v.Kind() {
	case slog.KindString:
		return slog.String(a.Key, r.RedactString(v.String()))
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return slog.String(a.Key, r.RedactString(err.Error()))
		}
		if s, ok := v.Any().(fmt.Stringer); ok {
			return slog.String(a.Key, r.RedactString(s.String()))
		}
	}
	return slog.Attr{Key: a.Key, Value: v}
}

// isSensitiveKey checks if a key name indicates sensitive data.
func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(lowerKey, sensitive) {
			return true
		}
	}
	return false
}

// maskValue keeps a short prefix of string values for identification.
func maskValue(v slog.Value) string {
	if v.Kind() != slog.KindString {
		return "***"
	}
	return RedactAPIKey(v.String())
}

// RedactAPIKey redacts an API key, keeping only a prefix.
func RedactAPIKey(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	if len(apiKey) <= 4 {
		return "***"
	}
	return apiKey[:4] + "***"
}
