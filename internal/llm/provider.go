package llm

import (
	"context"
	"errors"
)

// ErrProviderNotConfigured is returned when no API key exists for a provider
var ErrProviderNotConfigured = errors.New("llm provider not configured")

// ErrEmptyOutput is returned when a provider answers without any text
var ErrEmptyOutput = errors.New("llm response did not include any output text")

// Provider defines the interface for LLM providers.
// Providers return plain text; callers decide how to interpret it.
type Provider interface {
	// Generate sends the request and returns the model's text output
	Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string
}

// GenerationRequest contains all parameters needed for generation
type GenerationRequest struct {
	Model         string
	InputArray    []map[string]any
	ReasoningMode string
	SystemPrompt  string
}

// TokenUsage is the provider-neutral token accounting of one call
type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

// AsMap returns the usage in the shape the logger and Langfuse expect
func (u TokenUsage) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"input_tokens":  u.InputTokens,
		"output_tokens": u.OutputTokens,
		"total_tokens":  u.TotalTokens,
	}
}

// GenerationResponse contains the result from the LLM
type GenerationResponse struct {
	RawOutput string     `json:"output"`
	Model     string     `json:"model"`
	Usage     TokenUsage `json:"usage"`
}

// UserMessage builds a single-item input array
func UserMessage(content string) []map[string]any {
	return []map[string]any{
		{"role": userRole, "content": content},
	}
}
