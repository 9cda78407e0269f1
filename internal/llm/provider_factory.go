package llm

import (
	"context"
	"fmt"
	"strings"
)

// ProviderFactory creates providers based on model name or explicit provider choice
type ProviderFactory struct {
	openaiAPIKey string
	geminiAPIKey string
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(openaiAPIKey, geminiAPIKey string) *ProviderFactory {
	return &ProviderFactory{
		openaiAPIKey: openaiAPIKey,
		geminiAPIKey: geminiAPIKey,
	}
}

// Configured reports whether at least one provider has a key
func (f *ProviderFactory) Configured() bool {
	return f.openaiAPIKey != "" || f.geminiAPIKey != ""
}

// Status lists which providers have keys, for the health endpoint
func (f *ProviderFactory) Status() map[string]bool {
	return map[string]bool{
		providerNameOpenAI: f.openaiAPIKey != "",
		providerNameGemini: f.geminiAPIKey != "",
	}
}

// GetProvider returns the appropriate provider for the given model/provider name
func (f *ProviderFactory) GetProvider(ctx context.Context, model, providerName string) (Provider, error) {
	// If provider is explicitly specified, use that
	if providerName != "" {
		return f.getProviderByName(ctx, providerName)
	}

	// Otherwise, infer from model name
	return f.getProviderByModel(ctx, model)
}

// getProviderByName creates a provider by explicit name
func (f *ProviderFactory) getProviderByName(ctx context.Context, providerName string) (Provider, error) {
	switch strings.ToLower(providerName) {
	case providerNameOpenAI:
		return f.openai()
	case providerNameGemini:
		return f.gemini(ctx)
	default:
		return nil, fmt.Errorf("unknown provider: %s (allowed: openai, gemini)", providerName)
	}
}

// getProviderByModel infers provider from model name
func (f *ProviderFactory) getProviderByModel(ctx context.Context, model string) (Provider, error) {
	modelLower := strings.ToLower(model)

	if strings.HasPrefix(modelLower, "gpt-") {
		return f.openai()
	}
	if strings.HasPrefix(modelLower, "gemini-") {
		return f.gemini(ctx)
	}

	// Unknown models go to whichever provider has a key, Gemini first
	if f.geminiAPIKey != "" {
		return f.gemini(ctx)
	}
	return f.openai()
}

func (f *ProviderFactory) openai() (Provider, error) {
	if f.openaiAPIKey == "" {
		return nil, fmt.Errorf("openai: %w", ErrProviderNotConfigured)
	}
	return NewOpenAIProvider(f.openaiAPIKey), nil
}

func (f *ProviderFactory) gemini(ctx context.Context) (Provider, error) {
	if f.geminiAPIKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrProviderNotConfigured)
	}
	return NewGeminiProvider(ctx, f.geminiAPIKey)
}
