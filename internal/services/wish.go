package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Conceptual-Machines/sendawish-api/internal/llm"
	"github.com/Conceptual-Machines/sendawish-api/internal/logger"
	"github.com/Conceptual-Machines/sendawish-api/internal/metrics"
	"github.com/Conceptual-Machines/sendawish-api/internal/models"
	"github.com/Conceptual-Machines/sendawish-api/internal/observability"
	"github.com/Conceptual-Machines/sendawish-api/internal/prompt"
	"github.com/getsentry/sentry-go"
)

// Wish text sources
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// Wish is the text shown on a wish page
type Wish struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Model  string `json:"model,omitempty"`
}

// ProviderSource resolves the provider for a model. *llm.ProviderFactory satisfies it.
type ProviderSource interface {
	GetProvider(ctx context.Context, model, providerName string) (llm.Provider, error)
}

// WishService asks an LLM for a wish and degrades to canned text on any failure
type WishService struct {
	providers    ProviderSource
	model        string
	providerName string
	builder      *prompt.Builder
	labels       models.Labels
	langfuse     *observability.LangfuseClient
	metrics      metrics.Recorder
}

// WishServiceOption configures optional collaborators
type WishServiceOption func(*WishService)

// WithLangfuse traces generations in Langfuse
func WithLangfuse(client *observability.LangfuseClient) WishServiceOption {
	return func(s *WishService) {
		if client != nil {
			s.langfuse = client
		}
	}
}

// WithMetrics records generation metrics
func WithMetrics(recorder metrics.Recorder) WishServiceOption {
	return func(s *WishService) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// WithProviderName pins a provider instead of inferring it from the model
func WithProviderName(name string) WishServiceOption {
	return func(s *WishService) {
		s.providerName = name
	}
}

// NewWishService creates a wish service. providers may be nil, in which case
// every wish is a fallback.
func NewWishService(
	providers ProviderSource,
	model string,
	builder *prompt.Builder,
	labels models.Labels,
	opts ...WishServiceOption,
) *WishService {
	s := &WishService{
		providers: providers,
		model:     model,
		builder:   builder,
		labels:    labels,
		langfuse:  observability.Disabled(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate returns wish text for the selection. It never fails: any problem
// reaching the provider is logged and mapped to fallback text.
func (s *WishService) Generate(ctx context.Context, sel models.WishSelection) Wish {
	startTime := time.Now()

	text, resp, err := s.generate(ctx, sel)
	duration := time.Since(startTime)

	fields := logger.Fields{
		"occasion":    string(sel.Occasion),
		"model":       s.model,
		"duration_ms": duration.Milliseconds(),
	}

	if err != nil {
		wish := Wish{Text: s.Fallback(sel, err), Source: SourceFallback}
		switch {
		case errors.Is(err, llm.ErrProviderNotConfigured):
			logger.Debug("No LLM provider configured, using fallback wish", fields)
		case errors.Is(err, llm.ErrEmptyOutput):
			logger.Warn("LLM returned empty wish, using fallback", fields)
		default:
			logger.Error("Wish generation failed, using fallback", err, fields)
		}
		s.record(ctx, "", wish.Source, llm.TokenUsage{}, duration, false)
		return wish
	}

	logger.LogGenerationRequest(ctx, resp.Model, duration, resp.Usage.AsMap(), logger.Fields{
		"occasion": string(sel.Occasion),
	})
	s.record(ctx, resp.Model, SourceAI, resp.Usage, duration, true)
	return Wish{Text: text, Source: SourceAI, Model: resp.Model}
}

func (s *WishService) generate(ctx context.Context, sel models.WishSelection) (string, *llm.GenerationResponse, error) {
	if s.providers == nil {
		return "", nil, llm.ErrProviderNotConfigured
	}

	transaction := sentry.StartTransaction(ctx, "wish.generate")
	defer transaction.Finish()
	transaction.SetTag("occasion", string(sel.Occasion))
	ctx = transaction.Context()

	provider, err := s.providers.GetProvider(ctx, s.model, s.providerName)
	if err != nil {
		transaction.Status = sentry.SpanStatusUnavailable
		return "", nil, err
	}
	transaction.SetTag("provider", provider.Name())

	systemPrompt, err := s.builder.SystemPrompt()
	if err != nil {
		return "", nil, err
	}
	userPrompt, err := s.builder.BuildWishPrompt(sel)
	if err != nil {
		return "", nil, err
	}
	input := llm.UserMessage(userPrompt)

	trace := s.langfuse.StartTrace(ctx, "wish", map[string]interface{}{
		"occasion": string(sel.Occasion),
		"provider": provider.Name(),
	})
	defer trace.Finish()
	generation := trace.Generation("wish-text", map[string]interface{}{"model": s.model})
	defer generation.Finish()

	resp, err := provider.Generate(ctx, &llm.GenerationRequest{
		Model:        s.model,
		InputArray:   input,
		SystemPrompt: systemPrompt,
	})
	if err != nil {
		transaction.Status = sentry.SpanStatusInternalError
		generation.SetLevel("ERROR")
		return "", nil, fmt.Errorf("%s generate: %w", provider.Name(), err)
	}
	generation.LogResponse(s.model, input, resp, map[string]interface{}{"provider": provider.Name()})

	text := strings.TrimSpace(resp.RawOutput)
	if text == "" {
		transaction.Status = sentry.SpanStatusInternalError
		return "", nil, llm.ErrEmptyOutput
	}
	transaction.Status = sentry.SpanStatusOK
	return text, resp, nil
}

func (s *WishService) record(ctx context.Context, model, source string, usage llm.TokenUsage, d time.Duration, ok bool) {
	if s.metrics != nil {
		s.metrics.RecordWishGeneration(ctx, model, source, usage, d, ok)
	}
}

// Fallback returns the canned wish for a failure. The text always names the
// sender, the recipient and the occasion.
func (s *WishService) Fallback(sel models.WishSelection, cause error) string {
	label := s.labels.DisplayLabel(sel.Occasion)
	switch {
	case errors.Is(cause, llm.ErrProviderNotConfigured):
		return fmt.Sprintf("Happy %s %s! Make it epic! - %s", label, sel.Recipient, sel.Sender)
	case errors.Is(cause, llm.ErrEmptyOutput):
		return fmt.Sprintf("Happy %s %s! (AI took a nap, but I didn't!) - %s", label, sel.Recipient, sel.Sender)
	default:
		return fmt.Sprintf("Happy %s %s! Let's party! - %s", label, sel.Recipient, sel.Sender)
	}
}
