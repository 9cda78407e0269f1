package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Conceptual-Machines/sendawish-api/internal/llm"
	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// Recorder receives the service's custom metrics
type Recorder interface {
	RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration)
	RecordWishGeneration(ctx context.Context, model, source string, usage llm.TokenUsage, duration time.Duration, success bool)
	RecordSoundRender(ctx context.Context, effect string, duration time.Duration, size int, err error)
}

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Always enabled if Sentry is configured
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordWishGeneration records one wish text request, AI or fallback
func (m *SentryMetrics) RecordWishGeneration(
	ctx context.Context, model, source string, usage llm.TokenUsage, duration time.Duration, success bool,
) {
	if !m.enabled {
		return
	}

	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("wish.source", source)
		transaction.SetTag("wish.model", model)
	}

	span := sentry.StartSpan(ctx, "wish.generate")
	defer span.Finish()

	span.SetTag("model", model)
	span.SetTag("source", source)
	span.SetTag("success", fmt.Sprintf("%t", success))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("total_tokens", usage.TotalTokens)
	span.SetData("input_tokens", usage.InputTokens)
	span.SetData("output_tokens", usage.OutputTokens)

	if success {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}
	span.Description = fmt.Sprintf("Wish Generation: %s", source)
}

// RecordSoundRender records the offline render of a sound effect
func (m *SentryMetrics) RecordSoundRender(ctx context.Context, effect string, duration time.Duration, size int, err error) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "sound.render")
	defer span.Finish()

	span.SetTag("effect", effect)
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("bytes", size)

	if err != nil {
		span.Status = sentry.SpanStatusInternalError
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Description = fmt.Sprintf("Sound Render: %s", effect)
}

// Multi fans every metric out to several recorders
type Multi []Recorder

func (m Multi) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	for _, r := range m {
		r.RecordAPIRequest(ctx, endpoint, statusCode, duration)
	}
}

func (m Multi) RecordWishGeneration(
	ctx context.Context, model, source string, usage llm.TokenUsage, duration time.Duration, success bool,
) {
	for _, r := range m {
		r.RecordWishGeneration(ctx, model, source, usage, duration, success)
	}
}

func (m Multi) RecordSoundRender(ctx context.Context, effect string, duration time.Duration, size int, err error) {
	for _, r := range m {
		r.RecordSoundRender(ctx, effect, duration, size, err)
	}
}
