package observability

import (
	"context"
	"testing"

	"github.com/Conceptual-Machines/sendawish-api/internal/config"
	"github.com/Conceptual-Machines/sendawish-api/internal/llm"
	"github.com/stretchr/testify/assert"
)

func TestCalculateCost(t *testing.T) {
	usage := llm.TokenUsage{InputTokens: 1000, OutputTokens: 1000, TotalTokens: 2000}

	assert.InDelta(t, 0.0028, CalculateCost("gemini-2.5-flash", usage), 1e-12)
	assert.InDelta(t, 0.00225, CalculateCost("gpt-5-mini", usage), 1e-12)
	assert.InDelta(t, CalculateCost("gemini-2.5-flash", usage), CalculateCost("unknown-model", usage), 1e-12)
	assert.Zero(t, CalculateCost("gemini-2.5-flash", llm.TokenUsage{}))
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.002800", FormatCost(0.0028))
}

func TestDisabledClientIsNoop(t *testing.T) {
	client := InitializeLangfuse(context.Background(), &config.Config{LangfuseEnabled: false})
	assert.False(t, client.IsEnabled())

	trace := client.StartTrace(context.Background(), "wish", nil)
	gen := trace.Generation("wish-text", nil)

	assert.NotPanics(t, func() {
		gen.LogResponse("gemini-2.5-flash", llm.UserMessage("hi"), &llm.GenerationResponse{RawOutput: "yo"}, nil)
		gen.SetLevel("ERROR")
		gen.Finish()
		trace.Finish()
	})

	assert.False(t, Disabled().IsEnabled())
}
