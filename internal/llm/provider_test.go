package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockProvider is a test implementation of the Provider interface
type MockProvider struct {
	name         string
	generateFunc func(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, request)
	}
	return &GenerationResponse{}, nil
}

func TestMockProviderGenerate(t *testing.T) {
	callCount := 0
	var provider Provider = &MockProvider{
		name: "test",
		generateFunc: func(_ context.Context, request *GenerationRequest) (*GenerationResponse, error) {
			callCount++
			require.Equal(t, "test-model", request.Model)
			return &GenerationResponse{RawOutput: "hello", Usage: TokenUsage{TotalTokens: 3}}, nil
		},
	}

	resp, err := provider.Generate(context.Background(), &GenerationRequest{Model: "test-model"})
	require.NoError(t, err)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, "hello", resp.RawOutput)
	assert.Equal(t, "test", provider.Name())
}

func TestTokenUsageAsMap(t *testing.T) {
	usage := TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}
	m := usage.AsMap()
	assert.Equal(t, int64(10), m["input_tokens"])
	assert.Equal(t, int64(5), m["output_tokens"])
	assert.Equal(t, int64(15), m["total_tokens"])
}

func TestUserMessage(t *testing.T) {
	input := UserMessage("write something")
	require.Len(t, input, 1)
	assert.Equal(t, "user", input[0]["role"])
	assert.Equal(t, "write something", input[0]["content"])
}

func TestProviderFactory(t *testing.T) {
	ctx := context.Background()

	t.Run("no keys", func(t *testing.T) {
		f := NewProviderFactory("", "")
		assert.False(t, f.Configured())

		_, err := f.GetProvider(ctx, "gemini-2.5-flash", "")
		assert.True(t, errors.Is(err, ErrProviderNotConfigured))

		_, err = f.GetProvider(ctx, "gpt-5-mini", "")
		assert.ErrorIs(t, err, ErrProviderNotConfigured)

		_, err = f.GetProvider(ctx, "", "")
		assert.ErrorIs(t, err, ErrProviderNotConfigured)
	})

	t.Run("openai by model", func(t *testing.T) {
		f := NewProviderFactory("sk-test", "")
		p, err := f.GetProvider(ctx, "gpt-5-mini", "")
		require.NoError(t, err)
		assert.Equal(t, "openai", p.Name())

		_, err = f.GetProvider(ctx, "gemini-2.5-flash", "")
		assert.ErrorIs(t, err, ErrProviderNotConfigured)
	})

	t.Run("explicit provider", func(t *testing.T) {
		f := NewProviderFactory("sk-test", "")
		p, err := f.GetProvider(ctx, "anything", "OpenAI")
		require.NoError(t, err)
		assert.Equal(t, "openai", p.Name())

		_, err = f.GetProvider(ctx, "", "claude")
		assert.Error(t, err)
	})

	t.Run("unknown model falls back to configured provider", func(t *testing.T) {
		f := NewProviderFactory("sk-test", "")
		p, err := f.GetProvider(ctx, "mystery-model", "")
		require.NoError(t, err)
		assert.Equal(t, "openai", p.Name())
	})

	t.Run("status", func(t *testing.T) {
		f := NewProviderFactory("", "gm-key")
		assert.True(t, f.Configured())
		assert.Equal(t, map[string]bool{"openai": false, "gemini": true}, f.Status())
	})
}
