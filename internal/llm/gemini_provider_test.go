package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiProvider_Name(t *testing.T) {
	// We can't create a real client without an API key
	provider := &GeminiProvider{client: nil}
	assert.Equal(t, "gemini", provider.Name())
}

func TestGeminiProvider_BuildContents(t *testing.T) {
	provider := &GeminiProvider{client: nil}

	tests := []struct {
		name       string
		inputArray []map[string]any
		wantLen    int
	}{
		{
			name: "single user message",
			inputArray: []map[string]any{
				{"role": "user", "content": "test content"},
			},
			wantLen: 1,
		},
		{
			name: "developer role converted to user",
			inputArray: []map[string]any{
				{"role": "developer", "content": "system message"},
			},
			wantLen: 1,
		},
		{
			name: "invalid message skipped",
			inputArray: []map[string]any{
				{"role": "user", "content": "valid"},
				{"role": "user"}, // missing content
			},
			wantLen: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contents := provider.buildGeminiContents(tt.inputArray)
			assert.Len(t, contents, tt.wantLen)

			for _, content := range contents {
				assert.Equal(t, "user", content.Role)
				assert.NotEmpty(t, content.Parts)
			}
		})
	}
}

func TestExtractGeminiText(t *testing.T) {
	assert.Empty(t, extractGeminiText(nil))
	assert.Empty(t, extractGeminiText(&genai.GenerateContentResponse{}))
	assert.Empty(t, extractGeminiText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: nil}},
	}))

	result := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "  Happy birthday "},
				{Text: "you legend 🎂  "},
			}},
		}},
	}
	assert.Equal(t, "Happy birthday you legend 🎂", extractGeminiText(result))
}

func TestGeminiProvider_GenerateWithoutInput(t *testing.T) {
	provider := &GeminiProvider{client: nil}
	_, err := provider.Generate(context.Background(), &GenerationRequest{Model: "gemini-2.5-flash"})
	require.Error(t, err)
}

func TestNewGeminiProvider_InvalidKey(t *testing.T) {
	ctx := context.Background()
	provider, err := NewGeminiProvider(ctx, "invalid-key")

	// Client creation does not contact the API, so this may succeed
	if err != nil {
		assert.Error(t, err)
	} else {
		assert.NotNil(t, provider)
		assert.Equal(t, "gemini", provider.Name())
	}
}
