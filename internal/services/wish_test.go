package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Conceptual-Machines/sendawish-api/internal/llm"
	"github.com/Conceptual-Machines/sendawish-api/internal/models"
	"github.com/Conceptual-Machines/sendawish-api/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	output   string
	err      error
	requests []*llm.GenerationRequest
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Generate(_ context.Context, req *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	return &llm.GenerationResponse{
		RawOutput: p.output,
		Model:     req.Model,
		Usage:     llm.TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	}, nil
}

type stubSource struct {
	provider llm.Provider
	err      error
}

func (s stubSource) GetProvider(context.Context, string, string) (llm.Provider, error) {
	return s.provider, s.err
}

type wishRecord struct {
	source  string
	success bool
}

type recorder struct {
	wishes []wishRecord
}

func (r *recorder) RecordAPIRequest(context.Context, string, int, time.Duration) {}
func (r *recorder) RecordSoundRender(context.Context, string, time.Duration, int, error) {}
func (r *recorder) RecordWishGeneration(_ context.Context, _, source string, _ llm.TokenUsage, _ time.Duration, ok bool) {
	r.wishes = append(r.wishes, wishRecord{source: source, success: ok})
}

var birthday = models.WishSelection{
	Sender:    "Ana",
	Recipient: "Ben",
	Occasion:  models.OccasionBirthday,
	Years:     30,
}

func newService(t *testing.T, source ProviderSource, opts ...WishServiceOption) *WishService {
	t.Helper()
	builder, err := prompt.NewPromptBuilder(nil, 0)
	require.NoError(t, err)
	return NewWishService(source, "gemini-2.5-flash", builder, nil, opts...)
}

func TestGenerateReturnsProviderText(t *testing.T) {
	provider := &stubProvider{output: "  Ben, 30 already? Your knees filed a complaint. - Ana \n"}
	rec := &recorder{}
	svc := newService(t, stubSource{provider: provider}, WithMetrics(rec))

	wish := svc.Generate(context.Background(), birthday)

	assert.Equal(t, SourceAI, wish.Source)
	assert.Equal(t, "Ben, 30 already? Your knees filed a complaint. - Ana", wish.Text)
	assert.Equal(t, "gemini-2.5-flash", wish.Model)

	require.Len(t, provider.requests, 1)
	req := provider.requests[0]
	assert.Equal(t, "gemini-2.5-flash", req.Model)
	assert.NotEmpty(t, req.SystemPrompt)
	require.Len(t, req.InputArray, 1)
	content, _ := req.InputArray[0]["content"].(string)
	assert.Contains(t, content, "Ana")
	assert.Contains(t, content, "Ben")
	assert.Contains(t, content, "30")

	assert.Equal(t, []wishRecord{{source: SourceAI, success: true}}, rec.wishes)
}

func TestGenerateFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		source ProviderSource
		want   string
	}{
		{
			name:   "no provider source",
			source: nil,
			want:   "Happy Birthday 🎂 Ben! Make it epic! - Ana",
		},
		{
			name:   "provider not configured",
			source: stubSource{err: llm.ErrProviderNotConfigured},
			want:   "Happy Birthday 🎂 Ben! Make it epic! - Ana",
		},
		{
			name:   "provider error",
			source: stubSource{provider: &stubProvider{err: errors.New("quota exceeded")}},
			want:   "Happy Birthday 🎂 Ben! Let's party! - Ana",
		},
		{
			name:   "blank output",
			source: stubSource{provider: &stubProvider{output: "   "}},
			want:   "Happy Birthday 🎂 Ben! (AI took a nap, but I didn't!) - Ana",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			svc := newService(t, tt.source, WithMetrics(rec))

			wish := svc.Generate(context.Background(), birthday)

			assert.Equal(t, SourceFallback, wish.Source)
			assert.Equal(t, tt.want, wish.Text)
			assert.Empty(t, wish.Model)
			assert.Equal(t, []wishRecord{{source: SourceFallback, success: false}}, rec.wishes)
		})
	}
}

func TestFallbackUsesLabelOverrides(t *testing.T) {
	builder, err := prompt.NewPromptBuilder(nil, 0)
	require.NoError(t, err)
	labels := models.Labels{models.OccasionRetirement: "Freedom Day"}
	svc := NewWishService(nil, "", builder, labels)

	sel := models.WishSelection{Sender: "Team", Recipient: "Gus", Occasion: models.OccasionRetirement}
	text := svc.Generate(context.Background(), sel).Text

	assert.Equal(t, "Happy Freedom Day "+models.OccasionRetirement.Emoji()+" Gus! Make it epic! - Team", text)
}

func TestGenerateDoesNotRetry(t *testing.T) {
	provider := &stubProvider{err: errors.New("boom")}
	svc := newService(t, stubSource{provider: provider})

	svc.Generate(context.Background(), birthday)

	assert.Len(t, provider.requests, 1)
}
