package metrics

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Conceptual-Machines/sendawish-api/internal/llm"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	mu    sync.Mutex
	names []string
	err   error
}

func (f *fakePutter) PutMetricData(
	_ context.Context, params *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options),
) (*cloudwatch.PutMetricDataOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if aws.ToString(params.Namespace) != namespace {
		return nil, errors.New("wrong namespace")
	}
	for _, d := range params.MetricData {
		f.names = append(f.names, aws.ToString(d.MetricName))
	}
	return &cloudwatch.PutMetricDataOutput{}, f.err
}

func (f *fakePutter) sorted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string(nil), f.names...)
	sort.Strings(out)
	return out
}

func TestCloudWatchDisabledOutsideProduction(t *testing.T) {
	c, err := NewClient(context.Background(), "development", true)
	require.NoError(t, err)
	assert.False(t, c.enabled)

	c, err = NewClient(context.Background(), "production", false)
	require.NoError(t, err)
	assert.False(t, c.enabled)

	assert.NotPanics(t, func() {
		c.RecordAPIRequest(context.Background(), "/health", 200, time.Millisecond)
		c.Wait()
	})
}

func TestCloudWatchRecordsMetrics(t *testing.T) {
	putter := &fakePutter{}
	c := newClientWith(putter, "production")
	ctx := context.Background()

	c.RecordAPIRequest(ctx, "/api/v1/wish", 200, 5*time.Millisecond)
	c.RecordAPIRequest(ctx, "/api/v1/wish", 503, 5*time.Millisecond)
	c.RecordWishGeneration(ctx, "gemini-2.5-flash", "ai", llm.TokenUsage{TotalTokens: 42}, time.Second, true)
	c.RecordSoundRender(ctx, "harp", 10*time.Millisecond, 1024, nil)
	c.Wait()

	assert.Equal(t, []string{
		"APIErrors",
		"APILatency",
		"APILatency",
		"APIRequests",
		"SoundRenderDuration",
		"WishDuration",
		"WishGenerations",
		"WishTokens/Total",
	}, putter.sorted())
}

func TestCloudWatchSkipsTokensForFallback(t *testing.T) {
	putter := &fakePutter{}
	c := newClientWith(putter, "production")

	c.RecordWishGeneration(context.Background(), "", "fallback", llm.TokenUsage{}, time.Millisecond, false)
	c.Wait()

	assert.Equal(t, []string{"WishDuration", "WishGenerations"}, putter.sorted())
}

type countingRecorder struct {
	api, wish, sound int
}

func (c *countingRecorder) RecordAPIRequest(context.Context, string, int, time.Duration) { c.api++ }
func (c *countingRecorder) RecordWishGeneration(context.Context, string, string, llm.TokenUsage, time.Duration, bool) {
	c.wish++
}
func (c *countingRecorder) RecordSoundRender(context.Context, string, time.Duration, int, error) {
	c.sound++
}

func TestMultiFansOut(t *testing.T) {
	a, b := &countingRecorder{}, &countingRecorder{}
	var r Recorder = Multi{a, b, NewSentryMetrics()}
	ctx := context.Background()

	r.RecordAPIRequest(ctx, "/", 200, time.Millisecond)
	r.RecordWishGeneration(ctx, "m", "ai", llm.TokenUsage{}, time.Millisecond, true)
	r.RecordSoundRender(ctx, "pop", time.Millisecond, 10, errors.New("boom"))

	for _, c := range []*countingRecorder{a, b} {
		assert.Equal(t, 1, c.api)
		assert.Equal(t, 1, c.wish)
		assert.Equal(t, 1, c.sound)
	}
}
