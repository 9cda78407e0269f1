package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Conceptual-Machines/sendawish-api/internal/llm"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	namespace                = "SENDAWISH/API"
	httpStatusServerError    = 500
	cloudwatchTimeoutSeconds = 5
)

// metricPutter is the part of the CloudWatch client we use
type metricPutter interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Client wraps CloudWatch client for custom metrics
type Client struct {
	client      metricPutter
	enabled     bool
	environment string
	pending     sync.WaitGroup
}

// NewClient creates a new CloudWatch metrics client
func NewClient(ctx context.Context, environment string, enabled bool) (*Client, error) {
	// Only enable in production
	if !enabled || environment != "production" {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &Client{
			enabled:     false,
			environment: environment,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &Client{enabled: false, environment: environment}, nil
	}

	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)
	return newClientWith(cloudwatch.NewFromConfig(cfg), environment), nil
}

func newClientWith(putter metricPutter, environment string) *Client {
	return &Client{
		client:      putter,
		enabled:     true,
		environment: environment,
	}
}

// Wait blocks until every metric put in flight has finished
func (m *Client) Wait() {
	m.pending.Wait()
}

func (m *Client) async(fn func(ctx context.Context)) {
	m.pending.Add(1)
	go func() {
		defer m.pending.Done()
		fn(context.Background())
	}()
}

func (m *Client) envDimension() types.Dimension {
	return types.Dimension{
		Name:  aws.String("Environment"),
		Value: aws.String(m.environment),
	}
}

// RecordAPIRequest records an API request metric
func (m *Client) RecordAPIRequest(_ context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	m.async(func(ctx context.Context) {
		metricName := "APIRequests"
		if statusCode >= httpStatusServerError {
			metricName = "APIErrors"
		}

		dimensions := []types.Dimension{
			{
				Name:  aws.String("Endpoint"),
				Value: aws.String(endpoint),
			},
			m.envDimension(),
		}

		if err := m.putMetric(ctx, metricName, 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record %s metric: %v", metricName, err)
		}

		latencyMs := float64(duration.Milliseconds())
		if err := m.putMetric(ctx, "APILatency", latencyMs, types.StandardUnitMilliseconds, dimensions); err != nil {
			log.Printf("Failed to record APILatency metric: %v", err)
		}
	})
}

// RecordWishGeneration records the source, latency and tokens of a wish
func (m *Client) RecordWishGeneration(
	_ context.Context, model, source string, usage llm.TokenUsage, duration time.Duration, success bool,
) {
	if !m.enabled {
		return
	}

	m.async(func(ctx context.Context) {
		dimensions := []types.Dimension{
			{
				Name:  aws.String("Source"),
				Value: aws.String(source),
			},
			{
				Name:  aws.String("Success"),
				Value: aws.String(boolToString(success)),
			},
			m.envDimension(),
		}

		if err := m.putMetric(ctx, "WishGenerations", 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record WishGenerations metric: %v", err)
		}

		durationMs := float64(duration.Milliseconds())
		if err := m.putMetric(ctx, "WishDuration", durationMs, types.StandardUnitMilliseconds, dimensions); err != nil {
			log.Printf("Failed to record WishDuration metric: %v", err)
		}

		if usage.TotalTokens > 0 {
			modelDims := []types.Dimension{
				{
					Name:  aws.String("Model"),
					Value: aws.String(model),
				},
				m.envDimension(),
			}
			if err := m.putMetric(ctx, "WishTokens/Total", float64(usage.TotalTokens), types.StandardUnitCount, modelDims); err != nil {
				log.Printf("Failed to record WishTokens/Total metric: %v", err)
			}
		}
	})
}

// RecordSoundRender records how long an effect took to render
func (m *Client) RecordSoundRender(_ context.Context, effect string, duration time.Duration, _ int, err error) {
	if !m.enabled {
		return
	}

	m.async(func(ctx context.Context) {
		dimensions := []types.Dimension{
			{
				Name:  aws.String("Effect"),
				Value: aws.String(effect),
			},
			{
				Name:  aws.String("Success"),
				Value: aws.String(boolToString(err == nil)),
			},
			m.envDimension(),
		}

		durationMs := float64(duration.Milliseconds())
		if putErr := m.putMetric(ctx, "SoundRenderDuration", durationMs, types.StandardUnitMilliseconds, dimensions); putErr != nil {
			log.Printf("Failed to record SoundRenderDuration metric: %v", putErr)
		}
	})
}

// putMetric sends a metric to CloudWatch
func (m *Client) putMetric(
	ctx context.Context,
	metricName string,
	value float64,
	unit types.StandardUnit,
	dimensions []types.Dimension,
) error {
	if !m.enabled || m.client == nil {
		return nil
	}

	timeout := time.Duration(cloudwatchTimeoutSeconds) * time.Second
	cwCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := m.client.PutMetricData(cwCtx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dimensions,
			},
		},
	})

	return err
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
