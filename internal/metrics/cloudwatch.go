// Package metrics publishes operational telemetry to AWS CloudWatch.
// Publishing is best-effort: failures are logged and never surface to the
// request path or the engine.
package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"lunara/internal/core"
	"lunara/internal/types"
)

// publishTimeout bounds a single PutMetricData call so a slow CloudWatch
// endpoint cannot hold up request handling.
const publishTimeout = 2 * time.Second

// CloudWatchClient abstracts the CloudWatch PutMetricData operation for
// testability.
type CloudWatchClient interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Compile-time assertion that Publisher satisfies the API middleware's
// collector contract.
var _ core.MetricsCollector = (*Publisher)(nil)

// Publisher emits Lunara metrics to CloudWatch.
//
// Metrics emitted:
//   - APIRequestCount: Dims {Endpoint, Method, Status} -- one per request
//   - APILatency:      Dims {Endpoint, Method}         -- request duration
//   - EngineInvocation: Dims {EntryPoint, Result}      -- one per engine run
//   - EngineLatency:    Dims {EntryPoint}              -- engine run duration
type Publisher struct {
	client    CloudWatchClient
	namespace string
	logger    *slog.Logger
}

// NewPublisher creates a Publisher for the given CloudWatch namespace.
func NewPublisher(client CloudWatchClient, namespace string, logger *slog.Logger) *Publisher {
	if namespace == "" {
		namespace = types.MetricNamespace
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}
}

// RecordRequest emits API request count and latency metrics.
func (p *Publisher) RecordRequest(method, endpoint, status string, duration time.Duration) {
	endpointDim := cwtypes.Dimension{
		Name:  aws.String(types.DimEndpoint),
		Value: aws.String(endpoint),
	}
	methodDim := cwtypes.Dimension{
		Name:  aws.String(types.DimMethod),
		Value: aws.String(method),
	}

	data := []cwtypes.MetricDatum{
		{
			MetricName: aws.String(types.MetricAPIRequestCount),
			Value:      aws.Float64(1),
			Unit:       cwtypes.StandardUnitCount,
			Dimensions: []cwtypes.Dimension{
				endpointDim,
				methodDim,
				{
					Name:  aws.String(types.DimStatus),
					Value: aws.String(status),
				},
			},
		},
		{
			MetricName: aws.String(types.MetricAPILatency),
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Unit:       cwtypes.StandardUnitMilliseconds,
			Dimensions: []cwtypes.Dimension{endpointDim, methodDim},
		},
	}

	p.publish(data, "endpoint", endpoint)
}

// RecordEngineInvocation emits engine invocation count and latency metrics
// for one analysis entry point (health_score, trends, insights, environment,
// prediction, alerts).
func (p *Publisher) RecordEngineInvocation(entryPoint, result string, duration time.Duration) {
	entryDim := cwtypes.Dimension{
		Name:  aws.String(types.DimEntryPoint),
		Value: aws.String(entryPoint),
	}

	data := []cwtypes.MetricDatum{
		{
			MetricName: aws.String(types.MetricEngineInvocation),
			Value:      aws.Float64(1),
			Unit:       cwtypes.StandardUnitCount,
			Dimensions: []cwtypes.Dimension{
				entryDim,
				{
					Name:  aws.String(types.DimResult),
					Value: aws.String(result),
				},
			},
		},
		{
			MetricName: aws.String(types.MetricEngineLatency),
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Unit:       cwtypes.StandardUnitMilliseconds,
			Dimensions: []cwtypes.Dimension{entryDim},
		},
	}

	p.publish(data, "entry_point", entryPoint)
}

func (p *Publisher) publish(data []cwtypes.MetricDatum, attrKey, attrValue string) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(p.namespace),
		MetricData: data,
	}

	if _, err := p.client.PutMetricData(ctx, input); err != nil {
		p.logger.Warn("failed to publish metrics",
			slog.String("error", err.Error()),
			slog.String(attrKey, attrValue),
		)
	}
}
