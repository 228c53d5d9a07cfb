package metrics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"lunara/internal/types"
)

// mockCloudWatchClient records PutMetricData calls for verification.
type mockCloudWatchClient struct {
	calls     []*cloudwatch.PutMetricDataInput
	returnErr error
}

func (m *mockCloudWatchClient) PutMetricData(_ context.Context, params *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	m.calls = append(m.calls, params)
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func newTestPublisher(cw CloudWatchClient) *Publisher {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewPublisher(cw, "", logger)
}

func assertDimension(t *testing.T, dims []cwtypes.Dimension, name, value string) {
	t.Helper()
	for _, d := range dims {
		if *d.Name == name {
			if *d.Value != value {
				t.Errorf("dimension %s: expected %q, got %q", name, value, *d.Value)
			}
			return
		}
	}
	t.Errorf("dimension %s not found", name)
}

func TestRecordRequest(t *testing.T) {
	cw := &mockCloudWatchClient{}
	pub := newTestPublisher(cw)

	pub.RecordRequest("GET", "/v1/users/u1/health-score", "200", 42*time.Millisecond)

	if len(cw.calls) != 1 {
		t.Fatalf("expected 1 PutMetricData call, got %d", len(cw.calls))
	}

	input := cw.calls[0]
	if *input.Namespace != types.MetricNamespace {
		t.Errorf("expected namespace %q, got %q", types.MetricNamespace, *input.Namespace)
	}
	if len(input.MetricData) != 2 {
		t.Fatalf("expected 2 metric data, got %d", len(input.MetricData))
	}

	count := input.MetricData[0]
	if *count.MetricName != types.MetricAPIRequestCount {
		t.Errorf("expected %s, got %s", types.MetricAPIRequestCount, *count.MetricName)
	}
	if *count.Value != 1.0 {
		t.Errorf("expected value 1.0, got %f", *count.Value)
	}
	if count.Unit != cwtypes.StandardUnitCount {
		t.Errorf("expected unit Count, got %s", count.Unit)
	}
	assertDimension(t, count.Dimensions, types.DimEndpoint, "/v1/users/u1/health-score")
	assertDimension(t, count.Dimensions, types.DimMethod, "GET")
	assertDimension(t, count.Dimensions, types.DimStatus, "200")

	latency := input.MetricData[1]
	if *latency.MetricName != types.MetricAPILatency {
		t.Errorf("expected %s, got %s", types.MetricAPILatency, *latency.MetricName)
	}
	if *latency.Value != 42.0 {
		t.Errorf("expected 42ms, got %f", *latency.Value)
	}
	if latency.Unit != cwtypes.StandardUnitMilliseconds {
		t.Errorf("expected unit Milliseconds, got %s", latency.Unit)
	}
}

func TestRecordEngineInvocation(t *testing.T) {
	cw := &mockCloudWatchClient{}
	pub := newTestPublisher(cw)

	pub.RecordEngineInvocation("prediction", "success", 5*time.Millisecond)

	if len(cw.calls) != 1 {
		t.Fatalf("expected 1 PutMetricData call, got %d", len(cw.calls))
	}

	input := cw.calls[0]
	if len(input.MetricData) != 2 {
		t.Fatalf("expected 2 metric data, got %d", len(input.MetricData))
	}

	invocation := input.MetricData[0]
	if *invocation.MetricName != types.MetricEngineInvocation {
		t.Errorf("expected %s, got %s", types.MetricEngineInvocation, *invocation.MetricName)
	}
	assertDimension(t, invocation.Dimensions, types.DimEntryPoint, "prediction")
	assertDimension(t, invocation.Dimensions, types.DimResult, "success")

	latency := input.MetricData[1]
	if *latency.MetricName != types.MetricEngineLatency {
		t.Errorf("expected %s, got %s", types.MetricEngineLatency, *latency.MetricName)
	}
	assertDimension(t, latency.Dimensions, types.DimEntryPoint, "prediction")
}

func TestPublishFailureIsNonFatal(t *testing.T) {
	cw := &mockCloudWatchClient{returnErr: errors.New("throttled")}
	pub := newTestPublisher(cw)

	// Must not panic or surface the error.
	pub.RecordRequest("GET", "/health", "200", time.Millisecond)
	pub.RecordEngineInvocation("alerts", "error", time.Millisecond)

	if len(cw.calls) != 2 {
		t.Errorf("expected 2 attempted calls, got %d", len(cw.calls))
	}
}
