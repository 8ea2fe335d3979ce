package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// MetricTodoCreated is emitted once per successful create
const MetricTodoCreated = "TodoCreatedCount"

// CloudWatchClient is the subset of *cloudwatch.Client used for metrics
type CloudWatchClient interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// CloudWatchSink publishes counters as CloudWatch custom metrics
type CloudWatchSink struct {
	namespace string
	client    CloudWatchClient
	now       func() time.Time
}

// NewCloudWatchSink creates a new CloudWatch metrics sink
func NewCloudWatchSink(namespace string, client CloudWatchClient) *CloudWatchSink {
	return &CloudWatchSink{
		namespace: namespace,
		client:    client,
		now:       time.Now,
	}
}

// EmitCount records a Count datum under the sink's namespace
func (m *CloudWatchSink) EmitCount(ctx context.Context, name string, value float64) error {
	if m.client == nil {
		return nil // Skip if no client configured
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(name),
				Value:      aws.Float64(value),
				Unit:       types.StandardUnitCount,
				Timestamp:  aws.Time(m.now()),
			},
		},
	}

	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		return fmt.Errorf("failed to put metric %s: %w", name, err)
	}
	return nil
}

// NopSink discards every metric
type NopSink struct{}

// EmitCount does nothing
func (NopSink) EmitCount(context.Context, string, float64) error { return nil }
