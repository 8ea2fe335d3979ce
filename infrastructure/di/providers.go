package di

import (
	"context"
	"fmt"

	"todo-api/application/ports"
	"todo-api/infrastructure/config"
	"todo-api/infrastructure/persistence/dynamodb"
	"todo-api/infrastructure/persistence/memory"
	"todo-api/interfaces/http/rest/handlers"
	"todo-api/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "todo-api"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("service", serviceName)), nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.EnableTracing {
		observability.InstrumentAWS(&awsCfg)
	}

	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideTodoStore selects the store backend
func ProvideTodoStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) (ports.TodoStore, error) {
	switch cfg.StoreBackend {
	case config.StoreDynamoDB:
		return dynamodb.NewTodoStore(client, cfg.DynamoDBTable, logger), nil
	case config.StoreMemory:
		logger.Warn("Using in-memory store; data is lost on restart")
		return memory.NewTodoStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// ProvidePrometheusRegistry creates a registry when the prometheus backend is selected
func ProvidePrometheusRegistry(cfg *config.Config) *prometheus.Registry {
	if cfg.MetricsBackend != config.MetricsPrometheus {
		return nil
	}
	return prometheus.NewRegistry()
}

// ProvideMetricsSink selects the metrics backend and puts it behind a circuit breaker
func ProvideMetricsSink(
	client *awscloudwatch.Client,
	registry *prometheus.Registry,
	cfg *config.Config,
	logger *zap.Logger,
) (ports.MetricsSink, error) {
	var sink ports.MetricsSink
	switch cfg.MetricsBackend {
	case config.MetricsCloudWatch:
		sink = observability.NewCloudWatchSink(cfg.MetricsNamespace, client)
	case config.MetricsPrometheus:
		promSink, err := observability.NewPrometheusSink(registry)
		if err != nil {
			return nil, err
		}
		sink = promSink
	case config.MetricsNone:
		return observability.NopSink{}, nil
	default:
		return nil, fmt.Errorf("unknown metrics backend %q", cfg.MetricsBackend)
	}

	breakerCfg := observability.DefaultBreakerConfig("metrics-" + cfg.MetricsBackend)
	return observability.NewBreakerSink(sink, breakerCfg, logger), nil
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(serviceName, cfg.EnableTracing)
}

// ProvideTodoHandler creates the request dispatcher
func ProvideTodoHandler(
	store ports.TodoStore,
	metrics ports.MetricsSink,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *handlers.TodoHandler {
	return handlers.NewTodoHandler(store, metrics, logger, handlers.WithTracer(tracer))
}
