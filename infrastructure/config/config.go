package config

import (
	"fmt"
	"os"
	"strconv"
)

// Store backends
const (
	StoreDynamoDB = "dynamodb"
	StoreMemory   = "memory"
)

// Metrics backends
const (
	MetricsCloudWatch = "cloudwatch"
	MetricsPrometheus = "prometheus"
	MetricsNone       = "none"
)

// Lambda event payload versions
const (
	PayloadV1 = "1.0"
	PayloadV2 = "2.0"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion        string
	DynamoDBTable    string
	DynamoDBEndpoint string

	// Backends
	StoreBackend     string
	MetricsBackend   string
	MetricsNamespace string

	// Lambda configuration
	LambdaPayloadVersion string
	LambdaFunctionName   string

	// Logging
	LogLevel string

	// Feature flags
	EnableTracing bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress:    getEnv("SERVER_ADDRESS", ":8080"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		DynamoDBTable:    getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", "")),
		DynamoDBEndpoint: getEnv("DYNAMODB_ENDPOINT", ""),

		StoreBackend:     getEnv("STORE_BACKEND", StoreDynamoDB),
		MetricsBackend:   getEnv("METRICS_BACKEND", MetricsCloudWatch),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "TodoApp"),

		// Lambda configuration
		LambdaPayloadVersion: getEnv("LAMBDA_PAYLOAD_VERSION", PayloadV1),
		LambdaFunctionName:   getEnv("AWS_LAMBDA_FUNCTION_NAME", ""),

		// Logging and features
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableTracing: getEnvBool("ENABLE_TRACING", false),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreDynamoDB:
		if c.DynamoDBTable == "" {
			return fmt.Errorf("TABLE_NAME is required")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.MetricsBackend {
	case MetricsCloudWatch:
		if c.MetricsNamespace == "" {
			return fmt.Errorf("METRICS_NAMESPACE is required for the cloudwatch backend")
		}
	case MetricsPrometheus, MetricsNone:
	default:
		return fmt.Errorf("unknown METRICS_BACKEND %q", c.MetricsBackend)
	}

	switch c.LambdaPayloadVersion {
	case PayloadV1, PayloadV2:
	default:
		return fmt.Errorf("unknown LAMBDA_PAYLOAD_VERSION %q", c.LambdaPayloadVersion)
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsLambda reports whether the process runs inside AWS Lambda
func (c *Config) IsLambda() bool {
	return c.LambdaFunctionName != ""
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return value == "yes"
	}
	return b
}
