package di

import (
	"todo-api/application/ports"
	"todo-api/infrastructure/config"
	"todo-api/interfaces/http/rest/handlers"
	"todo-api/pkg/observability"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	Store       ports.TodoStore
	Metrics     ports.MetricsSink
	Registry    *prometheus.Registry // nil unless METRICS_BACKEND=prometheus
	Tracer      *observability.Tracer
	TodoHandler *handlers.TodoHandler
}
