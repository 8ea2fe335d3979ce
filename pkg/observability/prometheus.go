package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusSink counts events in a process-local Prometheus registry,
// for the local server where CloudWatch is not reachable.
type PrometheusSink struct {
	counters *prometheus.CounterVec
}

// NewPrometheusSink registers the event counter with reg
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	counters := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "todo_api",
		Name:      "events_total",
		Help:      "Application events by metric name.",
	}, []string{"metric"})

	if err := reg.Register(counters); err != nil {
		return nil, fmt.Errorf("failed to register prometheus counters: %w", err)
	}

	return &PrometheusSink{counters: counters}, nil
}

// EmitCount adds value to the counter labelled with name
func (p *PrometheusSink) EmitCount(_ context.Context, name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("counter %s cannot decrease by %v", name, value)
	}
	p.counters.WithLabelValues(name).Add(value)
	return nil
}
