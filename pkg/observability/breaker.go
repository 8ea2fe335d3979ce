package observability

import (
	"context"
	"time"

	"todo-api/application/ports"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerConfig holds configuration for the metrics circuit breaker
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns the configuration used for metric sinks
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      1,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.5,
		MinRequests:      5,
	}
}

// BreakerSink stops calling a failing sink until the breaker half-opens.
// While open, EmitCount returns gobreaker.ErrOpenState without any I/O.
type BreakerSink struct {
	next ports.MetricsSink
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerSink wraps next with a circuit breaker
func NewBreakerSink(next ports.MetricsSink, config BreakerConfig, logger *zap.Logger) *BreakerSink {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Metrics circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &BreakerSink{next: next, cb: cb}
}

// EmitCount forwards to the wrapped sink through the breaker
func (b *BreakerSink) EmitCount(ctx context.Context, name string, value float64) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.next.EmitCount(ctx, name, value)
	})
	return err
}

// State exposes the breaker state
func (b *BreakerSink) State() gobreaker.State {
	return b.cb.State()
}
