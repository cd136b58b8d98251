// pkg/engine/factory.go
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// ErrSpawnSuspended is returned while repeated engine failures hold the
// factory's circuit breaker open.
var ErrSpawnSuspended = errors.New("body creation suspended")

// Factory creates engine bodies through a circuit breaker so a failing
// engine is not hammered with a chunk's worth of requests every tick.
type Factory struct {
	writer  physics.BodyWriter
	breaker *gobreaker.CircuitBreaker
	logger  *logging.Logger
}

// NewFactory wraps writer with a breaker configured from cfg.
func NewFactory(writer physics.BodyWriter, cfg config.BreakerConfig, logger *logging.Logger) *Factory {
	maxFails := uint32(max(cfg.MaxConsecutiveFails, 1))
	settings := gobreaker.Settings{
		Name:        "body-factory",
		MaxRequests: uint32(max(cfg.MaxRequests, 1)),
		Interval:    cfg.Interval(),
		Timeout:     cfg.Timeout(),
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFails
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn(context.Background(), "circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &Factory{
		writer:  writer,
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// Create asks the engine for a new body. While the breaker is open it fails
// fast with ErrSpawnSuspended.
func (f *Factory) Create(ctx context.Context, spec physics.BodySpec) (physics.Handle, error) {
	result, err := f.breaker.Execute(func() (interface{}, error) {
		return f.writer.CreateBody(spec)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return 0, fmt.Errorf("%w: %w", ErrSpawnSuspended, err)
		}
		return 0, logging.WrapError(err, "engine create body")
	}
	return result.(physics.Handle), nil
}

// State returns the breaker state.
func (f *Factory) State() gobreaker.State {
	return f.breaker.State()
}

// Counts returns the breaker's request counts for the current interval.
func (f *Factory) Counts() gobreaker.Counts {
	return f.breaker.Counts()
}
