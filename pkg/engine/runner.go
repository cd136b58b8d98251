// pkg/engine/runner.go
package engine

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/opd-ai/go-asteroids/pkg/logging"
)

// Runner drives a Game at a fixed tick rate.
type Runner struct {
	game    *Game
	limiter *rate.Limiter
	dt      float64
	logger  *logging.Logger

	// BeforeTick, when set, runs before every tick outside the game lock.
	BeforeTick func(ctx context.Context, tick uint64)
}

// NewRunner returns a runner stepping game tickRate times per second of wall
// time, each tick covering 1/tickRate simulated seconds. An unpaced runner
// steps as fast as it can.
func NewRunner(game *Game, tickRate float64, unpaced bool) *Runner {
	limit := rate.Limit(tickRate)
	if unpaced {
		limit = rate.Inf
	}

	var dt float64
	if tickRate > 0 {
		dt = 1 / tickRate
	}

	return &Runner{
		game:    game,
		limiter: rate.NewLimiter(limit, 1),
		dt:      dt,
		logger:  game.logger,
	}
}

// Run steps the game until ticks steps have run or ctx is done. A
// non-positive ticks runs until cancellation. It returns the number of
// ticks that ran.
func (r *Runner) Run(ctx context.Context, ticks int) (int, error) {
	r.logger.Info(ctx, "simulation started", "ticks", ticks, "dt", r.dt)

	n := 0
	for ticks <= 0 || n < ticks {
		if err := r.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				r.logger.Info(ctx, "simulation stopped", "ticks_run", n)
				return n, ctx.Err()
			}
			return n, fmt.Errorf("failed to pace tick %d: %w", n+1, err)
		}

		if r.BeforeTick != nil {
			r.BeforeTick(ctx, uint64(n+1))
		}
		r.game.Step(ctx, r.dt)
		n++
	}

	r.logger.Info(ctx, "simulation finished", "ticks_run", n)
	return n, nil
}
