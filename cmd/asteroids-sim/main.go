// cmd/asteroids-sim/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-asteroids/pkg/arena"
	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/health"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

const (
	fireEvery   = 30
	healthEvery = 300
	maxBodies   = 20000
)

var playerDrift = physics.Vector2D{X: 120, Y: 80}

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithRunID(context.Background(), "")

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	envPath := flag.String("env", ".env", "Path to an optional .env file")
	ticks := flag.Int("ticks", -1, "Ticks to run; 0 runs until interrupted, -1 uses the configuration")
	fast := flag.Bool("fast", false, "Run ticks as fast as possible")
	flag.Parse()

	// Create default configuration file if requested
	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	if err := config.LoadEnvFile(*envPath); err != nil {
		logger.Error(ctx, "Failed to load environment file", err, "env_path", *envPath)
		os.Exit(1)
	}

	simConfig, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}
	if *ticks >= 0 {
		simConfig.Simulation.Ticks = *ticks
	}
	if *fast {
		simConfig.Simulation.Unpaced = true
	}

	seed := simConfig.Simulation.Seed
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	world := arena.New(simConfig.Simulation.Density)
	game := engine.NewGame(simConfig, world, rng, logger)

	var destroyed, fragmented, expired, spawnFailures int
	game.EventBus.Subscribe(event.BodyDestroyed, func(event.Event) { destroyed++ })
	game.EventBus.Subscribe(event.AsteroidFragmented, func(event.Event) { fragmented++ })
	game.EventBus.Subscribe(event.BulletExpired, func(event.Event) { expired++ })
	game.EventBus.Subscribe(event.SpawnFailed, func(event.Event) { spawnFailures++ })

	if _, err := game.SpawnPlayer(ctx, physics.Vector2D{}, playerDrift); err != nil {
		logger.Error(ctx, "Failed to spawn player", err)
		os.Exit(1)
	}

	checker := health.NewHealthChecker()
	checker.AddCheck(health.NewBreakerHealthCheck(game.Breaker().State))
	checker.AddCheck(health.NewTickProgressCheck(func() uint64 { return game.Stats().Tick }))
	checker.AddCheck(health.NewBodyBudgetCheck(maxBodies, world.Len))

	runner := engine.NewRunner(game, simConfig.Simulation.TickRate, simConfig.Simulation.Unpaced)
	runner.BeforeTick = func(ctx context.Context, tick uint64) {
		if tick%fireEvery == 0 {
			if _, err := game.Fire(ctx); err != nil && !errors.Is(err, engine.ErrNoPlayer) {
				logger.Warn(ctx, "Failed to fire", "error", err.Error())
			}
		}
		if tick%healthEvery == 0 {
			if status := checker.CheckHealth(ctx); !status.Healthy() {
				logger.Warn(ctx, "Simulation unhealthy", "failing", status.Failing())
			}
		}
	}

	// Handle graceful shutdown
	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	n, err := runner.Run(runCtx, simConfig.Simulation.Ticks)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(ctx, "Simulation failed", err, "ticks_run", n)
		os.Exit(1)
	}

	stats := game.Stats()
	logger.Info(ctx, "Simulation summary",
		"ticks", stats.Tick,
		"elapsed", stats.Elapsed,
		"chunks", stats.Chunks,
		"asteroids", stats.Asteroids,
		"ships", stats.Ships,
		"bullets", stats.Bullets,
		"destroyed", destroyed,
		"fragmented", fragmented,
		"bullets_expired", expired,
		"spawn_failures", spawnFailures,
	)
}

// loadConfig reads the configuration file when present, falls back to the
// defaults otherwise, and applies environment overrides.
func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.SimConfig, error) {
	var simConfig *config.SimConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		simConfig = config.DefaultConfig()
	} else {
		simConfig, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnvironmentOverrides(simConfig); err != nil {
		return nil, logging.WrapError(err, "failed to apply environment configuration")
	}
	return simConfig, nil
}
