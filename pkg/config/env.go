// pkg/config/env.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Message)
}

// LoadEnvFile loads KEY=VALUE pairs from a .env file into the process
// environment. Variables already set are left alone. A missing file is
// not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnvironmentOverrides applies ASTEROIDS_* environment variables on top
// of config and validates the result.
func ApplyEnvironmentOverrides(config *SimConfig) error {
	s := &config.Simulation
	s.TickRate = getEnvAsFloatOrDefault("ASTEROIDS_TICK_RATE", s.TickRate)
	s.Ticks = getEnvAsIntOrDefault("ASTEROIDS_TICKS", s.Ticks)
	s.Seed = getEnvAsUintOrDefault("ASTEROIDS_SEED", s.Seed)
	s.Density = getEnvAsFloatOrDefault("ASTEROIDS_DENSITY", s.Density)
	s.Unpaced = getEnvAsBoolOrDefault("ASTEROIDS_UNPACED", s.Unpaced)

	sp := &config.Spawn
	sp.CountMean = getEnvAsFloatOrDefault("ASTEROIDS_SPAWN_COUNT_MEAN", sp.CountMean)
	sp.CountStdDev = getEnvAsFloatOrDefault("ASTEROIDS_SPAWN_COUNT_STDDEV", sp.CountStdDev)
	sp.ScaleMean = getEnvAsFloatOrDefault("ASTEROIDS_SPAWN_SCALE_MEAN", sp.ScaleMean)
	sp.ScaleStdDev = getEnvAsFloatOrDefault("ASTEROIDS_SPAWN_SCALE_STDDEV", sp.ScaleStdDev)
	sp.MaxSpeed = getEnvAsFloatOrDefault("ASTEROIDS_SPAWN_MAX_SPEED", sp.MaxSpeed)
	sp.MaxAngularSpeed = getEnvAsFloatOrDefault("ASTEROIDS_SPAWN_MAX_ANGULAR_SPEED", sp.MaxAngularSpeed)

	f := &config.Fragment
	f.Threshold = getEnvAsFloatOrDefault("ASTEROIDS_FRAGMENT_THRESHOLD", f.Threshold)
	f.Damping = getEnvAsFloatOrDefault("ASTEROIDS_FRAGMENT_DAMPING", f.Damping)

	b := &config.Bullet
	b.Speed = getEnvAsFloatOrDefault("ASTEROIDS_BULLET_SPEED", b.Speed)
	b.TTL = getEnvAsFloatOrDefault("ASTEROIDS_BULLET_TTL", b.TTL)

	br := &config.Breaker
	br.MaxConsecutiveFails = getEnvAsIntOrDefault("ASTEROIDS_BREAKER_MAX_FAILS", br.MaxConsecutiveFails)
	br.TimeoutSeconds = getEnvAsDurationOrDefault("ASTEROIDS_BREAKER_TIMEOUT", br.Timeout()).Seconds()

	return Validate(config)
}

// Validate checks that every value is in a usable range
func Validate(config *SimConfig) error {
	s := config.Simulation
	if !(s.TickRate > 0) || s.TickRate > 1000 {
		return &ValidationError{Field: "TickRate", Value: s.TickRate, Message: "must be in (0, 1000]"}
	}
	if s.Ticks < 0 {
		return &ValidationError{Field: "Ticks", Value: s.Ticks, Message: "must not be negative"}
	}
	if !positive(s.Density) {
		return &ValidationError{Field: "Density", Value: s.Density, Message: "must be positive"}
	}

	sp := config.Spawn
	if !nonNegative(sp.CountMean) {
		return &ValidationError{Field: "CountMean", Value: sp.CountMean, Message: "must not be negative"}
	}
	if !nonNegative(sp.CountStdDev) {
		return &ValidationError{Field: "CountStdDev", Value: sp.CountStdDev, Message: "must not be negative"}
	}
	if !positive(sp.ScaleMean) {
		return &ValidationError{Field: "ScaleMean", Value: sp.ScaleMean, Message: "must be positive"}
	}
	if !nonNegative(sp.ScaleStdDev) {
		return &ValidationError{Field: "ScaleStdDev", Value: sp.ScaleStdDev, Message: "must not be negative"}
	}
	if !nonNegative(sp.MaxSpeed) {
		return &ValidationError{Field: "MaxSpeed", Value: sp.MaxSpeed, Message: "must not be negative"}
	}
	if !nonNegative(sp.MaxAngularSpeed) {
		return &ValidationError{Field: "MaxAngularSpeed", Value: sp.MaxAngularSpeed, Message: "must not be negative"}
	}

	f := config.Fragment
	if !positive(f.Threshold) {
		return &ValidationError{Field: "Threshold", Value: f.Threshold, Message: "must be positive"}
	}
	if !nonNegative(f.Damping) {
		return &ValidationError{Field: "Damping", Value: f.Damping, Message: "must not be negative"}
	}
	if !nonNegative(f.BaseWidth) {
		return &ValidationError{Field: "BaseWidth", Value: f.BaseWidth, Message: "must not be negative"}
	}

	b := config.Bullet
	if !positive(b.Speed) {
		return &ValidationError{Field: "BulletSpeed", Value: b.Speed, Message: "must be positive"}
	}
	if !positive(b.TTL) {
		return &ValidationError{Field: "BulletTTL", Value: b.TTL, Message: "must be positive"}
	}

	br := config.Breaker
	if br.MaxRequests < 1 {
		return &ValidationError{Field: "MaxRequests", Value: br.MaxRequests, Message: "must be at least 1"}
	}
	if br.MaxConsecutiveFails < 1 {
		return &ValidationError{Field: "MaxConsecutiveFails", Value: br.MaxConsecutiveFails, Message: "must be at least 1"}
	}
	if br.Timeout() < 10*time.Millisecond {
		return &ValidationError{Field: "BreakerTimeout", Value: br.Timeout(), Message: "must be at least 10ms"}
	}

	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnvOrDefault(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsUintOrDefault(key string, defaultValue uint64) uint64 {
	if value, err := strconv.ParseUint(getEnvOrDefault(key, ""), 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnvOrDefault(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnvOrDefault(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnvOrDefault(key, "")); err == nil {
		return value
	}
	return defaultValue
}
