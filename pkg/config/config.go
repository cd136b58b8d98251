// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/fragment"
	"github.com/opd-ai/go-asteroids/pkg/spawn"
)

// SimConfig contains configuration for an asteroids simulation run
type SimConfig struct {
	Simulation SimulationConfig `json:"simulation"`
	Spawn      SpawnConfig      `json:"spawn"`
	Fragment   FragmentConfig   `json:"fragment"`
	Bullet     BulletConfig     `json:"bullet"`
	Breaker    BreakerConfig    `json:"breaker"`
}

// SimulationConfig contains tick and world settings
type SimulationConfig struct {
	TickRate float64 `json:"tickRate"`
	Ticks    int     `json:"ticks"`
	Seed     uint64  `json:"seed"`
	Density  float64 `json:"density"`
	Unpaced  bool    `json:"unpaced"`
}

// SpawnConfig contains per-chunk population settings
type SpawnConfig struct {
	CountMean       float64 `json:"countMean"`
	CountStdDev     float64 `json:"countStdDev"`
	ScaleMean       float64 `json:"scaleMean"`
	ScaleStdDev     float64 `json:"scaleStdDev"`
	MaxSpeed        float64 `json:"maxSpeed"`
	MaxAngularSpeed float64 `json:"maxAngularSpeed"`
}

// FragmentConfig contains asteroid break-up settings
type FragmentConfig struct {
	Threshold   float64 `json:"threshold"`
	Damping     float64 `json:"damping"`
	SpreadAngle float64 `json:"spreadAngle"`
	BaseWidth   float64 `json:"baseWidth"`
}

// BulletConfig contains bullet launch settings
type BulletConfig struct {
	Speed        float64 `json:"speed"`
	LaunchOffset float64 `json:"launchOffset"`
	TTL          float64 `json:"ttl"`
}

// BreakerConfig controls the circuit breaker around body creation
type BreakerConfig struct {
	MaxRequests         int     `json:"maxRequests"`
	MaxConsecutiveFails int     `json:"maxConsecutiveFails"`
	IntervalSeconds     float64 `json:"intervalSeconds"`
	TimeoutSeconds      float64 `json:"timeoutSeconds"`
}

// Interval returns the breaker's count-clearing interval.
func (b BreakerConfig) Interval() time.Duration {
	return seconds(b.IntervalSeconds)
}

// Timeout returns how long the breaker stays open.
func (b BreakerConfig) Timeout() time.Duration {
	return seconds(b.TimeoutSeconds)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *SimConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default simulation configuration
func DefaultConfig() *SimConfig {
	sp := spawn.DefaultParams()
	fp := fragment.DefaultParams()
	bp := entity.DefaultBulletParams()

	return &SimConfig{
		Simulation: SimulationConfig{
			TickRate: 60,
			Ticks:    600,
			Seed:     1,
			Density:  1.0,
		},
		Spawn: SpawnConfig{
			CountMean:       sp.CountMean,
			CountStdDev:     sp.CountStdDev,
			ScaleMean:       sp.ScaleMean,
			ScaleStdDev:     sp.ScaleStdDev,
			MaxSpeed:        sp.MaxSpeed,
			MaxAngularSpeed: sp.MaxAngularSpeed,
		},
		Fragment: FragmentConfig{
			Threshold:   fp.Threshold,
			Damping:     fp.Damping,
			SpreadAngle: fp.SpreadAngle,
			BaseWidth:   fp.BaseWidth,
		},
		Bullet: BulletConfig{
			Speed:        bp.Speed,
			LaunchOffset: bp.LaunchOffset,
			TTL:          bp.TTL,
		},
		Breaker: BreakerConfig{
			MaxRequests:         1,
			MaxConsecutiveFails: 5,
			IntervalSeconds:     60,
			TimeoutSeconds:      5,
		},
	}
}

// SpawnParams converts the spawn section for spawn.NewPolicy.
func (c *SimConfig) SpawnParams() spawn.Params {
	return spawn.Params{
		CountMean:       c.Spawn.CountMean,
		CountStdDev:     c.Spawn.CountStdDev,
		ScaleMean:       c.Spawn.ScaleMean,
		ScaleStdDev:     c.Spawn.ScaleStdDev,
		MaxSpeed:        c.Spawn.MaxSpeed,
		MaxAngularSpeed: c.Spawn.MaxAngularSpeed,
	}
}

// FragmentParams converts the fragment section.
func (c *SimConfig) FragmentParams() fragment.Params {
	return fragment.Params{
		Threshold:   c.Fragment.Threshold,
		Damping:     c.Fragment.Damping,
		SpreadAngle: c.Fragment.SpreadAngle,
		BaseWidth:   c.Fragment.BaseWidth,
	}
}

// BulletParams converts the bullet section.
func (c *SimConfig) BulletParams() entity.BulletParams {
	return entity.BulletParams{
		Speed:        c.Bullet.Speed,
		LaunchOffset: c.Bullet.LaunchOffset,
		TTL:          c.Bullet.TTL,
	}
}

// TickDuration returns the simulated time covered by one tick.
func (c *SimConfig) TickDuration() float64 {
	if c.Simulation.TickRate <= 0 {
		return 0
	}
	return 1 / c.Simulation.TickRate
}
