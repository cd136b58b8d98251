package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/fragment"
	"github.com/opd-ai/go-asteroids/pkg/spawn"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if config.Simulation.TickRate != 60 {
		t.Errorf("Expected TickRate 60, got %f", config.Simulation.TickRate)
	}
	if config.Simulation.Density != 1.0 {
		t.Errorf("Expected Density 1.0, got %f", config.Simulation.Density)
	}
	if config.SpawnParams() != spawn.DefaultParams() {
		t.Errorf("SpawnParams() = %+v, want %+v", config.SpawnParams(), spawn.DefaultParams())
	}
	if config.FragmentParams() != fragment.DefaultParams() {
		t.Errorf("FragmentParams() = %+v, want %+v", config.FragmentParams(), fragment.DefaultParams())
	}
	if config.BulletParams() != entity.DefaultBulletParams() {
		t.Errorf("BulletParams() = %+v, want %+v", config.BulletParams(), entity.DefaultBulletParams())
	}
	if config.Breaker.Timeout() != 5*time.Second {
		t.Errorf("Expected breaker timeout 5s, got %v", config.Breaker.Timeout())
	}
	if err := Validate(config); err != nil {
		t.Errorf("DefaultConfig should validate, got %v", err)
	}
}

func TestTickDuration(t *testing.T) {
	config := DefaultConfig()
	config.Simulation.TickRate = 50
	if got := config.TickDuration(); got != 0.02 {
		t.Errorf("TickDuration() = %v, want 0.02", got)
	}
	config.Simulation.TickRate = 0
	if got := config.TickDuration(); got != 0 {
		t.Errorf("TickDuration() with zero rate = %v, want 0", got)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "sim.json")

	original := DefaultConfig()
	original.Simulation.Seed = 12345
	original.Spawn.CountMean = 5
	original.Fragment.Threshold = 1.5
	original.Breaker.TimeoutSeconds = 0.25

	if err := SaveConfig(original, configPath); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if *loaded != *original {
		t.Errorf("loaded config %+v differs from saved %+v", loaded, original)
	}
	if loaded.Breaker.Timeout() != 250*time.Millisecond {
		t.Errorf("Expected 250ms timeout, got %v", loaded.Breaker.Timeout())
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "partial.json")
	data, err := json.Marshal(map[string]interface{}{
		"simulation": map[string]interface{}{"seed": 7, "tickRate": 30, "density": 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Simulation.Seed != 7 || config.Simulation.TickRate != 30 {
		t.Errorf("simulation section not applied: %+v", config.Simulation)
	}
	if config.Spawn != DefaultConfig().Spawn {
		t.Errorf("spawn section should keep defaults, got %+v", config.Spawn)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(tempDir, "missing.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(tempDir, "bad.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for invalid JSON")
		}
	})
}

func TestSaveConfig_InvalidPath(t *testing.T) {
	err := SaveConfig(DefaultConfig(), filepath.Join(t.TempDir(), "missing", "dir", "sim.json"))
	if err == nil {
		t.Error("expected error writing into a missing directory")
	}
}
