package config

import (
	"testing"
)

func TestApplyEnvironmentOverrides(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		config := DefaultConfig()
		if err := ApplyEnvironmentOverrides(config); err != nil {
			t.Fatalf("ApplyEnvironmentOverrides() failed: %v", err)
		}
		if *config != *DefaultConfig() {
			t.Errorf("config changed without environment: %+v", config)
		}
	})

	t.Run("EnvironmentOverrides", func(t *testing.T) {
		t.Setenv(EnvSeed, "1234")
		t.Setenv(EnvGravity, "0.001")
		t.Setenv(EnvThrust, "0.003")
		t.Setenv(EnvMaxTimeStep, "250")
		t.Setenv(EnvTerrainWidth, "80")
		t.Setenv(EnvMaxHeight, "400")
		t.Setenv(EnvMaxVelocity, "0.08")
		t.Setenv(EnvMaxRotation, "0.15")
		t.Setenv(EnvSpawnAltitude, "60")

		config := DefaultConfig()
		if err := ApplyEnvironmentOverrides(config); err != nil {
			t.Fatalf("ApplyEnvironmentOverrides() failed: %v", err)
		}

		if config.Seed != 1234 {
			t.Errorf("Expected Seed 1234, got %d", config.Seed)
		}
		if config.Physics.Gravity != 0.001 || config.Physics.Thrust != 0.003 || config.Physics.MaxTimeStep != 250 {
			t.Errorf("physics overrides not applied: %+v", config.Physics)
		}
		if config.Terrain.Width != 80 || config.Terrain.MaxHeight != 400 {
			t.Errorf("terrain overrides not applied: %+v", config.Terrain)
		}
		if config.Landing.MaxVelocity != 0.08 || config.Landing.MaxRotation != 0.15 {
			t.Errorf("landing overrides not applied: %+v", config.Landing)
		}
		if config.Ship.SpawnAltitude != 60 {
			t.Errorf("Expected SpawnAltitude 60, got %v", config.Ship.SpawnAltitude)
		}
	})

	t.Run("InvalidValues", func(t *testing.T) {
		tests := []struct {
			key   string
			value string
		}{
			{EnvSeed, "-1"},
			{EnvGravity, "heavy"},
			{EnvTerrainWidth, "4.5"},
			{EnvMaxHeight, "tall"},
		}

		for _, tt := range tests {
			t.Run(tt.key, func(t *testing.T) {
				t.Setenv(tt.key, tt.value)
				if err := ApplyEnvironmentOverrides(DefaultConfig()); err == nil {
					t.Errorf("expected error for %s=%q", tt.key, tt.value)
				}
			})
		}
	})
}
