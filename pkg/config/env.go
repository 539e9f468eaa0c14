package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by ApplyEnvironmentOverrides
const (
	EnvSeed          = "LANDER_SEED"
	EnvGravity       = "LANDER_GRAVITY"
	EnvThrust        = "LANDER_THRUST"
	EnvMaxTimeStep   = "LANDER_MAX_TIME_STEP"
	EnvTerrainWidth  = "LANDER_TERRAIN_WIDTH"
	EnvMaxHeight     = "LANDER_TERRAIN_MAX_HEIGHT"
	EnvMaxVelocity   = "LANDER_MAX_VELOCITY"
	EnvMaxRotation   = "LANDER_MAX_ROTATION"
	EnvSpawnAltitude = "LANDER_SPAWN_ALTITUDE"
)

// ApplyEnvironmentOverrides replaces config values with any LANDER_*
// environment variables that are set. Unset or empty variables are ignored.
func ApplyEnvironmentOverrides(config *SimConfig) error {
	if err := overrideUint(EnvSeed, &config.Seed); err != nil {
		return err
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{EnvGravity, &config.Physics.Gravity},
		{EnvThrust, &config.Physics.Thrust},
		{EnvMaxTimeStep, &config.Physics.MaxTimeStep},
		{EnvMaxVelocity, &config.Landing.MaxVelocity},
		{EnvMaxRotation, &config.Landing.MaxRotation},
		{EnvSpawnAltitude, &config.Ship.SpawnAltitude},
	}
	for _, f := range floats {
		if err := overrideFloat(f.key, f.dst); err != nil {
			return err
		}
	}

	if err := overrideInt(EnvTerrainWidth, &config.Terrain.Width); err != nil {
		return err
	}
	return overrideInt(EnvMaxHeight, &config.Terrain.MaxHeight)
}

func overrideFloat(key string, dst *float64) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}

func overrideInt(key string, dst *int) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}

func overrideUint(key string, dst *uint64) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}
