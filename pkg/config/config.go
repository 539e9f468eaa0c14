// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/opd-ai/go-lander/pkg/entity"
	"github.com/opd-ai/go-lander/pkg/landing"
	"github.com/opd-ai/go-lander/pkg/physics"
	"github.com/opd-ai/go-lander/pkg/terrain"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// SimConfig contains configuration for a lander simulation. Time is measured
// in milliseconds for all rates below.
type SimConfig struct {
	Seed    uint64        `json:"seed" yaml:"seed"` // 0 means seed from the clock
	Physics PhysicsConfig `json:"physics" yaml:"physics"`
	Ship    ShipConfig    `json:"ship" yaml:"ship"`
	Terrain TerrainConfig `json:"terrain" yaml:"terrain"`
	Landing LandingConfig `json:"landing" yaml:"landing"`
}

// PhysicsConfig contains integrator tuning
type PhysicsConfig struct {
	Gravity          float64 `json:"gravity" yaml:"gravity"`
	Friction         float64 `json:"friction" yaml:"friction"`
	TurnFriction     float64 `json:"turnFriction" yaml:"turn_friction"`
	TurnAcceleration float64 `json:"turnAcceleration" yaml:"turn_acceleration"`
	Thrust           float64 `json:"thrust" yaml:"thrust"`
	MaxTimeStep      float64 `json:"maxTimeStep" yaml:"max_time_step"`
}

// ShipConfig contains the hull dimensions and spawn point
type ShipConfig struct {
	Width         float64 `json:"width" yaml:"width"`
	Height        float64 `json:"height" yaml:"height"`
	SpawnAltitude float64 `json:"spawnAltitude" yaml:"spawn_altitude"`
}

// TerrainConfig contains terrain generation parameters
type TerrainConfig struct {
	Width         int     `json:"width" yaml:"width"`
	MaxHeight     int     `json:"maxHeight" yaml:"max_height"`
	ColumnSpacing float64 `json:"columnSpacing" yaml:"column_spacing"`
	NoiseScale    float64 `json:"noiseScale" yaml:"noise_scale"`
	NoiseOffset   float64 `json:"noiseOffset" yaml:"noise_offset"`
	BaselineDepth float64 `json:"baselineDepth" yaml:"baseline_depth"`
	BaselineReach float64 `json:"baselineReach" yaml:"baseline_reach"`
}

// LandingConfig contains touchdown tolerances
type LandingConfig struct {
	MaxVelocity float64 `json:"maxVelocity" yaml:"max_velocity"`
	MaxRotation float64 `json:"maxRotation" yaml:"max_rotation"`
	MaxSlope    int     `json:"maxSlope" yaml:"max_slope"`
}

// DefaultConfig returns a default simulation configuration
func DefaultConfig() *SimConfig {
	stats := entity.DefaultShipStats()
	criteria := landing.DefaultCriteria()

	return &SimConfig{
		Physics: PhysicsConfig{
			Gravity:          stats.Gravity,
			Friction:         stats.Friction,
			TurnFriction:     stats.TurnFriction,
			TurnAcceleration: stats.TurnAcceleration,
			Thrust:           stats.Thrust,
			MaxTimeStep:      1000,
		},
		Ship: ShipConfig{
			Width:         10,
			Height:        12,
			SpawnAltitude: 100,
		},
		Terrain: TerrainConfig{
			Width:         50,
			MaxHeight:     300,
			ColumnSpacing: terrain.DefaultSpacing,
			NoiseScale:    terrain.DefaultNoise.Scale,
			NoiseOffset:   terrain.DefaultNoise.Offset,
			BaselineDepth: 50,
			BaselineReach: 1e6,
		},
		Landing: LandingConfig{
			MaxVelocity: criteria.MaxVelocity,
			MaxRotation: criteria.MaxRotation,
			MaxSlope:    criteria.MaxSlope,
		},
	}
}

// LoadConfig loads a configuration from a JSON or YAML file, chosen by
// extension. Missing fields keep their defaults.
func LoadConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file in the format its extension names
func SaveConfig(config *SimConfig, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Validate checks that the configuration describes a solvable simulation
func (c *SimConfig) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	p := c.Physics
	check(p.Gravity >= 0, "gravity must not be negative (got %v)", p.Gravity)
	check(p.Friction > 0 && p.Friction <= 1, "friction must be in (0, 1] (got %v)", p.Friction)
	check(p.TurnFriction > 0 && p.TurnFriction <= 1, "turn friction must be in (0, 1] (got %v)", p.TurnFriction)
	check(p.TurnAcceleration > 0, "turn acceleration must be positive (got %v)", p.TurnAcceleration)
	check(p.Thrust > 0, "thrust must be positive (got %v)", p.Thrust)
	check(p.MaxTimeStep > 0, "max time step must be positive (got %v)", p.MaxTimeStep)

	s, t := c.Ship, c.Terrain
	check(s.Width > 0 && s.Height > 0, "ship size must be positive (got %vx%v)", s.Width, s.Height)
	check(t.Width >= 3, "terrain width must be at least 3 (got %d)", t.Width)
	check(t.MaxHeight >= 0, "terrain max height must not be negative (got %d)", t.MaxHeight)
	check(t.ColumnSpacing > 0, "column spacing must be positive (got %v)", t.ColumnSpacing)
	check(s.Width <= 2*t.ColumnSpacing, "ship width %v does not fit the landing zone (max %v)", s.Width, 2*t.ColumnSpacing)
	check(t.BaselineDepth > 0, "baseline depth must be positive (got %v)", t.BaselineDepth)
	check(t.BaselineReach > 0, "baseline reach must be positive (got %v)", t.BaselineReach)

	l := c.Landing
	check(l.MaxVelocity > 0, "landing max velocity must be positive (got %v)", l.MaxVelocity)
	check(l.MaxRotation >= 0, "landing max rotation must not be negative (got %v)", l.MaxRotation)
	check(l.MaxSlope > 0, "landing max slope must be positive (got %d)", l.MaxSlope)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// ShipStats converts the physics section into ship tuning
func (c *SimConfig) ShipStats() entity.ShipStats {
	return entity.ShipStats{
		Gravity:          c.Physics.Gravity,
		TurnAcceleration: c.Physics.TurnAcceleration,
		Thrust:           c.Physics.Thrust,
		Friction:         c.Physics.Friction,
		TurnFriction:     c.Physics.TurnFriction,
	}
}

// ShipSize returns the hull extents
func (c *SimConfig) ShipSize() physics.Vector2D {
	return physics.Vector2D{X: c.Ship.Width, Y: c.Ship.Height}
}

// Noise returns the terrain roughness parameters
func (c *SimConfig) Noise() terrain.Noise {
	return terrain.Noise{Scale: c.Terrain.NoiseScale, Offset: c.Terrain.NoiseOffset}
}

// Criteria returns the landing tolerances
func (c *SimConfig) Criteria() landing.Criteria {
	return landing.Criteria{
		MaxVelocity: c.Landing.MaxVelocity,
		MaxRotation: c.Landing.MaxRotation,
		MaxSlope:    c.Landing.MaxSlope,
	}
}

// Detector returns the collision detector for the configured baseline
func (c *SimConfig) Detector() landing.Detector {
	return landing.NewDetector(c.Terrain.BaselineDepth, c.Terrain.BaselineReach)
}
