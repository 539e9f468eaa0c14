// cmd/lander/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opd-ai/go-lander/pkg/autopilot"
	"github.com/opd-ai/go-lander/pkg/config"
	"github.com/opd-ai/go-lander/pkg/engine"
	"github.com/opd-ai/go-lander/pkg/event"
	"github.com/opd-ai/go-lander/pkg/landing"
	"github.com/opd-ai/go-lander/pkg/logging"
)

func main() {
	configPath := flag.String("config", "lander.yaml", "Path to configuration file (.yaml, .yml or .json)")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	seed := flag.Uint64("seed", 0, "Terrain seed (overrides config; 0 keeps the configured seed)")
	flights := flag.Int("flights", 1, "Number of flights to run")
	interval := flag.Duration("interval", engine.DefaultInterval, "Wall-clock time between ticks")
	logPath := flag.String("log", "", "Write logs to this file instead of stdout")
	dump := flag.Bool("snapshot", false, "Print the final snapshot of each flight as JSON")
	flag.Parse()

	logger := logging.NewLogger()
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logger.Error(context.Background(), "Failed to open log file", err, "log_path", *logPath)
			os.Exit(1)
		}
		defer f.Close()
		logger = logging.NewLoggerWithWriter(f, logging.ParseLevel(os.Getenv(logging.LevelEnvVar)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err, "config_path", *configPath)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file", "config_path", *configPath)
		return
	}

	cfg, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	session, err := engine.NewSession(cfg, rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)), logger)
	if err != nil {
		logger.Error(ctx, "Failed to create session", err)
		os.Exit(1)
	}
	session.EventBus.Subscribe(event.StepSkipped, func(e event.Event) {
		if skip, ok := e.(*event.SkipEvent); ok {
			logger.Warn(ctx, "Frame stalled, physics step skipped", "tick", skip.Tick, "dt_ms", skip.DeltaTime)
		}
	})

	runner := engine.NewRunner(session, autopilot.New(), logger)
	runner.Interval = *interval

	logger.Info(ctx, "Starting flights",
		"seed", cfg.Seed,
		"flights", *flights,
		"interval", interval.String(),
	)

	landed := 0
	for i := 0; i < *flights; i++ {
		if i > 0 {
			if _, _, err := session.Reset(cfg.Terrain.Width, cfg.Terrain.MaxHeight); err != nil {
				logger.Error(ctx, "Failed to reset session", err)
				os.Exit(1)
			}
		}

		state, err := runner.Run(ctx)
		if *dump {
			printSnapshot(ctx, logger, session.Snapshot())
		}
		if errors.Is(err, context.Canceled) {
			logger.Info(ctx, "Shutting down", "completed_flights", i, "landed", landed)
			return
		}
		if err != nil {
			logger.Error(ctx, "Flight failed", err)
			os.Exit(1)
		}
		if state == landing.Landed {
			landed++
		}
	}

	logger.Info(ctx, "Flights complete", "flights", *flights, "landed", landed)
}

// loadConfig reads the configuration file, falling back to defaults when it
// does not exist, then applies LANDER_* environment overrides.
func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.SimConfig, error) {
	var cfg *config.SimConfig

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration", "config_path", path)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err, "config_path", path)
			return nil, err
		}
	}

	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "Invalid configuration", err)
		return nil, err
	}
	return cfg, nil
}

func printSnapshot(ctx context.Context, logger *logging.Logger, snap engine.Snapshot) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		logger.Error(ctx, "Failed to encode snapshot", err)
	}
}
