// pkg/engine/session.go
package engine

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/opd-ai/go-lander/pkg/config"
	"github.com/opd-ai/go-lander/pkg/entity"
	"github.com/opd-ai/go-lander/pkg/event"
	"github.com/opd-ai/go-lander/pkg/landing"
	"github.com/opd-ai/go-lander/pkg/logging"
	"github.com/opd-ai/go-lander/pkg/physics"
	"github.com/opd-ai/go-lander/pkg/terrain"
)

// Controls are the pilot inputs held during one tick
type Controls struct {
	Left   bool
	Right  bool
	Thrust bool
}

// Session owns one ship, one terrain and the flight state between them.
// Step and Reset are meant to be driven from a single goroutine; the lock
// only makes Snapshot safe to call from elsewhere. Events are published after
// the lock is released, so handlers may call back into the session.
type Session struct {
	EventBus *event.Bus

	config config.SimConfig
	rng    terrain.Source
	logger *logging.Logger
	log    *logging.Logger

	mu        sync.RWMutex
	ship      *entity.Ship
	terrain   *terrain.Terrain
	machine   *landing.Machine
	tick      uint64
	skipped   uint64
	sessionID string
}

// NewSession validates cfg and builds the first flight using the configured
// terrain dimensions. A nil logger discards output.
func NewSession(cfg *config.SimConfig, rng terrain.Source, logger *logging.Logger) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Session{
		EventBus: event.NewEventBus(),
		config:   *cfg,
		rng:      rng,
		logger:   logger,
	}
	if _, _, err := s.Reset(cfg.Terrain.Width, cfg.Terrain.MaxHeight); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset discards the current flight and builds a fresh ship and terrain. On
// error the previous flight is left untouched.
func (s *Session) Reset(width, maxHeight int) (*entity.Ship, *terrain.Terrain, error) {
	ship, ground, reset, err := s.reset(width, maxHeight)
	if err != nil {
		return nil, nil, err
	}
	s.EventBus.Publish(reset)
	return ship, ground, nil
}

func (s *Session) reset(width, maxHeight int) (*entity.Ship, *terrain.Terrain, event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ground, err := terrain.Generate(width, maxHeight, s.config.Terrain.ColumnSpacing, s.config.Noise(), s.rng)
	if err != nil {
		return nil, nil, nil, logging.WrapError(err, "reset %dx%d", width, maxHeight)
	}

	spawn := physics.Vector2D{
		X: 0,
		Y: float64(maxHeight) + s.config.Ship.SpawnAltitude + s.config.Ship.Height/2,
	}
	ship := entity.NewShip(spawn, s.config.ShipSize(), s.config.ShipStats())

	s.ship = ship
	s.terrain = ground
	s.machine = landing.NewMachine(s.config.Detector(), s.config.Criteria())
	s.tick = 0
	s.skipped = 0
	s.sessionID = logging.GenerateSessionID()
	s.log = s.logger.With("session_id", s.sessionID)

	s.log.Info(context.Background(), "session reset",
		"width", width,
		"max_height", maxHeight,
		"landing_zone", ground.LandingZone,
		"ship_id", ship.ID(),
	)
	return ship, ground, event.NewSessionEvent(s, s.sessionID, ship.ID(), ground.ID(), ground.LandingZone), nil
}

// Step runs one tick: ground contact is judged on the kinematics left by the
// previous tick, then controls are applied and the ship integrates. Once the
// flight has ended the ship is frozen and Step only reports the state.
func (s *Session) Step(dt float64, c Controls) landing.FlightState {
	state, pending := s.step(dt, c)
	for _, e := range pending {
		s.EventBus.Publish(e)
	}
	return state
}

// step advances the flight under the lock and returns the events to publish.
func (s *Session) step(dt float64, c Controls) (landing.FlightState, []event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tick++
	var pending []event.Event
	if state, changed := s.machine.Observe(s.ship, s.terrain); changed {
		pending = s.announce(state)
	}
	if s.machine.State().Terminal() {
		return s.machine.State(), pending
	}

	if !s.validTimeStep(dt) {
		s.skipped++
		s.log.Debug(context.Background(), "skipping physics step", "tick", s.tick, "dt", dt)
		return s.machine.State(), []event.Event{event.NewSkipEvent(s, s.tick, dt)}
	}

	if c.Left {
		s.ship.RotateLeft(dt)
	}
	if c.Right {
		s.ship.RotateRight(dt)
	}
	if c.Thrust {
		s.ship.ThrustUp(dt)
	}
	s.ship.Step(dt)

	return s.machine.State(), nil
}

func (s *Session) validTimeStep(dt float64) bool {
	return dt >= 0 && dt <= s.config.Physics.MaxTimeStep && !math.IsNaN(dt)
}

// announce logs a touchdown and returns its events
func (s *Session) announce(state landing.FlightState) []event.Event {
	report := s.machine.Report()
	failures := failureNames(report)
	touchdown := event.NewFlightEvent(event.ShipTouchdown, s, s.ship.ID(), s.tick, failures)

	args := []any{
		"tick", s.tick,
		"speed", report.Speed,
		"angle", report.Angle,
		"columns", fmt.Sprintf("%d..%d", report.FirstColumn, report.LastColumn),
	}
	if state == landing.Landed {
		s.log.Info(context.Background(), "ship landed", args...)
		return []event.Event{touchdown, event.NewFlightEvent(event.ShipLanded, s, s.ship.ID(), s.tick, nil)}
	}
	s.log.Info(context.Background(), "ship crashed", append(args, "failures", failures)...)
	return []event.Event{touchdown, event.NewFlightEvent(event.ShipCrashed, s, s.ship.ID(), s.tick, failures)}
}

func failureNames(r landing.Report) []string {
	var names []string
	for _, p := range r.Failures() {
		names = append(names, string(p))
	}
	return names
}

// Ship returns the current ship. Callers must not modify it.
func (s *Session) Ship() *entity.Ship {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ship
}

// Terrain returns the current terrain
func (s *Session) Terrain() *terrain.Terrain {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.terrain
}

// State returns the current flight state
func (s *Session) State() landing.FlightState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.machine.State()
}

// Report returns the evaluation that ended the flight, if any
func (s *Session) Report() landing.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.machine.Report()
}

// Tick returns the number of ticks since the last reset
func (s *Session) Tick() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tick
}

// SkippedSteps returns how many ticks had their physics step rejected
func (s *Session) SkippedSteps() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skipped
}

// SessionID identifies the current flight in logs and events
func (s *Session) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// Config returns a copy of the session configuration
func (s *Session) Config() config.SimConfig {
	return s.config
}
