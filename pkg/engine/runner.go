package engine

import (
	"context"
	"errors"
	"time"

	"github.com/opd-ai/go-lander/pkg/landing"
	"github.com/opd-ai/go-lander/pkg/logging"
)

// DefaultInterval is the wall-clock period between ticks (about 60 Hz).
const DefaultInterval = time.Second / 60

// ErrNoControls is returned by Run when the runner has no control source.
var ErrNoControls = errors.New("runner has no control source")

// Clock supplies monotonic time readings
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock, whose readings carry a monotonic component
type SystemClock struct{}

// Now returns the current time
func (SystemClock) Now() time.Time { return time.Now() }

// ControlSource decides the inputs for the next tick
type ControlSource interface {
	Controls(snap Snapshot) Controls
}

// ControlFunc adapts a function to ControlSource
type ControlFunc func(snap Snapshot) Controls

// Controls calls f
func (f ControlFunc) Controls(snap Snapshot) Controls { return f(snap) }

// Runner drives a session from a clock until the flight ends
type Runner struct {
	Session  *Session
	Clock    Clock
	Controls ControlSource
	Interval time.Duration
	Logger   *logging.Logger

	last time.Time
}

// NewRunner creates a runner ticking at DefaultInterval on the system clock
func NewRunner(session *Session, controls ControlSource, logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Runner{
		Session:  session,
		Clock:    SystemClock{},
		Controls: controls,
		Interval: DefaultInterval,
		Logger:   logger,
	}
}

// Tick measures the time since the previous tick in milliseconds, asks the
// control source for inputs and steps the session once.
func (r *Runner) Tick() landing.FlightState {
	now := r.Clock.Now()
	if r.last.IsZero() {
		r.last = now
	}
	dt := float64(now.Sub(r.last)) / float64(time.Millisecond)
	r.last = now

	controls := r.Controls.Controls(r.Session.Snapshot())
	return r.Session.Step(dt, controls)
}

// Run ticks until the flight lands or crashes, or ctx is cancelled.
func (r *Runner) Run(ctx context.Context) (landing.FlightState, error) {
	if r.Controls == nil {
		return r.Session.State(), ErrNoControls
	}
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	ctx = logging.WithSessionID(ctx, r.Session.SessionID())
	r.Logger.Info(ctx, "flight started", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.last = r.Clock.Now()
	for {
		select {
		case <-ctx.Done():
			r.Logger.Warn(ctx, "flight interrupted", "tick", r.Session.Tick())
			return r.Session.State(), ctx.Err()
		case <-ticker.C:
			if state := r.Tick(); state.Terminal() {
				r.Logger.Info(ctx, "flight ended", "state", state.String(), "tick", r.Session.Tick())
				return state, nil
			}
		}
	}
}
