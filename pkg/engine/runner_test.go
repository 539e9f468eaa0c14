// Package engine provides unit tests for runner.go
package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/opd-ai/go-lander/pkg/landing"
)

// stepClock advances by a fixed step on every reading
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func TestRunner_TickMeasuresMilliseconds(t *testing.T) {
	s := newTestSession(t, 20)
	var seen []uint64
	r := NewRunner(s, ControlFunc(func(snap Snapshot) Controls {
		seen = append(seen, snap.Tick)
		return Controls{}
	}), nil)
	r.Clock = &stepClock{now: time.Unix(0, 0), step: 16 * time.Millisecond}

	// The first tick has no previous reading and integrates nothing.
	start := s.Ship().Position()
	r.Tick()
	if s.Ship().Position() != start {
		t.Error("first tick moved the ship")
	}

	r.Tick()
	want := newTestSession(t, 20)
	want.Step(0, Controls{})
	want.Step(16, Controls{})
	if s.Ship().Position() != want.Ship().Position() {
		t.Errorf("position %v, expected %v after a 16ms tick", s.Ship().Position(), want.Ship().Position())
	}

	if len(seen) != 2 || seen[0] != 0 || seen[1] != 1 {
		t.Errorf("control source saw ticks %v, expected [0 1]", seen)
	}
}

func TestRunner_StallIsSkipped(t *testing.T) {
	s := newTestSession(t, 21)
	r := NewRunner(s, ControlFunc(func(Snapshot) Controls { return Controls{} }), nil)
	clock := &stepClock{now: time.Unix(0, 0), step: 16 * time.Millisecond}
	r.Clock = clock

	r.Tick()
	clock.step = 3 * time.Second
	r.Tick()

	if s.SkippedSteps() != 1 {
		t.Errorf("expected the 3s stall to be skipped, got %d skips", s.SkippedSteps())
	}
}

func TestRunner_RunUntilCrash(t *testing.T) {
	s := newTestSession(t, 22)
	r := NewRunner(s, ControlFunc(func(Snapshot) Controls { return Controls{} }), nil)
	r.Clock = &stepClock{now: time.Unix(0, 0), step: 16 * time.Millisecond}
	r.Interval = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	state, err := r.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if state != landing.Crashed {
		t.Errorf("expected Crashed, got %v", state)
	}
}

func TestRunner_RunCancelled(t *testing.T) {
	s := newTestSession(t, 23)
	r := NewRunner(s, ControlFunc(func(Snapshot) Controls { return Controls{Thrust: true} }), nil)
	r.Clock = &stepClock{now: time.Unix(0, 0), step: 16 * time.Millisecond}
	r.Interval = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	state, err := r.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline error, got %v", err)
	}
	if state != landing.Flying {
		t.Errorf("climbing ship reported %v", state)
	}
}

func TestRunner_RunWithoutControls(t *testing.T) {
	s := newTestSession(t, 24)
	r := NewRunner(s, nil, nil)

	if _, err := r.Run(context.Background()); !errors.Is(err, ErrNoControls) {
		t.Errorf("expected ErrNoControls, got %v", err)
	}
}
