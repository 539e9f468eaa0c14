package landing

import (
	"fmt"

	"github.com/opd-ai/go-lander/pkg/entity"
	"github.com/opd-ai/go-lander/pkg/terrain"
)

// FlightState is the ship's position in the flight lifecycle
type FlightState int

// Flight states. Flying is the zero value.
const (
	Flying FlightState = iota
	Landed
	Crashed
)

// String returns the state name
func (s FlightState) String() string {
	switch s {
	case Flying:
		return "flying"
	case Landed:
		return "landed"
	case Crashed:
		return "crashed"
	default:
		return fmt.Sprintf("FlightState(%d)", int(s))
	}
}

// MarshalText encodes the state by name
func (s FlightState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether the state can no longer change
func (s FlightState) Terminal() bool {
	return s == Landed || s == Crashed
}

// Machine moves a flight from Flying to Landed or Crashed exactly once
type Machine struct {
	Detector Detector
	Criteria Criteria

	state  FlightState
	report Report
}

// NewMachine returns a machine in the Flying state
func NewMachine(d Detector, c Criteria) *Machine {
	return &Machine{Detector: d, Criteria: c}
}

// State returns the current flight state
func (m *Machine) State() FlightState {
	return m.state
}

// Report returns the evaluation that ended the flight. It is the zero
// Report while Flying.
func (m *Machine) Report() Report {
	return m.report
}

// Observe checks for ground contact and, on the first contact while Flying,
// evaluates the landing. changed is true only for that one transition.
func (m *Machine) Observe(ship *entity.Ship, t *terrain.Terrain) (state FlightState, changed bool) {
	if m.state != Flying {
		return m.state, false
	}

	contact := m.Detector.Detect(ship, t)
	if !contact.Hit {
		return m.state, false
	}

	m.report = Evaluate(ship, t, contact, m.Criteria)
	if m.report.Landed() {
		m.state = Landed
	} else {
		m.state = Crashed
	}
	return m.state, true
}
