// Package event carries flight lifecycle notifications from the session to
// whoever is watching: loggers, drivers, tests.
package event

import (
	"sync"
)

// Type names an event kind
type Type string

// Flight lifecycle event types
const (
	SessionReset  Type = "session_reset"
	ShipTouchdown Type = "ship_touchdown"
	ShipLanded    Type = "ship_landed"
	ShipCrashed   Type = "ship_crashed"
	StepSkipped   Type = "step_skipped"
)

// Event is anything published on a Bus
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent is embedded by every concrete event
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event's kind
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns whatever published the event
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler receives published events synchronously
type Handler func(Event)

// Subscription is a registered handler; Cancel removes it from the bus
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus is a synchronous publish/subscribe hub keyed by event Type
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus returns an empty bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe adds handler for eventType. Handlers run in subscription order.
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish calls every handler subscribed to the event's type. Handlers may
// subscribe or cancel while being called; changes apply from the next Publish.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := append([]registration(nil), b.handlers[event.GetType()]...)
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// SessionEvent announces a freshly built ship and terrain
type SessionEvent struct {
	BaseEvent
	SessionID   string
	ShipID      uint64
	TerrainID   uint64
	LandingZone int
}

// NewSessionEvent creates a new session reset event
func NewSessionEvent(source interface{}, sessionID string, shipID, terrainID uint64, landingZone int) *SessionEvent {
	return &SessionEvent{
		BaseEvent: BaseEvent{
			EventType: SessionReset,
			Source:    source,
		},
		SessionID:   sessionID,
		ShipID:      shipID,
		TerrainID:   terrainID,
		LandingZone: landingZone,
	}
}

// FlightEvent reports a contact and its outcome
type FlightEvent struct {
	BaseEvent
	ShipID   uint64
	Tick     uint64
	Failures []string
}

// NewFlightEvent creates a touchdown, landing or crash event
func NewFlightEvent(eventType Type, source interface{}, shipID, tick uint64, failures []string) *FlightEvent {
	return &FlightEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ShipID:   shipID,
		Tick:     tick,
		Failures: failures,
	}
}

// SkipEvent records a tick whose elapsed time was rejected
type SkipEvent struct {
	BaseEvent
	Tick      uint64
	DeltaTime float64
}

// NewSkipEvent creates a new skipped-step event
func NewSkipEvent(source interface{}, tick uint64, dt float64) *SkipEvent {
	return &SkipEvent{
		BaseEvent: BaseEvent{
			EventType: StepSkipped,
			Source:    source,
		},
		Tick:      tick,
		DeltaTime: dt,
	}
}
