package draft

import (
	"time"

	"github.com/lox/draftsim/internal/card"
)

// EventType represents a draft event type with type safety
type EventType string

const (
	EventTypePickMade       EventType = "pick_made"
	EventTypeRoundStarted   EventType = "round_started"
	EventTypeDraftCompleted EventType = "draft_completed"
	EventTypeDraftClosed    EventType = "draft_closed"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything a Session publishes
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// PickMadeEvent is published for every seat's pick, human seat first
type PickMadeEvent struct {
	Pick      Pick
	PackID    string
	Remaining int
	timestamp time.Time
}

func (e PickMadeEvent) EventType() EventType { return EventTypePickMade }
func (e PickMadeEvent) Timestamp() time.Time { return e.timestamp }

// NewPickMadeEvent creates a new pick event
func NewPickMadeEvent(pick Pick, packID string, remaining int) PickMadeEvent {
	return PickMadeEvent{Pick: pick, PackID: packID, Remaining: remaining, timestamp: time.Now()}
}

// RoundStartedEvent is published when fresh packs are opened
type RoundStartedEvent struct {
	Round     int
	Direction Direction
	PackSize  int
	timestamp time.Time
}

func (e RoundStartedEvent) EventType() EventType { return EventTypeRoundStarted }
func (e RoundStartedEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundStartedEvent creates a new round started event
func NewRoundStartedEvent(round int, dir Direction, packSize int) RoundStartedEvent {
	return RoundStartedEvent{Round: round, Direction: dir, PackSize: packSize, timestamp: time.Now()}
}

// DraftCompletedEvent is published when the last pack of the last round empties
type DraftCompletedEvent struct {
	Pool      []card.Card
	Picks     int
	timestamp time.Time
}

func (e DraftCompletedEvent) EventType() EventType { return EventTypeDraftCompleted }
func (e DraftCompletedEvent) Timestamp() time.Time { return e.timestamp }

// NewDraftCompletedEvent creates a new draft completed event
func NewDraftCompletedEvent(pool []card.Card, picks int) DraftCompletedEvent {
	pc := make([]card.Card, len(pool))
	copy(pc, pool)
	return DraftCompletedEvent{Pool: pc, Picks: picks, timestamp: time.Now()}
}

// DraftClosedEvent is published when a session is abandoned or finished
type DraftClosedEvent struct {
	Phase     Phase
	timestamp time.Time
}

func (e DraftClosedEvent) EventType() EventType { return EventTypeDraftClosed }
func (e DraftClosedEvent) Timestamp() time.Time { return e.timestamp }

// NewDraftClosedEvent records the phase the session was closed from
func NewDraftClosedEvent(from Phase) DraftClosedEvent {
	return DraftClosedEvent{Phase: from, timestamp: time.Now()}
}

// EventSubscriber can subscribe to draft events
type EventSubscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a function to EventSubscriber
type SubscriberFunc func(Event)

func (f SubscriberFunc) OnEvent(e Event) { f(e) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is a synchronous in-memory event bus
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. Function subscribers cannot be compared
// and are left in place.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(SubscriberFunc); ok {
		return
	}
	for i, sub := range bus.subscribers {
		if _, ok := sub.(SubscriberFunc); ok {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers in subscription order
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
