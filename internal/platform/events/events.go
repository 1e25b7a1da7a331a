// Package events publishes domain events to Kafka compatible brokers
//
// Publishing is fire and forget: a failed produce is logged and counted but never
// fails the request that caused it. When no brokers are configured the Nop publisher
// is used.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	pnet "villagevisits/internal/platform/net"

	"github.com/google/uuid"
)

// Type names an event on the wire
type Type string

// Event types
const (
	VisitCreated       Type = "visit.created"
	ResidentRegistered Type = "resident.registered"
	ChiefCreated       Type = "chief.created"
	VillageCreated     Type = "village.created"
	VillageDeleted     Type = "village.deleted"
	AnnouncementPosted Type = "announcement.posted"
)

// Event is the envelope written to the topic, keyed by VillageID
type Event struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	At        time.Time `json:"at"`
	VillageID string    `json:"villageId,omitempty"`
	ActorID   string    `json:"actorId,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// New stamps an event with a fresh id and the current time
func New(t Type, villageID string, data any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		At:        time.Now().UTC(),
		VillageID: villageID,
		Data:      data,
	}
}

// Stamp copies the request id and caller from ctx onto e
func (e Event) Stamp(ctx context.Context) Event {
	e.RequestID = pnet.RequestID(ctx)
	e.ActorID = pnet.UserID(ctx)
	return e
}

// Encode renders e as the record value
func (e Event) Encode() ([]byte, error) { return json.Marshal(e) }

// Publisher accepts events for asynchronous delivery
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Observer receives delivery outcomes (metrics.Metrics satisfies it)
type Observer interface {
	IncEvent(typ string, ok bool)
}

// Nop drops every event
type Nop struct{}

// Publish implements Publisher
func (Nop) Publish(context.Context, Event) {}

// Memory keeps published events, for tests and local runs
type Memory struct {
	mu     sync.Mutex
	events []Event
}

// Publish implements Publisher
func (m *Memory) Publish(_ context.Context, e Event) {
	m.mu.Lock()
	m.events = append(m.events, e)
	m.mu.Unlock()
}

// Events returns a copy of everything published so far
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

// OfType returns the published events of type t
func (m *Memory) OfType(t Type) []Event {
	var out []Event
	for _, e := range m.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
