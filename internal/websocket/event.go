package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the type of event (created, updated, deleted)
type EventType string

const (
	EventTypeCreated   EventType = "created"
	EventTypeUpdated   EventType = "updated"
	EventTypeDeleted   EventType = "deleted"
	EventTypeCompleted EventType = "completed"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeScenario   EntityType = "scenario"
	EntityTypeProjection EntityType = "projection"
	EntityTypeReport     EntityType = "report"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "scenario.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "scenario"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ScenarioCreated creates a scenario.created event
func ScenarioCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeScenario, payload)
}

// ScenarioUpdated creates a scenario.updated event
func ScenarioUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeScenario, payload)
}

// ScenarioDeleted creates a scenario.deleted event
func ScenarioDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeScenario, payload)
}

// ProjectionCompleted creates a projection.completed event
func ProjectionCompleted(payload interface{}) Event {
	return NewEvent(EventTypeCompleted, EntityTypeProjection, payload)
}

// ReportCreated creates a report.created event
func ReportCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeReport, payload)
}
