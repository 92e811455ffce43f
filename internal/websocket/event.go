package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the type of event (created, updated, deleted)
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
	EventTypeReset   EventType = "reset"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeWishlist EntityType = "wishlist"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "wishlist.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "wishlist"
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

// WishlistCreated creates a wishlist.created event
func WishlistCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeWishlist, payload)
}

// WishlistUpdated creates a wishlist.updated event
func WishlistUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeWishlist, payload)
}

// WishlistDeleted creates a wishlist.deleted event
func WishlistDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeWishlist, payload)
}

// WishlistsReset creates a wishlist.reset event
func WishlistsReset() Event {
	return NewEvent(EventTypeReset, EntityTypeWishlist, nil)
}
