package types

import (
	"encoding/json"
	"time"
)

// Event types published after a successful write.
const (
	EventCreated    = "created"
	EventUpdated    = "updated"
	EventLiked      = "liked"
	EventDeleted    = "deleted"
	EventRegistered = "registered"
)

// Event is the message published to the events channel.
type Event struct {
	// Type is what happened, e.g. "liked".
	Type string `json:"type"`

	// Entity names the resource kind: "thought", "dog" or "user".
	Entity string `json:"entity"`

	// ID is the hex id of the affected record.
	ID string `json:"id"`

	// OccurredAt is when the write completed.
	OccurredAt time.Time `json:"occurredAt"`

	// Data is the record snapshot after the write (before it, for deletes).
	Data json.RawMessage `json:"data,omitempty"`
}
