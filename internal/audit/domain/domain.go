package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event represents an audit record of a write against the registry or log.
// Type examples: "definition.create.success", "event.log.not_found"
// Subject is the normalized definition name the write concerned.
type Event struct {
	ID      uuid.UUID
	Type    string
	Subject string
	Meta    map[string]string
	Time    time.Time
}

// Publisher publishes events to an external system (log, queue, etc.).
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NewEvent stamps an event with a fresh id and the current UTC time.
func NewEvent(typ, subject string, meta map[string]string) Event {
	return Event{ID: uuid.New(), Type: typ, Subject: subject, Meta: meta, Time: time.Now().UTC()}
}

// Audit event types.
const (
	TypeDefinitionCreated  = "definition.create.success"
	TypeDefinitionConflict = "definition.create.conflict"
	TypeEventLogged        = "event.log.success"
	TypeEventNotFound      = "event.log.not_found"
)
