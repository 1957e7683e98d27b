package domain

import (
	"context"
	"fmt"
	"time"

	ddomain "github.com/DominikBanach/Bono/internal/definitions/domain"
)

// Occurrence is a single timestamped instance of a definition.
type Occurrence struct {
	ID           int64
	DefinitionID int64
	Timestamp    time.Time
}

// View is an occurrence joined with its definition's normalized name.
type View struct {
	ID        int64
	EventType string
	Timestamp time.Time
}

// NotFoundError reports that an event was logged against an unknown definition.
type NotFoundError struct {
	// Name is the normalized name that was looked up.
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("There is no %s event definition.", e.Name)
}

// Resolver looks up definitions by name; the definitions service satisfies it.
type Resolver interface {
	GetByName(ctx context.Context, name string) (ddomain.Definition, error)
}

// Repository abstracts persistence for occurrences.
type Repository interface {
	Create(ctx context.Context, definitionID int64, ts time.Time) (Occurrence, error)
	// List returns every occurrence joined with its definition name.
	List(ctx context.Context) ([]View, error)
}

// Service is the Event Log.
type Service interface {
	// LogEvent records an occurrence. A nil ts means now.
	LogEvent(ctx context.Context, eventTypeName string, ts *time.Time) (View, error)
	ListAll(ctx context.Context) ([]View, error)
}
