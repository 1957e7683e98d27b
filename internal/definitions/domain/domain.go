package domain

import (
	"context"
	"errors"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Definition is a registered event type. Name is stored in normalized (uppercase) form.
type Definition struct {
	ID          int64
	Name        string
	Description *string
}

var (
	// ErrConflict reports that a definition with the same normalized name exists.
	ErrConflict = errors.New("definition already exists")
	// ErrNotFound reports that no definition matches a normalized name.
	ErrNotFound = errors.New("definition not found")
	// ErrNameRequired rejects empty names.
	ErrNameRequired = errors.New("definition name is required")
)

// NormalizeName returns the form used for storage, uniqueness and lookup.
// It applies full Unicode case mapping, so "straße" becomes "STRASSE".
func NormalizeName(name string) string {
	// A Caser keeps state and is not safe for concurrent use.
	return cases.Upper(language.Und).String(name)
}

// Repository abstracts persistence for definitions.
// Names passed in are already normalized.
type Repository interface {
	// Create inserts a definition and returns ErrConflict when the unique name index trips.
	Create(ctx context.Context, name string, description *string) (Definition, error)
	// GetByName returns ErrNotFound when no row matches.
	GetByName(ctx context.Context, name string) (Definition, error)
	List(ctx context.Context) ([]Definition, error)
}

// Service is the Definition Registry.
type Service interface {
	Register(ctx context.Context, name string, description *string) (Definition, error)
	GetByName(ctx context.Context, name string) (Definition, error)
	ListAll(ctx context.Context) ([]Definition, error)
}
