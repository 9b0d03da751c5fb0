// Package store provides persistence for named grammar sources.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry is one stored grammar source.
type Entry struct {
	Name      string    `db:"name"`
	Format    string    `db:"format"`
	Source    string    `db:"source"`
	Revision  string    `db:"revision"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Store is the interface for grammar persistence.
type Store interface {
	// Get retrieves a grammar by name. Returns nil if not found.
	Get(ctx context.Context, name string) (*Entry, error)
	// Put stores a grammar by name, overwriting if it exists. It assigns a
	// new Revision and UpdatedAt to e.
	Put(ctx context.Context, e *Entry) error
	// Delete removes a grammar by name.
	Delete(ctx context.Context, name string) error
	// List returns all grammars ordered by name.
	List(ctx context.Context) ([]Entry, error)
	// Close releases resources.
	Close() error
}

// ErrNotFound is returned by Lookup when no grammar has the name.
var ErrNotFound = errors.New("grammar not found")

// Lookup is Get that treats a missing grammar as an error.
func Lookup(ctx context.Context, s Store, name string) (*Entry, error) {
	e, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return e, nil
}

// stamp gives e a fresh revision.
func stamp(e *Entry) {
	e.Revision = uuid.NewString()
	e.UpdatedAt = time.Now().UTC()
}
