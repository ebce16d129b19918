// Package catalog stores named templates for reuse.
//
// Templates are stored as raw text. Nothing is parsed or cached: every
// render scans the stored text again.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Store persists named templates.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put stores template under name, replacing any previous text.
	// The record ID is assigned on first Put and kept on updates.
	Put(ctx context.Context, name, template string) (Info, error)

	// Get returns the template stored under name.
	// Returns ErrNotFound if there is none.
	Get(ctx context.Context, name string) (string, error)

	// List returns metadata for all templates, ordered by name.
	// Returns an empty slice (not error) if the catalog is empty.
	List(ctx context.Context) ([]Info, error)

	// Delete removes a template.
	// Returns nil if the template doesn't exist.
	Delete(ctx context.Context, name string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info describes a stored template without its text.
type Info struct {
	ID        string
	Name      string
	Size      int64
	Runes     int
	UpdatedAt time.Time
}

// Sentinel errors for catalog operations.
var (
	// ErrNotFound indicates no template is stored under the name.
	ErrNotFound = errors.New("template not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("catalog store closed")

	// ErrInvalidName indicates an empty or blank template name.
	ErrInvalidName = errors.New("invalid template name")
)

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	return nil
}
