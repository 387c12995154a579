// Package store provides persistent variable storage backing the "store" lookup.
//
// Variables are grouped into namespaces; a lookup is bound to one namespace
// and resolves variable names within it.
package store

import (
	"context"
	"errors"
	"time"
)

// Store persists named variables.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value of a variable.
	// Returns ErrNotFound if the variable doesn't exist.
	Get(ctx context.Context, namespace, name string) (string, error)

	// Set stores a variable, overwriting any existing value and bumping its version.
	Set(ctx context.Context, namespace, name, value string) error

	// List returns all variables in a namespace, ordered by name.
	// Returns empty slice (not error) if the namespace is empty.
	List(ctx context.Context, namespace string) ([]Variable, error)

	// Delete removes a variable.
	// Returns nil if the variable doesn't exist.
	Delete(ctx context.Context, namespace, name string) error

	// DeleteNamespace removes every variable in a namespace.
	// Returns nil if the namespace is empty.
	DeleteNamespace(ctx context.Context, namespace string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Variable is a stored value with its metadata.
type Variable struct {
	Namespace string
	Name      string
	Value     string
	// Version starts at 1 and increases on every Set.
	Version   int
	UpdatedAt time.Time
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a variable doesn't exist.
	ErrNotFound = errors.New("variable not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("variable store closed")
)
