package core

import "context"

// Repository defines the contract for storing and retrieving documents.
// Adhering to this interface keeps the planner independent of the
// underlying storage mechanism (filesystem, SQLite, memory).
type Repository interface {
	// Save persists a document. It creates if not exists, or replaces it if it does.
	Save(ctx context.Context, doc Document) error

	// Get retrieves a document by its ID.
	// Implementations return an error wrapping ErrNotFound when the ID is absent.
	Get(ctx context.Context, id string) (Document, error)

	// List returns all available documents.
	List(ctx context.Context) ([]Document, error)

	// Delete removes a document by its ID. Deleting an absent ID is not an error.
	Delete(ctx context.Context, id string) error

	// Initialize ensures the underlying storage is ready (create directories, schema migration).
	Initialize(ctx context.Context) error
}

// Watchable is implemented by repositories that can report external changes.
type Watchable interface {
	// Watch emits an Event for every change whose ID matches pattern.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Closer is implemented by repositories holding resources (database handles).
type Closer interface {
	Close() error
}
