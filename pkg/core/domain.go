// Package core holds the storage-agnostic document model used by the planner.
package core

import "fmt"

// Metadata represents the structured key-value body of a document.
type Metadata map[string]any

// Document is the unit of persistence.
// The planner keeps a handful of well-known documents (the application
// aggregate, the notes collection) each identified by a fixed ID.
type Document struct {
	ID       string
	Metadata Metadata
}

// EventType represents the type of change in the repository.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the repository.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and lifecycle.Event).
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}
