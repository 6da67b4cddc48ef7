// Package memory provides a map-backed core.Repository.
// It is used for ephemeral sessions and as a test double.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/planner/pkg/core"
)

// Repository keeps documents in memory.
type Repository struct {
	mu       sync.RWMutex
	docs     map[string]core.Document
	watchers []*watcher

	// FailWrites makes Save and Delete return an error. Used to exercise
	// write-failure paths.
	FailWrites bool
}

type watcher struct {
	pattern string
	ch      chan core.Event
	ctx     context.Context
}

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{docs: make(map[string]core.Document)}
}

// Initialize is a no-op.
func (r *Repository) Initialize(ctx context.Context) error { return nil }

// Save stores a copy of doc.
func (r *Repository) Save(ctx context.Context, doc core.Document) error {
	if doc.ID == "" {
		return core.ErrEmptyID
	}

	r.mu.Lock()
	if r.FailWrites {
		r.mu.Unlock()
		return fmt.Errorf("memory: write rejected for %s", doc.ID)
	}
	_, existed := r.docs[doc.ID]
	r.docs[doc.ID] = clone(doc)
	r.mu.Unlock()

	eType := core.EventCreate
	if existed {
		eType = core.EventModify
	}
	r.notify(core.Event{Type: eType, ID: doc.ID, Timestamp: time.Now().Unix()})
	return nil
}

// Get returns a copy of the stored document.
func (r *Repository) Get(ctx context.Context, id string) (core.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return core.Document{}, fmt.Errorf("%s: %w", id, core.ErrNotFound)
	}
	return clone(doc), nil
}

// List returns all documents sorted by ID.
func (r *Repository) List(ctx context.Context) ([]core.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]core.Document, 0, len(r.docs))
	for _, doc := range r.docs {
		docs = append(docs, clone(doc))
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})
	return docs, nil
}

// Delete removes a document. Absent IDs are ignored.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	if r.FailWrites {
		r.mu.Unlock()
		return fmt.Errorf("memory: delete rejected for %s", id)
	}
	_, existed := r.docs[id]
	delete(r.docs, id)
	r.mu.Unlock()

	if existed {
		r.notify(core.Event{Type: core.EventDelete, ID: id, Timestamp: time.Now().Unix()})
	}
	return nil
}

// Watch implements core.Watchable.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	w := &watcher{pattern: pattern, ch: make(chan core.Event, 16), ctx: ctx}

	r.mu.Lock()
	r.watchers = append(r.watchers, w)
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, candidate := range r.watchers {
			if candidate == w {
				r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
				break
			}
		}
		close(w.ch)
	}()

	return w.ch, nil
}

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Documents int `json:"documents"`
	Watchers  int `json:"watchers"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RepositoryState{Documents: len(r.docs), Watchers: len(r.watchers)}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "memory"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) notify(e core.Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, w := range r.watchers {
		if ok, _ := doublestar.Match(w.pattern, e.ID); !ok {
			continue
		}
		if w.ctx.Err() != nil {
			continue
		}
		select {
		case w.ch <- e:
		default:
		}
	}
}

func clone(doc core.Document) core.Document {
	out := core.Document{ID: doc.ID}
	if doc.Metadata != nil {
		out.Metadata = maps.Clone(doc.Metadata)
	}
	return out
}
