// Package typed keeps a single Go value in sync with one repository document.
//
// A Store is the persisted-state primitive of the planner: it loads the
// document once, merges it over defaults, and rewrites the whole document
// after every mutation.
package typed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/aretw0/planner/pkg/core"
)

// Documents is the document port a Store reads and writes through.
// *core.Service implements it.
type Documents interface {
	GetDocument(ctx context.Context, id string) (core.Document, error)
	SaveDocument(ctx context.Context, id string, metadata core.Metadata) error
}

var _ Documents = (*core.Service)(nil)

// Store holds the in-memory value of type T backed by the document ID.
type Store[T any] struct {
	docs     Documents
	id       string
	defaults func() T
	logger   *slog.Logger

	mu          sync.Mutex
	value       T
	loaded      bool
	lastErr     error
	nextSub     int
	subscribers map[int]func(T)
}

// Option configures a Store.
type Option func(*storeOptions)

type storeOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to report read and write failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *storeOptions) {
		o.logger = logger
	}
}

// NewStore creates a store for document id. defaults must return a fresh
// value on every call; it seeds Load and fills fields the document lacks.
func NewStore[T any](docs Documents, id string, defaults func() T, opts ...Option) *Store[T] {
	o := &storeOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return &Store[T]{
		docs:        docs,
		id:          id,
		defaults:    defaults,
		logger:      o.logger,
		value:       defaults(),
		subscribers: make(map[int]func(T)),
	}
}

// ID returns the document ID backing the store.
func (s *Store[T]) ID() string {
	return s.id
}

// Load reads the document and merges it over defaults. Present top-level
// fields replace the default wholesale; absent fields keep the default, and
// so do fields whose stored value does not decode into T. A missing or
// unreadable document yields the defaults.
func (s *Store[T]) Load(ctx context.Context) T {
	value := s.read(ctx)

	s.mu.Lock()
	s.value = value
	s.loaded = true
	subs := s.snapshotSubscribers()
	s.mu.Unlock()

	s.publish(subs, value)
	return s.clone(value)
}

// Get returns a copy of the current value, loading it on first use.
func (s *Store[T]) Get(ctx context.Context) T {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if !loaded {
		return s.Load(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clone(s.value)
}

// Mutate applies update to a copy of the current value, makes the result
// current and persists the whole document. A persistence failure is
// logged and kept for Err; the in-memory value stays authoritative.
func (s *Store[T]) Mutate(ctx context.Context, update func(T) T) T {
	if !s.isLoaded() {
		s.Load(ctx)
	}

	s.mu.Lock()
	next := update(s.clone(s.value))
	s.value = next
	err := s.write(ctx, next)
	s.lastErr = err
	subs := s.snapshotSubscribers()
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("failed to persist document", "id", s.id, "error", err)
	}

	s.publish(subs, next)
	return s.clone(next)
}

// Err reports the outcome of the most recent persistence attempt.
func (s *Store[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Subscribe registers fn to receive every new value (after Load and each
// Mutate). The returned function removes the subscription.
func (s *Store[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store[T]) isLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *Store[T]) read(ctx context.Context) T {
	doc, err := s.docs.GetDocument(ctx, s.id)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			s.logger.Warn("failed to read document, using defaults", "id", s.id, "error", err)
		}
		return s.defaults()
	}

	merged, rejected := merge(s.defaults, doc.Metadata)
	if len(rejected) > 0 {
		s.logger.Warn("malformed fields, using defaults for them", "id", s.id, "fields", rejected)
	}
	return merged
}

func (s *Store[T]) write(ctx context.Context, value T) error {
	metadata, err := toMetadata(value)
	if err != nil {
		return err
	}
	return s.docs.SaveDocument(ctx, s.id, metadata)
}

// clone deep-copies value through its JSON form so updaters and callers
// never share backing arrays with the stored value.
func (s *Store[T]) clone(value T) T {
	data, err := json.Marshal(value)
	if err != nil {
		return value
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return value
	}
	return out
}

func (s *Store[T]) snapshotSubscribers() []func(T) {
	subs := make([]func(T), 0, len(s.subscribers))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subscribers[i]; ok {
			subs = append(subs, fn)
		}
	}
	return subs
}

func (s *Store[T]) publish(subs []func(T), value T) {
	for _, fn := range subs {
		fn(s.clone(value))
	}
}

// merge decodes metadata over a fresh default value one top-level key at a
// time, in key order. A key whose value does not fit its field is left out,
// keeping that field's default, and reported in rejected.
func merge[T any](defaults func() T, metadata core.Metadata) (value T, rejected []string) {
	accepted := make(core.Metadata, len(metadata))
	for _, key := range slices.Sorted(maps.Keys(metadata)) {
		accepted[key] = metadata[key]
		if _, err := decodeOver(defaults(), accepted); err != nil {
			delete(accepted, key)
			rejected = append(rejected, key)
		}
	}

	value, err := decodeOver(defaults(), accepted)
	if err != nil {
		return defaults(), slices.Sorted(maps.Keys(metadata))
	}
	return value, rejected
}

func decodeOver[T any](base T, metadata core.Metadata) (T, error) {
	data, err := json.Marshal(metadata)
	if err != nil {
		return base, fmt.Errorf("metadata marshal failed: %w", err)
	}
	if err := json.Unmarshal(data, &base); err != nil {
		return base, fmt.Errorf("unmarshal to target type failed: %w", err)
	}
	return base, nil
}

func toMetadata[T any](value T) (core.Metadata, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal typed data: %w", err)
	}
	var metadata core.Metadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("failed to convert typed data to map: %w", err)
	}
	return metadata, nil
}
