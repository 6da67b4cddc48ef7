// Package lifecycle exposes planner document changes as a lifecycle.Source,
// so hosts supervising the planner with aretw0/lifecycle can consume store
// changes alongside their other event streams.
package lifecycle

import (
	"context"
	"slices"
	"sync/atomic"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/planner/pkg/core"
)

// Source bridges a core.Event channel to lifecycle.Event.
type Source struct {
	events    <-chan core.Event
	out       chan lifecycle.Event
	types     []core.EventType
	forwarded atomic.Int64
}

// NewSource creates a Source. When types is non-empty only those event
// types are forwarded.
func NewSource(events <-chan core.Event, types ...core.EventType) *Source {
	return &Source{
		events: events,
		out:    make(chan lifecycle.Event),
		types:  types,
	}
}

// Events implements lifecycle.Source.
func (s *Source) Events() <-chan lifecycle.Event {
	return s.out
}

// Forwarded reports how many events reached the consumer.
func (s *Source) Forwarded() int64 {
	return s.forwarded.Load()
}

// Start implements lifecycle.Source. The output channel is closed when
// ctx is cancelled or the upstream channel closes.
func (s *Source) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if len(s.types) > 0 && !slices.Contains(s.types, e.Type) {
					continue
				}
				select {
				case s.out <- e:
					s.forwarded.Add(1)
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

var _ lifecycle.Source = (*Source)(nil)
