package planner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/planner/pkg/typed"
)

// Celebrator reacts to a weekday becoming fully complete. Implementations
// are fire-and-forget; the planner never reads anything back.
type Celebrator interface {
	Celebrate(day string)
}

// View is the screen the root composition currently shows.
type View string

const (
	ViewHome     View = "home"
	ViewCalendar View = "calendar"
	ViewNotes    View = "notes"
)

// Planner owns the two persisted stores and implements every domain operation.
type Planner struct {
	data       *typed.Store[AppData]
	notes      *typed.Store[NotesData]
	now        func() time.Time
	newID      func() string
	celebrator Celebrator
	logger     *slog.Logger

	mu   sync.Mutex
	view View
}

// Option configures a Planner.
type Option func(*Planner)

// WithClock overrides the time source (used for note timestamps and quotes).
func WithClock(now func() time.Time) Option {
	return func(p *Planner) {
		p.now = now
	}
}

// WithIDGenerator overrides how entity IDs are minted.
func WithIDGenerator(newID func() string) Option {
	return func(p *Planner) {
		p.newID = newID
	}
}

// WithCelebrator sets the effect fired for fully complete days.
func WithCelebrator(c Celebrator) Option {
	return func(p *Planner) {
		p.celebrator = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Planner over the document service. Call Load before use to
// read persisted state; operations invoked earlier load lazily.
func New(docs typed.Documents, opts ...Option) *Planner {
	p := &Planner{
		now:    func() time.Time { return time.Now().UTC() },
		newID:  newTimeOrderedID,
		logger: slog.Default(),
		view:   ViewHome,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.data = typed.NewStore(docs, DataKey, DefaultAppData, typed.WithLogger(p.logger))
	p.notes = typed.NewStore(docs, NotesKey, DefaultNotesData, typed.WithLogger(p.logger))
	return p
}

// Load reads both documents from storage, merging them over defaults.
// Days that are already complete are celebrated.
func (p *Planner) Load(ctx context.Context) {
	data := p.data.Load(ctx)
	p.notes.Load(ctx)
	p.celebrate(data.Slots)
	p.logger.Debug("planner loaded", "data", DataKey, "notes", NotesKey)
}

// Data returns a copy of the application aggregate.
func (p *Planner) Data(ctx context.Context) AppData {
	return p.data.Get(ctx)
}

// PersistErr reports the last write failure of either document, if any.
func (p *Planner) PersistErr() error {
	if err := p.data.Err(); err != nil {
		return err
	}
	return p.notes.Err()
}

// View returns the active view.
func (p *Planner) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

// Navigate switches the active view.
func (p *Planner) Navigate(v View) error {
	switch v {
	case ViewHome, ViewCalendar, ViewNotes:
	default:
		return ErrUnknownView
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view = v
	return nil
}

// newTimeOrderedID mints a UUIDv7: unique and ordered by creation time.
func newTimeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
