package core

import (
	"context"
	"log/slog"
	"sync"
)

const defaultEventBuffer = 100

// Service guards the repository with ID validation and decouples watchers
// from the adapter through a buffered broker.
type Service struct {
	repo            Repository
	logger          *slog.Logger
	eventBufferSize int
	mu              sync.RWMutex
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithEventBufferSize sets the capacity of the Watch broker channel.
func WithEventBufferSize(size int) ServiceOption {
	return func(s *Service) {
		if size > 0 {
			s.eventBufferSize = size
		}
	}
}

// WithServiceLogger sets the logger used by the service.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a new Service.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:            repo,
		logger:          slog.Default(),
		eventBufferSize: defaultEventBuffer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repository returns the underlying repository.
func (s *Service) Repository() Repository {
	return s.repo
}

// SaveDocument replaces the document stored under id.
func (s *Service) SaveDocument(ctx context.Context, id string, metadata Metadata) error {
	if id == "" {
		return ErrEmptyID
	}
	return s.repo.Save(ctx, Document{
		ID:       id,
		Metadata: metadata,
	})
}

// GetDocument retrieves a document.
func (s *Service) GetDocument(ctx context.Context, id string) (Document, error) {
	if id == "" {
		return Document{}, ErrEmptyID
	}
	return s.repo.Get(ctx, id)
}

// ListDocuments retrieves all documents.
func (s *Service) ListDocuments(ctx context.Context) ([]Document, error) {
	return s.repo.List(ctx)
}

// Watch observes changes in the repository if supported.
// Events are relayed through a buffered channel so a slow consumer never
// stalls the adapter; when the buffer is full the oldest pending event is
// kept and the new one is dropped with a warning.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, ErrNoWatcher
	}

	upstream, err := w.Watch(ctx, pattern)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	size := s.eventBufferSize
	s.mu.RUnlock()

	out := make(chan Event, size)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-upstream:
				if !ok {
					return
				}
				select {
				case out <- e:
				default:
					s.logger.Warn("event buffer full, dropping event", "id", e.ID, "type", e.Type)
				}
			}
		}
	}()

	return out, nil
}

// Close releases repository resources when the adapter holds any.
func (s *Service) Close() error {
	if c, ok := s.repo.(Closer); ok {
		return c.Close()
	}
	return nil
}
