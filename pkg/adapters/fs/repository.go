package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/planner/pkg/core"
)

// DefaultFormat is the extension used when Config.Format is empty.
const DefaultFormat = "json"

// Repository implements core.Repository with one file per document.
// A document with ID "schedule-planner-data" lives at
// {Path}/schedule-planner-data.json (or .yaml, depending on Format).
type Repository struct {
	Path        string
	config      Config
	serializers map[string]Serializer
	readOnly    bool

	mu            sync.RWMutex
	watcherActive bool
	lastWrite     *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path      string
	Format    string // "json" (default) or "yaml"
	MustExist bool
	ReadOnly  bool
	Logger    *slog.Logger
	// ErrorHandler receives runtime watcher failures that would otherwise only be logged.
	ErrorHandler func(error)
	// Serializers overrides or extends DefaultSerializers, keyed by extension (".json").
	Serializers map[string]Serializer
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Format == "" {
		config.Format = DefaultFormat
	}
	config.Format = strings.TrimPrefix(strings.ToLower(config.Format), ".")

	serializers := DefaultSerializers()
	for ext, s := range config.Serializers {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		serializers[ext] = s
	}

	return &Repository{
		Path:        config.Path,
		config:      config,
		serializers: serializers,
		readOnly:    config.ReadOnly,
	}
}

// Initialize ensures the data directory exists and sweeps interrupted writes.
func (r *Repository) Initialize(ctx context.Context) error {
	if _, ok := r.serializers[r.ext()]; !ok {
		return fmt.Errorf("unsupported format %q", r.config.Format)
	}

	if r.config.MustExist || r.readOnly {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("data path does not exist: %s", r.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", r.Path)
		}
	} else if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if r.readOnly {
		return nil
	}

	removed, err := sweepTempFiles(r.Path)
	if err != nil {
		return fmt.Errorf("failed to sweep temp files: %w", err)
	}
	if removed > 0 {
		r.config.Logger.Warn("removed interrupted writes", "path", r.Path, "count", removed)
	}
	return nil
}

// Save serializes the document in the configured format and writes it atomically.
// A copy of the same ID in another format is removed so Get stays unambiguous.
func (r *Repository) Save(ctx context.Context, doc core.Document) error {
	if r.readOnly {
		return core.ErrReadOnly
	}
	if err := validateID(doc.ID); err != nil {
		return err
	}

	ext := r.ext()
	serializer, ok := r.serializers[ext]
	if !ok {
		return fmt.Errorf("unsupported format %q", r.config.Format)
	}
	data, err := serializer.Serialize(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document %s: %w", doc.ID, err)
	}

	fullPath := filepath.Join(r.Path, doc.ID+ext)
	if err := writeFileAtomic(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", doc.ID, err)
	}

	for other := range r.serializers {
		if other == ext {
			continue
		}
		if err := os.Remove(filepath.Join(r.Path, doc.ID+other)); err != nil && !os.IsNotExist(err) {
			r.config.Logger.Warn("failed to remove stale copy", "id", doc.ID, "ext", other, "error", err)
		}
	}

	r.recordWrite()
	r.config.Logger.Debug("document saved", "id", doc.ID, "path", fullPath)
	return nil
}

// Get reads a document. The configured format is tried first, then any
// other supported format, so switching formats keeps old data readable.
func (r *Repository) Get(ctx context.Context, id string) (core.Document, error) {
	if err := validateID(id); err != nil {
		return core.Document{}, err
	}

	for _, ext := range r.lookupOrder() {
		fullPath := filepath.Join(r.Path, id+ext)
		f, err := os.Open(fullPath)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return core.Document{}, err
		}

		doc, err := r.serializers[ext].Parse(f)
		f.Close()
		if err != nil {
			return core.Document{}, fmt.Errorf("failed to parse document %s: %w", id, err)
		}
		doc.ID = id
		return *doc, nil
	}

	return core.Document{}, fmt.Errorf("%s: %w", id, core.ErrNotFound)
}

// List returns every document in the data directory, sorted by ID.
// Unparseable files are skipped with a warning.
func (r *Repository) List(ctx context.Context) ([]core.Document, error) {
	entries, err := os.ReadDir(r.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	seen := make(map[string]bool)
	var docs []core.Document
	for _, e := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		id, ok := r.idFromName(e.Name())
		if e.IsDir() || !ok || seen[id] {
			continue
		}
		seen[id] = true

		doc, err := r.Get(ctx, id)
		if err != nil {
			r.config.Logger.Warn("skipping unreadable document", "id", id, "error", err)
			continue
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})
	return docs, nil
}

// Delete removes every stored copy of a document. Absent IDs are ignored.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if r.readOnly {
		return core.ErrReadOnly
	}
	if err := validateID(id); err != nil {
		return err
	}

	for ext := range r.serializers {
		err := os.Remove(filepath.Join(r.Path, id+ext))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete document %s: %w", id, err)
		}
	}
	r.recordWrite()
	return nil
}

func (r *Repository) ext() string {
	return "." + r.config.Format
}

func (r *Repository) lookupOrder() []string {
	order := []string{r.ext()}
	others := make([]string, 0, len(r.serializers))
	for ext := range r.serializers {
		if ext != r.ext() {
			others = append(others, ext)
		}
	}
	sort.Strings(others)
	return append(order, others...)
}

// idFromName maps a file name to a document ID, reporting false for
// temp files, hidden files and unsupported extensions.
func (r *Repository) idFromName(name string) (string, bool) {
	if strings.HasPrefix(name, TempFilePrefix) || strings.HasPrefix(name, ".") {
		return "", false
	}
	ext := filepath.Ext(name)
	if _, ok := r.serializers[ext]; !ok {
		return "", false
	}
	return strings.TrimSuffix(name, ext), true
}

func (r *Repository) recordWrite() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastWrite = &now
}

// validateID rejects IDs that would escape the data directory.
func validateID(id string) error {
	if id == "" {
		return core.ErrEmptyID
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("invalid document ID %q", id)
	}
	if strings.HasPrefix(id, TempFilePrefix) {
		return errors.New("document ID uses reserved prefix")
	}
	return nil
}
