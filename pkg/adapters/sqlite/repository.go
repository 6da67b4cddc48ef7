// Package sqlite stores planner documents in a single SQLite table using
// the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/introspection"
	_ "modernc.org/sqlite"

	"github.com/aretw0/planner/pkg/core"
)

// DefaultFileName is used when Config.Path points at a directory.
const DefaultFileName = "planner.db"

// Config holds the configuration for the SQLite repository.
type Config struct {
	// Path is the database file, or a directory that will hold DefaultFileName.
	Path     string
	ReadOnly bool
	Logger   *slog.Logger
}

// Repository implements core.Repository on top of SQLite.
// Each document is one row; its metadata is stored as a JSON object.
type Repository struct {
	path     string
	db       *sql.DB
	logger   *slog.Logger
	readOnly bool
}

// NewRepository creates a repository. The database is opened by Initialize.
func NewRepository(config Config) *Repository {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	path := strings.TrimSpace(config.Path)
	if path != "" && (filepath.Ext(path) == "" || isDir(path)) {
		path = filepath.Join(path, DefaultFileName)
	}
	return &Repository{
		path:     path,
		logger:   logger,
		readOnly: config.ReadOnly,
	}
}

// Initialize opens the database and ensures the schema exists.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.db != nil {
		return nil
	}
	if r.path == "" {
		return errors.New("sqlite db path is empty")
	}
	if r.readOnly {
		if _, err := os.Stat(r.path); err != nil {
			return fmt.Errorf("sqlite db not found: %w", err)
		}
	} else if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", r.dsn())
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps writes serialised, matching the one-writer model.
	db.SetMaxOpenConns(1)

	pragmas := []string{"PRAGMA busy_timeout=5000"}
	if !r.readOnly {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL", "PRAGMA synchronous=NORMAL")
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return fmt.Errorf("exec %q: %w", p, err)
		}
	}

	if !r.readOnly {
		schema := `
		CREATE TABLE IF NOT EXISTS documents (
			id         TEXT PRIMARY KEY,
			body       TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`
		if _, err := db.ExecContext(ctx, schema); err != nil {
			_ = db.Close()
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	r.db = db
	return nil
}

// Save upserts a document.
func (r *Repository) Save(ctx context.Context, doc core.Document) error {
	if r.readOnly {
		return core.ErrReadOnly
	}
	if doc.ID == "" {
		return core.ErrEmptyID
	}
	if err := r.ready(); err != nil {
		return err
	}

	body, err := encode(doc)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", doc.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO documents (id, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		doc.ID, body, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save document %s: %w", doc.ID, err)
	}
	r.logger.Debug("document saved", "id", doc.ID, "db", r.path)
	return nil
}

// Get loads a document by ID.
func (r *Repository) Get(ctx context.Context, id string) (core.Document, error) {
	if id == "" {
		return core.Document{}, core.ErrEmptyID
	}
	if err := r.ready(); err != nil {
		return core.Document{}, err
	}

	var body string
	err := r.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Document{}, fmt.Errorf("%s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Document{}, fmt.Errorf("get document %s: %w", id, err)
	}
	return decode(id, body)
}

// List returns all documents ordered by ID.
func (r *Repository) List(ctx context.Context) ([]core.Document, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, body FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []core.Document
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc, err := decode(id, body)
		if err != nil {
			r.logger.Warn("skipping unreadable document", "id", id, "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Delete removes a document. Absent IDs are ignored.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if r.readOnly {
		return core.ErrReadOnly
	}
	if id == "" {
		return core.ErrEmptyID
	}
	if err := r.ready(); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	return nil
}

// Close releases the database handle.
func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path      string `json:"path"`
	ReadOnly  bool   `json:"read_only"`
	Open      bool   `json:"open"`
	Documents int    `json:"documents"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	state := RepositoryState{Path: r.path, ReadOnly: r.readOnly, Open: r.db != nil}
	if r.db != nil {
		_ = r.db.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&state.Documents)
	}
	return state
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "sqlite"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

// dsn opens read-only repositories through a mode=ro URI so the
// connection itself refuses writes.
func (r *Repository) dsn() string {
	if r.readOnly {
		return "file:" + filepath.ToSlash(r.path) + "?mode=ro"
	}
	return r.path
}

func (r *Repository) ready() error {
	if r.db == nil {
		return errors.New("sqlite repository is not initialized")
	}
	return nil
}

func encode(doc core.Document) (string, error) {
	metadata := doc.Metadata
	if metadata == nil {
		metadata = core.Metadata{}
	}
	b, err := json.Marshal(metadata)
	return string(b), err
}

func decode(id, body string) (core.Document, error) {
	var metadata core.Metadata
	if err := json.Unmarshal([]byte(body), &metadata); err != nil {
		return core.Document{}, fmt.Errorf("decode document %s: %w", id, err)
	}
	if metadata == nil {
		metadata = core.Metadata{}
	}
	return core.Document{ID: id, Metadata: metadata}, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
