package planner

import (
	"context"
	"log/slog"

	"github.com/aretw0/planner/internal/platform"
	"github.com/aretw0/planner/pkg/adapters/fs"
	"github.com/aretw0/planner/pkg/core"
	domain "github.com/aretw0/planner/pkg/planner"
)

// --- Types ---

// Planner is a public alias for the domain planner.
type Planner = domain.Planner

// PlannerOption configures a Planner.
type PlannerOption = domain.Option

// SlotInput is a public alias for the slot fields accepted by AddSlot and UpdateSlot.
type SlotInput = domain.SlotInput

// ScheduleSlot is a public alias for a scheduled task.
type ScheduleSlot = domain.ScheduleSlot

// Note is a public alias for a note.
type Note = domain.Note

// MusicFile is a public alias for a playlist track.
type MusicFile = domain.MusicFile

// Upload is a public alias for a track handed to UploadMusic.
type Upload = domain.Upload

// Preferences is a public alias for the user preferences.
type Preferences = domain.Preferences

// Confirmer is a public alias for the confirmation collaborator.
type Confirmer = domain.Confirmer

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc = domain.ConfirmFunc

// Config is the optional .planner.yaml of a data directory.
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring storage.
type Option = platform.Option

// WithLogger sets the logger for the service and adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter selects the storage adapter by name ("fs", "sqlite" or "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithFormat selects the fs file format ("json" or "yaml").
func WithFormat(format string) Option {
	return platform.WithFormat(format)
}

// WithSerializer registers a custom fs serializer for an extension.
func WithSerializer(ext string, s fs.Serializer) Option {
	return platform.WithSerializer(ext, s)
}

// WithMustExist requires the data location to exist already.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithForceTemp forces the data directory into the dev sandbox.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the dev sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithEventBuffer sets the size of the event broker buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New opens storage at path and returns the document service.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init opens and initializes a repository explicitly.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// Open binds a Planner to the service and loads its state.
func Open(ctx context.Context, svc *core.Service, opts ...PlannerOption) *Planner {
	p := domain.New(svc, opts...)
	p.Load(ctx)
	return p
}

// --- Safety & Utils ---

// LoadConfig reads dir/.planner.yaml and applies PLANNER_* overrides.
func LoadConfig(dir string) (Config, error) {
	return platform.LoadConfig(dir)
}

// ResolveDataPath determines the actual data directory based on safety rules.
func ResolveDataPath(userPath string, forceTemp bool) string {
	return platform.ResolveDataPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindDataRoot looks upwards from startDir for a planner data directory.
func FindDataRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// DefaultDataDir returns the per-user planner directory.
func DefaultDataDir() (string, error) {
	return platform.DefaultDataDir()
}
