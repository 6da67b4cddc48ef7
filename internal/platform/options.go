package platform

import (
	"log/slog"

	"github.com/aretw0/planner/pkg/adapters/fs"
	"github.com/aretw0/planner/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterSQLite = "sqlite"
	AdapterMemory = "memory"
)

// options holds the internal configuration for opening planner storage.
type options struct {
	repository   core.Repository
	logger       *slog.Logger
	adapter      string
	format       string
	mustExist    bool
	readOnly     bool
	forceTemp    bool
	devSafety    bool
	eventBuffer  int
	errorHandler func(error)
	serializers  map[string]fs.Serializer
}

// Option defines a functional option for configuring planner storage.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		adapter:     AdapterFS,
		devSafety:   true,
		serializers: make(map[string]fs.Serializer),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// WithLogger sets the logger for the service and adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository injects a storage adapter. The adapter option is ignored.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter selects the storage adapter by name ("fs", "sqlite" or "memory").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		if name != "" {
			o.adapter = name
		}
	}
}

// WithFormat selects the file format of the fs adapter ("json" or "yaml").
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithSerializer registers a custom fs serializer for an extension.
func WithSerializer(ext string, s fs.Serializer) Option {
	return func(o *options) {
		o.serializers[ext] = s
	}
}

// WithMustExist requires the data location to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Save and Delete return core.ErrReadOnly.
// 2. Directory creation and temp-file sweeping are skipped.
// 3. The dev sandbox is bypassed, so the real path is read.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithForceTemp forces the data directory into the dev sandbox.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox applied when running via `go run` or
// `go test`. By default (true) data is redirected into a temporary directory.
//
// CAUTION: disabling it lets development builds write to real planner data.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithEventBuffer sets the size of the service's watch broker buffer.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures
// (e.g. permission denied) which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
