package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/planner/pkg/adapters/fs"
	"github.com/aretw0/planner/pkg/adapters/memory"
	"github.com/aretw0/planner/pkg/adapters/sqlite"
	"github.com/aretw0/planner/pkg/core"
)

// Init opens and initializes planner storage. The uri is adapter-specific:
// a data directory for "fs", a database file or directory for "sqlite",
// and ignored for "memory".
func Init(uri string, opts ...Option) (core.Repository, error) {
	o := applyOptions(opts)

	if o.repository != nil {
		return o.repository, nil
	}

	var repo core.Repository
	switch o.adapter {
	case AdapterFS:
		repo = initFS(uri, o)
	case AdapterSQLite:
		repo = sqlite.NewRepository(sqlite.Config{
			Path:     resolvePath(uri, o),
			ReadOnly: o.readOnly,
			Logger:   o.logger,
		})
	case AdapterMemory:
		repo = memory.NewRepository()
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func initFS(path string, o *options) core.Repository {
	return fs.NewRepository(fs.Config{
		Path:         resolvePath(path, o),
		Format:       o.format,
		MustExist:    o.mustExist,
		ReadOnly:     o.readOnly,
		Logger:       o.logger,
		ErrorHandler: o.errorHandler,
		Serializers:  o.serializers,
	})
}

// resolvePath applies the dev sandbox. Read-only access and an explicit
// WithDevSafety(false) bypass it.
func resolvePath(path string, o *options) string {
	bypassSafety := o.readOnly || !o.devSafety
	devRun := IsDevRun()
	useTemp := o.forceTemp || (devRun && !bypassSafety)
	resolved := ResolveDataPath(path, useTemp)

	if devRun {
		switch {
		case o.readOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolved)
		case bypassSafety:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		default:
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolved)
		}
	}
	if useTemp && resolved != path {
		o.logger.Warn("data redirected to sandbox", "original_path", path, "resolved_path", resolved)
	}
	return resolved
}
