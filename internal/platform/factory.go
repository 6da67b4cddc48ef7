package platform

import (
	"github.com/aretw0/planner/pkg/core"
)

// New opens storage and wraps it in a core.Service.
//
//	svc, err := platform.New("./data", platform.WithAdapter("sqlite"))
func New(uri string, opts ...Option) (*core.Service, error) {
	repo, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	o := applyOptions(opts)
	return core.NewService(repo,
		core.WithEventBufferSize(o.eventBuffer),
		core.WithServiceLogger(o.logger),
	), nil
}
