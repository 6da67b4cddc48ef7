// Package loading drives the startup progress ramp.
package loading

import (
	"context"
	"time"
)

// Defaults of the startup ramp.
const (
	DefaultStep     = 2
	DefaultInterval = 50 * time.Millisecond
	DefaultSettle   = 500 * time.Millisecond
)

// Ramp raises progress from 0 to 100 in Step increments, one per Interval,
// and signals readiness Settle after reaching 100.
type Ramp struct {
	Step     int
	Interval time.Duration
	Settle   time.Duration
}

// New returns a Ramp with the default timings.
func New() *Ramp {
	return &Ramp{Step: DefaultStep, Interval: DefaultInterval, Settle: DefaultSettle}
}

// Run starts the ramp in a goroutine. onProgress, if non-nil, receives
// every value from 0 to 100 in order. The returned channel is closed once
// when the ramp is ready; cancelling ctx stops the ramp without closing it.
func (r *Ramp) Run(ctx context.Context, onProgress func(int)) <-chan struct{} {
	ready := make(chan struct{})
	go r.run(ctx, onProgress, ready)
	return ready
}

func (r *Ramp) run(ctx context.Context, onProgress func(int), ready chan<- struct{}) {
	step, interval, settle := r.Step, r.Interval, r.Settle
	if step <= 0 {
		step = DefaultStep
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	if settle < 0 {
		settle = 0
	}
	report := func(p int) {
		if onProgress != nil {
			onProgress(p)
		}
	}

	progress := 0
	report(progress)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for progress < 100 {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			progress = min(progress+step, 100)
			report(progress)
		}
	}
	ticker.Stop()

	timer := time.NewTimer(settle)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
		close(ready)
	}
}
