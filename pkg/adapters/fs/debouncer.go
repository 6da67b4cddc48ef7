package fs

import (
	"sync"
	"time"

	"github.com/aretw0/planner/pkg/core"
)

// debouncer coalesces bursts of events per document ID. Editors and the
// atomic rename in writeFileAtomic both produce several fsnotify events for
// a single logical change; only the last one within the window is emitted.
type debouncer struct {
	window  time.Duration
	mu      sync.Mutex
	timers  map[string]*time.Timer
	wg      sync.WaitGroup
	stopped bool
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window: window,
		timers: make(map[string]*time.Timer),
	}
}

func (d *debouncer) add(e core.Event, emit func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if t, ok := d.timers[e.ID]; ok && t.Stop() {
		// The pending timer will never fire; release its slot.
		d.wg.Done()
	}

	d.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(d.window, func() {
		defer d.wg.Done()
		// add still holds d.mu while timer is assigned.
		d.mu.Lock()
		if d.timers[e.ID] == timer {
			delete(d.timers, e.ID)
		}
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			emit(e)
		}
	})
	d.timers[e.ID] = timer
}

// stopAndWait rejects new events, cancels pending ones and waits up to
// timeout for callbacks already running.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for id, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, id)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
