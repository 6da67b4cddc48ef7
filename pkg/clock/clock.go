// Package clock renders the live clock shown on the home view.
package clock

import (
	"context"
	"time"
)

// Display layouts.
const (
	TimeLayout = "03:04:05 PM"
	DateLayout = "Monday, January 2, 2006"
)

// FormatTime renders t as a 12-hour time with seconds.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// FormatDate renders t as a long date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Clock ticks a callback with the current time.
type Clock struct {
	Interval time.Duration
	Now      func() time.Time
}

// New returns a Clock ticking every second on local time.
func New() *Clock {
	return &Clock{Interval: time.Second, Now: time.Now}
}

// Run calls fn immediately and then once per interval until ctx is done.
// It blocks and always returns ctx.Err().
func (c *Clock) Run(ctx context.Context, fn func(time.Time)) error {
	interval := c.Interval
	if interval <= 0 {
		interval = time.Second
	}
	now := c.Now
	if now == nil {
		now = time.Now
	}

	fn(now())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fn(now())
		}
	}
}
