package clock_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/aretw0/planner/pkg/clock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFormat(t *testing.T) {
	ts := time.Date(2024, time.March, 11, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "02:05:09 PM", clock.FormatTime(ts))
	assert.Equal(t, "Monday, March 11, 2024", clock.FormatDate(ts))

	midnight := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "12:00:00 AM", clock.FormatTime(midnight))
}

func TestRun_TicksUntilCancelled(t *testing.T) {
	c := &clock.Clock{Interval: 5 * time.Millisecond, Now: time.Now}
	ctx, cancel := context.WithCancel(context.Background())

	var ticks atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- c.Run(ctx, func(time.Time) {
			if ticks.Add(1) == 3 {
				cancel()
			}
		})
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("clock did not stop after cancel")
	}
	assert.GreaterOrEqual(t, ticks.Load(), int32(3))
}

func TestRun_CallsImmediately(t *testing.T) {
	c := &clock.Clock{Interval: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())

	var calls int
	err := c.Run(ctx, func(time.Time) {
		calls++
		cancel()
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
