package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/planner/pkg/core"
)

func TestSource_FiltersAndForwards(t *testing.T) {
	upstream := make(chan core.Event, 3)
	upstream <- core.Event{Type: core.EventCreate, ID: "a"}
	upstream <- core.Event{Type: core.EventModify, ID: "b"}
	upstream <- core.Event{Type: core.EventDelete, ID: "c"}
	close(upstream)

	src := NewSource(upstream, core.EventModify, core.EventDelete)
	require.NoError(t, src.Start(context.Background()))

	var got []string
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e, ok := <-src.Events():
			if !ok {
				assert.Equal(t, []string{"MODIFY b", "DELETE c"}, got)
				assert.EqualValues(t, 2, src.Forwarded())
				return
			}
			got = append(got, e.String())
		case <-timeout:
			t.Fatal("source did not close")
		}
	}
}

func TestSource_StopsOnCancel(t *testing.T) {
	upstream := make(chan core.Event)
	ctx, cancel := context.WithCancel(context.Background())

	src := NewSource(upstream)
	require.NoError(t, src.Start(ctx))
	cancel()

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("source did not close after cancel")
	}
}
