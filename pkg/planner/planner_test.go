package planner_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/planner/pkg/adapters/memory"
	"github.com/aretw0/planner/pkg/core"
	"github.com/aretw0/planner/pkg/planner"
)

var fixedNow = time.Date(2024, time.March, 11, 9, 30, 0, 0, time.UTC) // a Monday

type recorder struct {
	mu   sync.Mutex
	days []string
}

func (r *recorder) Celebrate(day string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.days = append(r.days, day)
}

func (r *recorder) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.days...)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newPlanner(t *testing.T, opts ...planner.Option) (*planner.Planner, *memory.Repository) {
	t.Helper()
	repo := memory.NewRepository()
	base := []planner.Option{
		planner.WithClock(func() time.Time { return fixedNow }),
		planner.WithIDGenerator(sequentialIDs()),
	}
	p := planner.New(core.NewService(repo), append(base, opts...)...)
	p.Load(context.Background())
	return p, repo
}

func TestPlanner_LoadDefaults(t *testing.T) {
	p, _ := newPlanner(t)
	data := p.Data(context.Background())

	assert.Empty(t, data.Slots)
	assert.Empty(t, data.MusicFiles)
	assert.Equal(t, "pink", data.Theme)
	assert.False(t, data.DarkMode)
	assert.Equal(t, "", data.CustomQuote)
	assert.Equal(t, "Schedule Planner", data.AppName)
	assert.Empty(t, p.Notes(context.Background()))
}

func TestPlanner_StatePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	p, repo := newPlanner(t)

	_, err := p.AddSlot(ctx, planner.SlotInput{Day: "Monday", StartTime: "09:00", EndTime: "10:00", Topic: "Math"})
	require.NoError(t, err)
	_, err = p.CreateNote(ctx, "Groceries", "milk")
	require.NoError(t, err)
	require.NoError(t, p.SetAppName(ctx, "My Week"))

	reopened := planner.New(core.NewService(repo))
	reopened.Load(ctx)

	assert.Len(t, reopened.Slots(ctx), 1)
	assert.Equal(t, "My Week", reopened.Data(ctx).AppName)
	notes := reopened.Notes(ctx)
	require.Len(t, notes, 1)
	assert.True(t, fixedNow.Equal(notes[0].CreatedAt))
}

func TestPlanner_WriteFailureKeepsMemoryAuthoritative(t *testing.T) {
	ctx := context.Background()
	p, repo := newPlanner(t)
	repo.FailWrites = true

	slot, err := p.AddSlot(ctx, planner.SlotInput{Day: "Friday", StartTime: "08:00", EndTime: "09:00", Topic: "Run"})
	require.NoError(t, err)

	_, ok := p.Slot(ctx, slot.ID)
	assert.True(t, ok)
	assert.Error(t, p.PersistErr())
}

func TestPlanner_Navigate(t *testing.T) {
	p, _ := newPlanner(t)
	assert.Equal(t, planner.ViewHome, p.View())

	require.NoError(t, p.Navigate(planner.ViewNotes))
	assert.Equal(t, planner.ViewNotes, p.View())

	err := p.Navigate(planner.View("settings"))
	assert.ErrorIs(t, err, planner.ErrUnknownView)
	assert.Equal(t, planner.ViewNotes, p.View())
}

func TestPlanner_DefaultIDsAreUniqueAndOrdered(t *testing.T) {
	ctx := context.Background()
	p := planner.New(core.NewService(memory.NewRepository()))

	seen := make(map[string]bool)
	var last string
	for i := 0; i < 50; i++ {
		slot, err := p.AddSlot(ctx, planner.SlotInput{Day: "Monday", StartTime: "09:00", EndTime: "10:00", Topic: "x"})
		require.NoError(t, err)
		assert.False(t, seen[slot.ID], "duplicate id %s", slot.ID)
		seen[slot.ID] = true
		assert.Greater(t, slot.ID, last)
		last = slot.ID
	}
}
