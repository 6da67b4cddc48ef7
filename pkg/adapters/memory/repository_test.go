package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/planner/pkg/adapters/memory"
	"github.com/aretw0/planner/pkg/core"
)

func TestRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()

	require.NoError(t, repo.Save(ctx, core.Document{ID: "b", Metadata: core.Metadata{"n": 1}}))
	require.NoError(t, repo.Save(ctx, core.Document{ID: "a"}))

	doc, err := repo.Get(ctx, "b")
	require.NoError(t, err)
	doc.Metadata["n"] = 2

	again, err := repo.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Metadata["n"], "stored documents are isolated from callers")

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)

	require.NoError(t, repo.Delete(ctx, "a"))
	require.NoError(t, repo.Delete(ctx, "a"))
	_, err = repo.Get(ctx, "a")
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.ErrorIs(t, repo.Save(ctx, core.Document{}), core.ErrEmptyID)
	assert.Equal(t, memory.RepositoryState{Documents: 1}, repo.State())
}

func TestRepository_FailWrites(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	repo.FailWrites = true

	assert.Error(t, repo.Save(ctx, core.Document{ID: "x"}))
	assert.Error(t, repo.Delete(ctx, "x"))
}

func TestRepository_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	repo := memory.NewRepository()

	events, err := repo.Watch(ctx, "schedule-*")
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, core.Document{ID: "notes"}))
	require.NoError(t, repo.Save(ctx, core.Document{ID: "schedule-planner-data"}))
	require.NoError(t, repo.Save(ctx, core.Document{ID: "schedule-planner-data"}))
	require.NoError(t, repo.Delete(ctx, "schedule-planner-data"))

	var got []core.EventType
	for i := 0; i < 3; i++ {
		select {
		case e := <-events:
			assert.Equal(t, "schedule-planner-data", e.ID)
			got = append(got, e.Type)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
	assert.Equal(t, []core.EventType{core.EventCreate, core.EventModify, core.EventDelete}, got)

	cancel()
	select {
	case _, ok := <-events:
		assert.False(t, ok, "channel closes after cancel")
	case <-time.After(time.Second):
		t.Fatal("channel not closed")
	}

	_, err = repo.Watch(context.Background(), "[")
	assert.Error(t, err)
}
