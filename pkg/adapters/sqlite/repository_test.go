package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/planner/pkg/core"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo := NewRepository(Config{Path: filepath.Join(t.TempDir(), "planner.db")})
	require.NoError(t, repo.Initialize(context.Background()))
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepository_CRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	doc := core.Document{
		ID:       "schedule-planner-data",
		Metadata: core.Metadata{"theme": "pink", "slots": []any{}},
	}
	require.NoError(t, repo.Save(ctx, doc))

	got, err := repo.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "pink", got.Metadata["theme"])

	// Upsert replaces the body.
	doc.Metadata["theme"] = "lavender"
	require.NoError(t, repo.Save(ctx, doc))
	got, err = repo.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "lavender", got.Metadata["theme"])

	require.NoError(t, repo.Save(ctx, core.Document{ID: "aesthetic-planner-notes", Metadata: core.Metadata{"content": "x"}}))
	docs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "aesthetic-planner-notes", docs[0].ID)
	assert.Equal(t, "x", docs[0].Metadata["content"])

	require.NoError(t, repo.Delete(ctx, doc.ID))
	_, err = repo.Get(ctx, doc.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	state := repo.State().(RepositoryState)
	assert.True(t, state.Open)
	assert.Equal(t, 1, state.Documents)
}

func TestRepository_DirectoryPath(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(Config{Path: dir})
	require.NoError(t, repo.Initialize(context.Background()))
	defer repo.Close()

	assert.Equal(t, filepath.Join(dir, DefaultFileName), repo.State().(RepositoryState).Path)
}

func TestRepository_NotInitialized(t *testing.T) {
	repo := NewRepository(Config{Path: filepath.Join(t.TempDir(), "x.db")})
	assert.Error(t, repo.Save(context.Background(), core.Document{ID: "a"}))
}

func TestRepository_ReadOnly(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "planner.db")

	writer := NewRepository(Config{Path: path})
	require.NoError(t, writer.Initialize(ctx))
	require.NoError(t, writer.Save(ctx, core.Document{ID: "schedule-planner-data", Metadata: core.Metadata{"theme": "mint"}}))
	require.NoError(t, writer.Close())

	repo := NewRepository(Config{Path: path, ReadOnly: true})
	require.NoError(t, repo.Initialize(ctx))
	defer repo.Close()

	got, err := repo.Get(ctx, "schedule-planner-data")
	require.NoError(t, err)
	assert.Equal(t, "mint", got.Metadata["theme"])

	assert.ErrorIs(t, repo.Save(ctx, core.Document{ID: "x"}), core.ErrReadOnly)
	assert.ErrorIs(t, repo.Delete(ctx, "schedule-planner-data"), core.ErrReadOnly)

	_, err = repo.db.ExecContext(ctx, `DELETE FROM documents`)
	assert.Error(t, err, "the connection itself is read-only")
}

func TestRepository_ReadOnlyMissingFile(t *testing.T) {
	repo := NewRepository(Config{Path: filepath.Join(t.TempDir(), "absent.db"), ReadOnly: true})
	assert.Error(t, repo.Initialize(context.Background()))
}
