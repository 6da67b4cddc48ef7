package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/planner/pkg/core"
)

func newTestRepo(t *testing.T, format string) *Repository {
	t.Helper()
	repo := NewRepository(Config{Path: filepath.Join(t.TempDir(), "data"), Format: format})
	require.NoError(t, repo.Initialize(context.Background()))
	return repo
}

func TestRepository_SaveGet(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			repo := newTestRepo(t, format)
			ctx := context.Background()

			doc := core.Document{
				ID: "schedule-planner-data",
				Metadata: core.Metadata{
					"theme":    "pink",
					"darkMode": true,
					"slots":    []any{map[string]any{"id": "a", "day": "Monday"}},
				},
			}
			require.NoError(t, repo.Save(ctx, doc))

			_, err := os.Stat(filepath.Join(repo.Path, "schedule-planner-data."+format))
			require.NoError(t, err)

			got, err := repo.Get(ctx, "schedule-planner-data")
			require.NoError(t, err)
			assert.Equal(t, "schedule-planner-data", got.ID)
			assert.Equal(t, "pink", got.Metadata["theme"])
			assert.Equal(t, true, got.Metadata["darkMode"])
			assert.Len(t, got.Metadata["slots"], 1)
		})
	}
}

func TestRepository_GetMissing(t *testing.T) {
	repo := newTestRepo(t, "json")

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_GetMalformed(t *testing.T) {
	repo := newTestRepo(t, "json")
	require.NoError(t, os.WriteFile(filepath.Join(repo.Path, "broken.json"), []byte("{not json"), 0644))

	_, err := repo.Get(context.Background(), "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_FormatSwitchKeepsDataReadable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	ctx := context.Background()

	jsonRepo := NewRepository(Config{Path: dir, Format: "json"})
	require.NoError(t, jsonRepo.Initialize(ctx))
	require.NoError(t, jsonRepo.Save(ctx, core.Document{ID: "prefs", Metadata: core.Metadata{"theme": "blue"}}))

	yamlRepo := NewRepository(Config{Path: dir, Format: "yaml"})
	require.NoError(t, yamlRepo.Initialize(ctx))

	got, err := yamlRepo.Get(ctx, "prefs")
	require.NoError(t, err)
	assert.Equal(t, "blue", got.Metadata["theme"])

	// Saving in the new format removes the stale JSON copy.
	require.NoError(t, yamlRepo.Save(ctx, got))
	_, err = os.Stat(filepath.Join(dir, "prefs.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestRepository_ListAndDelete(t *testing.T) {
	repo := newTestRepo(t, "json")
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, core.Document{ID: "b", Metadata: core.Metadata{"n": 2}}))
	require.NoError(t, repo.Save(ctx, core.Document{ID: "a", Metadata: core.Metadata{"content": "hello"}}))
	require.NoError(t, os.WriteFile(filepath.Join(repo.Path, ".planner.yaml"), []byte("format: json\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(repo.Path, TempFilePrefix+"x"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(repo.Path, "notes.txt"), []byte("ignored"), 0644))

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "hello", docs[0].Metadata["content"])
	assert.Equal(t, "b", docs[1].ID)

	require.NoError(t, repo.Delete(ctx, "a"))
	require.NoError(t, repo.Delete(ctx, "a"), "deleting an absent ID is a no-op")

	docs, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestRepository_InvalidIDs(t *testing.T) {
	repo := newTestRepo(t, "json")
	ctx := context.Background()

	for _, id := range []string{"", "..", "../escape", `a\b`, TempFilePrefix + "doc"} {
		assert.Error(t, repo.Save(ctx, core.Document{ID: id}), "id %q", id)
	}
}

func TestRepository_ReadOnly(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(Config{Path: dir, ReadOnly: true})
	ctx := context.Background()
	require.NoError(t, repo.Initialize(ctx))

	assert.ErrorIs(t, repo.Save(ctx, core.Document{ID: "x"}), core.ErrReadOnly)
	assert.ErrorIs(t, repo.Delete(ctx, "x"), core.ErrReadOnly)

	state := repo.State().(RepositoryState)
	assert.True(t, state.ReadOnly)
	assert.Equal(t, []string{".json", ".yaml", ".yml"}, state.Serializers)
}

func TestRepository_MustExist(t *testing.T) {
	repo := NewRepository(Config{Path: filepath.Join(t.TempDir(), "missing"), MustExist: true})
	assert.Error(t, repo.Initialize(context.Background()))
}

func TestRepository_UnsupportedFormat(t *testing.T) {
	repo := NewRepository(Config{Path: t.TempDir(), Format: "toml"})
	assert.Error(t, repo.Initialize(context.Background()))
	assert.Error(t, repo.Save(context.Background(), core.Document{ID: "x"}))
}
