package fs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/planner/pkg/core"
)

func TestJSONSerializer(t *testing.T) {
	s := NewJSONSerializer()

	t.Run("Top Level Keys Become Metadata", func(t *testing.T) {
		doc, err := s.Parse(strings.NewReader(`{"appName":"Planner","content":"body"}`))
		require.NoError(t, err)
		assert.Equal(t, core.Metadata{"appName": "Planner", "content": "body"}, doc.Metadata)
	})

	t.Run("Empty Object", func(t *testing.T) {
		doc, err := s.Parse(strings.NewReader(`{}`))
		require.NoError(t, err)
		assert.NotNil(t, doc.Metadata)
		assert.Empty(t, doc.Metadata)
	})

	t.Run("Serialize Writes Metadata Only", func(t *testing.T) {
		data, err := s.Serialize(core.Document{ID: "prefs", Metadata: core.Metadata{"theme": "pink"}})
		require.NoError(t, err)
		assert.JSONEq(t, `{"theme":"pink"}`, string(data))
	})

	t.Run("Invalid Input", func(t *testing.T) {
		_, err := s.Parse(strings.NewReader(`[1,2`))
		assert.Error(t, err)
	})
}

func TestYAMLSerializer(t *testing.T) {
	s := NewYAMLSerializer()

	data, err := s.Serialize(core.Document{
		Metadata: core.Metadata{
			"theme": "mint",
			"notes": []any{map[string]any{"title": "a", "content": "b"}},
		},
	})
	require.NoError(t, err)

	doc, err := s.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, "mint", doc.Metadata["theme"])

	notes, ok := doc.Metadata["notes"].([]any)
	require.True(t, ok)
	require.Len(t, notes, 1)
	assert.Equal(t, map[string]any{"title": "a", "content": "b"}, notes[0])
}
