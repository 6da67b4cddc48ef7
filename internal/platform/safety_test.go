package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDevExecutable(t *testing.T) {
	tmp := os.TempDir()
	assert.True(t, isDevExecutable(filepath.Join(tmp, "go-build123", "exe", "planner"), tmp))
	assert.True(t, isDevExecutable("/home/me/platform.test", tmp))
	assert.False(t, isDevExecutable("/usr/local/bin/planner", "/tmp"))
}

func TestIsDevRun_UnderGoTest(t *testing.T) {
	assert.True(t, IsDevRun())
}

func TestResolveDataPath(t *testing.T) {
	sandbox := filepath.Join(os.TempDir(), DevDirName)
	inTemp := filepath.Join(t.TempDir(), "data")

	tests := []struct {
		name      string
		path      string
		forceTemp bool
		want      string
	}{
		{"no sandbox keeps path", "/srv/planner", false, "/srv/planner"},
		{"no sandbox empty path", "", false, "."},
		{"sandbox reroots by base name", "/home/me/planner", true, filepath.Join(sandbox, "planner")},
		{"sandbox default name", ".", true, filepath.Join(sandbox, "default")},
		{"paths under temp are trusted", inTemp, true, inTemp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDataPath(tt.path, tt.forceTemp))
		})
	}
}
