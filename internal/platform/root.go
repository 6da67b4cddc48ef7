package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigFileName marks a planner data directory.
const ConfigFileName = ".planner.yaml"

// ErrRootNotFound is returned by FindRoot when no marker is found.
var ErrRootNotFound = errors.New("planner root not found")

// FindRoot walks upwards from startDir looking for a planner data directory.
// Indicators are: a .planner.yaml file, a .planner directory, or a
// persisted schedule-planner-data document.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, ConfigFileName) || hasFile(dir, ".planner") ||
			hasFile(dir, "schedule-planner-data.json") || hasFile(dir, "schedule-planner-data.yaml") {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrRootNotFound
}

// DefaultDataDir returns the per-user planner directory
// (e.g. ~/.config/planner on Linux).
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "planner"), nil
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
