package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindRoot(t *testing.T) {
	// /tmp/
	//   data/ (.planner.yaml)
	//     subdir/
	//       nested/
	//   legacy/ (schedule-planner-data.json)
	//   empty/

	baseDir := t.TempDir()
	dataDir := filepath.Join(baseDir, "data")
	subDir := filepath.Join(dataDir, "subdir")
	nestedDir := filepath.Join(subDir, "nested")
	legacyDir := filepath.Join(baseDir, "legacy")
	emptyDir := filepath.Join(baseDir, "empty")

	for _, dir := range []string{nestedDir, legacyDir, emptyDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dataDir, ConfigFileName), []byte("format: yaml\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(legacyDir, "schedule-planner-data.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		startPath string
		wantRoot  string
		wantErr   bool
	}{
		{
			name:      "Start at Root",
			startPath: dataDir,
			wantRoot:  dataDir,
		},
		{
			name:      "Start in Subdir",
			startPath: subDir,
			wantRoot:  dataDir,
		},
		{
			name:      "Start Nested Deeply",
			startPath: nestedDir,
			wantRoot:  dataDir,
		},
		{
			name:      "Data Document Marks Root",
			startPath: legacyDir,
			wantRoot:  legacyDir,
		},
		{
			name:      "No Root Found",
			startPath: emptyDir,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("FindRoot() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if got != "" && filepath.Clean(got) != filepath.Clean(tt.wantRoot) {
				t.Errorf("FindRoot() = %v, want %v", got, tt.wantRoot)
			}
		})
	}
}
