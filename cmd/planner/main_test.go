package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/aretw0/planner/pkg/planner"
)

// resetFlags restores every flag to its default so executions don't leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

type cli struct {
	t   *testing.T
	dir string
}

func newCLI(t *testing.T) *cli {
	return &cli{t: t, dir: t.TempDir()}
}

func (c *cli) runWithInput(stdin string, args ...string) string {
	c.t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--data-dir", c.dir}, args...))
	require.NoError(c.t, rootCmd.Execute(), out.String())
	return out.String()
}

func (c *cli) run(args ...string) string {
	c.t.Helper()
	return c.runWithInput("", args...)
}

func (c *cli) slots() []domain.ScheduleSlot {
	c.t.Helper()
	var slots []domain.ScheduleSlot
	require.NoError(c.t, json.Unmarshal([]byte(c.run("slot", "list", "--json")), &slots))
	return slots
}

func TestCLI_SlotLifecycle(t *testing.T) {
	c := newCLI(t)

	out := c.run("slot", "add", "--day", "monday", "--start", "09:00", "--end", "10:00", "--topic", "Math")
	assert.Contains(t, out, "Added [ ] Monday")

	slots := c.slots()
	require.Len(t, slots, 1)
	assert.Equal(t, "Math", slots[0].Topic)

	out = c.run("slot", "done", slots[0].ID)
	assert.Contains(t, out, "[x] Monday")
	assert.Contains(t, out, "Monday is complete!")

	c.run("slot", "update", slots[0].ID, "--topic", "Physics")
	slots = c.slots()
	require.Len(t, slots, 1)
	assert.Equal(t, "Physics", slots[0].Topic)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.True(t, slots[0].Completed)

	out = c.run("board")
	assert.Contains(t, out, "Schedule Planner")
	assert.Contains(t, out, "Monday (1/1) - all done!")
	assert.Contains(t, out, "Sunday (0/0)")
	assert.Equal(t, 1, strings.Count(out, "Monday is complete!"), "complete days are celebrated when shown")

	out = c.runWithInput("n\n", "slot", "edit", slots[0].ID)
	assert.Contains(t, out, domain.PromptEditSlot)
	assert.Contains(t, out, "Cancelled")
	assert.Len(t, c.slots(), 1)

	c.run("slot", "edit", slots[0].ID, "--yes")
	assert.Empty(t, c.slots())

	_, err := os.Stat(filepath.Join(c.dir, domain.DataKey+".json"))
	assert.NoError(t, err)
}

func TestCLI_Notes(t *testing.T) {
	c := newCLI(t)

	c.run("note", "create", "--title", "Groceries", "--content", "milk, eggs")
	out := c.run("note", "list")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "milk, eggs")

	var notes []domain.Note
	require.NoError(t, json.Unmarshal([]byte(c.run("note", "list", "--json")), &notes))
	require.Len(t, notes, 1)

	c.run("note", "edit", notes[0].ID, "--content", "milk")
	out = c.runWithInput("y\n", "note", "delete", notes[0].ID)
	assert.Contains(t, out, domain.PromptDeleteNote)
	assert.Contains(t, c.run("note", "list"), "No notes yet")
}

func TestCLI_Music(t *testing.T) {
	c := newCLI(t)

	out := c.run("music", "add", "a.mp3", "b.mp3")
	assert.Contains(t, out, "Added a.mp3")
	assert.Contains(t, c.run("music", "list"), "2/5 tracks")

	out = c.run("music", "next")
	assert.Contains(t, out, "b.mp3")
	assert.Contains(t, out, "file://")
}

func TestCLI_Preferences(t *testing.T) {
	c := newCLI(t)

	out := c.run("prefs", "set", "--name", "Exam Prep", "--dark")
	assert.Contains(t, out, "classes: theme-pink dark")

	out = c.run("prefs", "show")
	assert.Contains(t, out, "Exam Prep")
	assert.Contains(t, out, "theme-pink dark")

	var prefs domain.Preferences
	require.NoError(t, json.Unmarshal([]byte(c.run("prefs", "show", "--json")), &prefs))
	assert.Equal(t, domain.Preferences{Theme: "pink", DarkMode: true, AppName: "Exam Prep"}, prefs)
}

func TestCLI_CalendarAndClock(t *testing.T) {
	c := newCLI(t)

	out := c.run("calendar", "--month", "2024-08")
	assert.Contains(t, out, "August 2024")
	assert.Contains(t, out, "15 Independence Day")
	assert.Contains(t, out, "  15!")

	out = c.run("clock", "--once")
	assert.Regexp(t, `\d\d:\d\d:\d\d [AP]M`, out)
}

func TestCLI_InitAndStatus(t *testing.T) {
	c := newCLI(t)

	c.run("init", c.dir, "--format", "yaml")
	_, err := os.Stat(filepath.Join(c.dir, ".planner.yaml"))
	require.NoError(t, err)

	c.run("slot", "add", "--day", "Friday", "--start", "08:00", "--end", "09:00", "--topic", "Run")
	_, err = os.Stat(filepath.Join(c.dir, domain.DataKey+".yaml"))
	assert.NoError(t, err, "format from .planner.yaml is honoured")

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(c.run("status")), &report))
	assert.Equal(t, float64(1), report["slots"])
	assert.Equal(t, []any{domain.DataKey}, report["documents"])
	storage, ok := report["storage"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "yaml", storage["format"])
}

func TestCLI_Version(t *testing.T) {
	c := newCLI(t)
	assert.Contains(t, c.run("version"), "planner version 0.1.0")
}
