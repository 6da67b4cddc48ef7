// Package planner implements the weekly planner domain: schedule slots on a
// seven-day board, notes, a small music playlist and user preferences.
//
// State lives in two persisted documents, each managed by a typed.Store:
//
//   - DataKey ("schedule-planner-data") holds AppData: slots, music files
//     and preferences.
//   - NotesKey ("aesthetic-planner-notes") holds the notes collection.
//
// Every mutation rewrites its whole document. Validation failures return
// sentinel errors and leave state untouched; destructive operations ask a
// Confirmer first.
package planner
