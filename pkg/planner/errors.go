package planner

import "errors"

var (
	// ErrInvalidSlot is returned when a slot field is empty or malformed.
	ErrInvalidSlot = errors.New("invalid schedule slot")
	// ErrSlotNotFound is returned when no slot has the requested ID.
	ErrSlotNotFound = errors.New("schedule slot not found")
	// ErrInvalidNote is returned when a note title or content is empty.
	ErrInvalidNote = errors.New("invalid note")
	// ErrNoteNotFound is returned when no note has the requested ID.
	ErrNoteNotFound = errors.New("note not found")
	// ErrPlaylistFull is returned when an upload cannot add any track.
	ErrPlaylistFull = errors.New("playlist is full")
	// ErrInvalidUpload is returned when an upload lacks a name or URL.
	ErrInvalidUpload = errors.New("invalid music upload")
	// ErrInvalidPreference is returned for empty or oversized preference values.
	ErrInvalidPreference = errors.New("invalid preference")
	// ErrCancelled is returned when the user declines a confirmation.
	ErrCancelled = errors.New("operation cancelled")
	// ErrUnknownView is returned by Navigate for an unsupported view.
	ErrUnknownView = errors.New("unknown view")
)
