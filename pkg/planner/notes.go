package planner

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// NoteTimeLayout is how note timestamps are shown.
const NoteTimeLayout = "Jan 2, 2006, 03:04 PM"

// FormatNoteTime renders a note timestamp in local time.
func FormatNoteTime(t time.Time) string {
	return t.Local().Format(NoteTimeLayout)
}

func normalizeNote(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return "", "", fmt.Errorf("%w: title and content are required", ErrInvalidNote)
	}
	return title, content, nil
}

// CreateNote prepends a new note stamped with the current time.
func (p *Planner) CreateNote(ctx context.Context, title, content string) (Note, error) {
	title, content, err := normalizeNote(title, content)
	if err != nil {
		return Note{}, err
	}

	now := p.now().UTC()
	note := Note{
		ID:         p.newID(),
		Title:      title,
		Content:    content,
		CreatedAt:  now,
		LastEdited: now,
	}
	p.notes.Mutate(ctx, func(d NotesData) NotesData {
		d.Notes = append([]Note{note}, d.Notes...)
		return d
	})
	p.logger.Debug("note created", "id", note.ID)
	return note, nil
}

// UpdateNote replaces title and content of an existing note and refreshes
// LastEdited. CreatedAt and the note's position are kept.
func (p *Planner) UpdateNote(ctx context.Context, id, title, content string) (Note, error) {
	title, content, err := normalizeNote(title, content)
	if err != nil {
		return Note{}, err
	}

	var updated Note
	found := false
	now := p.now().UTC()
	p.notes.Mutate(ctx, func(d NotesData) NotesData {
		for i := range d.Notes {
			if d.Notes[i].ID == id {
				d.Notes[i].Title = title
				d.Notes[i].Content = content
				d.Notes[i].LastEdited = now
				updated = d.Notes[i]
				found = true
			}
		}
		return d
	})
	if !found {
		return Note{}, fmt.Errorf("%s: %w", id, ErrNoteNotFound)
	}
	return updated, nil
}

// DeleteNote removes a note after the confirmer agrees.
func (p *Planner) DeleteNote(ctx context.Context, id string, c Confirmer) error {
	if _, ok := p.Note(ctx, id); !ok {
		return fmt.Errorf("%s: %w", id, ErrNoteNotFound)
	}
	if !confirmed(c, PromptDeleteNote) {
		return ErrCancelled
	}
	p.notes.Mutate(ctx, func(d NotesData) NotesData {
		out := make([]Note, 0, len(d.Notes))
		for _, n := range d.Notes {
			if n.ID != id {
				out = append(out, n)
			}
		}
		d.Notes = out
		return d
	})
	return nil
}

// Notes returns all notes, newest created first.
func (p *Planner) Notes(ctx context.Context) []Note {
	return p.notes.Get(ctx).Notes
}

// Note looks a note up by id.
func (p *Planner) Note(ctx context.Context, id string) (Note, bool) {
	for _, n := range p.notes.Get(ctx).Notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}
