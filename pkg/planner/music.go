package planner

import (
	"context"
	"fmt"
	"strings"
)

// MaxMusicFiles caps the playlist length.
const MaxMusicFiles = 5

// Upload is a track handed over by the upload collaborator.
type Upload struct {
	Name string
	URL  string
}

// UploadMusic appends uploads to the playlist until it holds MaxMusicFiles
// tracks. Uploads beyond the remaining capacity are dropped. ErrPlaylistFull
// is returned only when none could be added.
func (p *Planner) UploadMusic(ctx context.Context, uploads []Upload) ([]MusicFile, error) {
	var accepted []MusicFile
	for _, u := range uploads {
		if strings.TrimSpace(u.Name) == "" || strings.TrimSpace(u.URL) == "" {
			return nil, fmt.Errorf("%w: name and URL are required", ErrInvalidUpload)
		}
	}
	if len(uploads) == 0 {
		return []MusicFile{}, nil
	}

	p.data.Mutate(ctx, func(d AppData) AppData {
		room := MaxMusicFiles - len(d.MusicFiles)
		for _, u := range uploads {
			if room <= 0 {
				break
			}
			f := MusicFile{ID: p.newID(), Name: strings.TrimSpace(u.Name), URL: strings.TrimSpace(u.URL)}
			d.MusicFiles = append(d.MusicFiles, f)
			accepted = append(accepted, f)
			room--
		}
		return d
	})

	if len(accepted) == 0 {
		return nil, fmt.Errorf("%w: at most %d tracks", ErrPlaylistFull, MaxMusicFiles)
	}
	if dropped := len(uploads) - len(accepted); dropped > 0 {
		p.logger.Warn("playlist full, uploads dropped", "dropped", dropped)
	}
	return accepted, nil
}

// RemoveMusic deletes a track. It reports whether a track was removed.
func (p *Planner) RemoveMusic(ctx context.Context, id string) bool {
	removed := false
	p.data.Mutate(ctx, func(d AppData) AppData {
		out := make([]MusicFile, 0, len(d.MusicFiles))
		for _, f := range d.MusicFiles {
			if f.ID == id {
				removed = true
				continue
			}
			out = append(out, f)
		}
		d.MusicFiles = out
		return d
	})
	return removed
}

// MusicFiles returns the playlist in upload order.
func (p *Planner) MusicFiles(ctx context.Context) []MusicFile {
	return p.data.Get(ctx).MusicFiles
}
