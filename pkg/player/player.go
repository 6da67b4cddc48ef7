// Package player drives playback of the planner playlist. Playback state
// (current track, volume, shuffle, loop) is session-only and never persisted.
package player

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/aretw0/planner/pkg/planner"
)

// DefaultVolume is the volume of a fresh player.
const DefaultVolume = 0.7

// ErrUnknownTrack is returned by Select for an id not in the playlist.
var ErrUnknownTrack = errors.New("track not in playlist")

// Playback is the audio sink the player controls.
type Playback interface {
	Load(url string) error
	Play() error
	Pause()
	SeekStart()
	SetVolume(v float64)
}

// Player selects tracks and forwards commands to a Playback.
type Player struct {
	playback Playback
	intn     func(n int) int
	logger   *slog.Logger

	mu      sync.Mutex
	tracks  []planner.MusicFile
	current int
	playing bool
	shuffle bool
	loop    bool
	volume  float64
}

// Option configures a Player.
type Option func(*Player)

// WithRandom replaces the source of shuffle indexes; intn must return a
// value in [0,n).
func WithRandom(intn func(n int) int) Option {
	return func(p *Player) {
		p.intn = intn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Player) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a stopped player with the default volume.
func New(playback Playback, opts ...Option) *Player {
	p := &Player{
		playback: playback,
		intn:     rand.IntN,
		logger:   slog.Default(),
		volume:   DefaultVolume,
	}
	for _, opt := range opts {
		opt(p)
	}
	playback.SetVolume(p.volume)
	return p
}

// SetPlaylist replaces the tracks. If the current track survives, it stays
// current. Otherwise the index is clamped into range and the new current
// track is loaded. An empty playlist stops playback.
func (p *Player) SetPlaylist(tracks []planner.MusicFile) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var prevID string
	if p.current < len(p.tracks) {
		prevID = p.tracks[p.current].ID
	}
	p.tracks = append([]planner.MusicFile(nil), tracks...)

	if len(p.tracks) == 0 {
		p.current = 0
		if p.playing {
			p.playback.Pause()
			p.playing = false
		}
		return nil
	}

	for i, t := range p.tracks {
		if t.ID == prevID {
			p.current = i
			return nil
		}
	}
	if p.current >= len(p.tracks) {
		p.current = len(p.tracks) - 1
	}
	return p.loadCurrent()
}

// Current returns the current track.
func (p *Player) Current() (planner.MusicFile, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.tracks) == 0 {
		return planner.MusicFile{}, false
	}
	return p.tracks[p.current], true
}

// Select makes the track with id current and loads it.
func (p *Player) Select(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, t := range p.tracks {
		if t.ID == id {
			p.current = i
			return p.loadCurrent()
		}
	}
	return fmt.Errorf("%s: %w", id, ErrUnknownTrack)
}

// PlayPause toggles playback. It is a no-op on an empty playlist.
func (p *Player) PlayPause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.tracks) == 0 {
		return nil
	}
	if p.playing {
		p.playback.Pause()
		p.playing = false
		return nil
	}
	if err := p.playback.Play(); err != nil {
		return fmt.Errorf("play %s: %w", p.tracks[p.current].Name, err)
	}
	p.playing = true
	return nil
}

// Next advances to the following track, or to a uniformly random one when
// shuffle is on (the same track may repeat).
func (p *Player) Next() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.next()
}

// TrackEnded restarts the track when looping, otherwise advances.
func (p *Player) TrackEnded() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.tracks) == 0 {
		return nil
	}
	if p.loop {
		p.playback.SeekStart()
		p.playing = true
		return p.playback.Play()
	}
	return p.next()
}

// SetVolume clamps v into [0,1] and applies it.
func (p *Player) SetVolume(v float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = min(max(v, 0), 1)
	p.playback.SetVolume(p.volume)
	return p.volume
}

// ToggleShuffle flips shuffle mode and returns the new value.
func (p *Player) ToggleShuffle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shuffle = !p.shuffle
	return p.shuffle
}

// ToggleLoop flips single-track looping and returns the new value.
func (p *Player) ToggleLoop() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loop = !p.loop
	return p.loop
}

func (p *Player) next() error {
	n := len(p.tracks)
	if n == 0 {
		return nil
	}
	if p.shuffle {
		p.current = p.intn(n)
	} else {
		p.current = (p.current + 1) % n
	}
	return p.loadCurrent()
}

// loadCurrent loads the current track and resumes it if the player was playing.
func (p *Player) loadCurrent() error {
	track := p.tracks[p.current]
	if err := p.playback.Load(track.URL); err != nil {
		return fmt.Errorf("load %s: %w", track.Name, err)
	}
	p.logger.Debug("track loaded", "id", track.ID, "name", track.Name)
	if p.playing {
		return p.playback.Play()
	}
	return nil
}

// State is the introspection snapshot of a Player.
type State struct {
	Tracks  int     `json:"tracks"`
	Current string  `json:"current,omitempty"`
	Playing bool    `json:"playing"`
	Shuffle bool    `json:"shuffle"`
	Loop    bool    `json:"loop"`
	Volume  float64 `json:"volume"`
}

// State implements introspection.Introspectable.
func (p *Player) State() any {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := State{
		Tracks:  len(p.tracks),
		Playing: p.playing,
		Shuffle: p.shuffle,
		Loop:    p.loop,
		Volume:  p.volume,
	}
	if len(p.tracks) > 0 {
		s.Current = p.tracks[p.current].Name
	}
	return s
}

// ComponentType implements introspection.Component.
func (p *Player) ComponentType() string {
	return "player"
}

var _ introspection.Introspectable = (*Player)(nil)
var _ introspection.Component = (*Player)(nil)
