package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/spf13/cobra"

	domain "github.com/aretw0/planner/pkg/planner"
	"github.com/aretw0/planner/pkg/player"
)

var (
	musicAfter   string
	musicShuffle bool
)

var musicCmd = &cobra.Command{
	Use:   "music",
	Short: "Manage the background music playlist",
}

var musicAddCmd = &cobra.Command{
	Use:   "add <file>...",
	Short: fmt.Sprintf("Add audio files to the playlist (max %d tracks)", domain.MaxMusicFiles),
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, svc := openPlanner(cmd)
		defer svc.Close()

		uploads := make([]domain.Upload, 0, len(args))
		for _, path := range args {
			abs, err := filepath.Abs(path)
			if err != nil {
				fatal("Error resolving file", err)
			}
			u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
			uploads = append(uploads, domain.Upload{Name: filepath.Base(abs), URL: u.String()})
		}

		accepted, err := p.UploadMusic(context.Background(), uploads)
		if err != nil {
			fatal("Error adding music", err)
		}
		checkPersisted(p)
		for _, f := range accepted {
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", f.Name, f.ID)
		}
		if skipped := len(uploads) - len(accepted); skipped > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d file(s): the playlist holds at most %d tracks\n", skipped, domain.MaxMusicFiles)
		}
	},
}

var musicListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the playlist",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		p, svc := openPlanner(cmd)
		defer svc.Close()

		files := p.MusicFiles(context.Background())
		for i, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s (%s)\n", i+1, f.Name, f.ID)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d/%d tracks\n", len(files), domain.MaxMusicFiles)
	},
}

var musicRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a track from the playlist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, svc := openPlanner(cmd)
		defer svc.Close()

		if !p.RemoveMusic(context.Background(), args[0]) {
			fmt.Fprintf(cmd.OutOrStdout(), "No track %s\n", args[0])
			return
		}
		checkPersisted(p)
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
	},
}

var musicNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Print the track that plays after --after (or after the first track)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		p, svc := openPlanner(cmd)
		defer svc.Close()

		pl := player.New(logPlayback{logger: slog.Default()}, player.WithLogger(slog.Default()))
		if err := pl.SetPlaylist(p.MusicFiles(context.Background())); err != nil {
			fatal("Error loading playlist", err)
		}
		if _, ok := pl.Current(); !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "The playlist is empty")
			return
		}
		if musicAfter != "" {
			if err := pl.Select(musicAfter); err != nil {
				fatal("Error selecting track", err)
			}
		}
		if musicShuffle {
			pl.ToggleShuffle()
		}
		if err := pl.Next(); err != nil {
			fatal("Error advancing playlist", err)
		}
		track, _ := pl.Current()
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n%s\n", track.Name, track.ID, track.URL)
	},
}

// logPlayback is a Playback without an audio device; it only logs commands.
type logPlayback struct {
	logger *slog.Logger
}

func (l logPlayback) Load(url string) error {
	l.logger.Debug("playback load", "url", url)
	return nil
}

func (l logPlayback) Play() error {
	l.logger.Debug("playback play")
	return nil
}

func (l logPlayback) Pause()              { l.logger.Debug("playback pause") }
func (l logPlayback) SeekStart()          { l.logger.Debug("playback seek start") }
func (l logPlayback) SetVolume(v float64) { l.logger.Debug("playback volume", "volume", v) }

func init() {
	musicNextCmd.Flags().StringVar(&musicAfter, "after", "", "Track ID to advance from")
	musicNextCmd.Flags().BoolVar(&musicShuffle, "shuffle", false, "Pick a random track")

	musicCmd.AddCommand(musicAddCmd, musicListCmd, musicRemoveCmd, musicNextCmd)
	rootCmd.AddCommand(musicCmd)
}
