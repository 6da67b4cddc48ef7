package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/aretw0/planner/pkg/planner"
)

var (
	noteTitle   string
	noteContent string
	noteJSON    bool
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
}

var noteCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a note",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		p, svc := openPlanner(cmd)
		defer svc.Close()

		note, err := p.CreateNote(context.Background(), noteTitle, noteContent)
		if err != nil {
			fatal("Error creating note", err)
		}
		checkPersisted(p)
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", note.Title, note.ID)
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		p, svc := openPlanner(cmd)
		defer svc.Close()

		notes := p.Notes(context.Background())
		if noteJSON {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(notes); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}
		if len(notes) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No notes yet")
			return
		}
		for _, n := range notes {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n  created %s, edited %s\n  %s\n",
				n.ID, n.Title, domain.FormatNoteTime(n.CreatedAt), domain.FormatNoteTime(n.LastEdited), n.Content)
		}
	},
}

var noteEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a note's title or content",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		p, svc := openPlanner(cmd)
		defer svc.Close()

		current, ok := p.Note(ctx, args[0])
		if !ok {
			fatal("Error editing note", fmt.Errorf("%s: %w", args[0], domain.ErrNoteNotFound))
		}
		title, content := current.Title, current.Content
		if cmd.Flags().Changed("title") {
			title = noteTitle
		}
		if cmd.Flags().Changed("content") {
			content = noteContent
		}

		note, err := p.UpdateNote(ctx, args[0], title, content)
		if err != nil {
			fatal("Error editing note", err)
		}
		checkPersisted(p)
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", note.Title, note.ID)
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, svc := openPlanner(cmd)
		defer svc.Close()

		err := p.DeleteNote(context.Background(), args[0], confirmer(cmd))
		if errors.Is(err, domain.ErrCancelled) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return
		}
		if err != nil {
			fatal("Error deleting note", err)
		}
		checkPersisted(p)
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	},
}

func init() {
	for _, c := range []*cobra.Command{noteCreateCmd, noteEditCmd} {
		c.Flags().StringVar(&noteTitle, "title", "", "Note title")
		c.Flags().StringVar(&noteContent, "content", "", "Note content")
	}
	noteListCmd.Flags().BoolVar(&noteJSON, "json", false, "Output in JSON format")

	noteCmd.AddCommand(noteCreateCmd, noteListCmd, noteEditCmd, noteDeleteCmd)
	rootCmd.AddCommand(noteCmd)
}
