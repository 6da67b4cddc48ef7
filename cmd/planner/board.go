package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/planner/pkg/clock"
	domain "github.com/aretw0/planner/pkg/planner"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the home view: header, quote and the weekly board",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		p, svc := openCelebratingPlanner(cmd)
		defer svc.Close()

		out := cmd.OutOrStdout()
		prefs := p.Preferences(ctx)
		now := time.Now()

		fmt.Fprintf(out, "%s  [%s]\n", prefs.AppName, domain.ThemeClass(prefs))
		fmt.Fprintf(out, "%s  %s\n", clock.FormatDate(now), clock.FormatTime(now))
		fmt.Fprintf(out, "%q\n\n", p.CurrentQuote(ctx))

		for _, day := range p.Board(ctx) {
			status := ""
			if day.Progress.Complete() {
				status = " - all done!"
			}
			fmt.Fprintf(out, "%s (%d/%d)%s\n", day.Day, day.Progress.Completed, day.Progress.Total, status)
			if len(day.Slots) == 0 {
				fmt.Fprintln(out, "  no slots")
			}
			for _, s := range day.Slots {
				fmt.Fprintf(out, "  %s\n", strings.TrimSpace(formatSlot(s)))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
