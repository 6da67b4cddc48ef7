package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	lcsource "github.com/aretw0/planner/pkg/adapters/lifecycle"
	"github.com/aretw0/planner/pkg/core"
)

var watchTypes []string

var watchCmd = &cobra.Command{
	Use:   "watch [pattern]",
	Short: "Print changes to planner documents until interrupted",
	Long: `Watch reports CREATE, MODIFY and DELETE events for documents whose ID
matches the doublestar pattern (default "**"). Edits made by other planner
processes or by hand show up here.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pattern := "**"
		if len(args) == 1 {
			pattern = args[0]
		}

		svc := openService(cmd)
		defer svc.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		events, err := svc.Watch(ctx, pattern)
		if err != nil {
			fatal("Error starting watcher", err)
		}

		types := make([]core.EventType, 0, len(watchTypes))
		for _, t := range watchTypes {
			types = append(types, core.EventType(t))
		}
		src := lcsource.NewSource(events, types...)
		if err := src.Start(ctx); err != nil {
			fatal("Error starting event source", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for %q (Ctrl+C to stop)\n", dataDir, pattern)
		for e := range src.Events() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", time.Now().Format(time.TimeOnly), e)
		}
	},
}

func init() {
	watchCmd.Flags().StringSliceVar(&watchTypes, "type", nil, "Only report these event types (CREATE, MODIFY, DELETE)")
	rootCmd.AddCommand(watchCmd)
}
