package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/planner/pkg/clock"
	"github.com/aretw0/planner/pkg/loading"
)

var (
	clockOnce   bool
	clockSplash bool
)

var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Show a live clock until interrupted",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if clockOnce {
			now := time.Now()
			fmt.Fprintf(out, "%s  %s\n", clock.FormatTime(now), clock.FormatDate(now))
			return
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if clockSplash {
			ready := loading.New().Run(ctx, func(progress int) {
				fmt.Fprintf(out, "\rYour Schedule Awaits... %3d%%", progress)
			})
			select {
			case <-ready:
				fmt.Fprintln(out)
			case <-ctx.Done():
				fmt.Fprintln(out)
				return
			}
		}

		err := clock.New().Run(ctx, func(now time.Time) {
			fmt.Fprintf(out, "\r%s  %s", clock.FormatTime(now), clock.FormatDate(now))
		})
		fmt.Fprintln(out)
		if err != nil && !errors.Is(err, context.Canceled) {
			fatal("Clock stopped", err)
		}
	},
}

func init() {
	clockCmd.Flags().BoolVar(&clockOnce, "once", false, "Print the time once and exit")
	clockCmd.Flags().BoolVar(&clockSplash, "splash", false, "Show the loading ramp first")
	rootCmd.AddCommand(clockCmd)
}
