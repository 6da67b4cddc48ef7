package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/planner/pkg/calendar"
)

var calendarMonth string

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month with weekends and holidays marked",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		now := time.Now()
		cursor := calendar.CursorAt(now)
		if calendarMonth != "" {
			var err error
			cursor, err = calendar.ParseCursor(calendarMonth)
			if err != nil {
				fatal("Error reading month", err)
			}
		}
		renderMonth(cmd.OutOrStdout(), cursor, now)
	},
}

// renderMonth prints the grid. Today is [d], weekends are d* and holidays d!.
func renderMonth(out io.Writer, cursor calendar.Cursor, now time.Time) {
	fmt.Fprintf(out, "%s\n", cursor)
	fmt.Fprintln(out, " Sun  Mon  Tue  Wed  Thu  Fri  Sat")

	var row strings.Builder
	var holidays []string
	for i, cell := range calendar.Grid(cursor, now) {
		switch cell.Kind {
		case calendar.KindEmpty:
			row.WriteString("     ")
		case calendar.KindToday:
			fmt.Fprintf(&row, " [%2d]", cell.Day)
		case calendar.KindWeekend:
			fmt.Fprintf(&row, "  %2d*", cell.Day)
		case calendar.KindHoliday:
			fmt.Fprintf(&row, "  %2d!", cell.Day)
		default:
			fmt.Fprintf(&row, "  %2d ", cell.Day)
		}
		if cell.Holiday != "" {
			holidays = append(holidays, fmt.Sprintf("%2d %s", cell.Day, cell.Holiday))
		}
		if i%7 == 6 {
			fmt.Fprintln(out, strings.TrimRight(row.String(), " "))
			row.Reset()
		}
	}
	if row.Len() > 0 {
		fmt.Fprintln(out, strings.TrimRight(row.String(), " "))
	}

	if len(holidays) > 0 {
		fmt.Fprintln(out)
		for _, h := range holidays {
			fmt.Fprintln(out, h)
		}
	}
}

func init() {
	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "Month to show (YYYY-MM, default: current)")
	rootCmd.AddCommand(calendarCmd)
}
