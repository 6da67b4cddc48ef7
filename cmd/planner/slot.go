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
	slotInput domain.SlotInput
	slotDay   string
	slotJSON  bool
)

var slotCmd = &cobra.Command{
	Use:   "slot",
	Short: "Manage weekly schedule slots",
}

var slotAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a slot to a weekday",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		p, svc := openCelebratingPlanner(cmd)
		defer svc.Close()

		slot, err := p.AddSlot(context.Background(), slotInput)
		if err != nil {
			fatal("Error adding slot", err)
		}
		checkPersisted(p)
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", formatSlot(slot))
	},
}

var slotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List slots, optionally for one weekday",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		p, svc := openPlanner(cmd)
		defer svc.Close()

		slots := p.Slots(context.Background())
		if slotDay != "" {
			day, ok := domain.ParseWeekday(slotDay)
			if !ok {
				fatal("Error listing slots", fmt.Errorf("unknown day %q", slotDay))
			}
			slots = domain.SlotsForDay(slots, day)
		}

		if slotJSON {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(slots); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}
		for _, s := range slots {
			fmt.Fprintln(cmd.OutOrStdout(), formatSlot(s))
		}
	},
}

var slotDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a slot's completed flag",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, svc := openCelebratingPlanner(cmd)
		defer svc.Close()

		slot, err := p.ToggleSlot(context.Background(), args[0])
		if err != nil {
			fatal("Error toggling slot", err)
		}
		checkPersisted(p)
		fmt.Fprintln(cmd.OutOrStdout(), formatSlot(slot))
	},
}

var slotDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a slot",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, svc := openCelebratingPlanner(cmd)
		defer svc.Close()

		if !p.DeleteSlot(context.Background(), args[0]) {
			fmt.Fprintf(cmd.OutOrStdout(), "No slot %s\n", args[0])
			return
		}
		checkPersisted(p)
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	},
}

var slotEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Remove a slot so it can be added again with new details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, svc := openCelebratingPlanner(cmd)
		defer svc.Close()

		err := p.EditSlot(context.Background(), args[0], confirmer(cmd))
		if errors.Is(err, domain.ErrCancelled) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return
		}
		if err != nil {
			fatal("Error editing slot", err)
		}
		checkPersisted(p)
		fmt.Fprintln(cmd.OutOrStdout(), "Slot removed; add it again with `planner slot add`")
	},
}

var slotUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a slot in place",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		p, svc := openCelebratingPlanner(cmd)
		defer svc.Close()

		current, ok := p.Slot(ctx, args[0])
		if !ok {
			fatal("Error updating slot", fmt.Errorf("%s: %w", args[0], domain.ErrSlotNotFound))
		}
		in := domain.SlotInput{Day: current.Day, StartTime: current.StartTime, EndTime: current.EndTime, Topic: current.Topic}
		flags := cmd.Flags()
		if flags.Changed("day") {
			in.Day = slotInput.Day
		}
		if flags.Changed("start") {
			in.StartTime = slotInput.StartTime
		}
		if flags.Changed("end") {
			in.EndTime = slotInput.EndTime
		}
		if flags.Changed("topic") {
			in.Topic = slotInput.Topic
		}

		slot, err := p.UpdateSlot(ctx, args[0], in)
		if err != nil {
			fatal("Error updating slot", err)
		}
		checkPersisted(p)
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", formatSlot(slot))
	},
}

func formatSlot(s domain.ScheduleSlot) string {
	mark := " "
	if s.Completed {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %-9s %s-%s %s (%s)", mark, s.Day, s.StartTime, s.EndTime, s.Topic, s.ID)
}

func addSlotFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&slotInput.Day, "day", "", "Weekday, e.g. Monday")
	cmd.Flags().StringVar(&slotInput.StartTime, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&slotInput.EndTime, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&slotInput.Topic, "topic", "", "What the slot is for")
}

func init() {
	addSlotFlags(slotAddCmd)
	addSlotFlags(slotUpdateCmd)
	slotListCmd.Flags().StringVar(&slotDay, "day", "", "Only list this weekday")
	slotListCmd.Flags().BoolVar(&slotJSON, "json", false, "Output in JSON format")

	slotCmd.AddCommand(slotAddCmd, slotListCmd, slotDoneCmd, slotDeleteCmd, slotEditCmd, slotUpdateCmd)
	rootCmd.AddCommand(slotCmd)
}
