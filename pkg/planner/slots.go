package planner

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// SlotInput carries the user-editable fields of a slot.
type SlotInput struct {
	Day       string
	StartTime string
	EndTime   string
	Topic     string
}

// Progress summarises a weekday's slots.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Complete reports whether the day has at least one slot and all are done.
func (p Progress) Complete() bool {
	return p.Total > 0 && p.Completed == p.Total
}

// DayBoard is one column of the weekly board.
type DayBoard struct {
	Day      string         `json:"day"`
	Slots    []ScheduleSlot `json:"slots"`
	Progress Progress       `json:"progress"`
}

// normalize validates the input and returns it trimmed with a canonical
// weekday. Times must be HH:MM; end-after-start is not checked.
func (in SlotInput) normalize() (SlotInput, error) {
	out := SlotInput{
		Day:       strings.TrimSpace(in.Day),
		StartTime: strings.TrimSpace(in.StartTime),
		EndTime:   strings.TrimSpace(in.EndTime),
		Topic:     strings.TrimSpace(in.Topic),
	}
	if out.Day == "" || out.StartTime == "" || out.EndTime == "" || out.Topic == "" {
		return in, fmt.Errorf("%w: day, start time, end time and topic are required", ErrInvalidSlot)
	}

	day, ok := ParseWeekday(out.Day)
	if !ok {
		return in, fmt.Errorf("%w: unknown day %q", ErrInvalidSlot, out.Day)
	}
	out.Day = day

	for _, t := range []*string{&out.StartTime, &out.EndTime} {
		parsed, err := time.Parse("15:04", *t)
		if err != nil {
			return in, fmt.Errorf("%w: time %q is not HH:MM", ErrInvalidSlot, *t)
		}
		*t = parsed.Format("15:04")
	}
	return out, nil
}

// AddSlot appends a new incomplete slot. Any empty field rejects the
// operation without touching state.
func (p *Planner) AddSlot(ctx context.Context, in SlotInput) (ScheduleSlot, error) {
	in, err := in.normalize()
	if err != nil {
		return ScheduleSlot{}, err
	}

	slot := ScheduleSlot{
		ID:        p.newID(),
		Day:       in.Day,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Topic:     in.Topic,
	}
	p.mutateSlots(ctx, func(slots []ScheduleSlot) []ScheduleSlot {
		return append(slots, slot)
	})
	p.logger.Debug("slot added", "id", slot.ID, "day", slot.Day)
	return slot, nil
}

// DeleteSlot removes the slot with id. It reports whether a slot was removed;
// an absent id is a no-op.
func (p *Planner) DeleteSlot(ctx context.Context, id string) bool {
	removed := false
	p.mutateSlots(ctx, func(slots []ScheduleSlot) []ScheduleSlot {
		out := slots[:0]
		for _, s := range slots {
			if s.ID == id {
				removed = true
				continue
			}
			out = append(out, s)
		}
		return out
	})
	return removed
}

// ToggleSlot flips the completed flag of the slot with id.
func (p *Planner) ToggleSlot(ctx context.Context, id string) (ScheduleSlot, error) {
	var toggled ScheduleSlot
	found := false
	p.mutateSlots(ctx, func(slots []ScheduleSlot) []ScheduleSlot {
		for i := range slots {
			if slots[i].ID == id {
				slots[i].Completed = !slots[i].Completed
				toggled = slots[i]
				found = true
			}
		}
		return slots
	})
	if !found {
		return ScheduleSlot{}, fmt.Errorf("%s: %w", id, ErrSlotNotFound)
	}
	return toggled, nil
}

// EditSlot keeps the board's original "edit" behaviour: after confirmation
// the slot is deleted so the user can add it again with new details.
// Declining leaves the slot untouched and returns ErrCancelled.
func (p *Planner) EditSlot(ctx context.Context, id string, c Confirmer) error {
	if _, ok := p.Slot(ctx, id); !ok {
		return fmt.Errorf("%s: %w", id, ErrSlotNotFound)
	}
	if !confirmed(c, PromptEditSlot) {
		return ErrCancelled
	}
	p.DeleteSlot(ctx, id)
	return nil
}

// UpdateSlot edits a slot in place, keeping its ID and completed flag.
func (p *Planner) UpdateSlot(ctx context.Context, id string, in SlotInput) (ScheduleSlot, error) {
	in, err := in.normalize()
	if err != nil {
		return ScheduleSlot{}, err
	}
	if _, ok := p.Slot(ctx, id); !ok {
		return ScheduleSlot{}, fmt.Errorf("%s: %w", id, ErrSlotNotFound)
	}

	var updated ScheduleSlot
	p.mutateSlots(ctx, func(slots []ScheduleSlot) []ScheduleSlot {
		for i := range slots {
			if slots[i].ID == id {
				slots[i].Day = in.Day
				slots[i].StartTime = in.StartTime
				slots[i].EndTime = in.EndTime
				slots[i].Topic = in.Topic
				updated = slots[i]
			}
		}
		return slots
	})
	return updated, nil
}

// Slot looks a slot up by id.
func (p *Planner) Slot(ctx context.Context, id string) (ScheduleSlot, bool) {
	for _, s := range p.data.Get(ctx).Slots {
		if s.ID == id {
			return s, true
		}
	}
	return ScheduleSlot{}, false
}

// Slots returns all slots in insertion order.
func (p *Planner) Slots(ctx context.Context) []ScheduleSlot {
	return p.data.Get(ctx).Slots
}

// Board returns the seven weekday columns in display order.
func (p *Planner) Board(ctx context.Context) []DayBoard {
	slots := p.data.Get(ctx).Slots
	board := make([]DayBoard, 0, len(Weekdays))
	for _, day := range Weekdays {
		board = append(board, DayBoard{
			Day:      day,
			Slots:    SlotsForDay(slots, day),
			Progress: DayProgress(slots, day),
		})
	}
	return board
}

// mutateSlots applies fn to the slot collection and then fires the
// celebration for every fully complete day.
func (p *Planner) mutateSlots(ctx context.Context, fn func([]ScheduleSlot) []ScheduleSlot) {
	data := p.data.Mutate(ctx, func(d AppData) AppData {
		d.Slots = fn(d.Slots)
		if d.Slots == nil {
			d.Slots = []ScheduleSlot{}
		}
		return d
	})
	p.celebrate(data.Slots)
}

func (p *Planner) celebrate(slots []ScheduleSlot) {
	if p.celebrator == nil {
		return
	}
	for _, day := range CompletedDays(slots) {
		p.celebrator.Celebrate(day)
	}
}

// SlotsForDay filters slots by weekday, preserving insertion order.
func SlotsForDay(slots []ScheduleSlot, day string) []ScheduleSlot {
	out := []ScheduleSlot{}
	for _, s := range slots {
		if s.Day == day {
			out = append(out, s)
		}
	}
	return out
}

// DayProgress counts completed and total slots for a weekday.
func DayProgress(slots []ScheduleSlot, day string) Progress {
	var p Progress
	for _, s := range slots {
		if s.Day != day {
			continue
		}
		p.Total++
		if s.Completed {
			p.Completed++
		}
	}
	return p
}

// IsDayComplete reports whether day has at least one slot and all are completed.
func IsDayComplete(slots []ScheduleSlot, day string) bool {
	return DayProgress(slots, day).Complete()
}

// CompletedDays lists fully complete weekdays in board order.
func CompletedDays(slots []ScheduleSlot) []string {
	var days []string
	for _, day := range Weekdays {
		if IsDayComplete(slots, day) {
			days = append(days, day)
		}
	}
	return days
}
