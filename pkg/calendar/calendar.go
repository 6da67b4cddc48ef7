// Package calendar classifies the days of a month for the calendar view.
package calendar

import (
	"fmt"
	"time"
)

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalises to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the 1st of month.
func FirstWeekday(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

var holidays = map[[2]int]string{
	{1, 1}:   "New Year's Day",
	{1, 26}:  "Republic Day",
	{8, 15}:  "Independence Day",
	{10, 2}:  "Gandhi Jayanti",
	{12, 25}: "Christmas Day",
	{3, 8}:   "Holi (varies)",
	{10, 24}: "Diwali (varies)",
	{4, 14}:  "Baisakhi",
	{5, 1}:   "Labour Day",
	{9, 5}:   "Teachers' Day",
	{11, 14}: "Children's Day",
}

// Holiday returns the label of the fixed-date holiday on month/day, if any.
// The table is year-independent.
func Holiday(month time.Month, day int) (string, bool) {
	label, ok := holidays[[2]int{int(month), day}]
	return label, ok
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(year int, month time.Month, day int) bool {
	switch time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}

// IsToday reports whether the date equals now's calendar date.
func IsToday(year int, month time.Month, day int, now time.Time) bool {
	y, m, d := now.Date()
	return y == year && m == month && d == day
}

// Cursor is the month shown by the calendar view.
type Cursor struct {
	Year  int
	Month time.Month
}

// CursorAt returns the cursor for the month containing t.
func CursorAt(t time.Time) Cursor {
	return Cursor{Year: t.Year(), Month: t.Month()}
}

// ParseCursor reads a "YYYY-MM" string.
func ParseCursor(s string) (Cursor, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid month %q, want YYYY-MM", s)
	}
	return CursorAt(t), nil
}

func (c Cursor) add(years, months int) Cursor {
	return CursorAt(time.Date(c.Year+years, c.Month+time.Month(months), 1, 0, 0, 0, 0, time.UTC))
}

// PrevMonth moves back one month, wrapping into the previous year.
func (c Cursor) PrevMonth() Cursor { return c.add(0, -1) }

// NextMonth moves forward one month, wrapping into the next year.
func (c Cursor) NextMonth() Cursor { return c.add(0, 1) }

// PrevYear moves back one year.
func (c Cursor) PrevYear() Cursor { return c.add(-1, 0) }

// NextYear moves forward one year.
func (c Cursor) NextYear() Cursor { return c.add(1, 0) }

// String renders the cursor as "January 2024".
func (c Cursor) String() string {
	return fmt.Sprintf("%s %d", c.Month, c.Year)
}

// Kind classifies a grid cell.
type Kind int

const (
	KindEmpty Kind = iota
	KindPlain
	KindHoliday
	KindWeekend
	KindToday
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindHoliday:
		return "holiday"
	case KindWeekend:
		return "weekend"
	case KindToday:
		return "today"
	}
	return "empty"
}

// Cell is one square of the month grid. Day is 0 for leading empty cells.
// Holiday carries the label even when a higher-precedence kind wins.
type Cell struct {
	Day     int
	Kind    Kind
	Holiday string
}

// Grid lays out the month of c: one empty cell per weekday before the 1st,
// then one cell per day. A day is Today before Weekend before Holiday.
func Grid(c Cursor, now time.Time) []Cell {
	lead := int(FirstWeekday(c.Year, c.Month))
	days := DaysInMonth(c.Year, c.Month)

	cells := make([]Cell, lead, lead+days)
	for day := 1; day <= days; day++ {
		label, holiday := Holiday(c.Month, day)
		cell := Cell{Day: day, Kind: KindPlain, Holiday: label}
		switch {
		case IsToday(c.Year, c.Month, day, now):
			cell.Kind = KindToday
		case IsWeekend(c.Year, c.Month, day):
			cell.Kind = KindWeekend
		case holiday:
			cell.Kind = KindHoliday
		}
		cells = append(cells, cell)
	}
	return cells
}
