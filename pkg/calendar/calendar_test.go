package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/planner/pkg/calendar"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
		{1900, time.February, 28},
		{2000, time.February, 29},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, calendar.DaysInMonth(tt.year, tt.month), "%d-%s", tt.year, tt.month)
	}
}

func TestFirstWeekday(t *testing.T) {
	assert.Equal(t, time.Monday, calendar.FirstWeekday(2024, time.January))
	assert.Equal(t, time.Sunday, calendar.FirstWeekday(2023, time.January))
}

func TestHoliday(t *testing.T) {
	label, ok := calendar.Holiday(time.August, 15)
	assert.True(t, ok)
	assert.Equal(t, "Independence Day", label)

	_, ok = calendar.Holiday(time.August, 16)
	assert.False(t, ok)

	label, ok = calendar.Holiday(time.September, 5)
	assert.True(t, ok)
	assert.Equal(t, "Teachers' Day", label)
}

func TestIsWeekendAndToday(t *testing.T) {
	assert.True(t, calendar.IsWeekend(2024, time.March, 9))
	assert.True(t, calendar.IsWeekend(2024, time.March, 10))
	assert.False(t, calendar.IsWeekend(2024, time.March, 11))

	now := time.Date(2024, time.March, 11, 23, 59, 0, 0, time.Local)
	assert.True(t, calendar.IsToday(2024, time.March, 11, now))
	assert.False(t, calendar.IsToday(2023, time.March, 11, now))
}

func TestCursorNavigation(t *testing.T) {
	jan := calendar.Cursor{Year: 2025, Month: time.January}
	assert.Equal(t, calendar.Cursor{Year: 2024, Month: time.December}, jan.PrevMonth())
	assert.Equal(t, calendar.Cursor{Year: 2025, Month: time.February}, jan.NextMonth())

	dec := calendar.Cursor{Year: 2024, Month: time.December}
	assert.Equal(t, calendar.Cursor{Year: 2025, Month: time.January}, dec.NextMonth())
	assert.Equal(t, calendar.Cursor{Year: 2023, Month: time.December}, dec.PrevYear())
	assert.Equal(t, calendar.Cursor{Year: 2025, Month: time.December}, dec.NextYear())
	assert.Equal(t, "December 2024", dec.String())
}

func TestParseCursor(t *testing.T) {
	c, err := calendar.ParseCursor("2024-08")
	require.NoError(t, err)
	assert.Equal(t, calendar.Cursor{Year: 2024, Month: time.August}, c)

	_, err = calendar.ParseCursor("August")
	assert.Error(t, err)
}

func TestGrid(t *testing.T) {
	// August 2024 starts on a Thursday; the 15th is a Thursday holiday.
	now := time.Date(2024, time.August, 3, 10, 0, 0, 0, time.Local)
	cells := calendar.Grid(calendar.Cursor{Year: 2024, Month: time.August}, now)

	require.Len(t, cells, 4+31)
	for _, c := range cells[:4] {
		assert.Equal(t, calendar.KindEmpty, c.Kind)
		assert.Zero(t, c.Day)
	}

	day := func(d int) calendar.Cell { return cells[3+d] }
	assert.Equal(t, 1, day(1).Day)
	assert.Equal(t, calendar.KindPlain, day(1).Kind)
	assert.Equal(t, calendar.KindToday, day(3).Kind, "today wins over weekend")
	assert.Equal(t, calendar.KindWeekend, day(4).Kind)
	assert.Equal(t, calendar.KindHoliday, day(15).Kind)
	assert.Equal(t, "Independence Day", day(15).Holiday)
}

func TestGrid_WeekendBeatsHoliday(t *testing.T) {
	// 2021-08-15 was a Sunday.
	now := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.Local)
	cells := calendar.Grid(calendar.Cursor{Year: 2021, Month: time.August}, now)
	lead := int(calendar.FirstWeekday(2021, time.August))

	cell := cells[lead+14]
	assert.Equal(t, 15, cell.Day)
	assert.Equal(t, calendar.KindWeekend, cell.Kind)
	assert.Equal(t, "Independence Day", cell.Holiday)
}
