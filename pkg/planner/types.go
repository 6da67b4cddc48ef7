package planner

import (
	"strings"
	"time"
)

// Persisted document keys.
const (
	DataKey  = "schedule-planner-data"
	NotesKey = "aesthetic-planner-notes"
)

// Defaults for AppData.
const (
	DefaultTheme   = "pink"
	DefaultAppName = "Schedule Planner"
)

// Weekdays lists the board columns in display order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ScheduleSlot is a task occupying a weekday and a time range.
type ScheduleSlot struct {
	ID        string `json:"id"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Topic     string `json:"topic"`
	Completed bool   `json:"completed"`
}

// MusicFile references a playable track.
type MusicFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Note is a titled free-text entry.
type Note struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	LastEdited time.Time `json:"lastEdited"`
}

// Preferences are the user-tunable settings stored in AppData.
type Preferences struct {
	Theme       string `json:"theme"`
	DarkMode    bool   `json:"darkMode"`
	CustomQuote string `json:"customQuote"`
	AppName     string `json:"appName"`
}

// AppData is the aggregate persisted under DataKey.
type AppData struct {
	Slots       []ScheduleSlot `json:"slots"`
	MusicFiles  []MusicFile    `json:"musicFiles"`
	Theme       string         `json:"theme"`
	DarkMode    bool           `json:"darkMode"`
	CustomQuote string         `json:"customQuote"`
	AppName     string         `json:"appName"`
}

// Preferences extracts the preference fields.
func (d AppData) Preferences() Preferences {
	return Preferences{
		Theme:       d.Theme,
		DarkMode:    d.DarkMode,
		CustomQuote: d.CustomQuote,
		AppName:     d.AppName,
	}
}

// NotesData is the aggregate persisted under NotesKey, newest note first.
type NotesData struct {
	Notes []Note `json:"notes"`
}

// DefaultAppData returns a fresh AppData with default values.
func DefaultAppData() AppData {
	return AppData{
		Slots:      []ScheduleSlot{},
		MusicFiles: []MusicFile{},
		Theme:      DefaultTheme,
		AppName:    DefaultAppName,
	}
}

// DefaultNotesData returns an empty notes collection.
func DefaultNotesData() NotesData {
	return NotesData{Notes: []Note{}}
}

// ParseWeekday canonicalises a full weekday name, ignoring case.
func ParseWeekday(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, day := range Weekdays {
		if strings.EqualFold(day, s) {
			return day, true
		}
	}
	return "", false
}
