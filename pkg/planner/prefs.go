package planner

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Input limits for editable preference text.
const (
	MaxAppNameLength = 50
	MaxQuoteLength   = 200
)

// DefaultQuotes holds one quote per weekday, indexed by time.Weekday.
var DefaultQuotes = [7]string{
	"The future depends on what you do today.",
	"Success is the sum of small efforts repeated day in and day out.",
	"Your only limit is your mind.",
	"Great things never come from comfort zones.",
	"Dream it. Wish it. Do it.",
	"The way to get started is to quit talking and begin doing.",
	"Don't watch the clock; do what it does. Keep going.",
}

// QuoteFor returns the custom quote if set, else the weekday's default.
func QuoteFor(prefs Preferences, now time.Time) string {
	if prefs.CustomQuote != "" {
		return prefs.CustomQuote
	}
	return DefaultQuotes[now.Weekday()]
}

// ThemeClass renders the root style classes for prefs.
func ThemeClass(prefs Preferences) string {
	class := "theme-" + prefs.Theme
	if prefs.DarkMode {
		class += " dark"
	}
	return class
}

// Preferences returns the current preference values.
func (p *Planner) Preferences(ctx context.Context) Preferences {
	return p.data.Get(ctx).Preferences()
}

// CurrentQuote returns the quote shown on the home view today.
func (p *Planner) CurrentQuote(ctx context.Context) string {
	return QuoteFor(p.Preferences(ctx), p.now().Local())
}

// OnPreferences calls fn with the preferences after every load or change of
// the application document. The returned func unsubscribes.
func (p *Planner) OnPreferences(fn func(Preferences)) func() {
	return p.data.Subscribe(func(d AppData) {
		fn(d.Preferences())
	})
}

// SetTheme selects the color theme.
func (p *Planner) SetTheme(ctx context.Context, theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if theme == "" || strings.ContainsAny(theme, " \t") {
		return fmt.Errorf("%w: theme %q", ErrInvalidPreference, theme)
	}
	p.data.Mutate(ctx, func(d AppData) AppData {
		d.Theme = theme
		return d
	})
	return nil
}

// SetDarkMode toggles the dark variant of the theme.
func (p *Planner) SetDarkMode(ctx context.Context, dark bool) {
	p.data.Mutate(ctx, func(d AppData) AppData {
		d.DarkMode = dark
		return d
	})
}

// SetCustomQuote replaces the weekday quote with quote.
func (p *Planner) SetCustomQuote(ctx context.Context, quote string) error {
	quote, err := editableText("quote", quote, MaxQuoteLength)
	if err != nil {
		return err
	}
	p.data.Mutate(ctx, func(d AppData) AppData {
		d.CustomQuote = quote
		return d
	})
	return nil
}

// ResetCustomQuote restores the rotating weekday quotes.
func (p *Planner) ResetCustomQuote(ctx context.Context) {
	p.data.Mutate(ctx, func(d AppData) AppData {
		d.CustomQuote = ""
		return d
	})
}

// SetAppName renames the planner header.
func (p *Planner) SetAppName(ctx context.Context, name string) error {
	name, err := editableText("app name", name, MaxAppNameLength)
	if err != nil {
		return err
	}
	p.data.Mutate(ctx, func(d AppData) AppData {
		d.AppName = name
		return d
	})
	return nil
}

func editableText(field, s string, limit int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: %s must not be empty", ErrInvalidPreference, field)
	}
	if n := utf8.RuneCountInString(s); n > limit {
		return "", fmt.Errorf("%w: %s is %d characters, limit %d", ErrInvalidPreference, field, n, limit)
	}
	return s, nil
}
