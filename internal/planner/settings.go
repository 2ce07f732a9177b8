package planner

import (
	"github.com/starford/weeks/internal/calendar"
)

// Pair is a calendar rendered in a language.
type Pair struct {
	Variant  calendar.Variant  `json:"calendar"`
	Language calendar.Language `json:"language"`
}

// Settings is the calendar configuration every planner call works with.
// It is a value: callers hand a snapshot to each operation.
type Settings struct {
	Main         Pair             `json:"main"`
	Secondary    *Pair            `json:"secondary,omitempty"`
	StartWeekday calendar.Weekday `json:"start_weekday"`
}

// DefaultSettings returns Gregorian in English with weeks starting on Monday.
func DefaultSettings() Settings {
	return Settings{
		Main:         Pair{Variant: calendar.Gregorian, Language: calendar.English},
		StartWeekday: calendar.Monday,
	}
}

// PairFor returns the pair used to render items of calendar v: the main or
// secondary pair when one uses v, otherwise v in English.
func (s Settings) PairFor(v calendar.Variant) Pair {
	if s.Main.Variant == v {
		return s.Main
	}
	if s.Secondary != nil && s.Secondary.Variant == v {
		return *s.Secondary
	}
	return Pair{Variant: v, Language: calendar.English}
}

// SettingsSource supplies the current settings snapshot.
type SettingsSource interface {
	Current() Settings
}

// StaticSettings is a SettingsSource that never changes.
type StaticSettings Settings

// Current implements SettingsSource.
func (s StaticSettings) Current() Settings {
	return Settings(s)
}
