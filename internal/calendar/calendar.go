// Package calendar converts absolute days into dates of the Gregorian, Persian,
// Chinese lunisolar and Arabic Hijri calendars and renders them per language.
//
// Everything here is pure: no state, no clock. Callers pass the day and the
// calendar/language pair they want on every call.
package calendar

import (
	"fmt"
	"strconv"

	"github.com/starford/weeks/internal/apperr"
)

// Date is a day expressed in one calendar system.
type Date struct {
	Variant    Variant `json:"calendar"`
	Day        Day     `json:"unix_day"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	DayOfMonth int     `json:"day"`
	Weekday    Weekday `json:"weekday"`
	// LeapMonth marks an intercalary month. Month keeps the number of the
	// month it repeats.
	LeapMonth    bool `json:"leap_month,omitempty"`
	MonthsInYear int  `json:"months_in_year"`
}

// LocalizedDate holds the display strings of a Date.
type LocalizedDate struct {
	Day        Day    `json:"unix_day"`
	DayOfMonth string `json:"day"`
	Month      string `json:"month"`
	Weekday    string `json:"weekday"`
	Year       string `json:"year"`
	Full       string `json:"full"`
}

// Metadata is the date-independent chrome of a calendar in one language.
type Metadata struct {
	Variant     Variant  `json:"calendar"`
	VariantName string   `json:"calendar_type"`
	Name        string   `json:"calendar_name"`
	Language    string   `json:"language"`
	Direction   string   `json:"direction"`
	MonthNames  []string `json:"month_names"`
	SeasonNames []string `json:"season_names"`
}

// Calendar is one calendar system.
type Calendar interface {
	Variant() Variant
	// Supports reports whether the calendar has names for lang. Rendering in
	// an unsupported language falls back to English.
	Supports(lang Language) bool
	// Convert fails with apperr.ErrOutOfRange outside the supported days.
	Convert(day Day) (Date, error)
	Render(date Date, lang Language) LocalizedDate
	MonthName(month int, leap bool, lang Language) string
	Metadata(lang Language) Metadata
}

// ToNativeDate converts day into the calendar v.
func ToNativeDate(day Day, v Variant) (Date, error) {
	cal, err := For(v)
	if err != nil {
		return Date{}, err
	}
	return cal.Convert(day)
}

// Render converts day into v and renders it in lang.
func Render(day Day, v Variant, lang Language) (LocalizedDate, error) {
	cal, err := For(v)
	if err != nil {
		return LocalizedDate{}, err
	}
	date, err := cal.Convert(day)
	if err != nil {
		return LocalizedDate{}, err
	}
	return cal.Render(date, lang), nil
}

// CalendarMetadata returns the names and direction of v in lang.
func CalendarMetadata(v Variant, lang Language) (Metadata, error) {
	cal, err := For(v)
	if err != nil {
		return Metadata{}, err
	}
	return cal.Metadata(lang), nil
}

// YearOf returns the year of day in v.
func YearOf(day Day, v Variant) (int, error) {
	date, err := ToNativeDate(day, v)
	if err != nil {
		return 0, err
	}
	return date.Year, nil
}

// MaxRangeDays bounds the number of days a single range request may span.
const MaxRangeDays = 20

// CheckRange rejects inverted and overly long day ranges before any conversion.
func CheckRange(start, end Day) error {
	if end < start {
		return fmt.Errorf("calendar: range %d..%d: %w", start, end, apperr.ErrBadDaysRange)
	}
	if int(end-start) > MaxRangeDays {
		return fmt.Errorf("calendar: range %d..%d: %w", start, end, apperr.ErrLongDaysRange)
	}
	return nil
}

// DatesBetween renders every day of [start, end] in v and lang.
func DatesBetween(start, end Day, v Variant, lang Language) ([]LocalizedDate, error) {
	if err := CheckRange(start, end); err != nil {
		return nil, err
	}
	cal, err := For(v)
	if err != nil {
		return nil, err
	}
	out := make([]LocalizedDate, 0, int(end-start)+1)
	for d := start; d <= end; d++ {
		date, err := cal.Convert(d)
		if err != nil {
			return nil, err
		}
		out = append(out, cal.Render(date, lang))
	}
	return out, nil
}

// compose builds a LocalizedDate from already localized day and month strings.
// lang must be a language the calendar supports.
func compose(date Date, lang Language, dayOfMonth, month string) LocalizedDate {
	year := lang.LocalizeDigits(itoa(date.Year))
	return LocalizedDate{
		Day:        date.Day,
		DayOfMonth: dayOfMonth,
		Month:      month,
		Weekday:    weekdayName(lang, date.Weekday),
		Year:       year,
		Full: fmt.Sprintf("%s%s %s %s %s",
			weekdayFull[lang][date.Weekday], lang.listSeparator(), dayOfMonth, month, year),
	}
}

func outOfRange(v Variant, day Day) error {
	return fmt.Errorf("calendar: %s: day %d: %w", v, day, apperr.ErrOutOfRange)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
