package calendar

import (
	"fmt"
	"strings"

	"github.com/starford/weeks/internal/apperr"
)

// Weekday is a day of the week numbered by its offset from the epoch's weekday.
// 1970-01-01 was a Thursday, so Thursday is 0.
type Weekday int

const (
	Thursday Weekday = iota
	Friday
	Saturday
	Sunday
	Monday
	Tuesday
	Wednesday
)

// DaysPerWeek is the length of a regular week.
const DaysPerWeek = 7

var weekdayCodes = [DaysPerWeek]string{"THU", "FRI", "SAT", "SUN", "MON", "TUE", "WED"}

// String returns the three-letter upper-case code (e.g. "MON").
func (w Weekday) String() string {
	if w < 0 || int(w) >= DaysPerWeek {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayCodes[w]
}

// Offset returns the weekday as a day offset from the epoch.
func (w Weekday) Offset() int {
	return int(w)
}

// ParseWeekday accepts a three-letter weekday code such as "SAT" or "mon".
func ParseWeekday(s string) (Weekday, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	for i, c := range weekdayCodes {
		if c == code {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("calendar: weekday %q: %w", s, apperr.ErrInvalidInput)
}

// WeekdayCodes returns the accepted weekday codes.
func WeekdayCodes() []string {
	return weekdayCodes[:]
}

// MarshalText encodes the weekday as its three-letter code.
func (w Weekday) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText decodes a three-letter weekday code.
func (w *Weekday) UnmarshalText(b []byte) error {
	v, err := ParseWeekday(string(b))
	if err != nil {
		return err
	}
	*w = v
	return nil
}
