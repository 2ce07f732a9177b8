// Package period computes week windows and calendar years over absolute days.
package period

import (
	"fmt"
	"time"

	"github.com/starford/weeks/internal/apperr"
	"github.com/starford/weeks/internal/calendar"
)

// Bounds is one week window. Start and End are inclusive.
type Bounds struct {
	Start  calendar.Day `json:"start_day"`
	Middle calendar.Day `json:"middle_day"`
	End    calendar.Day `json:"end_day"`
}

// WeekBounds returns the window of length days that contains ref and starts on
// weekday start. Windows for a fixed (start, length) tile the day line with no
// gaps or overlaps, including before the epoch.
//
// Middle is start + length/2, so even lengths lean to the later half.
func WeekBounds(ref calendar.Day, start calendar.Weekday, length int) (Bounds, error) {
	if length <= 0 {
		return Bounds{}, fmt.Errorf("period: week length %d: %w", length, apperr.ErrBadWeekLength)
	}
	offset := int64(start.Offset())
	n := int64(length)
	first := floorDiv(int64(ref)-offset, n)*n + offset
	return Bounds{
		Start:  calendar.Day(first),
		Middle: calendar.Day(first + n/2),
		End:    calendar.Day(first + n - 1),
	}, nil
}

// Week returns the regular seven-day window containing ref.
func Week(ref calendar.Day, start calendar.Weekday) Bounds {
	b, _ := WeekBounds(ref, start, calendar.DaysPerWeek)
	return b
}

// Len returns the number of days in the window.
func (b Bounds) Len() int {
	return int(b.End-b.Start) + 1
}

// Contains reports whether day falls inside the window.
func (b Bounds) Contains(day calendar.Day) bool {
	return b.Start <= day && day <= b.End
}

// Shift moves the window by n whole windows (negative n moves back).
func (b Bounds) Shift(n int) Bounds {
	delta := calendar.Day(n * b.Len())
	return Bounds{Start: b.Start + delta, Middle: b.Middle + delta, End: b.End + delta}
}

// Next returns the following window.
func (b Bounds) Next() Bounds { return b.Shift(1) }

// Previous returns the preceding window.
func (b Bounds) Previous() Bounds { return b.Shift(-1) }

// YearOf returns the year containing day in calendar v.
func YearOf(day calendar.Day, v calendar.Variant) (int, error) {
	return calendar.YearOf(day, v)
}

// CurrentYear returns the year of now's civil day in calendar v.
func CurrentYear(now time.Time, v calendar.Variant) (int, error) {
	return YearOf(calendar.Today(now), v)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
