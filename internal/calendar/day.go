package calendar

import "time"

const secondsPerDay = 24 * 60 * 60

// Day counts whole days since 1970-01-01 in local civil time. Day 0 is a Thursday.
type Day int

// FromTime truncates t to the civil day it falls on in its own location.
// The same instant can therefore map to different days for different UTC offsets.
func FromTime(t time.Time) Day {
	_, offset := t.Zone()
	return Day(floorDiv(t.Unix()+int64(offset), secondsPerDay))
}

// Today returns the civil day of now.
func Today(now time.Time) Day {
	return FromTime(now)
}

// FromCivil returns the day of a proleptic Gregorian date.
func FromCivil(year, month, day int) Day {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return Day(floorDiv(t.Unix(), secondsPerDay))
}

// Time returns midnight of d as a UTC time whose calendar fields are the civil date of d.
func (d Day) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

// Civil returns the proleptic Gregorian year, month and day of d.
func (d Day) Civil() (year, month, day int) {
	t := d.Time()
	return t.Year(), int(t.Month()), t.Day()
}

// Weekday returns the weekday of d. It does not depend on any calendar variant.
func (d Day) Weekday() Weekday {
	return Weekday(floorMod(int64(d), 7))
}

// AddDays returns d shifted by n days.
func (d Day) AddDays(n int) Day {
	return d + Day(n)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
