package calendar

// Tabular Islamic civil calendar (30-year cycle, leap years 2, 5, 7, 10, 13,
// 16, 18, 21, 24, 26 and 29) computed on fixed day numbers, where fixed day 1
// is 0001-01-01 of the proleptic Gregorian calendar.

const (
	// unixEpochFixed is the fixed day number of 1970-01-01.
	unixEpochFixed = 719163
	// hijriEpochFixed is the fixed day number of 1 Muharram 1 (622-07-16 Julian).
	hijriEpochFixed = 227015
)

var (
	arabicFirstDay = Day(hijriEpochFixed - unixEpochFixed)
	arabicLastDay  = FromCivil(9999, 12, 31)
)

type arabicCalendar struct{}

func (arabicCalendar) Variant() Variant { return ArabicHijri }

func (arabicCalendar) Supports(lang Language) bool { return arabicNames.supports(lang) }

func (arabicCalendar) Convert(day Day) (Date, error) {
	if day < arabicFirstDay || day > arabicLastDay {
		return Date{}, outOfRange(ArabicHijri, day)
	}
	y, m, d := hijriFromFixed(int64(day) + unixEpochFixed)
	return Date{
		Variant:      ArabicHijri,
		Day:          day,
		Year:         int(y),
		Month:        int(m),
		DayOfMonth:   int(d),
		Weekday:      day.Weekday(),
		MonthsInYear: 12,
	}, nil
}

func (c arabicCalendar) Render(date Date, lang Language) LocalizedDate {
	lang = arabicNames.resolve(lang)
	return compose(date, lang, lang.LocalizeDigits(itoa(date.DayOfMonth)), c.MonthName(date.Month, false, lang))
}

func (arabicCalendar) MonthName(month int, _ bool, lang Language) string {
	return arabicNames.month(month, false, lang)
}

func (arabicCalendar) Metadata(lang Language) Metadata {
	return arabicNames.metadata(ArabicHijri, lang)
}

func fixedFromHijri(year, month, day int64) int64 {
	return day +
		29*(month-1) + month/2 +
		(year-1)*354 + floorDiv(3+11*year, 30) +
		hijriEpochFixed - 1
}

func hijriFromFixed(fixed int64) (year, month, day int64) {
	year = floorDiv(30*(fixed-hijriEpochFixed)+10646, 10631)
	month = floorDiv(11*(fixed-fixedFromHijri(year, 1, 1))+330, 325)
	day = fixed - fixedFromHijri(year, month, 1) + 1
	return year, month, day
}

// HijriLeapYear reports whether year has 355 days in the tabular calendar.
func HijriLeapYear(year int) bool {
	return floorMod(14+11*int64(year), 30) < 11
}
