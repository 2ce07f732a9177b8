package calendar

var (
	gregorianFirstDay = FromCivil(1, 1, 1)
	gregorianLastDay  = FromCivil(9999, 12, 31)
)

type gregorianCalendar struct{}

func (gregorianCalendar) Variant() Variant { return Gregorian }

func (gregorianCalendar) Supports(lang Language) bool { return gregorianNames.supports(lang) }

func (gregorianCalendar) Convert(day Day) (Date, error) {
	if day < gregorianFirstDay || day > gregorianLastDay {
		return Date{}, outOfRange(Gregorian, day)
	}
	y, m, d := day.Civil()
	return Date{
		Variant:      Gregorian,
		Day:          day,
		Year:         y,
		Month:        m,
		DayOfMonth:   d,
		Weekday:      day.Weekday(),
		MonthsInYear: 12,
	}, nil
}

func (c gregorianCalendar) Render(date Date, lang Language) LocalizedDate {
	lang = gregorianNames.resolve(lang)
	return compose(date, lang, lang.LocalizeDigits(itoa(date.DayOfMonth)), c.MonthName(date.Month, false, lang))
}

func (gregorianCalendar) MonthName(month int, _ bool, lang Language) string {
	return gregorianNames.month(month, false, lang)
}

func (gregorianCalendar) Metadata(lang Language) Metadata {
	return gregorianNames.metadata(Gregorian, lang)
}
