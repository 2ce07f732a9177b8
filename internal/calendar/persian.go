package calendar

import ptime "github.com/yaa110/go-persian-calendar"

// The Solar Hijri era starts on 622-03-22 (1 Farvardin 1).
var (
	persianFirstDay = FromCivil(622, 3, 22)
	persianLastDay  = FromCivil(9999, 12, 31)
)

type persianCalendar struct{}

func (persianCalendar) Variant() Variant { return Persian }

func (persianCalendar) Supports(lang Language) bool { return persianNames.supports(lang) }

func (persianCalendar) Convert(day Day) (Date, error) {
	if day < persianFirstDay || day > persianLastDay {
		return Date{}, outOfRange(Persian, day)
	}
	pt := ptime.New(day.Time())
	return Date{
		Variant:      Persian,
		Day:          day,
		Year:         pt.Year(),
		Month:        int(pt.Month()),
		DayOfMonth:   pt.Day(),
		Weekday:      day.Weekday(),
		MonthsInYear: 12,
	}, nil
}

func (c persianCalendar) Render(date Date, lang Language) LocalizedDate {
	lang = persianNames.resolve(lang)
	return compose(date, lang, lang.LocalizeDigits(itoa(date.DayOfMonth)), c.MonthName(date.Month, false, lang))
}

func (persianCalendar) MonthName(month int, _ bool, lang Language) string {
	return persianNames.month(month, false, lang)
}

func (persianCalendar) Metadata(lang Language) Metadata {
	return persianNames.metadata(Persian, lang)
}
