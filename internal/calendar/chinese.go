package calendar

import lunar "github.com/6tail/lunar-go/calendar"

// Range covered by the lunisolar tables used for conversion.
var (
	chineseFirstDay = FromCivil(1901, 1, 1)
	chineseLastDay  = FromCivil(2099, 12, 31)
)

type chineseCalendar struct{}

func (chineseCalendar) Variant() Variant { return ChineseLunar }

func (chineseCalendar) Supports(lang Language) bool { return chineseNames.supports(lang) }

func (chineseCalendar) Convert(day Day) (Date, error) {
	if day < chineseFirstDay || day > chineseLastDay {
		return Date{}, outOfRange(ChineseLunar, day)
	}
	y, m, d := day.Civil()
	ld := lunar.NewSolarFromYmd(y, m, d).GetLunar()

	// Leap months come back negated.
	month, leap := ld.GetMonth(), false
	if month < 0 {
		month, leap = -month, true
	}
	months := 12
	if lunar.NewLunarYear(ld.GetYear()).GetLeapMonth() > 0 {
		months = 13
	}
	return Date{
		Variant:      ChineseLunar,
		Day:          day,
		Year:         ld.GetYear(),
		Month:        month,
		DayOfMonth:   ld.GetDay(),
		Weekday:      day.Weekday(),
		LeapMonth:    leap,
		MonthsInYear: months,
	}, nil
}

func (c chineseCalendar) Render(date Date, lang Language) LocalizedDate {
	lang = chineseNames.resolve(lang)
	dayOfMonth := itoa(date.DayOfMonth)
	if lang == Chinese {
		dayOfMonth = chineseDayName(date.DayOfMonth)
	}
	return compose(date, lang, dayOfMonth, c.MonthName(date.Month, date.LeapMonth, lang))
}

func (chineseCalendar) MonthName(month int, leap bool, lang Language) string {
	return chineseNames.month(month, leap, lang)
}

func (chineseCalendar) Metadata(lang Language) Metadata {
	return chineseNames.metadata(ChineseLunar, lang)
}

var chineseDayNames = [30]string{
	"初一", "初二", "初三", "初四", "初五", "初六", "初七", "初八", "初九", "初十",
	"十一", "十二", "十三", "十四", "十五", "十六", "十七", "十八", "十九", "二十",
	"廿一", "廿二", "廿三", "廿四", "廿五", "廿六", "廿七", "廿八", "廿九", "三十",
}

// chineseDayName returns the traditional name of a lunar day of month (初一 .. 三十).
func chineseDayName(day int) string {
	if day < 1 || day > len(chineseDayNames) {
		return itoa(day)
	}
	return chineseDayNames[day-1]
}
