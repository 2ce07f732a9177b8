package calendar

// Weekday tables are indexed by Weekday, so they start on Thursday.

var weekdayFull = map[Language][DaysPerWeek]string{
	English: {"Thursday", "Friday", "Saturday", "Sunday", "Monday", "Tuesday", "Wednesday"},
	Farsi:   {"پنج شنبه", "جمعه", "شنبه", "یک شنبه", "دوشنبه", "سه شنبه", "چهارشنبه"},
	Chinese: {"星期四", "星期五", "星期六", "星期日", "星期一", "星期二", "星期三"},
	Arabic:  {"الخميس", "الجمعة", "السبت", "الأحد", "الاثنين", "الثلاثاء", "الأربعاء"},
}

var seasonNames = map[Language][4]string{
	English: {"Spring", "Summer", "Autumn", "Winter"},
	Farsi:   {"بهار", "تابستان", "پاییز", "زمستان"},
	Chinese: {"春季", "夏季", "秋季", "冬季"},
	Arabic:  {"فصل الربیع", "فصل الصیف", "فصل الخریف", "فصل الشتاء"},
}

var gregorianNames = nameTable{
	calendar: map[Language]string{
		English: "Gregorian Calendar",
		Farsi:   "تقویم میلادی",
		Chinese: "公历",
		Arabic:  "التقويم الميلادي",
	},
	months: map[Language][12]string{
		English: {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		Farsi:   {"ژانویه", "فوریه", "مارس", "آوریل", "می", "جون", "جولای", "آگوست", "سپتامبر", "اکتبر", "نوامبر", "دسامبر"},
		Chinese: {"一月", "二月", "三月", "四月", "五月", "六月", "七月", "八月", "九月", "十月", "十一月", "十二月"},
		Arabic:  {"يَنايِر", "فِبْرايِر", "مارِس", "أبْريل", "مايو", "يُونِيُو", "يُولِيُو", "أغُسْطُس", "سِبْتَمْبِر", "أُكْتوبِر", "نُوفَمْبِر", "دِيسَمْبِر"},
	},
}

var persianNames = nameTable{
	calendar: map[Language]string{
		English: "Persian Calendar",
		Farsi:   "تقویم هجری شمسی",
	},
	months: map[Language][12]string{
		English: {"Farvardin", "Ordibehesht", "Khordad", "Tir", "Mordad", "Shahrivar", "Mehr", "Aban", "Azar", "Dey", "Bahman", "Esfand"},
		Farsi:   {"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور", "مهر", "آبان", "آذر", "دی", "بهمن", "اسفند"},
	},
}

var chineseNames = nameTable{
	calendar: map[Language]string{
		English: "Chinese Calendar",
		Chinese: "农历",
	},
	months: map[Language][12]string{
		English: {"1st-Lunar-Month", "2nd-Lunar-Month", "3rd-Lunar-Month", "4th-Lunar-Month", "5th-Lunar-Month", "6th-Lunar-Month", "7th-Lunar-Month", "8th-Lunar-Month", "9th-Lunar-Month", "10th-Lunar-Month", "11th-Lunar-Month", "12th-Lunar-Month"},
		Chinese: {"正月", "二月", "三月", "四月", "五月", "六月", "七月", "八月", "九月", "十月", "冬月", "腊月"},
	},
	leapPrefix: map[Language]string{
		English: "Leap-",
		Chinese: "闰",
	},
}

var arabicNames = nameTable{
	calendar: map[Language]string{
		English: "Arabic Calendar",
		Farsi:   "تقویم هجری قمری",
		Arabic:  "التقويم الهجري",
	},
	months: map[Language][12]string{
		English: {"Muharram", "Safar", "Rabi’ al-Awwal", "Rabi’ al-Thani", "Jumada al-Awwal", "Jumada al-Thani", "Rajab", "Sha’ban", "Ramadan", "Shawwal", "Dhu al-Qi’dah", "Dhu al-Hijjah"},
		Farsi:   {"محرم", "صفر", "ربیع الاول", "ربیع الثانی", "جمادی الاول", "جمادی الثانی", "رجب", "شعبان", "رمضان", "شوال", "ذیقعده", "ذیحجه"},
		Arabic:  {"مُحَرَّم", "صَفَر", "رَبِيعُ الأَوَّلِ", "رَبِيعُ الثَّانِي", "جُمَادَىٰ الأُولَىٰ", "جُمَادَىٰ الآخِرَة", "رَجَب", "شَعْبَان", "رَمَضَان", "شَوَّال", "ذُو القَعْدَة", "ذُو الحِجَّة"},
	},
}

// nameTable holds the per-language names of one calendar. A language is
// supported by the calendar when it has month names.
type nameTable struct {
	calendar   map[Language]string
	months     map[Language][12]string
	leapPrefix map[Language]string
}

func (n nameTable) supports(lang Language) bool {
	_, ok := n.months[lang]
	return ok
}

// resolve falls back to English for languages the calendar has no names for.
func (n nameTable) resolve(lang Language) Language {
	if n.supports(lang) {
		return lang
	}
	return English
}

func (n nameTable) month(month int, leap bool, lang Language) string {
	lang = n.resolve(lang)
	if month < 1 || month > 12 {
		return lang.LocalizeDigits(itoa(month))
	}
	name := n.months[lang][month-1]
	if leap {
		name = n.leapPrefix[lang] + name
	}
	return name
}

func (n nameTable) metadata(v Variant, lang Language) Metadata {
	lang = n.resolve(lang)
	months := n.months[lang]
	seasons := seasonNames[lang]
	return Metadata{
		Variant:     v,
		VariantName: v.String(),
		Name:        n.calendar[lang],
		Language:    lang.Code(),
		Direction:   lang.Direction(),
		MonthNames:  append([]string(nil), months[:]...),
		SeasonNames: append([]string(nil), seasons[:]...),
	}
}

// weekdayName returns the name used in the weekday field of a rendered date:
// the upper-case code in English, the full name otherwise.
func weekdayName(lang Language, w Weekday) string {
	if lang == English {
		return w.String()
	}
	return weekdayFull[lang][w]
}

// SeasonName returns the name of season (1..4) in lang.
func SeasonName(season int, lang Language) string {
	if season < 1 || season > 4 {
		return lang.LocalizeDigits(itoa(season))
	}
	names, ok := seasonNames[lang]
	if !ok {
		names = seasonNames[English]
	}
	return names[season-1]
}
