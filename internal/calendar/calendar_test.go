package calendar

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/starford/weeks/internal/apperr"
)

func TestFromTime_LocalCivilDay(t *testing.T) {
	instant := time.Date(2024, 7, 12, 22, 30, 0, 0, time.UTC)
	if got := FromTime(instant); got != 19916 {
		t.Errorf("UTC day = %d, want 19916", got)
	}
	tehran := time.FixedZone("IRST", 3*3600+1800)
	if got := FromTime(instant.In(tehran)); got != 19917 {
		t.Errorf("Tehran day = %d, want 19917", got)
	}
	before := time.Date(1969, 12, 31, 23, 0, 0, 0, time.UTC)
	if got := FromTime(before); got != -1 {
		t.Errorf("pre-epoch day = %d, want -1", got)
	}
}

func TestFromCivil(t *testing.T) {
	tests := []struct {
		y, m, d int
		want    Day
	}{
		{1970, 1, 1, 0},
		{1969, 12, 31, -1},
		{2024, 7, 13, 19917},
		{2000, 3, 1, 11017},
	}
	for _, tc := range tests {
		if got := FromCivil(tc.y, tc.m, tc.d); got != tc.want {
			t.Errorf("FromCivil(%d, %d, %d) = %d, want %d", tc.y, tc.m, tc.d, got, tc.want)
		}
		y, m, d := tc.want.Civil()
		if y != tc.y || m != tc.m || d != tc.d {
			t.Errorf("Civil(%d) = %d-%d-%d", tc.want, y, m, d)
		}
	}
}

func TestWeekday_EpochAnchor(t *testing.T) {
	tests := []struct {
		day  Day
		want Weekday
	}{
		{0, Thursday},
		{1, Friday},
		{-1, Wednesday},
		{-7, Thursday},
		{19917, Saturday},
	}
	for _, tc := range tests {
		if got := tc.day.Weekday(); got != tc.want {
			t.Errorf("Weekday(%d) = %s, want %s", tc.day, got, tc.want)
		}
	}
}

func TestWeekday_AgreesAcrossCalendars(t *testing.T) {
	for day := FromCivil(1990, 1, 1); day <= FromCivil(2030, 12, 31); day += 3 {
		want := Weekday(((int(day) % 7) + 7) % 7)
		for _, v := range Variants() {
			date, err := ToNativeDate(day, v)
			if err != nil {
				t.Fatalf("ToNativeDate(%d, %s): %v", day, v, err)
			}
			if date.Weekday != want {
				t.Fatalf("%s weekday of %d = %s, want %s", v, day, date.Weekday, want)
			}
		}
	}
}

func TestWeekday_MatchesTimePackage(t *testing.T) {
	goToOurs := map[time.Weekday]Weekday{
		time.Sunday: Sunday, time.Monday: Monday, time.Tuesday: Tuesday,
		time.Wednesday: Wednesday, time.Thursday: Thursday, time.Friday: Friday,
		time.Saturday: Saturday,
	}
	for day := Day(-400); day < 400; day++ {
		if got, want := day.Weekday(), goToOurs[day.Time().Weekday()]; got != want {
			t.Fatalf("Weekday(%d) = %s, want %s", day, got, want)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	w, err := ParseWeekday("sat")
	if err != nil || w != Saturday {
		t.Errorf("ParseWeekday(sat) = %s, %v", w, err)
	}
	if _, err := ParseWeekday("Funday"); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestParseVariantAndLanguage(t *testing.T) {
	v, err := ParseVariant("persian")
	if err != nil || v != Persian {
		t.Errorf("ParseVariant = %s, %v", v, err)
	}
	if _, err := ParseVariant("Julian"); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("err = %v", err)
	}
	l, err := ParseLanguage("ZH")
	if err != nil || l != Chinese {
		t.Errorf("ParseLanguage = %s, %v", l, err)
	}
	if _, err := ParseLanguage("de"); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("err = %v", err)
	}
}

func TestGregorian_Convert(t *testing.T) {
	date, err := ToNativeDate(19917, Gregorian)
	if err != nil {
		t.Fatal(err)
	}
	if date.Year != 2024 || date.Month != 7 || date.DayOfMonth != 13 {
		t.Errorf("date = %+v", date)
	}
}

func TestPersian_Convert(t *testing.T) {
	tests := []struct {
		day           Day
		y, m, d       int
		wantWeekdayFa string
	}{
		{19917, 1403, 4, 23, "شنبه"},
		{FromCivil(2024, 3, 20), 1403, 1, 1, "چهارشنبه"},
		{FromCivil(2024, 3, 19), 1402, 12, 29, "سه شنبه"},
	}
	for _, tc := range tests {
		date, err := ToNativeDate(tc.day, Persian)
		if err != nil {
			t.Fatalf("ToNativeDate(%d): %v", tc.day, err)
		}
		if date.Year != tc.y || date.Month != tc.m || date.DayOfMonth != tc.d {
			t.Errorf("day %d = %d/%d/%d, want %d/%d/%d", tc.day, date.Year, date.Month, date.DayOfMonth, tc.y, tc.m, tc.d)
		}
		if got := weekdayFull[Farsi][date.Weekday]; got != tc.wantWeekdayFa {
			t.Errorf("day %d weekday = %q, want %q", tc.day, got, tc.wantWeekdayFa)
		}
	}
}

func TestPersian_RenderFarsi(t *testing.T) {
	ld, err := Render(19917, Persian, Farsi)
	if err != nil {
		t.Fatal(err)
	}
	if ld.DayOfMonth != "۲۳" || ld.Month != "تیر" || ld.Year != "۱۴۰۳" || ld.Weekday != "شنبه" {
		t.Errorf("rendered = %+v", ld)
	}
	if want := "شنبه، ۲۳ تیر ۱۴۰۳"; ld.Full != want {
		t.Errorf("full = %q, want %q", ld.Full, want)
	}
	if ld.Day != 19917 {
		t.Errorf("unix day = %d", ld.Day)
	}
}

func TestChinese_LeapMonth(t *testing.T) {
	// 2023 repeats its second month; 2023-04-01 falls in the repeat.
	date, err := ToNativeDate(FromCivil(2023, 4, 1), ChineseLunar)
	if err != nil {
		t.Fatal(err)
	}
	if date.Year != 2023 || date.Month != 2 || !date.LeapMonth {
		t.Fatalf("date = %+v, want leap month 2 of 2023", date)
	}
	if date.MonthsInYear != 13 {
		t.Errorf("months in year = %d, want 13", date.MonthsInYear)
	}

	cal, _ := For(ChineseLunar)
	if got := cal.Render(date, English).Month; got != "Leap-2nd-Lunar-Month" {
		t.Errorf("english month = %q", got)
	}
	zh := cal.Render(date, Chinese)
	if zh.Month != "闰二月" {
		t.Errorf("chinese month = %q", zh.Month)
	}
	if zh.DayOfMonth != "十一" {
		t.Errorf("chinese day = %q", zh.DayOfMonth)
	}
	if want := "星期六, 十一 闰二月 2023"; zh.Full != want {
		t.Errorf("full = %q, want %q", zh.Full, want)
	}
}

func TestChinese_RegularYear(t *testing.T) {
	date, err := ToNativeDate(FromCivil(2024, 2, 10), ChineseLunar)
	if err != nil {
		t.Fatal(err)
	}
	if date.Year != 2024 || date.Month != 1 || date.DayOfMonth != 1 || date.LeapMonth {
		t.Errorf("date = %+v, want 2024/1/1", date)
	}
	if date.MonthsInYear != 12 {
		t.Errorf("months in year = %d, want 12", date.MonthsInYear)
	}
}

func TestChinese_OutOfRange(t *testing.T) {
	if _, err := ToNativeDate(FromCivil(1850, 1, 1), ChineseLunar); !errors.Is(err, apperr.ErrOutOfRange) {
		t.Errorf("err = %v, want ErrOutOfRange", err)
	}
	if _, err := ToNativeDate(FromCivil(2150, 1, 1), ChineseLunar); !errors.Is(err, apperr.ErrOutOfRange) {
		t.Errorf("err = %v, want ErrOutOfRange", err)
	}
}

func TestArabic_Convert(t *testing.T) {
	tests := []struct {
		day     Day
		y, m, d int
	}{
		{FromCivil(2024, 7, 7), 1445, 12, 30},
		{FromCivil(2024, 7, 8), 1446, 1, 1},
		{Day(hijriEpochFixed - unixEpochFixed), 1, 1, 1},
	}
	for _, tc := range tests {
		date, err := ToNativeDate(tc.day, ArabicHijri)
		if err != nil {
			t.Fatalf("ToNativeDate(%d): %v", tc.day, err)
		}
		if date.Year != tc.y || date.Month != tc.m || date.DayOfMonth != tc.d {
			t.Errorf("day %d = %d/%d/%d, want %d/%d/%d", tc.day, date.Year, date.Month, date.DayOfMonth, tc.y, tc.m, tc.d)
		}
	}
	if _, err := ToNativeDate(Day(hijriEpochFixed-unixEpochFixed-1), ArabicHijri); !errors.Is(err, apperr.ErrOutOfRange) {
		t.Errorf("err = %v, want ErrOutOfRange", err)
	}
}

func TestArabic_RoundTripsFixedDays(t *testing.T) {
	for fixed := int64(hijriEpochFixed); fixed < hijriEpochFixed+40000; fixed += 13 {
		y, m, d := hijriFromFixed(fixed)
		if m < 1 || m > 12 || d < 1 || d > 30 {
			t.Fatalf("fixed %d -> %d/%d/%d", fixed, y, m, d)
		}
		if back := fixedFromHijri(y, m, d); back != fixed {
			t.Fatalf("fixed %d -> %d/%d/%d -> %d", fixed, y, m, d, back)
		}
	}
}

func TestHijriLeapYear(t *testing.T) {
	leaps := map[int]bool{2: true, 5: true, 7: true, 10: true, 13: true, 16: true, 18: true, 21: true, 24: true, 26: true, 29: true}
	for y := 1; y <= 30; y++ {
		if got := HijriLeapYear(y); got != leaps[y] {
			t.Errorf("HijriLeapYear(%d) = %v", y, got)
		}
	}
}

func TestArabic_RenderDigits(t *testing.T) {
	ld, err := Render(FromCivil(2024, 7, 8), ArabicHijri, Arabic)
	if err != nil {
		t.Fatal(err)
	}
	if ld.DayOfMonth != "١" || ld.Year != "١٤٤٦" || ld.Month != "مُحَرَّم" {
		t.Errorf("rendered = %+v", ld)
	}
	if !strings.Contains(ld.Full, "، ") {
		t.Errorf("full %q should use the Arabic comma", ld.Full)
	}
}

func TestRender_EnglishUsesCodesAndComma(t *testing.T) {
	ld, err := Render(19917, Gregorian, English)
	if err != nil {
		t.Fatal(err)
	}
	if ld.Weekday != "SAT" {
		t.Errorf("weekday = %q", ld.Weekday)
	}
	if want := "Saturday, 13 July 2024"; ld.Full != want {
		t.Errorf("full = %q, want %q", ld.Full, want)
	}
}

func TestRender_UnsupportedLanguageFallsBackToEnglish(t *testing.T) {
	tests := []struct {
		v    Variant
		lang Language
	}{
		{Persian, Chinese},
		{Persian, Arabic},
		{ChineseLunar, Farsi},
		{ChineseLunar, Arabic},
		{ArabicHijri, Chinese},
	}
	for _, tc := range tests {
		got, err := Render(19917, tc.v, tc.lang)
		if err != nil {
			t.Fatalf("Render(%s, %s): %v", tc.v, tc.lang, err)
		}
		want, _ := Render(19917, tc.v, English)
		if got != want {
			t.Errorf("Render(%s, %s) = %+v, want English %+v", tc.v, tc.lang, got, want)
		}
	}
}

func TestLocalizeDigits(t *testing.T) {
	tests := []struct {
		lang Language
		in   string
		want string
	}{
		{English, "2024", "2024"},
		{Chinese, "2024", "2024"},
		{Farsi, "1403", "۱۴۰۳"},
		{Arabic, "1446", "١٤٤٦"},
		{Farsi, "0123456789", "۰۱۲۳۴۵۶۷۸۹"},
	}
	for _, tc := range tests {
		if got := tc.lang.LocalizeDigits(tc.in); got != tc.want {
			t.Errorf("%s.LocalizeDigits(%q) = %q, want %q", tc.lang, tc.in, got, tc.want)
		}
	}
}

func TestCalendarMetadata(t *testing.T) {
	md, err := CalendarMetadata(Persian, Farsi)
	if err != nil {
		t.Fatal(err)
	}
	if md.Name != "تقویم هجری شمسی" || md.Direction != DirectionRTL || md.Language != "fa" {
		t.Errorf("metadata = %+v", md)
	}
	if len(md.MonthNames) != 12 || md.MonthNames[0] != "فروردین" {
		t.Errorf("month names = %v", md.MonthNames)
	}
	if len(md.SeasonNames) != 4 || md.SeasonNames[0] != "بهار" {
		t.Errorf("season names = %v", md.SeasonNames)
	}

	md, _ = CalendarMetadata(ChineseLunar, Farsi)
	if md.Language != "en" || md.Name != "Chinese Calendar" || md.Direction != DirectionLTR {
		t.Errorf("fallback metadata = %+v", md)
	}
	md.MonthNames[0] = "changed"
	if again, _ := CalendarMetadata(ChineseLunar, English); again.MonthNames[0] != "1st-Lunar-Month" {
		t.Error("metadata must not share the name tables")
	}
}

func TestVariantDirection(t *testing.T) {
	want := map[Variant]string{Gregorian: DirectionLTR, Persian: DirectionRTL, ChineseLunar: DirectionLTR, ArabicHijri: DirectionRTL}
	for v, dir := range want {
		if got := v.Direction(); got != dir {
			t.Errorf("%s direction = %s, want %s", v, got, dir)
		}
	}
}

func TestDatesBetween(t *testing.T) {
	dates, err := DatesBetween(19916, 19922, Gregorian, English)
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 7 {
		t.Fatalf("len = %d", len(dates))
	}
	for i, d := range dates {
		if d.Day != Day(19916+i) {
			t.Errorf("dates[%d].Day = %d", i, d.Day)
		}
	}
	if _, err := DatesBetween(10, 9, Gregorian, English); !errors.Is(err, apperr.ErrBadDaysRange) {
		t.Errorf("inverted err = %v", err)
	}
	if _, err := DatesBetween(0, MaxRangeDays+1, Gregorian, English); !errors.Is(err, apperr.ErrLongDaysRange) {
		t.Errorf("long err = %v", err)
	}
	if _, err := DatesBetween(0, MaxRangeDays, Gregorian, English); err != nil {
		t.Errorf("max span err = %v", err)
	}
}

func TestSeasonName(t *testing.T) {
	if got := SeasonName(3, Chinese); got != "秋季" {
		t.Errorf("SeasonName(3, zh) = %q", got)
	}
	if got := SeasonName(1, English); got != "Spring" {
		t.Errorf("SeasonName(1, en) = %q", got)
	}
}
