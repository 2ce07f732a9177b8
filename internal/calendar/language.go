package calendar

import (
	"fmt"
	"strings"

	"github.com/starford/weeks/internal/apperr"
)

// Language selects the names, digits and punctuation used when rendering dates.
type Language int

const (
	English Language = iota
	Farsi
	Chinese
	Arabic
)

const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
)

var languageCodes = [...]string{
	English: "en",
	Farsi:   "fa",
	Chinese: "zh",
	Arabic:  "ar",
}

var digitTables = [...]*strings.Replacer{
	Farsi:  strings.NewReplacer("0", "۰", "1", "۱", "2", "۲", "3", "۳", "4", "۴", "5", "۵", "6", "۶", "7", "۷", "8", "۸", "9", "۹"),
	Arabic: strings.NewReplacer("0", "٠", "1", "١", "2", "٢", "3", "٣", "4", "٤", "5", "٥", "6", "٦", "7", "٧", "8", "٨", "9", "٩"),
}

// Code returns the ISO 639-1 code of the language.
func (l Language) Code() string {
	if l < 0 || int(l) >= len(languageCodes) {
		return languageCodes[English]
	}
	return languageCodes[l]
}

func (l Language) String() string {
	return l.Code()
}

// ParseLanguage accepts an ISO 639-1 code ("en", "fa", "zh", "ar").
func ParseLanguage(s string) (Language, error) {
	code := strings.ToLower(strings.TrimSpace(s))
	for i, c := range languageCodes {
		if c == code {
			return Language(i), nil
		}
	}
	return English, fmt.Errorf("calendar: language %q: %w", s, apperr.ErrInvalidInput)
}

// LanguageCodes returns the accepted language codes.
func LanguageCodes() []string {
	return languageCodes[:]
}

// Direction returns the default text direction of the language.
func (l Language) Direction() string {
	switch l {
	case Farsi, Arabic:
		return DirectionRTL
	default:
		return DirectionLTR
	}
}

// LocalizeDigits replaces Western digits with the language's native digits.
// English and Chinese keep Western digits.
func (l Language) LocalizeDigits(s string) string {
	if l < 0 || int(l) >= len(digitTables) || digitTables[l] == nil {
		return s
	}
	return digitTables[l].Replace(s)
}

func (l Language) listSeparator() string {
	switch l {
	case Farsi, Arabic:
		return "،"
	default:
		return ","
	}
}

// MarshalText encodes the language as its code.
func (l Language) MarshalText() ([]byte, error) {
	return []byte(l.Code()), nil
}

// UnmarshalText decodes a language code.
func (l *Language) UnmarshalText(b []byte) error {
	v, err := ParseLanguage(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
