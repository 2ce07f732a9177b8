package calendar

import (
	"fmt"
	"strings"

	"github.com/starford/weeks/internal/apperr"
)

// Variant tags a calendar system. The numeric value is what the store persists.
type Variant int

const (
	Gregorian Variant = iota
	Persian
	ChineseLunar
	ArabicHijri
)

var variantNames = [...]string{
	Gregorian:    "Gregorian",
	Persian:      "Persian",
	ChineseLunar: "Chinese",
	ArabicHijri:  "Arabic",
}

// Variants lists every supported calendar system.
func Variants() []Variant {
	return []Variant{Gregorian, Persian, ChineseLunar, ArabicHijri}
}

// VariantNames returns the accepted variant names.
func VariantNames() []string {
	return variantNames[:]
}

func (v Variant) String() string {
	if !v.Valid() {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// Valid reports whether v is one of the known variants.
func (v Variant) Valid() bool {
	return v >= 0 && int(v) < len(variantNames)
}

// ParseVariant accepts a variant name ("Gregorian", "persian", ...).
func ParseVariant(s string) (Variant, error) {
	name := strings.TrimSpace(s)
	for i, n := range variantNames {
		if strings.EqualFold(n, name) {
			return Variant(i), nil
		}
	}
	return Gregorian, fmt.Errorf("calendar: variant %q: %w", s, apperr.ErrInvalidInput)
}

// Direction returns the text direction the variant is natively written in.
func (v Variant) Direction() string {
	switch v {
	case Persian, ArabicHijri:
		return DirectionRTL
	default:
		return DirectionLTR
	}
}

var calendars = [...]Calendar{
	Gregorian:    gregorianCalendar{},
	Persian:      persianCalendar{},
	ChineseLunar: chineseCalendar{},
	ArabicHijri:  arabicCalendar{},
}

// For returns the calendar implementing v.
func For(v Variant) (Calendar, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("calendar: %s: %w", v, apperr.ErrInvalidInput)
	}
	return calendars[v], nil
}
