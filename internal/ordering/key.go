// Package ordering generates fractional ordering keys for user-sorted lists.
//
// A list is a sequence of entries sorted by Key. New keys are always computed
// between two neighbours, so inserting or moving one member never rewrites the
// others. An empty key on an entry means the store never persisted one.
package ordering

import (
	"fmt"

	"github.com/starford/weeks/internal/apperr"
)

const (
	minDigit = 'a'
	maxDigit = 'z'
	belowMin = minDigit - 1
	aboveMax = maxDigit + 1
)

// MaxKeyLength is the length above which a list is scheduled for renormalization.
const MaxKeyLength = 64

// Midpoint returns a key strictly between low and high.
// An empty low means "no lower bound" and an empty high means "no upper bound".
func Midpoint(low, high string) (string, error) {
	if high != "" && low >= high {
		return "", fmt.Errorf("ordering: midpoint(%q, %q): %w", low, high, apperr.ErrInvertedBounds)
	}
	key := midString(low, high)
	if key <= low || (high != "" && key >= high) {
		return "", fmt.Errorf("ordering: midpoint(%q, %q): %w", low, high, apperr.ErrNoKeySpace)
	}
	return key, nil
}

func digitAt(s string, i, fallback int) int {
	if i < len(s) {
		return int(s[i])
	}
	return fallback
}

// midString walks the common prefix of prev and next and appends the middle
// digit of the first position where they diverge. Results never end in minDigit,
// which keeps room below every generated key.
func midString(prev, next string) string {
	var buf []byte
	pos := 0
	p, n := digitAt(prev, pos, belowMin), digitAt(next, pos, aboveMax)
	for p == n {
		buf = append(buf, byte(p))
		pos++
		p, n = digitAt(prev, pos, belowMin), digitAt(next, pos, aboveMax)
	}
	pos++

	switch {
	case p == belowMin:
		// prev is a prefix of next: copy leading a's of next, then split below it.
		for n == minDigit {
			n = digitAt(next, pos, aboveMax)
			pos++
			buf = append(buf, minDigit)
		}
		if n == minDigit+1 {
			buf = append(buf, minDigit)
			n = aboveMax
		}
	case p+1 == n:
		// Adjacent digits: keep prev's digit and extend past prev's tail.
		buf = append(buf, byte(p))
		n = aboveMax
		for {
			p = digitAt(prev, pos, belowMin)
			pos++
			if p != maxDigit {
				break
			}
			buf = append(buf, maxDigit)
		}
	}
	return string(append(buf, byte((p+n+1)/2)))
}
