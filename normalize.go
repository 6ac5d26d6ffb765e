package phoneinput

import (
	"strings"

	"golang.org/x/text/width"
)

// Normalize canonicalizes raw text-field content into "+<digits>" or "<digits>".
//
// Full-width characters are folded first, so "＋４４" counts as "+44". A plus
// sign is kept only when it appears before the first digit; every other
// non-digit is dropped. A leading international prefix "00" becomes "+".
// Normalize is idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	folded := width.Fold.String(raw)

	var b strings.Builder
	b.Grow(len(folded))

	plus := false
	seenDigit := false
	for _, r := range folded {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			b.WriteRune(r)
		case r == '+' && !seenDigit:
			plus = true
		}
	}

	digits := b.String()
	if plus {
		return "+" + digits
	}
	if strings.HasPrefix(digits, "00") {
		return "+" + digits[2:]
	}
	return digits
}

// digitsOnly drops every rune that is not an ASCII digit.
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
