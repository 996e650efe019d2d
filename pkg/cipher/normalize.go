package cipher

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filler pads partial rows, columns and blocks before encryption.
const Filler = 'X'

// Normalize keeps only the letters A-Z/a-z and upper-cases them.
func Normalize(text string) string {
	var b strings.Builder

	b.Grow(len(text))

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch {
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c)
		case c >= 'a' && c <= 'z':
			b.WriteByte(c - 'a' + 'A')
		}
	}

	return b.String()
}

// NormalizeBinary keeps only the Bacon symbols A/B (either case) and
// upper-cases them.
func NormalizeBinary(text string) string {
	var b strings.Builder

	b.Grow(len(text))

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case 'A', 'a':
			b.WriteByte('A')
		case 'B', 'b':
			b.WriteByte('B')
		}
	}

	return b.String()
}

// FoldDiacritics strips combining marks so that accented Latin letters
// survive [Normalize] as their base letter ("Café" becomes "Cafe").
// Characters without a decomposition are left untouched.
func FoldDiacritics(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(t, text)
	if err != nil {
		return text
	}

	return folded
}

// stripPadding removes trailing [Filler] characters from decrypted output.
func stripPadding(s string) string {
	return strings.TrimRight(s, string(Filler))
}

// padTo pads s with [Filler] up to n characters.
func padTo(s string, n int) string {
	if len(s) >= n {
		return s
	}

	return s + strings.Repeat(string(Filler), n-len(s))
}

// ceilDiv returns ceil(a/b) for positive b.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
