package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, drops combining marks and recomposes, so
// "tóuring" and "touring" compare equal.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeWhitespace trims the string and collapses internal whitespace
// runs to a single space.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fold produces the case- and accent-insensitive comparison key for s.
// Classification always compares folded keys; folded text is never shown
// to users.
func Fold(s string) string {
	folded, _, err := transform.String(stripMarks, NormalizeWhitespace(s))
	if err != nil {
		folded = NormalizeWhitespace(s)
	}
	return strings.ToUpper(folded)
}
