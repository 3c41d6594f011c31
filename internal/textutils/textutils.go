// Package textutils provides the text normalization the form relies on
// for matching type labels and deduplicating tags.
package textutils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeLabel lowercases a label and strips diacritics, so that
// "Transferencia Interna" and "transferencia interna" compare equal and
// keyword tests like "ahorro" match "Ahorro programado".
func NormalizeLabel(s string) string {
	stripped, _, err := transform.String(stripMarks, s)
	if err != nil {
		stripped = s
	}
	return strings.ToLower(strings.TrimSpace(stripped))
}

// NormalizeTag trims a tag and strips any leading '#' characters. Display
// keeps the user's casing; comparisons use EqualTags.
func NormalizeTag(s string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s), "#"))
}

// EqualTags reports whether two tags are equivalent: equal normalized
// forms under case folding.
func EqualTags(a, b string) bool {
	return strings.EqualFold(NormalizeTag(a), NormalizeTag(b))
}
