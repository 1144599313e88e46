package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var multiSpace = regexp.MustCompile(`\s+`)

// stripAccents returns a fresh transformer; chains keep internal buffers and
// must not be shared between goroutines.
func stripAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// FoldText lowercases, strips diacritics ("março" → "marco") and collapses
// whitespace.
func FoldText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(stripAccents(), s); err == nil {
		s = folded
	}
	return multiSpace.ReplaceAllString(s, " ")
}

// CollapseSpace trims and collapses internal whitespace, keeping case.
func CollapseSpace(s string) string {
	return multiSpace.ReplaceAllString(strings.TrimSpace(s), " ")
}

// NormalizeName collapses whitespace in an optional text field.
// Returns nil if the input is empty or blank.
func NormalizeName(s string) *string {
	s = CollapseSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
