package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Title returns the comparison form of a title: trimmed, without diacritics,
// lowercased and with volume markers rewritten by VolumeNotation.
func Title(title string) string {
	s := strings.TrimSpace(title)
	s = StripAccents(s)
	s = strings.ToLower(s)
	return VolumeNotation(s)
}

// StripAccents decomposes s and drops the combining marks, so "Mystère"
// becomes "Mystere".
func StripAccents(s string) string {
	// Chained transformers keep state, build a fresh one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}
