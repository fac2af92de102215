package normalize

import (
	"regexp"
	"strings"
)

// volumePattern matches a volume marker that starts a word: either a bare
// "(N)" or one of the volume keywords followed by a number, optionally
// wrapped in parentheses. The marker follows whitespace, a "-" or ":"
// separator, or the start of the string together with any separators
// leading it.
var volumePattern = regexp.MustCompile(`(?i)(^[\s\-:]*|[\s\-:])(?:(?:volume|tome|book)\s*\(?(\d+)\)?|\((\d+)\))`)

// VolumeNotation rewrites every volume marker in s to the canonical "(N)"
// form, N being the volume number without leading zeros. Only the marker is
// rewritten: the separator before it stays, except at the very start of s.
//
//	"tome 01"           -> "(1)"
//	"- tome 01"         -> "(1)"
//	"Saga - Volume 2"   -> "Saga - (2)"
//	"Saga-tome 2"       -> "Saga-(2)"
//	"tome 1 and tome 2" -> "(1) and (2)"
//	"MyVolume 1"        -> "MyVolume 1"
func VolumeNotation(s string) string {
	matches := volumePattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		// m[2:4] is the leading boundary, m[4:6] the keyword number, m[6:8] the bare number.
		if m[2] == 0 {
			b.WriteString(s[last:m[2]])
		} else {
			b.WriteString(s[last:m[3]])
		}
		digits := ""
		if m[4] >= 0 {
			digits = s[m[4]:m[5]]
		} else {
			digits = s[m[6]:m[7]]
		}
		b.WriteByte('(')
		b.WriteString(trimLeadingZeros(digits))
		b.WriteByte(')')
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func trimLeadingZeros(digits string) string {
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
