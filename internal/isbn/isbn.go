// Package isbn validates scanned ISBN-10 and ISBN-13 codes.
package isbn

import "strings"

// Clean removes the hyphens and spaces a code may be printed with.
func Clean(code string) string {
	code = strings.TrimSpace(code)
	code = strings.ReplaceAll(code, "-", "")
	return strings.ReplaceAll(code, " ", "")
}

// IsValid reports whether code, once cleaned, is a valid ISBN-10 or ISBN-13.
func IsValid(code string) bool {
	code = Clean(code)
	return isValidISBN10(code) || isValidISBN13(code)
}

// isValidISBN10 checks the modulus 11 checksum, the last character may be X (10).
func isValidISBN10(code string) bool {
	if len(code) != 10 {
		return false
	}
	sum := 0
	for i := 0; i < 10; i++ {
		c := code[i]
		var digit int
		switch {
		case c >= '0' && c <= '9':
			digit = int(c - '0')
		case c == 'X' && i == 9:
			digit = 10
		default:
			return false
		}
		sum += digit * (10 - i)
	}
	return sum%11 == 0
}

// isValidISBN13 checks the 978/979 prefix and the alternating 1/3 weighted
// modulus 10 checksum.
func isValidISBN13(code string) bool {
	if len(code) != 13 {
		return false
	}
	if !strings.HasPrefix(code, "978") && !strings.HasPrefix(code, "979") {
		return false
	}
	sum := 0
	for i := 0; i < 13; i++ {
		c := code[i]
		if c < '0' || c > '9' {
			return false
		}
		weight := 1
		if i%2 == 1 {
			weight = 3
		}
		sum += int(c-'0') * weight
	}
	return sum%10 == 0
}
