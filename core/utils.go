package core

import (
	"regexp"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

var digitRunRegex = regexp.MustCompile(`\d+`)

// FirstDigitRun returns the first run of decimal digits in s, or "" when none.
// Class labels embed their grade number this way ("Lớp 3A" -> "3").
func FirstDigitRun(s string) string {
	return digitRunRegex.FindString(s)
}
