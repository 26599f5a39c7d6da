package lib

import "strings"

// SanitizeString trims surrounding whitespace and optionally strips
// control characters and collapses inner whitespace runs.
func SanitizeString(s string, stripControl, collapseSpaces bool) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	if stripControl {
		s = strings.Map(func(r rune) rune {
			if r < 32 || r == 127 {
				return -1
			}
			return r
		}, s)
	}

	if collapseSpaces {
		s = strings.Join(strings.Fields(s), " ")
	}

	return s
}
