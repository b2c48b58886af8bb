package model

import (
	"strings"
	"unicode"
)

// CleanIdentifier drops every rune that is not a letter, digit, '_' or listed in extra.
func CleanIdentifier(s string, extra string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || strings.ContainsRune(extra, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
