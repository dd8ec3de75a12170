// Package canon normalizes free text for identity comparison and display.
package canon

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize lowercases s, drops everything except ASCII letters, digits and
// whitespace, and collapses whitespace runs into single spaces.
func Normalize(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// TitleCase collapses whitespace and upper-cases the first letter of every word.
// The rest of each word is lowercased.
func TitleCase(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	// cases.Caser is stateful, so a fresh one is needed per call.
	return cases.Title(language.English).String(s)
}
