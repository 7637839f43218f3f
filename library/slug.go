package library

import (
	"strings"
	"unicode"
)

// UntitledName is the file stem used when a description has no usable
// characters.
const UntitledName = "untitled-scale"

// Slug turns a scale description into a file stem. Letters, digits, '-',
// '_' and spaces are kept, every other rune becomes '-', runs of dashes
// collapse to one, and leading or trailing spaces and dashes are trimmed.
func Slug(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastDash := false
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == ' ':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
			}
			lastDash = true
		}
	}

	slug := strings.Trim(b.String(), " -")
	if slug == "" {
		return UntitledName
	}
	return slug
}
