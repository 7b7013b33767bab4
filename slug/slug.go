// Package slug turns free-text display names into URL-safe identifiers.
//
// The same algorithm backs user-facing usernames (underscore separator) and
// project/page slugs (hyphen separator); only the whitespace separator
// differs by call site. Normalization is idempotent.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Separators accepted by Normalize.
const (
	SeparatorHyphen     = "-"
	SeparatorUnderscore = "_"
)

var apostrophes = []string{"'", "’", "ʼ"}

// Normalize converts text into a URL-safe identifier using sep to join what
// used to be whitespace-separated words. Steps, in order: lowercase, trim,
// Unicode NFD decomposition, strip combining diacritical marks
// (U+0300..U+036F), strip straight and curly apostrophes, collapse
// whitespace runs to sep, drop anything outside [A-Za-z0-9_-], collapse
// repeated separators.
func Normalize(text, sep string) string {
	if sep != SeparatorUnderscore {
		sep = SeparatorHyphen
	}

	value := strings.ToLower(strings.TrimSpace(text))
	value = stripDiacritics(value)
	for _, mark := range apostrophes {
		value = strings.ReplaceAll(value, mark, "")
	}

	var out strings.Builder
	out.Grow(len(value))
	inWhitespace := false
	for _, r := range value {
		if unicode.IsSpace(r) {
			inWhitespace = true
			continue
		}
		if inWhitespace {
			out.WriteString(sep)
			inWhitespace = false
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			out.WriteRune(r)
		}
	}

	return collapseSeparator(out.String(), sep)
}

// ForUsername normalizes a display name into a public username.
func ForUsername(text string) string {
	return Normalize(text, SeparatorUnderscore)
}

// ForSlug normalizes a project or page title into a slug.
func ForSlug(text string) string {
	return Normalize(text, SeparatorHyphen)
}

// IsValid reports whether value is already in normalized form for sep.
func IsValid(value, sep string) bool {
	return value != "" && Normalize(value, sep) == value
}

func stripDiacritics(value string) string {
	decomposed := norm.NFD.String(value)
	var out strings.Builder
	out.Grow(len(decomposed))
	for _, r := range decomposed {
		if r >= 0x0300 && r <= 0x036F {
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

func collapseSeparator(value, sep string) string {
	double := sep + sep
	for strings.Contains(value, double) {
		value = strings.ReplaceAll(value, double, sep)
	}
	return value
}
