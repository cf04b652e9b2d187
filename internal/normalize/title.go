package normalize

import (
	"regexp"
	"strings"
)

var annotationPattern = regexp.MustCompile(`\s*\(.*\)$`)

// Key returns the comparison key for a title: lowercase ASCII letters and
// digits only. Every other character, accented letters included, is removed.
func Key(title string) string {
	if title == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Equal reports whether two titles share a non-empty key.
func Equal(a, b string) bool {
	ka := Key(a)
	return ka != "" && ka == Key(b)
}

// StripAnnotation removes a trailing parenthesized note such as "(2025)" or
// "(re-release)" and trims surrounding whitespace.
func StripAnnotation(value string) string {
	value = strings.TrimSpace(value)
	return strings.TrimSpace(annotationPattern.ReplaceAllString(value, ""))
}
