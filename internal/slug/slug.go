// Package slug derives URL-safe page identifiers from titles.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// deaccent decomposes characters and strips combining marks, so "Café" slugs
// to "cafe".
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make normalizes s into a slug: diacritics stripped, lower-cased, whitespace
// runs collapsed to single hyphens, everything else non-alphanumeric dropped.
func Make(s string) string {
	s = strings.TrimSpace(s)

	out, _, err := transform.String(deaccent, s)
	if err == nil {
		s = out
	}
	s = strings.ToLower(s)

	var b strings.Builder
	pendingHyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-', r == '_':
			pendingHyphen = true
		}
	}

	return b.String()
}
