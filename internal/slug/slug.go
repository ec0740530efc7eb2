// Package slug derives URL-safe identity strings from human titles.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops combining marks, so "Café" becomes "Cafe".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make converts a title into a lowercase, hyphen-separated ASCII slug:
// diacritics are stripped, runs of non-alphanumeric characters collapse to a
// single hyphen, and leading/trailing hyphens are trimmed. Make is pure and
// deterministic; collision handling is the caller's responsibility.
func Make(title string) string {
	normalized, _, err := transform.String(stripMarks, title)
	if err != nil {
		// Fall back to the raw title; non-ASCII runes are dropped below anyway.
		normalized = title
	}

	var b strings.Builder
	b.Grow(len(normalized))
	pendingHyphen := false
	for _, r := range strings.ToLower(normalized) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
