package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultSlug is used when slug derivation produces an empty string.
const DefaultSlug = "topic"

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL-safe slug: lowercase, accents stripped,
// whitespace collapsed to single hyphens, everything outside [a-z0-9_-]
// dropped, leading/trailing hyphens trimmed.
func Slugify(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	stripped, _, err := transform.String(deaccent, lowered)
	if err != nil {
		stripped = lowered
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range stripped {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			pendingHyphen = true
		}
	}

	slug := b.String()
	if slug == "" {
		return DefaultSlug
	}
	return slug
}
