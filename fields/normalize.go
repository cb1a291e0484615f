package fields

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizer decomposes characters, strips combining marks, and recomposes,
// so accented OCR misreads ("Nàme") still hit the ASCII extraction rules.
var normalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize prepares raw OCR text for pattern extraction: diacritics are
// stripped and runs of whitespace collapse to single spaces. The result is
// what every extraction and validation rule operates on.
func Normalize(text string) string {
	cleaned, _, err := transform.String(normalizer, text)
	if err != nil {
		cleaned = text
	}
	return strings.Join(strings.Fields(cleaned), " ")
}
