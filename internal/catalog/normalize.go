package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var typeDigitPattern = regexp.MustCompile(`^A_([0-9])\.`)

// Normalize lower-cases, trims, strips diacritics and collapses internal
// whitespace. Every header and level-label lookup goes through it on both sides.
func Normalize(s string) string {
	lowered := strings.ToLower(strings.TrimSpace(s))
	// Transformers carry state, so a fresh chain is built per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, lowered)
	if err != nil {
		folded = lowered
	}
	return strings.Join(strings.Fields(folded), " ")
}

// TypeDigit extracts the digit between "A_" and "." of an initiative type code.
func TypeDigit(code string) (string, bool) {
	m := typeDigitPattern.FindStringSubmatch(strings.TrimSpace(code))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Slug turns a free-text name into a lowercase dash-separated key.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range Normalize(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
