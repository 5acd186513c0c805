package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// quoteReplacer maps typographic quotes and primes to the ASCII apostrophe.
var quoteReplacer = strings.NewReplacer(
	"\u201c", "'", // “
	"\u201d", "'", // ”
	"\u2018", "'", // ‘
	"\u2019", "'", // ’
	"\u2032", "'", // ′
	"\u2033", "'", // ″
)

// NormalizeText prepares text for use as a lookup key:
//   - composes to Unicode NFC (so ọ typed as o + U+0323 matches ọ)
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - maps typographic quotes to '
//   - compresses every whitespace run into a single space
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = norm.NFC.String(text)
	text = strings.ToLower(text)
	text = quoteReplacer.Replace(text)

	return strings.Join(strings.Fields(text), " ")
}

// NormalizeDomain trims a domain tag and repairs the historical
// "sentennce." prefix typo found in older exports.
func NormalizeDomain(d string) string {
	d = strings.TrimSpace(d)
	if rest, ok := strings.CutPrefix(d, "sentennce."); ok {
		return "sentence." + rest
	}
	return d
}
