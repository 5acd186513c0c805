package phrasebank

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	wordRe         = regexp.MustCompile(`[\p{L}\p{N}]+(?:'[\p{L}\p{N}]+)?`)
	apostropheRepl = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")
)

// Tokenize lowercases text and returns its word tokens. Punctuation and
// whitespace only separate tokens; one inner apostrophe is kept ("don't").
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ToLower(norm.NFC.String(text))
	text = apostropheRepl.Replace(text)
	return wordRe.FindAllString(text, -1)
}
