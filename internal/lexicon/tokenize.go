package lexicon

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// targetTokenRe matches an Ika word: letters with combining marks,
// apostrophes (ASCII, right single quote, modifier letter) and hyphens,
// containing at least one letter.
var targetTokenRe = regexp.MustCompile(`[\p{L}\p{M}ʼ'’-]*\p{L}[\p{L}\p{M}ʼ'’-]*`)

// TargetTokens splits text into lowercased target-language word tokens.
func TargetTokens(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	text = strings.ToLower(norm.NFC.String(text))
	return targetTokenRe.FindAllString(text, -1)
}
