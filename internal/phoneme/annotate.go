// Package phoneme builds SSML markup with IPA phoneme annotations for Ika
// text. Output depends only on the text and the dictionary, so identical
// input always produces identical markup.
package phoneme

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// graphemeFallback maps single Ika graphemes to IPA for words that are
// absent from the dictionary.
var graphemeFallback = map[string]string{
	"a": "a",
	"e": "e",
	"i": "i",
	"o": "o",
	"u": "u",
	"ẹ": "ɛ",
	"ị": "ɪ",
	"ọ": "ɔ",
	"ụ": "ʊ",
	"ṅ": "ŋ",
	"ŋ": "ŋ",
	"m": "m",
	"n": "n",
}

var ssmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Escape replaces &, <, > and " with XML entities.
func Escape(s string) string {
	return ssmlEscaper.Replace(s)
}

// Annotator wraps known words in <phoneme> elements.
type Annotator struct {
	dict Dictionary
}

// NewAnnotator creates an Annotator over dict. A nil dictionary leaves only
// the grapheme fallback.
func NewAnnotator(dict Dictionary) *Annotator {
	if dict == nil {
		dict = Dictionary{}
	}
	return &Annotator{dict: dict}
}

// Transcribe returns the IPA for word from the dictionary, then from the
// single-grapheme fallback table.
func (a *Annotator) Transcribe(word string) (string, bool) {
	key := strings.ToLower(norm.NFC.String(strings.TrimSpace(word)))
	if key == "" {
		return "", false
	}
	if ipa, ok := a.dict[key]; ok && ipa != "" {
		return ipa, true
	}
	ipa, ok := graphemeFallback[key]
	return ipa, ok
}

// Annotate returns <speak> markup for text. Whitespace and punctuation pass
// through escaped; resolved words become
// <phoneme alphabet="ipa" ph="IPA">word</phoneme>.
func (a *Annotator) Annotate(text string) string {
	if strings.TrimSpace(text) == "" {
		return "<speak></speak>"
	}

	var b strings.Builder
	b.Grow(len(text) * 2)
	b.WriteString("<speak>")
	for _, tok := range Tokenize(text) {
		if tok.Kind != TokenWord {
			b.WriteString(Escape(tok.Text))
			continue
		}
		ipa, ok := a.Transcribe(tok.Text)
		if !ok {
			b.WriteString(Escape(tok.Text))
			continue
		}
		b.WriteString(`<phoneme alphabet="ipa" ph="`)
		b.WriteString(Escape(ipa))
		b.WriteString(`">`)
		b.WriteString(Escape(tok.Text))
		b.WriteString("</phoneme>")
	}
	b.WriteString("</speak>")
	return b.String()
}

// Len returns the number of dictionary entries.
func (a *Annotator) Len() int { return len(a.dict) }
