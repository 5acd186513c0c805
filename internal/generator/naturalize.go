package generator

import (
	"strings"
	"unicode"

	"github.com/ikalang/ika-backend/internal/domain"
)

// intentRule is one keyword set of the intent classifier.
type intentRule struct {
	intent   domain.Intent
	keywords []string
}

// intentRules are scanned in order; the first rule with a matching keyword wins.
var intentRules = []intentRule{
	{domain.IntentApology, []string{"sorry", "apologize", "apology", "forgive"}},
	{domain.IntentRequest, []string{"please", "could you", "would you", "want", "need"}},
	{domain.IntentGreeting, []string{"hello", "hi", "hey", "greet"}},
	{domain.IntentQuestion, []string{"what", "how", "why", "when", "where", "?"}},
	{domain.IntentAnnouncement, []string{"tell", "say", "inform", "let you know", "late", "traffic"}},
}

// Notes attached to a naturalized result.
const (
	NoteApologyForm     = "Used apology form"
	NoteApologyGreeting = "Used greeting as apology context"
	NoteGreeting        = "Used greeting"
	NotePoliteOpening   = "Used polite opening"
	NoteExpressions     = "Built from dataset expressions"
)

// shortKeywords would fire inside unrelated words ("this", "they") as plain
// substrings, so they only match at the start of a token.
var shortKeywords = map[string]bool{"hi": true, "hey": true}

// Classify returns the intent of free text. Keywords match as substrings of
// the case-folded text, so inflections like "apologized" or "wants" count.
func Classify(text string) domain.Intent {
	t := domain.NormalizeText(text)
	words := strings.FieldsFunc(t, isWordBoundary)

	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if shortKeywords[kw] {
				if hasTokenPrefix(words, kw) {
					return rule.intent
				}
				continue
			}
			if strings.Contains(t, kw) {
				return rule.intent
			}
		}
	}
	return domain.IntentMessage
}

func hasTokenPrefix(words []string, prefix string) bool {
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			return true
		}
	}
	return false
}

func isWordBoundary(r rune) bool {
	return r != '\'' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// Naturalized is the output of Naturalize.
type Naturalized struct {
	Text            string
	BackTranslation string
	Intent          domain.Intent
	Notes           []string
	Entries         []domain.LexEntry
}

// Naturalizer composes idiomatic target text for an intent from dataset pools.
type Naturalizer struct {
	lex   Lexicon
	parts Tiers
}

// NewNaturalizer creates a Naturalizer with the given part-count tiers.
func NewNaturalizer(lex Lexicon, parts Tiers) *Naturalizer {
	return &Naturalizer{lex: lex, parts: parts}
}

// Naturalize classifies intentText, seeds an opener by intent and tone and
// fills the remaining budget from expression and synonym pools.
func (n *Naturalizer) Naturalize(rng Rand, intentText string, tone domain.Tone, length domain.Length) Naturalized {
	intent := Classify(intentText)

	greeting := n.lex.ByDomain(domain.DomainGreeting)
	expr := n.lex.ByDomain(domain.DomainSentenceExpression)
	synonym := n.lex.ByDomain(domain.DomainSynonymGeneral)
	family := n.lex.ByDomain(domain.DomainSynonymFamily)

	var all []domain.LexEntry
	all = append(all, greeting...)
	all = append(all, expr...)
	all = append(all, synonym...)
	all = append(all, family...)
	if len(all) == 0 {
		all = n.lex.Entries()
	}

	out := Naturalized{Intent: intent}
	var used []domain.LexEntry

	switch intent {
	case domain.IntentApology:
		if e, ok := apologyGreeting(greeting); ok {
			used = append(used, e)
			out.Notes = append(out.Notes, NoteApologyForm)
		} else if e, ok := pick(rng, greeting); ok {
			used = append(used, e)
			out.Notes = append(out.Notes, NoteApologyGreeting)
		}
	case domain.IntentGreeting:
		if e, ok := pick(rng, greeting); ok {
			used = append(used, e)
			out.Notes = append(out.Notes, NoteGreeting)
		}
	default:
		if tone.IsCourteous() {
			if e, ok := pick(rng, greeting); ok {
				used = append(used, e)
				out.Notes = append(out.Notes, NotePoliteOpening)
			}
		}
	}

	for budget := n.parts.For(length) - len(used); budget > 0; budget-- {
		e, ok := pick(rng, expr)
		if !ok {
			e, ok = pick(rng, synonym)
		}
		if !ok {
			e, ok = pick(rng, all)
		}
		if !ok {
			break
		}
		used = append(used, e)
	}

	if len(out.Notes) == 0 {
		out.Notes = append(out.Notes, NoteExpressions)
	}

	target := make([]string, 0, len(used))
	source := make([]string, 0, len(used))
	for _, e := range used {
		target = append(target, e.TargetText)
		source = append(source, e.SourceText)
	}
	out.Text = strings.Join(target, " ")
	out.BackTranslation = strings.Join(source, " ")
	out.Entries = used
	return out
}

func apologyGreeting(greeting []domain.LexEntry) (domain.LexEntry, bool) {
	for _, e := range greeting {
		src := strings.ToLower(e.SourceText)
		if strings.Contains(src, "sorry") || strings.Contains(src, "apolog") {
			return e, true
		}
	}
	return domain.LexEntry{}, false
}
