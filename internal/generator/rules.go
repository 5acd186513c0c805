package generator

import (
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/ikalang/ika-backend/internal/domain"
)

// TensePresent is the unmarked tense.
const TensePresent = "present"

// Rules prepends grammar markers to target-language text.
type Rules struct {
	rules domain.GrammarRules
}

// NewRules wraps loaded grammar rules. Zero-value rules apply no markers.
func NewRules(r domain.GrammarRules) Rules {
	return Rules{rules: r}
}

// Tenses returns the configured tense names, sorted.
func (r Rules) Tenses() []string {
	return slices.Sorted(maps.Keys(r.rules.TenseMarkers))
}

// HasTense reports whether tense is present or has a configured marker.
func (r Rules) HasTense(tense string) bool {
	if tense == "" || tense == TensePresent {
		return true
	}
	_, ok := r.rules.TenseMarkers[tense]
	return ok
}

// ApplyTense prefixes the marker for tense. The present tense is unmarked.
func (r Rules) ApplyTense(text, tense string) string {
	if tense == "" || tense == TensePresent {
		return text
	}
	return prefix(r.rules.TenseMarkers[tense], text)
}

// ApplyNegation prefixes the negation marker.
func (r Rules) ApplyNegation(text string) string {
	return prefix(r.rules.NegationMarker, text)
}

// ApplyQuestion prefixes the yes/no question marker.
func (r Rules) ApplyQuestion(text string) string {
	return prefix(r.rules.QuestionMarker, text)
}

func prefix(marker, text string) string {
	if marker == "" {
		return text
	}
	return strings.TrimSpace(marker + " " + text)
}

// WordLookup resolves a single source word to its best entry.
type WordLookup interface {
	Best(text string, dir domain.Direction) (domain.LexEntry, bool)
}

// RuleOptions selects the markers applied by Translate.
type RuleOptions struct {
	Tense    string
	Negate   bool
	Question bool
}

// RuleTranslation is the result of a word-by-word translation.
type RuleTranslation struct {
	Text    string
	Entries []domain.LexEntry
	// Unknown lists source words with no dataset entry. They are never
	// copied into Text.
	Unknown []string
}

// RuleTranslator translates source text word by word using only dataset
// entries, then applies grammar markers.
type RuleTranslator struct {
	words WordLookup
	rules Rules
}

// NewRuleTranslator creates a RuleTranslator.
func NewRuleTranslator(words WordLookup, rules Rules) *RuleTranslator {
	return &RuleTranslator{words: words, rules: rules}
}

// Translate maps every known word and reports the rest. Markers are applied
// only when at least one word resolved.
func (t *RuleTranslator) Translate(text string, opts RuleOptions) RuleTranslation {
	var out RuleTranslation
	var parts []string
	for _, raw := range strings.Fields(domain.NormalizeText(text)) {
		word := strings.TrimFunc(raw, func(r rune) bool {
			return r != '\'' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word == "" {
			continue
		}
		e, ok := t.words.Best(word, domain.DirectionEnToIka)
		if !ok || strings.TrimSpace(e.TargetText) == "" {
			out.Unknown = append(out.Unknown, word)
			continue
		}
		parts = append(parts, e.TargetText)
		out.Entries = append(out.Entries, e)
	}
	if len(parts) == 0 {
		return out
	}

	result := strings.Join(parts, " ")
	result = t.rules.ApplyTense(result, opts.Tense)
	if opts.Negate {
		result = t.rules.ApplyNegation(result)
	}
	if opts.Question {
		result = t.rules.ApplyQuestion(result)
	}
	out.Text = result
	return out
}
