// Package lexicon indexes bilingual lexicon entries for exact lookup,
// near-miss suggestions and target-language detection.
//
// An Index is built once from a snapshot of entries and never mutated;
// it is safe for concurrent use without locking.
package lexicon

import (
	"slices"
	"sort"
	"strings"

	"github.com/ikalang/ika-backend/internal/domain"
)

// DefaultTargetThreshold is the minimum fraction of tokens found in the
// target token set for text to be classified as target-language.
const DefaultTargetThreshold = 0.35

// Index holds read-only views over a set of lexicon entries.
type Index struct {
	entries      []domain.LexEntry
	byDomain     map[string][]domain.LexEntry
	bySource     map[string][]domain.LexEntry
	byTarget     map[string][]domain.LexEntry
	byPOS        map[domain.PartOfSpeech][]domain.LexEntry
	targetTokens map[string]struct{}
	sourceKeys   []string
	targetKeys   []string

	threshold       float64
	partialLimit    int
	suggestionLimit int
}

// Option configures an Index at build time.
type Option func(*Index)

// WithTargetThreshold overrides DefaultTargetThreshold.
func WithTargetThreshold(t float64) Option {
	return func(ix *Index) {
		if t > 0 {
			ix.threshold = t
		}
	}
}

// WithSuggestionLimits overrides the phase-1 partial cap and the final
// suggestion cap.
func WithSuggestionLimits(partial, total int) Option {
	return func(ix *Index) {
		if partial > 0 {
			ix.partialLimit = partial
		}
		if total > 0 {
			ix.suggestionLimit = total
		}
	}
}

// Build indexes entries in the given order. The input slice is copied.
func Build(entries []domain.LexEntry, opts ...Option) *Index {
	ix := &Index{
		entries:         slices.Clone(entries),
		byDomain:        make(map[string][]domain.LexEntry),
		bySource:        make(map[string][]domain.LexEntry),
		byTarget:        make(map[string][]domain.LexEntry),
		byPOS:           make(map[domain.PartOfSpeech][]domain.LexEntry),
		targetTokens:    make(map[string]struct{}),
		threshold:       DefaultTargetThreshold,
		partialLimit:    DefaultPartialLimit,
		suggestionLimit: DefaultSuggestionLimit,
	}
	for _, opt := range opts {
		opt(ix)
	}

	for _, e := range ix.entries {
		ix.byDomain[e.Domain] = append(ix.byDomain[e.Domain], e)
		if e.POS != "" {
			ix.byPOS[e.POS] = append(ix.byPOS[e.POS], e)
		}
		if key := domain.NormalizeText(e.SourceText); key != "" {
			ix.bySource[key] = append(ix.bySource[key], e)
		}
		if key := domain.NormalizeText(e.TargetText); key != "" {
			ix.byTarget[key] = append(ix.byTarget[key], e)
		}
		for _, tok := range TargetTokens(e.TargetText) {
			ix.targetTokens[tok] = struct{}{}
		}
	}

	ix.sourceKeys = sortedKeys(ix.bySource)
	ix.targetKeys = sortedKeys(ix.byTarget)

	return ix
}

func sortedKeys(m map[string][]domain.LexEntry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LookupResult is the outcome of an exact lookup.
type LookupResult struct {
	Found      bool
	Query      string
	Candidates []domain.LexEntry
}

// LookupExact returns every entry whose normalized text on the side selected
// by dir equals the normalized query, in insertion order.
func (ix *Index) LookupExact(text string, dir domain.Direction) LookupResult {
	query := domain.NormalizeText(text)
	if query == "" {
		return LookupResult{}
	}

	hits := ix.side(dir)[query]
	if len(hits) == 0 {
		return LookupResult{Query: query}
	}
	return LookupResult{
		Found:      true,
		Query:      query,
		Candidates: slices.Clone(hits),
	}
}

// Best returns the single preferred entry for text: the first sentence.* or
// greeting entry if any, otherwise the first entry in insertion order.
func (ix *Index) Best(text string, dir domain.Direction) (domain.LexEntry, bool) {
	res := ix.LookupExact(text, dir)
	if !res.Found {
		return domain.LexEntry{}, false
	}
	return Prioritize(res.Candidates)[0], true
}

// Prioritize returns a copy of entries with sentence.* and greeting entries
// first. Relative order inside each tier is preserved.
func Prioritize(entries []domain.LexEntry) []domain.LexEntry {
	out := slices.Clone(entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IsPriorityDomain() && !out[j].IsPriorityDomain()
	})
	return out
}

// IsTargetLanguage reports whether at least the configured fraction of the
// tokens in text occur in target-language entries. Text without tokens is
// never target-language.
func (ix *Index) IsTargetLanguage(text string) bool {
	tokens := TargetTokens(text)
	if len(tokens) == 0 {
		return false
	}
	hits := 0
	for _, tok := range tokens {
		if _, ok := ix.targetTokens[tok]; ok {
			hits++
		}
	}
	return float64(hits)/float64(len(tokens)) >= ix.threshold
}

// Threshold returns the target-language classification threshold in use.
func (ix *Index) Threshold() float64 { return ix.threshold }

// ByDomain returns the entries tagged with domain, in insertion order.
func (ix *Index) ByDomain(d string) []domain.LexEntry {
	return ix.byDomain[d]
}

// ByPOS returns entries with the given part of speech, restricted to d
// when d is non-empty.
func (ix *Index) ByPOS(pos domain.PartOfSpeech, d string) []domain.LexEntry {
	all := ix.byPOS[pos]
	if d == "" {
		return all
	}
	var out []domain.LexEntry
	for _, e := range all {
		if e.Domain == d {
			out = append(out, e)
		}
	}
	return out
}

// Entries returns all entries in insertion order. Callers must not modify it.
func (ix *Index) Entries() []domain.LexEntry { return ix.entries }

// Len returns the number of indexed entries.
func (ix *Index) Len() int { return len(ix.entries) }

// Domains returns the sorted domain names present in the index.
func (ix *Index) Domains() []string {
	out := make([]string, 0, len(ix.byDomain))
	for d := range ix.byDomain {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// SourceKeys returns the sorted normalized source keys.
func (ix *Index) SourceKeys() []string { return ix.sourceKeys }

// TargetKeys returns the sorted normalized target keys.
func (ix *Index) TargetKeys() []string { return ix.targetKeys }

// List returns entries alphabetically by source key, optionally filtered by
// domain and by a source-key prefix, up to limit entries.
func (ix *Index) List(d, prefix string, limit int) []domain.LexEntry {
	prefix = domain.NormalizeText(prefix)
	var out []domain.LexEntry
	for _, key := range ix.sourceKeys {
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			continue
		}
		for _, e := range ix.bySource[key] {
			if d != "" && e.Domain != d {
				continue
			}
			out = append(out, e)
			if len(out) >= limit {
				return out
			}
		}
	}
	return out
}

func (ix *Index) side(dir domain.Direction) map[string][]domain.LexEntry {
	if dir == domain.DirectionIkaToEn {
		return ix.byTarget
	}
	return ix.bySource
}

func (ix *Index) keys(dir domain.Direction) []string {
	if dir == domain.DirectionIkaToEn {
		return ix.targetKeys
	}
	return ix.sourceKeys
}
