package lexicon

import (
	"sort"
	"strings"

	"github.com/ikalang/ika-backend/internal/domain"
)

const (
	// DefaultPartialLimit caps phase-1 (containment) matches.
	DefaultPartialLimit = 15
	// DefaultSuggestionLimit caps phase-2 overlap matches and the merged list.
	DefaultSuggestionLimit = 10
)

// Suggestion is a near-miss key with one representative entry attached.
// Text is the counterpart of Key in the lookup direction.
type Suggestion struct {
	Key    string `json:"key"`
	Text   string `json:"text"`
	ID     string `json:"id,omitempty"`
	Domain string `json:"domain"`
}

// Suggest ranks near-miss keys for text in direction dir. An empty query
// yields no suggestions.
func (ix *Index) Suggest(text string, dir domain.Direction) []Suggestion {
	query := domain.NormalizeText(text)
	if query == "" {
		return nil
	}

	keys := RankKeys(query, ix.keys(dir), ix.partialLimit, ix.suggestionLimit)
	side := ix.side(dir)

	out := make([]Suggestion, 0, len(keys))
	for _, k := range keys {
		hits := side[k]
		if len(hits) == 0 {
			continue
		}
		e := hits[0]
		s := Suggestion{Key: k, ID: e.ID, Domain: e.Domain, Text: e.TargetText}
		if dir == domain.DirectionIkaToEn {
			s.Text = e.SourceText
		}
		out = append(out, s)
	}
	return out
}

type scoredKey struct {
	key   string
	score int
}

// RankKeys returns at most limit keys related to query, which must already
// be normalized. keys must be sorted ascending.
//
// Phase 1 scans keys in order and keeps up to partialLimit keys that contain
// the query, are a prefix of it, or that it is a prefix of. Phase 2 scores
// every other key by the number of shared whitespace tokens, keeps scores
// above zero ordered by score descending then key ascending, and takes the
// top limit. The merged list is de-duplicated and truncated to limit.
func RankKeys(query string, keys []string, partialLimit, limit int) []string {
	if query == "" || limit <= 0 {
		return nil
	}

	partial := make([]string, 0, partialLimit)
	selected := make(map[string]struct{}, partialLimit)
	for _, key := range keys {
		if len(partial) >= partialLimit {
			break
		}
		if strings.Contains(key, query) || strings.HasPrefix(query, key) {
			partial = append(partial, key)
			selected[key] = struct{}{}
		}
	}

	queryTokens := tokenSet(query)
	var overlap []scoredKey
	for _, key := range keys {
		if _, ok := selected[key]; ok {
			continue
		}
		score := 0
		for tok := range tokenSet(key) {
			if _, ok := queryTokens[tok]; ok {
				score++
			}
		}
		if score > 0 {
			overlap = append(overlap, scoredKey{key: key, score: score})
		}
	}
	sort.Slice(overlap, func(i, j int) bool {
		if overlap[i].score != overlap[j].score {
			return overlap[i].score > overlap[j].score
		}
		return overlap[i].key < overlap[j].key
	})
	if len(overlap) > limit {
		overlap = overlap[:limit]
	}

	merged := make([]string, 0, limit)
	seen := make(map[string]struct{}, len(partial)+len(overlap))
	add := func(k string) {
		if len(merged) >= limit {
			return
		}
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		merged = append(merged, k)
	}
	for _, k := range partial {
		add(k)
	}
	for _, sk := range overlap {
		add(sk.key)
	}
	return merged
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
