package phrasebank

import (
	"strings"

	"github.com/ikalang/ika-backend/internal/domain"
)

// Match records one phrase matched over tokens[Start:End].
type Match struct {
	ID           string   `json:"id"`
	SourcePhrase string   `json:"source_phrase"`
	TargetPhrase string   `json:"target_phrase"`
	Start        int      `json:"start"`
	End          int      `json:"end"`
	Tags         []string `json:"tags,omitempty"`
}

// ChunkResult is the outcome of chunking one text.
type ChunkResult struct {
	Tokens  []string `json:"tokens"`
	Chunks  []string `json:"chunks"`
	Matches []Match  `json:"matches"`
}

// Text joins the emitted chunks with single spaces.
func (r ChunkResult) Text() string {
	return strings.TrimSpace(strings.Join(r.Chunks, " "))
}

// Chunk tokenizes text and greedily replaces the longest phrase at each
// position. Silent phrases consume their tokens without emitting a chunk;
// unmatched tokens are skipped one at a time.
func (b *Bank) Chunk(text string) ChunkResult {
	tokens := Tokenize(text)
	res := ChunkResult{
		Tokens:  tokens,
		Chunks:  []string{},
		Matches: []Match{},
	}

	for i := 0; i < len(tokens); {
		item, end, ok := b.FindLongestAt(tokens, i)
		if !ok {
			i++
			continue
		}

		res.Matches = append(res.Matches, Match{
			ID:           item.ID,
			SourcePhrase: item.SourcePhrase,
			TargetPhrase: item.TargetPhrase,
			Start:        i,
			End:          end,
			Tags:         item.Tags,
		})
		if !item.IsSilent() {
			res.Chunks = append(res.Chunks, item.TargetPhrase)
		}
		i = end
	}
	return res
}

// SourceFor returns the source phrase whose target equals text exactly
// (after normalization).
func (b *Bank) SourceFor(text string) (string, bool) {
	key := domain.NormalizeText(text)
	if key == "" {
		return "", false
	}
	src, ok := b.reverse[key]
	return src, ok
}

// SourceForChunks tries an exact reverse match first, then maps each
// whitespace-separated part independently and joins the parts it knows.
// Parts without a phrase are dropped.
func (b *Bank) SourceForChunks(text string) (string, bool) {
	if src, ok := b.SourceFor(text); ok {
		return src, true
	}

	var parts []string
	for _, p := range strings.Fields(domain.NormalizeText(text)) {
		if src, ok := b.reverse[p]; ok {
			parts = append(parts, src)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " "), true
}
