package engine

import (
	"context"

	"github.com/ikalang/ika-backend/internal/domain"
	"github.com/ikalang/ika-backend/internal/lexicon"
	"github.com/ikalang/ika-backend/internal/phrasebank"
)

// Lookup returns every entry whose text matches in the given direction, or
// ranked suggestions on a miss.
func (s *Service) Lookup(ctx context.Context, input LookupInput) (LookupResult, error) {
	if err := input.Validate(); err != nil {
		return LookupResult{}, err
	}
	st, err := s.load()
	if err != nil {
		return LookupResult{}, err
	}
	lex, err := st.lexicon()
	if err != nil {
		return LookupResult{}, err
	}

	dir := input.direction()
	res := lex.LookupExact(input.Text, dir)
	out := LookupResult{
		Found:       res.Found,
		Query:       res.Query,
		Direction:   dir,
		Candidates:  res.Candidates,
		Suggestions: []lexicon.Suggestion{},
	}
	if out.Candidates == nil {
		out.Candidates = []domain.LexEntry{}
	}
	if !res.Found {
		if sugg := lex.Suggest(input.Text, dir); sugg != nil {
			out.Suggestions = sugg
		}
	}
	return out, nil
}

// ListEntries returns entries sorted by source key, optionally filtered by
// domain and source prefix.
func (s *Service) ListEntries(ctx context.Context, input ListInput) (ListResult, error) {
	if err := input.Validate(); err != nil {
		return ListResult{}, err
	}
	st, err := s.load()
	if err != nil {
		return ListResult{}, err
	}
	lex, err := st.lexicon()
	if err != nil {
		return ListResult{}, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	entries := lex.List(domain.NormalizeDomain(input.Domain), input.Prefix, limit)
	if entries == nil {
		entries = []domain.LexEntry{}
	}
	return ListResult{Entries: entries, Count: len(entries), Limit: limit}, nil
}

// ChunkTranslate runs the phrasebank chunker over the input text.
func (s *Service) ChunkTranslate(ctx context.Context, input ChunkInput) (phrasebank.ChunkResult, error) {
	if err := input.Validate(); err != nil {
		return phrasebank.ChunkResult{}, err
	}
	st, err := s.load()
	if err != nil {
		return phrasebank.ChunkResult{}, err
	}
	if st.snap.Phrases == nil {
		return phrasebank.ChunkResult{}, domain.ErrUnavailable
	}

	res := st.snap.Phrases.Chunk(input.Text)
	if res.Tokens == nil {
		res.Tokens = []string{}
	}
	if res.Chunks == nil {
		res.Chunks = []string{}
	}
	if res.Matches == nil {
		res.Matches = []phrasebank.Match{}
	}
	return res, nil
}
