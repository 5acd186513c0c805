package engine

import (
	"context"

	"github.com/ikalang/ika-backend/internal/domain"
)

// Naturalize turns an intent description into target text drawn from the
// dataset pools.
func (s *Service) Naturalize(ctx context.Context, input NaturalizeInput) (NaturalizeResult, error) {
	if err := input.Validate(); err != nil {
		return NaturalizeResult{}, err
	}
	st, err := s.load()
	if err != nil {
		return NaturalizeResult{}, err
	}
	if _, err := st.lexicon(); err != nil {
		return NaturalizeResult{}, err
	}

	tone := input.Tone
	if tone == "" {
		tone = domain.TonePolite
	}
	length := input.Length
	if length == "" {
		length = domain.LengthShort
	}

	out := st.naturalizer.Naturalize(s.rng(input.Seed), input.IntentText, tone, length)
	entries := out.Entries
	if entries == nil {
		entries = []domain.LexEntry{}
	}
	return NaturalizeResult{
		Text:            out.Text,
		BackTranslation: out.BackTranslation,
		Intent:          out.Intent,
		Tone:            tone,
		Length:          length,
		Notes:           out.Notes,
		Entries:         entries,
	}, nil
}
