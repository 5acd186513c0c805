package engine

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ikalang/ika-backend/internal/domain"
	"github.com/ikalang/ika-backend/internal/generator"
)

// Generate composes a poem, story or lecture from templates or from domain
// pools. The trace lists only patterns and entries that produced text.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (GenerateResult, error) {
	if err := input.Validate(); err != nil {
		return GenerateResult{}, err
	}
	st, err := s.load()
	if err != nil {
		return GenerateResult{}, err
	}

	length := lengthOrDefault(input.Length)
	rng := s.rng(input.Seed)

	var res generator.Result
	if input.Source == domain.GenerationSourcePools {
		res = st.composer.ComposePools(rng, input.Kind, length)
	} else {
		res = st.composer.Compose(rng, input.Kind, length)
	}
	res.Trace.ID = uuid.NewString()

	s.log.InfoContext(ctx, "text generated",
		slog.String("trace_id", res.Trace.ID),
		slog.String("kind", string(input.Kind)),
		slog.String("length", string(length)),
		slog.String("source", res.Trace.Source),
		slog.Int("sentences", len(res.Trace.Sentences)),
	)

	return GenerateResult{
		Text:            res.Text,
		BackTranslation: backTranslation(res.Trace),
		Trace:           res.Trace,
	}, nil
}

// backTranslation joins the source text of every traced slot, sentence by
// sentence.
func backTranslation(trace domain.GenerationTrace) string {
	sentences := make([]string, 0, len(trace.Sentences))
	for _, sent := range trace.Sentences {
		words := make([]string, 0, len(sent.Slots))
		for _, f := range sent.Slots {
			words = append(words, f.Entry.SourceText)
		}
		if line := strings.Join(words, " "); line != "" {
			sentences = append(sentences, line)
		}
	}
	return strings.Join(sentences, " / ")
}
