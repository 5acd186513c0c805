package engine

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ikalang/ika-backend/internal/domain"
	"github.com/ikalang/ika-backend/internal/generator"
	"github.com/ikalang/ika-backend/internal/lexicon"
)

// Translate runs the translation pipeline. English input goes through the
// phrasebank, then an exact dataset match, then the rule-based word-by-word
// translator. Ika input (explicit, or detected in auto mode) goes through an
// exact dataset match, then reverse phrasebank lookup. When nothing
// resolves the result has Found=false and carries suggestions.
func (s *Service) Translate(ctx context.Context, input TranslateInput) (TranslateResult, error) {
	if err := input.Validate(); err != nil {
		return TranslateResult{}, err
	}
	st, err := s.load()
	if err != nil {
		return TranslateResult{}, err
	}
	if st.snap.Lexicon == nil && st.snap.Phrases == nil {
		return TranslateResult{}, domain.ErrUnavailable
	}
	if !st.rules.HasTense(input.Tense) {
		return TranslateResult{}, domain.NewValidationError("tense", "unknown tense")
	}

	mode := input.mode()
	text := strings.TrimSpace(input.Text)

	var res TranslateResult
	if s.isIkaInput(st, mode, text) {
		res = s.translateIkaToEn(st, text)
	} else {
		res = s.translateEnToIka(st, text, input)
	}
	res.Mode = mode

	s.log.DebugContext(ctx, "translate",
		slog.String("mode", string(mode)),
		slog.String("engine", res.Engine),
		slog.Bool("found", res.Found),
	)
	return res, nil
}

func (s *Service) isIkaInput(st *state, mode domain.TranslateMode, text string) bool {
	switch mode {
	case domain.TranslateModeIkaToEn:
		return true
	case domain.TranslateModeEnToIka:
		return false
	default:
		return st.snap.Lexicon != nil && st.snap.Lexicon.IsTargetLanguage(text)
	}
}

func (s *Service) translateEnToIka(st *state, text string, input TranslateInput) TranslateResult {
	res := TranslateResult{
		Meaning:    text,
		SourceLang: LangEnglish,
		TargetLang: LangIka,
		Tense:      input.Tense,
	}

	if st.snap.Phrases != nil {
		chunked := st.snap.Phrases.Chunk(text)
		if out := chunked.Text(); out != "" {
			res.Found = true
			res.Text = out
			res.Engine = EnginePhrasebank
			res.Matches = chunked.Matches
			return res
		}
	}

	lex := st.snap.Lexicon
	if lex == nil {
		res.Engine = EngineNone
		return res
	}

	if e, ok := lex.Best(text, domain.DirectionEnToIka); ok {
		res.Found = true
		res.Text = e.TargetText
		res.Engine = EngineDataset
		res.Entries = []domain.LexEntry{e}
		return res
	}

	rt := st.translator.Translate(text, generator.RuleOptions{
		Tense:    input.Tense,
		Negate:   input.Negate,
		Question: input.Question,
	})
	res.Unknown = rt.Unknown
	if rt.Text != "" {
		res.Found = true
		res.Text = rt.Text
		res.Engine = EngineRuleBased
		res.Entries = rt.Entries
		res.Meaning = sourceTexts(rt.Entries)
		return res
	}

	res.Engine = EngineNone
	res.Suggestions = suggestionsOrEmpty(lex.Suggest(text, domain.DirectionEnToIka))
	return res
}

func (s *Service) translateIkaToEn(st *state, text string) TranslateResult {
	res := TranslateResult{
		Text:       text,
		SourceLang: LangIka,
		TargetLang: LangEnglish,
	}

	lex := st.snap.Lexicon
	if lex != nil {
		if e, ok := lex.Best(text, domain.DirectionIkaToEn); ok {
			res.Found = true
			res.Meaning = e.SourceText
			res.Engine = EngineDataset
			res.Entries = []domain.LexEntry{e}
			return res
		}
	}

	if st.snap.Phrases != nil {
		if src, ok := st.snap.Phrases.SourceForChunks(text); ok {
			res.Found = true
			res.Meaning = src
			res.Engine = EnginePhrasebank
			return res
		}
	}

	res.Engine = EngineNone
	if lex != nil {
		res.Suggestions = suggestionsOrEmpty(lex.Suggest(text, domain.DirectionIkaToEn))
	}
	return res
}

func sourceTexts(entries []domain.LexEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.SourceText)
	}
	return strings.Join(parts, " ")
}

func suggestionsOrEmpty(s []lexicon.Suggestion) []lexicon.Suggestion {
	if s == nil {
		return []lexicon.Suggestion{}
	}
	return s
}
