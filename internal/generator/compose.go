package generator

import (
	"strings"

	"github.com/ikalang/ika-backend/internal/domain"
)

// Composer defaults.
const (
	DefaultFallbackSize = 5
	// paragraphBreakLines is the line count from which a poem or pooled story
	// is split into two paragraphs.
	paragraphBreakLines = 12
	fallbackSection     = "fallback"
)

// ComposerConfig holds the tunable counts of a Composer.
type ComposerConfig struct {
	PoemLines    Tiers
	StoryLines   Tiers
	LectureLines Tiers
	// FallbackDomain supplies entries when no sentence could be built.
	FallbackDomain string
	FallbackSize   int
}

// DefaultComposerConfig returns the stock tiers and fallback settings.
func DefaultComposerConfig() ComposerConfig {
	return ComposerConfig{
		PoemLines:      DefaultPoemLines,
		StoryLines:     DefaultStoryLines,
		LectureLines:   DefaultLectureLines,
		FallbackDomain: domain.DomainGeneral,
		FallbackSize:   DefaultFallbackSize,
	}
}

// Result is generated text together with the trace of what built it.
type Result struct {
	Text  string
	Trace domain.GenerationTrace
}

// Composer turns templates and pools into text.
type Composer struct {
	lex       Lexicon
	filler    *SlotFiller
	patterns  map[string]domain.GrammarPattern
	templates map[domain.Kind][]domain.Template
	cfg       ComposerConfig
}

// NewComposer creates a Composer over validated patterns and templates.
func NewComposer(
	lex Lexicon,
	filler *SlotFiller,
	patterns []domain.GrammarPattern,
	templates []domain.Template,
	cfg ComposerConfig,
) *Composer {
	byID := make(map[string]domain.GrammarPattern, len(patterns))
	for _, p := range patterns {
		byID[p.ID] = p
	}
	byKind := make(map[domain.Kind][]domain.Template)
	for _, t := range templates {
		byKind[t.Kind] = append(byKind[t.Kind], t)
	}
	if cfg.FallbackSize <= 0 {
		cfg.FallbackSize = DefaultFallbackSize
	}
	return &Composer{
		lex:       lex,
		filler:    filler,
		patterns:  byID,
		templates: byKind,
		cfg:       cfg,
	}
}

// Compose builds text for kind and length from a randomly chosen template.
// When no template yields text the deterministic fallback is used.
func (c *Composer) Compose(rng Rand, kind domain.Kind, length domain.Length) Result {
	trace := newTrace(kind, length, domain.GenerationSourceTemplates)

	var text string
	if tmpl, ok := pick(rng, c.templates[kind]); ok {
		if kind == domain.KindPoem {
			text = c.composePoem(rng, tmpl, length, &trace)
		} else {
			text = c.composeSections(rng, tmpl, &trace)
		}
	}

	if text == "" {
		return c.fallback(kind, length, domain.GenerationSourceTemplates)
	}
	return Result{Text: text, Trace: trace}
}

func (c *Composer) composePoem(rng Rand, tmpl domain.Template, length domain.Length, trace *domain.GenerationTrace) string {
	n := c.cfg.PoemLines.For(length)
	lines := make([]string, 0, n)
	for range n {
		if line := c.sentence(rng, domain.SectionLines, tmpl.PatternPool, trace); line != "" {
			lines = append(lines, line)
		}
	}
	return joinLines(lines)
}

func (c *Composer) composeSections(rng Rand, tmpl domain.Template, trace *domain.GenerationTrace) string {
	var paragraphs []string
	for _, sec := range tmpl.Sections {
		n := sentenceCount(rng, sec)
		var sentences []string
		for range n {
			if s := c.sentence(rng, sec.Name, sec.PatternPool, trace); s != "" {
				sentences = append(sentences, s)
			}
		}
		if len(sentences) > 0 {
			paragraphs = append(paragraphs, strings.Join(sentences, " "))
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

// sentence picks a pattern from pool, fills it and records it in trace.
func (c *Composer) sentence(rng Rand, section string, pool []string, trace *domain.GenerationTrace) string {
	id, ok := pick(rng, pool)
	if !ok {
		return ""
	}
	p, ok := c.patterns[id]
	if !ok {
		return ""
	}
	fills := c.filler.FillPattern(rng, p, "")
	text := SentenceText(fills)
	trace.AddSentence(domain.SentenceTrace{
		Section:   section,
		PatternID: id,
		Slots:     fills,
		Text:      text,
	})
	return text
}

// fallback returns the first FallbackSize entries of the catch-all domain,
// or of the whole lexicon when that domain is empty.
func (c *Composer) fallback(kind domain.Kind, length domain.Length, source domain.GenerationSource) Result {
	trace := newTrace(kind, length, source)

	entries := c.lex.ByDomain(c.cfg.FallbackDomain)
	if len(entries) == 0 {
		entries = c.lex.Entries()
	}
	entries = capped(entries, c.cfg.FallbackSize)

	fills := make([]domain.SlotFill, 0, len(entries))
	for _, e := range entries {
		fills = append(fills, domain.SlotFill{Entry: e, Origin: domain.FillOriginFallback})
	}
	text := SentenceText(fills)
	trace.AddSentence(domain.SentenceTrace{Section: fallbackSection, Slots: fills, Text: text})
	return Result{Text: text, Trace: trace}
}

func sentenceCount(rng Rand, sec domain.Section) int {
	lo, hi := sec.MinSentences, sec.MaxSentences
	if lo < 0 {
		lo = 0
	}
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// joinLines joins lines with newlines, splitting into two stanzas at
// paragraphBreakLines and above.
func joinLines(lines []string) string {
	if len(lines) < paragraphBreakLines {
		return strings.Join(lines, "\n")
	}
	half := len(lines) / 2
	return strings.Join(lines[:half], "\n") + "\n\n" + strings.Join(lines[half:], "\n")
}

func newTrace(kind domain.Kind, length domain.Length, source domain.GenerationSource) domain.GenerationTrace {
	return domain.GenerationTrace{
		Kind:       kind,
		Length:     length,
		Source:     source.String(),
		PatternIDs: []string{},
		Entries:    []domain.TraceEntry{},
	}
}
