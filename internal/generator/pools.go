package generator

import (
	"strings"

	"github.com/ikalang/ika-backend/internal/domain"
)

// storyDomains is the preferred domain order for pooled stories.
var storyDomains = []string{
	domain.DomainGreeting,
	domain.DomainSentenceLocation,
	domain.DomainSentenceSVO,
	domain.DomainSentenceQuestion,
	domain.DomainSentenceNegation,
	domain.DomainSentenceCondition,
	domain.DomainSentenceTense,
	domain.DomainSentenceExpression,
	domain.DomainSynonymGeneral,
	domain.DomainSynonymFamily,
	domain.DomainSynonymEducation,
}

// storyParagraphLines is the number of lines in the first paragraph of a
// long pooled story.
const storyParagraphLines = 6

// ComposePools builds text by drawing whole entries from domain pools rather
// than filling grammar patterns.
func (c *Composer) ComposePools(rng Rand, kind domain.Kind, length domain.Length) Result {
	trace := newTrace(kind, length, domain.GenerationSourcePools)

	var text string
	switch kind {
	case domain.KindPoem:
		text = c.poolPoem(rng, length, &trace)
	case domain.KindStory:
		text = c.poolStory(rng, length, &trace)
	case domain.KindLecture:
		text = c.poolLecture(rng, length, &trace)
	}

	if text == "" {
		return c.fallback(kind, length, domain.GenerationSourcePools)
	}
	return Result{Text: text, Trace: trace}
}

func (c *Composer) poolPoem(rng Rand, length domain.Length, trace *domain.GenerationTrace) string {
	pool := firstNonEmpty(
		c.lex.ByDomain(domain.DomainPoeticVocab),
		c.lex.ByDomain(domain.DomainSentenceExpression),
		c.lex.ByDomain(domain.DomainSynonymGeneral),
		c.lex.Entries(),
	)
	n := c.cfg.PoemLines.For(length)
	lines := make([]string, 0, n)
	for range n {
		if t := c.draw(rng, pool, domain.SectionLines, trace); t != "" {
			lines = append(lines, t)
		}
	}
	return joinLines(lines)
}

func (c *Composer) poolStory(rng Rand, length domain.Length, trace *domain.GenerationTrace) string {
	var pool []domain.LexEntry
	for _, d := range storyDomains {
		pool = append(pool, c.lex.ByDomain(d)...)
	}
	if len(pool) == 0 {
		pool = c.lex.Entries()
	}

	n := c.cfg.StoryLines.For(length)
	lines := make([]string, 0, n)
	for range n {
		if t := c.draw(rng, pool, domain.SectionLines, trace); t != "" {
			lines = append(lines, t)
		}
	}
	if n >= paragraphBreakLines && len(lines) > storyParagraphLines {
		return strings.Join(lines[:storyParagraphLines], " ") + "\n\n" +
			strings.Join(lines[storyParagraphLines:], " ")
	}
	return strings.Join(lines, " ")
}

func (c *Composer) poolLecture(rng Rand, length domain.Length, trace *domain.GenerationTrace) string {
	expr := c.lex.ByDomain(domain.DomainSentenceExpression)
	var body []domain.LexEntry
	body = append(body, c.lex.ByDomain(domain.DomainSentenceSVO)...)
	body = append(body, c.lex.ByDomain(domain.DomainSentenceTense)...)
	body = append(body, expr...)
	body = append(body, c.lex.ByDomain(domain.DomainSynonymGeneral)...)
	if len(body) == 0 {
		body = c.lex.Entries()
	}

	var parts []string
	if t := c.draw(rng, c.lex.ByDomain(domain.DomainGreeting), domain.SectionIntro, trace); t != "" {
		parts = append(parts, t)
	}
	for range c.cfg.LectureLines.For(length) {
		if t := c.draw(rng, body, domain.SectionExplain, trace); t != "" {
			parts = append(parts, t)
		}
	}
	if t := c.draw(rng, expr, domain.SectionSummary, trace); t != "" {
		parts = append(parts, t)
	}
	return strings.Join(parts, " ")
}

// draw picks one entry from pool and records it as a single-entry sentence.
func (c *Composer) draw(rng Rand, pool []domain.LexEntry, section string, trace *domain.GenerationTrace) string {
	e, ok := pick(rng, pool)
	if !ok {
		return ""
	}
	fill := domain.SlotFill{Entry: e, Origin: domain.FillOriginPool}
	text := strings.TrimSpace(e.TargetText)
	trace.AddSentence(domain.SentenceTrace{
		Section: section,
		Slots:   []domain.SlotFill{fill},
		Text:    text,
	})
	return text
}

func firstNonEmpty(pools ...[]domain.LexEntry) []domain.LexEntry {
	for _, p := range pools {
		if len(p) > 0 {
			return p
		}
	}
	return nil
}
