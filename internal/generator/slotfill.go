package generator

import (
	"fmt"
	"strings"

	"github.com/ikalang/ika-backend/internal/domain"
)

// DefaultCandidateCap bounds the candidate list a slot draws from.
const DefaultCandidateCap = 20

// SlotFiller resolves pattern slots to lexicon entries or closed-class items.
type SlotFiller struct {
	lex          Lexicon
	closed       domain.ClosedClassTable
	candidateCap int
}

// NewSlotFiller creates a SlotFiller. candidateCap <= 0 uses DefaultCandidateCap.
func NewSlotFiller(lex Lexicon, closed domain.ClosedClassTable, candidateCap int) *SlotFiller {
	if candidateCap <= 0 {
		candidateCap = DefaultCandidateCap
	}
	return &SlotFiller{lex: lex, closed: closed, candidateCap: candidateCap}
}

// FillSlot resolves one slot. dom is the call-level domain, used when the
// slot carries no domain constraint of its own. ok is false when nothing
// satisfies the slot; that is not an error.
func (f *SlotFiller) FillSlot(rng Rand, slot domain.Slot, dom string) (fill domain.SlotFill, ok bool) {
	if category, origin := closedClassRole(slot.Name); category != "" {
		items := f.closed.Items(category)
		if i, found := pickIndex(rng, len(items)); found {
			return domain.SlotFill{
				Slot:   slot.Name,
				Entry:  closedEntry(category, i, items[i], origin),
				Origin: origin,
			}, true
		}
	}

	if slot.Domain != "" {
		dom = slot.Domain
	}

	pos := slot.POS
	if pos == "" {
		pos = InferPOS(slot.Name)
	}
	if pos != "" {
		if e, found := pick(rng, capped(f.lex.ByPOS(pos, dom), f.candidateCap)); found {
			return domain.SlotFill{Slot: slot.Name, Entry: e, Origin: domain.FillOriginPartOfSpeech}, true
		}
	}

	if dom != "" {
		if e, found := pick(rng, capped(f.lex.ByDomain(dom), f.candidateCap)); found {
			return domain.SlotFill{Slot: slot.Name, Entry: e, Origin: domain.FillOriginDomain}, true
		}
	}

	return domain.SlotFill{}, false
}

// FillPattern resolves every slot of p in declaration order. Unfilled slots
// are omitted from the result.
func (f *SlotFiller) FillPattern(rng Rand, p domain.GrammarPattern, dom string) []domain.SlotFill {
	fills := make([]domain.SlotFill, 0, len(p.Slots))
	for _, s := range p.Slots {
		if s.Name == "" {
			continue
		}
		if fill, ok := f.FillSlot(rng, s, dom); ok {
			fills = append(fills, fill)
		}
	}
	return fills
}

// SentenceText joins the target text of fills with single spaces.
func SentenceText(fills []domain.SlotFill) string {
	parts := make([]string, 0, len(fills))
	for _, f := range fills {
		if t := strings.TrimSpace(f.Entry.TargetText); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// closedClassRole maps a slot name to its closed-class category. Only the
// whole role name counts, optionally followed by an "_suffix": "Subject" and
// "subj_np" are pronoun slots, "ObjectAdj" is not.
func closedClassRole(name string) (string, domain.FillOrigin) {
	role, _, _ := strings.Cut(strings.ToLower(name), "_")
	switch role {
	case "subject", "subj":
		return domain.ClosedClassSubjectPronouns, domain.FillOriginPronoun
	case "object", "obj":
		return domain.ClosedClassObjectPronouns, domain.FillOriginPronoun
	case "connector", "conj", "conjunction":
		return domain.ClosedClassConnectors, domain.FillOriginConnector
	}
	return "", ""
}

// InferPOS guesses a part of speech from slot-name keywords.
// "adv" is tested before "verb" since every adverb name contains both.
func InferPOS(name string) domain.PartOfSpeech {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "adv"):
		return domain.PartOfSpeechAdverb
	case strings.Contains(n, "verb"):
		return domain.PartOfSpeechVerb
	case strings.Contains(n, "noun"), isNounPhraseName(n),
		strings.HasPrefix(n, "subj"), strings.HasPrefix(n, "obj"):
		return domain.PartOfSpeechNoun
	case strings.Contains(n, "adj"):
		return domain.PartOfSpeechAdjective
	}
	return ""
}

func isNounPhraseName(n string) bool {
	return n == "np" || strings.HasPrefix(n, "np_") || strings.HasSuffix(n, "_np")
}

func pickIndex(rng Rand, n int) (int, bool) {
	if n == 0 {
		return 0, false
	}
	return rng.IntN(n), true
}

func closedEntry(category string, i int, item domain.ClosedClassItem, origin domain.FillOrigin) domain.LexEntry {
	pos := domain.PartOfSpeechPronoun
	if origin == domain.FillOriginConnector {
		pos = domain.PartOfSpeechConnector
	}
	return domain.LexEntry{
		ID:         fmt.Sprintf("%s/%d", category, i),
		Domain:     category,
		SourceText: item.SourceText,
		TargetText: item.TargetText,
		POS:        pos,
	}
}
