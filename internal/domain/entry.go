package domain

import "strings"

// Well-known lexicon domains.
const (
	DomainGreeting           = "greeting"
	DomainSentencePrefix     = "sentence."
	DomainSentenceSVO        = "sentence.svo"
	DomainSentenceExpression = "sentence.expression"
	DomainSentenceLocation   = "sentence.location"
	DomainSentenceQuestion   = "sentence.question"
	DomainSentenceNegation   = "sentence.negation"
	DomainSentenceCondition  = "sentence.conditional"
	DomainSentenceTense      = "sentence.tense"
	DomainSynonymGeneral     = "synonym_general"
	DomainSynonymFamily      = "synonym_family"
	DomainSynonymEducation   = "synonym_education"
	DomainPoeticVocab        = "poetic_vocab"
	DomainGeneral            = "general"
)

// LexEntry is one verified bilingual lexicon row. Several entries may share
// a source or target text (polysemy).
type LexEntry struct {
	ID         string       `json:"id"`
	Domain     string       `json:"domain"`
	SourceText string       `json:"source_text"`
	TargetText string       `json:"target_text"`
	POS        PartOfSpeech `json:"pos,omitempty"`
	AudioURL   string       `json:"audio_url,omitempty"`
}

// IsPriorityDomain reports whether the entry belongs to a sentence.* family
// or the greeting domain, which win when a single best answer is needed.
func (e LexEntry) IsPriorityDomain() bool {
	return strings.HasPrefix(e.Domain, DomainSentencePrefix) || e.Domain == DomainGreeting
}

// PhraseItem is a verified source→target phrase used by the phrasebank.
// An empty TargetPhrase marks a silent phrase.
type PhraseItem struct {
	ID           string   `json:"id"`
	SourcePhrase string   `json:"source_phrase"`
	TargetPhrase string   `json:"target_phrase"`
	Tags         []string `json:"tags,omitempty"`
}

// IsSilent reports whether the phrase consumes input without producing output.
func (p PhraseItem) IsSilent() bool { return p.TargetPhrase == "" }

// Closed-class categories.
const (
	ClosedClassSubjectPronouns = "subject_pronouns"
	ClosedClassObjectPronouns  = "object_pronouns"
	ClosedClassConnectors      = "connectors"
)

// ClosedClassItem is one member of a small enumerable grammatical category.
type ClosedClassItem struct {
	SourceText string `json:"source_text" yaml:"english"`
	TargetText string `json:"target_text" yaml:"ika"`
}

// ClosedClassTable maps a category to its ordered members.
type ClosedClassTable map[string][]ClosedClassItem

// Items returns the members of category (nil when absent).
func (t ClosedClassTable) Items(category string) []ClosedClassItem {
	if t == nil {
		return nil
	}
	return t[category]
}
