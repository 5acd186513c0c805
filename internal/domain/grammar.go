package domain

// Story and lecture section names, in output order.
const (
	SectionOpening    = "opening"
	SectionConflict   = "conflict"
	SectionResolution = "resolution"
	SectionIntro      = "intro"
	SectionExplain    = "explain"
	SectionSummary    = "summary"
	SectionLines      = "lines"
)

// SectionOrder returns the ordered section names for kind.
// A poem has a single flat section.
func SectionOrder(kind Kind) []string {
	switch kind {
	case KindStory:
		return []string{SectionOpening, SectionConflict, SectionResolution}
	case KindLecture:
		return []string{SectionIntro, SectionExplain, SectionSummary}
	default:
		return []string{SectionLines}
	}
}

// Slot is a named placeholder in a grammar pattern with optional constraints.
type Slot struct {
	Name   string       `json:"name"`
	POS    PartOfSpeech `json:"pos,omitempty"`
	Domain string       `json:"domain,omitempty"`
}

// GrammarPattern is an ordered list of slots referenced by id from templates.
type GrammarPattern struct {
	ID       string `json:"pattern_id"`
	Category string `json:"category,omitempty"`
	Example  string `json:"example,omitempty"`
	Slots    []Slot `json:"slots"`
}

// Section is one structural part of a story or lecture template.
type Section struct {
	Name         string   `json:"name"`
	PatternPool  []string `json:"pattern_pool"`
	MinSentences int      `json:"min_sentences"`
	MaxSentences int      `json:"max_sentences"`
}

// Template describes how to assemble one generation kind.
// Poem templates use PatternPool; story and lecture templates use Sections.
type Template struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	PatternPool []string  `json:"pattern_pool,omitempty"`
	Sections    []Section `json:"sections,omitempty"`
}

// GrammarRules holds the marker words prepended by the rule-based translator.
type GrammarRules struct {
	TenseMarkers   map[string]string `json:"tense_markers,omitempty"`
	NegationMarker string            `json:"negation_marker,omitempty"`
	QuestionMarker string            `json:"question_marker,omitempty"`
}
