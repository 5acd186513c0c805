package domain

// SlotFill is a resolved slot: the entry chosen and the rule that chose it.
type SlotFill struct {
	Slot   string     `json:"slot"`
	Entry  LexEntry   `json:"entry"`
	Origin FillOrigin `json:"origin"`
}

// SentenceTrace records how one generated line or sentence was built.
type SentenceTrace struct {
	Section   string     `json:"section"`
	PatternID string     `json:"pattern_id,omitempty"`
	Slots     []SlotFill `json:"slots"`
	Text      string     `json:"text"`
}

// TraceEntry is one lexicon entry that contributed to generated text.
type TraceEntry struct {
	ID         string     `json:"id,omitempty"`
	SourceText string     `json:"source_text"`
	TargetText string     `json:"target_text"`
	Domain     string     `json:"domain,omitempty"`
	Slot       string     `json:"slot,omitempty"`
	Section    string     `json:"section,omitempty"`
	Origin     FillOrigin `json:"origin"`
}

// GenerationTrace lists the pattern ids and entries actually used to build
// a generated text. It is created per call and never persisted.
type GenerationTrace struct {
	ID         string          `json:"id"`
	Kind       Kind            `json:"kind"`
	Length     Length          `json:"length"`
	Source     string          `json:"source"`
	PatternIDs []string        `json:"pattern_ids"`
	Entries    []TraceEntry    `json:"lexicon_entries"`
	Sentences  []SentenceTrace `json:"sentences,omitempty"`
}

// AddSentence appends s when it produced text, recording its pattern id and
// slot entries. Sentences without text leave no trace.
func (t *GenerationTrace) AddSentence(s SentenceTrace) {
	if s.Text == "" {
		return
	}
	t.Sentences = append(t.Sentences, s)
	if s.PatternID != "" {
		t.PatternIDs = append(t.PatternIDs, s.PatternID)
	}
	for _, f := range s.Slots {
		t.Entries = append(t.Entries, TraceEntry{
			ID:         f.Entry.ID,
			SourceText: f.Entry.SourceText,
			TargetText: f.Entry.TargetText,
			Domain:     f.Entry.Domain,
			Slot:       f.Slot,
			Section:    s.Section,
			Origin:     f.Origin,
		})
	}
}
