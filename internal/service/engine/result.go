package engine

import (
	"github.com/ikalang/ika-backend/internal/domain"
	"github.com/ikalang/ika-backend/internal/lexicon"
	"github.com/ikalang/ika-backend/internal/phrasebank"
)

// Translation engines reported by Translate.
const (
	EnginePhrasebank = "phrasebank"
	EngineDataset    = "dataset"
	EngineRuleBased  = "rule_based"
	EngineNone       = "none"
)

// Language codes.
const (
	LangEnglish = "en"
	LangIka     = "ika"
)

// LookupResult is the outcome of a dictionary lookup. Suggestions are only
// filled on a miss.
type LookupResult struct {
	Found       bool                 `json:"found"`
	Query       string               `json:"query"`
	Direction   domain.Direction     `json:"direction"`
	Candidates  []domain.LexEntry    `json:"candidates"`
	Suggestions []lexicon.Suggestion `json:"suggestions"`
}

// TranslateResult is the outcome of the translate pipeline.
type TranslateResult struct {
	Found       bool                 `json:"found"`
	Text        string               `json:"text"`
	Meaning     string               `json:"meaning"`
	SourceLang  string               `json:"source_lang"`
	TargetLang  string               `json:"target_lang"`
	Mode        domain.TranslateMode `json:"mode"`
	Engine      string               `json:"engine"`
	Tense       string               `json:"tense,omitempty"`
	Matches     []phrasebank.Match   `json:"matches,omitempty"`
	Entries     []domain.LexEntry    `json:"lexicon_entries,omitempty"`
	Unknown     []string             `json:"unknown_words,omitempty"`
	Suggestions []lexicon.Suggestion `json:"suggestions,omitempty"`
}

// GenerateResult is generated target text with its trace.
type GenerateResult struct {
	Text            string                 `json:"text"`
	BackTranslation string                 `json:"back_translation"`
	Trace           domain.GenerationTrace `json:"trace"`
}

// NaturalizeResult is naturalized target text.
type NaturalizeResult struct {
	Text            string            `json:"text"`
	BackTranslation string            `json:"back_translation"`
	Intent          domain.Intent     `json:"intent"`
	Tone            domain.Tone       `json:"tone"`
	Length          domain.Length     `json:"length"`
	Notes           []string          `json:"notes"`
	Entries         []domain.LexEntry `json:"lexicon_entries"`
}

// ListResult is one page of the dictionary listing.
type ListResult struct {
	Entries []domain.LexEntry `json:"entries"`
	Count   int               `json:"count"`
	Limit   int               `json:"limit"`
}

// AudioKeyResult names the cache file for a synthesis request.
type AudioKeyResult struct {
	Key      string `json:"key"`
	FileName string `json:"file_name"`
	Cached   bool   `json:"cached"`
	SSML     string `json:"ssml"`
	Voice    string `json:"voice"`
	Rate     string `json:"rate"`
	Pitch    string `json:"pitch"`
	Format   string `json:"format"`
}
