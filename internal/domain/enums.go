package domain

// Direction selects which side of the lexicon a lookup key is matched against.
type Direction string

const (
	DirectionEnToIka Direction = "en_to_ika"
	DirectionIkaToEn Direction = "ika_to_en"
)

func (d Direction) String() string { return string(d) }

func (d Direction) IsValid() bool {
	switch d {
	case DirectionEnToIka, DirectionIkaToEn:
		return true
	}
	return false
}

// TranslateMode selects the translation pipeline branch.
type TranslateMode string

const (
	TranslateModeAuto    TranslateMode = "auto"
	TranslateModeEnToIka TranslateMode = "en_to_ika"
	TranslateModeIkaToEn TranslateMode = "ika_to_en"
)

func (m TranslateMode) String() string { return string(m) }

func (m TranslateMode) IsValid() bool {
	switch m {
	case TranslateModeAuto, TranslateModeEnToIka, TranslateModeIkaToEn:
		return true
	}
	return false
}

// PartOfSpeech represents the grammatical category of a lexicon entry.
// Dataset values are lowercased on load; unknown values are kept verbatim
// so that a pattern constraint naming them simply finds no candidates.
type PartOfSpeech string

const (
	PartOfSpeechNoun         PartOfSpeech = "noun"
	PartOfSpeechVerb         PartOfSpeech = "verb"
	PartOfSpeechAdjective    PartOfSpeech = "adjective"
	PartOfSpeechAdverb       PartOfSpeech = "adverb"
	PartOfSpeechPronoun      PartOfSpeech = "pronoun"
	PartOfSpeechConnector    PartOfSpeech = "connector"
	PartOfSpeechPreposition  PartOfSpeech = "preposition"
	PartOfSpeechInterjection PartOfSpeech = "interjection"
	PartOfSpeechPhrase       PartOfSpeech = "phrase"
	PartOfSpeechOther        PartOfSpeech = "other"
)

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective, PartOfSpeechAdverb,
		PartOfSpeechPronoun, PartOfSpeechConnector, PartOfSpeechPreposition,
		PartOfSpeechInterjection, PartOfSpeechPhrase, PartOfSpeechOther:
		return true
	}
	return false
}

// Kind is the generation kind.
type Kind string

const (
	KindPoem    Kind = "poem"
	KindStory   Kind = "story"
	KindLecture Kind = "lecture"
)

func (k Kind) String() string { return string(k) }

func (k Kind) IsValid() bool {
	switch k {
	case KindPoem, KindStory, KindLecture:
		return true
	}
	return false
}

// Length is the requested output size tier.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

func (l Length) String() string { return string(l) }

func (l Length) IsValid() bool {
	switch l {
	case LengthShort, LengthMedium, LengthLong:
		return true
	}
	return false
}

// Tone is the register requested for naturalized output.
type Tone string

const (
	TonePolite     Tone = "polite"
	ToneRespectful Tone = "respectful"
	ToneNeutral    Tone = "neutral"
	ToneFormal     Tone = "formal"
	ToneCasual     Tone = "casual"
	TonePoetic     Tone = "poetic"
	ToneRomantic   Tone = "romantic"
)

func (t Tone) String() string { return string(t) }

func (t Tone) IsValid() bool {
	switch t {
	case TonePolite, ToneRespectful, ToneNeutral, ToneFormal, ToneCasual, TonePoetic, ToneRomantic:
		return true
	}
	return false
}

// IsCourteous reports whether the tone asks for a polite opener.
func (t Tone) IsCourteous() bool {
	return t == TonePolite || t == ToneRespectful
}

// Intent is the keyword-classified purpose of a naturalize request.
type Intent string

const (
	IntentApology      Intent = "apology"
	IntentRequest      Intent = "request"
	IntentGreeting     Intent = "greeting"
	IntentQuestion     Intent = "question"
	IntentAnnouncement Intent = "announcement"
	IntentMessage      Intent = "message"
)

func (i Intent) String() string { return string(i) }

// GenerationSource selects how Generate assembles text.
type GenerationSource string

const (
	// GenerationSourceTemplates fills grammar patterns chosen from templates.
	GenerationSourceTemplates GenerationSource = "templates"
	// GenerationSourcePools draws whole dataset entries from domain pools.
	GenerationSourcePools GenerationSource = "pools"
)

func (s GenerationSource) String() string { return string(s) }

func (s GenerationSource) IsValid() bool {
	switch s {
	case GenerationSourceTemplates, GenerationSourcePools:
		return true
	}
	return false
}

// FillOrigin records which rule resolved a slot or a generated component.
type FillOrigin string

const (
	FillOriginPronoun      FillOrigin = "pronoun"
	FillOriginConnector    FillOrigin = "connector"
	FillOriginPartOfSpeech FillOrigin = "part_of_speech"
	FillOriginDomain       FillOrigin = "domain"
	FillOriginPool         FillOrigin = "pool"
	FillOriginFallback     FillOrigin = "fallback"
)

func (o FillOrigin) String() string { return string(o) }
