package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ikalang/ika-backend/internal/audio"
	"github.com/ikalang/ika-backend/internal/domain"
)

func checkTextLength(errs []domain.FieldError, field, text string) []domain.FieldError {
	if utf8.RuneCountInString(text) > MaxTextLength {
		errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("max %d characters", MaxTextLength)})
	}
	return errs
}

func validationResult(errs []domain.FieldError) error {
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// LookupInput holds the parameters for a dictionary lookup.
// Empty text is a miss, not an error.
type LookupInput struct {
	Text      string
	Direction domain.Direction // empty = en_to_ika
}

// Validate checks all fields and collects all errors.
func (i LookupInput) Validate() error {
	var errs []domain.FieldError
	errs = checkTextLength(errs, "text", i.Text)
	if i.Direction != "" && !i.Direction.IsValid() {
		errs = append(errs, domain.FieldError{Field: "direction", Message: "must be en_to_ika or ika_to_en"})
	}
	return validationResult(errs)
}

func (i LookupInput) direction() domain.Direction {
	if i.Direction == "" {
		return domain.DirectionEnToIka
	}
	return i.Direction
}

// ChunkInput holds the text to chunk through the phrasebank.
type ChunkInput struct {
	Text string
}

// Validate checks all fields and collects all errors.
func (i ChunkInput) Validate() error {
	return validationResult(checkTextLength(nil, "text", i.Text))
}

// TranslateInput holds the parameters for the translate pipeline.
type TranslateInput struct {
	Text     string
	Mode     domain.TranslateMode // empty = auto
	Tense    string               // empty = present
	Negate   bool
	Question bool
}

// Validate checks all fields and collects all errors. Whether Tense is
// known depends on the loaded grammar rules and is checked by Translate.
func (i TranslateInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Text) == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	errs = checkTextLength(errs, "text", i.Text)
	if i.Mode != "" && !i.Mode.IsValid() {
		errs = append(errs, domain.FieldError{Field: "mode", Message: "must be auto, en_to_ika or ika_to_en"})
	}
	return validationResult(errs)
}

func (i TranslateInput) mode() domain.TranslateMode {
	if i.Mode == "" {
		return domain.TranslateModeAuto
	}
	return i.Mode
}

// GenerateInput holds the parameters for text generation.
type GenerateInput struct {
	Kind   domain.Kind
	Length domain.Length           // empty = medium
	Source domain.GenerationSource // empty = templates
	Seed   *uint64                 // nil = random
}

// Validate checks all fields and collects all errors.
func (i GenerateInput) Validate() error {
	var errs []domain.FieldError
	if i.Kind == "" {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "required"})
	} else if !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "must be poem, story or lecture"})
	}
	if i.Length != "" && !i.Length.IsValid() {
		errs = append(errs, domain.FieldError{Field: "length", Message: "must be short, medium or long"})
	}
	if i.Source != "" && !i.Source.IsValid() {
		errs = append(errs, domain.FieldError{Field: "source", Message: "must be templates or pools"})
	}
	return validationResult(errs)
}

func lengthOrDefault(l domain.Length) domain.Length {
	if l == "" {
		return domain.LengthMedium
	}
	return l
}

// NaturalizeInput holds the parameters for intent naturalization.
type NaturalizeInput struct {
	IntentText string
	Tone       domain.Tone   // empty = polite
	Length     domain.Length // empty = short
	Seed       *uint64
}

// Validate checks all fields and collects all errors.
func (i NaturalizeInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.IntentText) == "" {
		errs = append(errs, domain.FieldError{Field: "intent_text", Message: "required"})
	}
	errs = checkTextLength(errs, "intent_text", i.IntentText)
	if i.Tone != "" && !i.Tone.IsValid() {
		errs = append(errs, domain.FieldError{Field: "tone", Message: "unknown tone"})
	}
	if i.Length != "" && !i.Length.IsValid() {
		errs = append(errs, domain.FieldError{Field: "length", Message: "must be short, medium or long"})
	}
	return validationResult(errs)
}

// PhonemesInput holds target-language text to annotate.
type PhonemesInput struct {
	Text string
}

// Validate checks all fields and collects all errors.
func (i PhonemesInput) Validate() error {
	return validationResult(checkTextLength(nil, "text", i.Text))
}

// ListInput holds the parameters for dictionary listing.
type ListInput struct {
	Domain string
	Prefix string
	Limit  int // 0 = DefaultListLimit
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 0 || i.Limit > MaxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", MaxListLimit)})
	}
	errs = checkTextLength(errs, "q", i.Prefix)
	return validationResult(errs)
}

// AudioKeyInput holds the synthesis parameters that name an audio file.
// Empty voice, rate, pitch and format take the configured defaults.
type AudioKeyInput struct {
	Text   string
	Voice  string
	Rate   string
	Pitch  string
	Format string
}

// Validate checks all fields and collects all errors.
func (i AudioKeyInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Text) == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	errs = checkTextLength(errs, "text", i.Text)
	if i.Format != "" && !audio.SupportedFormat(strings.ToLower(i.Format)) {
		errs = append(errs, domain.FieldError{Field: "format", Message: "must be mp3, wav or ogg"})
	}
	for _, f := range []struct{ name, value string }{
		{"voice", i.Voice}, {"rate", i.Rate}, {"pitch", i.Pitch},
	} {
		if strings.Contains(f.value, "|") {
			errs = append(errs, domain.FieldError{Field: f.name, Message: "must not contain '|'"})
		}
	}
	return validationResult(errs)
}
