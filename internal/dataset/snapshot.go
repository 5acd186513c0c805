// Package dataset loads the static bilingual dataset into an immutable
// Snapshot. Structural grammar data (patterns, templates) is required and
// validated; every other part is optional and leaves its index nil when
// missing or unreadable.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ikalang/ika-backend/internal/domain"
	"github.com/ikalang/ika-backend/internal/lexicon"
	"github.com/ikalang/ika-backend/internal/phoneme"
	"github.com/ikalang/ika-backend/internal/phrasebank"
)

// Files names the dataset files inside the dataset directory.
type Files struct {
	Lexicon     []string
	Phrasebank  string
	Patterns    string
	Templates   string
	ClosedClass string
	Rules       string
	Phonemes    []string
}

// DefaultFiles returns the standard dataset file names.
func DefaultFiles() Files {
	return Files{
		Lexicon:     []string{"firestore_lexicon_export.json", "ika_dictionary.json"},
		Phrasebank:  "phrasebank.json",
		Patterns:    "grammar_patterns.yaml",
		Templates:   "templates.yaml",
		ClosedClass: "closed_class.yaml",
		Rules:       "grammar_rules.yaml",
		Phonemes:    []string{"ipa_dictionary.json", "ipa_dictionary.tsv"},
	}
}

// Snapshot is one immutable, fully built view of the dataset. A reload builds
// a new Snapshot; an existing one is never modified.
type Snapshot struct {
	// Lexicon is nil when no lexicon entries could be loaded.
	Lexicon *lexicon.Index
	// Phrases is nil when the phrasebank is missing.
	Phrases     *phrasebank.Bank
	Patterns    []domain.GrammarPattern
	Templates   []domain.Template
	Closed      domain.ClosedClassTable
	Rules       domain.GrammarRules
	Phonemes    *phoneme.Annotator
	Fingerprint Fingerprint
	LoadedAt    time.Time
}

// Counts summarizes a snapshot for health output and logs.
type Counts struct {
	Entries     int `json:"entries"`
	Phrases     int `json:"phrases"`
	Patterns    int `json:"patterns"`
	Templates   int `json:"templates"`
	ClosedClass int `json:"closed_class"`
	Phonemes    int `json:"phonemes"`
}

// Counts returns the size of every part of the snapshot.
func (s *Snapshot) Counts() Counts {
	c := Counts{
		Patterns:  len(s.Patterns),
		Templates: len(s.Templates),
	}
	if s.Lexicon != nil {
		c.Entries = s.Lexicon.Len()
	}
	if s.Phrases != nil {
		c.Phrases = s.Phrases.Len()
	}
	for _, items := range s.Closed {
		c.ClosedClass += len(items)
	}
	if s.Phonemes != nil {
		c.Phonemes = s.Phonemes.Len()
	}
	return c
}

// PatternIDs returns the ids of all loaded patterns in file order.
func (s *Snapshot) PatternIDs() []string {
	ids := make([]string, len(s.Patterns))
	for i, p := range s.Patterns {
		ids[i] = p.ID
	}
	return ids
}

// Loader builds snapshots from a dataset directory and an entry source.
type Loader struct {
	dir     string
	files   Files
	source  EntrySource
	lexOpts []lexicon.Option
	logger  *slog.Logger
	now     func() time.Time
}

// NewLoader creates a Loader. A nil source reads lexicon entries from the
// files named in files.Lexicon.
func NewLoader(logger *slog.Logger, dir string, files Files, source EntrySource, opts ...lexicon.Option) *Loader {
	logger = logger.With("component", "dataset")
	if source == nil {
		source = FileSource{Dir: dir, Files: files.Lexicon, Logger: logger}
	}
	return &Loader{
		dir:     dir,
		files:   files,
		source:  source,
		lexOpts: opts,
		logger:  logger,
		now:     time.Now,
	}
}

// Dir returns the dataset directory.
func (l *Loader) Dir() string { return l.dir }

// Load reads and validates the whole dataset. It fails only when required
// grammar data is missing or invalid.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{LoadedAt: l.now()}

	data, err := l.readRequired(l.files.Patterns)
	if err != nil {
		return nil, err
	}
	if snap.Patterns, err = ParsePatterns(l.files.Patterns, data); err != nil {
		return nil, err
	}

	data, err = l.readRequired(l.files.Templates)
	if err != nil {
		return nil, err
	}
	if snap.Templates, err = ParseTemplates(l.files.Templates, data, snap.PatternIDs()); err != nil {
		return nil, err
	}

	snap.Closed = l.loadClosedClass()
	snap.Rules = l.loadRules()
	snap.Lexicon = l.loadLexicon(ctx)
	snap.Phrases = l.loadPhrasebank()
	snap.Phonemes = l.loadPhonemes()

	if fp, err := ComputeFingerprint(l.dir); err != nil {
		l.logger.Warn("dataset fingerprint failed", slog.String("error", err.Error()))
	} else {
		snap.Fingerprint = fp
	}

	c := snap.Counts()
	l.logger.Info("dataset loaded",
		slog.Int("entries", c.Entries),
		slog.Int("phrases", c.Phrases),
		slog.Int("patterns", c.Patterns),
		slog.Int("templates", c.Templates),
		slog.Int("closed_class", c.ClosedClass),
		slog.Int("phonemes", c.Phonemes),
		slog.String("fingerprint", snap.Fingerprint.SHA256),
	)
	return snap, nil
}

func (l *Loader) path(name string) string {
	return filepath.Join(l.dir, name)
}

func (l *Loader) readRequired(name string) ([]byte, error) {
	data, err := os.ReadFile(l.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &domain.DatasetError{File: name, Problems: []string{"required file not found"}}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// readOptional returns nil data without error when the file is absent.
func (l *Loader) readOptional(name string) ([]byte, error) {
	if name == "" {
		return nil, nil
	}
	data, err := os.ReadFile(l.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (l *Loader) degraded(part, file string, err error) {
	l.logger.Error("optional dataset part unavailable",
		slog.String("part", part),
		slog.String("file", file),
		slog.String("error", err.Error()),
	)
}

func (l *Loader) loadClosedClass() domain.ClosedClassTable {
	data, err := l.readOptional(l.files.ClosedClass)
	if err == nil && data != nil {
		var table domain.ClosedClassTable
		if table, err = ParseClosedClass(l.files.ClosedClass, data); err == nil {
			return table
		}
	}
	if err != nil {
		l.degraded("closed_class", l.files.ClosedClass, err)
	}
	return domain.ClosedClassTable{}
}

func (l *Loader) loadRules() domain.GrammarRules {
	data, err := l.readOptional(l.files.Rules)
	if err == nil && data != nil {
		var rules domain.GrammarRules
		if rules, err = ParseRules(l.files.Rules, data); err == nil {
			return rules
		}
	}
	if err != nil {
		l.degraded("grammar_rules", l.files.Rules, err)
	}
	return domain.GrammarRules{}
}

func (l *Loader) loadLexicon(ctx context.Context) *lexicon.Index {
	entries, err := l.source.LoadEntries(ctx)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("no lexicon files found, lookups unavailable")
		return nil
	}
	if err != nil {
		l.degraded("lexicon", "", err)
		return nil
	}
	if len(entries) == 0 {
		l.logger.Warn("lexicon is empty, lookups unavailable")
		return nil
	}
	return lexicon.Build(entries, l.lexOpts...)
}

func (l *Loader) loadPhrasebank() *phrasebank.Bank {
	data, err := l.readOptional(l.files.Phrasebank)
	if err != nil {
		l.degraded("phrasebank", l.files.Phrasebank, err)
		return nil
	}
	if data == nil {
		l.logger.Warn("phrasebank not found, chunking unavailable", slog.String("file", l.files.Phrasebank))
		return nil
	}

	items, stats, err := ParsePhrasebank(data)
	if err != nil {
		l.degraded("phrasebank", l.files.Phrasebank, err)
		return nil
	}
	l.logger.Info("phrasebank loaded",
		slog.Int("rows", stats.Rows),
		slog.Int("verified", stats.Verified),
		slog.Int("unverified", stats.Unverified),
	)
	return phrasebank.New(items)
}

func (l *Loader) loadPhonemes() *phoneme.Annotator {
	for _, name := range l.files.Phonemes {
		path := l.path(name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		dict, stats, err := phoneme.LoadDictionary(path)
		if err != nil {
			l.degraded("phonemes", name, err)
			break
		}
		l.logger.Info("phoneme dictionary loaded",
			slog.String("file", name),
			slog.Int("parsed", stats.ParsedLines),
			slog.Int("unique_words", stats.UniqueWords),
		)
		return phoneme.NewAnnotator(dict)
	}
	return phoneme.NewAnnotator(nil)
}
