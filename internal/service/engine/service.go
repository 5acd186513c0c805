// Package engine is the service facade over one immutable dataset snapshot.
// Every request reads the snapshot current at its start; Reload builds a new
// snapshot and swaps it in atomically, so requests never see a partial view.
package engine

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/ikalang/ika-backend/internal/audio"
	"github.com/ikalang/ika-backend/internal/dataset"
	"github.com/ikalang/ika-backend/internal/domain"
	"github.com/ikalang/ika-backend/internal/generator"
	"github.com/ikalang/ika-backend/internal/lexicon"
	"github.com/ikalang/ika-backend/internal/phoneme"
)

type snapshotLoader interface {
	Load(ctx context.Context) (*dataset.Snapshot, error)
}

type audioCache interface {
	Has(name string) bool
	Path(name string) (string, error)
	Store(name string, r io.Reader) (int64, error)
}

// Listing limits.
const (
	DefaultListLimit = 500
	MaxListLimit     = 1000
	MaxTextLength    = 5000
)

// Config holds the generation tunables of the engine.
type Config struct {
	Composer        generator.ComposerConfig
	NaturalizeParts generator.Tiers
	CandidateCap    int
	// Seed makes unseeded requests draw from one shared seeded stream.
	// Zero means a fresh random source per request.
	Seed          uint64
	AudioDefaults audio.Params
}

// DefaultConfig returns the stock engine configuration.
func DefaultConfig() Config {
	return Config{
		Composer:        generator.DefaultComposerConfig(),
		NaturalizeParts: generator.DefaultNaturalizeParts,
		CandidateCap:    generator.DefaultCandidateCap,
		AudioDefaults: audio.Params{
			Voice:  audio.DefaultVoice,
			Rate:   audio.DefaultRate,
			Pitch:  audio.DefaultPitch,
			Format: audio.DefaultFormat,
		},
	}
}

// state is everything derived from one snapshot.
type state struct {
	snap        *dataset.Snapshot
	composer    *generator.Composer
	naturalizer *generator.Naturalizer
	rules       generator.Rules
	translator  *generator.RuleTranslator
	phonemes    *phoneme.Annotator
}

// Service exposes lookup, translation, generation and audio key operations.
type Service struct {
	loader snapshotLoader
	cache  audioCache
	cfg    Config
	log    *slog.Logger

	current atomic.Pointer[state]
	// reloadMu serializes Reload; readers never take it.
	reloadMu sync.Mutex
	shared   *lockedRand
}

// NewService creates an engine service. No snapshot is loaded until Reload
// is called; until then every dataset operation returns domain.ErrUnavailable.
// cache may be nil, which disables audio file operations.
func NewService(log *slog.Logger, loader snapshotLoader, cache audioCache, cfg Config) *Service {
	s := &Service{
		loader: loader,
		cache:  cache,
		cfg:    cfg,
		log:    log.With("service", "engine"),
	}
	if cfg.Seed != 0 {
		s.shared = &lockedRand{r: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))}
	}
	return s
}

func (s *Service) buildState(snap *dataset.Snapshot) *state {
	lex := snap.Lexicon
	if lex == nil {
		lex = lexicon.Build(nil)
	}
	filler := generator.NewSlotFiller(lex, snap.Closed, s.cfg.CandidateCap)
	rules := generator.NewRules(snap.Rules)
	phonemes := snap.Phonemes
	if phonemes == nil {
		phonemes = phoneme.NewAnnotator(nil)
	}
	return &state{
		snap:        snap,
		composer:    generator.NewComposer(lex, filler, snap.Patterns, snap.Templates, s.cfg.Composer),
		naturalizer: generator.NewNaturalizer(lex, s.cfg.NaturalizeParts),
		rules:       rules,
		translator:  generator.NewRuleTranslator(lex, rules),
		phonemes:    phonemes,
	}
}

// load returns the current state or domain.ErrUnavailable before the first
// successful Reload.
func (s *Service) load() (*state, error) {
	st := s.current.Load()
	if st == nil {
		return nil, domain.ErrUnavailable
	}
	return st, nil
}

// lexicon returns the loaded index or domain.ErrUnavailable.
func (st *state) lexicon() (*lexicon.Index, error) {
	if st.snap.Lexicon == nil {
		return nil, domain.ErrUnavailable
	}
	return st.snap.Lexicon, nil
}

// rng returns the random source for one request.
func (s *Service) rng(seed *uint64) generator.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	if s.shared != nil {
		return s.shared
	}
	return globalRand{}
}

// globalRand draws from the goroutine-safe top-level math/rand/v2 source.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// lockedRand shares one seeded stream between goroutines.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
