package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ikalang/ika-backend/internal/audio"
	"github.com/ikalang/ika-backend/internal/domain"
)

// AnnotatePhonemes returns SSML markup with IPA transcriptions for every
// known word. The output depends only on the text and the loaded dictionary.
func (s *Service) AnnotatePhonemes(ctx context.Context, input PhonemesInput) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}
	st, err := s.load()
	if err != nil {
		return "", err
	}
	return st.phonemes.Annotate(input.Text), nil
}

// AudioKey derives the cache key and file name for a synthesis request and
// reports whether the file is already cached. The SSML is what the external
// synthesizer should receive.
func (s *Service) AudioKey(ctx context.Context, input AudioKeyInput) (AudioKeyResult, error) {
	if err := input.Validate(); err != nil {
		return AudioKeyResult{}, err
	}
	st, err := s.load()
	if err != nil {
		return AudioKeyResult{}, err
	}

	p := audio.Params{
		Text:   input.Text,
		Voice:  input.Voice,
		Rate:   input.Rate,
		Pitch:  input.Pitch,
		Format: input.Format,
	}.WithDefaults(s.cfg.AudioDefaults)

	name := audio.FileName(p)
	return AudioKeyResult{
		Key:      audio.Key(p),
		FileName: name,
		Cached:   s.cache != nil && s.cache.Has(name),
		SSML:     st.phonemes.Annotate(p.Text),
		Voice:    p.Voice,
		Rate:     p.Rate,
		Pitch:    p.Pitch,
		Format:   p.Format,
	}, nil
}

// AudioFile returns the local path of a cached audio file.
func (s *Service) AudioFile(ctx context.Context, name string) (string, error) {
	if s.cache == nil {
		return "", domain.ErrUnavailable
	}
	path, err := s.cache.Path(name)
	if err != nil {
		return "", fmt.Errorf("audio file: %w", err)
	}
	return path, nil
}

// StoreAudio saves synthesized audio under its cache file name. A file that
// is already cached is never overwritten.
func (s *Service) StoreAudio(ctx context.Context, name string, r io.Reader) (int64, error) {
	if s.cache == nil {
		return 0, domain.ErrUnavailable
	}
	if !audio.ValidFileName(name) {
		return 0, domain.NewValidationError("filename", "not a cache file name")
	}
	if s.cache.Has(name) {
		return 0, fmt.Errorf("audio file %s: %w", name, domain.ErrAlreadyExists)
	}

	n, err := s.cache.Store(name, r)
	if err != nil {
		return 0, fmt.Errorf("store audio: %w", err)
	}

	s.log.InfoContext(ctx, "audio stored", slog.String("file", name), slog.Int64("bytes", n))
	return n, nil
}
