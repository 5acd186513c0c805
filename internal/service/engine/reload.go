package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ikalang/ika-backend/internal/dataset"
)

// Info describes the snapshot currently served.
type Info struct {
	Ready       bool                `json:"ready"`
	LoadedAt    time.Time           `json:"loaded_at,omitzero"`
	Fingerprint dataset.Fingerprint `json:"dataset"`
	Counts      dataset.Counts      `json:"counts"`
	Domains     []string            `json:"domains,omitempty"`
	Tenses      []string            `json:"tenses,omitempty"`
}

// Reload loads a fresh snapshot and swaps it in. On failure the previous
// snapshot stays in service and the error is returned.
func (s *Service) Reload(ctx context.Context) (Info, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	snap, err := s.loader.Load(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "dataset reload failed, keeping previous snapshot",
			slog.String("error", err.Error()),
			slog.Bool("has_previous", s.current.Load() != nil),
		)
		return s.Info(), fmt.Errorf("reload dataset: %w", err)
	}

	s.current.Store(s.buildState(snap))

	s.log.InfoContext(ctx, "dataset snapshot swapped",
		slog.String("dataset_sha256", snap.Fingerprint.SHA256),
		slog.Duration("took", time.Since(start)),
	)
	return s.Info(), nil
}

// Info returns readiness and size information for the current snapshot.
func (s *Service) Info() Info {
	st := s.current.Load()
	if st == nil {
		return Info{}
	}
	info := Info{
		Ready:       true,
		LoadedAt:    st.snap.LoadedAt,
		Fingerprint: st.snap.Fingerprint,
		Counts:      st.snap.Counts(),
		Tenses:      st.rules.Tenses(),
	}
	if st.snap.Lexicon != nil {
		info.Domains = st.snap.Lexicon.Domains()
	}
	return info
}
