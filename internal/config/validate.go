package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Dataset.validate(c.Database); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}

	if err := c.Engine.validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	if c.Audio.CacheDir == "" {
		return errors.New("audio.cache_dir must not be empty")
	}

	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit values must be >= 0 (got rpm=%d burst=%d)",
			c.RateLimit.RequestsPerMinute, c.RateLimit.Burst)
	}
	if c.RateLimit.RequestsPerMinute > 0 && c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %v)", c.RateLimit.CleanupInterval)
	}

	return nil
}

func (d *DatasetConfig) validate(db DatabaseConfig) error {
	if strings.TrimSpace(d.Dir) == "" {
		return errors.New("dir must not be empty")
	}
	switch d.Source {
	case SourceFile:
	case SourcePostgres:
		if !db.Enabled() {
			return errors.New("source postgres requires database.dsn")
		}
	default:
		return fmt.Errorf("source must be %q or %q (got %q)", SourceFile, SourcePostgres, d.Source)
	}
	if d.ReloadInterval < 0 {
		return fmt.Errorf("reload_interval must be >= 0 (got %v)", d.ReloadInterval)
	}
	return nil
}

func (e *EngineConfig) validate() error {
	if e.TargetThreshold <= 0 || e.TargetThreshold > 1 {
		return fmt.Errorf("target_threshold must be in (0,1] (got %v)", e.TargetThreshold)
	}
	if e.PartialLimit <= 0 || e.SuggestionLimit <= 0 || e.CandidateCap <= 0 || e.FallbackSize <= 0 {
		return errors.New("partial_limit, suggestion_limit, candidate_cap and fallback_size must be > 0")
	}
	if strings.TrimSpace(e.FallbackDomain) == "" {
		return errors.New("fallback_domain must not be empty")
	}

	tiers := []struct {
		name string
		raw  string
		dst  *Tiers
	}{
		{"poem_lines", e.PoemLinesRaw, &e.PoemLines},
		{"story_lines", e.StoryLinesRaw, &e.StoryLines},
		{"lecture_lines", e.LectureLinesRaw, &e.LectureLines},
		{"naturalize_parts", e.NaturalizePartsRaw, &e.NaturalizeParts},
	}
	for _, tier := range tiers {
		t, err := ParseTiers(tier.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", tier.name, err)
		}
		*tier.dst = t
	}
	return nil
}

// ParseTiers parses a comma-separated list of exactly three positive
// integers (e.g. "8,14,14") into short, medium and long counts.
func ParseTiers(raw string) (Tiers, error) {
	var t Tiers

	parts := strings.Split(strings.TrimSpace(raw), ",")
	if len(parts) != len(t) {
		return t, fmt.Errorf("want 3 comma-separated values, got %q", raw)
	}

	for i, p := range parts {
		p = strings.TrimSpace(p)
		n, err := strconv.Atoi(p)
		if err != nil {
			return t, fmt.Errorf("invalid count %q: %w", p, err)
		}
		if n <= 0 {
			return t, fmt.Errorf("count must be > 0 (got %d)", n)
		}
		t[i] = n
	}

	return t, nil
}
