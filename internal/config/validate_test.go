package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Dataset: DatasetConfig{
			Dir:    "./data",
			Source: SourceFile,
		},
		Engine: EngineConfig{
			TargetThreshold:    0.35,
			PoemLinesRaw:       "8,14,14",
			StoryLinesRaw:      "6,12,20",
			LectureLinesRaw:    "5,10,10",
			NaturalizePartsRaw: "2,4,6",
			PartialLimit:       15,
			SuggestionLimit:    10,
			CandidateCap:       20,
			FallbackDomain:     "general",
			FallbackSize:       5,
		},
		Audio: AudioConfig{CacheDir: "./audio_cache"},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 120,
			Burst:             30,
			CleanupInterval:   5 * time.Minute,
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Engine.StoryLines != (Tiers{6, 12, 20}) {
		t.Errorf("story lines not parsed: %v", cfg.Engine.StoryLines)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"empty dataset dir", func(c *Config) { c.Dataset.Dir = "  " }},
		{"unknown source", func(c *Config) { c.Dataset.Source = "firestore" }},
		{"postgres without dsn", func(c *Config) { c.Dataset.Source = SourcePostgres }},
		{"negative reload interval", func(c *Config) { c.Dataset.ReloadInterval = -time.Second }},
		{"threshold zero", func(c *Config) { c.Engine.TargetThreshold = 0 }},
		{"threshold above one", func(c *Config) { c.Engine.TargetThreshold = 1.01 }},
		{"zero candidate cap", func(c *Config) { c.Engine.CandidateCap = 0 }},
		{"zero suggestion limit", func(c *Config) { c.Engine.SuggestionLimit = 0 }},
		{"empty fallback domain", func(c *Config) { c.Engine.FallbackDomain = "" }},
		{"two poem tiers", func(c *Config) { c.Engine.PoemLinesRaw = "8,14" }},
		{"non numeric tier", func(c *Config) { c.Engine.StoryLinesRaw = "6,many,20" }},
		{"zero tier", func(c *Config) { c.Engine.NaturalizePartsRaw = "0,4,6" }},
		{"empty audio cache dir", func(c *Config) { c.Audio.CacheDir = "" }},
		{"negative rate limit", func(c *Config) { c.RateLimit.RequestsPerMinute = -1 }},
		{"rate limit without cleanup", func(c *Config) { c.RateLimit.CleanupInterval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidate_PostgresWithDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Dataset.Source = SourcePostgres
	cfg.Database.DSN = "postgres://u:p@localhost:5432/ika"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RateLimitDisabled(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.RequestsPerMinute = 0
	cfg.RateLimit.CleanupInterval = 0

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with rate limiting disabled: %v", err)
	}
}

func TestParseTiers(t *testing.T) {
	tests := []struct {
		raw     string
		want    Tiers
		wantErr bool
	}{
		{raw: "8,14,14", want: Tiers{8, 14, 14}},
		{raw: " 1 , 2 ,3 ", want: Tiers{1, 2, 3}},
		{raw: "", wantErr: true},
		{raw: "1,2", wantErr: true},
		{raw: "1,2,3,4", wantErr: true},
		{raw: "1,-2,3", wantErr: true},
		{raw: "1,,3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseTiers(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseTiers(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
