package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Engine    EngineConfig    `yaml:"engine"`
	Audio     AudioConfig     `yaml:"audio"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// TrustProxy takes the client address from X-Forwarded-For.
	TrustProxy bool `yaml:"trust_proxy" env:"SERVER_TRUST_PROXY" env-default:"false"`
}

// DatabaseConfig holds PostgreSQL connection settings. The database is
// optional; an empty DSN runs the server from dataset files alone.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	ApplicationName string        `yaml:"application_name"   env:"DATABASE_APPLICATION_NAME"   env-default:"ika-backend"`
}

// Enabled reports whether a database is configured.
func (c DatabaseConfig) Enabled() bool { return c.DSN != "" }

// Dataset sources.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// DatasetConfig locates the dataset and controls reloading.
type DatasetConfig struct {
	Dir    string `yaml:"dir"    env:"DATASET_DIR"    env-default:"./data"`
	Source string `yaml:"source" env:"DATASET_SOURCE" env-default:"file"`
	// ReloadInterval enables periodic snapshot rebuilds when positive.
	ReloadInterval time.Duration `yaml:"reload_interval" env:"DATASET_RELOAD_INTERVAL" env-default:"0s"`
}

// EngineConfig tunes lookup, suggestion and generation behaviour.
type EngineConfig struct {
	TargetThreshold    float64 `yaml:"target_threshold" env:"ENGINE_TARGET_THRESHOLD" env-default:"0.35"`
	PoemLinesRaw       string  `yaml:"poem_lines"       env:"ENGINE_POEM_LINES"       env-default:"8,14,14"`
	StoryLinesRaw      string  `yaml:"story_lines"      env:"ENGINE_STORY_LINES"      env-default:"6,12,20"`
	LectureLinesRaw    string  `yaml:"lecture_lines"    env:"ENGINE_LECTURE_LINES"    env-default:"5,10,10"`
	NaturalizePartsRaw string  `yaml:"naturalize_parts" env:"ENGINE_NATURALIZE_PARTS" env-default:"2,4,6"`
	PartialLimit       int     `yaml:"partial_limit"    env:"ENGINE_PARTIAL_LIMIT"    env-default:"15"`
	SuggestionLimit    int     `yaml:"suggestion_limit" env:"ENGINE_SUGGESTION_LIMIT" env-default:"10"`
	CandidateCap       int     `yaml:"candidate_cap"    env:"ENGINE_CANDIDATE_CAP"    env-default:"20"`
	FallbackDomain     string  `yaml:"fallback_domain"  env:"ENGINE_FALLBACK_DOMAIN"  env-default:"general"`
	FallbackSize       int     `yaml:"fallback_size"    env:"ENGINE_FALLBACK_SIZE"    env-default:"5"`
	// Seed makes generation reproducible across the process when non-zero.
	Seed uint64 `yaml:"seed" env:"ENGINE_SEED" env-default:"0"`

	// The tier fields are parsed from their Raw strings during validation.
	PoemLines       Tiers `yaml:"-" env:"-"`
	StoryLines      Tiers `yaml:"-" env:"-"`
	LectureLines    Tiers `yaml:"-" env:"-"`
	NaturalizeParts Tiers `yaml:"-" env:"-"`
}

// Tiers holds the short, medium and long counts of a length setting.
type Tiers [3]int

// AudioConfig holds the local audio cache and default synthesis parameters.
type AudioConfig struct {
	CacheDir string `yaml:"cache_dir" env:"AUDIO_CACHE_DIR" env-default:"./audio_cache"`
	Voice    string `yaml:"voice"     env:"AUDIO_VOICE"     env-default:"default"`
	Rate     string `yaml:"rate"      env:"AUDIO_RATE"      env-default:"1.0"`
	Pitch    string `yaml:"pitch"     env:"AUDIO_PITCH"     env-default:"0"`
	Format   string `yaml:"format"    env:"AUDIO_FORMAT"    env-default:"mp3"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateLimitConfig holds per-client request limits. A zero
// RequestsPerMinute disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"     env-default:"120"`
	Burst             int           `yaml:"burst"               env:"RATE_LIMIT_BURST"   env-default:"30"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP" env-default:"5m"`
}
