package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ikalang/ika-backend/internal/adapter/postgres"
	"github.com/ikalang/ika-backend/internal/adapter/postgres/lexentry"
	"github.com/ikalang/ika-backend/internal/audio"
	"github.com/ikalang/ika-backend/internal/config"
	"github.com/ikalang/ika-backend/internal/dataset"
	"github.com/ikalang/ika-backend/internal/generator"
	"github.com/ikalang/ika-backend/internal/lexicon"
	"github.com/ikalang/ika-backend/internal/service/engine"
	"github.com/ikalang/ika-backend/internal/transport/middleware"
	"github.com/ikalang/ika-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, builds the
// first dataset snapshot, and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("dataset_dir", cfg.Dataset.Dir),
		slog.String("dataset_source", cfg.Dataset.Source),
	)

	var pool *pgxpool.Pool
	if cfg.Database.Enabled() {
		pool, err = postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
	}

	svc, err := NewEngine(ctx, cfg, logger, pool)
	if err != nil {
		return err
	}

	var health *rest.HealthHandler
	if pool != nil {
		health = rest.NewHealthHandler(svc, pool, BuildVersion())
	} else {
		health = rest.NewHealthHandler(svc, nil, BuildVersion())
	}

	limiter := middleware.NewRateLimiter(rateLimitCleanup(cfg.RateLimit))
	defer limiter.Stop()

	handler := NewHTTPHandler(cfg, logger, limiter, rest.NewRouter(health, rest.NewEngineHandler(svc, logger)))

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	if cfg.Dataset.ReloadInterval > 0 {
		go reloadLoop(ctx, logger, svc, cfg.Dataset.ReloadInterval)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// NewEngine builds the engine service and loads the first snapshot. With
// dataset.source=postgres, lexicon entries come from pool.
func NewEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) (*engine.Service, error) {
	loader, err := NewLoader(cfg, logger, pool)
	if err != nil {
		return nil, err
	}

	cache, err := audio.NewCache(cfg.Audio.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("audio cache: %w", err)
	}

	svc := engine.NewService(logger, loader, cache, EngineConfig(cfg))
	if _, err := svc.Reload(ctx); err != nil {
		return nil, fmt.Errorf("initial dataset load: %w", err)
	}
	return svc, nil
}

// NewLoader returns the dataset loader for cfg.
func NewLoader(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) (*dataset.Loader, error) {
	var source dataset.EntrySource
	if cfg.Dataset.Source == config.SourcePostgres {
		if pool == nil {
			return nil, errors.New("dataset source postgres requires a database connection")
		}
		source = lexentry.New(pool, postgres.NewTxManager(pool))
	}
	return dataset.NewLoader(logger, cfg.Dataset.Dir, dataset.DefaultFiles(), source, LexiconOptions(cfg.Engine)...), nil
}

// LexiconOptions maps engine settings onto lexicon index options.
func LexiconOptions(cfg config.EngineConfig) []lexicon.Option {
	return []lexicon.Option{
		lexicon.WithTargetThreshold(cfg.TargetThreshold),
		lexicon.WithSuggestionLimits(cfg.PartialLimit, cfg.SuggestionLimit),
	}
}

// EngineConfig maps the validated configuration onto engine settings.
func EngineConfig(cfg *config.Config) engine.Config {
	e := cfg.Engine
	return engine.Config{
		Composer: generator.ComposerConfig{
			PoemLines:      generator.Tiers(e.PoemLines),
			StoryLines:     generator.Tiers(e.StoryLines),
			LectureLines:   generator.Tiers(e.LectureLines),
			FallbackDomain: e.FallbackDomain,
			FallbackSize:   e.FallbackSize,
		},
		NaturalizeParts: generator.Tiers(e.NaturalizeParts),
		CandidateCap:    e.CandidateCap,
		Seed:            e.Seed,
		AudioDefaults: audio.Params{
			Voice:  cfg.Audio.Voice,
			Rate:   cfg.Audio.Rate,
			Pitch:  cfg.Audio.Pitch,
			Format: cfg.Audio.Format,
		},
	}
}

// NewHTTPHandler wraps router in the middleware chain:
// Recovery, RequestID, ClientIP, Logger, CORS, then rate limiting.
func NewHTTPHandler(cfg *config.Config, logger *slog.Logger, limiter *middleware.RateLimiter, router http.Handler) http.Handler {
	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.ClientIP(cfg.Server.TrustProxy),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst),
	)(router)
}

func rateLimitCleanup(cfg config.RateLimitConfig) time.Duration {
	if cfg.CleanupInterval > 0 {
		return cfg.CleanupInterval
	}
	return 5 * time.Minute
}

// reloader is the part of the engine the reload loop drives.
type reloader interface {
	Reload(ctx context.Context) (engine.Info, error)
}

// reloadLoop rebuilds the snapshot every interval until ctx is done. Failed
// reloads are logged by the engine and keep the previous snapshot.
func reloadLoop(ctx context.Context, logger *slog.Logger, svc reloader, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.Reload(ctx); err != nil {
				logger.Warn("periodic reload failed", slog.String("error", err.Error()))
			}
		}
	}
}
