package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/ikalang/ika-backend/internal/adapter/postgres"
	"github.com/ikalang/ika-backend/internal/app"
	"github.com/ikalang/ika-backend/internal/config"
	"github.com/ikalang/ika-backend/internal/service/engine"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configPath string
	datasetDir string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ikactl",
		Short: "Ika/English lexicon engine tool",
		Long: `ikactl runs lookups, translation, chunking, text generation and
phoneme annotation against a dataset directory, and manages the dataset
itself (validate, fingerprint, migrate, import).

Results are printed as JSON on stdout; logs go to stderr.`,
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $CONFIG_PATH or ./config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.datasetDir, "dataset", "", "dataset directory (overrides dataset.dir)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")

	cmd.AddCommand(
		newLookupCmd(opts),
		newTranslateCmd(opts),
		newChunkCmd(opts),
		newGenerateCmd(opts),
		newNaturalizeCmd(opts),
		newPhonemesCmd(opts),
		newValidateCmd(opts),
		newFingerprintCmd(opts),
		newMigrateCmd(opts),
		newImportCmd(opts),
	)
	return cmd
}

// config loads the configuration and applies flag overrides.
func (o *rootOptions) config() (*config.Config, error) {
	path := o.configPath
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if o.datasetDir != "" {
		cfg.Dataset.Dir = o.datasetDir
	}
	return cfg, nil
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// connect opens a pool when a DSN is configured. The returned close func is
// never nil.
func connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, func(), error) {
	if !cfg.Database.Enabled() {
		return nil, func() {}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, pool.Close, nil
}

// loadEngine builds an engine over the configured dataset. The audio cache
// is not attached; audio operations report unavailable.
func (o *rootOptions) loadEngine(cmd *cobra.Command) (*engine.Service, func(), error) {
	ctx := cmd.Context()

	cfg, err := o.config()
	if err != nil {
		return nil, nil, err
	}
	logger := o.logger(cmd)

	pool, closePool, err := connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	loader, err := app.NewLoader(cfg, logger, pool)
	if err != nil {
		closePool()
		return nil, nil, err
	}

	svc := engine.NewService(logger, loader, nil, app.EngineConfig(cfg))
	if _, err := svc.Reload(ctx); err != nil {
		closePool()
		return nil, nil, err
	}
	return svc, closePool, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
