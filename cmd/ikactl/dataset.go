package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ikalang/ika-backend/internal/adapter/postgres"
	"github.com/ikalang/ika-backend/internal/adapter/postgres/lexentry"
	"github.com/ikalang/ika-backend/internal/app"
	"github.com/ikalang/ika-backend/internal/dataset"
)

var errNoDatabase = errors.New("database.dsn (DATABASE_DSN) is not configured")

type validateReport struct {
	Dataset dataset.Fingerprint `json:"dataset"`
	Counts  dataset.Counts      `json:"counts"`
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the dataset and report counts, failing on structural errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			logger := opts.logger(cmd)

			pool, done, err := connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer done()

			loader, err := app.NewLoader(cfg, logger, pool)
			if err != nil {
				return err
			}
			snap, err := loader.Load(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), validateReport{
				Dataset: snap.Fingerprint,
				Counts:  snap.Counts(),
			})
		},
	}
}

func newFingerprintCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the sha256 fingerprint of the dataset directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			fp, err := dataset.ComputeFingerprint(cfg.Dataset.Dir)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), fp)
		},
	}
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled() {
				return errNoDatabase
			}
			applied, err := postgres.Migrate(cmd.Context(), cfg.Database.DSN)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", applied)
			return nil
		},
	}
}

type importReport struct {
	Read     int            `json:"read"`
	Inserted int            `json:"inserted"`
	Total    int            `json:"total"`
	ByDomain map[string]int `json:"by_domain"`
	Replaced bool           `json:"replaced"`
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var (
		replace bool
		files   []string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy lexicon entries from dataset files into PostgreSQL",
		Long: `Reads lexicon entries from the JSON exports in the dataset directory and
writes them to the lexicon_entries table. By default entries are appended and
ids already present are skipped; --replace swaps the whole table in one
transaction.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled() {
				return errNoDatabase
			}
			logger := opts.logger(cmd)

			if len(files) == 0 {
				files = dataset.DefaultFiles().Lexicon
			}
			entries, err := dataset.FileSource{Dir: cfg.Dataset.Dir, Files: files, Logger: logger}.LoadEntries(ctx)
			if err != nil {
				return err
			}

			pool, done, err := connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer done()

			repo := lexentry.New(pool, postgres.NewTxManager(pool))

			var inserted int
			if replace {
				inserted, err = repo.Replace(ctx, entries)
			} else {
				inserted, err = repo.Import(ctx, entries)
			}
			if err != nil {
				return fmt.Errorf("import entries: %w", err)
			}

			stats, err := repo.Stats(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), importReport{
				Read:     len(entries),
				Inserted: inserted,
				Total:    stats.Total,
				ByDomain: stats.ByDomain,
				Replaced: replace,
			})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "replace all stored entries")
	cmd.Flags().StringSliceVar(&files, "file", nil, "lexicon files to read (default: the standard export names)")
	return cmd
}
