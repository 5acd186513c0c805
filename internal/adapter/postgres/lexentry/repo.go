// Package lexentry persists verified lexicon rows in PostgreSQL. It is an
// alternative entry source to the JSON exports: the loader reads the table in
// insertion order, so ranking stays identical to the file-based path.
package lexentry

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/ikalang/ika-backend/internal/adapter/postgres"
	"github.com/ikalang/ika-backend/internal/domain"
)

const tableName = "lexicon_entries"

var selectColumns = []string{"id", "domain", "source_text", "target_text", "pos", "audio_url"}

// txManager runs fn inside a single database transaction.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Stats summarizes the stored table.
type Stats struct {
	Total    int            `json:"total"`
	ByDomain map[string]int `json:"by_domain"`
}

// Repo provides lexicon persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  txManager
}

// New creates a new lexicon entry repository.
func New(pool *pgxpool.Pool, txm txManager) *Repo {
	return &Repo{pool: pool, txm: txm}
}

// Builder returns a statement builder using PostgreSQL placeholders.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// LoadEntries returns every stored entry in insertion order.
func (r *Repo) LoadEntries(ctx context.Context) ([]domain.LexEntry, error) {
	query := Builder().
		Select(selectColumns...).
		From(tableName).
		OrderBy("position ASC", "id ASC")

	return r.list(ctx, query)
}

// ListByDomain returns the stored entries of one domain in insertion order.
func (r *Repo) ListByDomain(ctx context.Context, domainName string) ([]domain.LexEntry, error) {
	query := Builder().
		Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"domain": domain.NormalizeDomain(domainName)}).
		OrderBy("position ASC", "id ASC")

	return r.list(ctx, query)
}

// Count returns the number of stored entries.
func (r *Repo) Count(ctx context.Context) (int, error) {
	sql, args, err := Builder().Select("count(*)").From(tableName).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "lexicon_entries", "count")
	}
	return n, nil
}

// Stats returns the total row count and the per-domain counts, both read
// from the same snapshot.
func (r *Repo) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{ByDomain: make(map[string]int)}
	err := r.txm.RunReadOnly(ctx, func(ctx context.Context) error {
		total, err := r.Count(ctx)
		if err != nil {
			return err
		}
		stats.Total = total

		sql, args, err := Builder().
			Select("domain", "count(*)").
			From(tableName).
			GroupBy("domain").
			ToSql()
		if err != nil {
			return fmt.Errorf("build domain count query: %w", err)
		}

		rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
		if err != nil {
			return postgres.MapError(err, "lexicon_entries", "stats")
		}
		defer rows.Close()

		for rows.Next() {
			var (
				name string
				n    int
			)
			if err := rows.Scan(&name, &n); err != nil {
				return postgres.MapError(err, "lexicon_entries", "scan")
			}
			stats.ByDomain[name] = n
		}
		return rows.Err()
	})
	if err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// Import appends entries after the current last position. Rows whose id is
// already stored are skipped. Returns the number of rows actually inserted.
func (r *Repo) Import(ctx context.Context, entries []domain.LexEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	var inserted int
	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		offset, err := r.nextPosition(ctx)
		if err != nil {
			return err
		}
		inserted, err = r.insertBatch(ctx, entries, offset)
		return err
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// Replace swaps the whole table for entries in one transaction.
func (r *Repo) Replace(ctx context.Context, entries []domain.LexEntry) (int, error) {
	var inserted int
	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		sql, args, err := Builder().Delete(tableName).ToSql()
		if err != nil {
			return fmt.Errorf("build delete query: %w", err)
		}
		q := postgres.QuerierFromCtx(ctx, r.pool)
		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return postgres.MapError(err, "lexicon_entries", "replace")
		}
		if len(entries) == 0 {
			return nil
		}
		inserted, err = r.insertBatch(ctx, entries, 0)
		return err
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// Delete removes one entry by id.
func (r *Repo) Delete(ctx context.Context, id string) error {
	sql, args, err := Builder().Delete(tableName).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "lexicon_entry", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "lexicon_entry", id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) list(ctx context.Context, query squirrel.SelectBuilder) ([]domain.LexEntry, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "lexicon_entries", "list")
	}
	defer rows.Close()

	entries := make([]domain.LexEntry, 0)
	for rows.Next() {
		var (
			e   domain.LexEntry
			pos string
		)
		if err := rows.Scan(&e.ID, &e.Domain, &e.SourceText, &e.TargetText, &pos, &e.AudioURL); err != nil {
			return nil, postgres.MapError(err, "lexicon_entries", "scan")
		}
		e.POS = domain.PartOfSpeech(pos)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "lexicon_entries", "list")
	}

	return entries, nil
}

func (r *Repo) nextPosition(ctx context.Context) (int64, error) {
	sql, args, err := Builder().Select("COALESCE(MAX(position) + 1, 0)").From(tableName).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build position query: %w", err)
	}

	var next int64
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := q.QueryRow(ctx, sql, args...).Scan(&next); err != nil {
		return 0, postgres.MapError(err, "lexicon_entries", "position")
	}
	return next, nil
}

// insertBatch queues one insert per entry. Existing ids are skipped via
// ON CONFLICT DO NOTHING.
func (r *Repo) insertBatch(ctx context.Context, entries []domain.LexEntry, offset int64) (int, error) {
	batch := &pgx.Batch{}
	for i, e := range entries {
		sql, args, err := Builder().
			Insert(tableName).
			Columns("id", "position", "domain", "source_text", "target_text", "pos", "audio_url").
			Values(e.ID, offset+int64(i), domain.NormalizeDomain(e.Domain), e.SourceText, e.TargetText, string(e.POS), e.AudioURL).
			Suffix("ON CONFLICT (id) DO NOTHING").
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("build insert query: %w", err)
		}
		batch.Queue(sql, args...)
	}

	return r.sendBatchExec(ctx, batch)
}

func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, postgres.MapError(err, "lexicon_entries", "batch")
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}
