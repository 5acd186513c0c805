package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ikalang/ika-backend/internal/domain"
)

// UniqueSuffix returns a short unique string for generating non-conflicting test data.
func UniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedEntry inserts one lexicon row at the given position and returns it.
// The id is made unique so tests sharing the container do not collide.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, domainName, source, target string, position int64) domain.LexEntry {
	t.Helper()

	entry := domain.LexEntry{
		ID:         "seed-" + UniqueSuffix(),
		Domain:     domainName,
		SourceText: source,
		TargetText: target,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO lexicon_entries (id, position, domain, source_text, target_text)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, position, entry.Domain, entry.SourceText, entry.TargetText,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEntry insert: %v", err)
	}

	return entry
}
