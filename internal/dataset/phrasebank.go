package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ikalang/ika-backend/internal/domain"
)

const statusVerified = "verified"

// flexID accepts a JSON string or number.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	if string(b) == "null" {
		*f = ""
		return nil
	}
	*f = flexID(b)
	return nil
}

type rawPhrase struct {
	ID      flexID   `json:"id"`
	English string   `json:"english"`
	Ika     string   `json:"ika"`
	Status  string   `json:"status"`
	Tags    []string `json:"tags"`
}

// PhraseStats counts phrasebank rows.
type PhraseStats struct {
	Rows       int
	Verified   int
	Unverified int
	Empty      int
}

// ParsePhrasebank decodes {"items": [...]} (or a bare array) and keeps only
// verified rows with a non-empty english phrase.
func ParsePhrasebank(data []byte) ([]domain.PhraseItem, PhraseStats, error) {
	var rows []rawPhrase

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, PhraseStats{}, fmt.Errorf("decode phrasebank: %w", err)
		}
	} else {
		var root struct {
			Items []rawPhrase `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &root); err != nil {
			return nil, PhraseStats{}, fmt.Errorf("decode phrasebank: %w", err)
		}
		rows = root.Items
	}

	var stats PhraseStats
	items := make([]domain.PhraseItem, 0, len(rows))
	for _, r := range rows {
		stats.Rows++
		if !strings.EqualFold(r.Status, statusVerified) {
			stats.Unverified++
			continue
		}
		eng := strings.TrimSpace(r.English)
		if eng == "" {
			stats.Empty++
			continue
		}
		items = append(items, domain.PhraseItem{
			ID:           string(r.ID),
			SourcePhrase: eng,
			TargetPhrase: strings.TrimSpace(r.Ika),
			Tags:         r.Tags,
		})
	}
	stats.Verified = len(items)
	return items, stats, nil
}
