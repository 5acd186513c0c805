package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ikalang/ika-backend/internal/domain"
)

// entryNamespace seeds deterministic ids for rows exported without one.
var entryNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://ikalang.org/lexicon"))

// rawEntry accepts every field spelling seen in lexicon exports.
type rawEntry struct {
	ID           flexID `json:"id"`
	DocID        string `json:"_doc_id"`
	Domain       string `json:"domain"`
	Category     string `json:"category"`
	SourceText   string `json:"source_text"`
	SourceCamel  string `json:"sourceText"`
	English      string `json:"english"`
	En           string `json:"en"`
	TargetText   string `json:"target_text"`
	TargetCamel  string `json:"targetText"`
	Ika          string `json:"ika"`
	POS          string `json:"pos"`
	PartOfSpeech string `json:"part_of_speech"`
	AudioURL     string `json:"audio_url"`
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// toEntry maps a raw row. ok is false when domain, source or target is empty.
func (r rawEntry) toEntry() (domain.LexEntry, bool) {
	e := domain.LexEntry{
		ID:         firstOf(string(r.ID), r.DocID),
		Domain:     domain.NormalizeDomain(firstOf(r.Domain, r.Category)),
		SourceText: firstOf(r.SourceText, r.SourceCamel, r.English, r.En),
		TargetText: firstOf(r.TargetText, r.TargetCamel, r.Ika),
		AudioURL:   strings.TrimSpace(r.AudioURL),
	}
	if e.Domain == "" || e.SourceText == "" || e.TargetText == "" {
		return domain.LexEntry{}, false
	}
	if pos := domain.PartOfSpeech(strings.ToLower(firstOf(r.POS, r.PartOfSpeech))); pos.IsValid() {
		e.POS = pos
	}
	if e.ID == "" {
		e.ID = EntryID(e)
	}
	return e, true
}

// EntryID derives a stable id from an entry's content.
func EntryID(e domain.LexEntry) string {
	key := e.Domain + "\x00" + e.SourceText + "\x00" + e.TargetText
	return uuid.NewSHA1(entryNamespace, []byte(key)).String()
}

// LexiconStats counts rows seen while parsing a lexicon export.
type LexiconStats struct {
	Rows    int
	Entries int
	Skipped int
}

// ParseLexicon decodes a lexicon export. The root may be an object holding a
// "docs" or "entries" array, or a bare array.
func ParseLexicon(data []byte) ([]domain.LexEntry, LexiconStats, error) {
	var rows []rawEntry

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, LexiconStats{}, fmt.Errorf("decode lexicon: %w", err)
		}
	} else {
		var root struct {
			Docs    []rawEntry `json:"docs"`
			Entries []rawEntry `json:"entries"`
		}
		if err := json.Unmarshal(trimmed, &root); err != nil {
			return nil, LexiconStats{}, fmt.Errorf("decode lexicon: %w", err)
		}
		rows = append(root.Docs, root.Entries...)
	}

	var stats LexiconStats
	entries := make([]domain.LexEntry, 0, len(rows))
	for _, r := range rows {
		stats.Rows++
		e, ok := r.toEntry()
		if !ok {
			stats.Skipped++
			continue
		}
		entries = append(entries, e)
	}
	stats.Entries = len(entries)
	return entries, stats, nil
}

// EntrySource supplies lexicon entries for a snapshot.
type EntrySource interface {
	LoadEntries(ctx context.Context) ([]domain.LexEntry, error)
}

// FileSource reads lexicon entries from JSON exports in a directory.
// Files are read in order and concatenated; missing files are skipped.
type FileSource struct {
	Dir    string
	Files  []string
	Logger *slog.Logger
}

// LoadEntries implements EntrySource. It returns fs.ErrNotExist when none of
// the files exist.
func (s FileSource) LoadEntries(_ context.Context) ([]domain.LexEntry, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		entries []domain.LexEntry
		found   int
	)
	for _, name := range s.Files {
		path := filepath.Join(s.Dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		found++

		parsed, stats, err := ParseLexicon(data)
		if err != nil {
			return nil, &domain.DatasetError{File: name, Problems: []string{err.Error()}}
		}
		logger.Info("lexicon file loaded",
			slog.String("file", name),
			slog.Int("rows", stats.Rows),
			slog.Int("entries", stats.Entries),
			slog.Int("skipped", stats.Skipped),
		)
		entries = append(entries, parsed...)
	}
	if found == 0 {
		return nil, fmt.Errorf("lexicon files %v: %w", s.Files, fs.ErrNotExist)
	}
	return entries, nil
}
