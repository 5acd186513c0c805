package phoneme

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Dictionary maps a lowercased Ika word to its IPA transcription.
type Dictionary map[string]string

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines   int
	CommentLines int
	ParsedLines  int
	UniqueWords  int
}

// errSkipLine signals that a line carries no entry (comment, blank, malformed).
var errSkipLine = errors.New("skip line")

// LoadDictionary reads a phoneme dictionary from path. Files ending in .json
// hold a flat {"word": "ipa"} object; anything else is parsed as tab
// separated text.
func LoadDictionary(path string) (Dictionary, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(f)
	}
	return ParseTSV(f)
}

// ParseJSON decodes a {"word": "ipa"} object.
func ParseJSON(r io.Reader) (Dictionary, Stats, error) {
	var raw map[string]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, Stats{}, fmt.Errorf("decode phoneme dictionary: %w", err)
	}

	dict := make(Dictionary, len(raw))
	var stats Stats
	for word, ipa := range raw {
		stats.TotalLines++
		key := normalizeWord(word)
		ipa = trimIPA(ipa)
		if key == "" || ipa == "" {
			continue
		}
		stats.ParsedLines++
		dict[key] = ipa
	}
	stats.UniqueWords = len(dict)
	return dict, stats, nil
}

// ParseTSV reads lines of the form "word<TAB>ipa1 | ipa2". Only the first
// variant is kept; surrounding slashes are removed. Lines starting with '#'
// are comments. The first occurrence of a word wins.
func ParseTSV(r io.Reader) (Dictionary, Stats, error) {
	dict := make(Dictionary)
	var stats Stats

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		stats.TotalLines++
		line := scanner.Text()

		word, ipa, err := parseLine(line)
		if err == errSkipLine {
			if strings.HasPrefix(strings.TrimSpace(line), "#") {
				stats.CommentLines++
			}
			continue
		}

		stats.ParsedLines++
		if _, exists := dict[word]; !exists {
			dict[word] = ipa
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, Stats{}, fmt.Errorf("scanner error: %w", err)
	}

	stats.UniqueWords = len(dict)
	return dict, stats, nil
}

func parseLine(line string) (string, string, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", errSkipLine
	}

	word, rest, ok := strings.Cut(line, "\t")
	if !ok {
		return "", "", errSkipLine
	}
	first, _, _ := strings.Cut(rest, "|")

	word = normalizeWord(word)
	ipa := trimIPA(first)
	if word == "" || ipa == "" {
		return "", "", errSkipLine
	}
	return word, ipa, nil
}

func normalizeWord(w string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(w)))
}

func trimIPA(s string) string {
	return strings.Trim(strings.TrimSpace(s), "/")
}
