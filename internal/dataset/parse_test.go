package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikalang/ika-backend/internal/domain"
)

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestParseLexicon_Export(t *testing.T) {
	t.Parallel()

	entries, stats, err := ParseLexicon(readTestdata(t, "firestore_lexicon_export.json"))
	require.NoError(t, err)

	assert.Equal(t, LexiconStats{Rows: 10, Entries: 8, Skipped: 2}, stats)
	require.Len(t, entries, 8)

	assert.Equal(t, domain.LexEntry{ID: "d2", Domain: "greeting", SourceText: "I am sorry", TargetText: "Ndo o"}, entries[1])
	assert.Equal(t, "sentence.svo", entries[2].Domain)
	assert.Equal(t, domain.PartOfSpeechVerb, entries[3].POS)
	assert.Equal(t, domain.PartOfSpeechAdjective, entries[6].POS)
}

func TestParseLexicon_Shapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want int
	}{
		{name: "bare array", data: `[{"domain":"g","en":"hi","ika":"ndo"}]`, want: 1},
		{name: "entries root", data: `{"entries":[{"domain":"g","english":"hi","ika":"ndo"}]}`, want: 1},
		{name: "docs and entries", data: `{"docs":[{"domain":"g","source_text":"a","target_text":"b"}],"entries":[{"domain":"g","source_text":"c","target_text":"d"}]}`, want: 2},
		{name: "empty object", data: `{}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			entries, _, err := ParseLexicon([]byte(tt.data))
			require.NoError(t, err)
			assert.Len(t, entries, tt.want)
		})
	}
}

func TestParseLexicon_Malformed(t *testing.T) {
	t.Parallel()

	_, _, err := ParseLexicon([]byte(`{"docs": [`))
	assert.Error(t, err)
}

func TestParseLexicon_GeneratedIDsAreStable(t *testing.T) {
	t.Parallel()

	data := []byte(`[{"domain":"g","source_text":"hi","target_text":"ndo"},{"domain":"g","source_text":"bye","target_text":"ka"}]`)
	first, _, err := ParseLexicon(data)
	require.NoError(t, err)
	second, _, err := ParseLexicon(data)
	require.NoError(t, err)

	assert.NotEmpty(t, first[0].ID)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.NotEqual(t, first[0].ID, first[1].ID)
	assert.Equal(t, EntryID(first[0]), first[0].ID)
}

func TestParsePhrasebank(t *testing.T) {
	t.Parallel()

	items, stats, err := ParsePhrasebank(readTestdata(t, "phrasebank.json"))
	require.NoError(t, err)

	assert.Equal(t, PhraseStats{Rows: 5, Verified: 3, Unverified: 1, Empty: 1}, stats)
	require.Len(t, items, 3)
	assert.Equal(t, domain.PhraseItem{ID: "p1", SourcePhrase: "good morning", TargetPhrase: "Ndo", Tags: []string{"greeting"}}, items[0])
	assert.Equal(t, "3", items[2].ID)
	assert.True(t, items[2].IsSilent())
}

func TestParsePhrasebank_StatusMustBeExact(t *testing.T) {
	t.Parallel()

	data := []byte(`{"items": [
		{"id": "a", "english": "thank you", "ika": "daalu", "status": "VERIFIED"},
		{"id": "b", "english": "good night", "ika": "ka chi fo", "status": " verified "}
	]}`)
	items, stats, err := ParsePhrasebank(data)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, 1, stats.Unverified)
}

func TestParsePatterns(t *testing.T) {
	t.Parallel()

	patterns, err := ParsePatterns("grammar_patterns.yaml", readTestdata(t, "grammar_patterns.yaml"))
	require.NoError(t, err)
	require.Len(t, patterns, 4)

	assert.Equal(t, []domain.Slot{{Name: "Subject"}, {Name: "Verb"}, {Name: "Object"}}, patterns[0].Slots)
	assert.Equal(t, []domain.Slot{
		{Name: "Noun", POS: domain.PartOfSpeechNoun},
		{Name: "Adj", POS: domain.PartOfSpeechAdjective},
	}, patterns[1].Slots)
	assert.Equal(t, domain.Slot{Name: "Greeting", Domain: "greeting"}, patterns[2].Slots[0])
}

func TestParsePatterns_Problems(t *testing.T) {
	t.Parallel()

	data := []byte(`
patterns:
  - pattern_id: a
    slots: [X]
  - pattern_id: a
    slots: [Y]
  - slots: [Z]
  - pattern_id: b
    example_language: ika
    slots: [X]
  - pattern_id: c
    example: "anyi na-eje"
    slots:
      - name: X
        pos: gerund
`)
	_, err := ParsePatterns("grammar_patterns.yaml", data)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDataset)

	var dsErr *domain.DatasetError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, "grammar_patterns.yaml", dsErr.File)
	assert.Equal(t, []string{
		"pattern a: duplicate pattern_id",
		"patterns[2]: missing pattern_id",
		"pattern b: example_language field is not allowed",
		`pattern c: example contains banned token "anyi"`,
		`pattern c: slot X: unknown pos "gerund"`,
	}, dsErr.Problems)
}

func TestParsePatterns_Empty(t *testing.T) {
	t.Parallel()

	_, err := ParsePatterns("p.yaml", []byte("patterns: []\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidDataset)

	_, err = ParsePatterns("p.yaml", []byte("patterns: [unclosed\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidDataset)
}

func TestParseTemplates(t *testing.T) {
	t.Parallel()

	ids := []string{"svo_basic", "noun_adj", "greeting_line", "joined"}
	templates, err := ParseTemplates("templates.yaml", readTestdata(t, "templates.yaml"), ids)
	require.NoError(t, err)
	require.Len(t, templates, 3)

	poem := templates[0]
	assert.Equal(t, domain.KindPoem, poem.Kind)
	assert.Equal(t, []string{"noun_adj", "svo_basic"}, poem.PatternPool)

	story := templates[1]
	assert.Equal(t, domain.KindStory, story.Kind)
	require.Len(t, story.Sections, 3)
	assert.Equal(t, domain.Section{Name: "resolution", PatternPool: []string{"noun_adj"}, MinSentences: 1, MaxSentences: 3}, story.Sections[2])

	lecture := templates[2]
	assert.Equal(t, domain.Section{Name: "explain", PatternPool: []string{"svo_basic"}, MinSentences: 2, MaxSentences: 5}, lecture.Sections[1])
}

func TestParseTemplates_Problems(t *testing.T) {
	t.Parallel()

	data := []byte(`
poem_templates:
  - pattern_pool: [missing]
story_templates:
  - opening:
      pattern_pool: [a]
      min_sentences: 3
      max_sentences: 1
`)
	_, err := ParseTemplates("templates.yaml", data, []string{"a"})
	var dsErr *domain.DatasetError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, []string{
		"poem_templates[0] references unknown pattern_id missing",
		"story_templates[0].opening: min_sentences 3 > max_sentences 1",
	}, dsErr.Problems)
}

func TestParseTemplates_EmptyPoolAllowed(t *testing.T) {
	t.Parallel()

	templates, err := ParseTemplates("templates.yaml", []byte("poem_templates:\n  - pattern_pool: []\n"), []string{"p1"})
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, domain.KindPoem, templates[0].Kind)
	assert.Empty(t, templates[0].PatternPool)
}

func TestParseTemplates_NoneDefined(t *testing.T) {
	t.Parallel()

	_, err := ParseTemplates("templates.yaml", []byte("{}\n"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidDataset)
}

func TestParseClosedClass(t *testing.T) {
	t.Parallel()

	table, err := ParseClosedClass("closed_class.yaml", readTestdata(t, "closed_class.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []domain.ClosedClassItem{{SourceText: "I", TargetText: "mẹ"}, {SourceText: "you", TargetText: "ị"}},
		table.Items(domain.ClosedClassSubjectPronouns))
	assert.Len(t, table.Items(domain.ClosedClassConnectors), 1)

	_, err = ParseClosedClass("closed_class.yaml", []byte("connectors:\n  - english: and\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidDataset)
}

func TestParseRules(t *testing.T) {
	t.Parallel()

	rules, err := ParseRules("grammar_rules.yaml", readTestdata(t, "grammar_rules.yaml"))
	require.NoError(t, err)
	assert.Equal(t, domain.GrammarRules{
		TenseMarkers:   map[string]string{"past": "ka", "future": "ga"},
		NegationMarker: "ẹ",
		QuestionMarker: "ọ",
	}, rules)
}
