package phrasebank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikalang/ika-backend/internal/domain"
)

func phrase(id, src, tgt string) domain.PhraseItem {
	return domain.PhraseItem{ID: id, SourcePhrase: src, TargetPhrase: tgt}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "punctuation dropped", input: "Good Morning!", want: []string{"good", "morning"}},
		{name: "typographic apostrophe", input: "Don’t go", want: []string{"don't", "go"}},
		{name: "leading quote is not a word", input: "'hello'", want: []string{"hello"}},
		{name: "one apostrophe per word", input: "rock'n'roll", want: []string{"rock'n", "roll"}},
		{name: "numbers kept", input: "room 12", want: []string{"room", "12"}},
		{name: "empty", input: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestChunk_EndToEnd(t *testing.T) {
	t.Parallel()

	b := New([]domain.PhraseItem{phrase("p1", "good morning", "ndewo")})

	res := b.Chunk("Good Morning!")

	assert.Equal(t, []string{"ndewo"}, res.Chunks)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, 0, res.Matches[0].Start)
	assert.Equal(t, 2, res.Matches[0].End)
	assert.Equal(t, "ndewo", res.Text())
}

func TestChunk_LongestMatch(t *testing.T) {
	t.Parallel()

	b := New([]domain.PhraseItem{
		phrase("short", "good", "ọma"),
		phrase("long", "good morning", "ndewo"),
	})

	res := b.Chunk("good morning friend")

	assert.Equal(t, []string{"ndewo"}, res.Chunks)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "long", res.Matches[0].ID)
	assert.Equal(t, 2, res.Matches[0].End)
}

func TestChunk_ShorterMatchWhenPathEnds(t *testing.T) {
	t.Parallel()

	b := New([]domain.PhraseItem{
		phrase("short", "good", "ọma"),
		phrase("long", "good morning sir", "ndewo nna"),
	})

	res := b.Chunk("good morning madam")

	assert.Equal(t, []string{"ọma"}, res.Chunks)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "short", res.Matches[0].ID)
	assert.Equal(t, 1, res.Matches[0].End)
}

func TestChunk_SilentPhrase(t *testing.T) {
	t.Parallel()

	b := New([]domain.PhraseItem{
		phrase("um", "you know", ""),
		phrase("water", "water", "mmiri"),
	})

	res := b.Chunk("you know, water")

	assert.Equal(t, []string{"mmiri"}, res.Chunks)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, "um", res.Matches[0].ID)
	assert.Equal(t, 0, res.Matches[0].Start)
	assert.Equal(t, 2, res.Matches[0].End)
	assert.Equal(t, 2, res.Matches[1].Start)
}

func TestChunk_NoBacktracking(t *testing.T) {
	t.Parallel()

	b := New([]domain.PhraseItem{
		phrase("abc", "a b c", "x"),
		phrase("bd", "b d", "y"),
	})

	res := b.Chunk("a b d")

	assert.Equal(t, []string{"y"}, res.Chunks)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, 1, res.Matches[0].Start)
	assert.Equal(t, 3, res.Matches[0].End)
}

func TestChunk_UnmatchedSkipped(t *testing.T) {
	t.Parallel()

	b := New([]domain.PhraseItem{phrase("w", "water", "mmiri")})

	res := b.Chunk("cold water please water")

	assert.Equal(t, []string{"mmiri", "mmiri"}, res.Chunks)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, 1, res.Matches[0].Start)
	assert.Equal(t, 3, res.Matches[1].Start)
	assert.Equal(t, []string{"cold", "water", "please", "water"}, res.Tokens)
}

func TestChunk_EmptyInput(t *testing.T) {
	t.Parallel()

	b := New([]domain.PhraseItem{phrase("w", "water", "mmiri")})

	res := b.Chunk("   ")

	assert.Empty(t, res.Chunks)
	assert.Empty(t, res.Matches)
	assert.Empty(t, res.Text())
}

func TestNew_DuplicatePhraseFirstWins(t *testing.T) {
	t.Parallel()

	b := New([]domain.PhraseItem{
		phrase("first", "thank you", "daalụ"),
		phrase("second", "Thank you!", "imeela"),
	})

	item, end, ok := b.FindLongestAt([]string{"thank", "you"}, 0)

	require.True(t, ok)
	assert.Equal(t, "first", item.ID)
	assert.Equal(t, 2, end)
}

func TestNew_OrdersByTokenLength(t *testing.T) {
	t.Parallel()

	b := New([]domain.PhraseItem{
		phrase("a", "one", "1"),
		phrase("b", "two words", "2"),
		phrase("c", "also one", "3"),
		phrase("d", "three words here", "4"),
		phrase("e", "...", "dropped"),
	})

	ids := make([]string, 0, b.Len())
	for _, it := range b.Items() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"d", "b", "c", "a"}, ids)
}

func TestFindLongestAt_NoMatch(t *testing.T) {
	t.Parallel()

	b := New([]domain.PhraseItem{phrase("w", "water", "mmiri")})

	_, _, ok := b.FindLongestAt([]string{"fire"}, 0)
	assert.False(t, ok)

	_, _, ok = b.FindLongestAt([]string{"water"}, 1)
	assert.False(t, ok)
}

func TestSourceForChunks(t *testing.T) {
	t.Parallel()

	b := New([]domain.PhraseItem{
		phrase("1", "eat", "jẹn"),
		phrase("2", "food", "afịa"),
		phrase("3", "good food", "afịa ọma"),
	})

	src, ok := b.SourceFor("Afịa Ọma")
	require.True(t, ok)
	assert.Equal(t, "good food", src)

	src, ok = b.SourceForChunks("jẹn afịa")
	require.True(t, ok)
	assert.Equal(t, "eat food", src)

	_, ok = b.SourceForChunks("unknown words")
	assert.False(t, ok)
}
