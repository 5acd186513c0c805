// Package generator assembles target-language text from grammar patterns,
// templates and lexicon pools. Every sampling call takes an explicit Rand so
// that callers control reproducibility; nothing here touches a global source.
package generator

import (
	"github.com/ikalang/ika-backend/internal/domain"
)

// Rand is the random source used for every uniform choice.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Lexicon is the read side of the lexicon index used for slot filling and
// pool composition.
type Lexicon interface {
	ByDomain(d string) []domain.LexEntry
	ByPOS(pos domain.PartOfSpeech, d string) []domain.LexEntry
	Entries() []domain.LexEntry
}

// pick returns a uniformly chosen element of items.
func pick[T any](rng Rand, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[rng.IntN(len(items))], true
}

// capped returns at most n leading items. n <= 0 means no cap.
func capped[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

// Tiers maps a Length to a count: short, medium, long.
type Tiers [3]int

// For returns the count for l. Unknown lengths get the medium tier.
func (t Tiers) For(l domain.Length) int {
	switch l {
	case domain.LengthShort:
		return t[0]
	case domain.LengthLong:
		return t[2]
	default:
		return t[1]
	}
}

// Default tiers per generation kind.
var (
	DefaultPoemLines       = Tiers{8, 14, 14}
	DefaultStoryLines      = Tiers{6, 12, 20}
	DefaultLectureLines    = Tiers{5, 10, 10}
	DefaultNaturalizeParts = Tiers{2, 4, 6}
)
