// Package phrasebank matches free text against verified phrases.
//
// Phrases are stored in a word-level prefix trie. Chunk scans tokens left to
// right taking the longest phrase that starts at each position; it never
// backtracks, so the scan is linear in the number of input tokens times the
// longest phrase length.
package phrasebank

import (
	"sort"

	"github.com/ikalang/ika-backend/internal/domain"
)

type trieNode struct {
	children map[string]*trieNode
	items    []domain.PhraseItem
}

func newTrieNode() *trieNode {
	return &trieNode{children: map[string]*trieNode{}}
}

// Bank is an immutable phrase trie plus a reverse target→source map.
type Bank struct {
	root    *trieNode
	items   []domain.PhraseItem
	reverse map[string]string
}

// New builds a Bank from verified phrase items. Items are ordered by token
// length descending, ties keeping their input order, before insertion;
// when several items end at the same node the first inserted one wins.
// Items whose source phrase has no tokens are dropped.
func New(items []domain.PhraseItem) *Bank {
	type sized struct {
		item   domain.PhraseItem
		tokens []string
	}
	ordered := make([]sized, 0, len(items))
	for _, it := range items {
		toks := Tokenize(it.SourcePhrase)
		if len(toks) == 0 {
			continue
		}
		ordered = append(ordered, sized{item: it, tokens: toks})
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].tokens) > len(ordered[j].tokens)
	})

	b := &Bank{
		root:    newTrieNode(),
		items:   make([]domain.PhraseItem, 0, len(ordered)),
		reverse: make(map[string]string, len(ordered)),
	}
	for _, s := range ordered {
		b.insert(s.tokens, s.item)
		b.items = append(b.items, s.item)

		if key := domain.NormalizeText(s.item.TargetPhrase); key != "" {
			if _, dup := b.reverse[key]; !dup {
				b.reverse[key] = s.item.SourcePhrase
			}
		}
	}
	return b
}

func (b *Bank) insert(tokens []string, item domain.PhraseItem) {
	node := b.root
	for _, tok := range tokens {
		next, ok := node.children[tok]
		if !ok {
			next = newTrieNode()
			node.children[tok] = next
		}
		node = next
	}
	node.items = append(node.items, item)
}

// Len returns the number of phrases in the bank.
func (b *Bank) Len() int { return len(b.items) }

// Items returns the phrases in insertion order. Callers must not modify it.
func (b *Bank) Items() []domain.PhraseItem { return b.items }

// FindLongestAt walks the trie from tokens[i] and returns the item of the
// deepest terminal node reached along the contiguous path, with its
// exclusive end index. ok is false when no phrase starts at i.
func (b *Bank) FindLongestAt(tokens []string, i int) (item domain.PhraseItem, end int, ok bool) {
	node := b.root
	for j := i; j < len(tokens); j++ {
		next, exists := node.children[tokens[j]]
		if !exists {
			break
		}
		node = next
		if len(node.items) > 0 {
			item, end, ok = node.items[0], j+1, true
		}
	}
	return item, end, ok
}
