package phoneme

import (
	"unicode"
	"unicode/utf8"
)

// TokenKind classifies a token produced by Tokenize.
type TokenKind int

const (
	TokenWord TokenKind = iota
	TokenSpace
	TokenPunct
)

// Token is a contiguous slice of the input text.
type Token struct {
	Text string
	Kind TokenKind
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func kindOf(r rune) TokenKind {
	switch {
	case isWordRune(r):
		return TokenWord
	case unicode.IsSpace(r):
		return TokenSpace
	default:
		return TokenPunct
	}
}

// Tokenize splits text into maximal word runs, maximal whitespace runs and
// single punctuation characters. Concatenating the token texts yields text.
func Tokenize(text string) []Token {
	var tokens []Token
	start := 0
	for start < len(text) {
		r, size := utf8.DecodeRuneInString(text[start:])
		kind := kindOf(r)
		end := start + size
		if kind != TokenPunct {
			for end < len(text) {
				next, n := utf8.DecodeRuneInString(text[end:])
				if kindOf(next) != kind {
					break
				}
				end += n
			}
		}
		tokens = append(tokens, Token{Text: text[start:end], Kind: kind})
		start = end
	}
	return tokens
}
