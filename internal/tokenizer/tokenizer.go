// Package tokenizer normalizes raw document and query text into term
// sequences. Both index builders and the query loader must share one
// Tokenizer so the two evaluation strategies can never disagree on
// normalization.
package tokenizer

import (
	"strings"
)

// Token is a normalized term and its 0-based ordinal position among the
// kept terms of a document.
type Token struct {
	Term     string
	Position int
}

// Tokenizer converts raw text into normalized tokens. The zero value
// tokenizes without stemming.
type Tokenizer struct {
	// Stem enables suffix stemming of every normalized term.
	Stem bool
}

// Tokenize splits text on whitespace and normalizes each word. Words that
// normalize to the empty string are dropped and do not occupy a position.
func (t Tokenizer) Tokenize(text string) []Token {
	words := strings.Fields(text)
	tokens := make([]Token, 0, len(words))
	pos := 0
	for _, word := range words {
		term := t.Normalize(word)
		if term == "" {
			continue
		}
		tokens = append(tokens, Token{
			Term:     term,
			Position: pos,
		})
		pos++
	}
	return tokens
}

// Terms is Tokenize without the positions; positions are recoverable as the
// slice indexes.
func (t Tokenizer) Terms(text string) []string {
	tokens := t.Tokenize(text)
	terms := make([]string, len(tokens))
	for i, tok := range tokens {
		terms[i] = tok.Term
	}
	return terms
}

// Normalize lower-cases a single word and deletes every rune outside a-z.
// Digits and punctuation are deleted, not treated as separators: "don't"
// becomes "dont". Returns "" when nothing survives.
func (t Tokenizer) Normalize(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	term := b.String()
	if t.Stem {
		term = stem(term)
	}
	return term
}

// stem applies a simple suffix-stripping stemmer to the given word.
func stem(word string) string {
	suffixes := []struct {
		suffix      string
		replacement string
		minLen      int
	}{
		{"ational", "ate", 2},
		{"tional", "tion", 2},
		{"encies", "ence", 2},
		{"ances", "ance", 2},
		{"ments", "ment", 2},
		{"izing", "ize", 2},
		{"ating", "ate", 2},
		{"iness", "y", 2},
		{"ously", "ous", 2},
		{"ively", "ive", 2},
		{"eness", "ene", 2},
		{"tion", "t", 3},
		{"sion", "s", 3},
		{"ying", "y", 2},
		{"ling", "l", 3},
		{"ies", "y", 2},
		{"ing", "", 3},
		{"ers", "er", 2},
		{"est", "", 3},
		{"ful", "", 3},
		{"ous", "", 3},
		{"ess", "", 3},
		{"ble", "", 3},
		{"ed", "", 3},
		{"er", "", 3},
		{"ly", "", 3},
		{"es", "", 3},
		{"ss", "ss", 2},
		{"s", "", 3},
	}
	for _, rule := range suffixes {
		if strings.HasSuffix(word, rule.suffix) {
			newWord := word[:len(word)-len(rule.suffix)] + rule.replacement
			if len(newWord) >= rule.minLen {
				return newWord
			}
		}
	}
	return word
}
