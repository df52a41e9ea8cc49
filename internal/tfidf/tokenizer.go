package tfidf

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultMinTokenLength drops single-character tokens such as stray
// unit letters.
const DefaultMinTokenLength = 2

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenizer splits text into lower-case terms on whitespace and punctuation
// boundaries. It holds no mutable state and is safe for concurrent use.
type Tokenizer struct {
	minLength int
	stopwords map[string]struct{}
}

// NewTokenizer creates a tokenizer. minLength <= 0 selects
// DefaultMinTokenLength; stopwords may be nil.
func NewTokenizer(minLength int, stopwords []string) *Tokenizer {
	if minLength <= 0 {
		minLength = DefaultMinTokenLength
	}
	t := &Tokenizer{minLength: minLength}
	if len(stopwords) > 0 {
		t.stopwords = make(map[string]struct{}, len(stopwords))
		for _, w := range stopwords {
			t.stopwords[strings.ToLower(w)] = struct{}{}
		}
	}
	return t
}

// Tokenize returns terms in text order, duplicates included.
func (t *Tokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(norm.NFC.String(text))
	raw := wordPattern.FindAllString(lower, -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, tok := range raw {
		if len([]rune(tok)) < t.minLength {
			continue
		}
		if _, isStop := t.stopwords[tok]; isStop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// EnglishStopwords is a small list of function words. Ingredient lists rarely
// contain them, so the default tokenizer keeps every term.
func EnglishStopwords() []string {
	return []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
}
