package ingest

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/unicode/norm"
)

// WordTokenizer splits a block of text into surface-form tokens.
// Punctuation may come back as separate tokens.
type WordTokenizer interface {
	Tokenize(text string) []string
}

// UAX29Tokenizer segments text on Unicode word boundaries (UAX #29).
// Whitespace segments are dropped; punctuation segments are kept.
// Contractions such as "don't" stay a single token.
type UAX29Tokenizer struct{}

// NewUAX29Tokenizer creates the default word tokenizer.
func NewUAX29Tokenizer() *UAX29Tokenizer {
	return &UAX29Tokenizer{}
}

// Tokenize splits text into surface tokens, NFC-normalizing it first so
// decomposed accents are kept inside their words.
func (t *UAX29Tokenizer) Tokenize(text string) []string {
	var tokens []string

	segments := words.FromString(norm.NFC.String(text))
	for segments.Next() {
		seg := segments.Value()
		if strings.TrimFunc(seg, unicode.IsSpace) == "" {
			continue
		}
		tokens = append(tokens, seg)
	}

	return tokens
}

// FieldsTokenizer splits on whitespace only. Useful in tests and for input
// that is already tokenized.
type FieldsTokenizer struct{}

// Tokenize splits text on runs of whitespace.
func (FieldsTokenizer) Tokenize(text string) []string {
	return strings.Fields(text)
}
