package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/cognicore/gutenclean/pkg/gutenclean/stoplist"
)

// Normalizer turns prose into cleaned lemma tokens.
//
// Stages run in a fixed order, each producing a full slice:
// tokenize → lowercase → strip punctuation → alphabetic filter →
// stopword filter → lemmatize.
// Reordering changes the output (stopwords are matched on surface forms,
// not lemmas). A Normalizer is safe for concurrent use as long as its
// profile is not modified.
type Normalizer struct {
	profile *Profile
}

// NewNormalizer creates a normalizer over a language profile.
func NewNormalizer(p *Profile) *Normalizer {
	return &Normalizer{profile: p}
}

// Stats counts tokens surviving each stage.
type Stats struct {
	Tokens     int // after tokenization
	Alphabetic int // after punctuation strip + alphabetic filter
	Content    int // after stopword filter
}

// Normalize returns the cleaned token sequence for text.
func (n *Normalizer) Normalize(text string) []string {
	tokens, _ := n.NormalizeWithStats(text)
	return tokens
}

// NormalizeWithStats is Normalize plus per-stage counts.
func (n *Normalizer) NormalizeWithStats(text string) ([]string, Stats) {
	var stats Stats

	// 1. Tokenize
	tokens := n.profile.Tokenizer.Tokenize(text)
	stats.Tokens = len(tokens)

	// 2. Lowercase; a Caser keeps state, so each call gets its own
	lower := cases.Lower(n.profile.Tag)
	lowered := make([]string, len(tokens))
	for i, tok := range tokens {
		lowered[i] = lower.String(tok)
	}

	// 3. Strip punctuation inside tokens
	stripped := make([]string, len(lowered))
	for i, tok := range lowered {
		stripped[i] = StripPunctuation(tok)
	}

	// 4. Keep alphabetic tokens (drops the empties left by step 3)
	alpha := make([]string, 0, len(stripped))
	for _, tok := range stripped {
		if IsAlpha(tok) {
			alpha = append(alpha, tok)
		}
	}
	stats.Alphabetic = len(alpha)

	// 5. Drop stopwords
	content := make([]string, 0, len(alpha))
	for _, tok := range alpha {
		if !n.profile.Stopwords.IsStop(tok) {
			content = append(content, tok)
		}
	}
	stats.Content = len(content)

	// 6. Lemmatize
	lemmas := make([]string, len(content))
	for i, tok := range content {
		lemmas[i] = n.profile.Lemmatizer.Lemma(tok)
	}

	return lemmas, stats
}

// StripPunctuation removes ASCII punctuation and Unicode punctuation runes
// from anywhere in the token.
func StripPunctuation(tok string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || strings.ContainsRune(stoplist.Punctuation, r) {
			return -1
		}
		return r
	}, tok)
}

// IsAlpha reports whether tok is non-empty and made only of letters.
func IsAlpha(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
