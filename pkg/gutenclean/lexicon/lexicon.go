package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"gopkg.in/yaml.v3"
)

//go:embed english.yaml
var englishYAML []byte

// Dictionary maps a word to its dictionary form, returning unknown words
// unchanged. *golem.Lemmatizer satisfies it.
type Dictionary interface {
	Lemma(word string) string
}

var englishDictionary = sync.OnceValues(func() (*golem.Lemmatizer, error) {
	return golem.New(en.New())
})

// EnglishDictionary returns the shared golem English dictionary. It is
// decompressed on first use.
func EnglishDictionary() (Dictionary, error) {
	return englishDictionary()
}

// Lexicon reduces word forms to their dictionary lemma.
//
// Lookup order:
//   - Exceptions: forms mapped to a chosen lemma (mice -> mouse)
//   - Invariants: words kept as they are (series, means)
//   - The dictionary, followed until it reaches a form it maps to itself
//
// Exceptions and invariants override the dictionary. Words the dictionary
// does not know pass through unchanged.
type Lexicon struct {
	// lemma -> all variants (including the lemma itself)
	// Example: "mouse" -> ["mouse", "mice"]
	lemmas map[string][]string

	// variant -> lemma
	// Example: "mice" -> "mouse"
	reverseIndex map[string]string

	invariants map[string]struct{}

	dict Dictionary // nil: tables only
}

// New creates an empty lexicon with no dictionary. Only registered
// exceptions change a word.
func New() *Lexicon {
	return &Lexicon{
		lemmas:       make(map[string][]string),
		reverseIndex: make(map[string]string),
		invariants:   make(map[string]struct{}),
	}
}

// NewWithDictionary creates an empty lexicon backed by dict.
func NewWithDictionary(dict Dictionary) *Lexicon {
	lex := New()
	lex.dict = dict
	return lex
}

// English returns the golem English dictionary with the built-in exception
// and invariant tables on top.
func English() *Lexicon {
	dict, err := EnglishDictionary()
	if err != nil {
		panic(fmt.Sprintf("lexicon: embedded dictionary failed to load: %v", err))
	}
	lex := NewWithDictionary(dict)
	if err := lex.parseInto(englishYAML); err != nil {
		panic(fmt.Sprintf("lexicon: embedded table is invalid: %v", err))
	}
	return lex
}

type fileFormat struct {
	Exceptions []struct {
		Lemma    string   `yaml:"lemma"`
		Variants []string `yaml:"variants"`
	} `yaml:"exceptions"`
	Invariants []string `yaml:"invariants"`
}

// LoadFromYAML loads lemma exceptions from a YAML file.
//
// Expected format:
//
//	exceptions:
//	  - lemma: mouse
//	    variants: [mice]
//	invariants: [series, news]
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML lexicon table into a lexicon with no dictionary.
func Parse(data []byte) (*Lexicon, error) {
	lex := New()
	if err := lex.parseInto(data); err != nil {
		return nil, err
	}
	return lex, nil
}

// MergeYAML adds the entries of a YAML file on top of the current tables.
func (l *Lexicon) MergeYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return l.parseInto(data)
}

func (l *Lexicon) parseInto(data []byte) error {
	var cfg fileFormat
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	l.merge(&cfg)
	return nil
}

// merge adds decoded entries.
func (l *Lexicon) merge(cfg *fileFormat) {
	for _, e := range cfg.Exceptions {
		l.AddException(e.Lemma, e.Variants)
	}
	for _, w := range cfg.Invariants {
		l.AddInvariant(w)
	}
}

// AddException registers irregular variants of a lemma.
// The lemma is always included as the first entry in the variants list.
// If the lemma already exists, its variants are extended.
func (l *Lexicon) AddException(lemma string, variants []string) {
	lemma = strings.ToLower(lemma)

	existing := l.lemmas[lemma]
	seen := make(map[string]bool, len(existing)+len(variants)+1)
	normalized := make([]string, 0, len(existing)+len(variants)+1)

	// Add lemma first
	normalized = append(normalized, lemma)
	seen[lemma] = true

	for _, group := range [][]string{existing, variants} {
		for _, v := range group {
			v = strings.ToLower(v)
			if !seen[v] {
				normalized = append(normalized, v)
				seen[v] = true
			}
		}
	}

	l.lemmas[lemma] = normalized
	for _, v := range normalized {
		l.reverseIndex[v] = lemma
	}
}

// AddInvariant marks a word as its own lemma.
func (l *Lexicon) AddInvariant(word string) {
	l.invariants[strings.ToLower(word)] = struct{}{}
}

// Lemma returns the dictionary form of a lowercase token.
// Lemma(Lemma(w)) == Lemma(w) for every w as long as every registered lemma
// is itself a fixed point (see FixedPointViolations).
//
// Examples (English):
//   - Lemma("cats") -> "cat"
//   - Lemma("mice") -> "mouse"
//   - Lemma("ran") -> "run"
//   - Lemma("charles") -> "charles"
func (l *Lexicon) Lemma(token string) string {
	if lemma, ok := l.reverseIndex[token]; ok {
		return lemma
	}
	if _, ok := l.invariants[token]; ok {
		return token
	}
	if l.dict == nil {
		return token
	}
	w := settle(l.dict, token)
	if lemma, ok := l.reverseIndex[w]; ok {
		return lemma
	}
	return w
}

// settle follows dict from w until it reaches a word that maps to itself.
// If the chain loops, the smallest word of the loop is returned, which is
// the same answer from any word on the loop.
func settle(dict Dictionary, w string) string {
	chain := []string{w}
	for {
		next := dict.Lemma(w)
		if next == w {
			return w
		}
		for i, seen := range chain {
			if seen == next {
				least := chain[i]
				for _, c := range chain[i+1:] {
					if c < least {
						least = c
					}
				}
				return least
			}
		}
		chain = append(chain, next)
		w = next
	}
}

// Variants returns all known variants of a lemma (including the lemma).
// If the token is not in the lexicon, returns a slice containing only the token itself.
func (l *Lexicon) Variants(token string) []string {
	token = strings.ToLower(token)
	if variants, ok := l.lemmas[token]; ok {
		return variants
	}
	if lemma, ok := l.reverseIndex[token]; ok {
		return l.lemmas[lemma]
	}
	return []string{token}
}

// FixedPointViolations lists registered lemmas that would themselves be
// rewritten by Lemma. A healthy table returns nothing.
func (l *Lexicon) FixedPointViolations() []string {
	var bad []string
	for lemma := range l.lemmas {
		if got := l.Lemma(lemma); got != lemma {
			bad = append(bad, lemma)
		}
	}
	return bad
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() Stats {
	total := 0
	for _, variants := range l.lemmas {
		total += len(variants)
	}
	return Stats{
		Lemmas:     len(l.lemmas),
		Variants:   total,
		Invariants: len(l.invariants),
	}
}

// Stats holds statistics about lexicon contents.
type Stats struct {
	Lemmas     int // Number of lemmas with irregular variants
	Variants   int // Total number of variants across all lemmas
	Invariants int
}
