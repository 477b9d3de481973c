package ingest

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/cognicore/gutenclean/pkg/gutenclean/internalerr"
	"github.com/cognicore/gutenclean/pkg/gutenclean/lexicon"
	"github.com/cognicore/gutenclean/pkg/gutenclean/stoplist"
)

// Lemmatizer maps a lowercase alphabetic token to its dictionary form.
type Lemmatizer interface {
	Lemma(token string) string
}

// Profile bundles the language capabilities a Normalizer runs with.
// Build it once per process and share it.
type Profile struct {
	Tag        language.Tag
	Tokenizer  WordTokenizer
	Stopwords  *stoplist.Manager
	Lemmatizer Lemmatizer
}

// ParseLanguage resolves a BCP 47 tag and checks that built-in language
// assets exist for it.
func ParseLanguage(s string) (language.Tag, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q: %v", internalerr.ErrUnsupportedLanguage, s, err)
	}
	base, _ := tag.Base()
	if enBase, _ := language.English.Base(); base != enBase {
		return language.Und, fmt.Errorf("%w: %s", internalerr.ErrUnsupportedLanguage, tag)
	}
	return tag, nil
}

// EnglishProfile returns the built-in English capabilities: UAX #29 word
// segmentation, the standard stopword list plus punctuation, and the
// English lexicon.
func EnglishProfile() *Profile {
	return &Profile{
		Tag:        language.English,
		Tokenizer:  NewUAX29Tokenizer(),
		Stopwords:  stoplist.English(),
		Lemmatizer: lexicon.English(),
	}
}
