package config

import (
	"context"
	"fmt"

	"github.com/cognicore/gutenclean/pkg/gutenclean/ingest"
	"github.com/cognicore/gutenclean/pkg/gutenclean/internalerr"
	"github.com/cognicore/gutenclean/pkg/gutenclean/lexicon"
	"github.com/cognicore/gutenclean/pkg/gutenclean/markers"
	"github.com/cognicore/gutenclean/pkg/gutenclean/stoplist"
	"github.com/cognicore/gutenclean/pkg/gutenclean/store/sqlite"
)

// Components holds everything a run needs, built once per process.
type Components struct {
	Markers        *markers.Set
	Profile        *ingest.Profile
	InputEncoding  string
	OutputEncoding string
}

// Load turns a validated Config into run components. Unset paths fall back to
// the built-in tables; configured files extend (stoplist, lexicon) or
// replace (markers) them.
func (c *Config) Load(ctx context.Context) (*Components, error) {
	tag, err := ingest.ParseLanguage(c.Language)
	if err != nil {
		return nil, err
	}

	comp := &Components{
		InputEncoding:  c.Input.Encoding,
		OutputEncoding: c.Output.Encoding,
	}

	// Load markers
	if c.Markers != "" {
		set, err := markers.LoadFromYAML(c.Markers)
		if err != nil {
			return nil, fmt.Errorf("load markers: %w", err)
		}
		comp.Markers = set
	} else {
		comp.Markers = markers.Default()
	}

	profile := ingest.EnglishProfile()
	profile.Tag = tag

	// Load stoplist
	if c.Stoplist != "" {
		terms, err := stoplist.LoadFromYAML(c.Stoplist)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		for _, term := range terms {
			profile.Stopwords.Add(term)
		}
	}

	// Load lexicon
	lex := lexicon.English()
	if c.Lexicon != "" {
		if err := lex.MergeYAML(c.Lexicon); err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
	}
	if c.LexiconDB != "" {
		if err := loadLexiconDB(ctx, c.LexiconDB, lex); err != nil {
			return nil, fmt.Errorf("load lexicon db: %w", err)
		}
	}
	if bad := lex.FixedPointViolations(); len(bad) > 0 {
		return nil, fmt.Errorf("%w: lexicon lemmas rewritten by other entries: %v", internalerr.ErrInvalidConfig, bad)
	}
	profile.Lemmatizer = lex

	comp.Profile = profile
	return comp, nil
}

func loadLexiconDB(ctx context.Context, path string, lex *lexicon.Lexicon) error {
	db, err := sqlite.OpenReadOnly(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.LoadInto(ctx, lex)
	return err
}
