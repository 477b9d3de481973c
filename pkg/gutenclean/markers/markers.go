package markers

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/gutenclean/pkg/gutenclean/internalerr"
)

//go:embed markers.yaml
var defaultYAML []byte

// Set holds the literal line prefixes that open and close boilerplate.
// A line matches a marker when it starts with the exact marker string;
// no case folding or whitespace trimming is applied.
type Set struct {
	Begin []string `yaml:"begin"`
	End   []string `yaml:"end"`
}

// Default returns the built-in marker tables.
func Default() *Set {
	s, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("markers: embedded table is invalid: %v", err))
	}
	return s
}

// LoadFromYAML loads a marker set from a YAML file.
//
// Expected format:
//
//	begin:
//	  - "*** START OF THIS PROJECT GUTENBERG"
//	end:
//	  - "*** END OF THIS PROJECT GUTENBERG"
func LoadFromYAML(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a YAML marker table.
func Parse(data []byte) (*Set, error) {
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: markers: %v", internalerr.ErrInvalidConfig, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate rejects empty markers and markers listed in both sets.
// An empty marker would match every line.
func (s *Set) Validate() error {
	begins := make(map[string]struct{}, len(s.Begin))
	for _, m := range s.Begin {
		if m == "" {
			return fmt.Errorf("%w: empty begin marker", internalerr.ErrInvalidConfig)
		}
		begins[m] = struct{}{}
	}
	for _, m := range s.End {
		if m == "" {
			return fmt.Errorf("%w: empty end marker", internalerr.ErrInvalidConfig)
		}
		if _, dup := begins[m]; dup {
			return fmt.Errorf("%w: marker %q is both begin and end", internalerr.ErrInvalidConfig, m)
		}
	}
	return nil
}

// MatchBegin reports whether line starts with any begin marker.
func (s *Set) MatchBegin(line string) bool {
	return hasAnyPrefix(line, s.Begin)
}

// MatchEnd reports whether line starts with any end marker.
func (s *Set) MatchEnd(line string) bool {
	return hasAnyPrefix(line, s.End)
}

func hasAnyPrefix(line string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// Stats returns the number of begin and end markers.
func (s *Set) Stats() (begin, end int) {
	return len(s.Begin), len(s.End)
}
