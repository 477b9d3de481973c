package stoplist

import (
	"bufio"
	"bytes"
	_ "embed"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed english.txt
var englishList []byte

// Punctuation is the ASCII punctuation set. Each character is also a stopword.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Manager holds the set of words excluded from the cleaned output.
type Manager struct {
	stops map[string]struct{}
}

// NewManager creates a stoplist from an initial word list
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]struct{}, len(initialStops))
	for _, s := range initialStops {
		stops[strings.ToLower(s)] = struct{}{}
	}
	return &Manager{stops: stops}
}

// English returns the standard English stopword list together with every
// punctuation character.
func English() *Manager {
	m := NewManager(StandardEnglish())
	for _, r := range Punctuation {
		m.Add(string(r))
	}
	return m
}

// StandardEnglish returns the embedded English stopword list in file order.
func StandardEnglish() []string {
	var words []string
	sc := bufio.NewScanner(bytes.NewReader(englishList))
	for sc.Scan() {
		if w := strings.TrimSpace(sc.Text()); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[token]
	return ok
}

// Add adds a token to the stoplist
func (m *Manager) Add(token string) {
	m.stops[strings.ToLower(token)] = struct{}{}
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, strings.ToLower(token))
}

// Len returns the number of stopwords.
func (m *Manager) Len() int {
	return len(m.stops)
}

// All returns all stopwords, sorted.
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// File is the on-disk stoplist format.
type File struct {
	Terms []string `yaml:"terms"`
}

// LoadFromYAML reads extra stopwords from a YAML file with a "terms" list.
func LoadFromYAML(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Terms, nil
}
