package textio

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"github.com/cognicore/gutenclean/pkg/gutenclean/ingest"
	"github.com/cognicore/gutenclean/pkg/gutenclean/internalerr"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadLines loads a text file into a Document.
//
// UTF-8 input must be valid; other encodings are transcoded to UTF-8. The
// label "auto" sniffs the encoding from the content. A leading byte order mark
// is dropped, "\r\n" endings are accepted and a final newline does not add an
// empty line. Every failure wraps internalerr.ErrSourceRead.
func ReadLines(path, label string) (*ingest.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrSourceRead, err)
	}

	text, name, err := decode(data, label)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrSourceRead, path, err)
	}

	return &ingest.Document{
		Path:     path,
		Encoding: name,
		Lines:    SplitLines(text),
	}, nil
}

func decode(data []byte, label string) (string, string, error) {
	if strings.EqualFold(strings.TrimSpace(label), Auto) {
		_, name, _ := charset.DetermineEncoding(data, "text/plain")
		label = name
	}

	enc, name, err := Resolve(label)
	if err != nil {
		return "", "", err
	}

	if name == UTF8 {
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", "", fmt.Errorf("invalid %s byte sequence", name)
		}
		return string(data), name, nil
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", fmt.Errorf("decode %s: %w", name, err)
	}
	return strings.TrimPrefix(string(out), "\ufeff"), name, nil
}

// SplitLines splits text on "\n", trimming a trailing "\r" from each line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
