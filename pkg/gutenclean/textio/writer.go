package textio

import (
	"bufio"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"

	"github.com/cognicore/gutenclean/pkg/gutenclean/internalerr"
	"github.com/cognicore/gutenclean/pkg/gutenclean/logger"
)

// WriteStats summarizes one output file.
type WriteStats struct {
	Written int
	Skipped []SkippedToken
	Bytes   int
}

// SkippedToken is a token that could not be encoded for the output file.
type SkippedToken struct {
	Index int
	Token string
	Err   error
}

// Writer serializes cleaned tokens as one space-separated line.
type Writer struct {
	enc  encoding.Encoding
	name string
	log  logger.Logger
}

// NewWriter creates a writer for the given output encoding label.
func NewWriter(label string, log logger.Logger) (*Writer, error) {
	enc, name, err := ResolveOutput(label)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Writer{enc: enc, name: name, log: log}, nil
}

// Encoding returns the canonical output encoding name.
func (w *Writer) Encoding() string {
	return w.name
}

// WriteTokens writes tokens joined by single spaces and terminated by a
// newline. A token that cannot be encoded is skipped with a warning and the
// write continues. Create, write and close failures wrap
// internalerr.ErrDestinationWrite; a partial file may be left behind.
func (w *Writer) WriteTokens(path string, tokens []string) (WriteStats, error) {
	var stats WriteStats

	f, err := os.Create(path)
	if err != nil {
		return stats, fmt.Errorf("%w: %v", internalerr.ErrDestinationWrite, err)
	}

	bw := bufio.NewWriter(f)
	for i, tok := range tokens {
		encoded, err := w.encode(tok)
		if err != nil {
			skipped := SkippedToken{Index: i, Token: tok, Err: err}
			stats.Skipped = append(stats.Skipped, skipped)
			w.log.Warn("skipping token", "index", i, "token", tok, "encoding", w.name, "err", err)
			continue
		}
		if stats.Written > 0 {
			encoded = append([]byte{' '}, encoded...)
		}
		n, err := bw.Write(encoded)
		stats.Bytes += n
		if err != nil {
			f.Close()
			return stats, fmt.Errorf("%w: %v", internalerr.ErrDestinationWrite, err)
		}
		stats.Written++
	}

	if err := bw.WriteByte('\n'); err != nil {
		f.Close()
		return stats, fmt.Errorf("%w: %v", internalerr.ErrDestinationWrite, err)
	}
	stats.Bytes++

	if err := bw.Flush(); err != nil {
		f.Close()
		return stats, fmt.Errorf("%w: %v", internalerr.ErrDestinationWrite, err)
	}
	if err := f.Close(); err != nil {
		return stats, fmt.Errorf("%w: %v", internalerr.ErrDestinationWrite, err)
	}
	return stats, nil
}

func (w *Writer) encode(tok string) ([]byte, error) {
	if !utf8.ValidString(tok) {
		return nil, fmt.Errorf("%w: invalid UTF-8", internalerr.ErrTokenEncoding)
	}
	if w.name == UTF8 {
		return []byte(tok), nil
	}
	out, err := w.enc.NewEncoder().Bytes([]byte(tok))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrTokenEncoding, err)
	}
	return out, nil
}
