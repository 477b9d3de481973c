package textio

import (
	"fmt"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/cognicore/gutenclean/pkg/gutenclean/internalerr"
)

const (
	// UTF8 is the default label for both input and output.
	UTF8 = "utf-8"
	// Auto asks the reader to sniff the input encoding.
	Auto = "auto"
)

// Resolve maps an input encoding label ("utf-8", "latin1", "windows-1252", ...)
// to a decoder and its canonical name, using the WHATWG label table.
// An empty label means UTF-8.
func Resolve(label string) (encoding.Encoding, string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = UTF8
	}
	enc, name := charset.Lookup(label)
	if enc == nil {
		return nil, "", fmt.Errorf("%w: unknown encoding %q", internalerr.ErrInvalidConfig, label)
	}
	return enc, name, nil
}

// ResolveOutput maps an output encoding label to an IANA encoding and its
// lowercase canonical name. The encoder returns an error for runes outside the
// character set instead of escaping them. An empty label means UTF-8.
func ResolveOutput(label string) (encoding.Encoding, string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = UTF8
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil, "", fmt.Errorf("%w: unknown output encoding %q", internalerr.ErrInvalidConfig, label)
	}
	name, err := ianaindex.IANA.Name(enc)
	if err != nil {
		name = label
	}
	return enc, strings.ToLower(name), nil
}

// ValidLabel reports whether label names a known encoding. Auto is valid
// for input only.
func ValidLabel(label string, input bool) bool {
	if input && strings.EqualFold(strings.TrimSpace(label), Auto) {
		return true
	}
	resolve := ResolveOutput
	if input {
		resolve = Resolve
	}
	_, _, err := resolve(label)
	return err == nil
}
