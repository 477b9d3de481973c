package textio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/gutenclean/pkg/gutenclean/internalerr"
	"github.com/cognicore/gutenclean/pkg/gutenclean/logger"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{""}, SplitLines("\n"))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "", "b"}, SplitLines("a\r\n\r\nb"))
}

func TestReadLinesUTF8(t *testing.T) {
	path := writeFile(t, "book.txt", []byte("\xEF\xBB\xBF*** START OF THIS PROJECT GUTENBERG\r\nCafé society\r\n"))

	doc, err := ReadLines(path, "utf-8")
	require.NoError(t, err)

	assert.Equal(t, path, doc.Path)
	assert.Equal(t, "utf-8", doc.Encoding)
	assert.Equal(t, []string{"*** START OF THIS PROJECT GUTENBERG", "Café society"}, doc.Lines)
}

func TestReadLinesDefaultsToUTF8(t *testing.T) {
	path := writeFile(t, "book.txt", []byte("one\ntwo"))

	doc, err := ReadLines(path, "")
	require.NoError(t, err)
	assert.Equal(t, 2, doc.LineCount())
}

func TestReadLinesMissingFile(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "nope.txt"), "utf-8")
	assert.ErrorIs(t, err, internalerr.ErrSourceRead)
}

func TestReadLinesInvalidUTF8(t *testing.T) {
	path := writeFile(t, "latin.txt", []byte("caf\xe9\n"))

	_, err := ReadLines(path, "utf-8")
	assert.ErrorIs(t, err, internalerr.ErrSourceRead)
}

func TestReadLinesUnknownEncoding(t *testing.T) {
	path := writeFile(t, "book.txt", []byte("x\n"))

	_, err := ReadLines(path, "klingon-8")
	assert.ErrorIs(t, err, internalerr.ErrSourceRead)
}

func TestReadLinesLatin1(t *testing.T) {
	path := writeFile(t, "latin.txt", []byte("caf\xe9\nna\xefve\n"))

	doc, err := ReadLines(path, "latin1")
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", doc.Encoding)
	assert.Equal(t, []string{"café", "naïve"}, doc.Lines)
}

func TestReadLinesAuto(t *testing.T) {
	utf := writeFile(t, "utf.txt", []byte("Café\n"))
	doc, err := ReadLines(utf, Auto)
	require.NoError(t, err)
	assert.Equal(t, "utf-8", doc.Encoding)
	assert.Equal(t, []string{"Café"}, doc.Lines)

	latin := writeFile(t, "latin.txt", []byte("Caf\xe9\n"))
	doc, err = ReadLines(latin, "AUTO")
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", doc.Encoding)
	assert.Equal(t, []string{"Café"}, doc.Lines)
}

func TestResolveAndValidLabel(t *testing.T) {
	_, name, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, UTF8, name)

	_, _, err = Resolve("bogus")
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)

	assert.True(t, ValidLabel("auto", true))
	assert.False(t, ValidLabel("auto", false))
	assert.True(t, ValidLabel("ISO-8859-2", false))
	assert.False(t, ValidLabel("bogus", true))
}

func TestWriteTokens(t *testing.T) {
	w, err := NewWriter("", nil)
	require.NoError(t, err)
	assert.Equal(t, "utf-8", w.Encoding())

	path := filepath.Join(t.TempDir(), "out.txt")
	stats, err := w.WriteTokens(path, []string{"hello", "world", "café"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world café\n", string(data))
	assert.Equal(t, 3, stats.Written)
	assert.Empty(t, stats.Skipped)
	assert.Equal(t, len(data), stats.Bytes)
}

func TestWriteTokensEmpty(t *testing.T) {
	w, err := NewWriter(UTF8, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.txt")
	stats, err := w.WriteTokens(path, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\n", string(data))
	assert.Zero(t, stats.Written)
}

func TestWriteTokensSkipsUnencodable(t *testing.T) {
	var logs bytes.Buffer
	w, err := NewWriter("windows-1252", logger.New(&logger.Config{Level: logger.WarnLevel, Output: &logs}))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.txt")
	stats, err := w.WriteTokens(path, []string{"λόγος", "café", "word", "\xff", "end"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "caf\xe9 word end\n", string(data))
	assert.NotContains(t, string(data), "&#", "unencodable runes are skipped, not escaped")

	assert.Equal(t, 3, stats.Written)
	require.Len(t, stats.Skipped, 2)
	assert.Equal(t, 0, stats.Skipped[0].Index)
	assert.Equal(t, 3, stats.Skipped[1].Index)
	for _, s := range stats.Skipped {
		assert.ErrorIs(t, s.Err, internalerr.ErrTokenEncoding)
	}
	assert.Contains(t, logs.String(), "skipping token")
}

func TestWriteTokensLatin2(t *testing.T) {
	w, err := NewWriter("ISO-8859-2", nil)
	require.NoError(t, err)
	assert.Equal(t, "iso-8859-2", w.Encoding())

	path := filepath.Join(t.TempDir(), "out.txt")
	stats, err := w.WriteTokens(path, []string{"żółw", "λόγος", "café", "日本", "straße"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\xbf\xf3\xb3w caf\xe9 stra\xdfe\n", string(data))
	assert.Equal(t, 3, stats.Written)
	require.Len(t, stats.Skipped, 2)
	assert.Equal(t, "λόγος", stats.Skipped[0].Token)
	assert.Equal(t, 3, stats.Skipped[1].Index)
	assert.ErrorIs(t, stats.Skipped[1].Err, internalerr.ErrTokenEncoding)
}

func TestResolveOutputUsesRawEncoders(t *testing.T) {
	enc, name, err := ResolveOutput("windows-1252")
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", name)

	_, err = enc.NewEncoder().Bytes([]byte("λ"))
	assert.Error(t, err)

	_, name, err = ResolveOutput("")
	require.NoError(t, err)
	assert.Equal(t, UTF8, name)

	_, _, err = ResolveOutput("klingon-8")
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestWriteTokensUnwritableDestination(t *testing.T) {
	w, err := NewWriter(UTF8, nil)
	require.NoError(t, err)

	_, err = w.WriteTokens(filepath.Join(t.TempDir(), "missing", "dir", "out.txt"), []string{"a"})
	assert.ErrorIs(t, err, internalerr.ErrDestinationWrite)
}

func TestNewWriterUnknownEncoding(t *testing.T) {
	_, err := NewWriter("bogus", nil)
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}
