package strip

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/gutenclean/pkg/gutenclean/markers"
)

func testSet() *markers.Set {
	return &markers.Set{
		Begin: []string{"*** START OF THIS PROJECT GUTENBERG", "Produced by"},
		End:   []string{"*** END OF THE PROJECT GUTENBERG", "End of Project Gutenberg"},
	}
}

func TestStripScenario(t *testing.T) {
	lines := []string{
		"noise",
		"*** START OF THIS PROJECT GUTENBERG ***",
		"Hello world.",
		"*** END OF THE PROJECT GUTENBERG ***",
		"trailer",
	}

	res := New(testSet()).Strip(lines)

	assert.Equal(t, "Hello world.", res.Text)
	assert.Equal(t, 2, res.Start)
	assert.Equal(t, 3, res.End)
	assert.Equal(t, 1, res.BeginLine)
	assert.Equal(t, 3, res.EndLine)
	assert.Equal(t, 1, res.Lines())
	assert.False(t, res.Overlap)
}

func TestStripNoMarkersReturnsDocument(t *testing.T) {
	docs := [][]string{
		{"Call me Ishmael.", "Some years ago", "never mind how long precisely"},
		{"single line"},
		{"", "", "blank around"},
		{},
	}
	s := New(testSet())
	for _, lines := range docs {
		res := s.Strip(lines)
		assert.Equal(t, strings.Join(lines, "\n"), res.Text)
		assert.Equal(t, len(lines), res.Lines())
		assert.Equal(t, -1, res.BeginLine)
		assert.Equal(t, -1, res.EndLine)
	}
}

func TestStripLastBeginWins(t *testing.T) {
	lines := []string{
		"*** START OF THIS PROJECT GUTENBERG EBOOK ***",
		"",
		"Produced by Volunteers",
		"Chapter 1",
		"It was a dark night.",
	}

	res := New(testSet()).Strip(lines)

	require.Equal(t, 3, res.Start)
	assert.Equal(t, "Chapter 1\nIt was a dark night.", res.Text)
	assert.Equal(t, 2, res.BeginLine)
}

func TestStripFirstEndStopsScan(t *testing.T) {
	lines := []string{
		"body one",
		"End of Project Gutenberg's Book",
		"Produced by someone",
		"body after footer",
		"*** END OF THE PROJECT GUTENBERG",
	}

	res := New(testSet()).Strip(lines)

	assert.Equal(t, "body one", res.Text)
	assert.Equal(t, 1, res.EndLine)
	assert.Equal(t, -1, res.BeginLine, "begin markers after the end are never seen")
}

func TestStripNothingAtOrAfterEndLine(t *testing.T) {
	lines := []string{"a", "b", "*** END OF THE PROJECT GUTENBERG", "c", "d"}

	res := New(testSet()).Strip(lines)

	for _, kept := range strings.Split(res.Text, "\n") {
		assert.NotContains(t, []string{"c", "d", lines[2]}, kept)
	}
	assert.LessOrEqual(t, res.End, res.EndLine)
}

func TestStripOnlyEndMarker(t *testing.T) {
	res := New(testSet()).Strip([]string{"*** END OF THE PROJECT GUTENBERG EBOOK"})

	assert.Equal(t, "", res.Text)
	assert.Equal(t, 0, res.Lines())
}

func TestStripOnlyBoilerplate(t *testing.T) {
	lines := []string{
		"Produced by nobody",
		"*** START OF THIS PROJECT GUTENBERG",
		"*** END OF THE PROJECT GUTENBERG",
		"license text",
	}

	res := New(testSet()).Strip(lines)

	assert.Equal(t, "", res.Text)
	assert.Equal(t, 2, res.Start)
	assert.Equal(t, 2, res.End)
}

func TestStripLineMatchingBothKinds(t *testing.T) {
	set := &markers.Set{
		Begin: []string{"The Project Gutenberg"},
		End:   []string{"The Project Gutenberg Etext of "},
	}
	lines := []string{"front", "The Project Gutenberg Etext of Hamlet", "body"}

	res := New(set).Strip(lines)

	assert.True(t, res.Overlap)
	assert.Equal(t, "", res.Text)
	assert.Equal(t, res.Start, res.End)
}

func TestStripLineCountNeverGrows(t *testing.T) {
	lines := []string{"x", "Produced by a", "y", "Produced by b", "z", "w"}

	res := New(testSet()).Strip(lines)

	assert.LessOrEqual(t, res.Lines(), len(lines))
	assert.Equal(t, "z\nw", res.Text)
}

func TestStripWithDefaultMarkers(t *testing.T) {
	lines := []string{
		"The Project Gutenberg EBook of Walden, by Henry David Thoreau",
		"",
		"*** START OF THIS PROJECT GUTENBERG EBOOK WALDEN ***",
		"",
		"Produced by Judith Boss",
		"",
		"WALDEN",
		"",
		"Economy",
		"*** END OF THIS PROJECT GUTENBERG EBOOK WALDEN ***",
		"Updated editions will replace the previous one",
	}

	res := New(markers.Default()).Strip(lines)

	assert.Equal(t, "\nWALDEN\n\nEconomy", res.Text)
}
