package strip

import (
	"strings"

	"github.com/cognicore/gutenclean/pkg/gutenclean/markers"
)

// Result is the window of lines kept after boundary stripping.
type Result struct {
	Text  string // kept lines joined with "\n"
	Start int    // index of the first kept line
	End   int    // index one past the last kept line

	// BeginLine is the index of the last begin-marker line, or -1.
	BeginLine int
	// EndLine is the index of the end-marker line that stopped the scan, or -1.
	EndLine int
	// Overlap is set when the stopping line also matched a begin marker.
	Overlap bool
}

// Lines returns the number of kept lines.
func (r Result) Lines() int {
	return r.End - r.Start
}

// Stripper trims distributor boilerplate from the head and tail of a document.
type Stripper struct {
	markers *markers.Set
}

// New creates a Stripper over a marker set.
func New(set *markers.Set) *Stripper {
	return &Stripper{markers: set}
}

// Strip scans lines once, front to back.
//
// Every begin-marker line moves the start of the window past itself and the
// scan keeps going, so the last header line before the body wins. The first
// end-marker line closes the window and stops the scan. Lines are checked for
// begin before end.
func (s *Stripper) Strip(lines []string) Result {
	res := Result{Start: 0, End: len(lines), BeginLine: -1, EndLine: -1}

	for i, line := range lines {
		begin := s.markers.MatchBegin(line)
		if begin {
			res.Start = i + 1
			res.BeginLine = i
		}
		if s.markers.MatchEnd(line) {
			res.End = i
			res.EndLine = i
			res.Overlap = begin
			break
		}
	}

	// A line matching both kinds leaves start one past end.
	if res.Start > res.End {
		res.Start = res.End
	}

	res.Text = strings.Join(lines[res.Start:res.End], "\n")
	return res
}
