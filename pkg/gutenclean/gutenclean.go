package gutenclean

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/gutenclean/pkg/gutenclean/ingest"
	"github.com/cognicore/gutenclean/pkg/gutenclean/logger"
	"github.com/cognicore/gutenclean/pkg/gutenclean/markers"
	"github.com/cognicore/gutenclean/pkg/gutenclean/strip"
	"github.com/cognicore/gutenclean/pkg/gutenclean/textio"
)

// Cleaner runs the read → strip → normalize → write pipeline, one file per
// call. Its language profile and marker set are shared across runs, and
// Run may be called from several goroutines.
type Cleaner struct {
	stripper      *strip.Stripper
	normalizer    *ingest.Normalizer
	writer        *textio.Writer
	inputEncoding string
	log           logger.Logger

	mu      sync.Mutex // guards entropy
	entropy *ulid.MonotonicEntropy
}

// Options configures a Cleaner. Nil fields fall back to the built-in English
// profile, default markers, UTF-8 and a discarding logger.
type Options struct {
	Markers        *markers.Set
	Profile        *ingest.Profile
	Logger         logger.Logger
	InputEncoding  string
	OutputEncoding string
}

// New creates a Cleaner with the given dependencies
func New(opts Options) (*Cleaner, error) {
	if opts.Markers == nil {
		opts.Markers = markers.Default()
	}
	if opts.Profile == nil {
		opts.Profile = ingest.EnglishProfile()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	writer, err := textio.NewWriter(opts.OutputEncoding, opts.Logger)
	if err != nil {
		return nil, err
	}

	return &Cleaner{
		stripper:      strip.New(opts.Markers),
		normalizer:    ingest.NewNormalizer(opts.Profile),
		writer:        writer,
		inputEncoding: opts.InputEncoding,
		log:           opts.Logger,
		entropy:       ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// Report describes one completed run.
type Report struct {
	RunID          string
	Input          string
	Output         string
	InputEncoding  string
	OutputEncoding string

	Lines   int // lines in the source document
	Trimmed strip.Result
	Stats   ingest.Stats

	Written  int
	Skipped  []textio.SkippedToken
	Duration time.Duration
}

// Clean strips boilerplate from lines and normalizes what remains.
// It never fails; an empty window yields an empty token sequence.
func (c *Cleaner) Clean(lines []string) ([]string, strip.Result, ingest.Stats) {
	trimmed := c.stripper.Strip(lines)
	tokens, stats := c.normalizer.NormalizeWithStats(trimmed.Text)
	return tokens, trimmed, stats
}

func (c *Cleaner) newRunID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ulid.MustNew(ulid.Now(), c.entropy).String()
}

// Run cleans the file at in and writes the token line to out.
// Source errors abort before out is touched. Destination errors abort after
// cleaning. Tokens that cannot be encoded are skipped and listed in the
// report; the run still succeeds.
func (c *Cleaner) Run(ctx context.Context, in, out string) (Report, error) {
	start := time.Now()
	report := Report{
		RunID:          c.newRunID(),
		Input:          in,
		Output:         out,
		OutputEncoding: c.writer.Encoding(),
	}
	log := c.log.With("run", report.RunID)

	log.Info("reading", "path", in)
	doc, err := textio.ReadLines(in, c.inputEncoding)
	if err != nil {
		log.Error("read failed", "path", in, "err", err)
		return report, err
	}
	report.InputEncoding = doc.Encoding
	report.Lines = doc.LineCount()

	if err := ctx.Err(); err != nil {
		return report, err
	}

	log.Info("cleaning", "lines", report.Lines, "encoding", doc.Encoding)
	tokens, trimmed, stats := c.Clean(doc.Lines)
	report.Trimmed = trimmed
	report.Stats = stats

	if trimmed.Overlap {
		log.Warn("end marker line also matches a begin marker", "line", trimmed.EndLine+1)
	}
	log.Debug("trimmed",
		"start", trimmed.Start, "end", trimmed.End,
		"begin_line", trimmed.BeginLine, "end_line", trimmed.EndLine)
	log.Debug("normalized",
		"tokens", stats.Tokens, "alphabetic", stats.Alphabetic, "content", stats.Content)

	if err := ctx.Err(); err != nil {
		return report, err
	}

	log.Info("writing", "path", out, "tokens", len(tokens))
	ws, err := c.writer.WriteTokens(out, tokens)
	report.Written = ws.Written
	report.Skipped = ws.Skipped
	report.Duration = time.Since(start)
	if err != nil {
		log.Error("write failed", "path", out, "err", err)
		return report, err
	}

	log.Info("done", "written", ws.Written, "skipped", len(ws.Skipped), "took", report.Duration)
	return report, nil
}
