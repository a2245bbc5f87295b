// Package dataset builds training sets from labelled circuit drawings.
//
// Every generator reads image/label pairs found by [FindPairs], draws
// source images at random with a seeded generator, and writes a fixed
// number of samples:
//
//   - [Augmenter] writes randomly rotated, zoomed and flipped copies with
//     their updated labels.
//   - [PreTracking] writes each labelled symbol alone on a black frame of
//     the source size, sorted into <type>/ directories.
//   - [Tracking] writes images with the grid encoding of their labels.
//     Images whose labels collide in a grid cell are skipped.
//   - [Identification] writes one resized crop per labelled symbol, sorted
//     into <type>/<index-within-type>/ directories.
//
// Sources are loaded as grayscale unless Options.Color is set. Generators
// stop when their context is canceled. A run gives up once it has
// made MaxAttempts draws without producing the requested number of samples.
package dataset

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/wiresketch/wiresketch/pkg/augment"
	errs "github.com/wiresketch/wiresketch/pkg/errors"
	"github.com/wiresketch/wiresketch/pkg/observability"
)

const (
	DefaultSeed        = uint64(42)
	DefaultImageSize   = 416 // side of augmented output images
	DefaultCropSize    = 50  // side of identification crops
	DefaultLabelExt    = ".txt"
	DefaultAttemptsPer = 10 // draws allowed per requested sample
)

// DefaultImageExts lists the image extensions picked up by FindPairs.
var DefaultImageExts = []string{".png", ".jpg"}

// Options holds the settings shared by all generators.
type Options struct {
	ImageExts   []string
	LabelExt    string
	Seed        uint64
	MaxAttempts int // total draws allowed; zero means DefaultAttemptsPer per sample
	Color       bool
	Logger      *log.Logger

	// Progress, when set, is called after every written sample with the
	// number written so far and the number requested.
	Progress func(written, total int)
}

// WithDefaults returns a copy of Options with zero values replaced by
// defaults. n is the number of samples the run will produce.
func (o Options) WithDefaults(n int) Options {
	opts := o
	if len(opts.ImageExts) == 0 {
		opts.ImageExts = DefaultImageExts
	}
	if opts.LabelExt == "" {
		opts.LabelExt = DefaultLabelExt
	}
	if opts.Seed == 0 {
		opts.Seed = DefaultSeed
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = max(n, 1) * DefaultAttemptsPer
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return opts
}

// Report summarizes a generator run.
type Report struct {
	RunID    string
	Written  int // samples written
	Rejected int // draws discarded
	Attempts int // total draws
}

// run carries the state of one generator invocation.
type run struct {
	kind   string
	total  int
	opts   Options
	pairs  []Pair
	rng    *rand.Rand
	logger *log.Logger
	report Report
}

func newRun(kind string, in Input, n int, opts Options) (*run, error) {
	if n < 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "sample count must not be negative, got %d", n)
	}
	opts = opts.WithDefaults(n)
	pairs, err := FindPairs(in.ImagesDir, in.LabelsDir, opts.ImageExts, opts.LabelExt)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 && n > 0 {
		return nil, errs.New(errs.ErrCodeNotFound, "no images with extensions %v in %s", opts.ImageExts, in.ImagesDir)
	}

	id := uuid.NewString()
	return &run{
		kind:   kind,
		total:  n,
		opts:   opts,
		pairs:  pairs,
		rng:    rand.New(rand.NewPCG(opts.Seed, opts.Seed)),
		logger: opts.Logger.With("run", id[:8], "kind", kind),
		report: Report{RunID: id},
	}, nil
}

// next draws a random pair. It fails when ctx is done or the attempt budget
// is spent.
func (r *run) next(ctx context.Context, n int) (Pair, error) {
	if err := ctx.Err(); err != nil {
		return Pair{}, err
	}
	if r.report.Attempts >= r.opts.MaxAttempts {
		return Pair{}, errs.New(errs.ErrCodeInternal,
			"%s: gave up after %d attempts with %d of %d samples written",
			r.kind, r.report.Attempts, r.report.Written, n)
	}
	r.report.Attempts++
	return r.pairs[r.rng.IntN(len(r.pairs))], nil
}

// load reads a drawn pair, converting it to grayscale unless the run keeps
// colour.
func (r *run) load(p Pair) (*augment.Image, error) {
	return augment.Load(p.Image, p.Labels, !r.opts.Color)
}

// wrote records a finished sample.
func (r *run) wrote(ctx context.Context) {
	observability.Dataset().OnSampleWritten(ctx, r.kind, r.report.Written)
	r.report.Written++
	if r.opts.Progress != nil {
		r.opts.Progress(r.report.Written, r.total)
	}
}

func (r *run) uniform(bounds [2]float64) float64 {
	return bounds[0] + r.rng.Float64()*(bounds[1]-bounds[0])
}

// outputName inserts suffix before the extension of name: "a.png" with
// suffix "_3" gives "a_3.png".
func outputName(name, suffix string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + suffix + ext
}

func (r *run) done() Report {
	r.logger.Info("dataset run finished",
		"written", r.report.Written,
		"rejected", r.report.Rejected,
		"attempts", r.report.Attempts)
	return r.report
}

func (r Report) String() string {
	return fmt.Sprintf("%d written, %d rejected, %d attempts", r.Written, r.Rejected, r.Attempts)
}
