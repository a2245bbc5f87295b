package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wiresketch/wiresketch/pkg/augment"
	"github.com/wiresketch/wiresketch/pkg/observability"
)

// LossChecker reports whether an augmented sample lost information and
// must be discarded.
type LossChecker func(*augment.Image) bool

// Augmenter writes randomly transformed copies of labelled images.
type Augmenter struct {
	Policy  Policy
	Options Options

	// Size is the side of the written images; zero keeps the source size.
	Size      int
	Grayscale bool
	Invert    bool

	// Checker discards samples; nil keeps every sample.
	Checker LossChecker
}

// NewAugmenter returns an Augmenter with the default policy, 416 pixel
// grayscale output and the center-out-of-bounds loss check.
func NewAugmenter(opts Options) *Augmenter {
	return &Augmenter{
		Policy:    DefaultPolicy(),
		Options:   opts,
		Size:      DefaultImageSize,
		Grayscale: true,
		Checker:   (*augment.Image).CentersOutOfBounds,
	}
}

// Generate writes n samples. Images go to imagesOut and labels to
// labelsOut, named after their source with a _<index> suffix.
func (a *Augmenter) Generate(ctx context.Context, in Input, imagesOut, labelsOut string, n int) (Report, error) {
	if err := a.Policy.Validate(); err != nil {
		return Report{}, err
	}
	r, err := newRun("augment", in, n, a.Options)
	if err != nil {
		return Report{}, err
	}
	for _, dir := range []string{imagesOut, labelsOut} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Report{}, err
		}
	}
	save := augment.SaveOptions{Size: a.Size, Grayscale: a.Grayscale, Invert: a.Invert}
	hooks := observability.Dataset()

	for r.report.Written < n {
		pair, err := r.next(ctx, n)
		if err != nil {
			return r.report, err
		}

		m, err := r.load(pair)
		if err != nil {
			return r.report, err
		}
		if err := a.Policy.Apply(m, r.rng); err != nil {
			return r.report, fmt.Errorf("augment %s: %w", pair.Name, err)
		}
		if a.Checker != nil && a.Checker(m) {
			r.report.Rejected++
			r.logger.Debug("discarded sample", "source", pair.Name, "reason", "information loss")
			hooks.OnSampleRejected(ctx, r.kind, "information loss")
			continue
		}

		suffix := fmt.Sprintf("_%d", r.report.Written)
		imgPath := filepath.Join(imagesOut, outputName(pair.Name, suffix))
		lblPath := filepath.Join(labelsOut, outputName(filepath.Base(pair.Labels), suffix))
		if err := m.Save(imgPath, lblPath, save); err != nil {
			return r.report, err
		}
		r.wrote(ctx)
	}
	return r.done(), nil
}
