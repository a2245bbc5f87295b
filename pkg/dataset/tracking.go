package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	errs "github.com/wiresketch/wiresketch/pkg/errors"
	"github.com/wiresketch/wiresketch/pkg/grid"
	"github.com/wiresketch/wiresketch/pkg/observability"
)

// Tracking writes images together with the grid encoding of their labels,
// the training input of the detection network.
type Tracking struct {
	Options      Options
	Subdivisions int // zero means grid.DefaultSubdivisions
}

// Generate writes n samples to out as <index>.<image ext> and
// <index><label ext>. A source whose labels collide in a grid cell is
// skipped and another source is drawn.
func (t *Tracking) Generate(ctx context.Context, in Input, out string, n int) (Report, error) {
	subs := t.Subdivisions
	if subs == 0 {
		subs = grid.DefaultSubdivisions
	}
	if err := errs.ValidateSubdivisions(subs); err != nil {
		return Report{}, err
	}
	r, err := newRun("tracking", in, n, t.Options)
	if err != nil {
		return Report{}, err
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return Report{}, err
	}
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
		w, h := m.Size()
		g, err := grid.Encode(m.Boxes(), float64(w), float64(h), subs)
		if errs.Is(err, errs.ErrCodeEncodingConflict) {
			r.report.Rejected++
			r.logger.Debug("discarded sample", "source", pair.Name, "err", err)
			hooks.OnSampleRejected(ctx, r.kind, string(errs.ErrCodeEncodingConflict))
			continue
		}
		if err != nil {
			return r.report, fmt.Errorf("encode %s: %w", pair.Name, err)
		}

		base := fmt.Sprintf("%d", r.report.Written)
		if err := imaging.Save(m.Image(), filepath.Join(out, base+filepath.Ext(pair.Name))); err != nil {
			return r.report, fmt.Errorf("save image for %s: %w", pair.Name, err)
		}
		if err := grid.WriteFile(filepath.Join(out, base+r.opts.LabelExt), g); err != nil {
			return r.report, err
		}
		r.wrote(ctx)
	}
	return r.done(), nil
}
