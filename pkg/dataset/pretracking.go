package dataset

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/wiresketch/wiresketch/pkg/box"
	"github.com/wiresketch/wiresketch/pkg/observability"
	"github.com/wiresketch/wiresketch/pkg/symbol"
)

// PreTracking isolates labelled symbols on black frames of the source size,
// the training input of the network that predicts which symbol types a
// drawing contains.
type PreTracking struct {
	Options Options
}

// Generate draws n source images. For every labelled symbol it writes a
// black image of the source size holding only the symbol's region to
// out/<type>/<sample>_<box>.<image ext>. Nothing and unknown boxes are
// skipped.
func (p *PreTracking) Generate(ctx context.Context, in Input, out string, n int) (Report, error) {
	r, err := newRun("pretracking", in, n, p.Options)
	if err != nil {
		return Report{}, err
	}

	for r.report.Written < n {
		pair, err := r.next(ctx, n)
		if err != nil {
			return r.report, err
		}
		m, err := r.load(pair)
		if err != nil {
			return r.report, err
		}

		src := m.Image()
		bounds := src.Bounds()
		for k, b := range m.Boxes().Boxes() {
			if !symbol.IsObject(b.Class) || symbol.IsUnknown(b.Class) {
				continue
			}
			rect, ok := region(b, bounds)
			if !ok {
				r.logger.Debug("skipped box outside the image", "source", pair.Name, "box", k)
				observability.Dataset().OnSampleRejected(ctx, r.kind, "box outside image")
				continue
			}

			frame := imaging.New(bounds.Dx(), bounds.Dy(), color.Black)
			frame = imaging.Paste(frame, imaging.Crop(src, rect), rect.Min.Sub(bounds.Min))

			dir := filepath.Join(out, strconv.Itoa(int(b.Class.Type())))
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return r.report, err
			}
			name := fmt.Sprintf("%d_%d%s", r.report.Written, k, filepath.Ext(pair.Name))
			if err := imaging.Save(frame, filepath.Join(dir, name)); err != nil {
				return r.report, fmt.Errorf("save region of %s: %w", pair.Name, err)
			}
		}
		r.wrote(ctx)
	}
	return r.done(), nil
}

// region is the pixel rectangle covered by b, clipped to bounds.
func region(b box.Box, bounds image.Rectangle) (image.Rectangle, bool) {
	tl := b.TopLeft()
	rect := image.Rect(int(tl.X), int(tl.Y), int(tl.X+tl.W), int(tl.Y+tl.H)).Intersect(bounds)
	return rect, !rect.Empty()
}
