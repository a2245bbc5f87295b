package dataset

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/wiresketch/wiresketch/pkg/box"
	"github.com/wiresketch/wiresketch/pkg/observability"
	"github.com/wiresketch/wiresketch/pkg/symbol"
)

// Identification writes one crop per labelled symbol, the training input
// of the classification networks.
type Identification struct {
	Options Options

	// CropSize is the side of the written crops; zero means DefaultCropSize.
	CropSize int

	// Translation and Deformation jitter each crop. The top-left corner
	// moves by a fraction of its own coordinates and the size by a fraction
	// of itself, both drawn uniformly from the range.
	Translation [2]float64
	Deformation [2]float64
}

// NewIdentification returns a generator with 50 pixel crops and ±1% jitter.
func NewIdentification(opts Options) *Identification {
	return &Identification{
		Options:     opts,
		CropSize:    DefaultCropSize,
		Translation: [2]float64{-0.01, 0.01},
		Deformation: [2]float64{-0.01, 0.01},
	}
}

// Generate draws n source images and writes a crop of every object box to
// out/<type>/<index-within-type>/<sample>_<box>.<image ext>, where type is
// the numeric symbol type. Nothing and unknown boxes are skipped.
func (id *Identification) Generate(ctx context.Context, in Input, out string, n int) (Report, error) {
	size := id.CropSize
	if size == 0 {
		size = DefaultCropSize
	}
	r, err := newRun("identification", in, n, id.Options)
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

		for k, b := range m.Boxes().Boxes() {
			if !symbol.IsObject(b.Class) || symbol.IsUnknown(b.Class) {
				continue
			}
			rect, ok := id.jitter(r, b, m.Image().Bounds())
			if !ok {
				r.logger.Debug("skipped empty crop", "source", pair.Name, "box", k)
				observability.Dataset().OnSampleRejected(ctx, r.kind, "empty crop")
				continue
			}
			crop := imaging.Resize(imaging.Crop(m.Image(), rect), size, size, imaging.Linear)

			dir := filepath.Join(out,
				strconv.Itoa(int(b.Class.Type())),
				strconv.Itoa(symbol.IndexWithinType(b.Class)))
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return r.report, err
			}
			name := fmt.Sprintf("%d_%d%s", r.report.Written, k, filepath.Ext(pair.Name))
			if err := imaging.Save(crop, filepath.Join(dir, name)); err != nil {
				return r.report, fmt.Errorf("save crop of %s: %w", pair.Name, err)
			}
		}
		r.wrote(ctx)
	}
	return r.done(), nil
}

// jitter returns the crop rectangle for b, moved and resized at random and
// clamped to bounds. It reports false when nothing is left to crop.
func (id *Identification) jitter(r *run, b box.Box, bounds image.Rectangle) (image.Rectangle, bool) {
	tl := b.TopLeft()
	x := int(tl.X + tl.X*r.uniform(id.Translation))
	y := int(tl.Y + tl.Y*r.uniform(id.Translation))
	w := int(tl.W + tl.W*r.uniform(id.Deformation))
	h := int(tl.H + tl.H*r.uniform(id.Deformation))

	x = min(max(x, bounds.Min.X), bounds.Max.X)
	y = min(max(y, bounds.Min.Y), bounds.Max.Y)
	w = min(w, bounds.Max.X-x)
	h = min(h, bounds.Max.Y-y)
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}
