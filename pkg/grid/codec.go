package grid

import (
	"math"

	"github.com/wiresketch/wiresketch/pkg/box"
	errs "github.com/wiresketch/wiresketch/pkg/errors"
	"github.com/wiresketch/wiresketch/pkg/symbol"
)

// CellOf returns the cell containing point p for a square image of side
// imageSize split into subdivisions cells per side.
func CellOf(p box.Point, imageSize float64, subdivisions int) (x, y int) {
	step := imageSize / float64(subdivisions)
	return int(math.Floor(p.X / step)), int(math.Floor(p.Y / step))
}

// Encode places every object box of s into a new grid.
//
// Unknown and nothing boxes are skipped. The image must be square. A box
// whose center falls outside the image is a GEOMETRY error. Two boxes in the
// same cell abort the whole encode with an ENCODING_CONFLICT error carrying
// the cell; no partial grid is returned.
func Encode(s *box.Set, imgW, imgH float64, subdivisions int) (*Grid, error) {
	if err := errs.ValidateSquare(imgW, imgH); err != nil {
		return nil, err
	}
	g, err := New(subdivisions)
	if err != nil {
		return nil, err
	}

	step := imgW / float64(subdivisions)
	for i, b := range s.Boxes() {
		if symbol.IsUnknown(b.Class) || !symbol.IsObject(b.Class) {
			continue
		}
		typ := b.Class.Type()
		if !typ.Learned() {
			return nil, errs.New(errs.ErrCodeInvalidInput, "box %d: class %d has no learned type", i, int(b.Class))
		}

		cx, cy := CellOf(b.Center(), imgW, subdivisions)
		if !g.InBounds(cx, cy) {
			return nil, errs.New(errs.ErrCodeGeometry,
				"box %d: center (%v,%v) outside the %vx%v image", i, b.X, b.Y, imgW, imgH)
		}
		if g.Cell(cx, cy).Confidence != 0 {
			return nil, errs.Conflict(cx, cy)
		}

		c := Cell{
			Confidence: 1,
			DX:         (b.X - float64(cx)*step) / step,
			DY:         (b.Y - float64(cy)*step) / step,
			W:          b.W / (imgW / 2),
			H:          b.H / (imgH / 2),
		}
		c.Types[typ] = 1
		g.SetCell(cx, cy, c)
	}
	return g, nil
}

// Decode emits one box per cell whose confidence reaches the threshold, in
// row-major cell order. Each box carries the canonical class of the cell's
// most likely type.
func Decode(g *Grid, imgW, imgH float64, confidence float64) (*box.Set, error) {
	if err := errs.ValidateSquare(imgW, imgH); err != nil {
		return nil, err
	}
	if err := errs.ValidateThreshold("confidence", confidence); err != nil {
		return nil, err
	}

	step := imgW / float64(g.size)
	s := box.NewSet()
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			c := g.Cell(x, y)
			if c.Confidence < confidence {
				continue
			}
			s.Add(box.Box{
				Class: symbol.Canonical(c.Type()),
				X:     c.DX*step + float64(x)*step,
				Y:     c.DY*step + float64(y)*step,
				W:     c.W * (imgW / 2),
				H:     c.H * (imgH / 2),
			})
		}
	}
	return s, nil
}
