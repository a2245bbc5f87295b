package pipeline

import (
	"github.com/wiresketch/wiresketch/pkg/box"
	"github.com/wiresketch/wiresketch/pkg/grid"
)

// Decode turns a detector grid into a box set. The grid size is taken from
// g; opts supplies the image size and the confidence threshold.
func Decode(g *grid.Grid, opts Options) (*box.Set, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	s, err := grid.Decode(g, opts.ImageWidth, opts.ImageHeight, opts.Confidence)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("decoded grid", "size", g.Size(), "boxes", s.Len())
	return s, nil
}

// Encode turns a labelled box set into a training grid.
func Encode(s *box.Set, opts Options) (*grid.Grid, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	g, err := grid.Encode(s, opts.ImageWidth, opts.ImageHeight, opts.Subdivisions)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("encoded boxes", "boxes", s.Len(), "occupied", g.Occupied())
	return g, nil
}
