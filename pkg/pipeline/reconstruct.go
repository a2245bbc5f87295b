package pipeline

import (
	"github.com/wiresketch/wiresketch/pkg/box"
	"github.com/wiresketch/wiresketch/pkg/schematic"
)

// =============================================================================
// Reconstruction
// =============================================================================

// Prepare returns the box set the schematic is built from: a copy of s,
// with overlapping same-class boxes merged when opts.Merge is set. s is not
// modified. The second result is the number of unions added.
func Prepare(s *box.Set, opts Options) (*box.Set, int, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, 0, err
	}
	work := s.Clone()
	if !opts.Merge {
		return work, 0, nil
	}
	n := work.MergeOverlapping(opts.IOUThreshold, opts.scan)
	opts.Logger.Debug("merged overlapping boxes",
		"unions", n,
		"threshold", opts.IOUThreshold,
		"scan", opts.MergeScan)
	return work, n, nil
}

// Reconstruct places the boxes of s on the schematic grid and wires the
// corners. Merging is not applied here; see [Prepare].
func Reconstruct(s *box.Set, opts Options) (*schematic.Graph, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	g, err := schematic.FromBoxes(s, opts.ImageWidth, opts.ImageHeight, opts.Subdivisions)
	if err != nil {
		return nil, err
	}
	wires := g.BuildWiring()
	opts.Logger.Debug("wired schematic",
		"components", g.Len(),
		"corners", len(g.Corners()),
		"wires", len(wires))
	return g, nil
}
