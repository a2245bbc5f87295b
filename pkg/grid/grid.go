// Package grid converts box sets to and from the dense detection tensor.
//
// A [Grid] divides a square image into S x S cells. Each cell holds at most
// one detection as an 11-value vector:
//
//	[0]     confidence (1 when occupied)
//	[1:3]   center offset within the cell, as a fraction of the cell size
//	[3:5]   width and height relative to half the image size
//	[5:11]  one-hot vector over the six learned symbol types
//
// The tensor is the detector's training target and output. [Encode] refuses
// to place two detections in one cell: the whole sample is rejected with an
// ENCODING_CONFLICT error rather than silently losing a box. [Decode] recovers
// only the canonical class of each predicted type. The orientation within a
// type is assigned later by a separate identification step.
package grid

import (
	"gonum.org/v1/gonum/floats"

	errs "github.com/wiresketch/wiresketch/pkg/errors"
	"github.com/wiresketch/wiresketch/pkg/symbol"
)

const (
	// Channels is the number of values per cell.
	Channels = 5 + symbol.LearnedTypes

	// DefaultSubdivisions is the default grid side length.
	DefaultSubdivisions = 13

	// DefaultConfidence is the default decode threshold.
	DefaultConfidence = 0.5
)

// Channel offsets within a cell vector.
const (
	chConfidence = 0
	chDX         = 1
	chDY         = 2
	chW          = 3
	chH          = 4
	chTypes      = 5
)

// Grid is a size x size x Channels tensor stored in row-major order: cell
// row, then cell column, then channel.
type Grid struct {
	size int
	data []float64
}

// Cell is the decoded view of one grid cell.
type Cell struct {
	Confidence float64
	DX, DY     float64
	W, H       float64
	Types      [symbol.LearnedTypes]float64
}

// Type returns the most likely learned type of c. Ties resolve to the
// lowest type.
func (c Cell) Type() symbol.Type {
	return symbol.Type(floats.MaxIdx(c.Types[:]))
}

// New returns an empty grid with the given side length.
func New(size int) (*Grid, error) {
	if err := errs.ValidateSubdivisions(size); err != nil {
		return nil, err
	}
	return &Grid{size: size, data: make([]float64, size*size*Channels)}, nil
}

// FromValues wraps a flat row-major value slice. The slice is copied.
func FromValues(size int, values []float64) (*Grid, error) {
	g, err := New(size)
	if err != nil {
		return nil, err
	}
	if len(values) != len(g.data) {
		return nil, errs.New(errs.ErrCodeInvalidFormat,
			"grid of size %d needs %d values, got %d", size, len(g.data), len(values))
	}
	copy(g.data, values)
	return g, nil
}

// Size returns the number of cells per side.
func (g *Grid) Size() int { return g.size }

// Values returns a copy of the flat row-major values.
func (g *Grid) Values() []float64 {
	return append([]float64(nil), g.data...)
}

func (g *Grid) offset(x, y int) int {
	return (y*g.size + x) * Channels
}

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.size && y < g.size
}

// Cell returns the cell at column x, row y.
func (g *Grid) Cell(x, y int) Cell {
	v := g.data[g.offset(x, y):]
	c := Cell{
		Confidence: v[chConfidence],
		DX:         v[chDX],
		DY:         v[chDY],
		W:          v[chW],
		H:          v[chH],
	}
	copy(c.Types[:], v[chTypes:Channels])
	return c
}

// SetCell stores c at column x, row y.
func (g *Grid) SetCell(x, y int, c Cell) {
	v := g.data[g.offset(x, y):]
	v[chConfidence] = c.Confidence
	v[chDX] = c.DX
	v[chDY] = c.DY
	v[chW] = c.W
	v[chH] = c.H
	copy(v[chTypes:Channels], c.Types[:])
}

// Occupied returns the number of cells with a non-zero confidence.
func (g *Grid) Occupied() int {
	n := 0
	for i := 0; i < len(g.data); i += Channels {
		if g.data[i+chConfidence] != 0 {
			n++
		}
	}
	return n
}
