// Package schematic rebuilds a circuit schematic from grid-located symbols.
//
// A [Graph] owns an ordered list of [Component] values, one per detected
// symbol. Corners carry ports; [Graph.BuildWiring] joins facing ports of
// corners that share a row or column, always choosing the nearest free
// partner. [Graph.WriteASC] then serializes the wires and the remaining
// symbols as an LTspice schematic:
//
//	Version 4
//	SHEET 1 1040 1040
//	WIRE 288 528 288 288
//	SYMBOL res 192 176 R0
//	SYMATTR InstName R0
package schematic

import (
	"math"

	"github.com/wiresketch/wiresketch/pkg/box"
	errs "github.com/wiresketch/wiresketch/pkg/errors"
	"github.com/wiresketch/wiresketch/pkg/symbol"
)

// Graph is an ordered list of placed components and the wires between
// them. A Graph is not safe for concurrent use.
type Graph struct {
	components []Component
	wires      []Wire
}

// New returns a graph over copies of components with every link cleared.
func New(components ...Component) *Graph {
	g := &Graph{components: make([]Component, len(components))}
	for i, c := range components {
		g.components[i] = NewComponent(c.Class, c.X, c.Y)
	}
	return g
}

// FromBoxes places one component per box, in set order, at the cell that
// contains the box center.
func FromBoxes(s *box.Set, imgW, imgH float64, subdivisions int) (*Graph, error) {
	if err := errs.ValidateSquare(imgW, imgH); err != nil {
		return nil, err
	}
	if err := errs.ValidateSubdivisions(subdivisions); err != nil {
		return nil, err
	}

	step := imgW / float64(subdivisions)
	g := &Graph{components: make([]Component, 0, s.Len())}
	for _, b := range s.Boxes() {
		x := int(math.Floor(b.X / step))
		y := int(math.Floor(b.Y / step))
		g.components = append(g.components, NewComponent(b.Class, x, y))
	}
	return g, nil
}

// Len returns the number of components.
func (g *Graph) Len() int { return len(g.components) }

// Component returns the i-th component.
func (g *Graph) Component(i int) Component { return g.components[i] }

// Components returns a copy of the component list.
func (g *Graph) Components() []Component {
	return append([]Component(nil), g.components...)
}

// Corners returns the indices of the corner components, in order.
func (g *Graph) Corners() []int {
	var out []int
	for i := range g.components {
		if g.components[i].IsCorner() {
			out = append(out, i)
		}
	}
	return out
}

// Wires returns the wires found by the last [Graph.BuildWiring] or added
// with [Graph.Connect].
func (g *Graph) Wires() []Wire {
	return append([]Wire(nil), g.wires...)
}

// ToBoxes returns one cell-sized box per component, positioned at the
// component's cell origin.
func (g *Graph) ToBoxes(imgW, imgH float64, subdivisions int) (*box.Set, error) {
	if err := errs.ValidateSquare(imgW, imgH); err != nil {
		return nil, err
	}
	if err := errs.ValidateSubdivisions(subdivisions); err != nil {
		return nil, err
	}

	step := imgW / float64(subdivisions)
	s := box.NewSet()
	for _, c := range g.components {
		s.Add(box.New(c.Class, float64(c.X)*step, float64(c.Y)*step, step, step))
	}
	return s, nil
}

// Symbols returns the number of components that are placed as symbols.
func (g *Graph) Symbols() int {
	n := 0
	for _, c := range g.components {
		if _, ok := DescriptorOf(c.Class); ok {
			n++
		}
	}
	return n
}

// TypeCounts returns the number of components of each type.
func (g *Graph) TypeCounts() map[symbol.Type]int {
	out := make(map[symbol.Type]int)
	for _, c := range g.components {
		out[c.Class.Type()]++
	}
	return out
}
