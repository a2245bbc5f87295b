package schematic

import (
	errs "github.com/wiresketch/wiresketch/pkg/errors"
)

// Wire joins port Dir of component From to the opposite port of component
// To.
type Wire struct {
	From, To int
	Dir      Direction
}

// Connect links side d of component i to the opposite side of component j
// and records the wire. Both ports must exist and be free.
func (g *Graph) Connect(i int, d Direction, j int) error {
	if i < 0 || j < 0 || i >= len(g.components) || j >= len(g.components) || i == j {
		return errs.New(errs.ErrCodeInvalidInput, "cannot connect component %d to %d", i, j)
	}
	if !g.components[i].CanLink(d) || !g.components[j].CanLink(d.Opposite()) {
		return errs.New(errs.ErrCodeInvalidInput,
			"component %d has no free %s port facing a free %s port of component %d", i, d, d.Opposite(), j)
	}
	g.link(i, d, j)
	return nil
}

// link joins two ports already known to be free.
func (g *Graph) link(i int, d Direction, j int) {
	g.components[i].links[d] = j
	g.components[j].links[d.Opposite()] = i
	g.wires = append(g.wires, Wire{From: i, To: j, Dir: d})
}

// BuildWiring clears every link and joins corners greedily.
//
// Corners are visited in list order and each free port is searched in the
// order top, bottom, left, right. A candidate is another corner with a free
// facing port in the same column (vertical sides) or row (horizontal sides),
// lying strictly on the searched side. The nearest candidate wins; on equal
// distance the earliest in list order is kept. A port left without a
// candidate stays dangling.
func (g *Graph) BuildWiring() []Wire {
	for i := range g.components {
		g.components[i].resetLinks()
	}
	g.wires = g.wires[:0]

	corners := g.Corners()
	for _, ci := range corners {
		for _, d := range Directions {
			if !g.components[ci].CanLink(d) {
				continue
			}
			if best, ok := g.nearest(ci, d, corners); ok {
				g.link(ci, d, best)
			}
		}
	}
	return g.Wires()
}

// nearest finds the closest corner facing side d of component ci.
func (g *Graph) nearest(ci int, d Direction, corners []int) (int, bool) {
	c := &g.components[ci]
	best, bestDist := -1, 0

	for _, oi := range corners {
		if oi == ci {
			continue
		}
		o := &g.components[oi]
		if !o.CanLink(d.Opposite()) {
			continue
		}

		var dist int
		switch d {
		case Top, Bottom:
			if o.X != c.X {
				continue
			}
			dist = o.Y - c.Y
		case Left, Right:
			if o.Y != c.Y {
				continue
			}
			dist = o.X - c.X
		}
		if (d == Top || d == Left) && dist >= 0 {
			continue
		}
		if (d == Bottom || d == Right) && dist <= 0 {
			continue
		}

		if dist < 0 {
			dist = -dist
		}
		if best < 0 || dist < bestDist {
			best, bestDist = oi, dist
		}
	}
	return best, best >= 0
}
