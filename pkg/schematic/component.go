package schematic

import (
	"fmt"
	"strings"

	"github.com/wiresketch/wiresketch/pkg/symbol"
)

// Direction names one side of a grid cell.
type Direction int

// Directions, in the order wiring searches them.
const (
	Top Direction = iota
	Bottom
	Left
	Right
)

// Directions lists the four sides in search order.
var Directions = [4]Direction{Top, Bottom, Left, Right}

var directionNames = [4]string{"top", "bottom", "left", "right"}

// String returns the lower-case name of d.
func (d Direction) String() string {
	if d < Top || d > Right {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Opposite returns the side facing d.
func (d Direction) Opposite() Direction {
	switch d {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	default:
		return Left
	}
}

// ParseDirection converts a name produced by [Direction.String].
func ParseDirection(s string) (Direction, error) {
	for i, n := range directionNames {
		if n == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// PortSet is a set of sides.
type PortSet uint8

// Has reports whether d is in p.
func (p PortSet) Has(d Direction) bool { return p&(1<<d) != 0 }

// Len returns the number of ports in p.
func (p PortSet) Len() int {
	n := 0
	for _, d := range Directions {
		if p.Has(d) {
			n++
		}
	}
	return n
}

// String lists the ports of p, e.g. "{top,right}".
func (p PortSet) String() string {
	var names []string
	for _, d := range Directions {
		if p.Has(d) {
			names = append(names, d.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

func ports(ds ...Direction) PortSet {
	var p PortSet
	for _, d := range ds {
		p |= 1 << d
	}
	return p
}

// cornerPorts holds the port set of every corner class.
var cornerPorts = [...]PortSet{
	0: ports(Top, Right),
	1: ports(Top, Left),
	2: ports(Bottom, Left),
	3: ports(Bottom, Right),
	4: ports(Top, Bottom, Right),
	5: ports(Top, Bottom, Left),
	6: ports(Bottom, Right, Left),
	7: ports(Top, Right, Left),
	8: ports(Top, Bottom, Right, Left),
}

// Ports returns the port set of class c. Only corners have ports.
func Ports(c symbol.Class) PortSet {
	if c < 0 || int(c) >= len(cornerPorts) {
		return 0
	}
	return cornerPorts[c]
}

const noLink = -1

// Component is a symbol placed in a grid cell.
//
// Links are indices into the owning [Graph]'s component list; a component
// never refers to another graph.
type Component struct {
	Class symbol.Class
	X, Y  int // cell column and row

	ports PortSet
	links [4]int
}

// NewComponent places class c at cell (x, y) with all link slots empty.
func NewComponent(c symbol.Class, x, y int) Component {
	return Component{
		Class: c,
		X:     x,
		Y:     y,
		ports: Ports(c),
		links: [4]int{noLink, noLink, noLink, noLink},
	}
}

// IsCorner reports whether c is a wiring corner.
func (c *Component) IsCorner() bool {
	return c.Class.Type() == symbol.TypeCorner
}

// Ports returns the fixed port set of c.
func (c *Component) Ports() PortSet { return c.ports }

// Link returns the index of the component linked on side d.
func (c *Component) Link(d Direction) (int, bool) {
	i := c.links[d]
	return i, i != noLink
}

// CanLink reports whether c has a port on side d that is still free.
func (c *Component) CanLink(d Direction) bool {
	return c.ports.Has(d) && c.links[d] == noLink
}

func (c *Component) resetLinks() {
	c.links = [4]int{noLink, noLink, noLink, noLink}
}
