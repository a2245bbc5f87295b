// Package box provides the bounding-box geometry used across wiresketch.
//
// A [Box] is an axis-aligned rectangle in pixel space, identified by its
// center, size and [symbol.Class]. Boxes are values: every transform returns
// a new Box and never mutates its receiver.
//
// A [Set] is an ordered collection of boxes that can be transformed as a
// whole (when it carries transform capability), merged by IOU, projected into
// parallel slices, and read from or written to the percent-normalized label
// format:
//
//	<class> <xCenter/W> <yCenter/H> <width/W> <height/H>
package box

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wiresketch/wiresketch/pkg/symbol"
)

// Point is a position in pixel space. Y grows downward.
type Point struct {
	X, Y float64
}

// Box is a class-labelled rectangle given by its center and size.
type Box struct {
	Class symbol.Class
	X, Y  float64 // center
	W, H  float64 // size, non-negative
}

// Rect is the top-left form of a Box.
type Rect struct {
	Class symbol.Class
	X, Y  float64 // top-left corner
	W, H  float64
}

// New returns a box centered at (x, y).
func New(class symbol.Class, x, y, w, h float64) Box {
	return Box{Class: class, X: x, Y: y, W: w, H: h}
}

// FromPercent builds a box from values expressed as fractions of the image
// width and height.
func FromPercent(class symbol.Class, px, py, pw, ph, imgW, imgH float64) Box {
	return Box{
		Class: class,
		X:     px * imgW,
		Y:     py * imgH,
		W:     pw * imgW,
		H:     ph * imgH,
	}
}

// Center returns the center of b.
func (b Box) Center() Point { return Point{b.X, b.Y} }

// Size returns the width and height of b.
func (b Box) Size() (w, h float64) { return b.W, b.H }

// Area returns the area of b.
func (b Box) Area() float64 { return b.W * b.H }

// TopLeft returns b in top-left form.
func (b Box) TopLeft() Rect {
	return Rect{Class: b.Class, X: b.X - b.W/2, Y: b.Y - b.H/2, W: b.W, H: b.H}
}

// Percent returns the center and size of b as fractions of the image size.
func (b Box) Percent(imgW, imgH float64) (x, y, w, h float64) {
	return b.X / imgW, b.Y / imgH, b.W / imgW, b.H / imgH
}

// Format renders b as a label record against the given image size.
func (b Box) Format(imgW, imgH float64) string {
	x, y, w, h := b.Percent(imgW, imgH)
	return fmt.Sprintf("%d %s %s %s %s", int(b.Class),
		formatFloat(x), formatFloat(y), formatFloat(w), formatFloat(h))
}

// String implements fmt.Stringer.
func (b Box) String() string {
	return fmt.Sprintf("%v@(%.1f,%.1f %.1fx%.1f)", b.Class, b.X, b.Y, b.W, b.H)
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// IOU returns the intersection over union of a and b. Disjoint boxes, and
// boxes whose union has no area, give 0.
func IOU(a, b Box) float64 {
	ra, rb := a.TopLeft(), b.TopLeft()

	ix := math.Max(ra.X, rb.X)
	iy := math.Max(ra.Y, rb.Y)
	iw := math.Min(ra.X+ra.W, rb.X+rb.W) - ix
	ih := math.Min(ra.Y+ra.H, rb.Y+rb.H) - iy
	if iw < 0 || ih < 0 {
		return 0
	}

	inter := iw * ih
	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// Union returns the smallest box covering a and b. The result keeps the
// class of a.
func Union(a, b Box) Box {
	ra, rb := a.TopLeft(), b.TopLeft()

	x := math.Min(ra.X, rb.X)
	y := math.Min(ra.Y, rb.Y)
	w := math.Max(ra.X+ra.W, rb.X+rb.W) - x
	h := math.Max(ra.Y+ra.H, rb.Y+rb.H) - y

	return Box{Class: a.Class, X: x + w/2, Y: y + h/2, W: w, H: h}
}
