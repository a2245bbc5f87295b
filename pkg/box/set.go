package box

import (
	"io"
	"strings"

	errs "github.com/wiresketch/wiresketch/pkg/errors"
	"github.com/wiresketch/wiresketch/pkg/symbol"
)

// Set is an ordered collection of boxes.
//
// A Set built with [NewSet] only supports read access, merging and I/O. Batch
// geometric transforms require a transform-capable set, built with
// [NewAugmentedSet] or converted with [Set.Augment]. A capable set accepts a
// single non-zero rotation: the class tables cannot compose two rotations,
// so a second one fails with a CAPABILITY error.
//
// The transform methods update the set in place. Use [Set.Clone] to keep the
// original.
type Set struct {
	boxes     []Box
	augmented bool
	rotated   bool
}

// NewSet returns a plain set holding a copy of boxes.
func NewSet(boxes ...Box) *Set {
	return &Set{boxes: append([]Box(nil), boxes...)}
}

// NewAugmentedSet returns a transform-capable set holding a copy of boxes.
func NewAugmentedSet(boxes ...Box) *Set {
	s := NewSet(boxes...)
	s.augmented = true
	return s
}

// Augment gives s transform capability and returns it.
func (s *Set) Augment() *Set {
	s.augmented = true
	return s
}

// Augmented reports whether s supports batch transforms.
func (s *Set) Augmented() bool { return s.augmented }

// Rotated reports whether a rotation was already applied to s.
func (s *Set) Rotated() bool { return s.rotated }

// Add appends boxes to s.
func (s *Set) Add(boxes ...Box) {
	s.boxes = append(s.boxes, boxes...)
}

// Len returns the number of boxes.
func (s *Set) Len() int { return len(s.boxes) }

// At returns the i-th box.
func (s *Set) At(i int) Box { return s.boxes[i] }

// Boxes returns a copy of the members.
func (s *Set) Boxes() []Box {
	return append([]Box(nil), s.boxes...)
}

// Clone returns an independent copy of s, flags included.
func (s *Set) Clone() *Set {
	c := *s
	c.boxes = s.Boxes()
	return &c
}

// ============================================================================
// Projections
// ============================================================================

// Classes returns the class of every member, in order.
func (s *Set) Classes() []symbol.Class {
	out := make([]symbol.Class, len(s.boxes))
	for i, b := range s.boxes {
		out[i] = b.Class
	}
	return out
}

// Centers returns the center of every member, in order.
func (s *Set) Centers() []Point {
	out := make([]Point, len(s.boxes))
	for i, b := range s.boxes {
		out[i] = b.Center()
	}
	return out
}

// Sizes returns the width and height of every member, in order.
func (s *Set) Sizes() [][2]float64 {
	out := make([][2]float64, len(s.boxes))
	for i, b := range s.boxes {
		out[i] = [2]float64{b.W, b.H}
	}
	return out
}

// TopLeftData returns every member in top-left form, in order.
func (s *Set) TopLeftData() []Rect {
	out := make([]Rect, len(s.boxes))
	for i, b := range s.boxes {
		out[i] = b.TopLeft()
	}
	return out
}

// ============================================================================
// Batch transforms
// ============================================================================

func (s *Set) requireCapability(op string) error {
	if !s.augmented {
		return errs.New(errs.ErrCodeCapability, "%s requires a transform-capable box set", op)
	}
	return nil
}

// RotateAll rotates every member around p. A zero angle leaves the set
// untouched and does not count as a rotation.
func (s *Set) RotateAll(p Point, radians float64) error {
	if err := s.requireCapability("rotate"); err != nil {
		return err
	}
	if radians == 0 {
		return nil
	}
	if s.rotated {
		return errs.New(errs.ErrCodeCapability, "box set was already rotated once")
	}
	for i, b := range s.boxes {
		s.boxes[i] = b.RotateAround(p, radians)
	}
	s.rotated = true
	return nil
}

// ZoomAll moves every member away from (factor > 1) or towards (factor < 1)
// p.
func (s *Set) ZoomAll(p Point, factor float64) error {
	if err := s.requireCapability("zoom"); err != nil {
		return err
	}
	if err := errs.ValidateZoomFactor(factor); err != nil {
		return err
	}
	for i, b := range s.boxes {
		s.boxes[i] = b.ZoomAround(p, factor)
	}
	return nil
}

// FlipAllVertical mirrors every member about the line y = axis.
func (s *Set) FlipAllVertical(axis float64) error {
	if err := s.requireCapability("vertical flip"); err != nil {
		return err
	}
	for i, b := range s.boxes {
		s.boxes[i] = b.FlipVertical(axis)
	}
	return nil
}

// FlipAllHorizontal mirrors every member about the line x = axis.
func (s *Set) FlipAllHorizontal(axis float64) error {
	if err := s.requireCapability("horizontal flip"); err != nil {
		return err
	}
	for i, b := range s.boxes {
		s.boxes[i] = b.FlipHorizontal(axis)
	}
	return nil
}

// ============================================================================
// Text form
// ============================================================================

// Format renders every member as a label record followed by a newline.
func (s *Set) Format(imgW, imgH float64) string {
	var sb strings.Builder
	for _, b := range s.boxes {
		sb.WriteString(b.Format(imgW, imgH))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteLabels writes the label records of s against the given image size.
func (s *Set) WriteLabels(w io.Writer, imgW, imgH float64) error {
	_, err := io.WriteString(w, s.Format(imgW, imgH))
	return err
}
