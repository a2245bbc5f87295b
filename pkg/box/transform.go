package box

import "github.com/wiresketch/wiresketch/pkg/symbol"

// RotateAround returns b rotated around p by radians (counter-clockwise on
// screen). The size becomes the enclosing size of the rotated rectangle and
// the class follows the rotation table.
func (b Box) RotateAround(p Point, radians float64) Box {
	c := rotationAbout(p, radians).apply(b.Center())
	w, h := RotatedSize(b.W, b.H, radians)
	return Box{
		Class: symbol.Rotate(b.Class, radians),
		X:     c.X,
		Y:     c.Y,
		W:     w,
		H:     h,
	}
}

// ZoomAround returns b with its center moved so that its distance from p is
// scaled by factor. The size is left unchanged; it follows the accompanying
// image resize.
func (b Box) ZoomAround(p Point, factor float64) Box {
	c := scaleAbout(p, factor).apply(b.Center())
	b.X, b.Y = c.X, c.Y
	return b
}

// FlipVertical mirrors b top to bottom about the horizontal line y = axis.
func (b Box) FlipVertical(axis float64) Box {
	c := mirrorY(axis).apply(b.Center())
	b.Y = c.Y
	b.Class = symbol.FlipVertical(b.Class)
	return b
}

// FlipHorizontal mirrors b left to right about the vertical line x = axis.
func (b Box) FlipHorizontal(axis float64) Box {
	c := mirrorX(axis).apply(b.Center())
	b.X = c.X
	b.Class = symbol.FlipHorizontal(b.Class)
	return b
}
