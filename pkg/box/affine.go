package box

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// affine is a 3x3 homogeneous transform of the image plane.
type affine struct {
	m *mat.Dense
}

func newAffine(a, b, tx, c, d, ty float64) affine {
	return affine{m: mat.NewDense(3, 3, []float64{
		a, b, tx,
		c, d, ty,
		0, 0, 1,
	})}
}

func translation(tx, ty float64) affine {
	return newAffine(1, 0, tx, 0, 1, ty)
}

// about conjugates t so that it acts around p instead of the origin.
func (t affine) about(p Point) affine {
	var out mat.Dense
	out.Product(translation(p.X, p.Y).m, t.m, translation(-p.X, -p.Y).m)
	return affine{m: &out}
}

// apply maps p through t.
func (t affine) apply(p Point) Point {
	v := mat.NewVecDense(3, []float64{p.X, p.Y, 1})
	var out mat.VecDense
	out.MulVec(t.m, v)
	return Point{X: out.AtVec(0), Y: out.AtVec(1)}
}

// rotationAbout rotates around p by radians, counter-clockwise as seen on
// screen. The image Y axis points down, so the standard matrix is built with
// the negated angle.
func rotationAbout(p Point, radians float64) affine {
	r := -radians
	cos, sin := math.Cos(r), math.Sin(r)
	return newAffine(cos, -sin, 0, sin, cos, 0).about(p)
}

// scaleAbout scales distances from p by factor.
func scaleAbout(p Point, factor float64) affine {
	return newAffine(factor, 0, 0, 0, factor, 0).about(p)
}

// mirrorY reflects across the horizontal line y = axis.
func mirrorY(axis float64) affine {
	return newAffine(1, 0, 0, 0, -1, 2*axis)
}

// mirrorX reflects across the vertical line x = axis.
func mirrorX(axis float64) affine {
	return newAffine(-1, 0, 2*axis, 0, 1, 0)
}

// RotatedSize returns the size of the axis-aligned rectangle enclosing a
// w x h rectangle rotated by radians.
func RotatedSize(w, h, radians float64) (float64, float64) {
	cos, sin := math.Abs(math.Cos(radians)), math.Abs(math.Sin(radians))
	return w*cos + h*sin, w*sin + h*cos
}
