package errors

import "math"

// MaxSubdivisions bounds the grid side length accepted by ValidateSubdivisions.
const MaxSubdivisions = 1024

// ValidateSubdivisions checks that a grid side length is usable.
func ValidateSubdivisions(n int) error {
	if n <= 0 {
		return New(ErrCodeInvalidInput, "subdivisions must be positive, got %d", n)
	}
	if n > MaxSubdivisions {
		return New(ErrCodeInvalidInput, "subdivisions too large (max %d), got %d", MaxSubdivisions, n)
	}
	return nil
}

// ValidateThreshold checks that a named threshold lies in [0, 1].
func ValidateThreshold(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return New(ErrCodeInvalidInput, "%s must be in [0, 1], got %v", name, v)
	}
	return nil
}

// ValidateSquare checks the square-image precondition shared by the grid
// codec and the schematic builder.
func ValidateSquare(width, height float64) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeGeometry, "image size must be positive, got %vx%v", width, height)
	}
	if width != height {
		return New(ErrCodeGeometry, "image width and height are not equal: %vx%v", width, height)
	}
	return nil
}

// ValidateZoomFactor rejects zero, negative and non-finite zoom factors.
func ValidateZoomFactor(factor float64) error {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return New(ErrCodeGeometry, "zoom factor must be positive, got %v", factor)
	}
	return nil
}
