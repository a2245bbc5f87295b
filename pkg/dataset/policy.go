package dataset

import (
	"math/rand/v2"

	"github.com/wiresketch/wiresketch/pkg/augment"
	errs "github.com/wiresketch/wiresketch/pkg/errors"
)

// Policy decides which random transforms an augmented sample receives.
// Each transform is applied with its probability; rotation angles (radians)
// and zoom factors are drawn uniformly from their ranges.
type Policy struct {
	RotationProbability       float64
	ZoomProbability           float64
	FlipVerticalProbability   float64
	FlipHorizontalProbability float64
	RotationRange             [2]float64
	ZoomRange                 [2]float64
}

// DefaultPolicy rotates and zooms every sample slightly and flips one in
// five along each axis.
func DefaultPolicy() Policy {
	return Policy{
		RotationProbability:       1.0,
		ZoomProbability:           1.0,
		FlipVerticalProbability:   0.2,
		FlipHorizontalProbability: 0.2,
		RotationRange:             [2]float64{-0.26, 0.26},
		ZoomRange:                 [2]float64{0.99, 1.01},
	}
}

// Validate checks the probabilities and ranges.
func (p Policy) Validate() error {
	for name, v := range map[string]float64{
		"rotation_probability":        p.RotationProbability,
		"zoom_probability":            p.ZoomProbability,
		"flip_vertical_probability":   p.FlipVerticalProbability,
		"flip_horizontal_probability": p.FlipHorizontalProbability,
	} {
		if err := errs.ValidateThreshold(name, v); err != nil {
			return err
		}
	}
	if p.RotationRange[0] > p.RotationRange[1] {
		return errs.New(errs.ErrCodeInvalidInput, "rotation range %v is reversed", p.RotationRange)
	}
	if p.ZoomRange[0] > p.ZoomRange[1] {
		return errs.New(errs.ErrCodeInvalidInput, "zoom range %v is reversed", p.ZoomRange)
	}
	if p.ZoomRange[0] <= 0 {
		return errs.New(errs.ErrCodeGeometry, "zoom range %v must be positive", p.ZoomRange)
	}
	return nil
}

// Apply draws and applies the transforms in the order rotate, zoom,
// vertical flip, horizontal flip. A probability of 0 never fires and 1
// always fires.
func (p Policy) Apply(m *augment.Image, rng *rand.Rand) error {
	uniform := func(b [2]float64) float64 { return b[0] + rng.Float64()*(b[1]-b[0]) }

	if rng.Float64() < p.RotationProbability {
		if err := m.Rotate(uniform(p.RotationRange)); err != nil {
			return err
		}
	}
	if rng.Float64() < p.ZoomProbability {
		if err := m.Zoom(uniform(p.ZoomRange)); err != nil {
			return err
		}
	}
	if rng.Float64() < p.FlipVerticalProbability {
		if err := m.FlipVertical(); err != nil {
			return err
		}
	}
	if rng.Float64() < p.FlipHorizontalProbability {
		if err := m.FlipHorizontal(); err != nil {
			return err
		}
	}
	return nil
}
