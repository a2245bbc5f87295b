// Package augment applies geometric augmentations to a labelled image.
//
// An [Image] pairs a raster with the transform-capable box set of its
// labels. Every operation moves the pixels and the boxes together, so the
// labels stay valid after zooming, rotating or flipping. Rotation also
// remaps the box classes of orientation-dependent symbols; see
// [symbol.Rotate].
//
// Like the box set, an Image accepts a single non-zero rotation.
package augment

import (
	"errors"
	"image"
	"image/color"
	"io/fs"
	"math"

	"github.com/disintegration/imaging"

	"github.com/wiresketch/wiresketch/pkg/box"
	errs "github.com/wiresketch/wiresketch/pkg/errors"
)

// Image is a raster together with the labels drawn on it.
type Image struct {
	img     image.Image
	boxes   *box.Set
	rotated bool
}

// New pairs img with boxes. boxes is made transform-capable and is owned by
// the returned Image from then on.
func New(img image.Image, boxes *box.Set) *Image {
	return &Image{img: img, boxes: boxes.Augment()}
}

// Load reads an image file and its label file. Label records are read in
// percent form against the image size. A missing file is reported as
// MISSING_FILE.
func Load(imagePath, labelPath string, grayscale bool) (*Image, error) {
	img, err := imaging.Open(imagePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.Wrap(errs.ErrCodeMissingFile, err, "image %s does not exist", imagePath)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode image %s", imagePath)
	}
	if grayscale {
		img = imaging.Grayscale(img)
	}

	b := img.Bounds()
	s, err := box.ReadFile(labelPath, float64(b.Dx()), float64(b.Dy()))
	if err != nil {
		return nil, err
	}
	return New(img, s), nil
}

// Image returns the current raster.
func (m *Image) Image() image.Image { return m.img }

// Boxes returns the current labels.
func (m *Image) Boxes() *box.Set { return m.boxes }

// Size returns the raster width and height in pixels.
func (m *Image) Size() (w, h int) {
	b := m.img.Bounds()
	return b.Dx(), b.Dy()
}

func (m *Image) center() box.Point {
	w, h := m.Size()
	return box.Point{X: float64(w) / 2, Y: float64(h) / 2}
}

// Zoom scales the content by factor around the image center while keeping
// the raster size: a shrunk image is padded with black, an enlarged one is
// cropped to its center. A factor of 1 does nothing.
func (m *Image) Zoom(factor float64) error {
	if err := errs.ValidateZoomFactor(factor); err != nil {
		return err
	}
	if factor == 1 {
		return nil
	}

	w, h := m.Size()
	rw, rh := int(float64(w)*factor), int(float64(h)*factor)
	if rw < 1 || rh < 1 {
		return errs.New(errs.ErrCodeGeometry, "zoom factor %v shrinks a %dx%d image to nothing", factor, w, h)
	}
	if err := m.boxes.ZoomAll(m.center(), factor); err != nil {
		return err
	}
	resized := imaging.Resize(m.img, rw, rh, imaging.Linear)

	if factor < 1 {
		m.img = imaging.PasteCenter(imaging.New(w, h, color.Black), resized)
	} else {
		m.img = imaging.CropCenter(resized, w, h)
	}
	return nil
}

// Rotate turns the content counter-clockwise by radians around the image
// center. The content is first shrunk so that the rotated image fits the
// original raster, which keeps every labelled pixel inside the frame. A zero
// angle does nothing; a second non-zero rotation fails with CAPABILITY.
func (m *Image) Rotate(radians float64) error {
	if m.rotated {
		return errs.New(errs.ErrCodeCapability, "image was already rotated once")
	}
	if radians == 0 {
		return nil
	}

	w, h := m.Size()
	rw, rh := box.RotatedSize(float64(w), float64(h), radians)
	if err := m.Zoom(math.Max(float64(w)/rw, float64(h)/rh)); err != nil {
		return err
	}

	if err := m.boxes.RotateAll(m.center(), radians); err != nil {
		return err
	}
	deg := radians * 180 / math.Pi
	m.img = imaging.CropCenter(imaging.Rotate(m.img, deg, color.Black), w, h)
	m.rotated = true
	return nil
}

// Rotated reports whether a rotation was applied.
func (m *Image) Rotated() bool { return m.rotated }

// FlipHorizontal mirrors the image left to right.
func (m *Image) FlipHorizontal() error {
	if err := m.boxes.FlipAllHorizontal(m.center().X); err != nil {
		return err
	}
	m.img = imaging.FlipH(m.img)
	return nil
}

// FlipVertical mirrors the image top to bottom.
func (m *Image) FlipVertical() error {
	if err := m.boxes.FlipAllVertical(m.center().Y); err != nil {
		return err
	}
	m.img = imaging.FlipV(m.img)
	return nil
}

// CentersOutOfBounds reports whether any box center lies outside the
// raster. Such a sample lost a label during augmentation.
func (m *Image) CentersOutOfBounds() bool {
	w, h := m.Size()
	for _, c := range m.boxes.Centers() {
		if c.X < 0 || c.X > float64(w) || c.Y < 0 || c.Y > float64(h) {
			return true
		}
	}
	return false
}
