package augment

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/wiresketch/wiresketch/pkg/box"
)

// SaveOptions controls how [Image.Save] writes the raster.
type SaveOptions struct {
	// Size resizes the raster to Size x Size before writing. Zero keeps the
	// current size. Labels are stored in percent form, so they need no
	// adjustment.
	Size int

	Grayscale bool
	Invert    bool
}

// Render returns the raster as it would be written by [Image.Save].
func (m *Image) Render(opts SaveOptions) image.Image {
	img := m.img
	if opts.Size > 0 {
		img = imaging.Resize(img, opts.Size, opts.Size, imaging.Box)
	}
	if opts.Grayscale {
		img = imaging.Grayscale(img)
	}
	if opts.Invert {
		img = imaging.Invert(img)
	}
	return img
}

// Save writes the raster to imagePath, in the format named by its
// extension, and the labels to labelPath.
func (m *Image) Save(imagePath, labelPath string, opts SaveOptions) error {
	if err := imaging.Save(m.Render(opts), imagePath); err != nil {
		return fmt.Errorf("save image %s: %w", imagePath, err)
	}
	w, h := m.Size()
	return box.WriteFile(labelPath, m.boxes, float64(w), float64(h))
}
