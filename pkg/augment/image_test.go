package augment

import (
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/wiresketch/wiresketch/pkg/box"
	errs "github.com/wiresketch/wiresketch/pkg/errors"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func sample() *Image {
	img := imaging.New(100, 100, color.Black)
	img.Set(0, 0, color.White)
	return New(img, box.NewSet(
		box.New(13, 25, 50, 20, 10),
		box.New(0, 75, 50, 10, 10),
	))
}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestZoom(t *testing.T) {
	for _, factor := range []float64{0.5, 2} {
		m := sample()
		if err := m.Zoom(factor); err != nil {
			t.Fatalf("Zoom(%v) = %v", factor, err)
		}
		if w, h := m.Size(); w != 100 || h != 100 {
			t.Errorf("Zoom(%v) size = %dx%d, want 100x100", factor, w, h)
		}
		got := m.Boxes().At(0).Center()
		wantX := 50 + (25-50)*factor
		if !near(got.X, wantX) || !near(got.Y, 50) {
			t.Errorf("Zoom(%v) center = %v, want (%v,50)", factor, got, wantX)
		}
	}
}

func TestZoomIdentityAndErrors(t *testing.T) {
	m := sample()
	before := m.Image()
	if err := m.Zoom(1); err != nil {
		t.Fatalf("Zoom(1) = %v", err)
	}
	if m.Image() != before {
		t.Error("Zoom(1) should leave the raster untouched")
	}

	for _, f := range []float64{0, -1} {
		if err := m.Zoom(f); !errs.Is(err, errs.ErrCodeGeometry) {
			t.Errorf("Zoom(%v) = %v, want GEOMETRY", f, err)
		}
	}
}

func TestZoomToNothingKeepsLabels(t *testing.T) {
	m := sample()
	before := m.Boxes().At(0).Center()
	img := m.Image()

	if err := m.Zoom(0.001); !errs.Is(err, errs.ErrCodeGeometry) {
		t.Fatalf("Zoom(0.001) = %v, want GEOMETRY", err)
	}
	if got := m.Boxes().At(0).Center(); got != before {
		t.Errorf("center after failed zoom = %v, want %v", got, before)
	}
	if m.Image() != img {
		t.Error("failed zoom replaced the raster")
	}
}

func TestRotate(t *testing.T) {
	m := sample()
	if err := m.Rotate(math.Pi / 2); err != nil {
		t.Fatalf("Rotate() = %v", err)
	}
	if w, h := m.Size(); w != 100 || h != 100 {
		t.Errorf("Rotate() size = %dx%d, want 100x100", w, h)
	}
	if !m.Rotated() {
		t.Error("Rotated() should be true")
	}
	if got := m.Boxes().At(0).Class; got != 14 {
		t.Errorf("rotated resistor class = %d, want 14", got)
	}
	if m.CentersOutOfBounds() {
		t.Error("rotation should keep centers inside the frame")
	}

	if err := m.Rotate(0.1); !errs.Is(err, errs.ErrCodeCapability) {
		t.Errorf("second Rotate() = %v, want CAPABILITY", err)
	}
}

func TestRotateZeroIsNoop(t *testing.T) {
	m := sample()
	if err := m.Rotate(0); err != nil {
		t.Fatalf("Rotate(0) = %v", err)
	}
	if m.Rotated() {
		t.Error("Rotate(0) should not count as a rotation")
	}
	if err := m.Rotate(0.2); err != nil {
		t.Errorf("Rotate() after Rotate(0) = %v", err)
	}
}

func TestFlip(t *testing.T) {
	m := sample()
	if err := m.FlipHorizontal(); err != nil {
		t.Fatalf("FlipHorizontal() = %v", err)
	}
	if !isWhite(m.Image().At(99, 0)) {
		t.Error("FlipHorizontal should move the top-left pixel to the top-right")
	}
	if got := m.Boxes().At(0).Center(); !near(got.X, 75) {
		t.Errorf("flipped center x = %v, want 75", got.X)
	}

	if err := m.FlipVertical(); err != nil {
		t.Fatalf("FlipVertical() = %v", err)
	}
	if !isWhite(m.Image().At(99, 99)) {
		t.Error("FlipVertical should move the top-right pixel to the bottom-right")
	}
}

func TestCentersOutOfBounds(t *testing.T) {
	m := New(imaging.New(10, 10, color.Black), box.NewSet(box.New(13, 5, 5, 2, 2)))
	if m.CentersOutOfBounds() {
		t.Error("center inside the image reported out of bounds")
	}

	m = New(imaging.New(10, 10, color.Black), box.NewSet(box.New(13, 11, 5, 2, 2)))
	if !m.CentersOutOfBounds() {
		t.Error("center outside the image not reported")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "sample.png")
	lblPath := filepath.Join(dir, "sample.txt")

	m := sample()
	if err := m.Save(imgPath, lblPath, SaveOptions{Size: 50, Grayscale: true, Invert: true}); err != nil {
		t.Fatalf("Save() = %v", err)
	}

	loaded, err := Load(imgPath, lblPath, false)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if w, h := loaded.Size(); w != 50 || h != 50 {
		t.Errorf("loaded size = %dx%d, want 50x50", w, h)
	}
	if loaded.Boxes().Len() != 2 {
		t.Fatalf("loaded %d boxes, want 2", loaded.Boxes().Len())
	}
	if got := loaded.Boxes().At(0).Center(); !near(got.X, 12.5) || !near(got.Y, 25) {
		t.Errorf("loaded center = %v, want (12.5,25)", got)
	}
	if !isWhite(loaded.Image().At(25, 25)) {
		t.Error("inverted black background should be white")
	}
}

func TestLoadMissing(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "none.png"), filepath.Join(dir, "none.txt"), false); !errs.Is(err, errs.ErrCodeMissingFile) {
		t.Errorf("Load(missing image) = %v, want MISSING_FILE", err)
	}

	imgPath := filepath.Join(dir, "only.png")
	if err := imaging.Save(imaging.New(8, 8, color.Black), imgPath); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(imgPath, filepath.Join(dir, "only.txt"), true); !errs.Is(err, errs.ErrCodeMissingFile) {
		t.Errorf("Load(missing labels) = %v, want MISSING_FILE", err)
	}
}
