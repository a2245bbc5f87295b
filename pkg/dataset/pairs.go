package dataset

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	errs "github.com/wiresketch/wiresketch/pkg/errors"
)

// Input names the directories a generator reads from. Images and labels may
// share a directory.
type Input struct {
	ImagesDir string
	LabelsDir string
}

// Pair is an image file and its label file.
type Pair struct {
	Name   string // image file name
	Image  string // image path
	Labels string // label path
}

// FindPairs lists the images in imagesDir whose extension is one of
// imageExts, in name order, and pairs each with the label file of the same
// base name in labelsDir. An image without a label file is reported as
// MISSING_FILE.
func FindPairs(imagesDir, labelsDir string, imageExts []string, labelExt string) ([]Pair, error) {
	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeMissingFile, err, "image directory %s does not exist", imagesDir)
		}
		return nil, err
	}

	var pairs []Pair
	for _, e := range entries {
		if e.IsDir() || !slices.Contains(imageExts, filepath.Ext(e.Name())) {
			continue
		}
		base := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		labels := filepath.Join(labelsDir, base+labelExt)
		if _, err := os.Stat(labels); err != nil {
			return nil, errs.Wrap(errs.ErrCodeMissingFile, err, "label file %s for image %s does not exist", labels, e.Name())
		}
		pairs = append(pairs, Pair{
			Name:   e.Name(),
			Image:  filepath.Join(imagesDir, e.Name()),
			Labels: labels,
		})
	}
	return pairs, nil
}
