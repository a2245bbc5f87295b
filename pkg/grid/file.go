package grid

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	errs "github.com/wiresketch/wiresketch/pkg/errors"
)

// Write writes the flat values of g, one per line, in %.18e notation.
func (g *Grid) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, v := range g.data {
		if _, err := fmt.Fprintf(bw, "%.18e\n", v); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read parses whitespace-separated values written by [Grid.Write]. When size
// is zero it is inferred from the value count.
func Read(r io.Reader, size int) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var values []float64
	for sc.Scan() {
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "grid value %d", len(values))
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read grid")
	}

	if size == 0 {
		var ok bool
		if size, ok = inferSize(len(values)); !ok {
			return nil, errs.New(errs.ErrCodeInvalidFormat,
				"%d values do not form a square grid of %d channels", len(values), Channels)
		}
	}
	return FromValues(size, values)
}

func inferSize(n int) (int, bool) {
	if n == 0 || n%Channels != 0 {
		return 0, false
	}
	cells := n / Channels
	side := int(math.Round(math.Sqrt(float64(cells))))
	return side, side*side == cells
}

// WriteFile writes g to path.
func WriteFile(path string, g *Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads a grid from path. A missing file is reported as
// MISSING_FILE.
func ReadFile(path string, size int) (*Grid, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeMissingFile, err, "grid file %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, size)
}
