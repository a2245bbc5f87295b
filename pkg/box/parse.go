package box

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	errs "github.com/wiresketch/wiresketch/pkg/errors"
	"github.com/wiresketch/wiresketch/pkg/symbol"
)

// Parse reads one label record against the given image size.
func Parse(record string, imgW, imgH float64) (Box, error) {
	fields := strings.Fields(record)
	if len(fields) != 5 {
		return Box{}, errs.New(errs.ErrCodeInvalidFormat, "label record needs 5 fields, got %d", len(fields))
	}

	class, err := strconv.Atoi(fields[0])
	if err != nil {
		return Box{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "class %q", fields[0])
	}
	if !symbol.Class(class).Valid() {
		return Box{}, errs.New(errs.ErrCodeInvalidFormat, "class %d out of range", class)
	}

	var v [4]float64
	for i, f := range fields[1:] {
		if v[i], err = strconv.ParseFloat(f, 64); err != nil {
			return Box{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "field %d", i+2)
		}
	}
	if v[2] < 0 || v[3] < 0 {
		return Box{}, errs.New(errs.ErrCodeInvalidFormat, "negative box size %v x %v", v[2], v[3])
	}
	return FromPercent(symbol.Class(class), v[0], v[1], v[2], v[3], imgW, imgH), nil
}

// ParseSet reads label records, one per line, into a plain set. Blank lines
// are skipped.
func ParseSet(r io.Reader, imgW, imgH float64) (*Set, error) {
	s := NewSet()
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		b, err := Parse(text, imgW, imgH)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "line %d", line)
		}
		s.Add(b)
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read labels")
	}
	return s, nil
}

// ReadFile parses the label file at path. A missing file is reported as
// MISSING_FILE.
func ReadFile(path string, imgW, imgH float64) (*Set, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeMissingFile, err, "label file %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseSet(f, imgW, imgH)
}

// WriteFile writes s to path as label records.
func WriteFile(path string, s *Set, imgW, imgH float64) error {
	return os.WriteFile(path, []byte(s.Format(imgW, imgH)), 0644)
}
