package box

import (
	"fmt"

	errs "github.com/wiresketch/wiresketch/pkg/errors"
)

// MergeScan selects the pair range visited by [Set.MergeOverlapping].
type MergeScan int

const (
	// ScanLegacy visits pairs (i, j) with i < j < n-1, so the last member
	// never takes part as the second box of a pair. Label sets produced so
	// far were cleaned with this range.
	ScanLegacy MergeScan = iota

	// ScanAllPairs visits every pair (i, j) with i < j < n.
	ScanAllPairs
)

// DefaultIOUThreshold is the overlap above which two same-class boxes are
// merged.
const DefaultIOUThreshold = 0.2

// String returns the configuration name of the scan.
func (m MergeScan) String() string {
	switch m {
	case ScanLegacy:
		return "legacy"
	case ScanAllPairs:
		return "all-pairs"
	default:
		return fmt.Sprintf("MergeScan(%d)", int(m))
	}
}

// ParseMergeScan converts a configuration name into a MergeScan.
func ParseMergeScan(name string) (MergeScan, error) {
	switch name {
	case "", "legacy":
		return ScanLegacy, nil
	case "all-pairs", "all":
		return ScanAllPairs, nil
	default:
		return 0, errs.New(errs.ErrCodeInvalidInput, "unknown merge scan %q (want legacy or all-pairs)", name)
	}
}

// MergeOverlapping replaces overlapping same-class boxes by their union.
//
// Pairs are visited in index order over the members present when the call
// starts. For every same-class pair whose IOU exceeds threshold, the union is
// appended and both originals are marked. Marked originals are removed once
// the scan is done, so a box overlapping several others contributes to
// several unions. It returns the number of unions appended.
func (s *Set) MergeOverlapping(threshold float64, scan MergeScan) int {
	n := len(s.boxes)
	end := n
	if scan == ScanLegacy {
		end = n - 1
	}

	marked := make([]bool, n)
	var unions []Box
	for i := 0; i < n; i++ {
		for j := i + 1; j < end; j++ {
			a, b := s.boxes[i], s.boxes[j]
			if a.Class != b.Class {
				continue
			}
			if IOU(a, b) > threshold {
				unions = append(unions, Union(a, b))
				marked[i], marked[j] = true, true
			}
		}
	}
	if len(unions) == 0 {
		return 0
	}

	kept := s.boxes[:0:0]
	for i, b := range s.boxes {
		if !marked[i] {
			kept = append(kept, b)
		}
	}
	s.boxes = append(kept, unions...)
	return len(unions)
}
