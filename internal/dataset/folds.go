package dataset

import "fmt"

// Range is a half-open row interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of rows in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Partition splits rows into folds contiguous ranges of floor(rows/folds)
// rows each. Remainder rows are merged into the last range, so the ranges
// cover every row exactly once.
//
//	Partition(10, 3) → [0,3) [3,6) [6,10)
func Partition(rows, folds int) ([]Range, error) {
	if folds <= 0 {
		return nil, fmt.Errorf("folds must be > 0, got %d", folds)
	}
	if rows < folds {
		return nil, fmt.Errorf("cannot split %d rows into %d folds", rows, folds)
	}
	size := rows / folds
	ranges := make([]Range, folds)
	for k := range ranges {
		ranges[k] = Range{Start: k * size, End: (k + 1) * size}
	}
	ranges[folds-1].End = rows
	return ranges, nil
}

// Folds slices d by Partition(d.NumRows(), folds).
func (d *Labeled) Folds(folds int) ([]*Labeled, error) {
	ranges, err := Partition(d.NumRows(), folds)
	if err != nil {
		return nil, err
	}
	parts := make([]*Labeled, len(ranges))
	for k, r := range ranges {
		if parts[k], err = d.Slice(r.Start, r.End); err != nil {
			return nil, fmt.Errorf("fold %d: %w", k, err)
		}
	}
	return parts, nil
}
