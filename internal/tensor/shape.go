package tensor

import (
	"fmt"
	"slices"
)

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the product of the dimensions (1 for a scalar).
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate requires every dimension to be positive.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("dimension %d of %v is %d, must be > 0", i, s, dim)
		}
	}
	return nil
}

// Equal reports whether both shapes have the same dimensions.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Clone returns a copy of the shape. A nil shape clones to an empty one.
func (s Shape) Clone() Shape {
	return append(Shape{}, s...)
}

// Rows returns the size of the leading axis.
//
// A scalar shape has no rows.
func (s Shape) Rows() int {
	if len(s) == 0 {
		return 0
	}
	return s[0]
}

// RowShape returns the shape of one slice along the leading axis.
//
//	Shape{10, 54}.RowShape() → Shape{54}
func (s Shape) RowShape() Shape {
	if len(s) == 0 {
		return Shape{}
	}
	return s[1:].Clone()
}

// WithRows returns a copy of the shape with the leading axis replaced.
func (s Shape) WithRows(rows int) Shape {
	out := s.Clone()
	if len(out) == 0 {
		return Shape{rows}
	}
	out[0] = rows
	return out
}
