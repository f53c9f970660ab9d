// Package tensor provides the dense float64 tensor used throughout NeuNet.
//
// Tensors are row-major n-dimensional arrays. Data is owned by the tensor;
// every operation returns a new tensor unless its name says otherwise
// (e.g. ApplyInPlace).
package tensor

import (
	"fmt"
)

// Tensor is an n-dimensional array of float64 values.
//
// Example:
//
//	x := tensor.Vector(1, 2, 3)
//	y := x.Scale(2) // [2, 4, 6]
type Tensor struct {
	shape Shape
	data  []float64
}

// New wraps data in a tensor of the given shape without copying.
//
// The caller must not retain data for other uses.
func New(shape Shape, data []float64) (*Tensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	return &Tensor{shape: shape.Clone(), data: data}, nil
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	buf := make([]float64, len(data))
	copy(buf, data)
	return New(shape, buf)
}

// Vector creates a 1-D tensor holding values.
func Vector(values ...float64) *Tensor {
	data := make([]float64, len(values))
	copy(data, values)
	return &Tensor{shape: Shape{len(values)}, data: data}
}

// Matrix creates a 2-D tensor from equally sized rows.
func Matrix(rows [][]float64) (*Tensor, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("matrix needs at least one row")
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return &Tensor{shape: Shape{len(rows), cols}, data: data}, nil
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns the underlying slice. Writes are visible to the tensor.
func (t *Tensor) Data() []float64 {
	return t.data
}

// At returns the element at flat index i.
func (t *Tensor) At(i int) float64 {
	return t.data[i]
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	return &Tensor{shape: t.shape.Clone(), data: data}
}

// Reshape returns a copy of the tensor viewed with a new shape.
//
// The element count must be preserved.
func (t *Tensor) Reshape(shape Shape) (*Tensor, error) {
	if shape.NumElements() != len(t.data) {
		return nil, fmt.Errorf("cannot reshape %v into %v", t.shape, shape)
	}
	out := t.Clone()
	out.shape = shape.Clone()
	return out, nil
}

// String implements fmt.Stringer.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor(shape=%v, data=%v)", t.shape, t.data)
}
