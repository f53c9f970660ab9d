// Copyright 2025 NeuNet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/Robert-M-Lucas/NeuNet/internal/tensor"
)

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// Tensor is a float64 n-dimensional array.
type Tensor = tensor.Tensor

// ErrCorrupt is returned when decoding malformed tensor bytes.
var ErrCorrupt = tensor.ErrCorrupt

// New wraps data with shape without copying.
func New(shape Shape, data []float64) (*Tensor, error) {
	return tensor.New(shape, data)
}

// FromSlice copies data into a new tensor of the given shape.
//
// Example:
//
//	t, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// Vector creates a 1-D tensor.
func Vector(values ...float64) *Tensor {
	return tensor.Vector(values...)
}

// Matrix creates a 2-D tensor from equal-length rows.
func Matrix(rows [][]float64) (*Tensor, error) {
	return tensor.Matrix(rows)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Tensor {
	return tensor.Ones(shape)
}

// Full creates a tensor filled with value.
func Full(shape Shape, value float64) *Tensor {
	return tensor.Full(shape, value)
}

// OneHot creates a vector of length classes with a 1 at class.
func OneHot(class, classes int) *Tensor {
	return tensor.OneHot(class, classes)
}

// Concat joins tensors along the leading axis.
func Concat(parts ...*Tensor) (*Tensor, error) {
	return tensor.Concat(parts...)
}

// Stack joins equally shaped tensors along a new leading axis.
func Stack(rows ...*Tensor) (*Tensor, error) {
	return tensor.Stack(rows...)
}

// Decode parses the output of Tensor.MarshalBinary.
func Decode(data []byte) (*Tensor, error) {
	return tensor.Decode(data)
}
