// Copyright 2025 NeuNet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 tensors NeuNet layers consume.
//
// # Overview
//
// A Tensor is a flat row-major []float64 plus a Shape. This package provides:
//   - Construction: New, FromSlice, Vector, Matrix, Zeros, Ones, Full, OneHot
//   - Elementwise math: Sub, Mul, Scale, Clamp, Apply
//   - Reductions: Sum, Mean, Argmax
//   - Row access along the leading axis: Row, Slice, Concat, Stack
//   - Binary encoding of a single tensor: MarshalBinary, Decode
//
// # Basic Usage
//
//	x := tensor.Vector(2, 3)
//	y := tensor.Vector(1, 1)
//	z, err := x.Sub(y) // [1 2]
//
//	rows, _ := tensor.Matrix([][]float64{{1, 2}, {3, 4}})
//	second, _ := rows.Row(1) // [3 4], shape [2]
//
// # Shapes
//
// Shapes are []int. The leading axis indexes examples for datasets:
//
//	inputs shape [rows, features]
//	labels shape [rows, classes]
package tensor
