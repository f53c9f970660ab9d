// Copyright 2025 NeuNet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/Robert-M-Lucas/NeuNet/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPublicAPI exercises the re-exported constructors together.
func TestPublicAPI(t *testing.T) {
	m, err := tensor.Matrix([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, m.Shape())

	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, row.Data())

	stacked, err := tensor.Stack(tensor.Vector(1, 2), tensor.Vector(3, 4))
	require.NoError(t, err)
	assert.Equal(t, m.Data(), stacked.Data())

	assert.Equal(t, []float64{0, 0, 1}, tensor.OneHot(2, 3).Data())
	assert.Equal(t, 6.0, tensor.Full(tensor.Shape{2, 3}, 1).Sum())
}

func TestDecodeRoundTrip(t *testing.T) {
	orig, err := tensor.FromSlice([]float64{1.5, -2, 0}, tensor.Shape{3, 1})
	require.NoError(t, err)

	raw, err := orig.MarshalBinary()
	require.NoError(t, err)
	back, err := tensor.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, orig.Shape(), back.Shape())
	assert.Equal(t, orig.Data(), back.Data())

	_, err = tensor.Decode(raw[:5])
	assert.ErrorIs(t, err, tensor.ErrCorrupt)
}
