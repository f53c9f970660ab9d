// Copyright 2025 NeuNet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"math/rand/v2"
	"testing"

	"github.com/Robert-M-Lucas/NeuNet/nn"
	"github.com/Robert-M-Lucas/NeuNet/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLayerInterface verifies that every concrete layer implements Layer.
func TestLayerInterface(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))

	dense, err := nn.NewDense(3, 3, rng)
	require.NoError(t, err)
	relu, err := nn.NewRelu(3)
	require.NoError(t, err)
	softmax, err := nn.NewSoftmax(3)
	require.NoError(t, err)
	drop, err := nn.NewDropoutRate(3, 0.34, rng)
	require.NoError(t, err)

	tests := []struct {
		name  string
		layer nn.Layer
		kind  nn.Kind
	}{
		{"Dense", dense, nn.KindDense},
		{"Relu", relu, nn.KindRelu},
		{"Softmax", softmax, nn.KindSoftmax},
		{"Dropout", drop, nn.KindDropout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.layer.Kind())

			out, err := tt.layer.Forward(tensor.Vector(0.1, 0.2, 0.3), true)
			require.NoError(t, err)
			assert.Equal(t, tt.layer.OutputShape(), out.Shape())

			grad, err := tt.layer.Backward(tensor.Vector(1, 1, 1), 0.01)
			require.NoError(t, err)
			assert.Equal(t, tt.layer.InputShape(), grad.Shape())

			_, err = tt.layer.Backward(tensor.Vector(1, 1, 1), 0.01)
			assert.ErrorIs(t, err, nn.ErrNoContext)
		})
	}
}

func TestRegisteredKinds(t *testing.T) {
	kinds := nn.LayerKinds()
	for _, k := range []nn.Kind{nn.KindDense, nn.KindRelu, nn.KindSoftmax, nn.KindDropout} {
		assert.Contains(t, kinds, k)
	}

	_, err := nn.NewLayer("conv2d", nil, nil)
	assert.ErrorIs(t, err, nn.ErrUnknownKind)
}
