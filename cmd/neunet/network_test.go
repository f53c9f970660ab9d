package main

import (
	"testing"

	"github.com/Robert-M-Lucas/NeuNet/nn"
	"github.com/Robert-M-Lucas/NeuNet/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNetworkDefaultShape(t *testing.T) {
	m, err := newNetwork(54, 2, newRNG(1))
	require.NoError(t, err)

	layers := m.Layers()
	require.Len(t, layers, 8)
	assert.Equal(t, tensor.Shape{54}, m.InputShape())
	assert.Equal(t, tensor.Shape{2}, m.OutputShape())
	assert.Equal(t, tensor.Shape{27}, layers[3].OutputShape())

	drop, ok := layers[2].(*nn.Dropout)
	require.True(t, ok)
	assert.Equal(t, nn.DropoutConfig{Size: 54, Remove: 10}, drop.Config())
}

func TestNewNetworkTinyInput(t *testing.T) {
	m, err := newNetwork(1, 3, newRNG(2))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3}, m.OutputShape())

	_, err = newNetwork(0, 2, newRNG(2))
	assert.Error(t, err)
}

func TestNewRNGSeeded(t *testing.T) {
	assert.Equal(t, newRNG(7).Uint64(), newRNG(7).Uint64())
}
