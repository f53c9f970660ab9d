// Copyright 2025 NeuNet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"encoding/json"
	"math/rand/v2"

	"github.com/Robert-M-Lucas/NeuNet/internal/nn"
	"github.com/Robert-M-Lucas/NeuNet/tensor"
	"gonum.org/v1/gonum/mat"
)

// Layer is the interface every network component implements.
type Layer = nn.Layer

// Loss compares predictions with targets.
type Loss = nn.Loss

// Kind identifies a layer or loss in a persisted model.
type Kind = nn.Kind

// Built-in kinds.
const (
	KindDense       = nn.KindDense
	KindRelu        = nn.KindRelu
	KindSoftmax     = nn.KindSoftmax
	KindDropout     = nn.KindDropout
	KindMeanSquared = nn.KindMeanSquared
)

// Errors.
var (
	ErrNoContext   = nn.ErrNoContext
	ErrUnknownKind = nn.ErrUnknownKind
)

// ShapeError reports a tensor whose shape a layer cannot accept.
type ShapeError = nn.ShapeError

// Layers

// Dense is a fully connected layer.
type Dense = nn.Dense

// DenseConfig is the persisted description of a Dense layer.
type DenseConfig = nn.DenseConfig

// NewDense creates a Dense layer with NormalWeights(DefaultVarianceTarget, rng)
// and zero bias.
//
// Example:
//
//	dense, err := nn.NewDense(54, 27, rand.New(rand.NewPCG(1, 2)))
func NewDense(inputSize, outputSize int, rng *rand.Rand) (*Dense, error) {
	return nn.NewDense(inputSize, outputSize, rng)
}

// NewDenseWith creates a Dense layer with an explicit initializer and
// initial bias.
func NewDenseWith(inputSize, outputSize int, init WeightInit, bias float64) (*Dense, error) {
	return nn.NewDenseWith(inputSize, outputSize, init, bias)
}

// Activations

// Relu is the rectified linear activation.
type Relu = nn.Relu

// ReluConfig is the persisted description of a Relu layer.
type ReluConfig = nn.ReluConfig

// NewRelu creates a Relu over a vector of length size.
func NewRelu(size int) (*Relu, error) {
	return nn.NewRelu(size)
}

// NewReluShape creates a Relu over an arbitrary shape.
func NewReluShape(shape tensor.Shape) (*Relu, error) {
	return nn.NewReluShape(shape)
}

// Softmax normalizes a vector into a probability distribution.
type Softmax = nn.Softmax

// SoftmaxConfig is the persisted description of a Softmax layer.
type SoftmaxConfig = nn.SoftmaxConfig

// NewSoftmax creates a Softmax over a vector of length size.
func NewSoftmax(size int) (*Softmax, error) {
	return nn.NewSoftmax(size)
}

// Regularization

// Dropout zeroes a fixed number of positions during training.
type Dropout = nn.Dropout

// DropoutConfig is the persisted description of a Dropout layer.
type DropoutConfig = nn.DropoutConfig

// NewDropout creates a Dropout that removes exactly remove of size positions.
func NewDropout(size, remove int, rng *rand.Rand) (*Dropout, error) {
	return nn.NewDropout(size, remove, rng)
}

// NewDropoutRate creates a Dropout removing floor(size*rate) positions.
//
// Example:
//
//	drop, err := nn.NewDropoutRate(54, 0.2, rng) // removes 10 of 54
func NewDropoutRate(size int, rate float64, rng *rand.Rand) (*Dropout, error) {
	return nn.NewDropoutRate(size, rate, rng)
}

// Losses

// MeanSquared is the mean squared error loss.
type MeanSquared = nn.MeanSquared

// NewMeanSquared creates a new MSE loss.
func NewMeanSquared() MeanSquared {
	return nn.NewMeanSquared()
}

// Initialization

// WeightInit produces a fanIn×fanOut weight matrix.
type WeightInit = nn.WeightInit

// DefaultVarianceTarget is the output variance NewDense aims for.
const DefaultVarianceTarget = nn.DefaultVarianceTarget

// EqualWeights sets every weight to 1/fanIn.
func EqualWeights() WeightInit {
	return nn.EqualWeights()
}

// NormalWeights draws weights from N(0, varianceTarget/fanIn).
func NormalWeights(varianceTarget float64, rng *rand.Rand) WeightInit {
	return nn.NormalWeights(varianceTarget, rng)
}

// CustomWeights uses a copy of w.
func CustomWeights(w mat.Matrix) WeightInit {
	return nn.CustomWeights(w)
}

// Registry

// LayerFactory rebuilds an untrained layer from its persisted config.
type LayerFactory = nn.LayerFactory

// LossFactory rebuilds a loss from its persisted config.
type LossFactory = nn.LossFactory

// RegisterLayer makes kind loadable, replacing any earlier factory.
func RegisterLayer(kind Kind, factory LayerFactory) {
	nn.RegisterLayer(kind, factory)
}

// RegisterLoss makes kind loadable, replacing any earlier factory.
func RegisterLoss(kind Kind, factory LossFactory) {
	nn.RegisterLoss(kind, factory)
}

// NewLayer builds a layer of the given kind from config.
func NewLayer(kind Kind, config json.RawMessage, rng *rand.Rand) (Layer, error) {
	return nn.NewLayer(kind, config, rng)
}

// LayerKinds returns every registered layer kind, sorted.
func LayerKinds() []Kind {
	return nn.LayerKinds()
}
