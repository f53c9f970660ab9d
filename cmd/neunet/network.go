package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/Robert-M-Lucas/NeuNet/model"
	"github.com/Robert-M-Lucas/NeuNet/nn"
)

// newNetwork builds the default classifier:
//
//	Dense(f, f) -> Relu -> Dropout(0.2) -> Dense(f, f/2) -> Relu ->
//	Dropout(0.1) -> Dense(f/2, classes) -> Softmax, MeanSquared loss
//
// With 54 features and 2 classes this is the 54-54-27-2 network.
func newNetwork(features, classes int, rng *rand.Rand) (*model.Model, error) {
	if features < 1 || classes < 1 {
		return nil, fmt.Errorf("need at least one feature and one class, got %d and %d", features, classes)
	}
	hidden := max(features/2, 1)

	layers := make([]nn.Layer, 0, 8)
	var err error
	push := func(l nn.Layer, e error) {
		switch {
		case err != nil:
		case e != nil:
			err = e
		default:
			layers = append(layers, l)
		}
	}

	push(nn.NewDense(features, features, rng))
	push(nn.NewRelu(features))
	push(nn.NewDropoutRate(features, 0.2, rng))
	push(nn.NewDense(features, hidden, rng))
	push(nn.NewRelu(hidden))
	push(nn.NewDropoutRate(hidden, 0.1, rng))
	push(nn.NewDense(hidden, classes, rng))
	push(nn.NewSoftmax(classes))
	if err != nil {
		return nil, err
	}

	return model.New(layers, nn.NewMeanSquared())
}

// newRNG returns a seeded generator, or an entropy-seeded one for seed 0.
func newRNG(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}
