// Copyright 2025 NeuNet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layers and losses of a NeuNet model.
//
// # Overview
//
// This package contains:
//   - Layers: Dense
//   - Activations: Relu, Softmax
//   - Regularization: Dropout
//   - Loss functions: MeanSquared
//   - Initialization: EqualWeights, NormalWeights, CustomWeights
//   - A kind registry so persisted models can name their layers
//
// # Basic Usage
//
//	rng := rand.New(rand.NewPCG(1, 2))
//
//	dense, _ := nn.NewDense(54, 27, rng)
//	relu, _ := nn.NewRelu(27)
//	drop, _ := nn.NewDropoutRate(27, 0.1, rng)
//
//	out, _ := dense.Forward(x, true) // training pass, context saved
//	grad, _ := dense.Backward(g, 0.01)
//
// # Contexts
//
// Every layer keeps at most one pending context. A training Forward
// (saveContext set) fills it and the next Backward consumes it. Calling
// Backward with nothing pending returns an error wrapping ErrNoContext.
//
// # Custom Layers
//
// Implement Layer and call RegisterLayer with a new Kind to make the layer
// loadable from a saved model directory.
package nn
