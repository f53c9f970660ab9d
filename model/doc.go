// Copyright 2025 NeuNet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model assembles NeuNet layers into a trainable network.
//
// # Overview
//
// This package provides:
//   - Model: an ordered layer pipeline plus a loss, shape-checked on New
//   - Training: stochastic gradient descent with a reciprocal-decay rate
//   - Evaluation: k-fold cross-validation with a caller-supplied score
//   - Persistence: config.json plus weights/<layer>/<part>.dat
//   - Data: labeled datasets and a CSV loader
//
// # Basic Usage
//
//	rng := rand.New(rand.NewPCG(1, 2))
//	dense, _ := nn.NewDense(4, 2, rng)
//	softmax, _ := nn.NewSoftmax(2)
//
//	m, err := model.New([]nn.Layer{dense, softmax}, nn.NewMeanSquared())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data, _ := model.LoadCSV("train.csv", model.CSVOptions{Header: true, LabelColumn: -1})
//	report, _ := m.Train(data, optim.TrainingRateConfig{Epochs: 20, InitialRate: 0.1, FinalRate: 0.01})
//
//	_ = m.SaveWithWeights("models/iris", true)
package model
