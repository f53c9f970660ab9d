// Copyright 2025 NeuNet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the learning-rate schedule used by NeuNet training.
//
// Layers apply their own gradient-descent updates; this package only
// decides the step size of each epoch:
//
//	rate(e) = A/(e+1) + C
//
// with A and C solved so the first epoch uses InitialRate and the last one
// uses FinalRate.
//
// # Basic Usage
//
//	cfg := optim.TrainingRateConfig{Epochs: 50, InitialRate: 0.1, FinalRate: 0.001}
//	schedule, err := optim.NewReciprocalDecay(cfg)
//	for epoch := range cfg.Epochs {
//	    rate := schedule.Rate(epoch)
//	    ...
//	}
package optim
