// Copyright 2025 NeuNet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/Robert-M-Lucas/NeuNet/internal/optim"
)

// TrainingRateConfig holds the epoch count and the first and last rates.
type TrainingRateConfig = optim.TrainingRateConfig

// ReciprocalDecay is the schedule rate(e) = A/(e+1) + C.
type ReciprocalDecay = optim.ReciprocalDecay

// ErrInvalidSchedule is returned for non-positive config fields.
var ErrInvalidSchedule = optim.ErrInvalidSchedule

// NewReciprocalDecay solves the schedule for cfg.
//
// Example:
//
//	schedule, err := optim.NewReciprocalDecay(optim.TrainingRateConfig{
//	    Epochs:      10,
//	    InitialRate: 0.1,
//	    FinalRate:   0.01,
//	})
//	schedule.Rate(9) // 0.01
func NewReciprocalDecay(cfg TrainingRateConfig) (ReciprocalDecay, error) {
	return optim.NewReciprocalDecay(cfg)
}
