// Package optim holds the training-rate configuration and schedule used by
// the trainer.
//
// NeuNet layers apply plain gradient-descent updates themselves; this
// package only decides the step size for each epoch.
package optim

import (
	"errors"
	"fmt"
)

// ErrInvalidSchedule is returned for a TrainingRateConfig that cannot be scheduled.
var ErrInvalidSchedule = errors.New("invalid training rate config")

// TrainingRateConfig holds the knobs of one training run.
type TrainingRateConfig struct {
	Epochs      int     // Full passes over the data (> 0)
	InitialRate float64 // Learning rate of the first epoch (> 0)
	FinalRate   float64 // Learning rate of the last epoch (> 0)
}

// Validate checks every field is positive.
func (c TrainingRateConfig) Validate() error {
	if c.Epochs <= 0 {
		return fmt.Errorf("%w: epochs must be > 0, got %d", ErrInvalidSchedule, c.Epochs)
	}
	if c.InitialRate <= 0 {
		return fmt.Errorf("%w: initial rate must be > 0, got %v", ErrInvalidSchedule, c.InitialRate)
	}
	if c.FinalRate <= 0 {
		return fmt.Errorf("%w: final rate must be > 0, got %v", ErrInvalidSchedule, c.FinalRate)
	}
	return nil
}

// ReciprocalDecay is the schedule rate(e) = A/(e+1) + C.
//
// A and C are solved so that rate(0) = InitialRate and
// rate(Epochs-1) = FinalRate:
//
//	A = (initial - final) * E / (E - 1)
//	C = initial - A
//
// A single-epoch run uses the initial rate.
type ReciprocalDecay struct {
	A float64
	C float64
}

// NewReciprocalDecay solves the schedule for cfg.
func NewReciprocalDecay(cfg TrainingRateConfig) (ReciprocalDecay, error) {
	if err := cfg.Validate(); err != nil {
		return ReciprocalDecay{}, err
	}
	if cfg.Epochs == 1 {
		return ReciprocalDecay{A: 0, C: cfg.InitialRate}, nil
	}
	e := float64(cfg.Epochs)
	a := (cfg.InitialRate - cfg.FinalRate) * e / (e - 1)
	return ReciprocalDecay{A: a, C: cfg.InitialRate - a}, nil
}

// Rate returns the learning rate for a 0-based epoch.
func (r ReciprocalDecay) Rate(epoch int) float64 {
	return r.A/float64(epoch+1) + r.C
}
