package optim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReciprocalDecayEndpoints(t *testing.T) {
	tests := []struct {
		name string
		cfg  TrainingRateConfig
	}{
		{"decaying", TrainingRateConfig{Epochs: 10, InitialRate: 0.1, FinalRate: 0.01}},
		{"two epochs", TrainingRateConfig{Epochs: 2, InitialRate: 0.5, FinalRate: 0.25}},
		{"flat", TrainingRateConfig{Epochs: 5, InitialRate: 0.03, FinalRate: 0.03}},
		{"rising", TrainingRateConfig{Epochs: 4, InitialRate: 0.01, FinalRate: 0.04}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched, err := NewReciprocalDecay(tt.cfg)
			require.NoError(t, err)
			assert.InDelta(t, tt.cfg.InitialRate, sched.Rate(0), 1e-12)
			assert.InDelta(t, tt.cfg.FinalRate, sched.Rate(tt.cfg.Epochs-1), 1e-12)
		})
	}
}

func TestReciprocalDecayMonotonic(t *testing.T) {
	sched, err := NewReciprocalDecay(TrainingRateConfig{Epochs: 20, InitialRate: 1, FinalRate: 0.1})
	require.NoError(t, err)

	prev := sched.Rate(0)
	for e := 1; e < 20; e++ {
		rate := sched.Rate(e)
		assert.Less(t, rate, prev, "epoch %d", e)
		assert.Greater(t, rate, 0.0)
		prev = rate
	}
}

func TestReciprocalDecaySingleEpoch(t *testing.T) {
	sched, err := NewReciprocalDecay(TrainingRateConfig{Epochs: 1, InitialRate: 0.2, FinalRate: 0.01})
	require.NoError(t, err)
	assert.Equal(t, 0.2, sched.Rate(0))
}

func TestTrainingRateConfigValidate(t *testing.T) {
	bad := []TrainingRateConfig{
		{Epochs: 0, InitialRate: 0.1, FinalRate: 0.1},
		{Epochs: 3, InitialRate: 0, FinalRate: 0.1},
		{Epochs: 3, InitialRate: 0.1, FinalRate: -1},
	}
	for _, cfg := range bad {
		_, err := NewReciprocalDecay(cfg)
		assert.ErrorIs(t, err, ErrInvalidSchedule, "%+v", cfg)
	}
}
