package model

import (
	"fmt"
	"time"

	"github.com/Robert-M-Lucas/NeuNet/internal/dataset"
	"github.com/Robert-M-Lucas/NeuNet/internal/metrics"
	"github.com/Robert-M-Lucas/NeuNet/internal/optim"
	"github.com/Robert-M-Lucas/NeuNet/internal/tensor"
	"gonum.org/v1/gonum/stat"
)

// Predictions are clamped to [PredictionFloor, PredictionCeil] before the
// loss sees them.
const (
	PredictionFloor = 1e-7
	PredictionCeil  = 1 - 1e-7
)

// EpochStats summarizes one training epoch.
type EpochStats struct {
	Epoch    int           // 0-based epoch index
	Rate     float64       // Learning rate used
	AvgLoss  float64       // Mean per-example loss
	Duration time.Duration // Wall-clock time of the epoch
}

// TrainReport is returned by Train.
type TrainReport struct {
	Epochs   []EpochStats
	AvgEpoch time.Duration // Mean epoch duration
}

// FinalLoss returns the mean loss of the last epoch.
func (r *TrainReport) FinalLoss() float64 {
	if len(r.Epochs) == 0 {
		return 0
	}
	return r.Epochs[len(r.Epochs)-1].AvgLoss
}

// TrainStep runs one stochastic gradient-descent step on a single example
// and returns its loss.
func (m *Model) TrainStep(input, target *tensor.Tensor, rate float64) (float64, error) {
	prediction, err := m.ForwardWithContext(input)
	if err != nil {
		return 0, err
	}
	prediction = prediction.Clamp(PredictionFloor, PredictionCeil)

	loss, gradient, err := m.loss.Compute(prediction, target)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", m.loss.Name(), err)
	}
	if _, err := m.Backward(gradient, rate); err != nil {
		return 0, err
	}
	return loss, nil
}

// Train runs cfg.Epochs passes over data, one example at a time, with the
// learning rate following optim.ReciprocalDecay.
//
// One line per epoch is written to the model's logger.
func (m *Model) Train(data *dataset.Labeled, cfg optim.TrainingRateConfig) (*TrainReport, error) {
	schedule, err := optim.NewReciprocalDecay(cfg)
	if err != nil {
		return nil, err
	}
	if data.NumRows() == 0 {
		return nil, fmt.Errorf("training data is empty")
	}

	report := &TrainReport{Epochs: make([]EpochStats, 0, cfg.Epochs)}
	var window metrics.Window

	for epoch := range cfg.Epochs {
		rate := schedule.Rate(epoch)
		start := time.Now()

		for i := range data.NumRows() {
			x, y, err := data.Example(i)
			if err != nil {
				return nil, err
			}
			loss, err := m.TrainStep(x, y, rate)
			if err != nil {
				return nil, fmt.Errorf("epoch %d, example %d: %w", epoch, i, err)
			}
			window.Record(loss)
		}

		snap := window.EndEpoch(time.Since(start))
		report.Epochs = append(report.Epochs, EpochStats{
			Epoch:    epoch,
			Rate:     rate,
			AvgLoss:  snap.AvgLoss,
			Duration: snap.EpochTime,
		})
		report.AvgEpoch = snap.AvgEpoch

		m.logger.Printf("epoch=%d/%d rate=%.6f avg_loss=%.6f epoch_ms=%.2f avg_epoch_ms=%.2f",
			epoch+1,
			cfg.Epochs,
			rate,
			snap.AvgLoss,
			snap.EpochTime.Seconds()*1000,
			snap.AvgEpoch.Seconds()*1000,
		)
	}

	return report, nil
}

// Score returns the mean of score over every row of data, using inference
// forward passes.
func (m *Model) Score(data *dataset.Labeled, score metrics.ScoreFunc) (float64, error) {
	rows := data.NumRows()
	if rows == 0 {
		return 0, fmt.Errorf("scoring data is empty")
	}
	scores := make([]float64, rows)
	for i := range rows {
		x, y, err := data.Example(i)
		if err != nil {
			return 0, err
		}
		prediction, err := m.Forward(x)
		if err != nil {
			return 0, fmt.Errorf("example %d: %w", i, err)
		}
		scores[i] = score(prediction, y)
	}
	return stat.Mean(scores, nil), nil
}
