// Package metrics accumulates training statistics and provides scoring
// callbacks for evaluation.
package metrics

import "time"

// Window accumulates per-example loss and per-epoch timing.
type Window struct {
	examples  int
	lossSum   float64
	lastLoss  float64
	epochs    int
	epochTime time.Duration
}

// Record adds one example's loss to the current epoch.
func (w *Window) Record(loss float64) {
	w.examples++
	w.lossSum += loss
	w.lastLoss = loss
}

// EndEpoch closes the current epoch, returning its snapshot and resetting
// the per-epoch counters. Epoch timings accumulate across calls.
func (w *Window) EndEpoch(elapsed time.Duration) Snapshot {
	w.epochs++
	w.epochTime += elapsed

	snap := Snapshot{
		Examples:  w.examples,
		LastLoss:  w.lastLoss,
		EpochTime: elapsed,
		AvgEpoch:  w.epochTime / time.Duration(w.epochs),
	}
	if w.examples > 0 {
		snap.AvgLoss = w.lossSum / float64(w.examples)
	}

	w.examples = 0
	w.lossSum = 0
	return snap
}

// Snapshot represents loggable metrics for one epoch.
type Snapshot struct {
	Examples  int
	AvgLoss   float64
	LastLoss  float64
	EpochTime time.Duration
	AvgEpoch  time.Duration // Mean epoch duration across the run so far
}
