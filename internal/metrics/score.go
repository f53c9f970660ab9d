package metrics

import (
	"github.com/Robert-M-Lucas/NeuNet/internal/tensor"
	"gonum.org/v1/gonum/floats"
)

// ScoreFunc scores one prediction against its target.
type ScoreFunc func(predicted, actual *tensor.Tensor) float64

// ArgmaxAccuracy returns 1 when the predicted and actual argmax agree, else 0.
func ArgmaxAccuracy(predicted, actual *tensor.Tensor) float64 {
	if predicted.NumElements() == 0 || predicted.NumElements() != actual.NumElements() {
		return 0
	}
	if floats.MaxIdx(predicted.Data()) == floats.MaxIdx(actual.Data()) {
		return 1
	}
	return 0
}
