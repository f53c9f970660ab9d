package nn

import (
	"fmt"

	"github.com/Robert-M-Lucas/NeuNet/internal/tensor"
)

// Loss is an objective comparing predictions with targets.
//
// Compute returns the scalar loss and its gradient w.r.t. predicted.
// Additional losses plug in by implementing Loss and calling RegisterLoss.
type Loss interface {
	Name() string
	Kind() Kind
	Compute(predicted, actual *tensor.Tensor) (float64, *tensor.Tensor, error)
}

// MeanSquared computes Mean Squared Error loss.
//
//	Loss     = mean((predicted - actual)²)
//	Gradient = 2 * (predicted - actual)
//
// Example:
//
//	loss, grad, _ := nn.MeanSquared{}.Compute(tensor.Vector(0.5, 0.5), tensor.Vector(1, 0))
//	// loss = 0.25, grad = [-1, 1]
type MeanSquared struct{}

// NewMeanSquared creates a new MSE loss.
func NewMeanSquared() MeanSquared {
	return MeanSquared{}
}

// Name returns "Mean Squared Loss".
func (MeanSquared) Name() string { return "Mean Squared Loss" }

// Kind returns KindMeanSquared.
func (MeanSquared) Kind() Kind { return KindMeanSquared }

// Compute returns the MSE and its gradient.
func (m MeanSquared) Compute(predicted, actual *tensor.Tensor) (float64, *tensor.Tensor, error) {
	if predicted.NumElements() != actual.NumElements() {
		return 0, nil, fmt.Errorf("%s: predicted has %d elements, actual has %d",
			m.Name(), predicted.NumElements(), actual.NumElements())
	}
	target, err := actual.Reshape(predicted.Shape())
	if err != nil {
		return 0, nil, err
	}
	diff, err := predicted.Sub(target)
	if err != nil {
		return 0, nil, err
	}
	squared, err := diff.Mul(diff)
	if err != nil {
		return 0, nil, err
	}
	return squared.Mean(), diff.Scale(2), nil
}
