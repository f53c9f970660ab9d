package nn

import (
	"fmt"
	"math"

	"github.com/Robert-M-Lucas/NeuNet/internal/tensor"
	"gonum.org/v1/gonum/floats"
)

// SoftmaxConfig holds the persisted hyperparameters of a Softmax layer.
type SoftmaxConfig struct {
	Size int `json:"size"`
}

// Softmax normalizes a vector into a probability distribution.
//
//	softmax(x)_i = exp(x_i - max(x)) / Σ_j exp(x_j - max(x))
//
// Subtracting the max keeps exp from overflowing and makes the output
// invariant to adding a constant to every input. If the exponential sum is
// not a positive finite number, the output is uniform.
type Softmax struct {
	size    int
	context slot[[]float64]
}

// NewSoftmax creates a Softmax over a vector of the given size.
func NewSoftmax(size int) (*Softmax, error) {
	if size <= 0 {
		return nil, fmt.Errorf("softmax size must be positive, got %d", size)
	}
	return &Softmax{size: size}, nil
}

// Name returns "Softmax Activation".
func (s *Softmax) Name() string { return "Softmax Activation" }

// Kind returns KindSoftmax.
func (s *Softmax) Kind() Kind { return KindSoftmax }

// InputShape returns [Size].
func (s *Softmax) InputShape() tensor.Shape { return tensor.Shape{s.size} }

// OutputShape returns [Size].
func (s *Softmax) OutputShape() tensor.Shape { return tensor.Shape{s.size} }

// Config returns the layer's SoftmaxConfig.
func (s *Softmax) Config() any { return SoftmaxConfig{Size: s.size} }

// Forward computes the softmax. With saveContext the output is kept, since
// the Jacobian depends only on it.
func (s *Softmax) Forward(input *tensor.Tensor, saveContext bool) (*tensor.Tensor, error) {
	data, err := flatten(s.Name(), s.InputShape(), input)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(data))
	maxVal := floats.Max(data)
	for i, v := range data {
		out[i] = math.Exp(v - maxVal)
	}
	sum := floats.Sum(out)
	if sum > 0 && !math.IsInf(sum, 0) && !math.IsNaN(sum) {
		floats.Scale(1/sum, out)
	} else {
		for i := range out {
			out[i] = 1 / float64(len(out))
		}
	}

	if saveContext {
		s.context.save(append([]float64(nil), out...))
	}
	return tensor.New(s.OutputShape(), out)
}

// Backward computes the Jacobian-vector product
//
//	dx_i = Σ_j s_i (δ_ij - s_j) g_j = s_i (g_i - Σ_j s_j g_j)
//
// where s is the saved forward output.
func (s *Softmax) Backward(gradient *tensor.Tensor, _ float64) (*tensor.Tensor, error) {
	sm, ok := s.context.take()
	if !ok {
		return nil, noContext(s.Name())
	}
	g, err := flatten(s.Name(), s.OutputShape(), gradient)
	if err != nil {
		return nil, err
	}
	weighted := floats.Dot(sm, g)
	out := make([]float64, len(g))
	for i := range out {
		out[i] = sm[i] * (g[i] - weighted)
	}
	return tensor.New(s.InputShape(), out)
}

// StateDict returns nil (Softmax has no trainable parameters).
func (s *Softmax) StateDict() []*tensor.Tensor { return nil }

// LoadStateDict accepts only an empty part list.
func (s *Softmax) LoadStateDict(parts []*tensor.Tensor) error {
	return expectNoParts(s.Name(), parts)
}
