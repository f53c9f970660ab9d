package nn

import (
	"fmt"

	"github.com/Robert-M-Lucas/NeuNet/internal/tensor"
)

// ReluConfig holds the persisted hyperparameters of a Relu layer.
type ReluConfig struct {
	Size []int `json:"size"`
}

// Relu is a Rectified Linear Unit activation.
//
// Applies the element-wise function: f(x) = max(0, x)
//
// The backward pass uses the subgradient 0 at x == 0.
type Relu struct {
	shape   tensor.Shape
	context slot[[]float64]
}

// NewRelu creates a Relu over a vector of the given size.
func NewRelu(size int) (*Relu, error) {
	return NewReluShape(tensor.Shape{size})
}

// NewReluShape creates a Relu over an arbitrary shape.
func NewReluShape(shape tensor.Shape) (*Relu, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("relu shape must have at least one dimension")
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("relu: %w", err)
	}
	return &Relu{shape: shape.Clone()}, nil
}

// Name returns "Relu Activation".
func (r *Relu) Name() string { return "Relu Activation" }

// Kind returns KindRelu.
func (r *Relu) Kind() Kind { return KindRelu }

// InputShape returns the configured shape.
func (r *Relu) InputShape() tensor.Shape { return r.shape }

// OutputShape returns the configured shape.
func (r *Relu) OutputShape() tensor.Shape { return r.shape }

// Config returns the layer's ReluConfig.
func (r *Relu) Config() any { return ReluConfig{Size: r.shape.Clone()} }

// Forward applies max(x, 0). With saveContext the pre-activation is kept.
func (r *Relu) Forward(input *tensor.Tensor, saveContext bool) (*tensor.Tensor, error) {
	data, err := flatten(r.Name(), r.shape, input)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(data))
	for i, v := range data {
		if v > 0 {
			out[i] = v
		}
	}
	if saveContext {
		r.context.save(append([]float64(nil), data...))
	}
	return tensor.New(r.shape, out)
}

// Backward multiplies gradient by the indicator x > 0.
func (r *Relu) Backward(gradient *tensor.Tensor, _ float64) (*tensor.Tensor, error) {
	pre, ok := r.context.take()
	if !ok {
		return nil, noContext(r.Name())
	}
	data, err := flatten(r.Name(), r.shape, gradient)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(data))
	for i, g := range data {
		if pre[i] > 0 {
			out[i] = g
		}
	}
	return tensor.New(r.shape, out)
}

// StateDict returns nil (Relu has no trainable parameters).
func (r *Relu) StateDict() []*tensor.Tensor { return nil }

// LoadStateDict accepts only an empty part list.
func (r *Relu) LoadStateDict(parts []*tensor.Tensor) error {
	return expectNoParts(r.Name(), parts)
}

func expectNoParts(layer string, parts []*tensor.Tensor) error {
	if len(parts) != 0 {
		return fmt.Errorf("%s: has no trainable state, got %d parts", layer, len(parts))
	}
	return nil
}
