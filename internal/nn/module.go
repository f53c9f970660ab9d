// Package nn implements the layers and losses of the NeuNet engine.
//
// This package provides building blocks for feed-forward networks:
//   - Layer interface: forward/backward transforms plus trainable state
//   - Dense: fully connected layer
//   - Relu, Softmax: activations
//   - Dropout: training-time regularization
//   - Loss interface with MeanSquared
//   - A kind registry used to rebuild layers from persisted descriptors
//
// Layers update their own parameters during Backward; there is no separate
// optimizer object.
package nn

import (
	"github.com/Robert-M-Lucas/NeuNet/internal/tensor"
)

// Kind is the discriminator stored in persisted layer and loss descriptors.
type Kind string

// Built-in kinds.
const (
	KindDense       Kind = "dense"
	KindRelu        Kind = "relu"
	KindSoftmax     Kind = "softmax"
	KindDropout     Kind = "dropout"
	KindMeanSquared Kind = "mean_squared"
)

// Layer is the base interface for all network components.
//
// A layer holds at most one pending context. Forward with saveContext set
// stores what Backward needs; the next Backward consumes it. Forward without
// saveContext is pure and leaves any pending context untouched.
//
//	out, _ := layer.Forward(x, true)     // Idle → ContextHeld
//	grad, _ := layer.Backward(g, 0.01)   // ContextHeld → Idle
//	_, err := layer.Backward(g, 0.01)    // err wraps ErrNoContext
type Layer interface {
	// Name returns a human-readable layer name (e.g. "Dense Layer").
	Name() string

	// Kind returns the registry discriminator.
	Kind() Kind

	// InputShape returns the shape this layer consumes.
	InputShape() tensor.Shape

	// OutputShape returns the shape this layer produces.
	OutputShape() tensor.Shape

	// Forward transforms input into output. Inputs with the right element
	// count are accepted in any shape; the output always has OutputShape.
	Forward(input *tensor.Tensor, saveContext bool) (*tensor.Tensor, error)

	// Backward maps the gradient w.r.t. the output to the gradient w.r.t.
	// the input, applying parameter updates scaled by rate.
	Backward(gradient *tensor.Tensor, rate float64) (*tensor.Tensor, error)

	// Config returns the JSON-serializable hyperparameters (no trainable values).
	Config() any

	// StateDict returns trainable tensors in a fixed order.
	// Layers without parameters return nil.
	StateDict() []*tensor.Tensor

	// LoadStateDict replaces trainable tensors with parts, in StateDict order.
	LoadStateDict(parts []*tensor.Tensor) error
}

// slot is a single-slot context cache.
type slot[T any] struct {
	value T
	held  bool
}

func (s *slot[T]) save(v T) {
	s.value = v
	s.held = true
}

func (s *slot[T]) take() (T, bool) {
	var zero T
	if !s.held {
		return zero, false
	}
	v := s.value
	s.value = zero
	s.held = false
	return v, true
}

// flatten returns the input's values checked against the expected element count.
func flatten(layer string, expected tensor.Shape, input *tensor.Tensor) ([]float64, error) {
	if input.NumElements() != expected.NumElements() {
		return nil, &ShapeError{Layer: layer, Expected: expected, Got: input.Shape()}
	}
	return input.Data(), nil
}
