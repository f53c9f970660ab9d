// Package model assembles layers and a loss into a trainable network and
// provides training, k-fold evaluation and persistence on top of it.
package model

import (
	"fmt"
	"log"

	"github.com/Robert-M-Lucas/NeuNet/internal/nn"
	"github.com/Robert-M-Lucas/NeuNet/internal/tensor"
)

// Model is an ordered pipeline of layers trained against one loss.
//
// Adjacent layer shapes are validated once, in New.
//
// Example:
//
//	rng := rand.New(rand.NewPCG(1, 2))
//	dense, _ := nn.NewDense(54, 2, rng)
//	softmax, _ := nn.NewSoftmax(2)
//	m, err := model.New([]nn.Layer{dense, softmax}, nn.NewMeanSquared())
//
//	prediction, err := m.Forward(x)
type Model struct {
	layers []nn.Layer
	loss   nn.Loss
	logger *log.Logger
}

// New creates a model, failing if any layer's output shape differs from
// the next layer's input shape.
func New(layers []nn.Layer, loss nn.Loss) (*Model, error) {
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}
	if loss == nil {
		return nil, ErrNoLoss
	}
	for i := 0; i+1 < len(layers); i++ {
		cur, next := layers[i], layers[i+1]
		if !cur.OutputShape().Equal(next.InputShape()) {
			return nil, &ShapeMismatchError{
				Layer:       cur.Name(),
				Index:       i,
				OutputShape: cur.OutputShape(),
				Next:        next.Name(),
				NextIndex:   i + 1,
				InputShape:  next.InputShape(),
			}
		}
	}

	return &Model{
		layers: append([]nn.Layer(nil), layers...),
		loss:   loss,
		logger: log.Default(),
	}, nil
}

// SetLogger replaces the logger used for training and persistence messages.
func (m *Model) SetLogger(logger *log.Logger) {
	m.logger = logger
}

// Layers returns the layers in forward order.
func (m *Model) Layers() []nn.Layer {
	return append([]nn.Layer(nil), m.layers...)
}

// Loss returns the model's loss.
func (m *Model) Loss() nn.Loss {
	return m.loss
}

// InputShape returns the first layer's input shape.
func (m *Model) InputShape() tensor.Shape {
	return m.layers[0].InputShape()
}

// OutputShape returns the last layer's output shape.
func (m *Model) OutputShape() tensor.Shape {
	return m.layers[len(m.layers)-1].OutputShape()
}

// Forward runs inference. No layer context is touched.
func (m *Model) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	return m.forward(input, false)
}

// ForwardWithContext runs a training forward pass, leaving every layer with
// the context its next Backward consumes.
func (m *Model) ForwardWithContext(input *tensor.Tensor) (*tensor.Tensor, error) {
	return m.forward(input, true)
}

func (m *Model) forward(input *tensor.Tensor, saveContext bool) (*tensor.Tensor, error) {
	first := m.layers[0]
	if !input.Shape().Equal(first.InputShape()) {
		return nil, &LayerError{
			Op:    "forward",
			Layer: first.Name(),
			Index: 0,
			Err:   &nn.ShapeError{Layer: first.Name(), Expected: first.InputShape(), Got: input.Shape()},
		}
	}

	output := input
	for i, layer := range m.layers {
		next, err := layer.Forward(output, saveContext)
		if err != nil {
			return nil, &LayerError{Op: "forward", Layer: layer.Name(), Index: i, Err: err}
		}
		output = next
	}
	return output, nil
}

// Backward propagates gradient from the last layer to the first, each
// layer updating its own parameters with rate.
//
// Returns the gradient w.r.t. the model input. Updates are not rolled back
// on error: layers after the failing one have already applied theirs, and
// any context the failing layer held is consumed.
func (m *Model) Backward(gradient *tensor.Tensor, rate float64) (*tensor.Tensor, error) {
	grad := gradient
	for i := len(m.layers) - 1; i >= 0; i-- {
		layer := m.layers[i]
		next, err := layer.Backward(grad, rate)
		if err != nil {
			return nil, &LayerError{Op: "backward", Layer: layer.Name(), Index: i, Err: err}
		}
		grad = next
	}
	return grad, nil
}

// Predict runs inference on every row of inputs ([rows, features...]) and
// stacks the outputs into [rows, outputs...].
func (m *Model) Predict(inputs *tensor.Tensor) (*tensor.Tensor, error) {
	rows := inputs.NumRows()
	if rows == 0 {
		return nil, fmt.Errorf("no rows to predict")
	}
	outputs := make([]*tensor.Tensor, rows)
	for i := range rows {
		x, err := inputs.Row(i)
		if err != nil {
			return nil, err
		}
		if outputs[i], err = m.Forward(x); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return tensor.Stack(outputs...)
}
