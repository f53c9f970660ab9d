// Package dataset provides labeled tabular data for training and evaluation.
package dataset

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/Robert-M-Lucas/NeuNet/internal/tensor"
)

// ErrRowMismatch is returned when inputs and labels disagree on row count.
var ErrRowMismatch = errors.New("inputs and labels have different row counts")

// Labeled pairs an input tensor with a one-hot label tensor.
//
// Both tensors are indexed by example along their leading axis:
//
//	Inputs: [rows, features...]
//	Labels: [rows, classes]
type Labeled struct {
	Inputs *tensor.Tensor
	Labels *tensor.Tensor
}

// NewLabeled validates that inputs and labels have the same number of rows.
func NewLabeled(inputs, labels *tensor.Tensor) (*Labeled, error) {
	if len(inputs.Shape()) == 0 || len(labels.Shape()) == 0 {
		return nil, fmt.Errorf("inputs and labels need a leading row axis, got %v and %v", inputs.Shape(), labels.Shape())
	}
	if inputs.NumRows() != labels.NumRows() {
		return nil, fmt.Errorf("%w: %d inputs vs %d labels", ErrRowMismatch, inputs.NumRows(), labels.NumRows())
	}
	return &Labeled{Inputs: inputs, Labels: labels}, nil
}

// NumRows returns the number of examples.
func (d *Labeled) NumRows() int {
	return d.Inputs.NumRows()
}

// Example returns row i as an (input, label) pair.
func (d *Labeled) Example(i int) (*tensor.Tensor, *tensor.Tensor, error) {
	x, err := d.Inputs.Row(i)
	if err != nil {
		return nil, nil, fmt.Errorf("input: %w", err)
	}
	y, err := d.Labels.Row(i)
	if err != nil {
		return nil, nil, fmt.Errorf("label: %w", err)
	}
	return x, y, nil
}

// Slice returns a copy of rows [start, end).
func (d *Labeled) Slice(start, end int) (*Labeled, error) {
	x, err := d.Inputs.Slice(start, end)
	if err != nil {
		return nil, err
	}
	y, err := d.Labels.Slice(start, end)
	if err != nil {
		return nil, err
	}
	return &Labeled{Inputs: x, Labels: y}, nil
}

// Concat joins datasets row-wise in argument order.
func Concat(parts ...*Labeled) (*Labeled, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("concat: no datasets")
	}
	inputs := make([]*tensor.Tensor, len(parts))
	labels := make([]*tensor.Tensor, len(parts))
	for i, p := range parts {
		inputs[i] = p.Inputs
		labels[i] = p.Labels
	}
	x, err := tensor.Concat(inputs...)
	if err != nil {
		return nil, fmt.Errorf("concat inputs: %w", err)
	}
	y, err := tensor.Concat(labels...)
	if err != nil {
		return nil, fmt.Errorf("concat labels: %w", err)
	}
	return NewLabeled(x, y)
}

// Shuffle returns a copy with rows permuted by rng.
func (d *Labeled) Shuffle(rng *rand.Rand) (*Labeled, error) {
	order := rng.Perm(d.NumRows())
	xs := make([]*tensor.Tensor, len(order))
	ys := make([]*tensor.Tensor, len(order))
	for i, src := range order {
		x, y, err := d.Example(src)
		if err != nil {
			return nil, err
		}
		xs[i], ys[i] = x, y
	}
	x, err := tensor.Stack(xs...)
	if err != nil {
		return nil, err
	}
	y, err := tensor.Stack(ys...)
	if err != nil {
		return nil, err
	}
	return NewLabeled(x, y)
}
