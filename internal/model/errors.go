package model

import (
	"errors"
	"fmt"

	"github.com/Robert-M-Lucas/NeuNet/internal/tensor"
)

// Common errors.
var (
	ErrNoLayers     = errors.New("model needs at least one layer")
	ErrNoLoss       = errors.New("model needs a loss")
	ErrInvalidFolds = errors.New("invalid fold count")
	ErrNoModel      = errors.New("generator returned no model")
)

// ShapeMismatchError reports adjacent layers whose shapes do not chain.
type ShapeMismatchError struct {
	Layer       string       // Name of the earlier layer
	Index       int          // Index of the earlier layer
	OutputShape tensor.Shape // Its output shape
	Next        string       // Name of the later layer
	NextIndex   int          // Index of the later layer
	InputShape  tensor.Shape // Its input shape
}

// Error implements the error interface.
func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s [%d] with output shape %v does not match %s [%d] with input shape %v",
		e.Layer, e.Index, e.OutputShape, e.Next, e.NextIndex, e.InputShape)
}

// LayerError attributes a failure to one layer of the pipeline.
type LayerError struct {
	Op    string // "forward" or "backward"
	Layer string // Layer name
	Index int    // Layer index
	Err   error
}

// Error implements the error interface.
func (e *LayerError) Error() string {
	return fmt.Sprintf("%s %s [%d]: %v", e.Op, e.Layer, e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *LayerError) Unwrap() error {
	return e.Err
}
