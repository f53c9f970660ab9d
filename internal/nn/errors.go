package nn

import (
	"errors"
	"fmt"

	"github.com/Robert-M-Lucas/NeuNet/internal/tensor"
)

// Common errors.
var (
	ErrNoContext   = errors.New("backward called without a pending forward context")
	ErrUnknownKind = errors.New("unknown kind")
)

// ShapeError reports a tensor whose shape a layer cannot accept.
type ShapeError struct {
	Layer    string       // Layer name
	Expected tensor.Shape // Shape the layer works with
	Got      tensor.Shape // Shape it was handed
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: expected shape %v (%d elements), got %v (%d elements)",
		e.Layer, e.Expected, e.Expected.NumElements(), e.Got, e.Got.NumElements())
}

func noContext(layer string) error {
	return fmt.Errorf("%s: %w", layer, ErrNoContext)
}
