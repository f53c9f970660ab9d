package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrModelExists        = errors.New("model directory already exists")
	ErrMissingConfig      = errors.New("model config not found")
	ErrMissingWeights     = errors.New("model weights not found")
	ErrUnsupportedVersion = errors.New("unsupported format version")
)

// PartsError reports a parts list that does not line up with the config.
type PartsError struct {
	Layers int // Layers described in the config
	Parts  int // Part lists supplied
}

// Error implements the error interface.
func (e *PartsError) Error() string {
	return fmt.Sprintf("config describes %d layers but %d part lists were given", e.Layers, e.Parts)
}
