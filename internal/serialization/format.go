package serialization

import (
	"encoding/json"
	"path/filepath"
	"strconv"
)

// Format constants.
const (
	FormatVersion = 1 // v1: config.json + weights/<layer>/<part>.dat
	ConfigFile    = "config.json"
	WeightsDir    = "weights"
	PartExt       = ".dat"
)

// Descriptor is a tagged layer or loss description.
type Descriptor struct {
	Kind   string          `json:"kind"`             // Registry discriminator (e.g. "dense")
	Config json.RawMessage `json:"config,omitempty"` // Kind-specific hyperparameters
}

// ModelConfig is the content of config.json.
type ModelConfig struct {
	FormatVersion int          `json:"format_version"` // Version of the directory format
	Layers        []Descriptor `json:"layers"`         // Layers in forward order
	Loss          Descriptor   `json:"loss"`           // Training objective
}

// LayerDir returns the weights directory of one layer.
func LayerDir(dir string, layer int) string {
	return filepath.Join(dir, WeightsDir, strconv.Itoa(layer))
}

// PartPath returns the file holding one part of one layer.
func PartPath(dir string, layer, part int) string {
	return filepath.Join(LayerDir(dir, layer), strconv.Itoa(part)+PartExt)
}

// EncodeConfig renders cfg as indented JSON.
func EncodeConfig(cfg *ModelConfig) ([]byte, error) {
	return json.MarshalIndent(cfg, "", "  ")
}
