package serialization

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ReadConfig reads and decodes config.json from a model directory.
func ReadConfig(dir string) (*ModelConfig, error) {
	//nolint:gosec // G304: model paths are caller-supplied
	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg ModelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, cfg.FormatVersion)
	}
	return &cfg, nil
}

// HasWeights reports whether dir contains a weights directory.
func HasWeights(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, WeightsDir))
	return err == nil && info.IsDir()
}

// ReadParts reads the part blobs of one layer in ascending index order,
// stopping at the first missing index.
//
// A model saved without weights yields ErrMissingWeights; a layer with no
// parts yields an empty list.
func ReadParts(dir string, layer int) ([][]byte, error) {
	if !HasWeights(dir) {
		return nil, fmt.Errorf("%w: %s", ErrMissingWeights, dir)
	}

	var parts [][]byte
	for part := 0; ; part++ {
		//nolint:gosec // G304: model paths are caller-supplied
		data, err := os.ReadFile(PartPath(dir, layer, part))
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read layer %d part %d: %w", layer, part, err)
		}
		parts = append(parts, data)
	}
	return parts, nil
}
