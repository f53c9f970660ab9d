package serialization

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteModel writes a model directory.
//
// parts holds, per layer, the part blobs in index order. A nil parts writes
// config.json only; otherwise len(parts) must equal len(cfg.Layers).
//
// If dir already exists, WriteModel fails with ErrModelExists unless
// overwrite is set, in which case the directory is removed first.
func WriteModel(dir string, cfg *ModelConfig, parts [][][]byte, overwrite bool) error {
	if parts != nil && len(parts) != len(cfg.Layers) {
		return &PartsError{Layers: len(cfg.Layers), Parts: len(parts)}
	}

	if err := prepareDir(dir, overwrite); err != nil {
		return err
	}

	config, err := EncodeConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), config, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if parts == nil {
		return nil
	}

	if err := os.Mkdir(filepath.Join(dir, WeightsDir), 0o755); err != nil {
		return fmt.Errorf("failed to create weights directory: %w", err)
	}
	for layer, blobs := range parts {
		if err := os.Mkdir(LayerDir(dir, layer), 0o755); err != nil {
			return fmt.Errorf("failed to create weights for layer %d: %w", layer, err)
		}
		for part, blob := range blobs {
			if err := os.WriteFile(PartPath(dir, layer, part), blob, 0o644); err != nil {
				return fmt.Errorf("failed to write layer %d part %d: %w", layer, part, err)
			}
		}
	}
	return nil
}

// prepareDir creates dir, clearing an existing one only when overwrite is set.
func prepareDir(dir string, overwrite bool) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		if !overwrite {
			return fmt.Errorf("%w: %s", ErrModelExists, dir)
		}
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to remove existing model: %w", err)
		}
	case err == nil:
		return fmt.Errorf("%s exists and is not a directory", dir)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to stat %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}
	return nil
}
