package model

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/Robert-M-Lucas/NeuNet/internal/nn"
	"github.com/Robert-M-Lucas/NeuNet/internal/serialization"
	"github.com/Robert-M-Lucas/NeuNet/internal/tensor"
)

// Descriptor returns the persisted description of the model's layers and
// loss, without trainable values.
func (m *Model) Descriptor() (*serialization.ModelConfig, error) {
	cfg := &serialization.ModelConfig{
		FormatVersion: serialization.FormatVersion,
		Layers:        make([]serialization.Descriptor, len(m.layers)),
		Loss:          serialization.Descriptor{Kind: string(m.loss.Kind())},
	}
	for i, layer := range m.layers {
		raw, err := json.Marshal(layer.Config())
		if err != nil {
			return nil, fmt.Errorf("layer %d: failed to encode config: %w", i, err)
		}
		cfg.Layers[i] = serialization.Descriptor{Kind: string(layer.Kind()), Config: raw}
	}
	return cfg, nil
}

// Config returns the pretty-printed config.json content.
func (m *Model) Config() (string, error) {
	cfg, err := m.Descriptor()
	if err != nil {
		return "", err
	}
	data, err := serialization.EncodeConfig(cfg)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Save writes config.json only. See serialization.WriteModel for the
// overwrite behaviour.
func (m *Model) Save(dir string, overwrite bool) error {
	cfg, err := m.Descriptor()
	if err != nil {
		return err
	}
	if err := serialization.WriteModel(dir, cfg, nil, overwrite); err != nil {
		return err
	}
	m.logger.Printf("Model '%s' saved (no weights)", dir)
	return nil
}

// SaveWithWeights writes config.json and every layer's StateDict.
func (m *Model) SaveWithWeights(dir string, overwrite bool) error {
	cfg, err := m.Descriptor()
	if err != nil {
		return err
	}

	parts := make([][][]byte, len(m.layers))
	for i, layer := range m.layers {
		state := layer.StateDict()
		blobs := make([][]byte, len(state))
		for j, t := range state {
			if blobs[j], err = t.MarshalBinary(); err != nil {
				return fmt.Errorf("layer %d part %d: %w", i, j, err)
			}
		}
		parts[i] = blobs
	}

	if err := serialization.WriteModel(dir, cfg, parts, overwrite); err != nil {
		return err
	}
	m.logger.Printf("Model '%s' saved (with weights)", dir)
	return nil
}

// Load rebuilds an untrained model from config.json. Trainable layers get
// their default initialization drawn from rng.
func Load(dir string, rng *rand.Rand) (*Model, error) {
	m, err := load(dir, rng)
	if err != nil {
		return nil, err
	}
	m.logger.Printf("Model '%s' loaded (no weights)", dir)
	return m, nil
}

// LoadWithWeights rebuilds a model from config.json and restores every
// layer's parts from the weights directory.
func LoadWithWeights(dir string, rng *rand.Rand) (*Model, error) {
	m, err := load(dir, rng)
	if err != nil {
		return nil, err
	}

	for i, layer := range m.layers {
		blobs, err := serialization.ReadParts(dir, i)
		if err != nil {
			return nil, err
		}
		state := make([]*tensor.Tensor, len(blobs))
		for j, blob := range blobs {
			if state[j], err = tensor.Decode(blob); err != nil {
				return nil, fmt.Errorf("layer %d part %d: %w", i, j, err)
			}
		}
		if err := layer.LoadStateDict(state); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}

	m.logger.Printf("Model '%s' loaded (with weights)", dir)
	return m, nil
}

func load(dir string, rng *rand.Rand) (*Model, error) {
	cfg, err := serialization.ReadConfig(dir)
	if err != nil {
		return nil, err
	}

	layers := make([]nn.Layer, len(cfg.Layers))
	for i, d := range cfg.Layers {
		if layers[i], err = nn.NewLayer(nn.Kind(d.Kind), d.Config, rng); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	loss, err := nn.NewLoss(nn.Kind(cfg.Loss.Kind), cfg.Loss.Config)
	if err != nil {
		return nil, err
	}
	return New(layers, loss)
}
