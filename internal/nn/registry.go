package nn

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/Robert-M-Lucas/NeuNet/internal/tensor"
)

// LayerFactory rebuilds an untrained layer from its persisted config.
// Random components draw from rng.
type LayerFactory func(config json.RawMessage, rng *rand.Rand) (Layer, error)

// LossFactory rebuilds a loss from its persisted config.
type LossFactory func(config json.RawMessage) (Loss, error)

var (
	registryMu sync.RWMutex
	layers     = map[Kind]LayerFactory{}
	losses     = map[Kind]LossFactory{}
)

func init() {
	RegisterLayer(KindDense, func(raw json.RawMessage, rng *rand.Rand) (Layer, error) {
		var cfg DenseConfig
		if err := decodeConfig(raw, &cfg); err != nil {
			return nil, err
		}
		return NewDense(cfg.InputSize, cfg.OutputSize, rng)
	})
	RegisterLayer(KindRelu, func(raw json.RawMessage, _ *rand.Rand) (Layer, error) {
		var cfg ReluConfig
		if err := decodeConfig(raw, &cfg); err != nil {
			return nil, err
		}
		return NewReluShape(tensor.Shape(cfg.Size))
	})
	RegisterLayer(KindSoftmax, func(raw json.RawMessage, _ *rand.Rand) (Layer, error) {
		var cfg SoftmaxConfig
		if err := decodeConfig(raw, &cfg); err != nil {
			return nil, err
		}
		return NewSoftmax(cfg.Size)
	})
	RegisterLayer(KindDropout, func(raw json.RawMessage, rng *rand.Rand) (Layer, error) {
		var cfg DropoutConfig
		if err := decodeConfig(raw, &cfg); err != nil {
			return nil, err
		}
		return NewDropout(cfg.Size, cfg.Remove, rng)
	})
	RegisterLoss(KindMeanSquared, func(json.RawMessage) (Loss, error) {
		return NewMeanSquared(), nil
	})
}

// RegisterLayer makes a layer kind loadable. Registering a kind twice
// replaces the earlier factory.
func RegisterLayer(kind Kind, factory LayerFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	layers[kind] = factory
}

// RegisterLoss makes a loss kind loadable.
func RegisterLoss(kind Kind, factory LossFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	losses[kind] = factory
}

// NewLayer builds a layer of the given kind from its config.
func NewLayer(kind Kind, config json.RawMessage, rng *rand.Rand) (Layer, error) {
	registryMu.RLock()
	factory, ok := layers[kind]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("layer %q: %w (known: %v)", kind, ErrUnknownKind, LayerKinds())
	}
	layer, err := factory(config, rng)
	if err != nil {
		return nil, fmt.Errorf("layer %q: %w", kind, err)
	}
	return layer, nil
}

// NewLoss builds a loss of the given kind from its config.
func NewLoss(kind Kind, config json.RawMessage) (Loss, error) {
	registryMu.RLock()
	factory, ok := losses[kind]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("loss %q: %w", kind, ErrUnknownKind)
	}
	return factory(config)
}

// LayerKinds returns the registered layer kinds in sorted order.
func LayerKinds() []Kind {
	registryMu.RLock()
	defer registryMu.RUnlock()
	kinds := make([]Kind, 0, len(layers))
	for k := range layers {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// decodeConfig strictly decodes a config body; unknown fields are rejected.
func decodeConfig(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("missing config")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
