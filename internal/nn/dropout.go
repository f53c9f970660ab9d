package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/Robert-M-Lucas/NeuNet/internal/tensor"
)

// DropoutConfig holds the persisted hyperparameters of a Dropout layer.
type DropoutConfig struct {
	Size   int `json:"size"`
	Remove int `json:"remove"`
}

// Dropout zeroes exactly Remove of Size positions while training.
//
// Kept positions are scaled by Size/(Size-Remove) so the expected output
// equals the input. Outside training the layer is the identity.
type Dropout struct {
	config  DropoutConfig
	rng     *rand.Rand
	context slot[[]float64]
}

// NewDropout creates a Dropout removing exactly remove of size positions.
// A nil rng shuffles with the process-wide generator.
func NewDropout(size, remove int, rng *rand.Rand) (*Dropout, error) {
	if size <= 0 {
		return nil, fmt.Errorf("dropout size must be positive, got %d", size)
	}
	if remove < 0 || remove > size {
		return nil, fmt.Errorf("dropout remove must be in [0, %d], got %d", size, remove)
	}
	return &Dropout{config: DropoutConfig{Size: size, Remove: remove}, rng: rng}, nil
}

// NewDropoutRate creates a Dropout removing floor(size*rate) positions.
func NewDropoutRate(size int, rate float64, rng *rand.Rand) (*Dropout, error) {
	if rate < 0 || rate > 1 {
		return nil, fmt.Errorf("dropout rate must be in [0, 1], got %v", rate)
	}
	return NewDropout(size, int(float64(size)*rate), rng)
}

// Name returns "Dropout Layer".
func (d *Dropout) Name() string { return "Dropout Layer" }

// Kind returns KindDropout.
func (d *Dropout) Kind() Kind { return KindDropout }

// InputShape returns [Size].
func (d *Dropout) InputShape() tensor.Shape { return tensor.Shape{d.config.Size} }

// OutputShape returns [Size].
func (d *Dropout) OutputShape() tensor.Shape { return tensor.Shape{d.config.Size} }

// Config returns the layer's DropoutConfig.
func (d *Dropout) Config() any { return d.config }

// Forward applies a freshly shuffled mask when saveContext is set and
// returns the input unchanged otherwise.
func (d *Dropout) Forward(input *tensor.Tensor, saveContext bool) (*tensor.Tensor, error) {
	data, err := flatten(d.Name(), d.InputShape(), input)
	if err != nil {
		return nil, err
	}
	if !saveContext {
		return tensor.FromSlice(data, d.OutputShape())
	}

	mask := d.mask()
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v * mask[i]
	}
	d.context.save(mask)
	return tensor.New(d.OutputShape(), out)
}

// Backward multiplies gradient by the mask realized in the last training Forward.
func (d *Dropout) Backward(gradient *tensor.Tensor, _ float64) (*tensor.Tensor, error) {
	mask, ok := d.context.take()
	if !ok {
		return nil, noContext(d.Name())
	}
	data, err := flatten(d.Name(), d.OutputShape(), gradient)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(data))
	for i, g := range data {
		out[i] = g * mask[i]
	}
	return tensor.New(d.InputShape(), out)
}

// mask returns Size-Remove entries of Size/(Size-Remove) and Remove zeros
// in uniformly random order.
func (d *Dropout) mask() []float64 {
	keep := d.config.Size - d.config.Remove
	mask := make([]float64, d.config.Size)
	if keep == 0 {
		return mask
	}
	scale := float64(d.config.Size) / float64(keep)
	for i := 0; i < keep; i++ {
		mask[i] = scale
	}
	swap := func(i, j int) { mask[i], mask[j] = mask[j], mask[i] }
	if d.rng != nil {
		d.rng.Shuffle(len(mask), swap)
	} else {
		rand.Shuffle(len(mask), swap)
	}
	return mask
}

// StateDict returns nil (Dropout has no trainable parameters).
func (d *Dropout) StateDict() []*tensor.Tensor { return nil }

// LoadStateDict accepts only an empty part list.
func (d *Dropout) LoadStateDict(parts []*tensor.Tensor) error {
	return expectNoParts(d.Name(), parts)
}
