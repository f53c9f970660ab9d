package tensor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

func (t *Tensor) sameShape(op string, other *Tensor) error {
	if !t.shape.Equal(other.shape) {
		return fmt.Errorf("%s: shape mismatch %v vs %v", op, t.shape, other.shape)
	}
	return nil
}

// Sub returns t - other elementwise.
func (t *Tensor) Sub(other *Tensor) (*Tensor, error) {
	if err := t.sameShape("Sub", other); err != nil {
		return nil, err
	}
	out := Zeros(t.shape)
	floats.SubTo(out.data, t.data, other.data)
	return out, nil
}

// Mul returns the elementwise (Hadamard) product of t and other.
func (t *Tensor) Mul(other *Tensor) (*Tensor, error) {
	if err := t.sameShape("Mul", other); err != nil {
		return nil, err
	}
	out := Zeros(t.shape)
	floats.MulTo(out.data, t.data, other.data)
	return out, nil
}

// Scale returns t * c.
func (t *Tensor) Scale(c float64) *Tensor {
	out := Zeros(t.shape)
	floats.ScaleTo(out.data, c, t.data)
	return out
}

// Sum returns the sum of all elements.
func (t *Tensor) Sum() float64 {
	return floats.Sum(t.data)
}

// Mean returns the arithmetic mean of all elements.
func (t *Tensor) Mean() float64 {
	if len(t.data) == 0 {
		return math.NaN()
	}
	return floats.Sum(t.data) / float64(len(t.data))
}

// Argmax returns the flat index of the largest element.
func (t *Tensor) Argmax() int {
	return floats.MaxIdx(t.data)
}

// Apply returns a new tensor with fn applied to every element.
func (t *Tensor) Apply(fn func(float64) float64) *Tensor {
	out := t.Clone()
	out.ApplyInPlace(fn)
	return out
}

// ApplyInPlace replaces every element x with fn(x).
func (t *Tensor) ApplyInPlace(fn func(float64) float64) {
	for i, v := range t.data {
		t.data[i] = fn(v)
	}
}

// Clamp returns a copy with every element limited to [lo, hi].
func (t *Tensor) Clamp(lo, hi float64) *Tensor {
	return t.Apply(func(v float64) float64 {
		return math.Min(math.Max(v, lo), hi)
	})
}
