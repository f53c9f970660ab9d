package tensor

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// maxRank bounds the rank accepted when decoding, so a corrupted header
// cannot trigger a huge allocation.
const maxRank = 32

// ErrCorrupt is returned when a binary tensor blob cannot be decoded.
var ErrCorrupt = errors.New("corrupt tensor data")

// MarshalBinary encodes the tensor as raw little-endian bytes.
//
// Layout:
//
//	[8 bytes: rank (uint64)]
//	[8 bytes per dim: dimension sizes (uint64)]
//	[8 bytes per element: IEEE-754 float64 bits]
//
// Encoding is exact: decoding yields bit-identical values.
func (t *Tensor) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 8*(1+len(t.shape)+len(t.data)))
	binary.LittleEndian.PutUint64(buf[0:8], uint64(len(t.shape)))
	off := 8
	for _, dim := range t.shape {
		binary.LittleEndian.PutUint64(buf[off:off+8], uint64(dim))
		off += 8
	}
	for _, v := range t.data {
		binary.LittleEndian.PutUint64(buf[off:off+8], math.Float64bits(v))
		off += 8
	}
	return buf, nil
}

// UnmarshalBinary decodes bytes produced by MarshalBinary into t.
func (t *Tensor) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorrupt, len(data))
	}
	rank := binary.LittleEndian.Uint64(data[0:8])
	if rank > maxRank {
		return fmt.Errorf("%w: rank %d exceeds %d", ErrCorrupt, rank, maxRank)
	}
	off := 8
	if len(data) < off+8*int(rank) {
		return fmt.Errorf("%w: truncated shape", ErrCorrupt)
	}
	shape := make(Shape, rank)
	for i := range shape {
		dim := binary.LittleEndian.Uint64(data[off : off+8])
		if dim > math.MaxInt32 {
			return fmt.Errorf("%w: dimension %d too large (%d)", ErrCorrupt, i, dim)
		}
		shape[i] = int(dim)
		off += 8
	}
	n := shape.NumElements()
	if len(data)-off != 8*n {
		return fmt.Errorf("%w: shape %v needs %d data bytes, got %d", ErrCorrupt, shape, 8*n, len(data)-off)
	}
	values := make([]float64, n)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[off : off+8]))
		off += 8
	}
	t.shape = shape
	t.data = values
	return nil
}

// Decode is a convenience wrapper around UnmarshalBinary.
func Decode(data []byte) (*Tensor, error) {
	t := &Tensor{}
	if err := t.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return t, nil
}
