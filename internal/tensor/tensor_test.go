package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	tests := []struct {
		name     string
		shape    Shape
		elements int
		rows     int
	}{
		{"scalar", Shape{}, 1, 0},
		{"vector", Shape{5}, 5, 5},
		{"matrix", Shape{3, 4}, 12, 3},
		{"3d", Shape{2, 3, 4}, 24, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.elements, tt.shape.NumElements())
			assert.Equal(t, tt.rows, tt.shape.Rows())
		})
	}

	assert.True(t, Shape{2, 3}.Equal(Shape{2, 3}))
	assert.False(t, Shape{2, 3}.Equal(Shape{3, 2}))
	assert.False(t, Shape{2}.Equal(Shape{2, 1}))
	assert.Equal(t, Shape{4, 5}, Shape{10, 4, 5}.RowShape())
	assert.Equal(t, Shape{7, 4}, Shape{10, 4}.WithRows(7))
	assert.Error(t, Shape{2, 0}.Validate())
	assert.NoError(t, Shape{2, 1}.Validate())
}

func TestFromSlice(t *testing.T) {
	src := []float64{1, 2, 3, 4, 5, 6}
	x, err := FromSlice(src, Shape{2, 3})
	require.NoError(t, err)

	src[0] = 100
	assert.Equal(t, 1.0, x.At(0), "FromSlice must copy its input")

	_, err = FromSlice(src, Shape{4, 2})
	assert.Error(t, err)
}

func TestElementwise(t *testing.T) {
	a := Vector(1, 2, 3)
	b := Vector(4, 5, 6)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, -3, -3}, diff.Data())

	prod, err := a.Mul(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 10, 18}, prod.Data())

	assert.Equal(t, []float64{2, 4, 6}, a.Scale(2).Data())
	assert.Equal(t, 6.0, a.Sum())
	assert.Equal(t, 2.0, a.Mean())
	assert.Equal(t, 2, a.Argmax())

	_, err = a.Sub(Vector(1, 2))
	assert.Error(t, err)
}

func TestClamp(t *testing.T) {
	x := Vector(-1, 0.5, 2)
	assert.Equal(t, []float64{0, 0.5, 1}, x.Clamp(0, 1).Data())
	assert.Equal(t, []float64{-1, 0.5, 2}, x.Data(), "Clamp must not modify the receiver")
}

func TestRowsAndConcat(t *testing.T) {
	m, err := Matrix([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	assert.Equal(t, 3, m.NumRows())

	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, Shape{2}, row.Shape())
	assert.Equal(t, []float64{3, 4}, row.Data())

	_, err = m.Row(3)
	assert.Error(t, err)

	head, err := m.Slice(0, 1)
	require.NoError(t, err)
	tail, err := m.Slice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, tail.Shape())

	joined, err := Concat(head, tail)
	require.NoError(t, err)
	assert.Equal(t, m.Shape(), joined.Shape())
	assert.Equal(t, m.Data(), joined.Data())

	_, err = Concat(head, Vector(1, 2, 3))
	assert.Error(t, err)

	stacked, err := Stack(Vector(1, 2), Vector(3, 4))
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, stacked.Shape())
}

func TestBinaryRoundTrip(t *testing.T) {
	x, err := FromSlice([]float64{math.Pi, -0.0, math.SmallestNonzeroFloat64, 1e300, 7, 8}, Shape{2, 3})
	require.NoError(t, err)

	blob, err := x.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, blob, 8*(1+2+6))

	y, err := Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, x.Shape(), y.Shape())
	for i := range x.Data() {
		assert.Equal(t, math.Float64bits(x.At(i)), math.Float64bits(y.At(i)), "element %d", i)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	x := Vector(1, 2, 3)
	blob, err := x.MarshalBinary()
	require.NoError(t, err)

	_, err = Decode(blob[:len(blob)-1])
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = Decode(blob[:4])
	assert.ErrorIs(t, err, ErrCorrupt)
}
