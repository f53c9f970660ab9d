package tensor

import "fmt"

// NumRows returns the size of the leading axis.
func (t *Tensor) NumRows() int {
	return t.shape.Rows()
}

// Row returns a copy of slice i along the leading axis.
//
// For a tensor of shape [n, d...] the result has shape [d...].
func (t *Tensor) Row(i int) (*Tensor, error) {
	rows := t.shape.Rows()
	if i < 0 || i >= rows {
		return nil, fmt.Errorf("row %d out of range [0, %d)", i, rows)
	}
	rowShape := t.shape.RowShape()
	size := rowShape.NumElements()
	return FromSlice(t.data[i*size:(i+1)*size], rowShape)
}

// Slice returns a copy of rows [start, end) along the leading axis.
func (t *Tensor) Slice(start, end int) (*Tensor, error) {
	rows := t.shape.Rows()
	if start < 0 || end > rows || start > end {
		return nil, fmt.Errorf("row range [%d, %d) out of bounds for %d rows", start, end, rows)
	}
	size := t.shape.RowShape().NumElements()
	return FromSlice(t.data[start*size:end*size], t.shape.WithRows(end-start))
}

// Concat joins tensors along the leading axis.
//
// All inputs must agree on every dimension except the first.
func Concat(parts ...*Tensor) (*Tensor, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("Concat: no tensors")
	}
	rowShape := parts[0].shape.RowShape()
	rows := 0
	for i, p := range parts {
		if len(p.shape) == 0 {
			return nil, fmt.Errorf("Concat: tensor %d is a scalar", i)
		}
		if !p.shape.RowShape().Equal(rowShape) {
			return nil, fmt.Errorf("Concat: tensor %d has row shape %v, want %v", i, p.shape.RowShape(), rowShape)
		}
		rows += p.shape.Rows()
	}
	data := make([]float64, 0, rows*rowShape.NumElements())
	for _, p := range parts {
		data = append(data, p.data...)
	}
	return New(parts[0].shape.WithRows(rows), data)
}

// Stack joins equally shaped tensors along a new leading axis.
func Stack(rows ...*Tensor) (*Tensor, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("Stack: no tensors")
	}
	rowShape := rows[0].shape
	data := make([]float64, 0, len(rows)*rowShape.NumElements())
	for i, r := range rows {
		if !r.shape.Equal(rowShape) {
			return nil, fmt.Errorf("Stack: tensor %d has shape %v, want %v", i, r.shape, rowShape)
		}
		data = append(data, r.data...)
	}
	return New(append(Shape{len(rows)}, rowShape...), data)
}
