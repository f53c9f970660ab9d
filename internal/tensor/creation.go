package tensor

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	t := tensor.Zeros(Shape{3, 4})
func Zeros(shape Shape) *Tensor {
	return &Tensor{shape: shape.Clone(), data: make([]float64, shape.NumElements())}
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Tensor {
	return Full(shape, 1)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full(Shape{3, 3}, 3.14)
func Full(shape Shape, value float64) *Tensor {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// OneHot creates a vector of length classes with a 1 at index class.
func OneHot(class, classes int) *Tensor {
	t := Zeros(Shape{classes})
	t.data[class] = 1
	return t
}
