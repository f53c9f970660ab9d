package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/Robert-M-Lucas/NeuNet/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// DenseConfig holds the persisted hyperparameters of a Dense layer.
type DenseConfig struct {
	InputSize  int `json:"input_size"`
	OutputSize int `json:"output_size"`
}

// Dense implements a fully connected layer.
//
// Performs the transformation: y = x · W + b
// where:
//   - x is the input vector with InputSize elements
//   - W is the weight matrix with shape [InputSize, OutputSize]
//   - b is the bias vector with OutputSize elements
//
// Example:
//
//	rng := rand.New(rand.NewPCG(1, 2))
//	layer, _ := nn.NewDense(54, 27, rng)
//	out, _ := layer.Forward(x, false) // shape: [27]
type Dense struct {
	config  DenseConfig
	weights *mat.Dense    // [input_size, output_size]
	bias    *mat.VecDense // [output_size]
	context slot[*mat.VecDense]
}

// NewDense creates a Dense layer with NormalWeights(DefaultVarianceTarget)
// and zero biases.
func NewDense(inputSize, outputSize int, rng *rand.Rand) (*Dense, error) {
	return NewDenseWith(inputSize, outputSize, NormalWeights(DefaultVarianceTarget, rng), 0)
}

// NewDenseWith creates a Dense layer using init for the weights and a
// constant initial bias.
func NewDenseWith(inputSize, outputSize int, init WeightInit, bias float64) (*Dense, error) {
	if inputSize <= 0 || outputSize <= 0 {
		return nil, fmt.Errorf("dense layer sizes must be positive, got %dx%d", inputSize, outputSize)
	}
	weights, err := init(inputSize, outputSize)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dense weights: %w", err)
	}
	biasData := make([]float64, outputSize)
	for i := range biasData {
		biasData[i] = bias
	}
	return &Dense{
		config:  DenseConfig{InputSize: inputSize, OutputSize: outputSize},
		weights: weights,
		bias:    mat.NewVecDense(outputSize, biasData),
	}, nil
}

// Name returns "Dense Layer".
func (d *Dense) Name() string { return "Dense Layer" }

// Kind returns KindDense.
func (d *Dense) Kind() Kind { return KindDense }

// InputShape returns [InputSize].
func (d *Dense) InputShape() tensor.Shape { return tensor.Shape{d.config.InputSize} }

// OutputShape returns [OutputSize].
func (d *Dense) OutputShape() tensor.Shape { return tensor.Shape{d.config.OutputSize} }

// Config returns the layer's DenseConfig.
func (d *Dense) Config() any { return d.config }

// Forward computes x · W + b. With saveContext the input is kept for Backward.
func (d *Dense) Forward(input *tensor.Tensor, saveContext bool) (*tensor.Tensor, error) {
	data, err := flatten(d.Name(), d.InputShape(), input)
	if err != nil {
		return nil, err
	}
	x := mat.NewVecDense(d.config.InputSize, append([]float64(nil), data...))

	var out mat.VecDense
	out.MulVec(d.weights.T(), x)
	out.AddVec(&out, d.bias)

	if saveContext {
		d.context.save(x)
	}
	return tensor.New(d.OutputShape(), vecData(&out))
}

// Backward applies the updates
//
//	b    -= rate * gradient
//	W[i] -= rate * input[i] * gradient
//
// using the input saved by the last Forward(…, true), then returns
// W · gradient with the updated weights. The saved input is consumed even
// when the gradient is rejected.
func (d *Dense) Backward(gradient *tensor.Tensor, rate float64) (*tensor.Tensor, error) {
	x, ok := d.context.take()
	if !ok {
		return nil, noContext(d.Name())
	}
	data, err := flatten(d.Name(), d.OutputShape(), gradient)
	if err != nil {
		return nil, err
	}
	g := mat.NewVecDense(d.config.OutputSize, append([]float64(nil), data...))

	d.bias.AddScaledVec(d.bias, -rate, g)
	d.weights.RankOne(d.weights, -rate, x, g)

	var inputGrad mat.VecDense
	inputGrad.MulVec(d.weights, g)
	return tensor.New(d.InputShape(), vecData(&inputGrad))
}

// Weights returns a copy of the weight matrix.
func (d *Dense) Weights() *mat.Dense {
	return mat.DenseCopyOf(d.weights)
}

// Bias returns a copy of the bias vector.
func (d *Dense) Bias() *mat.VecDense {
	return mat.VecDenseCopyOf(d.bias)
}

// StateDict returns [weights, bias].
func (d *Dense) StateDict() []*tensor.Tensor {
	w := mat.DenseCopyOf(d.weights).RawMatrix().Data
	weights, _ := tensor.New(tensor.Shape{d.config.InputSize, d.config.OutputSize}, w)
	bias, _ := tensor.New(tensor.Shape{d.config.OutputSize}, vecData(d.bias))
	return []*tensor.Tensor{weights, bias}
}

// LoadStateDict loads [weights, bias].
func (d *Dense) LoadStateDict(parts []*tensor.Tensor) error {
	if len(parts) != 2 {
		return fmt.Errorf("%s: expected 2 parts (weights, bias), got %d", d.Name(), len(parts))
	}

	expectedWeightShape := tensor.Shape{d.config.InputSize, d.config.OutputSize}
	if !parts[0].Shape().Equal(expectedWeightShape) {
		return fmt.Errorf("weight shape mismatch: expected %v, got %v", expectedWeightShape, parts[0].Shape())
	}
	expectedBiasShape := tensor.Shape{d.config.OutputSize}
	if !parts[1].Shape().Equal(expectedBiasShape) {
		return fmt.Errorf("bias shape mismatch: expected %v, got %v", expectedBiasShape, parts[1].Shape())
	}

	d.weights = mat.NewDense(d.config.InputSize, d.config.OutputSize, append([]float64(nil), parts[0].Data()...))
	d.bias = mat.NewVecDense(d.config.OutputSize, append([]float64(nil), parts[1].Data()...))
	return nil
}

// vecData copies a vector's elements into a fresh slice.
func vecData(v mat.Vector) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}
