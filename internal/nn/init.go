package nn

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultVarianceTarget is the output variance NormalWeights aims for.
const DefaultVarianceTarget = 0.5

// WeightInit produces a fanIn×fanOut weight matrix.
type WeightInit func(fanIn, fanOut int) (*mat.Dense, error)

// EqualWeights sets every weight to 1/fanIn.
func EqualWeights() WeightInit {
	return func(fanIn, fanOut int) (*mat.Dense, error) {
		data := make([]float64, fanIn*fanOut)
		for i := range data {
			data[i] = 1 / float64(fanIn)
		}
		return mat.NewDense(fanIn, fanOut, data), nil
	}
}

// NormalWeights draws weights from N(0, varianceTarget/fanIn).
//
// The variances of fanIn products add up, so dividing the target by fanIn
// keeps the output variance near varianceTarget for any layer width.
// A nil rng draws from the process-wide generator.
func NormalWeights(varianceTarget float64, rng *rand.Rand) WeightInit {
	return func(fanIn, fanOut int) (*mat.Dense, error) {
		if varianceTarget <= 0 {
			return nil, fmt.Errorf("variance target must be positive, got %v", varianceTarget)
		}
		dist := distuv.Normal{
			Mu:    0,
			Sigma: math.Sqrt(varianceTarget / float64(fanIn)),
		}
		if rng != nil {
			dist.Src = rng
		}
		data := make([]float64, fanIn*fanOut)
		for i := range data {
			data[i] = dist.Rand()
		}
		return mat.NewDense(fanIn, fanOut, data), nil
	}
}

// CustomWeights uses a copy of w, which must be fanIn×fanOut.
func CustomWeights(w mat.Matrix) WeightInit {
	return func(fanIn, fanOut int) (*mat.Dense, error) {
		r, c := w.Dims()
		if r != fanIn || c != fanOut {
			return nil, fmt.Errorf("custom weights are %dx%d, layer needs %dx%d", r, c, fanIn, fanOut)
		}
		return mat.DenseCopyOf(w), nil
	}
}
