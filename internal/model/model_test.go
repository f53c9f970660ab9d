package model

import (
	"io"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Robert-M-Lucas/NeuNet/internal/dataset"
	"github.com/Robert-M-Lucas/NeuNet/internal/metrics"
	"github.com/Robert-M-Lucas/NeuNet/internal/nn"
	"github.com/Robert-M-Lucas/NeuNet/internal/optim"
	"github.com/Robert-M-Lucas/NeuNet/internal/serialization"
	"github.com/Robert-M-Lucas/NeuNet/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(3, 11))
}

func quiet(m *Model) *Model {
	m.SetLogger(log.New(io.Discard, "", 0))
	return m
}

// classifier builds Dense -> Relu -> Dropout -> Dense -> Softmax.
func classifier(t *testing.T, rng *rand.Rand) *Model {
	t.Helper()

	d1, err := nn.NewDense(2, 4, rng)
	require.NoError(t, err)
	relu, err := nn.NewRelu(4)
	require.NoError(t, err)
	drop, err := nn.NewDropout(4, 1, rng)
	require.NoError(t, err)
	d2, err := nn.NewDense(4, 2, rng)
	require.NoError(t, err)
	softmax, err := nn.NewSoftmax(2)
	require.NoError(t, err)

	m, err := New([]nn.Layer{d1, relu, drop, d2, softmax}, nn.NewMeanSquared())
	require.NoError(t, err)
	return quiet(m)
}

// separable returns a small two-class set split by the sign of x0 - x1.
func separable(t *testing.T, rows int) *dataset.Labeled {
	t.Helper()

	rng := rand.New(rand.NewPCG(5, 5))
	inputs := make([][]float64, rows)
	labels := make([][]float64, rows)
	for i := range rows {
		a, b := rng.Float64(), rng.Float64()
		inputs[i] = []float64{a, b}
		if a > b {
			labels[i] = []float64{1, 0}
		} else {
			labels[i] = []float64{0, 1}
		}
	}
	x, err := tensor.Matrix(inputs)
	require.NoError(t, err)
	y, err := tensor.Matrix(labels)
	require.NoError(t, err)
	data, err := dataset.NewLabeled(x, y)
	require.NoError(t, err)
	return data
}

func TestNewRejectsMismatchedLayers(t *testing.T) {
	dense, err := nn.NewDense(3, 4, testRNG())
	require.NoError(t, err)
	softmax, err := nn.NewSoftmax(5)
	require.NoError(t, err)

	_, err = New([]nn.Layer{dense, softmax}, nn.NewMeanSquared())
	var mismatch *ShapeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 0, mismatch.Index)
	assert.Equal(t, 1, mismatch.NextIndex)
	assert.Equal(t, tensor.Shape{4}, mismatch.OutputShape)
	assert.Equal(t, tensor.Shape{5}, mismatch.InputShape)
	assert.Equal(t,
		"Dense Layer [0] with output shape [4] does not match Softmax Activation [1] with input shape [5]",
		err.Error())
}

func TestNewRequiresLayersAndLoss(t *testing.T) {
	_, err := New(nil, nn.NewMeanSquared())
	assert.ErrorIs(t, err, ErrNoLayers)

	relu, err := nn.NewRelu(2)
	require.NoError(t, err)
	_, err = New([]nn.Layer{relu}, nil)
	assert.ErrorIs(t, err, ErrNoLoss)
}

func TestModelShapes(t *testing.T) {
	m := classifier(t, testRNG())
	assert.Equal(t, tensor.Shape{2}, m.InputShape())
	assert.Equal(t, tensor.Shape{2}, m.OutputShape())
	assert.Len(t, m.Layers(), 5)
	assert.Equal(t, nn.KindMeanSquared, m.Loss().Kind())
}

func TestForwardRejectsWrongInput(t *testing.T) {
	m := classifier(t, testRNG())

	_, err := m.Forward(tensor.Vector(1, 2, 3))
	var layerErr *LayerError
	require.ErrorAs(t, err, &layerErr)
	assert.Equal(t, 0, layerErr.Index)
	assert.Equal(t, "forward", layerErr.Op)

	var shapeErr *nn.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, tensor.Shape{3}, shapeErr.Got)
}

func TestForwardIsDeterministic(t *testing.T) {
	m := classifier(t, testRNG())
	x := tensor.Vector(0.3, -0.7)

	a, err := m.Forward(x)
	require.NoError(t, err)
	b, err := m.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, a.Data(), b.Data())
	assert.InDelta(t, 1.0, a.Sum(), 1e-12)
}

func TestBackwardAfterForward(t *testing.T) {
	m := classifier(t, testRNG())

	_, err := m.ForwardWithContext(tensor.Vector(0.5, 0.25))
	require.NoError(t, err)
	grad, err := m.Backward(tensor.Vector(0.1, -0.1), 0.01)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2}, grad.Shape())

	// The context is consumed by the first Backward.
	_, err = m.Backward(tensor.Vector(0.1, -0.1), 0.01)
	assert.ErrorIs(t, err, nn.ErrNoContext)
}

func TestBackwardWithoutContext(t *testing.T) {
	m := classifier(t, testRNG())

	_, err := m.Forward(tensor.Vector(0.5, 0.25))
	require.NoError(t, err)
	_, err = m.Backward(tensor.Vector(0.1, -0.1), 0.01)

	var layerErr *LayerError
	require.ErrorAs(t, err, &layerErr)
	assert.Equal(t, "backward", layerErr.Op)
	assert.Equal(t, 4, layerErr.Index)
	assert.ErrorIs(t, err, nn.ErrNoContext)
}

func TestBackwardErrorKeepsLaterUpdates(t *testing.T) {
	rng := testRNG()
	first, err := nn.NewDense(2, 2, rng)
	require.NoError(t, err)
	relu, err := nn.NewRelu(2)
	require.NoError(t, err)
	last, err := nn.NewDense(2, 2, rng)
	require.NoError(t, err)
	m, err := New([]nn.Layer{first, relu, last}, nn.NewMeanSquared())
	require.NoError(t, err)
	quiet(m)

	_, err = m.ForwardWithContext(tensor.Vector(0.5, 0.25))
	require.NoError(t, err)
	// Drop the middle layer's context so the walk fails there.
	_, err = relu.Backward(tensor.Vector(0, 0), 0)
	require.NoError(t, err)

	firstWeights, lastBias := first.Weights(), last.Bias()
	_, err = m.Backward(tensor.Vector(0.1, -0.1), 0.5)

	var layerErr *LayerError
	require.ErrorAs(t, err, &layerErr)
	assert.Equal(t, 1, layerErr.Index)
	assert.ErrorIs(t, err, nn.ErrNoContext)

	// The last layer already applied its update; the first was never reached.
	assert.InDeltaSlice(t,
		[]float64{lastBias.AtVec(0) - 0.05, lastBias.AtVec(1) + 0.05},
		last.Bias().RawVector().Data, 1e-12)
	assert.Equal(t, firstWeights.RawMatrix().Data, first.Weights().RawMatrix().Data)
	_, err = first.Backward(tensor.Vector(0.1, -0.1), 0.5)
	assert.NoError(t, err, "first layer context must still be pending")
}

func TestPredictStacksRows(t *testing.T) {
	m := classifier(t, testRNG())
	data := separable(t, 40)

	predictions, err := m.Predict(data.Inputs)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{40, 2}, predictions.Shape())

	row, err := m.Forward(tensor.Vector(data.Inputs.At(2), data.Inputs.At(3)))
	require.NoError(t, err)
	second, err := predictions.Row(1)
	require.NoError(t, err)
	assert.Equal(t, row.Data(), second.Data())
}

func TestScoreMatchesPredict(t *testing.T) {
	m := classifier(t, testRNG())
	data := separable(t, 30)

	predictions, err := m.Predict(data.Inputs)
	require.NoError(t, err)
	correct := 0
	for i := range data.NumRows() {
		p, err := predictions.Row(i)
		require.NoError(t, err)
		_, y, err := data.Example(i)
		require.NoError(t, err)
		if p.Argmax() == y.Argmax() {
			correct++
		}
	}

	accuracy, err := m.Score(data, metrics.ArgmaxAccuracy)
	require.NoError(t, err)
	assert.InDelta(t, float64(correct)/30, accuracy, 1e-12)
}

func TestTrainStepClampsPredictions(t *testing.T) {
	relu, err := nn.NewRelu(2)
	require.NoError(t, err)
	m, err := New([]nn.Layer{relu}, nn.NewMeanSquared())
	require.NoError(t, err)

	// Relu yields [5, 0]; clamping maps it to [1-1e-7, 1e-7].
	loss, err := m.TrainStep(tensor.Vector(5, -3), tensor.Vector(1, 0), 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 1e-14, loss, 1e-20)
}

func TestTrainReducesLoss(t *testing.T) {
	m := classifier(t, testRNG())
	data := separable(t, 40)

	report, err := m.Train(data, optim.TrainingRateConfig{Epochs: 60, InitialRate: 0.2, FinalRate: 0.05})
	require.NoError(t, err)
	require.Len(t, report.Epochs, 60)

	assert.InDelta(t, 0.2, report.Epochs[0].Rate, 1e-12)
	assert.InDelta(t, 0.05, report.Epochs[59].Rate, 1e-12)
	assert.Less(t, report.FinalLoss(), report.Epochs[0].AvgLoss)
	assert.Positive(t, int64(report.AvgEpoch))

	accuracy, err := m.Score(data, metrics.ArgmaxAccuracy)
	require.NoError(t, err)
	assert.Greater(t, accuracy, 0.5)
}

func TestTrainLogsEveryEpoch(t *testing.T) {
	m := classifier(t, testRNG())
	var out strings.Builder
	m.SetLogger(log.New(&out, "", 0))

	_, err := m.Train(separable(t, 8), optim.TrainingRateConfig{Epochs: 3, InitialRate: 0.1, FinalRate: 0.01})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[2], "epoch=3/3 "))
	assert.Contains(t, lines[0], "avg_loss=")
}

func TestTrainRejectsBadConfig(t *testing.T) {
	m := classifier(t, testRNG())
	_, err := m.Train(separable(t, 4), optim.TrainingRateConfig{Epochs: 0, InitialRate: 0.1, FinalRate: 0.1})
	assert.ErrorIs(t, err, optim.ErrInvalidSchedule)
}

func TestCrossValidate(t *testing.T) {
	data := separable(t, 25)
	var generated int
	generate := func() (*Model, error) {
		generated++
		return classifier(t, rand.New(rand.NewPCG(uint64(generated), 1))), nil
	}

	report, err := CrossValidate(generate, data, 4,
		optim.TrainingRateConfig{Epochs: 5, InitialRate: 0.1, FinalRate: 0.05},
		metrics.ArgmaxAccuracy, WithLogger(log.New(io.Discard, "", 0)))
	require.NoError(t, err)

	assert.Equal(t, 4, generated)
	require.Len(t, report.Folds, 4)

	// 25 rows in 4 folds: 6, 6, 6 and 7.
	testRows := 0
	for k, fold := range report.Folds {
		assert.Equal(t, k, fold.Fold)
		assert.Equal(t, 25, fold.TrainRows+fold.TestRows)
		assert.GreaterOrEqual(t, fold.Accuracy, 0.0)
		assert.LessOrEqual(t, fold.Accuracy, 1.0)
		testRows += fold.TestRows
	}
	assert.Equal(t, 25, testRows)
	assert.Equal(t, 7, report.Folds[3].TestRows)
	assert.GreaterOrEqual(t, report.StdDev, 0.0)
}

func TestTrainingSetExcludesHeldOutFold(t *testing.T) {
	data := separable(t, 9)
	parts, err := data.Folds(3)
	require.NoError(t, err)

	train, err := trainingSet(parts, 1)
	require.NoError(t, err)
	require.Equal(t, 6, train.NumRows())

	held := map[[2]float64]bool{}
	for i := range parts[1].NumRows() {
		x, _, err := parts[1].Example(i)
		require.NoError(t, err)
		held[[2]float64{x.At(0), x.At(1)}] = true
	}
	for i := range train.NumRows() {
		x, _, err := train.Example(i)
		require.NoError(t, err)
		assert.False(t, held[[2]float64{x.At(0), x.At(1)}], "row %d leaked from the held-out fold", i)
	}
}

func TestCrossValidateRejectsFolds(t *testing.T) {
	data := separable(t, 5)
	generate := func() (*Model, error) { return classifier(t, testRNG()), nil }
	cfg := optim.TrainingRateConfig{Epochs: 1, InitialRate: 0.1, FinalRate: 0.1}

	for _, folds := range []int{0, 1, 6} {
		_, err := CrossValidate(generate, data, folds, cfg, metrics.ArgmaxAccuracy)
		assert.ErrorIs(t, err, ErrInvalidFolds, "folds=%d", folds)
	}
}

func TestCrossValidateRejectsMissingModel(t *testing.T) {
	data := separable(t, 6)
	generate := func() (*Model, error) { return nil, nil }
	cfg := optim.TrainingRateConfig{Epochs: 1, InitialRate: 0.1, FinalRate: 0.1}

	report, err := CrossValidate(generate, data, 3, cfg, metrics.ArgmaxAccuracy)
	assert.ErrorIs(t, err, ErrNoModel)
	assert.Nil(t, report)
}

func TestCrossValidateLogsToOneLogger(t *testing.T) {
	data := separable(t, 9)
	// Fold models log training to io.Discard.
	generate := func() (*Model, error) { return classifier(t, testRNG()), nil }
	cfg := optim.TrainingRateConfig{Epochs: 1, InitialRate: 0.1, FinalRate: 0.1}

	var out strings.Builder
	_, err := CrossValidate(generate, data, 3, cfg, metrics.ArgmaxAccuracy, WithLogger(log.New(&out, "", 0)))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "fold=1/3 "))
	assert.True(t, strings.HasPrefix(lines[2], "fold=3/3 "))
	assert.True(t, strings.HasPrefix(lines[3], "folds=3 mean_accuracy="))
}

func TestSaveLoadWithWeights(t *testing.T) {
	m := classifier(t, testRNG())
	_, err := m.Train(separable(t, 10), optim.TrainingRateConfig{Epochs: 2, InitialRate: 0.1, FinalRate: 0.05})
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "model")
	require.NoError(t, m.SaveWithWeights(dir, false))

	loaded, err := LoadWithWeights(dir, testRNG())
	require.NoError(t, err)
	quiet(loaded)

	x := tensor.Vector(0.9, 0.1)
	want, err := m.Forward(x)
	require.NoError(t, err)
	got, err := loaded.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, want.Data(), got.Data())

	wantCfg, err := m.Config()
	require.NoError(t, err)
	gotCfg, err := loaded.Config()
	require.NoError(t, err)
	assert.Equal(t, wantCfg, gotCfg)
}

func TestSaveWithoutWeights(t *testing.T) {
	m := classifier(t, testRNG())
	dir := filepath.Join(t.TempDir(), "model")
	require.NoError(t, m.Save(dir, false))

	_, err := os.Stat(filepath.Join(dir, serialization.WeightsDir))
	assert.True(t, os.IsNotExist(err))

	_, err = LoadWithWeights(dir, testRNG())
	assert.ErrorIs(t, err, serialization.ErrMissingWeights)

	loaded, err := Load(dir, testRNG())
	require.NoError(t, err)
	assert.Equal(t, m.InputShape(), loaded.InputShape())
	assert.Len(t, loaded.Layers(), 5)
}

func TestSaveRefusesExistingDirectory(t *testing.T) {
	m := classifier(t, testRNG())
	dir := t.TempDir()

	assert.ErrorIs(t, m.SaveWithWeights(dir, false), serialization.ErrModelExists)
	require.NoError(t, m.SaveWithWeights(dir, true))
	assert.True(t, serialization.HasWeights(dir))
}

func TestSaveLogs(t *testing.T) {
	m := classifier(t, testRNG())
	var out strings.Builder
	m.SetLogger(log.New(&out, "", 0))

	dir := filepath.Join(t.TempDir(), "m")
	require.NoError(t, m.SaveWithWeights(dir, false))
	assert.Equal(t, "Model '"+dir+"' saved (with weights)\n", out.String())
}

func TestLoadMissingConfig(t *testing.T) {
	_, err := Load(t.TempDir(), testRNG())
	assert.ErrorIs(t, err, serialization.ErrMissingConfig)
}

func TestConfigListsLayerKinds(t *testing.T) {
	m := classifier(t, testRNG())
	cfg, err := m.Descriptor()
	require.NoError(t, err)

	kinds := make([]string, len(cfg.Layers))
	for i, d := range cfg.Layers {
		kinds[i] = d.Kind
	}
	assert.Equal(t, []string{"dense", "relu", "dropout", "dense", "softmax"}, kinds)
	assert.Equal(t, "mean_squared", cfg.Loss.Kind)
	assert.Equal(t, serialization.FormatVersion, cfg.FormatVersion)
}
