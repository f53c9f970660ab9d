// Copyright 2025 NeuNet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package model

import (
	"log"
	"math/rand/v2"

	"github.com/Robert-M-Lucas/NeuNet/internal/dataset"
	"github.com/Robert-M-Lucas/NeuNet/internal/metrics"
	"github.com/Robert-M-Lucas/NeuNet/internal/model"
	"github.com/Robert-M-Lucas/NeuNet/internal/optim"
	"github.com/Robert-M-Lucas/NeuNet/nn"
	"github.com/Robert-M-Lucas/NeuNet/tensor"
)

// Model is an ordered pipeline of layers trained against one loss.
type Model = model.Model

// Errors.
var (
	ErrNoLayers     = model.ErrNoLayers
	ErrNoLoss       = model.ErrNoLoss
	ErrInvalidFolds = model.ErrInvalidFolds
	ErrNoModel      = model.ErrNoModel
)

// ShapeMismatchError reports adjacent layers whose shapes do not chain.
type ShapeMismatchError = model.ShapeMismatchError

// LayerError attributes a forward or backward failure to one layer.
type LayerError = model.LayerError

// New assembles layers and loss, validating every adjacent shape pair.
//
// Example:
//
//	m, err := model.New([]nn.Layer{dense, relu, softmax}, nn.NewMeanSquared())
func New(layers []nn.Layer, loss nn.Loss) (*Model, error) {
	return model.New(layers, loss)
}

// Training

// PredictionFloor and PredictionCeil bound predictions seen by the loss.
const (
	PredictionFloor = model.PredictionFloor
	PredictionCeil  = model.PredictionCeil
)

// TrainingRateConfig holds the epoch count and the first and last rates.
type TrainingRateConfig = optim.TrainingRateConfig

// TrainReport is returned by Model.Train.
type TrainReport = model.TrainReport

// EpochStats summarizes one training epoch.
type EpochStats = model.EpochStats

// Evaluation

// Generator returns a fresh, untrained model for each fold.
type Generator = model.Generator

// FoldResult is the outcome of one cross-validation fold.
type FoldResult = model.FoldResult

// CrossValidationReport summarizes a k-fold run.
type CrossValidationReport = model.CrossValidationReport

// ScoreFunc scores one prediction against its label.
type ScoreFunc = metrics.ScoreFunc

// ArgmaxAccuracy scores 1 when prediction and one-hot label agree on the
// largest position, 0 otherwise.
func ArgmaxAccuracy(predicted, actual *tensor.Tensor) float64 {
	return metrics.ArgmaxAccuracy(predicted, actual)
}

// CrossValidateOption configures CrossValidate.
type CrossValidateOption = model.CrossValidateOption

// WithLogger sends CrossValidate's fold and summary lines to logger.
func WithLogger(logger *log.Logger) CrossValidateOption {
	return model.WithLogger(logger)
}

// CrossValidate runs k-fold cross-validation over data.
func CrossValidate(
	generate Generator,
	data *LabeledData,
	folds int,
	cfg TrainingRateConfig,
	score ScoreFunc,
	opts ...CrossValidateOption,
) (*CrossValidationReport, error) {
	return model.CrossValidate(generate, data, folds, cfg, score, opts...)
}

// Persistence

// Load rebuilds an untrained model from dir/config.json.
func Load(dir string, rng *rand.Rand) (*Model, error) {
	return model.Load(dir, rng)
}

// LoadWithWeights rebuilds a model and restores its trained parameters.
func LoadWithWeights(dir string, rng *rand.Rand) (*Model, error) {
	return model.LoadWithWeights(dir, rng)
}

// Data

// LabeledData pairs inputs with one-hot labels, indexed by row.
type LabeledData = dataset.Labeled

// CSVOptions controls LoadCSV.
type CSVOptions = dataset.CSVOptions

// NewLabeledData validates that inputs and labels have the same rows.
func NewLabeledData(inputs, labels *tensor.Tensor) (*LabeledData, error) {
	return dataset.NewLabeled(inputs, labels)
}

// LoadCSV reads a numeric CSV file whose label column holds class indices.
func LoadCSV(filename string, opts CSVOptions) (*LabeledData, error) {
	return dataset.LoadCSV(filename, opts)
}
