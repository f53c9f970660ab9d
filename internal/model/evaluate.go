package model

import (
	"fmt"
	"log"

	"github.com/Robert-M-Lucas/NeuNet/internal/dataset"
	"github.com/Robert-M-Lucas/NeuNet/internal/metrics"
	"github.com/Robert-M-Lucas/NeuNet/internal/optim"
	"gonum.org/v1/gonum/stat"
)

// Generator returns a fresh, untrained model.
type Generator func() (*Model, error)

// FoldResult is the outcome of one cross-validation fold.
type FoldResult struct {
	Fold      int          // 0-based fold index
	TrainRows int          // Rows trained on
	TestRows  int          // Rows held out
	Accuracy  float64      // Mean score over the held-out rows
	Training  *TrainReport // Training statistics of this fold's model
}

// CrossValidationReport summarizes a k-fold run.
type CrossValidationReport struct {
	Folds  []FoldResult
	Mean   float64 // Mean accuracy across folds
	StdDev float64 // Sample standard deviation of fold accuracies
}

// CrossValidateOption configures CrossValidate.
type CrossValidateOption func(*crossValidateOptions)

type crossValidateOptions struct {
	logger *log.Logger
}

// WithLogger sends the per-fold and summary lines to logger instead of
// log.Default(). Each fold's model keeps its own logger for training output.
func WithLogger(logger *log.Logger) CrossValidateOption {
	return func(o *crossValidateOptions) {
		o.logger = logger
	}
}

// CrossValidate runs k-fold cross-validation.
//
// data is split by dataset.Partition into folds contiguous chunks. For each
// fold k a new model is requested from generate, trained on every other
// fold concatenated in order, and scored on fold k.
//
// folds must be in [2, data.NumRows()]. A generator returning a nil model
// without an error fails with ErrNoModel.
func CrossValidate(
	generate Generator,
	data *dataset.Labeled,
	folds int,
	cfg optim.TrainingRateConfig,
	score metrics.ScoreFunc,
	opts ...CrossValidateOption,
) (*CrossValidationReport, error) {
	options := &crossValidateOptions{logger: log.Default()}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger

	if folds < 2 || folds > data.NumRows() {
		return nil, fmt.Errorf("%w: %d folds for %d rows", ErrInvalidFolds, folds, data.NumRows())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	parts, err := data.Folds(folds)
	if err != nil {
		return nil, err
	}

	report := &CrossValidationReport{Folds: make([]FoldResult, 0, folds)}
	accuracies := make([]float64, 0, folds)

	for k, test := range parts {
		train, err := trainingSet(parts, k)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", k, err)
		}

		m, err := generate()
		if err != nil {
			return nil, fmt.Errorf("fold %d: failed to generate model: %w", k, err)
		}
		if m == nil {
			return nil, fmt.Errorf("fold %d: %w", k, ErrNoModel)
		}

		training, err := m.Train(train, cfg)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", k, err)
		}

		accuracy, err := m.Score(test, score)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", k, err)
		}

		logger.Printf("fold=%d/%d train_rows=%d test_rows=%d accuracy=%.4f",
			k+1, folds, train.NumRows(), test.NumRows(), accuracy)

		report.Folds = append(report.Folds, FoldResult{
			Fold:      k,
			TrainRows: train.NumRows(),
			TestRows:  test.NumRows(),
			Accuracy:  accuracy,
			Training:  training,
		})
		accuracies = append(accuracies, accuracy)
	}

	report.Mean = stat.Mean(accuracies, nil)
	report.StdDev = stat.StdDev(accuracies, nil)
	logger.Printf("folds=%d mean_accuracy=%.4f stddev=%.4f", folds, report.Mean, report.StdDev)

	return report, nil
}

// trainingSet concatenates every fold except skip, in order.
func trainingSet(parts []*dataset.Labeled, skip int) (*dataset.Labeled, error) {
	rest := make([]*dataset.Labeled, 0, len(parts)-1)
	for i, p := range parts {
		if i != skip {
			rest = append(rest, p)
		}
	}
	return dataset.Concat(rest...)
}
