package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Robert-M-Lucas/NeuNet/internal/tensor"
)

// CSVOptions controls how LoadCSV interprets a file.
type CSVOptions struct {
	Header      bool // Skip the first record
	LabelColumn int  // Column holding the integer class label; negative counts from the end
	Classes     int  // One-hot width; 0 infers max(label)+1
}

// LoadCSV loads a tabular dataset from a CSV file.
//
// Every column except the label column becomes a float64 feature; the label
// must be an integer in [0, Classes).
//
// CSV Format:
//
//	f0,f1,...,label
//	0.1,3,...,1
func LoadCSV(filename string, opts CSVOptions) (*Labeled, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadCSV(file, opts)
}

// ReadCSV is LoadCSV over an io.Reader.
func ReadCSV(r io.Reader, opts CSVOptions) (*Labeled, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if opts.Header {
		if len(records) == 0 {
			return nil, fmt.Errorf("CSV file is empty or missing header")
		}
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file has no data rows")
	}

	columns := len(records[0])
	if columns < 2 {
		return nil, fmt.Errorf("CSV needs at least one feature and a label, got %d columns", columns)
	}
	labelCol := opts.LabelColumn
	if labelCol < 0 {
		labelCol += columns
	}
	if labelCol < 0 || labelCol >= columns {
		return nil, fmt.Errorf("label column %d out of range for %d columns", opts.LabelColumn, columns)
	}

	features := columns - 1
	inputs := make([]float64, 0, len(records)*features)
	labels := make([]int, len(records))
	maxLabel := 0

	for i, record := range records {
		if len(record) != columns {
			return nil, fmt.Errorf("invalid record length at row %d: got %d, want %d", i+1, len(record), columns)
		}
		for j, field := range record {
			if j == labelCol {
				label, err := strconv.Atoi(strings.TrimSpace(field))
				if err != nil {
					return nil, fmt.Errorf("invalid label at row %d: %w", i+1, err)
				}
				if label < 0 {
					return nil, fmt.Errorf("negative label at row %d: %d", i+1, label)
				}
				labels[i] = label
				maxLabel = max(maxLabel, label)
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value at row %d, column %d: %w", i+1, j+1, err)
			}
			inputs = append(inputs, v)
		}
	}

	classes := opts.Classes
	if classes == 0 {
		classes = maxLabel + 1
	}
	if maxLabel >= classes {
		return nil, fmt.Errorf("label %d out of range [0, %d)", maxLabel, classes)
	}

	oneHot := make([]float64, len(records)*classes)
	for i, label := range labels {
		oneHot[i*classes+label] = 1
	}

	x, err := tensor.New(tensor.Shape{len(records), features}, inputs)
	if err != nil {
		return nil, err
	}
	y, err := tensor.New(tensor.Shape{len(records), classes}, oneHot)
	if err != nil {
		return nil, err
	}
	return NewLabeled(x, y)
}
