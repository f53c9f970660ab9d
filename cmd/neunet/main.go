// Package main provides the NeuNet CLI.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Robert-M-Lucas/NeuNet/model"
	"github.com/Robert-M-Lucas/NeuNet/optim"
)

const version = "v0.1.0"

func main() {
	log.SetFlags(log.Ltime)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "version":
		fmt.Printf("NeuNet %s\n", version)
	case "train":
		err = runTrain(os.Args[2:])
	case "evaluate":
		err = runEvaluate(os.Args[2:])
	case "inspect":
		err = runInspect(os.Args[2:])
	case "help", "-h", "-help", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Println("NeuNet - feed-forward networks for tabular data")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  train      Train the default classifier on a CSV file")
	fmt.Println("  evaluate   K-fold cross-validate the default classifier")
	fmt.Println("  inspect    Print a saved model's config")
	fmt.Println("")
	fmt.Println("Run 'neunet <command> -h' for command flags.")
}

// dataFlags are shared by train and evaluate.
type dataFlags struct {
	path    string
	header  bool
	label   int
	classes int
	shuffle bool
	seed    uint64

	epochs      int
	initialRate float64
	finalRate   float64
}

func (d *dataFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&d.path, "data", "", "CSV file with numeric features and an integer class column")
	fs.BoolVar(&d.header, "header", true, "Skip the first CSV record")
	fs.IntVar(&d.label, "label", -1, "Label column index (negative counts from the end)")
	fs.IntVar(&d.classes, "classes", 0, "Number of classes (0 = infer from labels)")
	fs.BoolVar(&d.shuffle, "shuffle", false, "Shuffle rows before use")
	fs.Uint64Var(&d.seed, "seed", 0, "Random seed (0 = from entropy)")
	fs.IntVar(&d.epochs, "epochs", 10, "Number of training epochs")
	fs.Float64Var(&d.initialRate, "initial-rate", 0.1, "Learning rate of the first epoch")
	fs.Float64Var(&d.finalRate, "final-rate", 0.01, "Learning rate of the last epoch")
}

func (d *dataFlags) schedule() optim.TrainingRateConfig {
	return optim.TrainingRateConfig{
		Epochs:      d.epochs,
		InitialRate: d.initialRate,
		FinalRate:   d.finalRate,
	}
}

func (d *dataFlags) load() (*model.LabeledData, error) {
	if d.path == "" {
		return nil, fmt.Errorf("-data is required")
	}
	data, err := model.LoadCSV(d.path, model.CSVOptions{
		Header:      d.header,
		LabelColumn: d.label,
		Classes:     d.classes,
	})
	if err != nil {
		return nil, err
	}
	if d.shuffle {
		return data.Shuffle(newRNG(d.seed))
	}
	return data, nil
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	var df dataFlags
	df.register(fs)
	save := fs.String("save", "", "Directory to save the trained model to")
	overwrite := fs.Bool("overwrite", false, "Replace an existing model directory")
	noWeights := fs.Bool("no-weights", false, "Save the config without trained weights")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := df.load()
	if err != nil {
		return err
	}
	features, classes := data.Inputs.Shape()[1], data.Labels.Shape()[1]
	fmt.Printf("Loaded %d rows (%d features, %d classes)\n", data.NumRows(), features, classes)

	m, err := newNetwork(features, classes, newRNG(df.seed))
	if err != nil {
		return err
	}
	cfg, err := m.Config()
	if err != nil {
		return err
	}
	fmt.Println(cfg)

	report, err := m.Train(data, df.schedule())
	if err != nil {
		return err
	}
	accuracy, err := m.Score(data, model.ArgmaxAccuracy)
	if err != nil {
		return err
	}
	fmt.Printf("Final loss: %.6f\n", report.FinalLoss())
	fmt.Printf("Average epoch: %v\n", report.AvgEpoch)
	fmt.Printf("Training accuracy: %.2f%%\n", accuracy*100)

	switch {
	case *save == "":
		return nil
	case *noWeights:
		return m.Save(*save, *overwrite)
	default:
		return m.SaveWithWeights(*save, *overwrite)
	}
}

func runEvaluate(args []string) error {
	fs := flag.NewFlagSet("evaluate", flag.ExitOnError)
	var df dataFlags
	df.register(fs)
	folds := fs.Int("folds", 5, "Number of cross-validation folds")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := df.load()
	if err != nil {
		return err
	}
	features, classes := data.Inputs.Shape()[1], data.Labels.Shape()[1]
	rng := newRNG(df.seed)

	report, err := model.CrossValidate(func() (*model.Model, error) {
		return newNetwork(features, classes, rng)
	}, data, *folds, df.schedule(), model.ArgmaxAccuracy)
	if err != nil {
		return err
	}

	for _, f := range report.Folds {
		fmt.Printf("Fold %d: %.2f%% (%d train / %d test rows)\n",
			f.Fold+1, f.Accuracy*100, f.TrainRows, f.TestRows)
	}
	fmt.Printf("Mean accuracy: %.2f%% (stddev %.2f%%)\n", report.Mean*100, report.StdDev*100)
	return nil
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	dir := fs.String("model", "", "Saved model directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dir == "" {
		return fmt.Errorf("-model is required")
	}

	m, err := model.Load(*dir, nil)
	if err != nil {
		return err
	}
	cfg, err := m.Config()
	if err != nil {
		return err
	}
	fmt.Println(cfg)
	for i, l := range m.Layers() {
		fmt.Printf("[%d] %-20s %v -> %v\n", i, l.Name(), l.InputShape(), l.OutputShape())
	}
	return nil
}
