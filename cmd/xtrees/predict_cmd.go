package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hx-labs/xtrees/store/persist"
	"github.com/hx-labs/xtrees/tabular"
)

func predictCmd() *cobra.Command {
	var modelFile, dataFile, outFile string
	var regression bool

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a CSV of feature rows (no target column) with a fitted model",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(modelFile, dataFile, outFile, regression)
		},
	}
	cmd.Flags().StringVarP(&modelFile, "model", "m", "xtrees.model", "path to a model saved by fit")
	cmd.Flags().StringVarP(&dataFile, "data", "d", "", "CSV of feature rows, no target column (required)")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output path for predictions (defaults to stdout)")
	cmd.Flags().BoolVar(&regression, "regression", false, "the model is a regressor rather than a classifier")
	cmd.MarkFlagRequired("data")
	return cmd
}

func runPredict(modelFile, dataFile, outFile string, regression bool) error {
	mf, err := os.Open(modelFile)
	if err != nil {
		return fmt.Errorf("opening model file: %w", err)
	}
	defer mf.Close()

	df, err := os.Open(dataFile)
	if err != nil {
		return fmt.Errorf("opening data file: %w", err)
	}
	defer df.Close()

	rows, err := readFeatureRows(df)
	if err != nil {
		return fmt.Errorf("parsing prediction data: %w", err)
	}

	var out io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)
	defer w.Flush()

	if regression {
		fst, err := persist.LoadRegressForest(mf)
		if err != nil {
			return fmt.Errorf("loading model: %w", err)
		}
		for _, x := range rows {
			pred := fst.Predict(tabular.RegressSample{X: x})
			fmt.Fprintln(w, strconv.FormatFloat(pred, 'f', -1, 64))
		}
	} else {
		fst, err := persist.LoadClassifForest(mf)
		if err != nil {
			return fmt.Errorf("loading model: %w", err)
		}
		for _, x := range rows {
			pred := fst.Predict(tabular.ClassifSample{X: x})
			class, err := pred.MostFrequent()
			if err != nil {
				return fmt.Errorf("predicting row: %w", err)
			}
			fmt.Fprintln(w, class)
		}
	}

	return nil
}

func readFeatureRows(r io.Reader) ([][]float64, error) {
	reader := csv.NewReader(r)
	var rows [][]float64
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		x := make([]float64, len(row))
		for i, v := range row {
			fv, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing feature value %q: %w", v, err)
			}
			x[i] = fv
		}
		rows = append(rows, x)
	}
	return rows, nil
}
