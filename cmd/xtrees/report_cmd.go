package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	xcounter "github.com/hx-labs/xtrees/counter"
	"github.com/hx-labs/xtrees/forest"
	"github.com/hx-labs/xtrees/store/persist"
	"github.com/hx-labs/xtrees/tabular"
)

func reportCmd() *cobra.Command {
	var modelFile string
	var regression bool
	var nVars int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a summary of a fitted model: tree count and variable importance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(modelFile, regression, nVars)
		},
	}
	cmd.Flags().StringVarP(&modelFile, "model", "m", "xtrees.model", "path to a model saved by fit")
	cmd.Flags().BoolVar(&regression, "regression", false, "the model is a regressor rather than a classifier")
	cmd.Flags().IntVar(&nVars, "top", 20, "number of variables to print, ranked by importance")
	return cmd
}

func runReport(modelFile string, regression bool, nVars int) error {
	f, err := os.Open(modelFile)
	if err != nil {
		return fmt.Errorf("opening model file: %w", err)
	}
	defer f.Close()

	var imp map[int]float64
	var nTrees int

	if regression {
		type S = tabular.RegressSample
		fst, err := persist.LoadRegressForest(f)
		if err != nil {
			return fmt.Errorf("loading model: %w", err)
		}
		nTrees = len(fst.Trees)
		imp = forest.VarImp[S, int, float64, float64, float64](fst)
	} else {
		type S = tabular.ClassifSample
		fst, err := persist.LoadClassifForest(f)
		if err != nil {
			return fmt.Errorf("loading model: %w", err)
		}
		nTrees = len(fst.Trees)
		imp = forest.VarImp[S, int, xcounter.Counter, int, xcounter.Counter](fst)
	}

	fmt.Printf("Fitted forest with %d trees\n\n", nTrees)
	fmt.Println("Variable Importance")
	fmt.Println("-------------------")

	type pair struct {
		col int
		imp float64
	}
	var pairs []pair
	for c, v := range imp {
		pairs = append(pairs, pair{c, v})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].imp > pairs[j].imp })
	if nVars > len(pairs) {
		nVars = len(pairs)
	}
	for _, p := range pairs[:nVars] {
		fmt.Printf("X%-5d: %-10.4f\n", p.col, p.imp)
	}

	return nil
}

// writeVarImp writes a per-feature importance table as CSV, ranked
// descending, the same shape as the teacher's model.go SaveVarImp.
func writeVarImp(path string, varNames []string, imp map[int]float64) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating variable importance file: %w", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	type pair struct {
		name string
		imp  float64
	}
	var pairs []pair
	for col, v := range imp {
		name := fmt.Sprintf("X%d", col)
		if col < len(varNames) {
			name = varNames[col]
		}
		pairs = append(pairs, pair{name, v})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].imp > pairs[j].imp })
	for _, p := range pairs {
		if err := w.Write([]string{p.name, strconv.FormatFloat(p.imp, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
