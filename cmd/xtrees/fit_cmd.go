package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/davecheney/profile"
	"github.com/spf13/cobra"

	"github.com/hx-labs/xtrees/config"
	"github.com/hx-labs/xtrees/counter"
	"github.com/hx-labs/xtrees/criterion"
	"github.com/hx-labs/xtrees/forest"
	"github.com/hx-labs/xtrees/sample"
	csvsrc "github.com/hx-labs/xtrees/source/csv"
	"github.com/hx-labs/xtrees/store/persist"
	"github.com/hx-labs/xtrees/tabular"
)

type fitOptions struct {
	dataFile   string
	modelFile  string
	configFile string
	regression bool
	nTrees     int
	minSplit   int
	minLeaf    int
	maxDepth   int
	nTrials    int
	nWorkers   int
	bootstrap  bool
	computeOOB bool
	seed       int64
	cpuProfile bool
	varImpFile string
}

func fitCmd() *cobra.Command {
	o := &fitOptions{}
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit a forest from a CSV training file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFit(o)
		},
	}
	cmd.Flags().StringVarP(&o.dataFile, "data", "d", "", "training CSV (required)")
	cmd.Flags().StringVarP(&o.modelFile, "model", "m", "xtrees.model", "output path for the fitted model")
	cmd.Flags().StringVarP(&o.configFile, "config", "c", "", "YAML hyperparameter file (overridden by explicit flags)")
	cmd.Flags().BoolVar(&o.regression, "regression", false, "fit a regressor instead of a classifier")
	cmd.Flags().IntVar(&o.nTrees, "trees", 10, "number of trees")
	cmd.Flags().IntVar(&o.minSplit, "min-split", 2, "minimum samples required to split a node")
	cmd.Flags().IntVar(&o.minLeaf, "min-leaf", 1, "minimum samples in a created leaf")
	cmd.Flags().IntVar(&o.maxDepth, "max-depth", -1, "maximum tree depth, -1 for unbounded")
	cmd.Flags().IntVar(&o.nTrials, "k", 1, "number of random split candidates evaluated per node")
	cmd.Flags().IntVar(&o.nWorkers, "workers", 1, "number of goroutines fitting trees concurrently")
	cmd.Flags().BoolVar(&o.bootstrap, "bootstrap", true, "bag each tree on a bootstrap resample")
	cmd.Flags().BoolVar(&o.computeOOB, "oob", false, "track out-of-bag predictions (requires --bootstrap)")
	cmd.Flags().Int64Var(&o.seed, "seed", 1, "random seed; same seed + same data reproduces an identical forest")
	cmd.Flags().BoolVar(&o.cpuProfile, "profile", false, "write a CPU profile for the fit")
	cmd.Flags().StringVar(&o.varImpFile, "var-importance", "", "optional path to write per-feature variable importance as CSV")
	cmd.MarkFlagRequired("data")
	return cmd
}

func runFit(o *fitOptions) error {
	if o.cpuProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	cfg := config.Default()
	if o.configFile != "" {
		var err error
		cfg, err = config.ReadFile(o.configFile)
		if err != nil {
			return err
		}
	}
	cfg.NTrees = o.nTrees
	cfg.MinSplit = o.minSplit
	cfg.MinLeaf = o.minLeaf
	cfg.MaxDepth = o.maxDepth
	cfg.NTrials = o.nTrials
	cfg.NWorkers = o.nWorkers
	cfg.Bootstrap = o.bootstrap
	cfg.ComputeOOB = o.computeOOB

	f, err := os.Open(o.dataFile)
	if err != nil {
		return fmt.Errorf("opening data file: %w", err)
	}
	defer f.Close()

	rng := rand.New(rand.NewSource(o.seed))
	start := time.Now()

	out, err := os.Create(o.modelFile)
	if err != nil {
		return fmt.Errorf("creating model file: %w", err)
	}
	defer out.Close()

	if o.regression {
		if err := fitRegression(o, cfg, f, out, rng, start); err != nil {
			return err
		}
	} else {
		if err := fitClassification(o, cfg, f, out, rng, start); err != nil {
			return err
		}
	}

	return nil
}

func fitRegression(o *fitOptions, cfg config.Forest, in *os.File, out *os.File, rng *rand.Rand, start time.Time) error {
	parsed, err := csvsrc.ReadRegress(in)
	if err != nil {
		return fmt.Errorf("parsing training data: %w", err)
	}
	log.Infof("fitting regressor on %d samples, %d features", len(parsed.Rows), len(parsed.VarNames))

	type S = tabular.RegressSample
	fst := forest.New[S, int, float64, float64, float64](
		forest.NTrees[S, int, float64, float64, float64](cfg.NTrees),
		forest.MinSplit[S, int, float64, float64, float64](cfg.MinSplit),
		forest.MinLeaf[S, int, float64, float64, float64](cfg.MinLeaf),
		forest.MaxDepth[S, int, float64, float64, float64](cfg.MaxDepth),
		forest.NTrials[S, int, float64, float64, float64](cfg.NTrials),
		forest.NumWorkers[S, int, float64, float64, float64](cfg.NWorkers),
		forest.Bootstrap[S, int, float64, float64, float64](cfg.Bootstrap),
		forest.ComputeOOB[S, int, float64, float64, float64](cfg.ComputeOOB),
	)
	nFeatures := len(parsed.VarNames)
	newSource := func(r *rand.Rand) sample.FeatureSource[S, int, float64] {
		return &tabular.RegressSource{NFeatures: nFeatures, Rand: r}
	}
	if err := fst.Fit(parsed.Rows, newSource, criterion.Variance{}, tabular.RegressAggregator{}, rng); err != nil {
		return fmt.Errorf("fitting forest: %w", err)
	}
	log.Infof("fit %d trees in %s", cfg.NTrees, time.Since(start))

	if err := persist.SaveRegressForest(out, fst); err != nil {
		return fmt.Errorf("saving model: %w", err)
	}
	if o.varImpFile != "" {
		return writeVarImp(o.varImpFile, parsed.VarNames, forest.VarImp[S, int, float64, float64, float64](fst))
	}
	return nil
}

func fitClassification(o *fitOptions, cfg config.Forest, in *os.File, out *os.File, rng *rand.Rand, start time.Time) error {
	parsed, err := csvsrc.ReadClassif(in)
	if err != nil {
		return fmt.Errorf("parsing training data: %w", err)
	}
	log.Infof("fitting classifier on %d samples, %d features, %d classes",
		len(parsed.Rows), len(parsed.VarNames), len(parsed.Classes))

	type S = tabular.ClassifSample
	nFeatures := len(parsed.VarNames)
	nClasses := len(parsed.Classes)

	fst := forest.New[S, int, counter.Counter, int, counter.Counter](
		forest.NTrees[S, int, counter.Counter, int, counter.Counter](cfg.NTrees),
		forest.MinSplit[S, int, counter.Counter, int, counter.Counter](cfg.MinSplit),
		forest.MinLeaf[S, int, counter.Counter, int, counter.Counter](cfg.MinLeaf),
		forest.MaxDepth[S, int, counter.Counter, int, counter.Counter](cfg.MaxDepth),
		forest.NTrials[S, int, counter.Counter, int, counter.Counter](cfg.NTrials),
		forest.NumWorkers[S, int, counter.Counter, int, counter.Counter](cfg.NWorkers),
		forest.Bootstrap[S, int, counter.Counter, int, counter.Counter](cfg.Bootstrap),
		forest.ComputeOOB[S, int, counter.Counter, int, counter.Counter](cfg.ComputeOOB),
	)
	newSource := func(r *rand.Rand) sample.FeatureSource[S, int, counter.Counter] {
		return &tabular.ClassifSource{NFeatures: nFeatures, NClasses: nClasses, Rand: r}
	}
	if err := fst.Fit(parsed.Rows, newSource, criterion.Gini{NClasses: nClasses}, tabular.ClassifAggregator{NClasses: nClasses}, rng); err != nil {
		return fmt.Errorf("fitting forest: %w", err)
	}
	log.Infof("fit %d trees in %s", cfg.NTrees, time.Since(start))

	if err := persist.SaveClassifForest(out, fst, nClasses); err != nil {
		return fmt.Errorf("saving model: %w", err)
	}
	if o.varImpFile != "" {
		return writeVarImp(o.varImpFile, parsed.VarNames, forest.VarImp[S, int, counter.Counter, int, counter.Counter](fst))
	}
	return nil
}
