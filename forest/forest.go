// Package forest implements a forest of randomized trees: spec.md §4.H's
// aggregation of many tree.Tree predictions through a sample.Aggregator
// monoid, fit concurrently with a worker pool.
//
// The worker-pool fan-out is grounded directly on the teacher's
// forest/forest.go Fit: an in channel feeding tree-fit jobs to nWorkers
// goroutines, an out channel collecting finished trees, and a bootstrap
// resample per tree. Where the teacher special-cases vote-counting vs.
// probability-averaging per problem type, this generalizes both into one
// Combine/Finalize pass via sample.Aggregator, spec.md §4.H's Design Notes.
package forest

import (
	"errors"
	"math/rand"

	"github.com/hx-labs/xtrees/sample"
	"github.com/hx-labs/xtrees/tree"
)

// ErrNoSamples is returned by Fit when asked to grow a forest from zero
// samples.
var ErrNoSamples = errors.New("forest: cannot fit on zero samples")

// scorer mirrors splitter's and tree's criterion surface.
type scorer[T any] interface {
	Score(targets []T) float64
}

// Forest is a collection of independently fit trees whose predictions are
// combined through an Aggregator.
type Forest[S sample.Sample[TS, TL, T, P], TS, TL, T, P any] struct {
	Trees []*tree.Tree[S, TS, TL, T, P]
	Agg   sample.Aggregator[P]

	// OOBPredictions[i] is the aggregated prediction for samples[i] from
	// only the trees for which it was out-of-bag; valid only where
	// OOBCounts[i] > 0. Populated when ComputeOOB is set and Bootstrap is
	// true (spec.md's supplemented out-of-bag evaluation feature).
	OOBPredictions []P
	OOBCounts      []int

	NTrees    int
	MinSplit  int
	MinLeaf   int
	MaxDepth  int
	NTrials   int
	NWorkers  int
	Bootstrap bool
	ComputeOOB bool
}

// Option configures a Forest at construction time.
type Option[S sample.Sample[TS, TL, T, P], TS, TL, T, P any] func(*Forest[S, TS, TL, T, P])

func NTrees[S sample.Sample[TS, TL, T, P], TS, TL, T, P any](n int) Option[S, TS, TL, T, P] {
	return func(f *Forest[S, TS, TL, T, P]) { f.NTrees = n }
}

func MinSplit[S sample.Sample[TS, TL, T, P], TS, TL, T, P any](n int) Option[S, TS, TL, T, P] {
	return func(f *Forest[S, TS, TL, T, P]) { f.MinSplit = n }
}

func MinLeaf[S sample.Sample[TS, TL, T, P], TS, TL, T, P any](n int) Option[S, TS, TL, T, P] {
	return func(f *Forest[S, TS, TL, T, P]) { f.MinLeaf = n }
}

func MaxDepth[S sample.Sample[TS, TL, T, P], TS, TL, T, P any](n int) Option[S, TS, TL, T, P] {
	return func(f *Forest[S, TS, TL, T, P]) { f.MaxDepth = n }
}

func NTrials[S sample.Sample[TS, TL, T, P], TS, TL, T, P any](n int) Option[S, TS, TL, T, P] {
	return func(f *Forest[S, TS, TL, T, P]) { f.NTrials = n }
}

// NumWorkers sets the number of goroutines used to fit trees concurrently;
// set GOMAXPROCS > 1 to benefit from more than one.
func NumWorkers[S sample.Sample[TS, TL, T, P], TS, TL, T, P any](n int) Option[S, TS, TL, T, P] {
	return func(f *Forest[S, TS, TL, T, P]) { f.NWorkers = n }
}

// Bootstrap enables bagging: each tree fits on an n-sample draw with
// replacement from the training set instead of the full set.
func Bootstrap[S sample.Sample[TS, TL, T, P], TS, TL, T, P any](b bool) Option[S, TS, TL, T, P] {
	return func(f *Forest[S, TS, TL, T, P]) { f.Bootstrap = b }
}

// ComputeOOB enables out-of-bag prediction tracking; has no effect unless
// Bootstrap is also enabled.
func ComputeOOB[S sample.Sample[TS, TL, T, P], TS, TL, T, P any](b bool) Option[S, TS, TL, T, P] {
	return func(f *Forest[S, TS, TL, T, P]) { f.ComputeOOB = b }
}

// New returns a configured, unfit Forest. Equivalent to NTrees(10),
// MinSplit(2), MinLeaf(1), MaxDepth(-1), NTrials(1), NumWorkers(1),
// Bootstrap(true) if no options are given.
func New[S sample.Sample[TS, TL, T, P], TS, TL, T, P any](
	opts ...Option[S, TS, TL, T, P],
) *Forest[S, TS, TL, T, P] {
	f := &Forest[S, TS, TL, T, P]{
		NTrees:    10,
		MinSplit:  2,
		MinLeaf:   1,
		MaxDepth:  -1,
		NTrials:   1,
		NWorkers:  1,
		Bootstrap: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type fitJob struct{ idx int }

type fitResult[S sample.Sample[TS, TL, T, P], TS, TL, T, P any] struct {
	idx   int
	t     *tree.Tree[S, TS, TL, T, P]
	inBag []bool
	err   error
}

// Fit grows NTrees trees from samples, each using its own *rand.Rand
// derived deterministically from rng so that a fixed rng seed reproduces an
// identical forest regardless of NWorkers (spec.md §5's determinism
// requirement: randomness is an injected capability, not a global).
// newSource constructs a fresh FeatureSource bound to a tree's own rng, so
// theta selection and threshold selection for that tree draw from a single
// reproducible stream instead of sharing mutable state across goroutines.
func (f *Forest[S, TS, TL, T, P]) Fit(
	samples []S, newSource func(*rand.Rand) sample.FeatureSource[S, TS, TL],
	crit scorer[T], agg sample.Aggregator[P], rng *rand.Rand,
) error {
	n := len(samples)
	if n == 0 {
		return ErrNoSamples
	}
	f.Agg = agg
	f.Trees = make([]*tree.Tree[S, TS, TL, T, P], f.NTrees)

	seeds := make([]int64, f.NTrees)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	nWorkers := f.NWorkers
	if nWorkers < 1 {
		nWorkers = 1
	}

	in := make(chan fitJob)
	out := make(chan fitResult[S, TS, TL, T, P])

	for w := 0; w < nWorkers; w++ {
		go func() {
			for job := range in {
				treeRand := rand.New(rand.NewSource(seeds[job.idx]))

				var fitSamples []S
				var inBag []bool
				if f.Bootstrap {
					fitSamples = make([]S, n)
					inBag = make([]bool, n)
					for k := 0; k < n; k++ {
						pick := treeRand.Intn(n)
						fitSamples[k] = samples[pick]
						inBag[pick] = true
					}
				} else {
					fitSamples = samples
				}

				t := tree.New[S, TS, TL, T, P](crit, treeRand,
					tree.MinSplit[S, TS, TL, T, P](f.MinSplit),
					tree.MinLeaf[S, TS, TL, T, P](f.MinLeaf),
					tree.MaxDepth[S, TS, TL, T, P](f.MaxDepth),
					tree.NTrials[S, TS, TL, T, P](f.NTrials),
				)
				err := t.Fit(fitSamples, newSource(treeRand))

				out <- fitResult[S, TS, TL, T, P]{idx: job.idx, t: t, inBag: inBag, err: err}
			}
		}()
	}

	go func() {
		for i := 0; i < f.NTrees; i++ {
			in <- fitJob{idx: i}
		}
		close(in)
	}()

	oobSum := make([]P, n)
	oobHave := make([]bool, n)
	oobCount := make([]int, n)
	var firstErr error

	for i := 0; i < f.NTrees; i++ {
		r := <-out
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		f.Trees[r.idx] = r.t

		if f.ComputeOOB && f.Bootstrap {
			for si, inBag := range r.inBag {
				if inBag {
					continue
				}
				pred := r.t.Predict(samples[si])
				if !oobHave[si] {
					oobSum[si] = agg.Zero()
					oobHave[si] = true
				}
				oobSum[si] = agg.Combine(oobSum[si], pred)
				oobCount[si]++
			}
		}
	}
	if firstErr != nil {
		return firstErr
	}

	if f.ComputeOOB && f.Bootstrap {
		f.OOBCounts = oobCount
		f.OOBPredictions = make([]P, n)
		for si := 0; si < n; si++ {
			if oobCount[si] > 0 {
				f.OOBPredictions[si] = agg.Finalize(oobSum[si], oobCount[si])
			}
		}
	}

	return nil
}

// Predict combines every tree's prediction for s through the Aggregator.
func (f *Forest[S, TS, TL, T, P]) Predict(s S) P {
	sum := f.Agg.Zero()
	for _, t := range f.Trees {
		sum = f.Agg.Combine(sum, t.Predict(s))
	}
	return f.Agg.Finalize(sum, len(f.Trees))
}

// VarImp sums tree.VarImp across every tree in the forest, the forest-level
// counterpart of the teacher's forest/classifier.go:VarImp.
func VarImp[S sample.Sample[TS, TL, T, P], TS comparable, TL, T, P any](f *Forest[S, TS, TL, T, P]) map[TS]float64 {
	imp := make(map[TS]float64)
	for _, t := range f.Trees {
		for theta, v := range tree.VarImp[S, TS, TL, T, P](t) {
			imp[theta] += v
		}
	}
	return imp
}
