// Package dataset implements spec.md's in-place partition primitive (§4.A)
// and the slice-backed Dataset contract (§4.E): a mutable contiguous view
// over samples that supports random split-feature generation, feature
// bounds, leaf fitting, in-place partitioning, and bootstrap resampling.
//
// This is grounded on forester-crate/src/data.rs's
// `impl<Sample> DataSet<Sample> for [Sample]`: the Rust crate gives every
// `[Sample]` slice this behavior via a blanket trait impl. Go has no blanket
// impls over a built-in slice type, so Dataset wraps the slice in a small
// generic struct instead; the operations and invariants are the same.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/hx-labs/xtrees/sample"
)

// ErrDomainViolation is spec.md §7's "Domain violation": a NaN feature was
// encountered where ordering/comparison is required.
var ErrDomainViolation = errors.New("domain violation: NaN feature")

// ErrEmptyBounds is spec.md §7's "Empty bounds": feature_bounds was called
// on an empty subset, a programming error that should not occur by
// construction (the tree builder never calls it on an empty node).
var ErrEmptyBounds = errors.New("feature_bounds on empty subset")

// Dataset is the slice-backed contract of spec.md §4.E. S must satisfy
// sample.Sample[TS, TL, T, P]; TS is ThetaSplit, TL is ThetaLeaf, T is
// Target, P is Prediction.
type Dataset[S sample.Sample[TS, TL, T, P], TS, TL, T, P any] struct {
	Samples []S
	Source  sample.FeatureSource[S, TS, TL]
	Crit    crit[T]
}

// crit is the minimal criterion surface Dataset needs; defined locally so
// this package does not need to import criterion (which would make
// criterion <-> dataset a cycle risk as the module grows).
type crit[T any] interface {
	Score(targets []T) float64
}

// New wraps samples in a Dataset view. The number of samples is fixed for
// the lifetime of this view, per spec.md §3's Dataset invariant.
func New[S sample.Sample[TS, TL, T, P], TS, TL, T, P any](
	samples []S, source sample.FeatureSource[S, TS, TL], c crit[T],
) *Dataset[S, TS, TL, T, P] {
	return &Dataset[S, TS, TL, T, P]{Samples: samples, Source: source, Crit: c}
}

// NSamples returns the number of samples in the current view.
func (d *Dataset[S, TS, TL, T, P]) NSamples() int {
	return len(d.Samples)
}

// GenSplitFeature draws a new candidate theta from the configured source.
func (d *Dataset[S, TS, TL, T, P]) GenSplitFeature() TS {
	return d.Source.RandomTheta()
}

// TrainLeafPredictor fits a leaf parameter from the current subset.
func (d *Dataset[S, TS, TL, T, P]) TrainLeafPredictor() TL {
	return d.Source.FitLeaf(d.Samples)
}

// FeatureBounds returns the min and max of feature theta over the current
// subset. It is an error to call this on an empty subset (spec.md §7), and
// a NaN feature value anywhere in the subset is a domain violation: the
// library fails loudly instead of silently mis-sorting around it.
func (d *Dataset[S, TS, TL, T, P]) FeatureBounds(theta TS) (lo, hi float64, err error) {
	if len(d.Samples) == 0 {
		return 0, 0, ErrEmptyBounds
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range d.Samples {
		v := s.Feature(theta)
		if math.IsNaN(v) {
			return 0, 0, fmt.Errorf("%w: theta=%v", ErrDomainViolation, theta)
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, nil
}

// SplitCriterion computes the current subset's pre-split impurity.
func (d *Dataset[S, TS, TL, T, P]) SplitCriterion() float64 {
	targets := make([]T, len(d.Samples))
	for i, s := range d.Samples {
		targets[i] = s.Target()
	}
	return d.Crit.Score(targets)
}

// Partition reorders the subset in place according to split and returns two
// views over disjoint, contiguous sub-ranges whose union is the original
// view: left contains exactly the samples for which
// Feature(split.Theta) <= split.Threshold (spec.md §3's Dataset invariant).
// A NaN feature value is a domain violation, surfaced instead of silently
// routing the sample to an arbitrary side.
func (d *Dataset[S, TS, TL, T, P]) Partition(split sample.Split[TS]) (left, right *Dataset[S, TS, TL, T, P], err error) {
	var partitionErr error
	i := Partition(d.Samples, func(s S) bool {
		v := s.Feature(split.Theta)
		if math.IsNaN(v) {
			partitionErr = fmt.Errorf("%w: theta=%v", ErrDomainViolation, split.Theta)
			return false
		}
		return v <= split.Threshold
	})
	if partitionErr != nil {
		return nil, nil, partitionErr
	}
	l := &Dataset[S, TS, TL, T, P]{Samples: d.Samples[:i], Source: d.Source, Crit: d.Crit}
	r := &Dataset[S, TS, TL, T, P]{Samples: d.Samples[i:], Source: d.Source, Crit: d.Crit}
	return l, r, nil
}

// BootstrapResample draws n samples uniformly with replacement, spec.md
// §4.E's optional bagging knob, grounded on the teacher's
// forest/forest.go:bootstrapInx.
func (d *Dataset[S, TS, TL, T, P]) BootstrapResample(n int, rng *rand.Rand) []S {
	out := make([]S, n)
	for i := range out {
		out[i] = d.Samples[rng.Intn(len(d.Samples))]
	}
	return out
}

// VisitSamples calls visitor for each sample in the current view.
func (d *Dataset[S, TS, TL, T, P]) VisitSamples(visitor func(S)) {
	for _, s := range d.Samples {
		visitor(s)
	}
}
