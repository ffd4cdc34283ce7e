// Package numeric supplies the constraint and sampling helpers the rest of
// xtrees uses to treat a split feature as "some ordered numeric type"
// instead of hard-coding float64 arithmetic everywhere a threshold is drawn
// or compared.
package numeric

import (
	"math/rand"

	"golang.org/x/exp/constraints"
)

// Number is any type a split threshold can be drawn from and compared
// against: ordered, and arithmetic enough to take a midpoint.
type Number interface {
	constraints.Integer | constraints.Float
}

// UniformBetween draws lo + u*(hi-lo) with u uniform in [0, 1), so the
// result can equal lo; it is not restricted to the open interval (lo, hi).
// Callers must ensure lo < hi.
func UniformBetween[F Number](lo, hi F, rng *rand.Rand) F {
	return lo + F(rng.Float64())*(hi-lo)
}

// SplitBetween returns a threshold v with lo <= v < hi that separates at
// least one sample from the rest, for feature domains where drawing an
// arbitrary continuous value between lo and hi could fail to do so (e.g.
// integer features where hi-lo == 1). When hi-lo == 1 the only value that
// can separate anything is lo itself (left gets the samples at lo, right
// gets everything above it); spec.md §9 pins this semantics explicitly.
func SplitBetween[F Number](lo, hi F, rng *rand.Rand) F {
	if hi-lo <= 1 {
		return lo
	}
	return lo + F(rng.Int63n(int64(hi-lo)))
}

// Midpoint returns the arithmetic mean of two thresholds, the candidate
// split value used once a separating index between two sorted feature
// values is known.
func Midpoint[F Number](a, b F) F {
	return a + (b-a)/2
}
