// Package criterion implements the split-impurity scores of spec.md §4.C:
// Gini for categorical targets and Variance for continuous targets. Smaller
// is better; a split is worth taking only when its sample-weighted
// post-split score is strictly less than the pre-split score.
package criterion

import "github.com/hx-labs/xtrees/counter"

// Criterion scores a subset's target view; the weighted combination of
// child scores across a candidate split is computed by the caller (spec.md
// §4.C: "(N_L*s_L + N_R*s_R) / N").
type Criterion[T any] interface {
	Score(targets []T) float64
}

// Gini is the classification criterion: build the subset's class counter
// and compute Σ p_c(1-p_c). nClasses must be the same for every call within
// one fit (it fixes the counter's width).
type Gini struct {
	NClasses int
}

func (g Gini) Score(targets []int) float64 {
	c := counter.New(g.NClasses)
	for _, t := range targets {
		c.AddOne(t)
	}
	return GiniOf(c)
}

// GiniOf computes Gini impurity directly from an already-built counter;
// Gini.Score calls it after counting a raw target slice.
func GiniOf(c counter.Counter) float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	g := 0.0
	for class := 0; class < c.Classes(); class++ {
		p := float64(c.Count(class)) / float64(total)
		g += p * (1 - p)
	}
	return g
}

// Variance is the regression criterion: population variance of the target
// view, Σ(y-μ)²/N.
type Variance struct{}

func (Variance) Score(targets []float64) float64 {
	_, v := MeanVariance(targets)
	return v
}

// MeanVariance returns the mean and population variance of ys in one pass,
// grounded on the teacher's tree/valuer.go meanVar.
func MeanVariance(ys []float64) (mean, variance float64) {
	if len(ys) == 0 {
		return 0, 0
	}
	var sum, sumSq float64
	for _, y := range ys {
		sum += y
		sumSq += y * y
	}
	n := float64(len(ys))
	mean = sum / n
	variance = sumSq/n - mean*mean
	if variance < 0 {
		variance = 0 // guards against float cancellation producing a tiny negative
	}
	return mean, variance
}
