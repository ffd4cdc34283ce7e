package criterion

import (
	"math"
	"testing"

	"github.com/hx-labs/xtrees/counter"
)

func TestGiniPureIsZero(t *testing.T) {
	g := Gini{NClasses: 2}
	if got := g.Score([]int{0, 0, 0, 0}); got != 0 {
		t.Errorf("expected gini 0 for pure subset, got %f", got)
	}
}

func TestGiniBalancedTwoClass(t *testing.T) {
	g := Gini{NClasses: 2}
	got := g.Score([]int{0, 0, 1, 1})
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("expected gini 0.5 for balanced two-class, got %f", got)
	}
}

// TestGiniBound is spec.md §8 invariant 4: 0 <= gini <= 1-1/K.
func TestGiniBound(t *testing.T) {
	for k := 2; k <= 5; k++ {
		c := counter.New(k)
		for class := 0; class < k; class++ {
			c.AddOne(class)
		}
		g := GiniOf(c)
		upper := 1 - 1.0/float64(k)
		if g < 0 || g > upper+1e-9 {
			t.Errorf("k=%d: expected gini in [0, %f], got %f", k, upper, g)
		}
		if math.Abs(g-upper) > 1e-9 {
			t.Errorf("k=%d: expected uniform counter to hit the upper bound %f, got %f", k, upper, g)
		}
	}
}

func TestGiniEmptyCounter(t *testing.T) {
	c := counter.New(3)
	if g := GiniOf(c); g != 0 {
		t.Errorf("expected gini 0 for empty counter, got %f", g)
	}
}

func TestVarianceConstant(t *testing.T) {
	v := Variance{}
	if got := v.Score([]float64{5, 5, 5, 5}); got != 0 {
		t.Errorf("expected variance 0 for constant target, got %f", got)
	}
}

func TestMeanVariance(t *testing.T) {
	mean, variance := MeanVariance([]float64{1, 2, 3, 4, 5})
	if math.Abs(mean-3) > 1e-9 {
		t.Errorf("expected mean 3, got %f", mean)
	}
	if math.Abs(variance-2) > 1e-9 {
		t.Errorf("expected population variance 2, got %f", variance)
	}
}

func TestMeanVarianceEmpty(t *testing.T) {
	mean, variance := MeanVariance(nil)
	if mean != 0 || variance != 0 {
		t.Errorf("expected (0, 0) for empty input, got (%f, %f)", mean, variance)
	}
}
