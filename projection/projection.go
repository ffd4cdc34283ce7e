// Package projection provides a second concrete sample.Sample
// implementation where the split feature is a random linear projection of
// the row instead of a single selected column: spec.md §4.D's Design Notes
// name "a random linear projection" as an alternative ThetaSplit, and
// original_source/'s forester-crate leaves the choice of feature
// representation to the Sample implementer. Theta is a unit vector; Feature
// is the dot product of that vector with the row, computed with
// gonum.org/v1/gonum/mat the way other_examples ML files do numeric row/
// matrix work (e.g. the Mimir-AIP decision tree trainer's toMatrix
// helpers).
package projection

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/hx-labs/xtrees/counter"
	"github.com/hx-labs/xtrees/sample"
)

// Theta is a random unit vector in R^d; Feature(theta) projects a row onto
// it via dot product.
type Theta struct {
	Vec *mat.VecDense
}

// ClassifSample pairs a feature row with a class index target, projected
// through a random linear combination of columns rather than a single
// selected column.
type ClassifSample struct {
	X     *mat.VecDense
	Class int
}

func (s ClassifSample) Target() int { return s.Class }

func (s ClassifSample) Feature(theta Theta) float64 {
	return mat.Dot(s.X, theta.Vec)
}

func (s ClassifSample) Predict(w counter.Counter) counter.Counter { return w.Clone() }

// Source draws a random unit-vector theta per candidate and fits a leaf
// counter from the subset, mirroring tabular.ClassifSource but over
// projected features instead of selected columns.
type Source struct {
	NDims    int
	NClasses int
	Rand     *rand.Rand
}

func (s *Source) RandomTheta() Theta {
	v := mat.NewVecDense(s.NDims, nil)
	var norm float64
	for i := 0; i < s.NDims; i++ {
		x := s.Rand.NormFloat64()
		v.SetVec(i, x)
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		v.SetVec(0, 1)
		norm = 1
	}
	for i := 0; i < s.NDims; i++ {
		v.SetVec(i, v.AtVec(i)/norm)
	}
	return Theta{Vec: v}
}

func (s *Source) FitLeaf(rows []ClassifSample) counter.Counter {
	c := counter.New(s.NClasses)
	for _, r := range rows {
		c.AddOne(r.Class)
	}
	return c
}

// NewVec builds a *mat.VecDense from a plain feature row, the conversion
// callers use when loading rows from source/csv, source/sql, or
// source/mongo (all of which produce []float64 rows) into projection
// samples.
func NewVec(x []float64) *mat.VecDense {
	return mat.NewVecDense(len(x), x)
}

var _ sample.Sample[Theta, counter.Counter, int, counter.Counter] = ClassifSample{}
var _ sample.FeatureSource[ClassifSample, Theta, counter.Counter] = &Source{}
