// Package tabular provides the concrete sample.Sample implementations for
// the common case the teacher (wlattner/rf) ships directly: rows of
// []float64 feature vectors, column selection as the split-feature source.
// ClassifSample pairs the row with a class index target and a
// counter.Counter leaf/prediction; RegressSample pairs it with a float64
// target and a scalar mean leaf/prediction.
//
// Grounded on the teacher's [][]float64 X / []string|[]float64 Y
// representation (forest/classifier.go:Fit, forest/regressor.go:Fit), with
// column-index selection as ThetaSplit matching tree/build.go's maxFeatures
// candidate-column draw.
package tabular

import (
	"math/rand"

	"github.com/hx-labs/xtrees/counter"
	"github.com/hx-labs/xtrees/sample"
)

// ClassifSample is one training row for classification: a feature vector
// and a class index in 0..K-1.
type ClassifSample struct {
	X     []float64
	Class int
}

func (s ClassifSample) Target() int { return s.Class }

func (s ClassifSample) Feature(col int) float64 { return s.X[col] }

// Predict clones the leaf's counter, per spec.md §4.D: prediction for
// classification is a copy of the training-subset's counter, not the
// counter itself, so mutating a prediction (e.g. with AddOne) leaves the
// fitted leaf unchanged.
func (s ClassifSample) Predict(w counter.Counter) counter.Counter { return w.Clone() }

// ClassifSource is the FeatureSource for ClassifSample: it draws a
// uniformly random column index as theta and fits a leaf counter from the
// subset. One instance is not safe for concurrent use; the forest package
// constructs a fresh ClassifSource per tree (see forest.Forest.Fit's
// newSource).
type ClassifSource struct {
	NFeatures int
	NClasses  int
	Rand      *rand.Rand
}

func (s *ClassifSource) RandomTheta() int {
	return s.Rand.Intn(s.NFeatures)
}

func (s *ClassifSource) FitLeaf(rows []ClassifSample) counter.Counter {
	c := counter.New(s.NClasses)
	for _, r := range rows {
		c.AddOne(r.Class)
	}
	return c
}

var _ sample.Sample[int, counter.Counter, int, counter.Counter] = ClassifSample{}
var _ sample.FeatureSource[ClassifSample, int, counter.Counter] = &ClassifSource{}

// RegressSample is one training row for regression: a feature vector and a
// scalar target.
type RegressSample struct {
	X []float64
	Y float64
}

func (s RegressSample) Target() float64 { return s.Y }

func (s RegressSample) Feature(col int) float64 { return s.X[col] }

// Predict returns the leaf's stored mean unchanged; a scalar mean needs no
// cloning the way a counter does.
func (s RegressSample) Predict(w float64) float64 { return w }

// RegressSource mirrors ClassifSource for the regression problem: the leaf
// parameter is the subset's mean target instead of a class counter.
type RegressSource struct {
	NFeatures int
	Rand      *rand.Rand
}

func (s *RegressSource) RandomTheta() int {
	return s.Rand.Intn(s.NFeatures)
}

func (s *RegressSource) FitLeaf(rows []RegressSample) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rows {
		sum += r.Y
	}
	return sum / float64(len(rows))
}

var _ sample.Sample[int, float64, float64, float64] = RegressSample{}
var _ sample.FeatureSource[RegressSample, int, float64] = &RegressSource{}

// ClassifAggregator is the sample.Aggregator[counter.Counter] spec.md
// §4.H's Design Notes ask for: trees' leaf counters sum, and Finalize is a
// no-op since Probability/MostFrequent already divide by the sum's total.
type ClassifAggregator struct {
	NClasses int
}

func (a ClassifAggregator) Zero() counter.Counter { return counter.New(a.NClasses) }

func (a ClassifAggregator) Combine(x, y counter.Counter) counter.Counter {
	return counter.Merge(x, y)
}

func (a ClassifAggregator) Finalize(sum counter.Counter, n int) counter.Counter { return sum }

// RegressAggregator is the sample.Aggregator[float64] for regression: trees'
// predicted means sum, and Finalize divides by tree count to produce the
// forest's arithmetic mean.
type RegressAggregator struct{}

func (RegressAggregator) Zero() float64 { return 0 }

func (RegressAggregator) Combine(x, y float64) float64 { return x + y }

func (RegressAggregator) Finalize(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

var _ sample.Aggregator[counter.Counter] = ClassifAggregator{}
var _ sample.Aggregator[float64] = RegressAggregator{}
