package splitter

import (
	"math/rand"
	"testing"

	"github.com/hx-labs/xtrees/dataset"
	"github.com/hx-labs/xtrees/sample"
)

type rowSample struct {
	x []float64
	y float64
}

func (s rowSample) Target() float64          { return s.y }
func (s rowSample) Feature(col int) float64  { return s.x[col] }
func (s rowSample) Predict(w float64) float64 { return w }

type rowSource struct {
	nFeatures int
	rng       *rand.Rand
}

func (r *rowSource) RandomTheta() int { return r.rng.Intn(r.nFeatures) }
func (r *rowSource) FitLeaf(rows []rowSample) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for _, row := range rows {
		sum += row.y
	}
	return sum / float64(len(rows))
}

type varianceCrit struct{}

func (varianceCrit) Score(targets []float64) float64 {
	if len(targets) == 0 {
		return 0
	}
	var sum float64
	for _, v := range targets {
		sum += v
	}
	mean := sum / float64(len(targets))
	var sq float64
	for _, v := range targets {
		sq += (v - mean) * (v - mean)
	}
	return sq / float64(len(targets))
}

func TestBestRandomSplitSeparatesClusters(t *testing.T) {
	rows := []rowSample{
		{x: []float64{1}, y: 5}, {x: []float64{2}, y: 5}, {x: []float64{3}, y: 5},
		{x: []float64{7}, y: 2}, {x: []float64{8}, y: 2}, {x: []float64{9}, y: 2},
	}
	rng := rand.New(rand.NewSource(1))
	src := &rowSource{nFeatures: 1, rng: rng}
	d := dataset.New[rowSample, int, float64, float64, float64](rows, src, varianceCrit{})

	split, score, found, err := BestRandomSplit[rowSample, int, float64, float64, float64](d, varianceCrit{}, 20, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a viable split to be found")
	}
	if score >= d.SplitCriterion() {
		t.Errorf("expected post-split score %f to improve on pre-split score %f", score, d.SplitCriterion())
	}
	if split.Threshold < 3 || split.Threshold >= 7 {
		t.Errorf("expected threshold to separate the two clusters (between 3 and 7), got %f", split.Threshold)
	}
}

func TestBestRandomSplitConstantFeatureNotViable(t *testing.T) {
	rows := []rowSample{
		{x: []float64{5}, y: 1}, {x: []float64{5}, y: 2}, {x: []float64{5}, y: 3},
	}
	rng := rand.New(rand.NewSource(1))
	src := &rowSource{nFeatures: 1, rng: rng}
	d := dataset.New[rowSample, int, float64, float64, float64](rows, src, varianceCrit{})

	_, _, found, err := BestRandomSplit[rowSample, int, float64, float64, float64](d, varianceCrit{}, 5, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected no viable split for a constant feature")
	}
}

// cycleSource returns thetas 0, 1, 2, ... in order, so the theta of each
// trial of a search is known in advance.
type cycleSource struct {
	next, nFeatures int
}

func (c *cycleSource) RandomTheta() int {
	theta := c.next % c.nFeatures
	c.next++
	return theta
}
func (c *cycleSource) FitLeaf(rows []rowSample) float64 { return 0 }

// TestBestRandomSplitTieBreaksFirst pins spec.md §4.F's tie-break rule:
// an earlier trial wins on equal scores. It first checks that a
// single-trial search finds a viable split, then runs three trials over
// three identical columns where every candidate scores 0 and expects the
// first trial's theta to be kept.
func TestBestRandomSplitTieBreaksFirst(t *testing.T) {
	rows := []rowSample{
		{x: []float64{1}, y: 1}, {x: []float64{2}, y: 1},
		{x: []float64{3}, y: 9}, {x: []float64{4}, y: 9},
	}
	rng := rand.New(rand.NewSource(2))
	src := &rowSource{nFeatures: 1, rng: rng}
	d := dataset.New[rowSample, int, float64, float64, float64](rows, src, varianceCrit{})

	_, _, found, err := BestRandomSplit[rowSample, int, float64, float64, float64](d, varianceCrit{}, 1, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Error("expected a single-trial search to still find a viable split")
	}

	// Any threshold in [1, 2) separates the two samples perfectly on every
	// column, so all three trials (thetas 0, 1, 2) score 0.
	tieRows := []rowSample{{x: []float64{1, 1, 1}, y: 1}, {x: []float64{2, 2, 2}, y: 9}}
	tie := dataset.New[rowSample, int, float64, float64, float64](tieRows, &cycleSource{nFeatures: 3}, varianceCrit{})
	tieSplit, tieScore, found, err := BestRandomSplit[rowSample, int, float64, float64, float64](tie, varianceCrit{}, 3, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a viable split on the tie fixture")
	}
	if tieScore != 0 || tieSplit.Theta != 0 {
		t.Errorf("expected the first of three equal-scoring trials (theta 0, score 0) to win, got theta %d score %f",
			tieSplit.Theta, tieScore)
	}
}

var _ sample.Sample[int, float64, float64, float64] = rowSample{}
