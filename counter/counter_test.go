package counter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterBasics(t *testing.T) {
	c := New(3)
	c.AddOne(0)
	c.AddOne(0)
	c.AddOne(1)

	if c.Total() != 3 {
		t.Errorf("expected total 3, got %d", c.Total())
	}
	if c.Count(0) != 2 {
		t.Errorf("expected count(0) = 2, got %d", c.Count(0))
	}
	if got := c.Probability(0); math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("expected probability(0) = 2/3, got %f", got)
	}
	mf, err := c.MostFrequent()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mf != 0 {
		t.Errorf("expected most frequent class 0, got %d", mf)
	}
}

func TestCounterMostFrequentTieBreak(t *testing.T) {
	c := New(3)
	c.AddOne(0)
	c.AddOne(1)
	mf, err := c.MostFrequent()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mf != 0 {
		t.Errorf("expected tie broken to smallest index 0, got %d", mf)
	}
}

func TestCounterMostFrequentUndefinedOnEmpty(t *testing.T) {
	c := New(2)
	_, err := c.MostFrequent()
	if err == nil {
		t.Error("expected error for most-frequent of zero-total counter")
	}
}

func TestCounterProbabilityZeroTotal(t *testing.T) {
	c := New(2)
	if p := c.Probability(0); p != 0 {
		t.Errorf("expected probability 0 on empty counter, got %f", p)
	}
}

// TestCounterMonoid is spec.md §8 invariant 2: associativity, identity, and
// total additivity of Merge.
func TestCounterMonoid(t *testing.T) {
	a := New(3)
	a.AddOne(0)
	a.AddOne(1)
	b := New(3)
	b.AddOne(1)
	b.AddOne(2)
	c := New(3)
	c.AddOne(2)
	c.AddOne(2)
	empty := New(3)

	ab := Merge(a, b)
	abc1 := Merge(ab, c)
	bc := Merge(b, c)
	abc2 := Merge(a, bc)

	assert.Equal(t, abc1.counts, abc2.counts, "merge must be associative")

	identity := Merge(a, empty)
	assert.Equal(t, a.counts, identity.counts, "merge with empty must be identity")

	assert.Equal(t, a.Total()+b.Total(), Merge(a, b).Total(), "merged total must be additive")
}

// TestCounterProbabilitySum is spec.md §8 invariant 3.
func TestCounterProbabilitySum(t *testing.T) {
	c := New(4)
	c.AddOne(0)
	c.AddOne(1)
	c.AddOne(1)
	c.AddOne(3)

	var sum float64
	for class := 0; class < c.Classes(); class++ {
		sum += c.Probability(class)
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestCounterGobRoundTrip(t *testing.T) {
	c := New(3)
	c.AddOne(0)
	c.AddOne(2)
	c.AddOne(2)

	data, err := c.GobEncode()
	if err != nil {
		t.Fatalf("gob encode: %v", err)
	}

	var out Counter
	if err := out.GobDecode(data); err != nil {
		t.Fatalf("gob decode: %v", err)
	}
	if out.Total() != c.Total() || out.Count(2) != c.Count(2) {
		t.Errorf("round trip mismatch: got %+v from %+v", out, c)
	}
}

func TestCounterJSONRoundTrip(t *testing.T) {
	c := New(3)
	c.AddOne(0)
	c.AddOne(2)
	c.AddOne(2)

	data, err := c.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out Counter
	if err := out.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Total() != c.Total() || out.Count(2) != c.Count(2) {
		t.Errorf("round trip mismatch: got %+v from %+v", out, c)
	}
}
