// Package counter implements the categorical counter of spec.md §4.B: a
// bin-wise count over a fixed set of classes that doubles as both a
// classification leaf parameter and a classification prediction.
package counter

import (
	"encoding/json"
	"fmt"
)

// Counter maps class index 0..K-1 to a non-negative count. The zero value
// is not usable; construct one with New. Counter forms a commutative monoid
// under Merge with an empty counter from New as identity (spec.md §8
// invariant 2).
type Counter struct {
	counts []int
}

// New returns an empty counter over k classes.
func New(k int) Counter {
	return Counter{counts: make([]int, k)}
}

// Classes returns the number of classes this counter was constructed with.
func (c Counter) Classes() int {
	return len(c.counts)
}

// AddOne increments the count for class c.
func (c Counter) AddOne(class int) {
	c.counts[class]++
}

// Merge returns a new counter with bin-wise counts from a and b added.
// Merge(a, New(a.Classes())) == a; Merge is associative and commutative.
func Merge(a, b Counter) Counter {
	k := len(a.counts)
	if len(b.counts) > k {
		k = len(b.counts)
	}
	out := make([]int, k)
	copy(out, a.counts)
	for i, v := range b.counts {
		out[i] += v
	}
	return Counter{counts: out}
}

// Clone returns an independent copy of c, used when a counter is both the
// stored leaf parameter and the value handed back as a prediction.
func (c Counter) Clone() Counter {
	out := make([]int, len(c.counts))
	copy(out, c.counts)
	return Counter{counts: out}
}

// Total returns the sum of all bin counts.
func (c Counter) Total() int {
	total := 0
	for _, v := range c.counts {
		total += v
	}
	return total
}

// Count returns the raw count for class.
func (c Counter) Count(class int) int {
	return c.counts[class]
}

// Probability returns count(c)/total, or 0 when total is 0.
func (c Counter) Probability(class int) float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c.counts[class]) / float64(total)
}

// MostFrequent returns the class with the maximum count, ties broken by the
// smallest class index. It is undefined (spec.md §7) to call this on a
// zero-total counter; callers must check Total() first.
func (c Counter) MostFrequent() (int, error) {
	if c.Total() == 0 {
		return 0, fmt.Errorf("counter: MostFrequent on zero-total counter: %w", ErrUndefined)
	}
	maxClass, maxCt := 0, -1
	for class, ct := range c.counts {
		if ct > maxCt {
			maxCt = ct
			maxClass = class
		}
	}
	return maxClass, nil
}

// ErrUndefined marks a query that spec.md §7 calls undefined: most-frequent
// class of an empty counter.
var ErrUndefined = fmt.Errorf("undefined prediction query")

// MarshalJSON exposes the otherwise-unexported counts slice, needed by
// store/redisarena and any other collaborator that persists a Counter
// through encoding/json rather than gob.
func (c Counter) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.counts)
}

// UnmarshalJSON is MarshalJSON's inverse.
func (c *Counter) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.counts)
}

// GobEncode exposes the otherwise-unexported counts slice to encoding/gob.
// gob ignores unexported fields and errors on a struct with none sendable,
// so store/persist depends on this pair to round-trip a classification
// forest's leaf counters at all.
func (c Counter) GobEncode() ([]byte, error) {
	return json.Marshal(c.counts)
}

// GobDecode is GobEncode's inverse.
func (c *Counter) GobDecode(data []byte) error {
	return json.Unmarshal(data, &c.counts)
}
