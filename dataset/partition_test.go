package dataset

import (
	"math/rand"
	"testing"
)

func TestPartitionBasic(t *testing.T) {
	seq := []int{5, 1, 4, 2, 8, 3, 9, 0}
	pred := func(v int) bool { return v <= 4 }

	i := Partition(seq, pred)

	for _, v := range seq[:i] {
		if !pred(v) {
			t.Errorf("expected %d before pivot %d to satisfy pred", v, i)
		}
	}
	for _, v := range seq[i:] {
		if pred(v) {
			t.Errorf("expected %d at/after pivot %d to fail pred", v, i)
		}
	}
}

func TestPartitionPreservesMultiset(t *testing.T) {
	orig := []int{5, 1, 4, 2, 8, 3, 9, 0, 7, 6}
	seq := append([]int(nil), orig...)
	Partition(seq, func(v int) bool { return v%2 == 0 })

	counts := make(map[int]int)
	for _, v := range orig {
		counts[v]++
	}
	for _, v := range seq {
		counts[v]--
	}
	for v, c := range counts {
		if c != 0 {
			t.Errorf("value %d count changed by partition", v)
		}
	}
}

func TestPartitionAllSatisfy(t *testing.T) {
	seq := []int{1, 2, 3, 4}
	i := Partition(seq, func(int) bool { return true })
	if i != len(seq) {
		t.Errorf("expected pivot %d, got %d", len(seq), i)
	}
}

func TestPartitionNoneSatisfy(t *testing.T) {
	seq := []int{1, 2, 3, 4}
	i := Partition(seq, func(int) bool { return false })
	if i != 0 {
		t.Errorf("expected pivot 0, got %d", i)
	}
}

// TestPartitionRoundTrip is spec.md S6: random sequences and thresholds,
// verifying the partition invariant across many trials.
func TestPartitionRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 1000; trial++ {
		n := rng.Intn(1000) + 1
		seq := make([]int, n)
		for i := range seq {
			seq[i] = rng.Intn(2000) - 1000
		}
		threshold := rng.Intn(2000) - 1000
		orig := append([]int(nil), seq...)

		i := Partition(seq, func(v int) bool { return v <= threshold })

		for _, v := range seq[:i] {
			if v > threshold {
				t.Fatalf("trial %d: value %d before pivot %d exceeds threshold %d", trial, v, i, threshold)
			}
		}
		for _, v := range seq[i:] {
			if v <= threshold {
				t.Fatalf("trial %d: value %d at/after pivot %d is <= threshold %d", trial, v, i, threshold)
			}
		}

		counts := make(map[int]int)
		for _, v := range orig {
			counts[v]++
		}
		for _, v := range seq {
			counts[v]--
		}
		for v, c := range counts {
			if c != 0 {
				t.Fatalf("trial %d: value %d count changed by partition", trial, v)
			}
		}
	}
}
