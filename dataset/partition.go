package dataset

// Partition reorders seq in place so that every element at index < i
// satisfies pred and every element at index >= i does not, where i is the
// returned pivot. Order within each side is not preserved. This is spec.md
// §4.A's primitive: O(n) comparisons, O(1) extra memory, Hoare-style
// two-pointer swap — the same shape as the teacher's in-place partitioning
// loop in tree/build.go's build() and tree/classifier.go's bestSplit commit
// step, lifted into one generic function instead of three copies.
//
// pred must not have side effects observable across calls; it is evaluated
// exactly once per remaining element per pass.
func Partition[S any](seq []S, pred func(S) bool) int {
	i, j := 0, len(seq)
	for i < j {
		if pred(seq[i]) {
			i++
		} else {
			j--
			seq[i], seq[j] = seq[j], seq[i]
		}
	}
	return i
}
