// Package tree implements a single randomized decision tree: spec.md §4.G's
// flat node arena addressed by index (parent index < child index, root at
// index 0), grown by repeatedly asking the splitter package for the best of
// k random candidate splits at each node.
//
// The build loop is grounded on the teacher's tree/tree.go and
// tree/build.go: an explicit stack of pending nodes instead of recursion,
// options configured via a treeConfiger-style functional-options set. The
// node representation itself deliberately departs from the teacher's
// pointer-linked *Node graph in favor of an index arena, per spec.md §4.G
// and the GLOSSARY's "Arena" entry; see DESIGN.md's tree.Tree entry.
package tree

import (
	"errors"
	"math"
	"math/rand"

	"github.com/hx-labs/xtrees/dataset"
	"github.com/hx-labs/xtrees/sample"
	"github.com/hx-labs/xtrees/splitter"
)

// ErrNoSamples is returned by Fit when asked to grow a tree from zero
// samples; spec.md has no defined behavior for an empty root.
var ErrNoSamples = errors.New("tree: cannot fit on zero samples")

// Node is one entry in the arena. Leaf nodes carry a LeafParam; internal
// nodes carry a split and the indices of their two children. Left and Right
// are always > the node's own index (spec.md §4.G's arena invariant).
type Node[TS, TL any] struct {
	Leaf       bool
	Samples    int
	Impurity   float64
	SplitTheta TS
	Threshold  float64
	Left       int
	Right      int
	LeafParam  TL
}

// scorer mirrors splitter's criterion surface, kept local so tree does not
// need to import criterion directly.
type scorer[T any] interface {
	Score(targets []T) float64
}

// Tree is a fitted (or fittable) randomized decision tree over samples of
// type S. TS is ThetaSplit, TL is ThetaLeaf, T is Target, P is Prediction.
type Tree[S sample.Sample[TS, TL, T, P], TS, TL, T, P any] struct {
	Nodes []Node[TS, TL]

	MinSplit int // min node size for split to be considered
	MinLeaf  int // min size of either child for a split to be accepted
	MaxDepth int // -1 for unbounded
	NTrials  int // number of random candidate splits evaluated per node

	Crit scorer[T]
	Rand *rand.Rand
}

// Option configures a Tree at construction time.
type Option[S sample.Sample[TS, TL, T, P], TS, TL, T, P any] func(*Tree[S, TS, TL, T, P])

func MinSplit[S sample.Sample[TS, TL, T, P], TS, TL, T, P any](n int) Option[S, TS, TL, T, P] {
	return func(t *Tree[S, TS, TL, T, P]) { t.MinSplit = n }
}

func MinLeaf[S sample.Sample[TS, TL, T, P], TS, TL, T, P any](n int) Option[S, TS, TL, T, P] {
	return func(t *Tree[S, TS, TL, T, P]) { t.MinLeaf = n }
}

// MaxDepth limits the depth of the fitted tree. -1 grows a full tree,
// subject to MinLeaf and MinSplit.
func MaxDepth[S sample.Sample[TS, TL, T, P], TS, TL, T, P any](n int) Option[S, TS, TL, T, P] {
	return func(t *Tree[S, TS, TL, T, P]) { t.MaxDepth = n }
}

// NTrials sets k, the number of random split candidates evaluated at each
// node (spec.md §4.F).
func NTrials[S sample.Sample[TS, TL, T, P], TS, TL, T, P any](n int) Option[S, TS, TL, T, P] {
	return func(t *Tree[S, TS, TL, T, P]) { t.NTrials = n }
}

// New returns a configured, unfit Tree. Equivalent to passing
// MinSplit(2), MinLeaf(1), MaxDepth(-1), NTrials(1) if no options are given.
func New[S sample.Sample[TS, TL, T, P], TS, TL, T, P any](
	crit scorer[T], rng *rand.Rand, opts ...Option[S, TS, TL, T, P],
) *Tree[S, TS, TL, T, P] {
	t := &Tree[S, TS, TL, T, P]{
		MinSplit: 2,
		MinLeaf:  1,
		MaxDepth: -1,
		NTrials:  1,
		Crit:     crit,
		Rand:     rng,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type workItem[S sample.Sample[TS, TL, T, P], TS, TL, T, P any] struct {
	ds      *dataset.Dataset[S, TS, TL, T, P]
	depth   int
	nodeIdx int
}

// Fit grows the tree from samples using source to generate candidate
// thetas and fit leaves.
func (t *Tree[S, TS, TL, T, P]) Fit(samples []S, source sample.FeatureSource[S, TS, TL]) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	root := dataset.New[S, TS, TL, T, P](samples, source, t.Crit)

	t.Nodes = t.Nodes[:0]
	t.Nodes = append(t.Nodes, Node[TS, TL]{})

	stack := []workItem[S, TS, TL, T, P]{{ds: root, depth: 0, nodeIdx: 0}}

	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := w.ds.NSamples()
		preScore := w.ds.SplitCriterion()

		tooSmall := t.MinSplit > 0 && n < t.MinSplit
		tooDeep := t.MaxDepth >= 0 && w.depth >= t.MaxDepth
		pure := preScore == 0

		if tooSmall || tooDeep || pure {
			t.makeLeaf(w)
			continue
		}

		split, score, found, err := splitter.BestRandomSplit[S, TS, TL, T, P](w.ds, t.Crit, t.NTrials, t.Rand)
		if err != nil {
			return err
		}
		if !found || score >= preScore {
			t.makeLeaf(w)
			continue
		}

		left, right, err := w.ds.Partition(split)
		if err != nil {
			return err
		}
		if left.NSamples() == 0 || right.NSamples() == 0 {
			// defensive: a viable-looking split that failed to separate
			// anything once actually committed
			t.makeLeaf(w)
			continue
		}
		if t.MinLeaf > 0 && (left.NSamples() < t.MinLeaf || right.NSamples() < t.MinLeaf) {
			t.makeLeaf(w)
			continue
		}

		leftIdx := len(t.Nodes)
		t.Nodes = append(t.Nodes, Node[TS, TL]{})
		rightIdx := len(t.Nodes)
		t.Nodes = append(t.Nodes, Node[TS, TL]{})

		t.Nodes[w.nodeIdx] = Node[TS, TL]{
			Samples:    n,
			Impurity:   preScore,
			SplitTheta: split.Theta,
			Threshold:  split.Threshold,
			Left:       leftIdx,
			Right:      rightIdx,
		}

		stack = append(stack, workItem[S, TS, TL, T, P]{ds: right, depth: w.depth + 1, nodeIdx: rightIdx})
		stack = append(stack, workItem[S, TS, TL, T, P]{ds: left, depth: w.depth + 1, nodeIdx: leftIdx})
	}

	return nil
}

func (t *Tree[S, TS, TL, T, P]) makeLeaf(w workItem[S, TS, TL, T, P]) {
	t.Nodes[w.nodeIdx] = Node[TS, TL]{
		Leaf:      true,
		Samples:   w.ds.NSamples(),
		Impurity:  w.ds.SplitCriterion(),
		LeafParam: w.ds.TrainLeafPredictor(),
	}
}

// Predict traverses the tree for s and returns the leaf's prediction.
// Samples whose split feature is <= the node's threshold go left, matching
// dataset.Partition's predicate. Calling Predict before Fit (an empty
// arena) panics; a tree with no nodes is a programming error, not a
// reportable runtime condition.
func (t *Tree[S, TS, TL, T, P]) Predict(s S) P {
	idx := 0
	for !t.Nodes[idx].Leaf {
		n := &t.Nodes[idx]
		if s.Feature(n.SplitTheta) <= n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
	return s.Predict(t.Nodes[idx].LeafParam)
}

// Depth returns the tree's maximum depth (root counts as depth 0).
func (t *Tree[S, TS, TL, T, P]) Depth() int {
	return depthFrom(t.Nodes, 0, 0)
}

func depthFrom[TS, TL any](nodes []Node[TS, TL], idx, depth int) int {
	if nodes[idx].Leaf {
		return depth
	}
	l := depthFrom(nodes, nodes[idx].Left, depth+1)
	r := depthFrom(nodes, nodes[idx].Right, depth+1)
	return int(math.Max(float64(l), float64(r)))
}

// VarImp computes spec.md's supplemented variable-importance feature
// (grounded on the teacher's tree/classifier.go:VarImp): for each distinct
// theta used as a split, the total impurity decrease it produced weighted
// by the node's sample count, summed over the tree. TS must be comparable
// here even though Tree itself only requires TS any, since importance is
// keyed by theta identity (e.g. a column index).
func VarImp[S sample.Sample[TS, TL, T, P], TS comparable, TL, T, P any](t *Tree[S, TS, TL, T, P]) map[TS]float64 {
	imp := make(map[TS]float64)
	for _, n := range t.Nodes {
		if n.Leaf {
			continue
		}
		lImp := t.Nodes[n.Left].Impurity
		rImp := t.Nodes[n.Right].Impurity
		lN := float64(t.Nodes[n.Left].Samples)
		rN := float64(t.Nodes[n.Right].Samples)
		decrease := float64(n.Samples) * (n.Impurity - (lN*lImp+rN*rImp)/float64(n.Samples))
		imp[n.SplitTheta] += decrease
	}
	return imp
}
