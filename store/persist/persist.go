// Package persist saves and loads a fitted forest.Forest with encoding/gob,
// grounded directly on the teacher's (wlattner/rf) model.go Save/Load
// methods (gob.NewEncoder(w).Encode(m) / gob.NewDecoder(r).Decode(m)). It
// has no save/load for a single tree.Tree.
//
// gob cannot encode an uninstantiated generic type, so this package is
// written against one concrete instantiation at a time — exactly how the
// teacher's gob code is written against its own concrete
// forest.Classifier/forest.Regressor rather than a generic model type.
package persist

import (
	"encoding/gob"
	"io"

	"github.com/hx-labs/xtrees/counter"
	"github.com/hx-labs/xtrees/forest"
	"github.com/hx-labs/xtrees/tabular"
	"github.com/hx-labs/xtrees/tree"
)

// ClassifForest is the gob-encodable shape of a forest fit over
// tabular.ClassifSample: forest.Forest's Agg field holds an interface
// value and is not stored, so persistence round-trips the tree arenas and
// reconstructs Agg (a pure function of NClasses) on Load.
type ClassifForest struct {
	Trees    [][]tree.Node[int, counter.Counter]
	NClasses int
}

// SaveClassifForest writes f's tree arenas to w.
func SaveClassifForest(w io.Writer, f *forest.Forest[tabular.ClassifSample, int, counter.Counter, int, counter.Counter], nClasses int) error {
	out := ClassifForest{NClasses: nClasses}
	for _, t := range f.Trees {
		out.Trees = append(out.Trees, t.Nodes)
	}
	return gob.NewEncoder(w).Encode(out)
}

// LoadClassifForest reads a forest previously written by
// SaveClassifForest and reconstructs its Aggregator.
func LoadClassifForest(r io.Reader) (*forest.Forest[tabular.ClassifSample, int, counter.Counter, int, counter.Counter], error) {
	var in ClassifForest
	if err := gob.NewDecoder(r).Decode(&in); err != nil {
		return nil, err
	}
	f := &forest.Forest[tabular.ClassifSample, int, counter.Counter, int, counter.Counter]{
		Agg: tabular.ClassifAggregator{NClasses: in.NClasses},
	}
	for _, nodes := range in.Trees {
		f.Trees = append(f.Trees, &tree.Tree[tabular.ClassifSample, int, counter.Counter, int, counter.Counter]{Nodes: nodes})
	}
	return f, nil
}

// RegressForest is ClassifForest's regression counterpart: leaf parameters
// are plain float64 means, already gob-encodable with no registration.
type RegressForest struct {
	Trees [][]tree.Node[int, float64]
}

func SaveRegressForest(w io.Writer, f *forest.Forest[tabular.RegressSample, int, float64, float64, float64]) error {
	out := RegressForest{}
	for _, t := range f.Trees {
		out.Trees = append(out.Trees, t.Nodes)
	}
	return gob.NewEncoder(w).Encode(out)
}

func LoadRegressForest(r io.Reader) (*forest.Forest[tabular.RegressSample, int, float64, float64, float64], error) {
	var in RegressForest
	if err := gob.NewDecoder(r).Decode(&in); err != nil {
		return nil, err
	}
	f := &forest.Forest[tabular.RegressSample, int, float64, float64, float64]{
		Agg: tabular.RegressAggregator{},
	}
	for _, nodes := range in.Trees {
		f.Trees = append(f.Trees, &tree.Tree[tabular.RegressSample, int, float64, float64, float64]{Nodes: nodes})
	}
	return f, nil
}
