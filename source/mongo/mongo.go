// Package mongo loads tabular.Sample rows from a MongoDB collection of
// {features: [...], target: ...} documents, grounded on
// pbanos-botanic/dataset/mongodataset's Open/Read shape (a session-backed
// reader over one collection) using gopkg.in/mgo.v2.
package mongo

import (
	"fmt"

	mgo "gopkg.in/mgo.v2"

	"github.com/hx-labs/xtrees/tabular"
)

// ReadClassif reads every document in collection from session's default
// database into classification samples, decoding each document's target
// field as an integer class index.
func ReadClassif(session *mgo.Session, collection string) ([]tabular.ClassifSample, error) {
	iter := session.DB("").C(collection).Find(nil).Iter()
	defer iter.Close()

	var rows []tabular.ClassifSample
	var raw struct {
		Features []float64 `bson:"features"`
		Target   int        `bson:"target"`
	}
	for iter.Next(&raw) {
		rows = append(rows, tabular.ClassifSample{
			X:     append([]float64(nil), raw.Features...),
			Class: raw.Target,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", collection, err)
	}
	return rows, nil
}

// ReadRegress mirrors ReadClassif for regression: target decodes as a
// float64.
func ReadRegress(session *mgo.Session, collection string) ([]tabular.RegressSample, error) {
	iter := session.DB("").C(collection).Find(nil).Iter()
	defer iter.Close()

	var rows []tabular.RegressSample
	var raw struct {
		Features []float64 `bson:"features"`
		Target   float64    `bson:"target"`
	}
	for iter.Next(&raw) {
		rows = append(rows, tabular.RegressSample{
			X: append([]float64(nil), raw.Features...),
			Y: raw.Target,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", collection, err)
	}
	return rows, nil
}
