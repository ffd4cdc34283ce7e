// Package splitter implements spec.md §4.F's search for a split: unlike a
// classic CART scan over every sorted threshold, it draws k random (theta,
// tau) candidates and keeps the best, the algorithm original_source/'s
// src/api.rs names BestRandomSplit. No teacher file implements this search
// (the teacher does exhaustive best-of-all-thresholds); this package is
// grounded directly on that Rust type and spec.md §4.F, coded in the
// teacher's loop/tie-break idiom (strict improvement, no sorting).
package splitter

import (
	"math"
	"math/rand"

	"github.com/hx-labs/xtrees/dataset"
	"github.com/hx-labs/xtrees/numeric"
	"github.com/hx-labs/xtrees/sample"
)

// scorer is the subset of dataset.Dataset's criterion surface a trial needs
// to score a candidate split's two sides without mutating the dataset.
type scorer[T any] interface {
	Score(targets []T) float64
}

// BestRandomSplit draws k candidate (theta, threshold) pairs from d and
// returns the one with the lowest sample-weighted post-split criterion
// score. found is false when every trial's feature was constant over the
// subset or produced an empty side — spec.md §7's "no viable split", a
// normal internal signal, not an error. Trials never partition d; they
// score each candidate with a single pass over the current view.
func BestRandomSplit[S sample.Sample[TS, TL, T, P], TS, TL, T, P any](
	d *dataset.Dataset[S, TS, TL, T, P], crit scorer[T], k int, rng *rand.Rand,
) (best sample.Split[TS], bestScore float64, found bool, err error) {
	bestScore = math.Inf(1)

	for trial := 0; trial < k; trial++ {
		theta := d.GenSplitFeature()

		lo, hi, boundsErr := d.FeatureBounds(theta)
		if boundsErr != nil {
			return best, 0, false, boundsErr
		}
		if lo == hi {
			continue // constant feature over this subset, cannot separate anything
		}
		threshold := numeric.UniformBetween(lo, hi, rng)

		var leftTargets, rightTargets []T
		var domainErr error
		d.VisitSamples(func(s S) {
			if domainErr != nil {
				return
			}
			v := s.Feature(theta)
			if math.IsNaN(v) {
				domainErr = dataset.ErrDomainViolation
				return
			}
			if v <= threshold {
				leftTargets = append(leftTargets, s.Target())
			} else {
				rightTargets = append(rightTargets, s.Target())
			}
		})
		if domainErr != nil {
			return best, 0, false, domainErr
		}
		if len(leftTargets) == 0 || len(rightTargets) == 0 {
			continue // threshold didn't separate anything, not a viable split
		}

		n := float64(len(leftTargets) + len(rightTargets))
		score := (float64(len(leftTargets))*crit.Score(leftTargets) +
			float64(len(rightTargets))*crit.Score(rightTargets)) / n

		if !found || score < bestScore {
			found = true
			bestScore = score
			best = sample.Split[TS]{Theta: theta, Threshold: threshold}
		}
	}

	return best, bestScore, found, nil
}
