// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

package recommend

import (
	"math"
	"sort"

	"github.com/tomtom215/bookgraph/internal/reviewgraph"
)

// Scorer computes the similarity of two vertices from their neighbour
// ratings. Implementations must be symmetric and return values in [0, 1].
type Scorer interface {
	Score(a, b reviewgraph.Ratings) float64
}

// JaccardScorer implements MetricUnweighted.
type JaccardScorer struct{}

// Score returns |A ∩ B| / |A ∪ B| over neighbour ids, or 0 when both are empty.
func (JaccardScorer) Score(a, b reviewgraph.Ratings) float64 {
	if a.Len() == 0 && b.Len() == 0 {
		return 0
	}

	shared := 0
	a.Shared(b, func(string, float64, float64) {
		shared++
	})

	union := a.Len() + b.Len() - shared
	return float64(shared) / float64(union)
}

// MSDScorer implements MetricStrictWeighted as 1 / (1 + mean squared
// difference) over shared neighbours.
type MSDScorer struct{}

// Score returns 0 when a and b share no neighbour. It returns exactly 1
// only when every shared neighbour has identical ratings.
func (MSDScorer) Score(a, b reviewgraph.Ratings) float64 {
	var squared []float64
	identical := true
	a.Shared(b, func(_ string, x, y float64) {
		if x != y {
			identical = false
		}
		d := x - y
		squared = append(squared, d*d)
	})

	if len(squared) == 0 {
		return 0
	}

	// Summed in ascending order so the result does not depend on map order.
	sort.Float64s(squared)
	var sum float64
	for _, s := range squared {
		sum += s
	}

	score := 1 / (1 + sum/float64(len(squared)))
	if score == 1 && !identical {
		// Differences too small to move the quotient off 1.
		return math.Nextafter(1, 0)
	}
	return score
}

var scorers = map[Metric]Scorer{
	MetricUnweighted:     JaccardScorer{},
	MetricStrictWeighted: MSDScorer{},
}

// ScorerFor returns the scorer implementing m.
func ScorerFor(m Metric) (Scorer, error) {
	s, ok := scorers[m]
	if !ok {
		return nil, invalidMetric(m.String())
	}
	return s, nil
}
