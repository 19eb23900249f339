// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

// Package recommend scores book similarity over a review graph and ranks
// recommendation candidates.
//
// # Metrics
//
// Two similarity metrics are available, selected with the Metric enum:
//
//   - MetricUnweighted: Jaccard index of the two books' reviewer sets,
//     ignoring ratings. Two books nobody reviewed score 0.
//   - MetricStrictWeighted: computed over shared reviewers only as
//     1 / (1 + MSD), where MSD is the mean squared difference between each
//     shared reviewer's two ratings. Books without a shared reviewer score 0,
//     and the score is 1 exactly when every shared reviewer rated both books
//     the same.
//
// Both metrics are symmetric and bounded to [0, 1]. The same scorers apply to
// pairs of users through UserSimilarity.
//
// # Usage
//
//	engine, err := recommend.NewEngine(graph, logger)
//	if err != nil {
//	    return err
//	}
//
//	recs, err := engine.Recommend(recommend.Query{
//	    Target:     "book-42",
//	    Candidates: pool,
//	    TopN:       10,
//	    Metric:     recommend.MetricStrictWeighted,
//	})
//
// Results are ordered by descending score with ties broken by ascending book
// id, so identical inputs always produce identical output.
//
// # Thread Safety
//
// The engine holds no mutable state and the graph it wraps is immutable, so
// every method is safe for concurrent use.
package recommend
