// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

// Package cluster derives a weighted book-to-book graph from pairwise
// similarity and groups books into clusters over it.
//
// BuildBookGraph links two books when their similarity is strictly above
// Config.Threshold, using the score as the edge weight. Clustering is
// agglomerative: every book starts alone and clusters are merged by
// cross-cluster weight, the summed edge weight between two clusters divided
// by the product of their sizes, until the requested number remain.
//
//   - FindClustersRandom picks a cluster at random (seeded) and merges it into
//     the cluster it is most strongly connected to.
//   - FindClustersGreedy always merges the most strongly connected pair.
//
// Clusters are returned as sorted id slices, ordered by their smallest id.
package cluster
