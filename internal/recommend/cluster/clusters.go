// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

package cluster

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/tomtom215/bookgraph/internal/logging"
	"github.com/tomtom215/bookgraph/internal/metrics"
	"github.com/tomtom215/bookgraph/internal/recommend"
	"github.com/tomtom215/bookgraph/internal/reviewgraph"
	"github.com/tomtom215/bookgraph/internal/validation"
)

// CrossClusterWeight returns the summed edge weight between c1 and c2
// divided by |c1|·|c2|. Either cluster being empty yields 0.
func CrossClusterWeight(g *BookGraph, c1, c2 []reviewgraph.BookID) float64 {
	if len(c1) == 0 || len(c2) == 0 {
		return 0
	}

	var sum float64
	for _, u := range c1 {
		row := g.adj[u]
		for _, v := range c2 {
			sum += row[v]
		}
	}
	return sum / float64(len(c1)*len(c2))
}

// FindClustersRandom merges clusters until n remain. Each step picks a
// cluster with a rand source seeded by seed and merges it into the cluster
// with the highest cross-cluster weight to it.
func FindClustersRandom(g *BookGraph, n int, seed int64) ([][]reviewgraph.BookID, error) {
	if err := checkClusterCount(n); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic clustering, not security sensitive
	clusters := singletons(g)

	for len(clusters) > n {
		i := rng.Intn(len(clusters))

		best, bestJ := -1.0, -1
		for j := range clusters {
			if j == i {
				continue
			}
			if w := CrossClusterWeight(g, clusters[i], clusters[j]); w > best {
				best, bestJ = w, j
			}
		}

		clusters[bestJ] = append(clusters[bestJ], clusters[i]...)
		clusters = append(clusters[:i], clusters[i+1:]...)
		metrics.RecordClusterMerge(string(StrategyRandom))
	}

	return normalize(clusters), nil
}

// FindClustersGreedy merges clusters until n remain, each step merging the
// pair with the highest cross-cluster weight. Ties keep the earliest pair in
// ascending id order.
func FindClustersGreedy(g *BookGraph, n int) ([][]reviewgraph.BookID, error) {
	if err := checkClusterCount(n); err != nil {
		return nil, err
	}

	clusters := singletons(g)

	for len(clusters) > n {
		best, bestI, bestJ := -1.0, -1, -1
		for i := 0; i < len(clusters); i++ {
			for j := i + 1; j < len(clusters); j++ {
				if w := CrossClusterWeight(g, clusters[i], clusters[j]); w > best {
					best, bestI, bestJ = w, i, j
				}
			}
		}

		clusters[bestJ] = append(clusters[bestJ], clusters[bestI]...)
		clusters = append(clusters[:bestI], clusters[bestI+1:]...)
		metrics.RecordClusterMerge(string(StrategyGreedy))
	}

	return normalize(clusters), nil
}

// Cluster builds the book graph for engine and partitions it into n
// clusters with the given strategy.
func Cluster(ctx context.Context, engine *recommend.Engine, cfg Config, strategy Strategy, n int) ([][]reviewgraph.BookID, error) {
	if _, err := ParseStrategy(string(strategy)); err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}
	if err := checkClusterCount(n); err != nil {
		return nil, err
	}

	ctx = logging.EnsureRunID(ctx)
	g, err := BuildBookGraph(ctx, engine, cfg)
	if err != nil {
		return nil, err
	}

	var clusters [][]reviewgraph.BookID
	if strategy == StrategyGreedy {
		clusters, err = FindClustersGreedy(g, n)
	} else {
		clusters, err = FindClustersRandom(g, n, cfg.Seed)
	}
	if err != nil {
		return nil, err
	}

	logger := logging.CtxComponent(ctx, "cluster")
	logger.Info().
		Str("strategy", string(strategy)).
		Int("requested", n).
		Int("clusters", len(clusters)).
		Msg("books clustered")

	return clusters, nil
}

func checkClusterCount(n int) error {
	if verr := validation.ValidateVar("NumClusters", n, "gt=0"); verr != nil {
		return fmt.Errorf("cluster: %w", verr)
	}
	return nil
}

func singletons(g *BookGraph) [][]reviewgraph.BookID {
	clusters := make([][]reviewgraph.BookID, len(g.books))
	for i, b := range g.books {
		clusters[i] = []reviewgraph.BookID{b}
	}
	return clusters
}

// normalize sorts each cluster and orders clusters by their smallest id.
func normalize(clusters [][]reviewgraph.BookID) [][]reviewgraph.BookID {
	for _, c := range clusters {
		sort.Strings(c)
	}
	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i][0] < clusters[j][0]
	})
	return clusters
}
