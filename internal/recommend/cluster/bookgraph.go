// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

package cluster

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/bookgraph/internal/logging"
	"github.com/tomtom215/bookgraph/internal/metrics"
	"github.com/tomtom215/bookgraph/internal/recommend"
	"github.com/tomtom215/bookgraph/internal/reviewgraph"
)

// Edge is an undirected weighted link between two books, with A < B.
type Edge struct {
	A      reviewgraph.BookID `json:"a"`
	B      reviewgraph.BookID `json:"b"`
	Weight float64            `json:"weight"`
}

// BookGraph is an immutable undirected graph over books.
type BookGraph struct {
	books []reviewgraph.BookID
	adj   map[reviewgraph.BookID]map[reviewgraph.BookID]float64
	edges []Edge
}

// Weight returns the weight of the edge between a and b, or 0 if unlinked.
func (g *BookGraph) Weight(a, b reviewgraph.BookID) float64 {
	return g.adj[a][b]
}

// Books returns every book in ascending order. The caller owns the slice.
func (g *BookGraph) Books() []reviewgraph.BookID {
	out := make([]reviewgraph.BookID, len(g.books))
	copy(out, g.books)
	return out
}

// Edges returns every edge ordered by (A, B). The caller owns the slice.
func (g *BookGraph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// BuildBookGraph scores every pair of books in the engine's review graph and
// links those scoring above cfg.Threshold. Every book is a vertex.
func BuildBookGraph(ctx context.Context, engine *recommend.Engine, cfg Config) (*BookGraph, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("book graph: invalid config: %w", err)
	}

	start := time.Now()
	ctx = logging.EnsureRunID(ctx)
	logger := logging.CtxComponent(ctx, "cluster")
	books := engine.Graph().Books()

	var (
		mu    sync.Mutex
		edges []Edge
	)

	eg, gCtx := errgroup.WithContext(ctx)
	workers := cfg.Workers
	if workers > len(books) {
		workers = len(books)
	}

	// Row i scores the pairs (i, j>i); rows are striped across workers so
	// the long early rows are spread evenly.
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			var local []Edge
			for i := w; i < len(books); i += workers {
				if err := gCtx.Err(); err != nil {
					return err
				}
				for j := i + 1; j < len(books); j++ {
					score, err := engine.Similarity(cfg.Metric, books[i], books[j])
					if err != nil {
						return err
					}
					if score > cfg.Threshold {
						local = append(local, Edge{A: books[i], B: books[j], Weight: score})
					}
				}
			}

			mu.Lock()
			edges = append(edges, local...)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("book graph: %w", err)
	}

	g := newBookGraph(books, edges)

	metrics.RecordBookGraphBuild(cfg.Metric.String(), len(g.edges), time.Since(start))
	logger.Info().
		Int("books", len(books)).
		Int("edges", len(g.edges)).
		Str("metric", cfg.Metric.String()).
		Float64("threshold", cfg.Threshold).
		Dur("duration", time.Since(start)).
		Msg("book graph built")

	return g, nil
}

func newBookGraph(books []reviewgraph.BookID, edges []Edge) *BookGraph {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})

	adj := make(map[reviewgraph.BookID]map[reviewgraph.BookID]float64, len(books))
	for _, b := range books {
		adj[b] = make(map[reviewgraph.BookID]float64)
	}
	for _, e := range edges {
		adj[e.A][e.B] = e.Weight
		adj[e.B][e.A] = e.Weight
	}

	return &BookGraph{books: books, adj: adj, edges: edges}
}
