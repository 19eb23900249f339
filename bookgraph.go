// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

// Package bookgraph wires configuration, logging and the review graph into a
// ready-to-query recommendation service.
//
//	cfg, err := bookgraph.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	svc, err := bookgraph.New(cfg, rows, catalog)
//	if err != nil {
//	    return err
//	}
//	recs, err := svc.Recommend("book-1", candidates)
//
// The caller supplies parsed review rows and the book catalog. Everything
// else (metric, result length, predictor, clustering) comes from the
// configuration.
package bookgraph

import (
	"context"
	"fmt"

	"github.com/tomtom215/bookgraph/internal/config"
	"github.com/tomtom215/bookgraph/internal/logging"
	"github.com/tomtom215/bookgraph/internal/recommend"
	"github.com/tomtom215/bookgraph/internal/recommend/cluster"
	"github.com/tomtom215/bookgraph/internal/recommend/predict"
	"github.com/tomtom215/bookgraph/internal/reviewgraph"
	"github.com/tomtom215/bookgraph/internal/validation"
)

type (
	// Config is the service configuration.
	Config = config.Config
	// Row is one (user, book, rating) review.
	Row = reviewgraph.Row
	// Stats summarizes a built review graph.
	Stats = reviewgraph.Stats
	// ScoredBook is one ranked recommendation.
	ScoredBook = recommend.ScoredBook
	// Evaluation is the outcome of a predictor evaluation.
	Evaluation = predict.Evaluation
	// Edge is a weighted book graph edge.
	Edge = cluster.Edge
)

// LoadConfig loads the layered configuration: defaults, then the optional
// YAML file, then BOOKGRAPH_* environment variables.
func LoadConfig() (*Config, error) {
	return config.LoadWithKoanf()
}

// Service answers recommendation, evaluation and clustering requests over
// one immutable review graph. It is safe for concurrent use.
type Service struct {
	cfg       Config
	engine    *recommend.Engine
	maxRating float64
}

// New validates cfg, configures the global logger from it and builds the
// review graph from rows and catalog.
func New(cfg *Config, rows []Row, catalog map[string]string) (*Service, error) {
	if cfg == nil {
		return nil, validation.New("Config", "required", "Config is required", nil)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("bookgraph: %w", err)
	}

	logging.Init(cfg.Logging.Logging())

	g, err := reviewgraph.Build(rows, catalog, cfg.Ratings.Options())
	if err != nil {
		return nil, fmt.Errorf("bookgraph: %w", err)
	}

	engine, err := recommend.NewEngine(g, logging.Logger())
	if err != nil {
		return nil, fmt.Errorf("bookgraph: %w", err)
	}

	maxRating := cfg.Ratings.MaxRating
	if cfg.Ratings.MinRating == 0 && maxRating == 0 {
		maxRating = reviewgraph.DefaultOptions().MaxRating
	}

	return &Service{cfg: *cfg, engine: engine, maxRating: maxRating}, nil
}

// Engine returns the underlying similarity engine.
func (s *Service) Engine() *recommend.Engine {
	return s.engine
}

// Stats returns the review graph statistics.
func (s *Service) Stats() Stats {
	return s.engine.Graph().Stats()
}

// Name returns the catalog display name of book.
func (s *Service) Name(book string) (string, bool) {
	return s.engine.Graph().Name(book)
}

// UnweightedSimilarity returns the Jaccard similarity of two books.
func (s *Service) UnweightedSimilarity(a, b string) (float64, error) {
	return s.engine.UnweightedSimilarity(a, b)
}

// StrictWeightedSimilarity returns the strict weighted similarity of two books.
func (s *Service) StrictWeightedSimilarity(a, b string) (float64, error) {
	return s.engine.StrictWeightedSimilarity(a, b)
}

// Recommend ranks candidates against target with the configured metric and
// result length.
func (s *Service) Recommend(target string, candidates []string) ([]ScoredBook, error) {
	q, err := s.cfg.Recommend.Query(target, candidates)
	if err != nil {
		return nil, fmt.Errorf("bookgraph: %w", err)
	}
	return s.engine.Recommend(q)
}

// RecommendFromAll ranks every other book in the graph against target.
func (s *Service) RecommendFromAll(target string) ([]ScoredBook, error) {
	return s.Recommend(target, s.engine.Graph().Books())
}

// Evaluate runs the configured predictor over held-out rows.
func (s *Service) Evaluate(ctx context.Context, rows []Row) (Evaluation, error) {
	p, err := s.cfg.Evaluate.NewPredictor(s.engine, s.maxRating)
	if err != nil {
		return Evaluation{}, fmt.Errorf("bookgraph: %w", err)
	}
	return predict.Evaluate(ctx, p, rows, s.cfg.Evaluate.Workers)
}

// BookGraph builds the book-to-book similarity graph and returns its edges.
func (s *Service) BookGraph(ctx context.Context) ([]Edge, error) {
	bg, err := s.cfg.Cluster.BookGraph()
	if err != nil {
		return nil, fmt.Errorf("bookgraph: %w", err)
	}
	g, err := cluster.BuildBookGraph(ctx, s.engine, bg)
	if err != nil {
		return nil, err
	}
	return g.Edges(), nil
}

// Clusters partitions the books with the configured strategy and count.
func (s *Service) Clusters(ctx context.Context) ([][]string, error) {
	bg, err := s.cfg.Cluster.BookGraph()
	if err != nil {
		return nil, fmt.Errorf("bookgraph: %w", err)
	}
	strategy, err := cluster.ParseStrategy(s.cfg.Cluster.Strategy)
	if err != nil {
		return nil, fmt.Errorf("bookgraph: %w", err)
	}
	return cluster.Cluster(ctx, s.engine, bg, strategy, s.cfg.Cluster.NumClusters)
}
