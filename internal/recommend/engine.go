// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

package recommend

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/bookgraph/internal/metrics"
	"github.com/tomtom215/bookgraph/internal/reviewgraph"
	"github.com/tomtom215/bookgraph/internal/validation"
)

// Engine computes similarity scores and recommendations over one review
// graph. It is safe for concurrent use.
type Engine struct {
	graph  *reviewgraph.Graph
	logger zerolog.Logger
}

// NewEngine creates an engine over g.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(g *reviewgraph.Graph, logger zerolog.Logger) (*Engine, error) {
	if g == nil {
		return nil, validation.New("Graph", "required", "Graph is required", nil)
	}

	return &Engine{
		graph:  g,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Graph returns the review graph the engine scores over.
func (e *Engine) Graph() *reviewgraph.Graph {
	return e.graph
}

// UnweightedSimilarity returns the Jaccard similarity of two books.
func (e *Engine) UnweightedSimilarity(a, b reviewgraph.BookID) (float64, error) {
	return e.Similarity(MetricUnweighted, a, b)
}

// StrictWeightedSimilarity returns the strict weighted similarity of two books.
func (e *Engine) StrictWeightedSimilarity(a, b reviewgraph.BookID) (float64, error) {
	return e.Similarity(MetricStrictWeighted, a, b)
}

// Similarity scores two books with the given metric.
func (e *Engine) Similarity(m Metric, a, b reviewgraph.BookID) (float64, error) {
	scorer, err := ScorerFor(m)
	if err != nil {
		return 0, err
	}

	ra, err := e.graph.ReviewersOf(a)
	if err != nil {
		return 0, err
	}
	rb, err := e.graph.ReviewersOf(b)
	if err != nil {
		return 0, err
	}

	metrics.RecordSimilarity(m.String(), "book")
	return scorer.Score(ra, rb), nil
}

// UserSimilarity scores two users with the given metric, comparing the
// books each of them reviewed.
func (e *Engine) UserSimilarity(m Metric, u, v reviewgraph.UserID) (float64, error) {
	scorer, err := ScorerFor(m)
	if err != nil {
		return 0, err
	}

	ru, err := e.graph.ReviewsBy(u)
	if err != nil {
		return 0, err
	}
	rv, err := e.graph.ReviewsBy(v)
	if err != nil {
		return 0, err
	}

	metrics.RecordSimilarity(m.String(), "user")
	return scorer.Score(ru, rv), nil
}

// Recommend ranks q.Candidates by similarity to q.Target and returns at most
// q.TopN entries ordered by descending score, ties by ascending book id.
//
// Argument checks run before any lookup: a non-positive TopN or an unknown
// metric fails with validation.ErrValidation. A target or candidate missing
// from the graph fails with reviewgraph.ErrNotFound. An empty pool yields an
// empty result.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) Recommend(q Query) (recs []ScoredBook, err error) {
	start := time.Now()
	if q.RequestID == "" {
		q.RequestID = uuid.NewString()
	}
	logger := e.requestLogger(q)

	defer func() {
		kind := metrics.ClassifyError(err, validation.ErrValidation, reviewgraph.ErrNotFound)
		metrics.RecordRecommend(q.Metric.String(), len(q.Candidates), time.Since(start), kind)
		if err != nil {
			logger.Debug().Err(err).Msg("recommendation failed")
		}
	}()

	if verr := validation.ValidateStruct(&q); verr != nil {
		return nil, fmt.Errorf("recommend: %w", verr)
	}
	scorer, err := ScorerFor(q.Metric)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	target, err := e.graph.ReviewersOf(q.Target)
	if err != nil {
		return nil, fmt.Errorf("recommend: target: %w", err)
	}

	pool := candidatePool(q.Target, q.Candidates)
	scored := make([]ScoredBook, 0, len(pool))
	for _, id := range pool {
		reviewers, err := e.graph.ReviewersOf(id)
		if err != nil {
			return nil, fmt.Errorf("recommend: candidate: %w", err)
		}
		scored = append(scored, ScoredBook{Book: id, Score: scorer.Score(target, reviewers)})
	}
	metrics.RecordSimilarities(q.Metric.String(), "book", len(pool))

	rankScored(scored)
	if len(scored) > q.TopN {
		scored = scored[:q.TopN]
	}

	logger.Debug().
		Int("candidates", len(pool)).
		Int("returned", len(scored)).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")

	return scored, nil
}

// RecommendFromAll ranks every other book in the graph against target.
func (e *Engine) RecommendFromAll(target reviewgraph.BookID, topN int, m Metric) ([]ScoredBook, error) {
	return e.Recommend(Query{
		Target:     target,
		Candidates: e.graph.Books(),
		TopN:       topN,
		Metric:     m,
	})
}

//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) requestLogger(q Query) zerolog.Logger {
	return e.logger.With().
		Str("request_id", q.RequestID).
		Str("target", q.Target).
		Str("metric", q.Metric.String()).
		Int("top_n", q.TopN).
		Logger()
}

// candidatePool drops the target and repeated ids, keeping first occurrence order.
func candidatePool(target reviewgraph.BookID, candidates []reviewgraph.BookID) []reviewgraph.BookID {
	seen := make(map[reviewgraph.BookID]struct{}, len(candidates))
	pool := make([]reviewgraph.BookID, 0, len(candidates))
	for _, id := range candidates {
		if id == target {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		pool = append(pool, id)
	}
	return pool
}

// rankScored sorts by descending score, then ascending book id.
func rankScored(items []ScoredBook) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].Book < items[j].Book
	})
}
