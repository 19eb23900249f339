// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

// Package predict estimates the rating a user would give a book and measures
// predictor accuracy against held-out reviews.
//
// Every predictor returns the stored rating when the user already reviewed the
// book, and fails with reviewgraph.ErrNotFound for a book outside the graph.
// Predictions other than MaxRating are rounded half to even onto the rating
// scale.
package predict

import (
	"fmt"
	"math"

	"github.com/tomtom215/bookgraph/internal/recommend"
	"github.com/tomtom215/bookgraph/internal/reviewgraph"
)

// Predictor names used in logs and metric labels.
const (
	NameMaxRating   = "max_rating"
	NameBookAverage = "book_average"
	NameSimilarUser = "similar_user"
)

// Predictor predicts review scores.
type Predictor interface {
	// Name identifies the predictor.
	Name() string

	// Predict returns the rating user is expected to give book.
	Predict(user reviewgraph.UserID, book reviewgraph.BookID) (float64, error)
}

// known returns the stored rating for (user, book), if any, after checking
// that book exists.
func known(g *reviewgraph.Graph, user reviewgraph.UserID, book reviewgraph.BookID) (float64, bool, error) {
	if !g.HasBook(book) {
		return 0, false, &reviewgraph.NotFoundError{Kind: reviewgraph.KindBook, ID: book}
	}
	rating, ok := g.Rating(user, book)
	return rating, ok, nil
}

// MaxRating always predicts the top of the rating scale.
type MaxRating struct {
	graph *reviewgraph.Graph
	max   float64
}

// NewMaxRating creates a MaxRating predictor predicting max.
func NewMaxRating(g *reviewgraph.Graph, max float64) *MaxRating {
	return &MaxRating{graph: g, max: max}
}

// Name implements Predictor.
func (p *MaxRating) Name() string { return NameMaxRating }

// Predict implements Predictor.
func (p *MaxRating) Predict(user reviewgraph.UserID, book reviewgraph.BookID) (float64, error) {
	rating, ok, err := known(p.graph, user, book)
	if err != nil || ok {
		return rating, err
	}
	return p.max, nil
}

// BookAverage predicts the book's rounded average rating, ignoring the user.
type BookAverage struct {
	graph *reviewgraph.Graph
}

// NewBookAverage creates a BookAverage predictor.
func NewBookAverage(g *reviewgraph.Graph) *BookAverage {
	return &BookAverage{graph: g}
}

// Name implements Predictor.
func (p *BookAverage) Name() string { return NameBookAverage }

// Predict implements Predictor. A book with no reviewers fails with
// reviewgraph.ErrNoRatings.
func (p *BookAverage) Predict(user reviewgraph.UserID, book reviewgraph.BookID) (float64, error) {
	rating, ok, err := known(p.graph, user, book)
	if err != nil || ok {
		return rating, err
	}
	return roundedAverage(p.graph, book)
}

func roundedAverage(g *reviewgraph.Graph, book reviewgraph.BookID) (float64, error) {
	avg, err := g.AverageRating(book)
	if err != nil {
		return 0, fmt.Errorf("average rating of %q: %w", book, err)
	}
	return math.RoundToEven(avg), nil
}

// SimilarUser predicts the mean of other reviewers' ratings weighted by their
// similarity to the user. When no reviewer has positive similarity, or the
// user is unknown, it falls back to the rounded book average.
type SimilarUser struct {
	engine *recommend.Engine
	metric recommend.Metric
}

// NewSimilarUser creates a SimilarUser predictor comparing users with metric.
func NewSimilarUser(engine *recommend.Engine, metric recommend.Metric) *SimilarUser {
	return &SimilarUser{engine: engine, metric: metric}
}

// Name implements Predictor.
func (p *SimilarUser) Name() string { return NameSimilarUser }

// Predict implements Predictor.
func (p *SimilarUser) Predict(user reviewgraph.UserID, book reviewgraph.BookID) (float64, error) {
	g := p.engine.Graph()

	rating, ok, err := known(g, user, book)
	if err != nil || ok {
		return rating, err
	}
	if !g.HasUser(user) {
		return roundedAverage(g, book)
	}

	reviewers, err := g.ReviewersOf(book)
	if err != nil {
		return 0, err
	}

	var weighted, total float64
	for _, other := range reviewers.IDs() {
		sim, err := p.engine.UserSimilarity(p.metric, user, other)
		if err != nil {
			return 0, fmt.Errorf("similarity to %q: %w", other, err)
		}
		r, _ := reviewers.Get(other)
		weighted += sim * r
		total += sim
	}

	if total == 0 {
		return roundedAverage(g, book)
	}
	return math.RoundToEven(weighted / total), nil
}
