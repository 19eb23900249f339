// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

package reviewgraph

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookgraph/internal/logging"
	"github.com/tomtom215/bookgraph/internal/metrics"
	"github.com/tomtom215/bookgraph/internal/validation"
)

type edgeKey struct {
	user UserID
	book BookID
}

// edgeAcc accumulates the ratings seen for one (user, book) pair.
type edgeAcc struct {
	sum   float64
	count int
}

type builder struct {
	opts      Options
	ratingTag string
	logger    zerolog.Logger

	edges map[edgeKey]*edgeAcc
	stats Stats
}

// Build constructs an immutable Graph from rows and a book catalog mapping
// book ids to display names. Every catalog book becomes a vertex even when
// nobody reviewed it. Empty input yields an empty graph.
func Build(rows []Row, catalog map[BookID]string, opts Options) (g *Graph, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordGraphBuild(time.Since(start), err)
	}()

	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("reviewgraph: invalid options: %w", err)
	}

	for id := range catalog {
		if id == "" {
			return nil, fmt.Errorf("reviewgraph: catalog: %w",
				validation.New("Book", "required", "catalog book id is required", id))
		}
	}

	b := &builder{
		opts:      opts,
		ratingTag: opts.ratingTag(),
		logger:    logging.Component("reviewgraph"),
		edges:     make(map[edgeKey]*edgeAcc, len(rows)),
	}

	for i := range rows {
		if err := b.add(i, rows[i]); err != nil {
			return nil, fmt.Errorf("reviewgraph: %w", err)
		}
	}

	g = b.graph(catalog)

	metrics.RecordGraphRows(g.stats.RowsAccepted, g.stats.RowsSkipped, g.stats.RowsMerged)
	metrics.UpdateGraphSize(g.stats.Users, g.stats.Books, g.stats.Edges)

	b.logger.Info().
		Int("users", g.stats.Users).
		Int("books", g.stats.Books).
		Int("edges", g.stats.Edges).
		Int("rows_skipped", g.stats.RowsSkipped).
		Int("rows_merged", g.stats.RowsMerged).
		Dur("duration", time.Since(start)).
		Msg("review graph built")

	return g, nil
}

// add validates one row and folds it into the edge set.
func (b *builder) add(index int, row Row) error {
	if verr := b.check(row); verr != nil {
		rowErr := &RowError{
			Index:  index,
			User:   row.User,
			Book:   row.Book,
			Rating: row.Rating,
			Reason: verr.Error(),
			Err:    verr,
		}
		if b.opts.InvalidRows == InvalidRowsSkip {
			b.stats.RowsSkipped++
			b.logger.Warn().
				Int("row", index).
				Str("user_id", row.User).
				Str("book_id", row.Book).
				Str("reason", rowErr.Reason).
				Msg("skipping invalid review row")
			return nil
		}
		return rowErr
	}

	key := edgeKey{user: row.User, book: row.Book}
	acc, exists := b.edges[key]
	if !exists {
		b.edges[key] = &edgeAcc{sum: row.Rating, count: 1}
		b.stats.RowsAccepted++
		return nil
	}

	switch b.opts.Duplicates {
	case DuplicatesOverwrite:
		acc.sum, acc.count = row.Rating, 1
	case DuplicatesAverage:
		acc.sum += row.Rating
		acc.count++
	default:
		return &RowError{
			Index:  index,
			User:   row.User,
			Book:   row.Book,
			Rating: row.Rating,
			Reason: ReasonDuplicate,
		}
	}
	b.stats.RowsMerged++
	return nil
}

// check returns the first field failure for a row, or nil.
func (b *builder) check(row Row) *validation.RequestValidationError {
	if err := validation.ValidateVar("User", row.User, "required"); err != nil {
		return err
	}
	if err := validation.ValidateVar("Book", row.Book, "required"); err != nil {
		return err
	}
	return validation.ValidateVar("Rating", row.Rating, b.ratingTag)
}

// graph materializes both adjacency views from the accumulated edges.
func (b *builder) graph(catalog map[BookID]string) *Graph {
	g := &Graph{
		byBook: make(map[BookID]map[UserID]float64, len(catalog)),
		byUser: make(map[UserID]map[BookID]float64),
		names:  make(map[BookID]string, len(catalog)),
	}

	for id, name := range catalog {
		g.names[id] = name
		g.byBook[id] = make(map[UserID]float64)
	}

	for key, acc := range b.edges {
		rating := acc.sum / float64(acc.count)

		reviewers, ok := g.byBook[key.book]
		if !ok {
			reviewers = make(map[UserID]float64)
			g.byBook[key.book] = reviewers
		}
		reviewers[key.user] = rating

		books, ok := g.byUser[key.user]
		if !ok {
			books = make(map[BookID]float64)
			g.byUser[key.user] = books
		}
		books[key.book] = rating
	}

	g.books = sortedKeys(g.byBook)
	g.users = sortedKeys(g.byUser)

	g.stats = b.stats
	g.stats.Users = len(g.users)
	g.stats.Books = len(g.books)
	g.stats.Edges = len(b.edges)

	return g
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
