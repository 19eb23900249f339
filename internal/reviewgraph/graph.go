// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

package reviewgraph

// Graph is an immutable bipartite review graph. Both adjacency maps hold the
// same edge set and are never written after Build returns.
type Graph struct {
	byBook map[BookID]map[UserID]float64
	byUser map[UserID]map[BookID]float64
	names  map[BookID]string

	books []BookID
	users []UserID
	stats Stats
}

// ReviewersOf returns the users who reviewed book with their ratings.
func (g *Graph) ReviewersOf(book BookID) (Ratings, error) {
	m, ok := g.byBook[book]
	if !ok {
		return Ratings{}, bookNotFound(book)
	}
	return Ratings{m: m}, nil
}

// ReviewsBy returns the books user reviewed with their ratings.
func (g *Graph) ReviewsBy(user UserID) (Ratings, error) {
	m, ok := g.byUser[user]
	if !ok {
		return Ratings{}, userNotFound(user)
	}
	return Ratings{m: m}, nil
}

// Rating returns the rating user gave book, if that edge exists.
func (g *Graph) Rating(user UserID, book BookID) (float64, bool) {
	v, ok := g.byUser[user][book]
	return v, ok
}

// HasBook reports whether book is a vertex.
func (g *Graph) HasBook(book BookID) bool {
	_, ok := g.byBook[book]
	return ok
}

// HasUser reports whether user is a vertex.
func (g *Graph) HasUser(user UserID) bool {
	_, ok := g.byUser[user]
	return ok
}

// Books returns every book id in ascending order. The caller owns the slice.
func (g *Graph) Books() []BookID {
	out := make([]BookID, len(g.books))
	copy(out, g.books)
	return out
}

// Users returns every user id in ascending order. The caller owns the slice.
func (g *Graph) Users() []UserID {
	out := make([]UserID, len(g.users))
	copy(out, g.users)
	return out
}

// Name returns the catalog display name of book. Books that only appeared
// in review rows have no name.
func (g *Graph) Name(book BookID) (string, bool) {
	name, ok := g.names[book]
	return name, ok
}

// AverageRating returns the mean rating of book over its reviewers.
func (g *Graph) AverageRating(book BookID) (float64, error) {
	reviewers, err := g.ReviewersOf(book)
	if err != nil {
		return 0, err
	}
	if reviewers.Len() == 0 {
		return 0, ErrNoRatings
	}
	return reviewers.Mean(), nil
}

// Stats returns the vertex, edge and row counts recorded at build time.
func (g *Graph) Stats() Stats {
	return g.stats
}
