// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

package reviewgraph

import "sort"

// UserID identifies a reviewer. Ids are opaque and compared exactly.
type UserID = string

// BookID identifies a book. Ids are opaque and compared exactly.
type BookID = string

// Row is one parsed review: a user's rating of a book.
type Row struct {
	User   UserID  `json:"user_id"`
	Book   BookID  `json:"book_id"`
	Rating float64 `json:"rating"`
}

// Stats summarizes a built graph and how its input rows were handled.
type Stats struct {
	Users int `json:"users"`
	Books int `json:"books"`
	Edges int `json:"edges"`

	// RowsAccepted counts rows that created an edge.
	RowsAccepted int `json:"rows_accepted"`
	// RowsMerged counts duplicate rows folded into an existing edge.
	RowsMerged int `json:"rows_merged"`
	// RowsSkipped counts invalid rows dropped under the skip policy.
	RowsSkipped int `json:"rows_skipped"`
}

// Ratings is a read-only view of one vertex's neighbours and the rating on
// each edge. For ReviewersOf the keys are user ids; for ReviewsBy they are
// book ids. The zero value is an empty view.
type Ratings struct {
	m map[string]float64
}

// Len returns the number of neighbours.
func (r Ratings) Len() int {
	return len(r.m)
}

// Get returns the rating on the edge to id.
func (r Ratings) Get(id string) (float64, bool) {
	v, ok := r.m[id]
	return v, ok
}

// Has reports whether id is a neighbour.
func (r Ratings) Has(id string) bool {
	_, ok := r.m[id]
	return ok
}

// IDs returns the neighbour ids in ascending order.
func (r Ratings) IDs() []string {
	ids := make([]string, 0, len(r.m))
	for id := range r.m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Each calls fn for every neighbour. Iteration order is unspecified.
func (r Ratings) Each(fn func(id string, rating float64)) {
	for id, v := range r.m {
		fn(id, v)
	}
}

// Shared calls fn for every id present in both views with the two ratings.
// Iteration runs over the smaller view.
func (r Ratings) Shared(other Ratings, fn func(id string, a, b float64)) {
	if len(r.m) <= len(other.m) {
		for id, a := range r.m {
			if b, ok := other.m[id]; ok {
				fn(id, a, b)
			}
		}
		return
	}
	for id, b := range other.m {
		if a, ok := r.m[id]; ok {
			fn(id, a, b)
		}
	}
}

// Mean returns the average rating, or 0 for an empty view.
func (r Ratings) Mean() float64 {
	if len(r.m) == 0 {
		return 0
	}
	var sum float64
	for _, v := range r.m {
		sum += v
	}
	return sum / float64(len(r.m))
}
