// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

package reviewgraph

import (
	"errors"
	"fmt"

	"github.com/tomtom215/bookgraph/internal/validation"
)

// ErrNotFound is matched by lookups of users or books absent from the graph.
var ErrNotFound = errors.New("not found")

// ErrNoRatings is returned by AverageRating for a book nobody reviewed.
var ErrNoRatings = errors.New("book has no ratings")

// Vertex kinds reported by NotFoundError.
const (
	KindUser = "user"
	KindBook = "book"
)

// NotFoundError reports an id that is not a vertex of the graph.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func bookNotFound(id BookID) error {
	return &NotFoundError{Kind: KindBook, ID: id}
}

func userNotFound(id UserID) error {
	return &NotFoundError{Kind: KindUser, ID: id}
}

// Row rejection reasons.
const (
	ReasonDuplicate = "duplicate review"
)

// RowError identifies the input row that failed a build.
type RowError struct {
	// Index is the zero-based position of the row in the input.
	Index  int
	User   UserID
	Book   BookID
	Rating float64
	Reason string

	// Err is the underlying field validation error, if any.
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (user %q, book %q): %s", e.Index, e.User, e.Book, e.Reason)
}

// Is reports whether target is validation.ErrValidation.
func (e *RowError) Is(target error) bool {
	return target == validation.ErrValidation
}

func (e *RowError) Unwrap() error {
	return e.Err
}
