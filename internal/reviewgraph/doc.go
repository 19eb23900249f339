// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

/*
Package reviewgraph builds the bipartite user/book review graph.

A Graph holds two adjacency views over one edge set: book to reviewers and
user to reviewed books, each edge weighted by its rating. Graphs are built
once from parsed rows with Build and are immutable afterwards. No method
mutates a Graph, and the Ratings views it hands out are read-only, so a Graph
may be shared between goroutines without locking.

# Building

	g, err := reviewgraph.Build(rows, catalog, reviewgraph.DefaultOptions())
	if err != nil {
	    var rowErr *reviewgraph.RowError
	    if errors.As(err, &rowErr) {
	        // rowErr.Index identifies the offending input row
	    }
	    return err
	}

Row handling is governed by Options:

  - Ratings outside [MinRating, MaxRating] or not finite, and rows with empty
    ids, are invalid. InvalidRows selects "reject" (fail the build) or
    "skip" (log at warn and continue).
  - A second row for the same (user, book) pair is handled per Duplicates:
    "reject" fails the build, "overwrite" keeps the last rating, "average"
    stores the mean of all ratings for the pair.

# Errors

Invalid input matches validation.ErrValidation. Lookups of ids that are not
in the graph return *NotFoundError, which matches ErrNotFound.
*/
package reviewgraph
