// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

package reviewgraph

import (
	"math"
	"strconv"

	"github.com/tomtom215/bookgraph/internal/validation"
)

// DuplicatePolicy selects how repeated (user, book) rows are handled.
type DuplicatePolicy string

const (
	DuplicatesReject    DuplicatePolicy = "reject"
	DuplicatesOverwrite DuplicatePolicy = "overwrite"
	DuplicatesAverage   DuplicatePolicy = "average"
)

// InvalidRowPolicy selects how rows failing validation are handled.
type InvalidRowPolicy string

const (
	InvalidRowsReject InvalidRowPolicy = "reject"
	InvalidRowsSkip   InvalidRowPolicy = "skip"
)

// Options controls graph construction.
type Options struct {
	// MinRating and MaxRating bound accepted ratings, inclusive. Negative
	// bounds are allowed. Leaving both at 0 selects the default range, so a
	// 0..0 scale cannot be expressed.
	// Default: 1 and 5
	MinRating float64
	MaxRating float64 `validate:"gtfield=MinRating"`

	// Duplicates is the policy for repeated (user, book) rows.
	// Default: reject
	Duplicates DuplicatePolicy `validate:"omitempty,oneof=reject overwrite average"`

	// InvalidRows is the policy for rows that fail validation.
	// Default: reject
	InvalidRows InvalidRowPolicy `validate:"omitempty,oneof=reject skip"`
}

// DefaultOptions returns the default build options.
func DefaultOptions() Options {
	return Options{
		MinRating:   1,
		MaxRating:   5,
		Duplicates:  DuplicatesReject,
		InvalidRows: InvalidRowsReject,
	}
}

// Validate checks the options. The zero value is valid and means defaults.
func (o Options) Validate() error {
	o = o.withDefaults()
	if math.IsNaN(o.MinRating) || math.IsInf(o.MinRating, 0) {
		return validation.New("MinRating", "finite", "MinRating must be a finite number", o.MinRating)
	}
	if math.IsInf(o.MaxRating, 0) {
		return validation.New("MaxRating", "finite", "MaxRating must be a finite number", o.MaxRating)
	}
	if err := validation.ValidateStruct(&o); err != nil {
		return err
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.MinRating == 0 && o.MaxRating == 0 {
		o.MinRating, o.MaxRating = 1, 5
	}
	if o.Duplicates == "" {
		o.Duplicates = DuplicatesReject
	}
	if o.InvalidRows == "" {
		o.InvalidRows = InvalidRowsReject
	}
	return o
}

// ratingTag is the validator tag enforcing the rating range.
func (o Options) ratingTag() string {
	return "gte=" + strconv.FormatFloat(o.MinRating, 'g', -1, 64) +
		",lte=" + strconv.FormatFloat(o.MaxRating, 'g', -1, 64)
}
