// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

package recommend

import (
	"strings"

	"github.com/tomtom215/bookgraph/internal/reviewgraph"
	"github.com/tomtom215/bookgraph/internal/validation"
)

// Metric selects the similarity measure.
type Metric int

const (
	// MetricUnweighted is the Jaccard index over reviewer identity.
	MetricUnweighted Metric = iota
	// MetricStrictWeighted compares the ratings of shared reviewers.
	MetricStrictWeighted
)

// String returns the configuration name of the metric.
func (m Metric) String() string {
	switch m {
	case MetricUnweighted:
		return "unweighted"
	case MetricStrictWeighted:
		return "strict"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the defined metrics.
func (m Metric) Valid() bool {
	return m == MetricUnweighted || m == MetricStrictWeighted
}

// ParseMetric parses a metric name. Matching is case-insensitive.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "unweighted":
		return MetricUnweighted, nil
	case "strict":
		return MetricStrictWeighted, nil
	default:
		return 0, invalidMetric(name)
	}
}

func invalidMetric(value interface{}) error {
	return validation.New("Metric", "oneof", "Metric must be one of: unweighted strict", value)
}

// Query describes one recommendation request.
type Query struct {
	// Target is the book recommendations are computed for.
	Target reviewgraph.BookID `json:"target"`

	// Candidates is the pool to rank. The target and repeated ids are ignored.
	Candidates []reviewgraph.BookID `json:"candidates"`

	// TopN bounds the result length.
	TopN int `json:"top_n" validate:"gt=0"`

	// Metric selects the similarity measure.
	Metric Metric `json:"metric"`

	// RequestID correlates log lines. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// ScoredBook is a ranked recommendation.
type ScoredBook struct {
	Book  reviewgraph.BookID `json:"book_id"`
	Score float64            `json:"score"`
}
