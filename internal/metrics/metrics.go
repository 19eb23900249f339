// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Error kinds used as label values. Callers classify their errors before
// recording so that label cardinality stays bounded.
const (
	ErrorKindValidation = "validation"
	ErrorKindNotFound   = "not_found"
	ErrorKindCanceled   = "canceled"
	ErrorKindOther      = "other"
)

// Row outcomes recorded while building a review graph.
const (
	RowAccepted = "accepted"
	RowSkipped  = "skipped"
	RowMerged   = "merged"
)

var (
	// Review Graph Metrics
	GraphBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookgraph_graph_builds_total",
			Help: "Total number of review graph builds by result",
		},
		[]string{"result"}, // "success", "error"
	)

	GraphBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bookgraph_graph_build_duration_seconds",
			Help:    "Duration of review graph construction in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	GraphRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookgraph_graph_rows_total",
			Help: "Total number of input review rows by outcome",
		},
		[]string{"outcome"}, // "accepted", "skipped", "merged"
	)

	GraphVertices = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bookgraph_graph_vertices",
			Help: "Number of vertices in the most recently built review graph",
		},
		[]string{"kind"}, // "user", "book"
	)

	GraphEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookgraph_graph_edges",
			Help: "Number of review edges in the most recently built review graph",
		},
	)

	// Similarity Metrics
	SimilarityComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookgraph_similarity_computations_total",
			Help: "Total number of pairwise similarity computations",
		},
		[]string{"metric", "side"}, // side: "book", "user"
	)

	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookgraph_recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"metric"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookgraph_recommend_duration_seconds",
			Help:    "Recommendation latency in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"metric"},
	)

	RecommendErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookgraph_recommend_errors_total",
			Help: "Total number of failed recommendation requests by error kind",
		},
		[]string{"kind"},
	)

	RecommendCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bookgraph_recommend_candidates",
			Help:    "Number of candidates scored per recommendation request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	// Book Graph & Clustering Metrics
	BookGraphBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookgraph_book_graph_build_duration_seconds",
			Help:    "Duration of book-to-book graph construction in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"metric"},
	)

	BookGraphEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookgraph_book_graph_edges",
			Help: "Number of edges in the most recently built book graph",
		},
	)

	ClusterMergesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookgraph_cluster_merges_total",
			Help: "Total number of cluster merges by strategy",
		},
		[]string{"strategy"}, // "random", "greedy"
	)

	// Prediction Metrics
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookgraph_evaluations_total",
			Help: "Total number of predictor evaluations by predictor and result",
		},
		[]string{"predictor", "result"},
	)

	EvaluationRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookgraph_evaluation_rows_total",
			Help: "Total number of rows scored during predictor evaluation",
		},
		[]string{"predictor"},
	)

	EvaluationAverageError = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bookgraph_evaluation_average_error",
			Help: "Mean absolute error of the most recent evaluation per predictor",
		},
		[]string{"predictor"},
	)
)

// RecordGraphBuild records the outcome of a review graph build.
func RecordGraphBuild(duration time.Duration, err error) {
	GraphBuildDuration.Observe(duration.Seconds())
	if err != nil {
		GraphBuildsTotal.WithLabelValues("error").Inc()
		return
	}
	GraphBuildsTotal.WithLabelValues("success").Inc()
}

// RecordGraphRows adds row outcome counts from a build.
func RecordGraphRows(accepted, skipped, merged int) {
	GraphRowsTotal.WithLabelValues(RowAccepted).Add(float64(accepted))
	GraphRowsTotal.WithLabelValues(RowSkipped).Add(float64(skipped))
	GraphRowsTotal.WithLabelValues(RowMerged).Add(float64(merged))
}

// UpdateGraphSize sets the vertex and edge gauges for a freshly built graph.
func UpdateGraphSize(users, books, edges int) {
	GraphVertices.WithLabelValues("user").Set(float64(users))
	GraphVertices.WithLabelValues("book").Set(float64(books))
	GraphEdges.Set(float64(edges))
}

// RecordSimilarity counts one pairwise similarity computation.
func RecordSimilarity(metric, side string) {
	SimilarityComputations.WithLabelValues(metric, side).Inc()
}

// RecordSimilarities counts n pairwise similarity computations.
func RecordSimilarities(metric, side string, n int) {
	SimilarityComputations.WithLabelValues(metric, side).Add(float64(n))
}

// RecordRecommend records a recommendation request. errKind is empty on success.
func RecordRecommend(metric string, candidates int, duration time.Duration, errKind string) {
	RecommendRequestsTotal.WithLabelValues(metric).Inc()
	RecommendDuration.WithLabelValues(metric).Observe(duration.Seconds())
	if errKind != "" {
		RecommendErrors.WithLabelValues(errKind).Inc()
		return
	}
	RecommendCandidates.Observe(float64(candidates))
}

// RecordBookGraphBuild records a book graph construction.
func RecordBookGraphBuild(metric string, edges int, duration time.Duration) {
	BookGraphBuildDuration.WithLabelValues(metric).Observe(duration.Seconds())
	BookGraphEdges.Set(float64(edges))
}

// RecordClusterMerge counts one cluster merge.
func RecordClusterMerge(strategy string) {
	ClusterMergesTotal.WithLabelValues(strategy).Inc()
}

// RecordEvaluation records a predictor evaluation run.
func RecordEvaluation(predictor string, rows int, averageError float64, err error) {
	if err != nil {
		EvaluationsTotal.WithLabelValues(predictor, "error").Inc()
		return
	}
	EvaluationsTotal.WithLabelValues(predictor, "success").Inc()
	EvaluationRows.WithLabelValues(predictor).Add(float64(rows))
	EvaluationAverageError.WithLabelValues(predictor).Set(averageError)
}

// ClassifyError maps an error onto one of the ErrorKind label values using
// the supplied sentinels.
func ClassifyError(err, validation, notFound error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, validation):
		return ErrorKindValidation
	case errors.Is(err, notFound):
		return ErrorKindNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrorKindCanceled
	default:
		return ErrorKindOther
	}
}
