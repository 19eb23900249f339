// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

/*
Package metrics provides Prometheus instrumentation for review graph
construction, similarity scoring, recommendation, clustering and predictor
evaluation.

Collectors are registered on the default registry through promauto, so any
front end that serves prometheus.DefaultGatherer exposes them.

# Available Metrics

Review graph:
  - bookgraph_graph_builds_total{result}
  - bookgraph_graph_build_duration_seconds
  - bookgraph_graph_rows_total{outcome}: accepted, skipped, merged
  - bookgraph_graph_vertices{kind}, bookgraph_graph_edges

Similarity and recommendation:
  - bookgraph_similarity_computations_total{metric,side}
  - bookgraph_recommend_requests_total{metric}
  - bookgraph_recommend_duration_seconds{metric}
  - bookgraph_recommend_errors_total{kind}: validation, not_found, canceled, other
  - bookgraph_recommend_candidates

Clustering and evaluation:
  - bookgraph_book_graph_build_duration_seconds{metric}, bookgraph_book_graph_edges
  - bookgraph_cluster_merges_total{strategy}
  - bookgraph_evaluations_total{predictor,result}
  - bookgraph_evaluation_rows_total{predictor}
  - bookgraph_evaluation_average_error{predictor}

# Usage

	start := time.Now()
	recs, err := engine.Recommend(q)
	metrics.RecordRecommend(q.Metric.String(), len(q.Candidates), time.Since(start), kind)
*/
package metrics
