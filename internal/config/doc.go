// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

/*
Package config provides layered configuration for Bookgraph.

# Configuration Sources

LoadWithKoanf merges three layers, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: the path in BOOKGRAPH_CONFIG, else the first of
    config.yaml, config.yml or /etc/bookgraph/config.yaml that exists
 3. BOOKGRAPH_* environment variables

# Environment Variables

Ratings (graph construction):
  - BOOKGRAPH_MIN_RATING: lowest accepted rating (default: 1)
  - BOOKGRAPH_MAX_RATING: highest accepted rating (default: 5)
  - BOOKGRAPH_DUPLICATES: reject, overwrite or average (default: reject)
  - BOOKGRAPH_INVALID_ROWS: reject or skip (default: reject)

Recommendations:
  - BOOKGRAPH_METRIC: unweighted or strict (default: unweighted)
  - BOOKGRAPH_TOP_N: default result length (default: 10)

Clustering:
  - BOOKGRAPH_CLUSTER_THRESHOLD: minimum edge similarity (default: 0.05)
  - BOOKGRAPH_CLUSTER_METRIC: unweighted or strict (default: unweighted)
  - BOOKGRAPH_CLUSTER_WORKERS: book graph workers (default: 4)
  - BOOKGRAPH_CLUSTER_SEED: random strategy seed (default: 42)
  - BOOKGRAPH_CLUSTER_STRATEGY: random or greedy (default: greedy)
  - BOOKGRAPH_NUM_CLUSTERS: number of clusters (default: 8)

Evaluation:
  - BOOKGRAPH_PREDICTOR: max_rating, book_average or similar_user (default: similar_user)
  - BOOKGRAPH_PREDICTOR_METRIC: user similarity metric (default: strict)
  - BOOKGRAPH_EVALUATE_WORKERS: evaluation goroutines (default: 4)

Logging:
  - BOOKGRAPH_LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - BOOKGRAPH_LOG_FORMAT: json or console (default: json)
  - BOOKGRAPH_LOG_CALLER: include caller file:line (default: false)

Unrecognized BOOKGRAPH_* variables are ignored.

# Validation

Validate checks struct tags with go-playground/validator and then applies the
component checks of reviewgraph.Options and cluster.Config, so a Config that
loads cleanly converts into component settings without further errors.

# Thread Safety

Config is a plain value. It is immutable after LoadWithKoanf returns and safe
for concurrent reads.
*/
package config
