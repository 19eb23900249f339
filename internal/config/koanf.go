// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/bookgraph/internal/logging"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/bookgraph/config.yaml",
	"/etc/bookgraph/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "BOOKGRAPH_CONFIG"

// envPrefix selects the environment variables read by LoadWithKoanf.
const envPrefix = "BOOKGRAPH_"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Ratings: RatingsConfig{
			MinRating:   1,
			MaxRating:   5,
			Duplicates:  "reject",
			InvalidRows: "reject",
		},
		Recommend: RecommendConfig{
			Metric: "unweighted",
			TopN:   10,
		},
		Cluster: ClusterConfig{
			Threshold:   0.05,
			Metric:      "unweighted",
			Workers:     4,
			Seed:        42,
			Strategy:    "greedy",
			NumClusters: 8,
		},
		Evaluate: EvaluateConfig{
			Predictor: "similar_user",
			Metric:    "strict",
			Workers:   4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: BOOKGRAPH_* overrides
//
// The merged configuration is validated before it is returned.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// BOOKGRAPH_MIN_RATING -> ratings.min_rating
	// BOOKGRAPH_CLUSTER_WORKERS -> cluster.workers
	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	logConfig(cfg, configPath)
	return cfg, nil
}

// logConfig writes the effective configuration at debug level.
func logConfig(cfg *Config, path string) {
	data, err := cfg.JSON()
	if err != nil {
		logging.Warn().Err(err).Msg("failed to render configuration")
		return
	}
	logging.Debug().
		Str("file", path).
		RawJSON("config", data).
		Msg("configuration loaded")
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Ratings
	"bookgraph_min_rating":   "ratings.min_rating",
	"bookgraph_max_rating":   "ratings.max_rating",
	"bookgraph_duplicates":   "ratings.duplicates",
	"bookgraph_invalid_rows": "ratings.invalid_rows",

	// Recommendations
	"bookgraph_metric": "recommend.metric",
	"bookgraph_top_n":  "recommend.top_n",

	// Clustering
	"bookgraph_cluster_threshold": "cluster.threshold",
	"bookgraph_cluster_metric":    "cluster.metric",
	"bookgraph_cluster_workers":   "cluster.workers",
	"bookgraph_cluster_seed":      "cluster.seed",
	"bookgraph_cluster_strategy":  "cluster.strategy",
	"bookgraph_num_clusters":      "cluster.num_clusters",

	// Evaluation
	"bookgraph_predictor":        "evaluate.predictor",
	"bookgraph_predictor_metric": "evaluate.metric",
	"bookgraph_evaluate_workers": "evaluate.workers",

	// Logging
	"bookgraph_log_level":  "logging.level",
	"bookgraph_log_format": "logging.format",
	"bookgraph_log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped names return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
