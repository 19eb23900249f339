// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

package config

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bookgraph/internal/logging"
	"github.com/tomtom215/bookgraph/internal/recommend"
	"github.com/tomtom215/bookgraph/internal/recommend/cluster"
	"github.com/tomtom215/bookgraph/internal/recommend/predict"
	"github.com/tomtom215/bookgraph/internal/reviewgraph"
	"github.com/tomtom215/bookgraph/internal/validation"
)

// Config holds all Bookgraph settings.
type Config struct {
	Ratings   RatingsConfig   `koanf:"ratings" json:"ratings"`
	Recommend RecommendConfig `koanf:"recommend" json:"recommend"`
	Cluster   ClusterConfig   `koanf:"cluster" json:"cluster"`
	Evaluate  EvaluateConfig  `koanf:"evaluate" json:"evaluate"`
	Logging   LoggingConfig   `koanf:"logging" json:"logging"`
}

// RatingsConfig controls review graph construction.
type RatingsConfig struct {
	MinRating   float64 `koanf:"min_rating" json:"min_rating"`
	MaxRating   float64 `koanf:"max_rating" json:"max_rating"`
	Duplicates  string  `koanf:"duplicates" json:"duplicates" validate:"oneof=reject overwrite average"`
	InvalidRows string  `koanf:"invalid_rows" json:"invalid_rows" validate:"oneof=reject skip"`
}

// RecommendConfig holds recommendation defaults.
type RecommendConfig struct {
	Metric string `koanf:"metric" json:"metric" validate:"oneof=unweighted strict"`
	TopN   int    `koanf:"top_n" json:"top_n" validate:"gt=0,lte=10000"`
}

// ClusterConfig controls book graph construction and clustering.
type ClusterConfig struct {
	Threshold   float64 `koanf:"threshold" json:"threshold"`
	Metric      string  `koanf:"metric" json:"metric" validate:"oneof=unweighted strict"`
	Workers     int     `koanf:"workers" json:"workers"`
	Seed        int64   `koanf:"seed" json:"seed"`
	Strategy    string  `koanf:"strategy" json:"strategy" validate:"oneof=random greedy"`
	NumClusters int     `koanf:"num_clusters" json:"num_clusters" validate:"gt=0"`
}

// EvaluateConfig selects the predictor used for evaluation runs.
type EvaluateConfig struct {
	Predictor string `koanf:"predictor" json:"predictor" validate:"oneof=max_rating book_average similar_user"`
	// Metric is the user similarity metric of the similar_user predictor.
	Metric  string `koanf:"metric" json:"metric" validate:"oneof=unweighted strict"`
	Workers int    `koanf:"workers" json:"workers" validate:"gt=0,lte=256"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level" json:"level"`
	Format string `koanf:"format" json:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller" json:"caller"`
}

// Options returns the review graph build options.
func (c RatingsConfig) Options() reviewgraph.Options {
	return reviewgraph.Options{
		MinRating:   c.MinRating,
		MaxRating:   c.MaxRating,
		Duplicates:  reviewgraph.DuplicatePolicy(c.Duplicates),
		InvalidRows: reviewgraph.InvalidRowPolicy(c.InvalidRows),
	}
}

// Query returns a recommendation query for target using the configured
// metric and result length.
func (c RecommendConfig) Query(target reviewgraph.BookID, candidates []reviewgraph.BookID) (recommend.Query, error) {
	m, err := recommend.ParseMetric(c.Metric)
	if err != nil {
		return recommend.Query{}, err
	}
	return recommend.Query{Target: target, Candidates: candidates, TopN: c.TopN, Metric: m}, nil
}

// BookGraph returns the book graph configuration.
func (c ClusterConfig) BookGraph() (cluster.Config, error) {
	m, err := recommend.ParseMetric(c.Metric)
	if err != nil {
		return cluster.Config{}, err
	}
	return cluster.Config{
		Threshold: c.Threshold,
		Metric:    m,
		Workers:   c.Workers,
		Seed:      c.Seed,
	}, nil
}

// NewPredictor builds the configured predictor over engine. maxRating is
// the prediction of the max_rating predictor.
func (c EvaluateConfig) NewPredictor(engine *recommend.Engine, maxRating float64) (predict.Predictor, error) {
	switch c.Predictor {
	case predict.NameMaxRating:
		return predict.NewMaxRating(engine.Graph(), maxRating), nil
	case predict.NameBookAverage:
		return predict.NewBookAverage(engine.Graph()), nil
	case predict.NameSimilarUser:
		m, err := recommend.ParseMetric(c.Metric)
		if err != nil {
			return nil, err
		}
		return predict.NewSimilarUser(engine, m), nil
	default:
		return nil, validation.New("Predictor", "oneof",
			"Predictor must be one of: max_rating book_average similar_user", c.Predictor)
	}
}

// Logging returns the logger configuration.
func (c LoggingConfig) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Level
	cfg.Format = c.Format
	cfg.Caller = c.Caller
	return cfg
}

// JSON renders the configuration as indented JSON.
func (c *Config) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}
