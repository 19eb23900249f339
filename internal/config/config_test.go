// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/bookgraph/internal/recommend"
	"github.com/tomtom215/bookgraph/internal/recommend/predict"
	"github.com/tomtom215/bookgraph/internal/reviewgraph"
	"github.com/tomtom215/bookgraph/internal/validation"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Ratings.MinRating != 1 || cfg.Ratings.MaxRating != 5 {
		t.Errorf("Ratings range = %v..%v, want 1..5", cfg.Ratings.MinRating, cfg.Ratings.MaxRating)
	}
	if cfg.Ratings.Duplicates != "reject" || cfg.Ratings.InvalidRows != "reject" {
		t.Errorf("Ratings policies = %q/%q, want reject/reject", cfg.Ratings.Duplicates, cfg.Ratings.InvalidRows)
	}
	if cfg.Cluster.Threshold != 0.05 {
		t.Errorf("Cluster.Threshold = %v, want 0.05", cfg.Cluster.Threshold)
	}
	if cfg.Cluster.Seed != 42 {
		t.Errorf("Cluster.Seed = %d, want 42", cfg.Cluster.Seed)
	}
	if cfg.Evaluate.Metric != "strict" {
		t.Errorf("Evaluate.Metric = %q, want strict", cfg.Evaluate.Metric)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() error = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "bad duplicates", modify: func(c *Config) { c.Ratings.Duplicates = "merge" }, wantField: "Duplicates"},
		{name: "bad invalid rows", modify: func(c *Config) { c.Ratings.InvalidRows = "drop" }, wantField: "InvalidRows"},
		{name: "equal rating bounds", modify: func(c *Config) { c.Ratings.MaxRating = 1 }, wantField: "ratings"},
		{name: "bad recommend metric", modify: func(c *Config) { c.Recommend.Metric = "pearson" }, wantField: "Metric"},
		{name: "bad top n", modify: func(c *Config) { c.Recommend.TopN = -1 }, wantField: "TopN"},
		{name: "bad strategy", modify: func(c *Config) { c.Cluster.Strategy = "kmeans" }, wantField: "Strategy"},
		{name: "negative threshold", modify: func(c *Config) { c.Cluster.Threshold = -1 }, wantField: "cluster"},
		{name: "bad clusters", modify: func(c *Config) { c.Cluster.NumClusters = 0 }, wantField: "NumClusters"},
		{name: "bad evaluate workers", modify: func(c *Config) { c.Evaluate.Workers = 0 }, wantField: "Workers"},
		{name: "bad log level", modify: func(c *Config) { c.Logging.Level = "verbose" }, wantField: "logging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, validation.ErrValidation) {
				t.Fatalf("Validate() error = %v, want ErrValidation", err)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("Validate() error = %q, want mention of %q", err.Error(), tt.wantField)
			}
		})
	}
}

func TestRatingsOptions(t *testing.T) {
	cfg := defaultConfig()
	cfg.Ratings.Duplicates = "overwrite"
	cfg.Ratings.InvalidRows = "skip"

	opts := cfg.Ratings.Options()
	want := reviewgraph.Options{
		MinRating:   1,
		MaxRating:   5,
		Duplicates:  reviewgraph.DuplicatesOverwrite,
		InvalidRows: reviewgraph.InvalidRowsSkip,
	}
	if opts != want {
		t.Errorf("Options() = %+v, want %+v", opts, want)
	}
}

func TestRecommendQuery(t *testing.T) {
	cfg := defaultConfig()
	cfg.Recommend.Metric = "strict"
	cfg.Recommend.TopN = 2

	q, err := cfg.Recommend.Query("b1", []string{"b2", "b3"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if q.Target != "b1" || q.TopN != 2 || q.Metric != recommend.MetricStrictWeighted || len(q.Candidates) != 2 {
		t.Errorf("Query() = %+v", q)
	}

	cfg.Recommend.Metric = "bogus"
	if _, err := cfg.Recommend.Query("b1", nil); !errors.Is(err, validation.ErrValidation) {
		t.Errorf("Query(bogus metric) error = %v, want ErrValidation", err)
	}
}

func TestClusterBookGraph(t *testing.T) {
	cfg := defaultConfig()
	cfg.Cluster.Metric = "strict"

	bg, err := cfg.Cluster.BookGraph()
	if err != nil {
		t.Fatalf("BookGraph() error = %v", err)
	}
	if bg.Metric != recommend.MetricStrictWeighted || bg.Threshold != 0.05 || bg.Workers != 4 || bg.Seed != 42 {
		t.Errorf("BookGraph() = %+v", bg)
	}
}

func TestEvaluateNewPredictor(t *testing.T) {
	g, err := reviewgraph.Build([]reviewgraph.Row{{User: "u1", Book: "b1", Rating: 4}}, nil, reviewgraph.DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	engine, err := recommend.NewEngine(g, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	for _, name := range []string{predict.NameMaxRating, predict.NameBookAverage, predict.NameSimilarUser} {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig().Evaluate
			cfg.Predictor = name

			p, err := cfg.NewPredictor(engine, 5)
			if err != nil {
				t.Fatalf("NewPredictor() error = %v", err)
			}
			if p.Name() != name {
				t.Errorf("Name() = %q, want %q", p.Name(), name)
			}
		})
	}

	cfg := defaultConfig().Evaluate
	cfg.Predictor = "oracle"
	if _, err := cfg.NewPredictor(engine, 5); !errors.Is(err, validation.ErrValidation) {
		t.Errorf("NewPredictor(oracle) error = %v, want ErrValidation", err)
	}
}

func TestLoggingConfig(t *testing.T) {
	cfg := LoggingConfig{Level: "debug", Format: "console", Caller: true}

	lc := cfg.Logging()
	if lc.Level != "debug" || lc.Format != "console" || !lc.Caller || !lc.Timestamp {
		t.Errorf("Logging() = %+v", lc)
	}
	if lc.Output == nil {
		t.Error("Logging().Output = nil, want default writer")
	}
}

func TestConfigJSON(t *testing.T) {
	data, err := defaultConfig().JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	var decoded map[string]map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["cluster"]["strategy"] != "greedy" {
		t.Errorf("cluster.strategy = %v, want greedy", decoded["cluster"]["strategy"])
	}
	if decoded["ratings"]["max_rating"] != float64(5) {
		t.Errorf("ratings.max_rating = %v, want 5", decoded["ratings"]["max_rating"])
	}
}
