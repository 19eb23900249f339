// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

package cluster

import (
	"fmt"

	"github.com/tomtom215/bookgraph/internal/recommend"
	"github.com/tomtom215/bookgraph/internal/validation"
)

// Config controls book graph construction.
type Config struct {
	// Threshold is the similarity a pair must exceed to be linked.
	// Default: 0.05
	Threshold float64 `validate:"gte=0,lte=1"`

	// Metric is the similarity measure used for edge weights.
	// Default: unweighted
	Metric recommend.Metric

	// Workers is the number of goroutines scoring pairs.
	// Default: 4
	Workers int `validate:"gt=0,lte=256"`

	// Seed drives the random strategy when clustering through Cluster.
	// Default: 42
	Seed int64
}

// DefaultConfig returns the default book graph configuration.
func DefaultConfig() Config {
	return Config{
		Threshold: 0.05,
		Metric:    recommend.MetricUnweighted,
		Workers:   4,
		Seed:      42,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c); err != nil {
		return err
	}
	if !c.Metric.Valid() {
		return validation.New("Metric", "oneof", "Metric must be one of: unweighted strict", c.Metric.String())
	}
	return nil
}

// Strategy selects a clustering algorithm.
type Strategy string

const (
	StrategyRandom Strategy = "random"
	StrategyGreedy Strategy = "greedy"
)

// ParseStrategy parses a strategy name.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(name); s {
	case StrategyRandom, StrategyGreedy:
		return s, nil
	default:
		return "", validation.New("Strategy", "oneof",
			fmt.Sprintf("Strategy must be one of: %s %s", StrategyRandom, StrategyGreedy), name)
	}
}
