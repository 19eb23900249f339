// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

package config

import (
	"fmt"

	"github.com/tomtom215/bookgraph/internal/logging"
	"github.com/tomtom215/bookgraph/internal/validation"
)

// Validate checks every section and returns the first failure.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	if err := c.Ratings.Options().Validate(); err != nil {
		return fmt.Errorf("ratings: %w", err)
	}
	if err := c.validateCluster(); err != nil {
		return fmt.Errorf("cluster: %w", err)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging: %w", validation.New("Level", "oneof",
			"Level must be one of: trace debug info warn error fatal panic disabled", c.Logging.Level))
	}
	return nil
}

func (c *Config) validateCluster() error {
	bg, err := c.Cluster.BookGraph()
	if err != nil {
		return err
	}
	return bg.Validate()
}
