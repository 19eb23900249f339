// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

package predict

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/bookgraph/internal/logging"
	"github.com/tomtom215/bookgraph/internal/metrics"
	"github.com/tomtom215/bookgraph/internal/reviewgraph"
	"github.com/tomtom215/bookgraph/internal/validation"
)

// Evaluation summarizes a predictor run over held-out reviews.
type Evaluation struct {
	NumReviews int `json:"num_reviews"`
	NumCorrect int `json:"num_correct"`

	// AverageError is the mean absolute difference between predicted and
	// actual ratings.
	AverageError float64 `json:"average_error"`
}

// Evaluate runs p over rows on at most workers goroutines. A prediction is
// correct when it equals the row's rating exactly. The first prediction
// error cancels the remaining rows and is returned. No rows yields a zero
// Evaluation.
func Evaluate(ctx context.Context, p Predictor, rows []reviewgraph.Row, workers int) (eval Evaluation, err error) {
	if verr := validation.ValidateVar("Workers", workers, "gt=0"); verr != nil {
		return Evaluation{}, fmt.Errorf("evaluate: %w", verr)
	}
	if len(rows) == 0 {
		return Evaluation{}, nil
	}

	start := time.Now()
	ctx = logging.EnsureRunID(ctx)
	logger := logging.CtxComponent(ctx, "predict")
	defer func() {
		metrics.RecordEvaluation(p.Name(), eval.NumReviews, eval.AverageError, err)
	}()

	diffs := make([]float64, len(rows))

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := range rows {
		eg.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			row := rows[i]
			predicted, err := p.Predict(row.User, row.Book)
			if err != nil {
				return fmt.Errorf("row %d (user %q, book %q): %w", i, row.User, row.Book, err)
			}
			diffs[i] = math.Abs(predicted - row.Rating)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return Evaluation{}, fmt.Errorf("evaluate %s: %w", p.Name(), err)
	}

	var sum float64
	for _, d := range diffs {
		if d == 0 {
			eval.NumCorrect++
		}
		sum += d
	}
	eval.NumReviews = len(rows)
	eval.AverageError = sum / float64(len(rows))

	logger.Info().
		Str("predictor", p.Name()).
		Int("reviews", eval.NumReviews).
		Int("correct", eval.NumCorrect).
		Float64("average_error", eval.AverageError).
		Dur("duration", time.Since(start)).
		Msg("predictor evaluated")

	return eval, nil
}
