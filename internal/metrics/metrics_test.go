// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// getHistogramCount extracts the sample count from a Prometheus histogram
func getHistogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordGraphBuild(t *testing.T) {
	successBefore := testutil.ToFloat64(GraphBuildsTotal.WithLabelValues("success"))
	errorBefore := testutil.ToFloat64(GraphBuildsTotal.WithLabelValues("error"))

	RecordGraphBuild(5*time.Millisecond, nil)
	RecordGraphBuild(time.Millisecond, errors.New("bad row"))

	if got := testutil.ToFloat64(GraphBuildsTotal.WithLabelValues("success")) - successBefore; got != 1 {
		t.Errorf("success builds delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(GraphBuildsTotal.WithLabelValues("error")) - errorBefore; got != 1 {
		t.Errorf("error builds delta = %v, want 1", got)
	}
}

func TestRecordGraphBuildDuration(t *testing.T) {
	before := getHistogramCount(t, GraphBuildDuration)

	RecordGraphBuild(2*time.Millisecond, nil)

	if got := getHistogramCount(t, GraphBuildDuration) - before; got != 1 {
		t.Errorf("build duration samples delta = %d, want 1", got)
	}
}

func TestRecordRecommendCandidates(t *testing.T) {
	before := getHistogramCount(t, RecommendCandidates)

	RecordRecommend("unweighted", 12, time.Millisecond, "")
	RecordRecommend("unweighted", 12, time.Millisecond, ErrorKindNotFound)

	// Failed requests do not observe a candidate count.
	if got := getHistogramCount(t, RecommendCandidates) - before; got != 1 {
		t.Errorf("candidate samples delta = %d, want 1", got)
	}
}

func TestRecordGraphRows(t *testing.T) {
	before := map[string]float64{}
	for _, outcome := range []string{RowAccepted, RowSkipped, RowMerged} {
		before[outcome] = testutil.ToFloat64(GraphRowsTotal.WithLabelValues(outcome))
	}

	RecordGraphRows(10, 2, 1)

	want := map[string]float64{RowAccepted: 10, RowSkipped: 2, RowMerged: 1}
	for outcome, delta := range want {
		got := testutil.ToFloat64(GraphRowsTotal.WithLabelValues(outcome)) - before[outcome]
		if got != delta {
			t.Errorf("rows[%s] delta = %v, want %v", outcome, got, delta)
		}
	}
}

func TestUpdateGraphSize(t *testing.T) {
	UpdateGraphSize(3, 4, 7)

	if got := testutil.ToFloat64(GraphVertices.WithLabelValues("user")); got != 3 {
		t.Errorf("user vertices = %v, want 3", got)
	}
	if got := testutil.ToFloat64(GraphVertices.WithLabelValues("book")); got != 4 {
		t.Errorf("book vertices = %v, want 4", got)
	}
	if got := testutil.ToFloat64(GraphEdges); got != 7 {
		t.Errorf("edges = %v, want 7", got)
	}
}

func TestRecordRecommend(t *testing.T) {
	tests := []struct {
		name    string
		metric  string
		errKind string
	}{
		{name: "success unweighted", metric: "unweighted"},
		{name: "success strict", metric: "strict"},
		{name: "validation failure", metric: "unweighted", errKind: ErrorKindValidation},
		{name: "not found failure", metric: "strict", errKind: ErrorKindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqBefore := testutil.ToFloat64(RecommendRequestsTotal.WithLabelValues(tt.metric))
			var errBefore float64
			if tt.errKind != "" {
				errBefore = testutil.ToFloat64(RecommendErrors.WithLabelValues(tt.errKind))
			}

			RecordRecommend(tt.metric, 5, time.Millisecond, tt.errKind)

			if got := testutil.ToFloat64(RecommendRequestsTotal.WithLabelValues(tt.metric)) - reqBefore; got != 1 {
				t.Errorf("requests delta = %v, want 1", got)
			}
			if tt.errKind != "" {
				if got := testutil.ToFloat64(RecommendErrors.WithLabelValues(tt.errKind)) - errBefore; got != 1 {
					t.Errorf("errors delta = %v, want 1", got)
				}
			}
		})
	}
}

func TestRecordEvaluation(t *testing.T) {
	RecordEvaluation("book_average", 4, 0.5, nil)

	if got := testutil.ToFloat64(EvaluationAverageError.WithLabelValues("book_average")); got != 0.5 {
		t.Errorf("average error = %v, want 0.5", got)
	}

	before := testutil.ToFloat64(EvaluationsTotal.WithLabelValues("book_average", "error"))
	RecordEvaluation("book_average", 0, 0, errors.New("boom"))
	if got := testutil.ToFloat64(EvaluationsTotal.WithLabelValues("book_average", "error")) - before; got != 1 {
		t.Errorf("error evaluations delta = %v, want 1", got)
	}
}

func TestRecordClusterMerge(t *testing.T) {
	before := testutil.ToFloat64(ClusterMergesTotal.WithLabelValues("greedy"))
	RecordClusterMerge("greedy")
	RecordClusterMerge("greedy")
	if got := testutil.ToFloat64(ClusterMergesTotal.WithLabelValues("greedy")) - before; got != 2 {
		t.Errorf("greedy merges delta = %v, want 2", got)
	}
}

func TestClassifyError(t *testing.T) {
	errValidation := errors.New("validation")
	errNotFound := errors.New("not found")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "validation", err: fmt.Errorf("wrap: %w", errValidation), want: ErrorKindValidation},
		{name: "not found", err: fmt.Errorf("wrap: %w", errNotFound), want: ErrorKindNotFound},
		{name: "canceled", err: context.Canceled, want: ErrorKindCanceled},
		{name: "deadline", err: context.DeadlineExceeded, want: ErrorKindCanceled},
		{name: "other", err: errors.New("boom"), want: ErrorKindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err, errValidation, errNotFound); got != tt.want {
				t.Errorf("ClassifyError() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecordSimilarities(t *testing.T) {
	single := SimilarityComputations.WithLabelValues("strict", "user")
	batch := SimilarityComputations.WithLabelValues("strict", "book")
	singleBefore := testutil.ToFloat64(single)
	batchBefore := testutil.ToFloat64(batch)

	RecordSimilarity("strict", "user")
	RecordSimilarities("strict", "book", 4)
	RecordSimilarities("strict", "book", 0)

	if got := testutil.ToFloat64(single) - singleBefore; got != 1 {
		t.Errorf("user similarity delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(batch) - batchBefore; got != 4 {
		t.Errorf("book similarity delta = %v, want 4", got)
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordSimilarity("unweighted", "book")
	RecordBookGraphBuild("unweighted", 3, time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}
