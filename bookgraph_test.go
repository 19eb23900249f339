// Bookgraph - Book Review Similarity and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookgraph

package bookgraph_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookgraph"
	"github.com/tomtom215/bookgraph/internal/reviewgraph"
	"github.com/tomtom215/bookgraph/internal/validation"
)

const epsilon = 1e-12

const serviceConfig = `
recommend:
  metric: strict
  top_n: 2
cluster:
  strategy: greedy
  num_clusters: 2
evaluate:
  predictor: book_average
  workers: 2
logging:
  level: error
`

// U1 rates A=5 B=5 C=1 D=4, U2 rates A=4 B=4 C=2, U3 rates A=5 B=3.
func serviceRows() []bookgraph.Row {
	return []bookgraph.Row{
		{User: "U1", Book: "A", Rating: 5},
		{User: "U1", Book: "B", Rating: 5},
		{User: "U1", Book: "C", Rating: 1},
		{User: "U1", Book: "D", Rating: 4},
		{User: "U2", Book: "A", Rating: 4},
		{User: "U2", Book: "B", Rating: 4},
		{User: "U2", Book: "C", Rating: 2},
		{User: "U3", Book: "A", Rating: 5},
		{User: "U3", Book: "B", Rating: 3},
	}
}

// loadServiceConfig loads configuration from a temporary YAML file with all
// BOOKGRAPH_* variables cleared.
func loadServiceConfig(t *testing.T) *bookgraph.Config {
	t.Helper()
	for _, kv := range os.Environ() {
		key, value, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "BOOKGRAPH_") {
			t.Setenv(key, value)
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("Unsetenv(%s) error = %v", key, err)
			}
		}
	}
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "bookgraph.yaml")
	if err := os.WriteFile(path, []byte(serviceConfig), 0o600); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	t.Setenv("BOOKGRAPH_CONFIG", path)

	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	cfg, err := bookgraph.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	return cfg
}

func newService(t *testing.T) *bookgraph.Service {
	t.Helper()
	svc, err := bookgraph.New(loadServiceConfig(t), serviceRows(), map[string]string{"A": "Alpha"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return svc
}

func TestNew_FromLoadedConfig(t *testing.T) {
	svc := newService(t)

	stats := svc.Stats()
	if stats.Users != 3 || stats.Books != 4 || stats.Edges != 9 {
		t.Errorf("Stats() = %+v, want 3 users, 4 books, 9 edges", stats)
	}
	if name, ok := svc.Name("A"); !ok || name != "Alpha" {
		t.Errorf("Name(A) = %q, %v, want Alpha, true", name, ok)
	}
	if zerolog.GlobalLevel() != zerolog.ErrorLevel {
		t.Errorf("GlobalLevel() = %v, want error from logging config", zerolog.GlobalLevel())
	}
}

func TestService_Recommend(t *testing.T) {
	svc := newService(t)

	// strict: D = 1/(1+1), B = 1/(1+4/3), C = 1/(1+10)
	got, err := svc.Recommend("A", []string{"B", "C", "D"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	want := []bookgraph.ScoredBook{{Book: "D", Score: 0.5}, {Book: "B", Score: 3.0 / 7.0}}
	if len(got) != len(want) {
		t.Fatalf("Recommend() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i].Book != want[i].Book || math.Abs(got[i].Score-want[i].Score) > epsilon {
			t.Errorf("Recommend()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	all, err := svc.RecommendFromAll("A")
	if err != nil {
		t.Fatalf("RecommendFromAll() error = %v", err)
	}
	if !reflect.DeepEqual(all, got) {
		t.Errorf("RecommendFromAll() = %+v, want %+v", all, got)
	}

	if _, err := svc.Recommend("Ghost", nil); !errors.Is(err, reviewgraph.ErrNotFound) {
		t.Errorf("Recommend(Ghost) error = %v, want ErrNotFound", err)
	}
}

func TestService_Similarity(t *testing.T) {
	svc := newService(t)

	jaccard, err := svc.UnweightedSimilarity("A", "C")
	if err != nil {
		t.Fatalf("UnweightedSimilarity() error = %v", err)
	}
	if math.Abs(jaccard-2.0/3.0) > epsilon {
		t.Errorf("UnweightedSimilarity(A, C) = %v, want 2/3", jaccard)
	}

	strict, err := svc.StrictWeightedSimilarity("A", "C")
	if err != nil {
		t.Fatalf("StrictWeightedSimilarity() error = %v", err)
	}
	if math.Abs(strict-1.0/11.0) > epsilon {
		t.Errorf("StrictWeightedSimilarity(A, C) = %v, want 1/11", strict)
	}
}

func TestService_Evaluate(t *testing.T) {
	svc := newService(t)

	// book_average predicts C = round(1.5) = 2 and D = 4; U1/A is known.
	held := []bookgraph.Row{
		{User: "U3", Book: "C", Rating: 2},
		{User: "U2", Book: "D", Rating: 3},
		{User: "U1", Book: "A", Rating: 5},
	}
	got, err := svc.Evaluate(context.Background(), held)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got.NumReviews != 3 || got.NumCorrect != 2 || math.Abs(got.AverageError-1.0/3.0) > epsilon {
		t.Errorf("Evaluate() = %+v, want 3 reviews, 2 correct, error 1/3", got)
	}
}

func TestService_Clusters(t *testing.T) {
	svc := newService(t)

	edges, err := svc.BookGraph(context.Background())
	if err != nil {
		t.Fatalf("BookGraph() error = %v", err)
	}
	if len(edges) != 6 {
		t.Errorf("BookGraph() returned %d edges, want 6", len(edges))
	}

	// Greedy merges A+B (1), then AB+C (2/3) before C+D (1/2).
	got, err := svc.Clusters(context.Background())
	if err != nil {
		t.Fatalf("Clusters() error = %v", err)
	}
	want := [][]string{{"A", "B", "C"}, {"D"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Clusters() = %v, want %v", got, want)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := bookgraph.New(nil, nil, nil); !errors.Is(err, validation.ErrValidation) {
		t.Errorf("New(nil) error = %v, want ErrValidation", err)
	}

	cfg := loadServiceConfig(t)

	bad := *cfg
	bad.Recommend.TopN = 0
	if _, err := bookgraph.New(&bad, serviceRows(), nil); !errors.Is(err, validation.ErrValidation) {
		t.Errorf("New(top_n 0) error = %v, want ErrValidation", err)
	}

	rows := append(serviceRows(), bookgraph.Row{User: "U4", Book: "A", Rating: 9})
	_, err := bookgraph.New(cfg, rows, nil)
	var rowErr *reviewgraph.RowError
	if !errors.As(err, &rowErr) || rowErr.Index != len(rows)-1 {
		t.Errorf("New(out-of-range row) error = %v, want RowError at index %d", err, len(rows)-1)
	}
}
