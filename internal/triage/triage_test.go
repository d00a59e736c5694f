package triage

import (
	"context"
	"errors"
	"testing"

	"github.com/entitytriage/triage/internal/differ"
	"github.com/entitytriage/triage/internal/gitscope"
	"github.com/entitytriage/triage/internal/model"
)

func TestAnalyzeRemoteAddedFunction(t *testing.T) {
	pairs := []differ.FilePair{
		{
			Path:   "a.go",
			Status: differ.StatusAdded,
			After:  []byte("package main\n\nfunc NewFunc() int {\n\treturn 1\n}\n"),
		},
	}

	result, err := AnalyzeRemote(context.Background(), pairs, Options{})
	if err != nil {
		t.Fatalf("AnalyzeRemote returned error: %v", err)
	}
	if len(result.EntityReviews) != 1 {
		t.Fatalf("expected 1 entity review, got %d: %+v", len(result.EntityReviews), result.EntityReviews)
	}
	r := result.EntityReviews[0]
	if r.ChangeType != model.ChangeAdded {
		t.Errorf("ChangeType = %q, want added", r.ChangeType)
	}
	if result.Stats.TotalEntities != 1 {
		t.Errorf("Stats.TotalEntities = %d, want 1", result.Stats.TotalEntities)
	}
}

func TestAnalyzeRemoteNoChangesIsEmpty(t *testing.T) {
	pairs := []differ.FilePair{
		{Path: "a.go", Status: differ.StatusModified, Before: []byte("package main\n"), After: []byte("package main\n")},
	}

	result, err := AnalyzeRemote(context.Background(), pairs, Options{})
	if err != nil {
		t.Fatalf("AnalyzeRemote returned error: %v", err)
	}
	if len(result.EntityReviews) != 0 {
		t.Errorf("expected no entity reviews, got %+v", result.EntityReviews)
	}
}

func TestAnalyzeRemoteBlastRadiusFollowsDependents(t *testing.T) {
	pairs := []differ.FilePair{
		{
			Path:   "a.go",
			Status: differ.StatusModified,
			Before: []byte("package main\n\nfunc helper() int {\n\treturn 1\n}\n\nfunc caller() int {\n\treturn helper()\n}\n"),
			After:  []byte("package main\n\nfunc helper() int {\n\treturn 2\n}\n\nfunc caller() int {\n\treturn helper()\n}\n"),
		},
	}

	result, err := AnalyzeRemote(context.Background(), pairs, Options{})
	if err != nil {
		t.Fatalf("AnalyzeRemote returned error: %v", err)
	}

	var helperReview *model.EntityReview
	for i := range result.EntityReviews {
		if result.EntityReviews[i].EntityName == "helper" {
			helperReview = &result.EntityReviews[i]
		}
	}
	if helperReview == nil {
		t.Fatalf("expected a review for helper, got %+v", result.EntityReviews)
	}
	if helperReview.DependentCount < 1 {
		t.Errorf("expected helper to have at least 1 dependent (caller), got %d", helperReview.DependentCount)
	}
}

func TestAnalyzeRemoteFiltersNoiseFiles(t *testing.T) {
	pairs := []differ.FilePair{
		{Path: "dist/bundle.js", Status: differ.StatusAdded, After: []byte("function x() {}\n")},
	}

	result, err := AnalyzeRemote(context.Background(), pairs, Options{})
	if err != nil {
		t.Fatalf("AnalyzeRemote returned error: %v", err)
	}
	if len(result.EntityReviews) != 0 {
		t.Errorf("expected dist/ file to be filtered out, got %+v", result.EntityReviews)
	}
}

func TestAnalyzeWrapsGitFailureAsAnalyzeError(t *testing.T) {
	_, err := Analyze(context.Background(), t.TempDir(), gitscope.Scope{}, Options{})
	if err == nil {
		t.Fatal("expected an error analyzing a directory with no git repo")
	}

	var analyzeErr *AnalyzeError
	if !errors.As(err, &analyzeErr) {
		t.Fatalf("expected an *AnalyzeError, got %T: %v", err, err)
	}
	if analyzeErr.Kind != "git" {
		t.Errorf("Kind = %q, want %q", analyzeErr.Kind, "git")
	}
}
