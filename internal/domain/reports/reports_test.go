package reports

import (
	"testing"

	"hrops/internal/domain/review"
)

func TestBuildCycleSummary(t *testing.T) {
	statusCounts := map[string]int{
		review.StatusNotStarted: 2,
		review.StatusSubmitted:  1,
		review.StatusCompleted:  3,
		review.StatusReviewed:   2,
	}
	summary := buildCycleSummary("c1", "Annual 2024", statusCounts, []float64{3.4, 4.6, 4.0})

	if summary.AssignmentsTotal != 8 {
		t.Fatalf("expected 8 assignments, got %d", summary.AssignmentsTotal)
	}
	if summary.AssignmentsCompleted != 5 {
		t.Fatalf("expected 5 completed, got %d", summary.AssignmentsCompleted)
	}
	if summary.CompletionRate == nil || *summary.CompletionRate != 5.0/8.0 {
		t.Fatalf("expected completion rate 5/8, got %v", summary.CompletionRate)
	}
	if summary.AverageOverallRating == nil || *summary.AverageOverallRating != 4.0 {
		t.Fatalf("expected average 4.0, got %v", summary.AverageOverallRating)
	}
	if summary.RatingDistribution["3"] != 1 || summary.RatingDistribution["5"] != 1 || summary.RatingDistribution["4"] != 1 {
		t.Fatalf("unexpected rating distribution: %+v", summary.RatingDistribution)
	}
}

func TestBuildCycleSummaryEmpty(t *testing.T) {
	summary := buildCycleSummary("c1", "Empty", map[string]int{}, nil)

	if summary.AssignmentsTotal != 0 {
		t.Fatalf("expected 0 assignments, got %d", summary.AssignmentsTotal)
	}
	if summary.CompletionRate != nil {
		t.Fatalf("expected undefined completion rate, got %v", *summary.CompletionRate)
	}
	if summary.AverageOverallRating != nil {
		t.Fatalf("expected undefined average rating, got %v", *summary.AverageOverallRating)
	}
	if len(summary.RatingDistribution) != 0 {
		t.Fatalf("expected empty distribution, got %+v", summary.RatingDistribution)
	}
}
