package review

import "testing"

func TestAverageRatingUndefinedWhenEmpty(t *testing.T) {
	if _, ok := AverageRating(nil); ok {
		t.Fatal("expected undefined average for empty rating set")
	}
}

func TestAverageRatingMean(t *testing.T) {
	ratings := []Rating{
		{Category: RatingCategoryGoal, Value: 3},
		{Category: RatingCategoryGoal, Value: 4},
		{Category: RatingCategoryCompetency, Value: 5},
	}
	avg, ok := AverageRating(ratings)
	if !ok {
		t.Fatal("expected defined average")
	}
	if avg != 4 {
		t.Fatalf("expected mean 4, got %v", avg)
	}
}

func TestAverageRatingOfZeroIsDefined(t *testing.T) {
	avg, ok := AverageRating([]Rating{{Value: 0}})
	if !ok {
		t.Fatal("a rating of zero must yield a defined average")
	}
	if avg != 0 {
		t.Fatalf("expected 0, got %v", avg)
	}
}

func TestCategoryAverage(t *testing.T) {
	ratings := []Rating{
		{Category: RatingCategoryGoal, Value: 2},
		{Category: RatingCategoryGoal, Value: 4},
		{Category: RatingCategoryCompetency, Value: 5},
	}
	goalAvg, ok := CategoryAverage(ratings, RatingCategoryGoal)
	if !ok || goalAvg != 3 {
		t.Fatalf("expected goal average 3, got %v (ok=%v)", goalAvg, ok)
	}
	compAvg, ok := CategoryAverage(ratings, RatingCategoryCompetency)
	if !ok || compAvg != 5 {
		t.Fatalf("expected competency average 5, got %v (ok=%v)", compAvg, ok)
	}
}

func TestCategoryAverageUndefinedForMissingCategory(t *testing.T) {
	ratings := []Rating{{Category: RatingCategoryGoal, Value: 4}}
	if _, ok := CategoryAverage(ratings, RatingCategoryCompetency); ok {
		t.Fatal("expected undefined competency average")
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]Rating{
		{Category: RatingCategoryGoal, Value: 4},
		{Category: RatingCategoryCompetency, Value: 2},
	})
	if summary.RatingCount != 2 {
		t.Fatalf("expected 2 ratings, got %d", summary.RatingCount)
	}
	if summary.AverageRating == nil || *summary.AverageRating != 3 {
		t.Fatalf("expected overall average 3, got %v", summary.AverageRating)
	}
	if summary.GoalAverage == nil || *summary.GoalAverage != 4 {
		t.Fatalf("expected goal average 4, got %v", summary.GoalAverage)
	}
	if summary.CompetencyAverage == nil || *summary.CompetencyAverage != 2 {
		t.Fatalf("expected competency average 2, got %v", summary.CompetencyAverage)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.RatingCount != 0 {
		t.Fatalf("expected 0 ratings, got %d", summary.RatingCount)
	}
	if summary.AverageRating != nil || summary.GoalAverage != nil || summary.CompetencyAverage != nil {
		t.Fatalf("expected all averages undefined, got %+v", summary)
	}
}
