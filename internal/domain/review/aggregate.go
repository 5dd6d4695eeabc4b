package review

// AverageRating returns the arithmetic mean of all rating values on a
// review. The second return is false when the review has no ratings; a
// missing average is not the same thing as an average of zero.
func AverageRating(ratings []Rating) (float64, bool) {
	if len(ratings) == 0 {
		return 0, false
	}
	var sum float64
	for _, r := range ratings {
		sum += r.Value
	}
	return sum / float64(len(ratings)), true
}

// CategoryAverage is AverageRating restricted to one rating category.
func CategoryAverage(ratings []Rating, category string) (float64, bool) {
	var sum float64
	count := 0
	for _, r := range ratings {
		if r.Category != category {
			continue
		}
		sum += r.Value
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// Summarize builds the read-only aggregate block for a review's ratings.
func Summarize(ratings []Rating) Summary {
	summary := Summary{RatingCount: len(ratings)}
	if avg, ok := AverageRating(ratings); ok {
		summary.AverageRating = &avg
	}
	if avg, ok := CategoryAverage(ratings, RatingCategoryGoal); ok {
		summary.GoalAverage = &avg
	}
	if avg, ok := CategoryAverage(ratings, RatingCategoryCompetency); ok {
		summary.CompetencyAverage = &avg
	}
	return summary
}
