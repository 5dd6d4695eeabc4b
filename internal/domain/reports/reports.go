package reports

import (
	"fmt"

	"hrops/internal/domain/review"
)

// CycleSummary is the read-only roll-up for one review cycle. Everything in
// it is derived from current child rows at request time.
type CycleSummary struct {
	CycleID              string         `json:"cycleId"`
	CycleName            string         `json:"cycleName"`
	AssignmentsTotal     int            `json:"assignmentsTotal"`
	AssignmentsByStatus  map[string]int `json:"assignmentsByStatus"`
	AssignmentsCompleted int            `json:"assignmentsCompleted"`
	CompletionRate       *float64       `json:"completionRate"`
	AverageOverallRating *float64       `json:"averageOverallRating"`
	RatingDistribution   map[string]int `json:"ratingDistribution"`
}

func buildCycleSummary(cycleID, cycleName string, statusCounts map[string]int, overallRatings []float64) CycleSummary {
	summary := CycleSummary{
		CycleID:             cycleID,
		CycleName:           cycleName,
		AssignmentsByStatus: statusCounts,
		RatingDistribution:  map[string]int{},
	}
	for status, count := range statusCounts {
		summary.AssignmentsTotal += count
		if status == review.StatusCompleted || status == review.StatusReviewed {
			summary.AssignmentsCompleted += count
		}
	}
	if summary.AssignmentsTotal > 0 {
		rate := float64(summary.AssignmentsCompleted) / float64(summary.AssignmentsTotal)
		summary.CompletionRate = &rate
	}
	if len(overallRatings) > 0 {
		var sum float64
		for _, rating := range overallRatings {
			sum += rating
			key := fmt.Sprintf("%d", int(rating+0.5))
			summary.RatingDistribution[key]++
		}
		avg := sum / float64(len(overallRatings))
		summary.AverageOverallRating = &avg
	}
	return summary
}
