package review

import "time"

type Assignment struct {
	ID               string     `json:"id"`
	CycleID          string     `json:"cycleId"`
	EmployeeID       string     `json:"employeeId"`
	ReviewerID       string     `json:"reviewerId"`
	ReviewType       string     `json:"reviewType"`
	DueDate          *time.Time `json:"dueDate,omitempty"`
	Status           string     `json:"status"`
	OverallRating    *float64   `json:"overallRating,omitempty"`
	Strengths        string     `json:"strengths"`
	ImprovementAreas string     `json:"improvementAreas"`
	Achievements     string     `json:"achievements"`
	DevelopmentNeeds string     `json:"developmentNeeds"`
	NextPeriodGoals  string     `json:"nextPeriodGoals"`
	SubmittedAt      *time.Time `json:"submittedAt,omitempty"`
	ReviewedAt       *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`

	// Derived on read, never stored.
	Urgency       string `json:"urgency,omitempty"`
	DaysRemaining int    `json:"daysRemaining"`
}

type Rating struct {
	ID          string  `json:"id"`
	ReviewID    string  `json:"reviewId"`
	Category    string  `json:"category"`
	ItemID      string  `json:"itemId,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
	MaxValue    float64 `json:"maxValue"`
	Weight      float64 `json:"weight"`
	Comments    string  `json:"comments"`
}

// RatingInput is one itemized score supplied on save. The full set replaces
// whatever was stored before.
type RatingInput struct {
	Category    string  `json:"category"`
	ItemID      string  `json:"itemId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
	MaxValue    float64 `json:"maxValue"`
	Weight      float64 `json:"weight"`
	Comments    string  `json:"comments"`
}

type SaveInput struct {
	Status           string
	OverallRating    *float64
	Strengths        string
	ImprovementAreas string
	Achievements     string
	DevelopmentNeeds string
	NextPeriodGoals  string
	Ratings          []RatingInput
}

// Summary carries the on-read aggregates for one review. Averages are nil
// when the review has no ratings in that scope; zero would be misleading.
type Summary struct {
	RatingCount       int      `json:"ratingCount"`
	AverageRating     *float64 `json:"averageRating"`
	GoalAverage       *float64 `json:"goalAverage"`
	CompetencyAverage *float64 `json:"competencyAverage"`
}
