package pip

import "time"

type Plan struct {
	ID                string    `json:"id"`
	EmployeeID        string    `json:"employeeId"`
	SupervisorID      string    `json:"supervisorId"`
	CreatedBy         string    `json:"createdBy"`
	Title             string    `json:"title"`
	Severity          string    `json:"severity"`
	PerformanceIssues string    `json:"performanceIssues"`
	ExpectedOutcomes  string    `json:"expectedOutcomes"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`

	// Derived on read, never stored.
	MilestonesTotal     int      `json:"milestonesTotal"`
	MilestonesCompleted int      `json:"milestonesCompleted"`
	CompletionRate      *float64 `json:"completionRate"`
	Urgency             string   `json:"urgency,omitempty"`
	DaysRemaining       int      `json:"daysRemaining"`
}

type Milestone struct {
	ID             string     `json:"id"`
	PlanID         string     `json:"planId"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	Status         string     `json:"status"`
	CompletionDate *time.Time `json:"completionDate,omitempty"`
	Notes          string     `json:"notes"`
	SortOrder      int        `json:"sortOrder"`
}

// ProgressNote records are append-only; there is no update or delete path.
type ProgressNote struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"planId"`
	Note      string    `json:"note"`
	NoteType  string    `json:"noteType"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

type PlanDetails struct {
	EmployeeID        string
	SupervisorID      string
	CreatedBy         string
	Title             string
	Severity          string
	PerformanceIssues string
	ExpectedOutcomes  string
	StartDate         time.Time
	EndDate           time.Time
	Status            string
}

type MilestoneInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	SortOrder   int        `json:"sortOrder"`
}
