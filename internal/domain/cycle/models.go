package cycle

import "time"

type Cycle struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	CycleType      string    `json:"cycleType"`
	Year           int       `json:"year"`
	PeriodLabel    string    `json:"periodLabel"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	ReviewDeadline time.Time `json:"reviewDeadline"`
	Status         string    `json:"status"`
	IncludeSelf    bool      `json:"includeSelf"`
	IncludeManager bool      `json:"includeManager"`
	IncludePeer    bool      `json:"includePeer"`
	Include360     bool      `json:"include360"`
	CreatedAt      time.Time `json:"createdAt"`

	// Derived on read, never stored.
	Urgency       string `json:"urgency,omitempty"`
	DaysRemaining int    `json:"daysRemaining"`
}

type Details struct {
	Name           string
	CycleType      string
	Year           int
	PeriodLabel    string
	StartDate      time.Time
	EndDate        time.Time
	ReviewDeadline time.Time
	Status         string
	IncludeSelf    bool
	IncludeManager bool
	IncludePeer    bool
	Include360     bool
}

// EmployeeRef is the slice of the directory the fan-out needs.
type EmployeeRef struct {
	EmployeeID string
	ManagerID  string
	UserID     string
}

// AssignmentSpec is one planned (subject, reviewer, type) row for a cycle.
type AssignmentSpec struct {
	EmployeeID string
	ReviewerID string
	ReviewType string
	DueDate    time.Time
}

type AssignResult struct {
	Planned int `json:"planned"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}
