package goal

import "time"

type Goal struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	ManagerID    string    `json:"managerId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	GoalType     string    `json:"goalType"`
	Priority     string    `json:"priority"`
	TargetValue  float64   `json:"targetValue"`
	Unit         string    `json:"unit"`
	Weight       float64   `json:"weight"`
	StartDate    time.Time `json:"startDate"`
	DueDate      time.Time `json:"dueDate"`
	Status       string    `json:"status"`
	CurrentValue float64   `json:"currentValue"`
	// Progress is whatever the caller last submitted, 0-100. It is not
	// derived from current/target server-side; the submitted value is
	// authoritative.
	Progress  float64   `json:"progress"`
	CreatedAt time.Time `json:"createdAt"`

	// Derived on read, never stored.
	Urgency       string `json:"urgency,omitempty"`
	DaysRemaining int    `json:"daysRemaining"`
}

type Details struct {
	EmployeeID   string
	ManagerID    string
	Title        string
	Description  string
	Category     string
	GoalType     string
	Priority     string
	TargetValue  float64
	Unit         string
	Weight       float64
	StartDate    time.Time
	DueDate      time.Time
	Status       string
	CurrentValue float64
	Progress     float64
}
