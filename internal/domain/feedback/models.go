package feedback

import "time"

type Request struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	CycleID     string    `json:"cycleId,omitempty"`
	RequesterID string    `json:"requesterId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`

	// Derived on read, never stored.
	TotalProviders     int      `json:"totalProviders"`
	CompletedProviders int      `json:"completedProviders"`
	CompletionRate     *float64 `json:"completionRate"`
	Urgency            string   `json:"urgency,omitempty"`
	DaysRemaining      int      `json:"daysRemaining"`
}

type Question struct {
	ID           string `json:"id"`
	RequestID    string `json:"requestId"`
	QuestionText string `json:"questionText"`
	QuestionType string `json:"questionType"`
	Required     bool   `json:"required"`
	SortOrder    int    `json:"sortOrder"`
}

type Provider struct {
	ID           string     `json:"id"`
	RequestID    string     `json:"requestId"`
	ProviderID   string     `json:"providerId"`
	Relationship string     `json:"relationship"`
	Status       string     `json:"status"`
	InvitedAt    time.Time  `json:"invitedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

type Response struct {
	ID            string            `json:"id"`
	RequestID     string            `json:"requestId"`
	ProviderID    string            `json:"providerId"`
	Answers       map[string]string `json:"answers"`
	OverallRating *float64          `json:"overallRating,omitempty"`
	Comments      string            `json:"comments"`
	SubmittedAt   time.Time         `json:"submittedAt"`
}

type Reminder struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"requestId"`
	ProviderID string    `json:"providerId"`
	Message    string    `json:"message"`
	SentBy     string    `json:"sentBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

type RequestDetails struct {
	EmployeeID  string
	CycleID     string
	RequesterID string
	Title       string
	Description string
	Deadline    time.Time
}

type QuestionInput struct {
	QuestionText string `json:"questionText"`
	QuestionType string `json:"questionType"`
	Required     bool   `json:"required"`
	SortOrder    int    `json:"sortOrder"`
}

type ProviderInput struct {
	ProviderID   string `json:"providerId"`
	Relationship string `json:"relationship"`
}

type ResponseInput struct {
	Answers       map[string]string
	OverallRating *float64
	Comments      string
}
