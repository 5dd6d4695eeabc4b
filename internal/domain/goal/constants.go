package goal

const (
	StatusDraft      = "draft"
	StatusActive     = "active"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusPaused     = "paused"
	StatusCancelled  = "cancelled"
)

const (
	DefaultCategory = "performance"
	DefaultType     = "quantitative"
	DefaultPriority = "medium"
)

var Statuses = []string{StatusDraft, StatusActive, StatusInProgress, StatusCompleted, StatusPaused, StatusCancelled}

var Categories = []string{"performance", "development", "business", "behavioral"}

var Types = []string{"quantitative", "qualitative", "milestone"}

var Priorities = []string{"low", "medium", "high", "critical"}

var TerminalStatuses = map[string]bool{
	StatusCompleted: true,
	StatusCancelled: true,
}
