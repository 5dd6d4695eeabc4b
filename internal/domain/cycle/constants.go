package cycle

const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusInReview  = "in_review"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

const (
	TypeAnnual       = "annual"
	TypeSemiAnnual   = "semi_annual"
	TypeQuarterly    = "quarterly"
	TypeMonthly      = "monthly"
	TypeProjectBased = "project_based"
)

var Statuses = []string{StatusDraft, StatusActive, StatusInReview, StatusCompleted, StatusArchived}

var Types = []string{TypeAnnual, TypeSemiAnnual, TypeQuarterly, TypeMonthly, TypeProjectBased}

// TerminalStatuses feed the urgency classifier: a completed or archived
// cycle is never overdue.
var TerminalStatuses = map[string]bool{
	StatusCompleted: true,
	StatusArchived:  true,
}
