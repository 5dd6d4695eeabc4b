package review

const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusSubmitted  = "submitted"
	StatusReviewed   = "reviewed"
	StatusCompleted  = "completed"
)

const (
	TypeSelf      = "self"
	TypeManager   = "manager"
	TypePeer      = "peer"
	Type360       = "360"
	TypeSkipLevel = "skip_level"
)

const (
	RatingCategoryGoal       = "goal"
	RatingCategoryCompetency = "competency"
)

var Statuses = []string{StatusNotStarted, StatusInProgress, StatusSubmitted, StatusReviewed, StatusCompleted}

var Types = []string{TypeSelf, TypeManager, TypePeer, Type360, TypeSkipLevel}

var TerminalStatuses = map[string]bool{
	StatusReviewed:  true,
	StatusCompleted: true,
}
