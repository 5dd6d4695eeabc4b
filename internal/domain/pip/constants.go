package pip

const (
	StatusActive                = "active"
	StatusCompletedSuccessful   = "completed_successful"
	StatusCompletedUnsuccessful = "completed_unsuccessful"
	StatusTerminated            = "terminated"
)

const (
	MilestoneStatusPending    = "pending"
	MilestoneStatusInProgress = "in_progress"
	MilestoneStatusCompleted  = "completed"
	MilestoneStatusMissed     = "missed"
)

const (
	NoteTypeProgress    = "progress"
	NoteTypeConcern     = "concern"
	NoteTypeAchievement = "achievement"
	NoteTypeMeeting     = "meeting"
	NoteTypeOther       = "other"
)

const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

var Statuses = []string{StatusActive, StatusCompletedSuccessful, StatusCompletedUnsuccessful, StatusTerminated}

var MilestoneStatuses = []string{MilestoneStatusPending, MilestoneStatusInProgress, MilestoneStatusCompleted, MilestoneStatusMissed}

var NoteTypes = []string{NoteTypeProgress, NoteTypeConcern, NoteTypeAchievement, NoteTypeMeeting, NoteTypeOther}

var Severities = []string{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

var TerminalStatuses = map[string]bool{
	StatusCompletedSuccessful:   true,
	StatusCompletedUnsuccessful: true,
	StatusTerminated:            true,
}
