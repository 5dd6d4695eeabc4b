package feedback

const (
	RequestStatusActive    = "active"
	RequestStatusCompleted = "completed"
	RequestStatusCancelled = "cancelled"
)

const (
	ProviderStatusPending    = "pending"
	ProviderStatusInProgress = "in_progress"
	ProviderStatusCompleted  = "completed"
)

const (
	QuestionTypeOpenText       = "open_text"
	QuestionTypeScale5         = "scale_5"
	QuestionTypeScale10        = "scale_10"
	QuestionTypeMultipleChoice = "multiple_choice"
)

const (
	RelationshipSelf        = "self"
	RelationshipManager     = "manager"
	RelationshipPeer        = "peer"
	RelationshipSubordinate = "subordinate"
	RelationshipOther       = "other"
)

var RequestStatuses = []string{RequestStatusActive, RequestStatusCompleted, RequestStatusCancelled}

var QuestionTypes = []string{QuestionTypeOpenText, QuestionTypeScale5, QuestionTypeScale10, QuestionTypeMultipleChoice}

var Relationships = []string{RelationshipSelf, RelationshipManager, RelationshipPeer, RelationshipSubordinate, RelationshipOther}

var TerminalStatuses = map[string]bool{
	RequestStatusCompleted: true,
	RequestStatusCancelled: true,
}
