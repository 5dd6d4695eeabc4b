package auth

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHR       = "hr"
)

const (
	PermEmployeesRead     = "core.employees.read"
	PermEmployeesWrite    = "core.employees.write"
	PermPerformanceRead   = "performance.read"
	PermPerformanceWrite  = "performance.write"
	PermPerformanceReview = "performance.review"
	PermPerformanceAdmin  = "performance.admin"
	PermFeedbackRead      = "feedback.read"
	PermFeedbackWrite     = "feedback.write"
	PermPIPRead           = "pip.read"
	PermPIPWrite          = "pip.write"
	PermReportsRead       = "reports.read"
	PermAuditRead         = "audit.read"
)

var DefaultPermissions = []string{
	PermEmployeesRead,
	PermEmployeesWrite,
	PermPerformanceRead,
	PermPerformanceWrite,
	PermPerformanceReview,
	PermPerformanceAdmin,
	PermFeedbackRead,
	PermFeedbackWrite,
	PermPIPRead,
	PermPIPWrite,
	PermReportsRead,
	PermAuditRead,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermEmployeesRead,
		PermPerformanceRead,
		PermPerformanceWrite,
		PermFeedbackRead,
		PermFeedbackWrite,
		PermReportsRead,
	},
	RoleManager: {
		PermEmployeesRead,
		PermPerformanceRead,
		PermPerformanceWrite,
		PermPerformanceReview,
		PermFeedbackRead,
		PermFeedbackWrite,
		PermPIPRead,
		PermPIPWrite,
		PermReportsRead,
	},
	RoleHR: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermPerformanceRead,
		PermPerformanceWrite,
		PermPerformanceReview,
		PermPerformanceAdmin,
		PermFeedbackRead,
		PermFeedbackWrite,
		PermPIPRead,
		PermPIPWrite,
		PermReportsRead,
		PermAuditRead,
	},
}

// IsHR reports whether a role may mutate records it does not own.
// Reviewer-exclusive edit rights apply to everyone else.
func IsHR(roleName string) bool {
	return roleName == RoleHR
}
