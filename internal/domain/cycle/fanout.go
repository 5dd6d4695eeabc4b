package cycle

import (
	"time"

	"hrops/internal/domain/review"
)

// PlanAssignments expands an employee set into the assignment rows a cycle
// needs: one self review per employee, plus one manager review when the
// employee has a manager. All are due on the cycle's review deadline.
// Duplicate suppression happens at insert time, not here, so calling assign
// twice plans the same set and the store discards rows that already exist.
func PlanAssignments(deadline time.Time, employees []EmployeeRef) []AssignmentSpec {
	specs := make([]AssignmentSpec, 0, len(employees)*2)
	for _, emp := range employees {
		specs = append(specs, AssignmentSpec{
			EmployeeID: emp.EmployeeID,
			ReviewerID: emp.EmployeeID,
			ReviewType: review.TypeSelf,
			DueDate:    deadline,
		})
		if emp.ManagerID != "" {
			specs = append(specs, AssignmentSpec{
				EmployeeID: emp.EmployeeID,
				ReviewerID: emp.ManagerID,
				ReviewType: review.TypeManager,
				DueDate:    deadline,
			})
		}
	}
	return specs
}
