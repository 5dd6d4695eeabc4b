package cycle

import (
	"testing"
	"time"

	"hrops/internal/domain/review"
)

var deadline = time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

func TestPlanAssignmentsSelfAndManager(t *testing.T) {
	specs := PlanAssignments(deadline, []EmployeeRef{
		{EmployeeID: "e1", ManagerID: "m1"},
	})
	if len(specs) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(specs))
	}
	if specs[0].ReviewType != review.TypeSelf || specs[0].ReviewerID != "e1" {
		t.Fatalf("expected self review by e1, got %+v", specs[0])
	}
	if specs[1].ReviewType != review.TypeManager || specs[1].ReviewerID != "m1" {
		t.Fatalf("expected manager review by m1, got %+v", specs[1])
	}
	for _, spec := range specs {
		if !spec.DueDate.Equal(deadline) {
			t.Fatalf("expected due date %v, got %v", deadline, spec.DueDate)
		}
		if spec.EmployeeID != "e1" {
			t.Fatalf("expected subject e1, got %s", spec.EmployeeID)
		}
	}
}

func TestPlanAssignmentsWithoutManager(t *testing.T) {
	specs := PlanAssignments(deadline, []EmployeeRef{
		{EmployeeID: "e1"},
	})
	if len(specs) != 1 {
		t.Fatalf("expected only a self review, got %d", len(specs))
	}
	if specs[0].ReviewType != review.TypeSelf {
		t.Fatalf("expected self review, got %s", specs[0].ReviewType)
	}
}

func TestPlanAssignmentsIsDeterministic(t *testing.T) {
	employees := []EmployeeRef{
		{EmployeeID: "e1", ManagerID: "m1"},
		{EmployeeID: "e2"},
		{EmployeeID: "e3", ManagerID: "m1"},
	}
	first := PlanAssignments(deadline, employees)
	second := PlanAssignments(deadline, employees)
	if len(first) != 5 || len(second) != 5 {
		t.Fatalf("expected 5 planned rows, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("plan differs at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}
