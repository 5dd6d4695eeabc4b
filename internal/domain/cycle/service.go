package cycle

import (
	"context"
	"time"

	"hrops/internal/domain/urgency"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) ListCycles(ctx context.Context, tenantID, status string) ([]Cycle, error) {
	cycles, err := s.Store.ListCycles(ctx, tenantID, status)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range cycles {
		decorate(&cycles[i], now)
	}
	return cycles, nil
}

func (s *Service) GetCycle(ctx context.Context, tenantID, cycleID string) (Cycle, error) {
	c, err := s.Store.GetCycle(ctx, tenantID, cycleID)
	if err != nil {
		return Cycle{}, err
	}
	decorate(&c, time.Now())
	return c, nil
}

func (s *Service) CreateCycle(ctx context.Context, tenantID string, details Details) (string, error) {
	if details.Status == "" {
		details.Status = StatusDraft
	}
	return s.Store.CreateCycle(ctx, tenantID, details)
}

func (s *Service) UpdateCycle(ctx context.Context, tenantID, cycleID string, details Details) error {
	return s.Store.UpdateCycle(ctx, tenantID, cycleID, details)
}

func (s *Service) UpdateCycleStatus(ctx context.Context, tenantID, cycleID, status string) error {
	return s.Store.UpdateCycleStatus(ctx, tenantID, cycleID, status)
}

func (s *Service) DeleteCycle(ctx context.Context, tenantID, cycleID string) error {
	return s.Store.DeleteCycle(ctx, tenantID, cycleID)
}

// Assign fans a cycle out across the given employees (all active employees
// when the list is empty). Re-running it is a no-op for rows that already
// exist; duplicates are suppressed by the store's conditional insert rather
// than surfaced as errors. The returned specs are the rows actually created
// so callers can notify the reviewers involved.
func (s *Service) Assign(ctx context.Context, tenantID, cycleID string, employeeIDs []string) (AssignResult, []AssignmentSpec, error) {
	c, err := s.Store.GetCycle(ctx, tenantID, cycleID)
	if err != nil {
		return AssignResult{}, nil, err
	}

	employees, err := s.Store.ListActiveEmployees(ctx, tenantID, employeeIDs)
	if err != nil {
		return AssignResult{}, nil, err
	}

	specs := PlanAssignments(c.ReviewDeadline, employees)
	result := AssignResult{Planned: len(specs)}
	var createdSpecs []AssignmentSpec
	for _, spec := range specs {
		created, err := s.Store.InsertAssignment(ctx, tenantID, cycleID, spec)
		if err != nil {
			return result, createdSpecs, err
		}
		if created {
			result.Created++
			createdSpecs = append(createdSpecs, spec)
		} else {
			result.Skipped++
		}
	}
	return result, createdSpecs, nil
}

func decorate(c *Cycle, now time.Time) {
	c.Urgency = urgency.Classify(c.ReviewDeadline, now, TerminalStatuses[c.Status], urgency.WindowGoal)
	c.DaysRemaining = urgency.DaysRemaining(c.ReviewDeadline, now)
}
