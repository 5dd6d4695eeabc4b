package goal

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

func (s *Service) ListGoals(ctx context.Context, tenantID, employeeID, managerID string) ([]Goal, error) {
	goals, err := s.Store.ListGoals(ctx, tenantID, employeeID, managerID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range goals {
		decorate(&goals[i], now)
	}
	return goals, nil
}

func (s *Service) GetGoal(ctx context.Context, tenantID, goalID string) (Goal, error) {
	g, err := s.Store.GetGoal(ctx, tenantID, goalID)
	if err != nil {
		return Goal{}, err
	}
	decorate(&g, time.Now())
	return g, nil
}

func (s *Service) CreateGoal(ctx context.Context, tenantID string, details Details) (string, error) {
	ApplyDefaults(&details)
	return s.Store.CreateGoal(ctx, tenantID, details)
}

func (s *Service) UpdateGoal(ctx context.Context, tenantID, goalID string, details Details) error {
	return s.Store.UpdateGoal(ctx, tenantID, goalID, details)
}

func (s *Service) UpdateProgress(ctx context.Context, tenantID, goalID string, currentValue, progress float64, status string) error {
	return s.Store.UpdateProgress(ctx, tenantID, goalID, currentValue, progress, status)
}

func (s *Service) DeleteGoal(ctx context.Context, tenantID, goalID string) error {
	return s.Store.DeleteGoal(ctx, tenantID, goalID)
}

// ApplyDefaults fills the enum fields a caller may omit. Progress stays
// exactly as submitted; the server never recomputes it from
// current/target.
func ApplyDefaults(details *Details) {
	if details.Category == "" {
		details.Category = DefaultCategory
	}
	if details.GoalType == "" {
		details.GoalType = DefaultType
	}
	if details.Priority == "" {
		details.Priority = DefaultPriority
	}
	if details.Status == "" {
		details.Status = StatusDraft
	}
}

func decorate(g *Goal, now time.Time) {
	g.Urgency = urgency.Classify(g.DueDate, now, TerminalStatuses[g.Status], urgency.WindowGoal)
	g.DaysRemaining = urgency.DaysRemaining(g.DueDate, now)
}
