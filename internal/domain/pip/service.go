package pip

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

func (s *Service) ListPlans(ctx context.Context, tenantID, employeeID, supervisorID string) ([]Plan, error) {
	plans, err := s.Store.ListPlans(ctx, tenantID, employeeID, supervisorID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range plans {
		decorate(&plans[i], now)
	}
	return plans, nil
}

func (s *Service) GetPlan(ctx context.Context, tenantID, planID string) (Plan, []Milestone, []ProgressNote, error) {
	p, err := s.Store.GetPlan(ctx, tenantID, planID)
	if err != nil {
		return Plan{}, nil, nil, err
	}
	decorate(&p, time.Now())

	milestones, err := s.Store.ListMilestones(ctx, planID)
	if err != nil {
		return Plan{}, nil, nil, err
	}
	notes, err := s.Store.ListNotes(ctx, planID)
	if err != nil {
		return Plan{}, nil, nil, err
	}
	return p, milestones, notes, nil
}

func (s *Service) CreatePlan(ctx context.Context, tenantID string, details PlanDetails, milestones []MilestoneInput) (string, error) {
	if details.Status == "" {
		details.Status = StatusActive
	}
	return s.Store.CreatePlan(ctx, tenantID, details, milestones)
}

func (s *Service) UpdatePlanStatus(ctx context.Context, tenantID, planID, status string) error {
	return s.Store.UpdatePlanStatus(ctx, tenantID, planID, status)
}

func (s *Service) UpdateMilestoneStatus(ctx context.Context, milestoneID, status, notes string) error {
	return s.Store.UpdateMilestoneStatus(ctx, milestoneID, status, notes)
}

func (s *Service) MilestonePlanID(ctx context.Context, tenantID, milestoneID string) (string, error) {
	return s.Store.MilestonePlanID(ctx, tenantID, milestoneID)
}

func (s *Service) AddNote(ctx context.Context, planID, note, noteType, authorID string) (string, error) {
	if noteType == "" {
		noteType = NoteTypeProgress
	}
	return s.Store.CreateNote(ctx, planID, note, noteType, authorID)
}

// MilestoneCompletionRate mirrors the provider completion rate on 360
// requests: undefined when the plan has no milestones.
func MilestoneCompletionRate(completed, total int) (float64, bool) {
	if total == 0 {
		return 0, false
	}
	return float64(completed) / float64(total), true
}

func decorate(p *Plan, now time.Time) {
	if rate, ok := MilestoneCompletionRate(p.MilestonesCompleted, p.MilestonesTotal); ok {
		p.CompletionRate = &rate
	}
	p.Urgency = urgency.Classify(p.EndDate, now, TerminalStatuses[p.Status], urgency.WindowGoal)
	p.DaysRemaining = urgency.DaysRemaining(p.EndDate, now)
}
