package review

import (
	"context"
	"errors"
	"time"

	"hrops/internal/domain/urgency"
)

// ErrNotReviewer rejects a mutation before any write happens.
var ErrNotReviewer = errors.New("actor is not the reviewer for this assignment")

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) ListAssignments(ctx context.Context, tenantID string, filter Filter) ([]Assignment, error) {
	assignments, err := s.Store.ListAssignments(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range assignments {
		decorate(&assignments[i], now)
	}
	return assignments, nil
}

func (s *Service) GetAssignment(ctx context.Context, tenantID, reviewID string) (Assignment, []Rating, Summary, error) {
	a, err := s.Store.GetAssignment(ctx, tenantID, reviewID)
	if err != nil {
		return Assignment{}, nil, Summary{}, err
	}
	decorate(&a, time.Now())

	ratings, err := s.Store.ListRatings(ctx, reviewID)
	if err != nil {
		return Assignment{}, nil, Summary{}, err
	}
	return a, ratings, Summarize(ratings), nil
}

// Save checks the mutation contract, then writes the scalar fields and the
// replacement rating set atomically.
func (s *Service) Save(ctx context.Context, tenantID, reviewID, actorEmployeeID string, actorIsHR bool, input SaveInput) error {
	a, err := s.Store.GetAssignment(ctx, tenantID, reviewID)
	if err != nil {
		return err
	}
	if !CanMutate(a, actorEmployeeID, actorIsHR) {
		return ErrNotReviewer
	}
	if input.Status == "" {
		input.Status = a.Status
	}
	return s.Store.SaveReview(ctx, tenantID, reviewID, input)
}

func (s *Service) UpdateStatus(ctx context.Context, tenantID, reviewID, actorEmployeeID string, actorIsHR bool, status string) error {
	a, err := s.Store.GetAssignment(ctx, tenantID, reviewID)
	if err != nil {
		return err
	}
	if !CanMutate(a, actorEmployeeID, actorIsHR) {
		return ErrNotReviewer
	}
	return s.Store.UpdateStatus(ctx, tenantID, reviewID, status)
}

func (s *Service) EmployeeIDByUserID(ctx context.Context, tenantID, userID string) (string, error) {
	return s.Store.EmployeeIDByUserID(ctx, tenantID, userID)
}

// CanMutate encodes the access contract: the assigned reviewer may mutate
// their own assignment, HR may mutate any, everyone else is read-only. The
// subject never mutates unless they are also the reviewer (self reviews).
func CanMutate(a Assignment, actorEmployeeID string, actorIsHR bool) bool {
	if actorIsHR {
		return true
	}
	return actorEmployeeID != "" && a.ReviewerID == actorEmployeeID
}

func decorate(a *Assignment, now time.Time) {
	if a.DueDate == nil {
		a.Urgency = urgency.StatusOnTrack
		return
	}
	a.Urgency = urgency.Classify(*a.DueDate, now, TerminalStatuses[a.Status], urgency.WindowReview)
	a.DaysRemaining = urgency.DaysRemaining(*a.DueDate, now)
}
