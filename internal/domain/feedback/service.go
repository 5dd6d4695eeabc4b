package feedback

import (
	"context"
	"errors"
	"time"

	"hrops/internal/domain/urgency"
)

// ErrNotProvider rejects a response from anyone outside the request's
// provider set before any row is committed.
var ErrNotProvider = errors.New("employee is not a provider on this feedback request")

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) ListRequests(ctx context.Context, tenantID, employeeID, status string) ([]Request, error) {
	requests, err := s.Store.ListRequests(ctx, tenantID, employeeID, status)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range requests {
		decorate(&requests[i], now)
	}
	return requests, nil
}

func (s *Service) GetRequest(ctx context.Context, tenantID, requestID string) (Request, []Provider, []Question, error) {
	req, err := s.Store.GetRequest(ctx, tenantID, requestID)
	if err != nil {
		return Request{}, nil, nil, err
	}
	decorate(&req, time.Now())

	providers, err := s.Store.ListProviders(ctx, requestID)
	if err != nil {
		return Request{}, nil, nil, err
	}
	questions, err := s.Store.ListQuestions(ctx, requestID)
	if err != nil {
		return Request{}, nil, nil, err
	}
	return req, providers, questions, nil
}

func (s *Service) CreateRequest(ctx context.Context, tenantID string, details RequestDetails, providers []ProviderInput, questions []QuestionInput) (string, error) {
	return s.Store.CreateRequest(ctx, tenantID, details, providers, questions)
}

func (s *Service) UpdateRequestStatus(ctx context.Context, tenantID, requestID, status string) error {
	return s.Store.UpdateRequestStatus(ctx, tenantID, requestID, status)
}

// StartResponse moves a pending provider to in_progress. Providers already
// completed stay completed; submission is irreversible from their side.
func (s *Service) StartResponse(ctx context.Context, tenantID, requestID, providerID string) error {
	if _, err := s.Store.GetRequest(ctx, tenantID, requestID); err != nil {
		return err
	}
	status, err := s.Store.ProviderStatus(ctx, requestID, providerID)
	if err != nil {
		return err
	}
	if status != ProviderStatusPending {
		return nil
	}
	return s.Store.UpdateProviderStatus(ctx, requestID, providerID, ProviderStatusInProgress)
}

// SubmitResponse resolves the request within the tenant first, so a request
// ID from another tenant reads as not found rather than being written to.
func (s *Service) SubmitResponse(ctx context.Context, tenantID, requestID, providerID string, input ResponseInput) error {
	if _, err := s.Store.GetRequest(ctx, tenantID, requestID); err != nil {
		return err
	}
	return s.Store.SubmitResponse(ctx, requestID, providerID, input)
}

func (s *Service) ListResponses(ctx context.Context, requestID string) ([]Response, error) {
	return s.Store.ListResponses(ctx, requestID)
}

func (s *Service) SendReminder(ctx context.Context, requestID, providerID, message, sentBy string) (string, error) {
	return s.Store.CreateReminder(ctx, requestID, providerID, message, sentBy)
}

func (s *Service) ListReminders(ctx context.Context, requestID string) ([]Reminder, error) {
	return s.Store.ListReminders(ctx, requestID)
}

func decorate(req *Request, now time.Time) {
	if rate, ok := CompletionRate(req.CompletedProviders, req.TotalProviders); ok {
		req.CompletionRate = &rate
	}
	req.Urgency = urgency.Classify(req.Deadline, now, TerminalStatuses[req.Status], urgency.WindowReview)
	req.DaysRemaining = urgency.DaysRemaining(req.Deadline, now)
}
