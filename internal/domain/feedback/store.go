package feedback

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const requestColumns = `r.id, r.employee_id, COALESCE(r.cycle_id::text, ''), COALESCE(r.requester_id::text, ''), r.title, r.description,
    r.deadline, r.status, r.created_at,
    (SELECT COUNT(1) FROM feedback_providers p WHERE p.request_id = r.id),
    (SELECT COUNT(1) FROM feedback_providers p WHERE p.request_id = r.id AND p.status = 'completed')`

func (s *Store) ListRequests(ctx context.Context, tenantID, employeeID, status string) ([]Request, error) {
	query := "SELECT " + requestColumns + " FROM feedback_requests r WHERE r.tenant_id = $1"
	args := []any{tenantID}
	if employeeID != "" {
		args = append(args, employeeID)
		query += fmt.Sprintf(" AND r.employee_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	query += " ORDER BY r.created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.EmployeeID, &req.CycleID, &req.RequesterID, &req.Title, &req.Description,
			&req.Deadline, &req.Status, &req.CreatedAt, &req.TotalProviders, &req.CompletedProviders); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (s *Store) GetRequest(ctx context.Context, tenantID, requestID string) (Request, error) {
	var req Request
	err := s.DB.QueryRow(ctx, "SELECT "+requestColumns+" FROM feedback_requests r WHERE r.tenant_id = $1 AND r.id = $2", tenantID, requestID).
		Scan(&req.ID, &req.EmployeeID, &req.CycleID, &req.RequesterID, &req.Title, &req.Description,
			&req.Deadline, &req.Status, &req.CreatedAt, &req.TotalProviders, &req.CompletedProviders)
	return req, err
}

// CreateRequest inserts the request, its providers and its questions as one
// transaction. If any row fails, nothing persists.
func (s *Store) CreateRequest(ctx context.Context, tenantID string, details RequestDetails, providers []ProviderInput, questions []QuestionInput) (string, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var requestID string
	if err := tx.QueryRow(ctx, `
    INSERT INTO feedback_requests (tenant_id, employee_id, cycle_id, requester_id, title, description, deadline, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,'active')
    RETURNING id
  `, tenantID, details.EmployeeID, nullIfEmpty(details.CycleID), nullIfEmpty(details.RequesterID), details.Title, details.Description, details.Deadline).Scan(&requestID); err != nil {
		return "", err
	}

	for _, p := range providers {
		if _, err := tx.Exec(ctx, `
      INSERT INTO feedback_providers (request_id, provider_id, relationship, status)
      VALUES ($1,$2,$3,'pending')
    `, requestID, p.ProviderID, p.Relationship); err != nil {
			return "", err
		}
	}

	for _, q := range questions {
		if _, err := tx.Exec(ctx, `
      INSERT INTO feedback_questions (request_id, question_text, question_type, required, sort_order)
      VALUES ($1,$2,$3,$4,$5)
    `, requestID, q.QuestionText, q.QuestionType, q.Required, q.SortOrder); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return requestID, nil
}

func (s *Store) UpdateRequestStatus(ctx context.Context, tenantID, requestID, status string) error {
	_, err := s.DB.Exec(ctx, "UPDATE feedback_requests SET status = $1 WHERE tenant_id = $2 AND id = $3", status, tenantID, requestID)
	return err
}

func (s *Store) ListQuestions(ctx context.Context, requestID string) ([]Question, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, request_id, question_text, question_type, required, sort_order
    FROM feedback_questions
    WHERE request_id = $1
    ORDER BY sort_order, id
  `, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.RequestID, &q.QuestionText, &q.QuestionType, &q.Required, &q.SortOrder); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *Store) ListProviders(ctx context.Context, requestID string) ([]Provider, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, request_id, provider_id, relationship, status, invited_at, completed_at
    FROM feedback_providers
    WHERE request_id = $1
    ORDER BY invited_at, id
  `, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []Provider
	for rows.Next() {
		var p Provider
		if err := rows.Scan(&p.ID, &p.RequestID, &p.ProviderID, &p.Relationship, &p.Status, &p.InvitedAt, &p.CompletedAt); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

func (s *Store) ProviderStatus(ctx context.Context, requestID, providerID string) (string, error) {
	var status string
	err := s.DB.QueryRow(ctx, "SELECT status FROM feedback_providers WHERE request_id = $1 AND provider_id = $2", requestID, providerID).Scan(&status)
	return status, err
}

func (s *Store) UpdateProviderStatus(ctx context.Context, requestID, providerID, status string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE feedback_providers SET status = $1 WHERE request_id = $2 AND provider_id = $3
  `, status, requestID, providerID)
	return err
}

// SubmitResponse upserts the provider's response and forces their status to
// completed in the same transaction. A resubmission overwrites the stored
// answers and refreshes the submission timestamp; there is no un-submit.
// Submitters outside the request's provider set are rejected with
// ErrNotProvider and nothing is written.
func (s *Store) SubmitResponse(ctx context.Context, requestID, providerID string, input ResponseInput) error {
	answersJSON, err := json.Marshal(input.Answers)
	if err != nil {
		return err
	}
	if input.Answers == nil {
		answersJSON = []byte("{}")
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO feedback_responses (request_id, provider_id, answers_json, overall_rating, comments, submitted_at)
    VALUES ($1,$2,$3,$4,$5,now())
    ON CONFLICT (request_id, provider_id)
    DO UPDATE SET answers_json = EXCLUDED.answers_json,
                  overall_rating = EXCLUDED.overall_rating,
                  comments = EXCLUDED.comments,
                  submitted_at = now()
  `, requestID, providerID, answersJSON, input.OverallRating, input.Comments); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
    UPDATE feedback_providers
    SET status = 'completed', completed_at = now()
    WHERE request_id = $1 AND provider_id = $2
  `, requestID, providerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotProvider
	}

	return tx.Commit(ctx)
}

func (s *Store) ListResponses(ctx context.Context, requestID string) ([]Response, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, request_id, provider_id, answers_json, overall_rating, comments, submitted_at
    FROM feedback_responses
    WHERE request_id = $1
    ORDER BY submitted_at
  `, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []Response
	for rows.Next() {
		var resp Response
		var answersJSON []byte
		if err := rows.Scan(&resp.ID, &resp.RequestID, &resp.ProviderID, &answersJSON, &resp.OverallRating, &resp.Comments, &resp.SubmittedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(answersJSON, &resp.Answers); err != nil {
			resp.Answers = nil
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

// CreateReminder appends a fire-and-forget reminder record. Delivery is
// somebody else's problem; this is the audit trail of the trigger.
func (s *Store) CreateReminder(ctx context.Context, requestID, providerID, message, sentBy string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO feedback_reminders (request_id, provider_id, message, sent_by)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, requestID, providerID, message, sentBy).Scan(&id)
	return id, err
}

func (s *Store) ListReminders(ctx context.Context, requestID string) ([]Reminder, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, request_id, provider_id, message, sent_by, created_at
    FROM feedback_reminders
    WHERE request_id = $1
    ORDER BY created_at DESC
  `, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []Reminder
	for rows.Next() {
		var rem Reminder
		if err := rows.Scan(&rem.ID, &rem.RequestID, &rem.ProviderID, &rem.Message, &rem.SentBy, &rem.CreatedAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
