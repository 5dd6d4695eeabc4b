package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const assignmentColumns = `id, cycle_id, employee_id, reviewer_id, review_type, due_date, status, overall_rating,
    strengths, improvement_areas, achievements, development_needs, next_period_goals, submitted_at, reviewed_at, created_at`

type Filter struct {
	CycleID    string
	EmployeeID string
	ReviewerID string
	Status     string
}

func (s *Store) ListAssignments(ctx context.Context, tenantID string, filter Filter) ([]Assignment, error) {
	query := "SELECT " + assignmentColumns + " FROM review_assignments WHERE tenant_id = $1"
	args := []any{tenantID}
	if filter.CycleID != "" {
		args = append(args, filter.CycleID)
		query += fmt.Sprintf(" AND cycle_id = $%d", len(args))
	}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.ReviewerID != "" {
		args = append(args, filter.ReviewerID)
		query += fmt.Sprintf(" AND reviewer_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []Assignment
	for rows.Next() {
		var a Assignment
		if err := scanAssignment(rows, &a); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (s *Store) GetAssignment(ctx context.Context, tenantID, reviewID string) (Assignment, error) {
	var a Assignment
	row := s.DB.QueryRow(ctx, "SELECT "+assignmentColumns+" FROM review_assignments WHERE tenant_id = $1 AND id = $2", tenantID, reviewID)
	if err := scanAssignment(row, &a); err != nil {
		return Assignment{}, err
	}
	return a, nil
}

func (s *Store) ListRatings(ctx context.Context, reviewID string) ([]Rating, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, review_id, category, COALESCE(item_id::text, ''), name, description, value, max_value, weight, comments
    FROM review_ratings
    WHERE review_id = $1
    ORDER BY category, name
  `, reviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []Rating
	for rows.Next() {
		var r Rating
		if err := rows.Scan(&r.ID, &r.ReviewID, &r.Category, &r.ItemID, &r.Name, &r.Description, &r.Value, &r.MaxValue, &r.Weight, &r.Comments); err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

// SaveReview applies the scalar fields and replaces the review's rating set
// in one transaction. A failure anywhere rolls the whole save back, so the
// stored ratings are always the complete set from exactly one save call.
func (s *Store) SaveReview(ctx context.Context, tenantID, reviewID string, input SaveInput) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    UPDATE review_assignments
    SET status = $1,
        overall_rating = $2,
        strengths = $3,
        improvement_areas = $4,
        achievements = $5,
        development_needs = $6,
        next_period_goals = $7,
        submitted_at = CASE WHEN $1 = 'submitted' AND submitted_at IS NULL THEN now() ELSE submitted_at END,
        reviewed_at = CASE WHEN $1 = 'reviewed' AND reviewed_at IS NULL THEN now() ELSE reviewed_at END,
        updated_at = now()
    WHERE tenant_id = $8 AND id = $9
  `, input.Status, input.OverallRating, input.Strengths, input.ImprovementAreas, input.Achievements,
		input.DevelopmentNeeds, input.NextPeriodGoals, tenantID, reviewID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, "DELETE FROM review_ratings WHERE review_id = $1", reviewID); err != nil {
		return err
	}

	for _, r := range input.Ratings {
		if _, err := tx.Exec(ctx, `
      INSERT INTO review_ratings (review_id, category, item_id, name, description, value, max_value, weight, comments)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    `, reviewID, r.Category, nullIfEmpty(r.ItemID), r.Name, r.Description, r.Value, r.MaxValue, r.Weight, r.Comments); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) UpdateStatus(ctx context.Context, tenantID, reviewID, status string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE review_assignments
    SET status = $1,
        submitted_at = CASE WHEN $1 = 'submitted' AND submitted_at IS NULL THEN now() ELSE submitted_at END,
        reviewed_at = CASE WHEN $1 = 'reviewed' AND reviewed_at IS NULL THEN now() ELSE reviewed_at END,
        updated_at = now()
    WHERE tenant_id = $2 AND id = $3
  `, status, tenantID, reviewID)
	return err
}

func (s *Store) EmployeeIDByUserID(ctx context.Context, tenantID, userID string) (string, error) {
	var employeeID string
	if err := s.DB.QueryRow(ctx, "SELECT id FROM employees WHERE tenant_id = $1 AND user_id = $2", tenantID, userID).Scan(&employeeID); err != nil {
		return "", err
	}
	return employeeID, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssignment(row rowScanner, a *Assignment) error {
	return row.Scan(&a.ID, &a.CycleID, &a.EmployeeID, &a.ReviewerID, &a.ReviewType, &a.DueDate, &a.Status, &a.OverallRating,
		&a.Strengths, &a.ImprovementAreas, &a.Achievements, &a.DevelopmentNeeds, &a.NextPeriodGoals,
		&a.SubmittedAt, &a.ReviewedAt, &a.CreatedAt)
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
