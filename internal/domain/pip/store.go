package pip

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

const planColumns = `p.id, p.employee_id, p.supervisor_id, p.created_by, p.title, p.severity, p.performance_issues,
    p.expected_outcomes, p.start_date, p.end_date, p.status, p.created_at,
    (SELECT COUNT(1) FROM pip_milestones m WHERE m.pip_id = p.id),
    (SELECT COUNT(1) FROM pip_milestones m WHERE m.pip_id = p.id AND m.status = 'completed')`

func (s *Store) ListPlans(ctx context.Context, tenantID, employeeID, supervisorID string) ([]Plan, error) {
	query := "SELECT " + planColumns + " FROM pips p WHERE p.tenant_id = $1"
	args := []any{tenantID}
	if employeeID != "" {
		args = append(args, employeeID)
		query += fmt.Sprintf(" AND p.employee_id = $%d", len(args))
	} else if supervisorID != "" {
		args = append(args, supervisorID)
		query += fmt.Sprintf(" AND p.supervisor_id = $%d", len(args))
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.SupervisorID, &p.CreatedBy, &p.Title, &p.Severity, &p.PerformanceIssues,
			&p.ExpectedOutcomes, &p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt, &p.MilestonesTotal, &p.MilestonesCompleted); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (s *Store) GetPlan(ctx context.Context, tenantID, planID string) (Plan, error) {
	var p Plan
	err := s.DB.QueryRow(ctx, "SELECT "+planColumns+" FROM pips p WHERE p.tenant_id = $1 AND p.id = $2", tenantID, planID).
		Scan(&p.ID, &p.EmployeeID, &p.SupervisorID, &p.CreatedBy, &p.Title, &p.Severity, &p.PerformanceIssues,
			&p.ExpectedOutcomes, &p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt, &p.MilestonesTotal, &p.MilestonesCompleted)
	return p, err
}

// CreatePlan inserts the plan and its initial milestones in one transaction.
func (s *Store) CreatePlan(ctx context.Context, tenantID string, details PlanDetails, milestones []MilestoneInput) (string, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var planID string
	if err := tx.QueryRow(ctx, `
    INSERT INTO pips (tenant_id, employee_id, supervisor_id, created_by, title, severity, performance_issues,
                      expected_outcomes, start_date, end_date, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    RETURNING id
  `, tenantID, details.EmployeeID, details.SupervisorID, details.CreatedBy, details.Title, details.Severity,
		details.PerformanceIssues, details.ExpectedOutcomes, details.StartDate, details.EndDate, details.Status).Scan(&planID); err != nil {
		return "", err
	}

	for _, m := range milestones {
		if _, err := tx.Exec(ctx, `
      INSERT INTO pip_milestones (pip_id, title, description, due_date, status, sort_order)
      VALUES ($1,$2,$3,$4,'pending',$5)
    `, planID, m.Title, m.Description, m.DueDate, m.SortOrder); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return planID, nil
}

func (s *Store) UpdatePlanStatus(ctx context.Context, tenantID, planID, status string) error {
	_, err := s.DB.Exec(ctx, "UPDATE pips SET status = $1, updated_at = now() WHERE tenant_id = $2 AND id = $3", status, tenantID, planID)
	return err
}

func (s *Store) ListMilestones(ctx context.Context, planID string) ([]Milestone, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, pip_id, title, description, due_date, status, completion_date, notes, sort_order
    FROM pip_milestones
    WHERE pip_id = $1
    ORDER BY sort_order, id
  `, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var milestones []Milestone
	for rows.Next() {
		var m Milestone
		if err := rows.Scan(&m.ID, &m.PlanID, &m.Title, &m.Description, &m.DueDate, &m.Status, &m.CompletionDate, &m.Notes, &m.SortOrder); err != nil {
			return nil, err
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

// UpdateMilestoneStatus sets the status and notes. Reaching completed stamps
// the completion date with the current date; moving away from completed
// leaves the stamp in place.
func (s *Store) UpdateMilestoneStatus(ctx context.Context, milestoneID, status, notes string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE pip_milestones
    SET status = $1,
        notes = $2,
        completion_date = CASE WHEN $1 = 'completed' THEN CURRENT_DATE ELSE completion_date END
    WHERE id = $3
  `, status, notes, milestoneID)
	return err
}

// MilestonePlanID resolves a milestone to its plan, scoped to the tenant so
// a milestone ID from another tenant reads as not found.
func (s *Store) MilestonePlanID(ctx context.Context, tenantID, milestoneID string) (string, error) {
	var planID string
	err := s.DB.QueryRow(ctx, `
    SELECT m.pip_id
    FROM pip_milestones m
    JOIN pips p ON p.id = m.pip_id
    WHERE m.id = $1 AND p.tenant_id = $2
  `, milestoneID, tenantID).Scan(&planID)
	return planID, err
}

func (s *Store) CreateNote(ctx context.Context, planID, note, noteType, authorID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO pip_notes (pip_id, note, note_type, author_id)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, planID, note, noteType, nullIfEmpty(authorID)).Scan(&id)
	return id, err
}

func (s *Store) ListNotes(ctx context.Context, planID string) ([]ProgressNote, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, pip_id, note, note_type, COALESCE(author_id::text, ''), created_at
    FROM pip_notes
    WHERE pip_id = $1
    ORDER BY created_at DESC
  `, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []ProgressNote
	for rows.Next() {
		var n ProgressNote
		if err := rows.Scan(&n.ID, &n.PlanID, &n.Note, &n.NoteType, &n.AuthorID, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
