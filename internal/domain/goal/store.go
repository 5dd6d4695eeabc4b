package goal

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

const goalColumns = `id, employee_id, COALESCE(manager_id::text, ''), title, description, category, goal_type, priority, target_value, unit,
    weight, start_date, due_date, status, current_value, progress, created_at`

func (s *Store) ListGoals(ctx context.Context, tenantID, employeeID, managerID string) ([]Goal, error) {
	query := "SELECT " + goalColumns + " FROM goals WHERE tenant_id = $1"
	args := []any{tenantID}
	if employeeID != "" {
		args = append(args, employeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	} else if managerID != "" {
		args = append(args, managerID)
		query += fmt.Sprintf(" AND (manager_id = $%d OR employee_id = $%d)", len(args), len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.EmployeeID, &g.ManagerID, &g.Title, &g.Description, &g.Category, &g.GoalType, &g.Priority,
			&g.TargetValue, &g.Unit, &g.Weight, &g.StartDate, &g.DueDate, &g.Status, &g.CurrentValue, &g.Progress, &g.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *Store) GetGoal(ctx context.Context, tenantID, goalID string) (Goal, error) {
	var g Goal
	err := s.DB.QueryRow(ctx, "SELECT "+goalColumns+" FROM goals WHERE tenant_id = $1 AND id = $2", tenantID, goalID).
		Scan(&g.ID, &g.EmployeeID, &g.ManagerID, &g.Title, &g.Description, &g.Category, &g.GoalType, &g.Priority,
			&g.TargetValue, &g.Unit, &g.Weight, &g.StartDate, &g.DueDate, &g.Status, &g.CurrentValue, &g.Progress, &g.CreatedAt)
	return g, err
}

func (s *Store) CreateGoal(ctx context.Context, tenantID string, details Details) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO goals (tenant_id, employee_id, manager_id, title, description, category, goal_type, priority,
                       target_value, unit, weight, start_date, due_date, status, current_value, progress)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
    RETURNING id
  `, tenantID, details.EmployeeID, nullIfEmpty(details.ManagerID), details.Title, details.Description, details.Category,
		details.GoalType, details.Priority, details.TargetValue, details.Unit, details.Weight,
		details.StartDate, details.DueDate, details.Status, details.CurrentValue, details.Progress).Scan(&id)
	return id, err
}

func (s *Store) UpdateGoal(ctx context.Context, tenantID, goalID string, details Details) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE goals
    SET title = $1, description = $2, category = $3, goal_type = $4, priority = $5, target_value = $6, unit = $7,
        weight = $8, start_date = $9, due_date = $10, status = $11, current_value = $12, progress = $13, updated_at = now()
    WHERE tenant_id = $14 AND id = $15
  `, details.Title, details.Description, details.Category, details.GoalType, details.Priority, details.TargetValue,
		details.Unit, details.Weight, details.StartDate, details.DueDate, details.Status, details.CurrentValue,
		details.Progress, tenantID, goalID)
	return err
}

// UpdateProgress is the employee-side path: progress fields only, the goal
// definition stays untouched.
func (s *Store) UpdateProgress(ctx context.Context, tenantID, goalID string, currentValue, progress float64, status string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE goals
    SET current_value = $1, progress = $2, status = COALESCE(NULLIF($3,''), status), updated_at = now()
    WHERE tenant_id = $4 AND id = $5
  `, currentValue, progress, status, tenantID, goalID)
	return err
}

func (s *Store) DeleteGoal(ctx context.Context, tenantID, goalID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM goals WHERE tenant_id = $1 AND id = $2", tenantID, goalID)
	return err
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
