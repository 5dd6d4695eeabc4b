package cycle

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const cycleColumns = `id, name, cycle_type, year, period_label, start_date, end_date, review_deadline, status,
    include_self, include_manager, include_peer, include_360, created_at`

func (s *Store) ListCycles(ctx context.Context, tenantID, status string) ([]Cycle, error) {
	query := "SELECT " + cycleColumns + " FROM review_cycles WHERE tenant_id = $1"
	args := []any{tenantID}
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
	}
	query += " ORDER BY start_date DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []Cycle
	for rows.Next() {
		var c Cycle
		if err := rows.Scan(&c.ID, &c.Name, &c.CycleType, &c.Year, &c.PeriodLabel, &c.StartDate, &c.EndDate, &c.ReviewDeadline, &c.Status,
			&c.IncludeSelf, &c.IncludeManager, &c.IncludePeer, &c.Include360, &c.CreatedAt); err != nil {
			return nil, err
		}
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}

func (s *Store) GetCycle(ctx context.Context, tenantID, cycleID string) (Cycle, error) {
	var c Cycle
	err := s.DB.QueryRow(ctx, "SELECT "+cycleColumns+" FROM review_cycles WHERE tenant_id = $1 AND id = $2", tenantID, cycleID).
		Scan(&c.ID, &c.Name, &c.CycleType, &c.Year, &c.PeriodLabel, &c.StartDate, &c.EndDate, &c.ReviewDeadline, &c.Status,
			&c.IncludeSelf, &c.IncludeManager, &c.IncludePeer, &c.Include360, &c.CreatedAt)
	return c, err
}

func (s *Store) CreateCycle(ctx context.Context, tenantID string, details Details) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO review_cycles (tenant_id, name, cycle_type, year, period_label, start_date, end_date, review_deadline, status,
                               include_self, include_manager, include_peer, include_360)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
    RETURNING id
  `, tenantID, details.Name, details.CycleType, details.Year, details.PeriodLabel, details.StartDate, details.EndDate,
		details.ReviewDeadline, details.Status, details.IncludeSelf, details.IncludeManager, details.IncludePeer, details.Include360).Scan(&id)
	return id, err
}

func (s *Store) UpdateCycle(ctx context.Context, tenantID, cycleID string, details Details) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE review_cycles
    SET name = $1, cycle_type = $2, year = $3, period_label = $4, start_date = $5, end_date = $6, review_deadline = $7,
        status = $8, include_self = $9, include_manager = $10, include_peer = $11, include_360 = $12, updated_at = now()
    WHERE tenant_id = $13 AND id = $14
  `, details.Name, details.CycleType, details.Year, details.PeriodLabel, details.StartDate, details.EndDate,
		details.ReviewDeadline, details.Status, details.IncludeSelf, details.IncludeManager, details.IncludePeer, details.Include360,
		tenantID, cycleID)
	return err
}

func (s *Store) UpdateCycleStatus(ctx context.Context, tenantID, cycleID, status string) error {
	_, err := s.DB.Exec(ctx, "UPDATE review_cycles SET status = $1, updated_at = now() WHERE tenant_id = $2 AND id = $3", status, tenantID, cycleID)
	return err
}

// DeleteCycle removes the cycle; assignments and their ratings go with it
// via ON DELETE CASCADE.
func (s *Store) DeleteCycle(ctx context.Context, tenantID, cycleID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM review_cycles WHERE tenant_id = $1 AND id = $2", tenantID, cycleID)
	return err
}

func (s *Store) ListActiveEmployees(ctx context.Context, tenantID string, employeeIDs []string) ([]EmployeeRef, error) {
	query := `
    SELECT id, COALESCE(manager_id::text, ''), COALESCE(user_id::text, '')
    FROM employees
    WHERE tenant_id = $1 AND status = 'active'
  `
	args := []any{tenantID}
	if len(employeeIDs) > 0 {
		query += " AND id = ANY($2)"
		args = append(args, employeeIDs)
	}
	query += " ORDER BY id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []EmployeeRef
	for rows.Next() {
		var emp EmployeeRef
		if err := rows.Scan(&emp.EmployeeID, &emp.ManagerID, &emp.UserID); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// InsertAssignment is the idempotent fan-out primitive. The unique index on
// (cycle_id, employee_id, reviewer_id, review_type) makes the insert a no-op
// for duplicates, so concurrent assign calls cannot race a duplicate into
// existence. Returns whether a row was actually created.
func (s *Store) InsertAssignment(ctx context.Context, tenantID, cycleID string, spec AssignmentSpec) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    INSERT INTO review_assignments (tenant_id, cycle_id, employee_id, reviewer_id, review_type, due_date, status)
    VALUES ($1,$2,$3,$4,$5,$6,'not_started')
    ON CONFLICT (cycle_id, employee_id, reviewer_id, review_type) DO NOTHING
  `, tenantID, cycleID, spec.EmployeeID, spec.ReviewerID, spec.ReviewType, spec.DueDate)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
