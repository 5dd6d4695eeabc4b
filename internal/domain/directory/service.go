package directory

import "context"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) ListEmployees(ctx context.Context, tenantID, status string) ([]Employee, error) {
	return s.Store.ListEmployees(ctx, tenantID, status)
}

func (s *Service) GetEmployee(ctx context.Context, tenantID, employeeID string) (Employee, error) {
	return s.Store.GetEmployee(ctx, tenantID, employeeID)
}

func (s *Service) CreateEmployee(ctx context.Context, tenantID string, emp Employee) (string, error) {
	if emp.Status == "" {
		emp.Status = EmployeeStatusActive
	}
	return s.Store.CreateEmployee(ctx, tenantID, emp)
}

func (s *Service) UpdateEmployee(ctx context.Context, tenantID, employeeID string, emp Employee) error {
	return s.Store.UpdateEmployee(ctx, tenantID, employeeID, emp)
}

func (s *Service) EmployeeIDByUserID(ctx context.Context, tenantID, userID string) (string, error) {
	return s.Store.EmployeeIDByUserID(ctx, tenantID, userID)
}

func (s *Service) UserIDByEmployeeID(ctx context.Context, tenantID, employeeID string) (string, error) {
	return s.Store.UserIDByEmployeeID(ctx, tenantID, employeeID)
}

