package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListActiveIDsByRole(ctx context.Context, role Role) ([]string, error)
}
