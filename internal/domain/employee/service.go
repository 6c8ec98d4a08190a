package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	Get(ctx context.Context, id string) (EmployeeDetail, error)
	GetByUserID(ctx context.Context, userID string) (EmployeeDetail, error)

	// Create writes the employee, its emergency contact and the first
	// employment history entry in one transaction.
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeDetail, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (Employee, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int64, error)
	BulkUpdate(ctx context.Context, req BulkUpdateRequest) (int, error)

	UpsertEmergencyContact(ctx context.Context, employeeID string, req EmergencyContactRequest) (EmergencyContact, error)
}
