package employee

import (
	"context"
	"time"
)

type EmployeeRepository interface {
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	Search(ctx context.Context, term string, limit int) ([]Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	LinkUser(ctx context.Context, id string, userID string) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

type EmergencyContactRepository interface {
	GetByEmployeeID(ctx context.Context, employeeID string) (EmergencyContact, error)
	Upsert(ctx context.Context, contact EmergencyContact) (EmergencyContact, error)
}

type EmploymentHistoryRepository interface {
	ListByEmployeeID(ctx context.Context, employeeID string) ([]EmploymentHistory, error)
	Create(ctx context.Context, history EmploymentHistory) (EmploymentHistory, error)
	CloseCurrent(ctx context.Context, employeeID string, endDate time.Time) error
}
