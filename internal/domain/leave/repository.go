package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	ListActive(ctx context.Context) ([]LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	Update(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	Delete(ctx context.Context, id string) error
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	List(ctx context.Context, filter RequestFilter) ([]LeaveRequest, error)
	Search(ctx context.Context, userID string, term string, limit int) ([]LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	UpdateStatus(ctx context.Context, id string, status RequestStatus, reviewedBy string, reviewedAt time.Time) (LeaveRequest, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	List(ctx context.Context, year int, userID *string) ([]LeaveBalance, error)
	GetByID(ctx context.Context, id string) (LeaveBalance, error)
	Create(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	Update(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
}

// HolidayRepository - interface for holidays table
type HolidayRepository interface {
	List(ctx context.Context) ([]Holiday, error)
	GetByID(ctx context.Context, id string) (Holiday, error)
	Create(ctx context.Context, holiday Holiday) (Holiday, error)
	Update(ctx context.Context, holiday Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
}
