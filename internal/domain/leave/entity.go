package leave

import (
	"time"
)

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// LeaveType entity
type LeaveType struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	DaysAllowed int       `json:"days_allowed"`
	Color       *string   `json:"color,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LeaveRequest entity
type LeaveRequest struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	EmployeeID    *string       `json:"employee_id,omitempty"`
	EmployeeName  *string       `json:"employee_name,omitempty"`
	LeaveType     string        `json:"leave_type"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       time.Time     `json:"end_date"`
	DaysRequested int           `json:"days_requested"`
	Reason        *string       `json:"reason,omitempty"`
	Status        RequestStatus `json:"status"`
	AppliedDate   time.Time     `json:"applied_date"`
	ReviewedBy    *string       `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time    `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// LeaveBalance entity. RemainingDays is kept equal to TotalDays - UsedDays
// by the service on every write.
type LeaveBalance struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	EmployeeID    *string   `json:"employee_id,omitempty"`
	LeaveType     string    `json:"leave_type"`
	Year          int       `json:"year"`
	TotalDays     int       `json:"total_days"`
	UsedDays      int       `json:"used_days"`
	RemainingDays int       `json:"remaining_days"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Holiday entity
type Holiday struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
