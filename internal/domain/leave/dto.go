package leave

import (
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
)

// Requester identifies who is submitting a leave request.
type Requester struct {
	UserID     string
	EmployeeID *string
}

type CreateLeaveTypeRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description,omitempty"`
	DaysAllowed int     `json:"days_allowed" validate:"gte=0,lte=366"`
	Color       *string `json:"color,omitempty" validate:"omitempty,max=32"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	return validator.StructErrors(r).Err()
}

type UpdateLeaveTypeRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	DaysAllowed *int    `json:"days_allowed,omitempty" validate:"omitempty,gte=0,lte=366"`
	Color       *string `json:"color,omitempty" validate:"omitempty,max=32"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	return validator.StructErrors(r).Err()
}

type CreateLeaveRequestRequest struct {
	LeaveType string  `json:"leave_type" validate:"required,max=100"`
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason    *string `json:"reason,omitempty" validate:"omitempty,max=2000"`

	start time.Time
	end   time.Time
}

func (r *CreateLeaveRequestRequest) Validate() error {
	errs := validator.StructErrors(r)
	if len(errs) > 0 {
		return errs
	}

	r.start, _ = validator.IsValidDate(r.StartDate)
	r.end, _ = validator.IsValidDate(r.EndDate)
	if r.end.Before(r.start) {
		errs.Add("end_date", ErrEndBeforeStart.Error())
	}
	return errs.Err()
}

// Dates returns the parsed start and end dates. Validate must run first.
func (r *CreateLeaveRequestRequest) Dates() (time.Time, time.Time) {
	return r.start, r.end
}

type UpdateLeaveStatusRequest struct {
	Status RequestStatus `json:"status" validate:"required,oneof=approved rejected"`
}

func (r *UpdateLeaveStatusRequest) Validate() error {
	return validator.StructErrors(r).Err()
}

type CreateLeaveBalanceRequest struct {
	UserID     string  `json:"user_id" validate:"required,uuid"`
	EmployeeID *string `json:"employee_id,omitempty" validate:"omitempty,uuid"`
	LeaveType  string  `json:"leave_type" validate:"required,max=100"`
	Year       int     `json:"year" validate:"omitempty,gte=2000,lte=2100"`
	TotalDays  int     `json:"total_days" validate:"gte=0"`
	UsedDays   int     `json:"used_days" validate:"gte=0"`
}

func (r *CreateLeaveBalanceRequest) Validate() error {
	errs := validator.StructErrors(r)
	if r.UsedDays > r.TotalDays {
		errs.Add("used_days", ErrUsedExceedsTotal.Error())
	}
	return errs.Err()
}

type UpdateLeaveBalanceRequest struct {
	TotalDays *int `json:"total_days,omitempty" validate:"omitempty,gte=0"`
	UsedDays  *int `json:"used_days,omitempty" validate:"omitempty,gte=0"`
}

func (r *UpdateLeaveBalanceRequest) Validate() error {
	errs := validator.StructErrors(r)
	if r.TotalDays == nil && r.UsedDays == nil {
		errs.Add("total_days", "total_days or used_days is required")
	}
	return errs.Err()
}

type CreateHolidayRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Type        string  `json:"type" validate:"omitempty,max=50"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateHolidayRequest) Validate() error {
	return validator.StructErrors(r).Err()
}

type UpdateHolidayRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Date        *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Type        *string `json:"type,omitempty" validate:"omitempty,max=50"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateHolidayRequest) Validate() error {
	return validator.StructErrors(r).Err()
}

type RequestFilter struct {
	UserID *string
	Status RequestStatus
}
