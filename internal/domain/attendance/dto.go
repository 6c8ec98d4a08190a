package attendance

import (
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
)

// Actor identifies who is clocking in or out.
type Actor struct {
	UserID     string
	EmployeeID *string
}

type ClockInRequest struct {
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

func (r *ClockInRequest) Validate() error {
	return validator.StructErrors(r).Err()
}

type ClockOutResponse struct {
	Attendance Attendance `json:"attendance"`
	Hours      float64    `json:"hours"`
}

type UpdateAttendanceRequest struct {
	CheckIn  *string `json:"check_in,omitempty"`
	CheckOut *string `json:"check_out,omitempty"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=present late absent half_day"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=1000"`

	checkIn  *time.Time
	checkOut *time.Time
}

func (r *UpdateAttendanceRequest) Validate() error {
	errs := validator.StructErrors(r)
	if r.CheckIn != nil {
		t, ok := validator.IsValidDateTime(*r.CheckIn)
		if !ok {
			errs.Add("check_in", "check_in must be an ISO8601 timestamp")
		} else {
			r.checkIn = &t
		}
	}
	if r.CheckOut != nil {
		t, ok := validator.IsValidDateTime(*r.CheckOut)
		if !ok {
			errs.Add("check_out", "check_out must be an ISO8601 timestamp")
		} else {
			r.checkOut = &t
		}
	}
	if r.checkIn != nil && r.checkOut != nil && !r.checkOut.After(*r.checkIn) {
		errs.Add("check_out", ErrCheckOutBeforeIn.Error())
	}
	return errs.Err()
}

// Times returns the parsed timestamps. Validate must run first.
func (r *UpdateAttendanceRequest) Times() (checkIn, checkOut *time.Time) {
	return r.checkIn, r.checkOut
}

type ListFilter struct {
	UserID *string
	Limit  int
}
