package employee

import (
	"strings"

	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmergencyContactRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	Phone        string `json:"phone" validate:"required"`
	Relationship string `json:"relationship" validate:"required,max=100"`
}

func (r *EmergencyContactRequest) Validate() error {
	errs := validator.StructErrors(r)
	if r.Phone != "" && !validator.IsValidPhoneNumber(r.Phone) {
		errs.Add("phone", "phone must be a valid phone number")
	}
	return errs.Err()
}

type CreateEmployeeRequest struct {
	UserID            *string                  `json:"user_id,omitempty" validate:"omitempty,uuid"`
	FullName          string                   `json:"full_name" validate:"required,max=255"`
	Email             string                   `json:"email" validate:"required,email,max=254"`
	Department        string                   `json:"department" validate:"required,max=100"`
	Position          string                   `json:"position" validate:"required,max=100"`
	Status            Status                   `json:"status" validate:"omitempty,oneof=Active Probation Terminated"`
	JoinDate          string                   `json:"join_date" validate:"omitempty,datetime=2006-01-02"`
	BaseSalary        decimal.Decimal          `json:"base_salary"`
	Phone             *string                  `json:"phone,omitempty"`
	Address           *string                  `json:"address,omitempty"`
	DateOfBirth       *string                  `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Manager           *string                  `json:"manager,omitempty"`
	ProfilePictureURL *string                  `json:"profile_picture_url,omitempty" validate:"omitempty,url"`
	EmergencyContact  *EmergencyContactRequest `json:"emergency_contact,omitempty" validate:"-"`
}

func (r *CreateEmployeeRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	errs := validator.StructErrors(r)

	if r.BaseSalary.IsNegative() {
		errs.Add("base_salary", "base_salary must not be negative")
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs.Add("phone", "phone must be a valid phone number")
	}
	if r.EmergencyContact != nil {
		if err := r.EmergencyContact.Validate(); err != nil {
			for _, fe := range err.(validator.ValidationErrors) {
				errs.Add("emergency_contact."+fe.Field, fe.Message)
			}
		}
	}

	return errs.Err()
}

type UpdateEmployeeRequest struct {
	FullName          *string          `json:"full_name,omitempty" validate:"omitempty,min=1,max=255"`
	Email             *string          `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Department        *string          `json:"department,omitempty" validate:"omitempty,min=1,max=100"`
	Position          *string          `json:"position,omitempty" validate:"omitempty,min=1,max=100"`
	Status            *Status          `json:"status,omitempty" validate:"omitempty,oneof=Active Probation Terminated"`
	JoinDate          *string          `json:"join_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	BaseSalary        *decimal.Decimal `json:"base_salary,omitempty"`
	Phone             *string          `json:"phone,omitempty"`
	Address           *string          `json:"address,omitempty"`
	DateOfBirth       *string          `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Manager           *string          `json:"manager,omitempty"`
	ProfilePictureURL *string          `json:"profile_picture_url,omitempty" validate:"omitempty,url"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	if r.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &normalized
	}
	errs := validator.StructErrors(r)

	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs.Add("base_salary", "base_salary must not be negative")
	}
	if r.Phone != nil && *r.Phone != "" && !validator.IsValidPhoneNumber(*r.Phone) {
		errs.Add("phone", "phone must be a valid phone number")
	}

	return errs.Err()
}

// IsEmpty reports whether the request changes nothing.
func (r *UpdateEmployeeRequest) IsEmpty() bool {
	return r.FullName == nil && r.Email == nil && r.Department == nil && r.Position == nil &&
		r.Status == nil && r.JoinDate == nil && r.BaseSalary == nil && r.Phone == nil &&
		r.Address == nil && r.DateOfBirth == nil && r.Manager == nil && r.ProfilePictureURL == nil
}

type BulkUpdateItem struct {
	ID      string                `json:"id" validate:"required,uuid"`
	Changes UpdateEmployeeRequest `json:"changes" validate:"-"`
}

type BulkUpdateRequest struct {
	Items []BulkUpdateItem `json:"items" validate:"required,min=1,dive"`
}

func (r *BulkUpdateRequest) Validate() error {
	errs := validator.StructErrors(r)
	for i := range r.Items {
		if err := r.Items[i].Changes.Validate(); err != nil {
			for _, fe := range err.(validator.ValidationErrors) {
				errs.Add("items["+validator.Itoa(i)+"]."+fe.Field, fe.Message)
			}
		}
	}
	return errs.Err()
}

type EmployeeFilter struct {
	Search     string
	Department string
	Status     string
}

// IsZero reports whether no filter was supplied.
func (f EmployeeFilter) IsZero() bool {
	return f.Search == "" && f.Department == "" && f.Status == ""
}
