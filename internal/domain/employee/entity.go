package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive     Status = "Active"
	StatusProbation  Status = "Probation"
	StatusTerminated Status = "Terminated"
)

type Employee struct {
	ID                string          `json:"id"`
	UserID            *string         `json:"user_id,omitempty"`
	FullName          string          `json:"full_name"`
	Email             string          `json:"email"`
	Department        string          `json:"department"`
	Position          string          `json:"position"`
	Status            Status          `json:"status"`
	JoinDate          time.Time       `json:"join_date"`
	BaseSalary        decimal.Decimal `json:"base_salary"`
	Phone             *string         `json:"phone,omitempty"`
	Address           *string         `json:"address,omitempty"`
	DateOfBirth       *time.Time      `json:"date_of_birth,omitempty"`
	Manager           *string         `json:"manager,omitempty"`
	ProfilePictureURL *string         `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// HasValidStructure reports whether the record carries the fields every
// consumer relies on.
func (e Employee) HasValidStructure() bool {
	return e.ID != "" && e.FullName != ""
}

type EmergencyContact struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Relationship string    `json:"relationship"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type EmploymentHistory struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	Title      string     `json:"title"`
	Department string     `json:"department"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	IsCurrent  bool       `json:"is_current"`
	Notes      *string    `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// EmployeeDetail is an employee with its emergency contact and history.
type EmployeeDetail struct {
	Employee
	EmergencyContact  *EmergencyContact   `json:"emergency_contact,omitempty"`
	EmploymentHistory []EmploymentHistory `json:"employment_history"`
}
