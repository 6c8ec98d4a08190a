package employee

import "errors"

var (
	ErrEmployeeNotFound         = errors.New("employee not found")
	ErrEmailExists              = errors.New("email already registered")
	ErrUserAlreadyLinked        = errors.New("user is already linked to another employee")
	ErrEmergencyContactNotFound = errors.New("emergency contact not found")
	ErrNoChanges                = errors.New("no fields to update")
)
