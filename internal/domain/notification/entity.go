package notification

import (
	"time"
)

// NotificationType represents the severity of a notification
type NotificationType string

const (
	TypeInfo    NotificationType = "info"
	TypeWarning NotificationType = "warning"
	TypeSuccess NotificationType = "success"
	TypeError   NotificationType = "error"
)

// Notification represents a notification entity
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
	// DedupKey makes an insert a no-op when a row with the same key exists.
	DedupKey *string `json:"-"`
}

// GenerateType selects which attendance notifications to generate.
type GenerateType string

const (
	GenerateLateArrival   GenerateType = "late_arrival"
	GenerateAbsent        GenerateType = "absent"
	GenerateOvertimeAlert GenerateType = "overtime_alert"
)

// Valid reports whether t is a known generator type.
func (t GenerateType) Valid() bool {
	switch t {
	case GenerateLateArrival, GenerateAbsent, GenerateOvertimeAlert:
		return true
	}
	return false
}

const (
	// LateArrivalHour is the local hour after which a check-in is late.
	LateArrivalHour = 9
	// AbsenceReminderHour is the earliest local hour absence reminders are sent.
	AbsenceReminderHour = 10
	// OvertimeHours is the worked hours threshold for an overtime alert.
	OvertimeHours = 9.0
)
