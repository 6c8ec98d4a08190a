package notification

import (
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
)

// ============= Request DTOs =============

// CreateNotificationRequest represents a request to create a notification
type CreateNotificationRequest struct {
	UserID  string           `json:"user_id" validate:"required,uuid"`
	Title   string           `json:"title" validate:"required,max=255"`
	Message string           `json:"message" validate:"required,max=2000"`
	Type    NotificationType `json:"type" validate:"omitempty,oneof=info warning success error"`
	// DedupKey is set by the attendance generator, never by clients.
	DedupKey *string `json:"-" validate:"-"`
}

func (r *CreateNotificationRequest) Validate() error {
	if r.Type == "" {
		r.Type = TypeInfo
	}
	return validator.StructErrors(r).Err()
}

// MarkAsReadRequest represents a request to mark notifications as read
type MarkAsReadRequest struct {
	NotificationIDs []string `json:"notification_ids" validate:"required,min=1,dive,uuid"`
}

func (r *MarkAsReadRequest) Validate() error {
	return validator.StructErrors(r).Err()
}

// GenerateRequest is the body of the attendance notification generator.
type GenerateRequest struct {
	Type       GenerateType `json:"type"`
	EmployeeID *string      `json:"employeeId,omitempty"`
	Date       *string      `json:"date,omitempty"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs.Add("employeeId", "employeeId must be a valid UUID")
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs.Add("date", "date must match the format 2006-01-02")
		}
	}
	return errs.Err()
}

// Day returns the requested date in loc, defaulting to today.
func (r *GenerateRequest) Day(now time.Time, loc *time.Location) time.Time {
	if r.Date != nil {
		if d, err := time.ParseInLocation("2006-01-02", *r.Date, loc); err == nil {
			return d
		}
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DedupKey identifies the notification of one generator type for one user
// on one day.
func DedupKey(t GenerateType, userID string, day time.Time) string {
	return string(t) + ":" + userID + ":" + day.Format("2006-01-02")
}

// ============= Response DTOs =============

// GenerateResult reports how many notifications one generator run created.
type GenerateResult struct {
	Success       bool   `json:"success"`
	LateArrivals  *int   `json:"lateArrivals,omitempty"`
	AbsentCount   *int   `json:"absentCount,omitempty"`
	OvertimeCount *int   `json:"overtimeCount,omitempty"`
	Message       string `json:"message"`
}

// UnreadCountResponse represents unread count response
type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

// SSETokenResponse represents the SSE token response
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// ============= SSE Event =============

// SSEEvent represents a Server-Sent Event
type SSEEvent struct {
	Event string       `json:"event"`
	Data  Notification `json:"data"`
}
