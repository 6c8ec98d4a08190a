package notification

import "errors"

// Notification domain errors
var (
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrInvalidNotificationType = errors.New("Invalid notification type")
	ErrQueueFull               = errors.New("notification queue is full")
)
