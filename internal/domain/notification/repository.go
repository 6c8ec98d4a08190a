package notification

import (
	"context"
)

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	// CreateBatch inserts the rows and returns those actually written. Rows
	// whose DedupKey already exists are skipped.
	CreateBatch(ctx context.Context, notifications []*Notification) ([]*Notification, error)
	// ListByUserID returns the user's notifications newest first.
	ListByUserID(ctx context.Context, userID string, unreadOnly bool, limit int) ([]Notification, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, ids []string, userID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string, userID string) error
	Search(ctx context.Context, userID string, term string, limit int) ([]Notification, error)
}
