package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/sse"
)

const listLimit = 50

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo   notification.Repository
	hub    *sse.Hub
	cache  *cache.Cache
	config Config

	queue    chan notification.CreateNotificationRequest
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(repo notification.Repository, hub *sse.Hub, c *cache.Cache, cfg Config) notification.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:   repo,
		hub:    hub,
		cache:  c,
		config: cfg,
		queue:  make(chan notification.CreateNotificationRequest, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started",
		"workers", cfg.WorkerCount, "batch_size", cfg.BatchSize, "flush_interval", cfg.FlushInterval)

	return s
}

// worker drains the queue, inserting a batch when it is full or on every tick.
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.CreateNotificationRequest, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.CreateMany(ctx, batch); err != nil {
			slog.Error("Notification worker failed to insert batch", "worker", id, "count", len(batch), "error", err)
		} else {
			slog.Debug("Notification worker inserted batch", "worker", id, "count", len(batch))
		}
		batch = batch[:0]
	}

	for {
		select {
		case req := <-s.queue:
			batch = append(batch, req)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			for {
				select {
				case req := <-s.queue:
					batch = append(batch, req)
				default:
					flush()
					return
				}
			}
		}
	}
}

func toEntity(req notification.CreateNotificationRequest) *notification.Notification {
	return &notification.Notification{
		UserID:   req.UserID,
		Title:    req.Title,
		Message:  req.Message,
		Type:     req.Type,
		DedupKey: req.DedupKey,
	}
}

func (s *service) publish(n notification.Notification) {
	s.hub.Publish(sse.NotificationTopic(n.UserID), sse.Event{
		Name: sse.EventNotification,
		Data: n,
	})
}

// QueueNotification queues a notification for async processing
func (s *service) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	select {
	case s.queue <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		// Queue full, insert directly
		_, err := s.Create(ctx, req)
		return err
	}
}

// QueueBulkNotification queues multiple notifications for async processing
func (s *service) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	for _, req := range reqs {
		if err := s.QueueNotification(ctx, req); err != nil {
			slog.Warn("Failed to queue notification", "user_id", req.UserID, "error", err)
		}
	}
	return nil
}

// Create inserts one notification and pushes it to the user's subscribers.
func (s *service) Create(ctx context.Context, req notification.CreateNotificationRequest) (notification.Notification, error) {
	n := toEntity(req)
	if err := s.repo.Create(ctx, n); err != nil {
		return notification.Notification{}, err
	}

	s.cache.InvalidateOrLog(ctx, cache.User(cache.Notifications, n.UserID))
	s.publish(*n)
	return *n, nil
}

// CreateMany implements notification.Service.
func (s *service) CreateMany(ctx context.Context, reqs []notification.CreateNotificationRequest) ([]notification.Notification, error) {
	if len(reqs) == 0 {
		return []notification.Notification{}, nil
	}

	entities := make([]*notification.Notification, len(reqs))
	for i, req := range reqs {
		entities[i] = toEntity(req)
	}
	inserted, err := s.repo.CreateBatch(ctx, entities)
	if err != nil {
		return nil, err
	}

	created := make([]notification.Notification, len(inserted))
	keys := make([]cache.Key, 0, len(inserted))
	for i, n := range inserted {
		created[i] = *n
		keys = append(keys, cache.User(cache.Notifications, n.UserID))
		s.publish(*n)
	}
	s.cache.InvalidateOrLog(ctx, keys...)
	return created, nil
}

// GetNotifications returns the user's most recent notifications, newest first.
func (s *service) GetNotifications(ctx context.Context, userID string, unreadOnly bool) ([]notification.Notification, error) {
	if unreadOnly {
		return s.repo.ListByUserID(ctx, userID, true, listLimit)
	}
	return cache.Fetch(ctx, s.cache, cache.User(cache.Notifications, userID), func(ctx context.Context) ([]notification.Notification, error) {
		return s.repo.ListByUserID(ctx, userID, false, listLimit)
	})
}

// GetUnreadCount returns the count of unread notifications
func (s *service) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead marks specified notifications as read
func (s *service) MarkAsRead(ctx context.Context, userID string, req notification.MarkAsReadRequest) error {
	if err := s.repo.MarkAsRead(ctx, req.NotificationIDs, userID); err != nil {
		return err
	}
	s.cache.InvalidateOrLog(ctx, cache.User(cache.Notifications, userID))
	return nil
}

// MarkAllAsRead marks all notifications as read for a user
func (s *service) MarkAllAsRead(ctx context.Context, userID string) error {
	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return err
	}
	s.cache.InvalidateOrLog(ctx, cache.User(cache.Notifications, userID))
	return nil
}

// Delete removes a notification
func (s *service) Delete(ctx context.Context, userID string, notificationID string) error {
	if err := s.repo.Delete(ctx, notificationID, userID); err != nil {
		return err
	}
	s.cache.InvalidateOrLog(ctx, cache.User(cache.Notifications, userID))
	return nil
}

// Subscribe creates an SSE subscription for a user
func (s *service) Subscribe(ctx context.Context, userID string) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(sse.NotificationTopic(userID))

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				if n, ok := event.Data.(notification.Notification); ok {
					select {
					case out <- notification.SSEEvent{Event: event.Name, Data: n}:
					case <-ctx.Done():
						return
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop flushes queued notifications and stops the workers.
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("Notification service stopped")
	})
}
