package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/search"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
)

type EmployeeSearcher interface {
	Search(ctx context.Context, term string, limit int) ([]employee.Employee, error)
}

type LeaveSearcher interface {
	Search(ctx context.Context, userID string, term string, limit int) ([]leave.LeaveRequest, error)
}

type NotificationSearcher interface {
	Search(ctx context.Context, userID string, term string, limit int) ([]notification.Notification, error)
}

type service struct {
	employees     EmployeeSearcher
	leaves        LeaveSearcher
	notifications NotificationSearcher
	recent        search.RecentStore
}

func NewSearchService(employees EmployeeSearcher, leaves LeaveSearcher, notifications NotificationSearcher, recent search.RecentStore) search.Service {
	if recent == nil {
		recent = NewMemoryStore()
	}
	return &service{
		employees:     employees,
		leaves:        leaves,
		notifications: notifications,
		recent:        recent,
	}
}

func (s *service) Search(ctx context.Context, requester search.Requester, query string) (search.Response, error) {
	// Stored text keeps its accents, so the database sees the query as typed.
	// Normalize only feeds ranking and suggestions.
	term := strings.TrimSpace(query)
	if validator.IsEmpty(term) {
		return search.Response{}, search.ErrEmptyQuery
	}

	results := []search.Result{}

	if requester.IsAdmin {
		employees, err := s.employees.Search(ctx, term, search.MaxPerType)
		if err != nil {
			return search.Response{}, fmt.Errorf("search employees: %w", err)
		}
		for _, e := range employees {
			results = append(results, search.Result{
				ID:       e.ID,
				Title:    e.FullName,
				Subtitle: e.Position + " - " + e.Department,
				Type:     search.TypeEmployee,
				URL:      "/employees?id=" + e.ID,
			})
		}
	}

	leaves, err := s.leaves.Search(ctx, requester.UserID, term, search.MaxPerType)
	if err != nil {
		return search.Response{}, fmt.Errorf("search leave requests: %w", err)
	}
	for _, l := range leaves {
		start := l.StartDate
		results = append(results, search.Result{
			ID:       l.ID,
			Title:    l.LeaveType + " Leave",
			Subtitle: fmt.Sprintf("%s to %s - %s", l.StartDate.Format("2006-01-02"), l.EndDate.Format("2006-01-02"), l.Status),
			Type:     search.TypeLeave,
			URL:      "/leave-management?id=" + l.ID,
			Date:     &start,
		})
	}

	notifications, err := s.notifications.Search(ctx, requester.UserID, term, search.MaxPerType)
	if err != nil {
		return search.Response{}, fmt.Errorf("search notifications: %w", err)
	}
	for _, n := range notifications {
		created := n.CreatedAt
		results = append(results, search.Result{
			ID:       n.ID,
			Title:    n.Title,
			Subtitle: search.Truncate(n.Message),
			Type:     search.TypeNotification,
			URL:      "/notifications",
			Date:     &created,
		})
	}

	resp := search.Response{Query: query, Results: search.Rank(results, term)}
	if len(resp.Results) == 0 {
		recent, err := s.recent.List(ctx, requester.UserID)
		if err != nil {
			slog.Warn("Failed to load recent searches for suggestion", "user_id", requester.UserID, "error", err)
		} else if suggestion := search.Suggest(term, recent); suggestion != "" {
			resp.Suggestion = &suggestion
		}
	}
	return resp, nil
}

func (s *service) RecentSearches(ctx context.Context, userID string) ([]string, error) {
	return s.recent.List(ctx, userID)
}

func (s *service) SaveSearch(ctx context.Context, userID string, query string) ([]string, error) {
	return s.recent.Add(ctx, userID, query)
}

func (s *service) ClearRecentSearches(ctx context.Context, userID string) error {
	return s.recent.Clear(ctx, userID)
}
