package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/ems-backend-go/internal/repository/postgresql"
)

// Notifier tells requesters about decisions on their leave requests.
type Notifier interface {
	QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error
}

type LeaveServiceImpl struct {
	withTx      postgresql.TxRunner
	typeRepo    leave.LeaveTypeRepository
	requestRepo leave.LeaveRequestRepository
	balanceRepo leave.LeaveBalanceRepository
	holidayRepo leave.HolidayRepository
	notifier    Notifier
	cache       *cache.Cache
	now         func() time.Time
}

func NewLeaveService(
	withTx postgresql.TxRunner,
	typeRepo leave.LeaveTypeRepository,
	requestRepo leave.LeaveRequestRepository,
	balanceRepo leave.LeaveBalanceRepository,
	holidayRepo leave.HolidayRepository,
	notifier Notifier,
	c *cache.Cache,
) leave.LeaveService {
	return &LeaveServiceImpl{
		withTx:      withTx,
		typeRepo:    typeRepo,
		requestRepo: requestRepo,
		balanceRepo: balanceRepo,
		holidayRepo: holidayRepo,
		notifier:    notifier,
		cache:       c,
		now:         time.Now,
	}
}

func (l *LeaveServiceImpl) today() time.Time {
	y, m, d := l.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ListTypes implements leave.LeaveService.
func (l *LeaveServiceImpl) ListTypes(ctx context.Context) ([]leave.LeaveType, error) {
	return cache.Fetch(ctx, l.cache, cache.All(cache.LeaveTypes), l.typeRepo.ListActive)
}

// CreateType implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	lt := leave.LeaveType{
		Name:        req.Name,
		Description: req.Description,
		DaysAllowed: req.DaysAllowed,
		Color:       req.Color,
		IsActive:    true,
	}
	if req.IsActive != nil {
		lt.IsActive = *req.IsActive
	}

	created, err := l.typeRepo.Create(ctx, lt)
	if err != nil {
		return leave.LeaveType{}, err
	}
	l.cache.InvalidateOrLog(ctx, cache.All(cache.LeaveTypes))
	return created, nil
}

// UpdateType implements leave.LeaveService.
func (l *LeaveServiceImpl) UpdateType(ctx context.Context, id string, req leave.UpdateLeaveTypeRequest) (leave.LeaveType, error) {
	lt, err := l.typeRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveType{}, err
	}

	if req.Name != nil {
		lt.Name = *req.Name
	}
	if req.Description != nil {
		lt.Description = req.Description
	}
	if req.DaysAllowed != nil {
		lt.DaysAllowed = *req.DaysAllowed
	}
	if req.Color != nil {
		lt.Color = req.Color
	}
	if req.IsActive != nil {
		lt.IsActive = *req.IsActive
	}

	updated, err := l.typeRepo.Update(ctx, lt)
	if err != nil {
		return leave.LeaveType{}, err
	}
	l.cache.InvalidateOrLog(ctx, cache.All(cache.LeaveTypes))
	return updated, nil
}

// DeleteType implements leave.LeaveService.
func (l *LeaveServiceImpl) DeleteType(ctx context.Context, id string) error {
	if err := l.typeRepo.Delete(ctx, id); err != nil {
		return err
	}
	l.cache.InvalidateOrLog(ctx, cache.All(cache.LeaveTypes))
	return nil
}

// ListRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListRequests(ctx context.Context, filter leave.RequestFilter) ([]leave.LeaveRequest, error) {
	if filter.UserID != nil || filter.Status != "" {
		return l.requestRepo.List(ctx, filter)
	}
	return cache.Fetch(ctx, l.cache, cache.All(cache.LeaveRequests), func(ctx context.Context) ([]leave.LeaveRequest, error) {
		return l.requestRepo.List(ctx, filter)
	})
}

// ListMyRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMyRequests(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	return cache.Fetch(ctx, l.cache, cache.User(cache.LeaveRequests, userID), func(ctx context.Context) ([]leave.LeaveRequest, error) {
		return l.requestRepo.List(ctx, leave.RequestFilter{UserID: &userID})
	})
}

// CreateRequest implements leave.LeaveService. The request is rejected
// before any write when it exceeds the remaining balance of its type.
func (l *LeaveServiceImpl) CreateRequest(ctx context.Context, requester leave.Requester, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	start, end := req.Dates()
	if start.Before(l.today()) {
		return leave.LeaveRequest{}, leave.ErrStartInPast
	}

	days, err := leave.CountDays(start, end)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	// Balances come from the store, bypassing the cache.
	balances, err := l.balanceRepo.List(ctx, l.now().Year(), &requester.UserID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to load leave balances: %w", err)
	}
	if err := leave.CheckBalance(leave.BalanceMap(balances), req.LeaveType, days); err != nil {
		return leave.LeaveRequest{}, err
	}

	created, err := l.requestRepo.Create(ctx, leave.LeaveRequest{
		UserID:        requester.UserID,
		EmployeeID:    requester.EmployeeID,
		LeaveType:     req.LeaveType,
		StartDate:     start,
		EndDate:       end,
		DaysRequested: days,
		Reason:        req.Reason,
		Status:        leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	l.cache.InvalidateOrLog(ctx, cache.All(cache.LeaveRequests), cache.User(cache.LeaveRequests, requester.UserID))
	slog.Info("Leave request submitted", "request_id", created.ID, "days", days)
	return created, nil
}

// UpdateRequestStatus implements leave.LeaveService. Balances are not
// touched; they are adjusted through UpdateBalance.
func (l *LeaveServiceImpl) UpdateRequestStatus(ctx context.Context, id string, reviewerID string, req leave.UpdateLeaveStatusRequest) (leave.LeaveRequest, error) {
	updated, err := l.requestRepo.UpdateStatus(ctx, id, req.Status, reviewerID, l.now())
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	l.cache.InvalidateOrLog(ctx, cache.All(cache.LeaveRequests), cache.User(cache.LeaveRequests, updated.UserID))
	l.notifyDecision(ctx, updated)
	return updated, nil
}

func (l *LeaveServiceImpl) notifyDecision(ctx context.Context, req leave.LeaveRequest) {
	if l.notifier == nil {
		return
	}

	n := notification.CreateNotificationRequest{
		UserID:  req.UserID,
		Title:   "Leave Request Approved",
		Message: fmt.Sprintf("Your %s request from %s to %s was approved.", req.LeaveType, req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02")),
		Type:    notification.TypeSuccess,
	}
	if req.Status == leave.StatusRejected {
		n.Title = "Leave Request Rejected"
		n.Message = fmt.Sprintf("Your %s request from %s to %s was rejected.", req.LeaveType, req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
		n.Type = notification.TypeWarning
	}
	if err := l.notifier.QueueNotification(ctx, n); err != nil {
		slog.Warn("Failed to queue leave decision notification", "request_id", req.ID, "error", err)
	}
}

// DeleteRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) DeleteRequest(ctx context.Context, id string) error {
	existing, err := l.requestRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := l.requestRepo.Delete(ctx, id); err != nil {
		return err
	}
	l.cache.InvalidateOrLog(ctx, cache.All(cache.LeaveRequests), cache.User(cache.LeaveRequests, existing.UserID))
	return nil
}

// BulkDeleteRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) BulkDeleteRequests(ctx context.Context, ids []string) (int64, error) {
	var deleted int64
	err := l.withTx(ctx, func(txCtx context.Context) error {
		var err error
		deleted, err = l.requestRepo.DeleteMany(txCtx, ids)
		return err
	})
	if err != nil {
		return 0, err
	}
	l.cache.InvalidateOrLog(ctx, cache.All(cache.LeaveRequests))
	return deleted, nil
}

// ListBalances implements leave.LeaveService.
func (l *LeaveServiceImpl) ListBalances(ctx context.Context) ([]leave.LeaveBalance, error) {
	year := l.now().Year()
	return cache.Fetch(ctx, l.cache, cache.All(cache.LeaveBalances), func(ctx context.Context) ([]leave.LeaveBalance, error) {
		return l.balanceRepo.List(ctx, year, nil)
	})
}

// ListMyBalances implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMyBalances(ctx context.Context, userID string) ([]leave.LeaveBalance, error) {
	year := l.now().Year()
	return cache.Fetch(ctx, l.cache, cache.User(cache.LeaveBalances, userID), func(ctx context.Context) ([]leave.LeaveBalance, error) {
		return l.balanceRepo.List(ctx, year, &userID)
	})
}

// MyBalanceMap implements leave.LeaveService.
func (l *LeaveServiceImpl) MyBalanceMap(ctx context.Context, userID string) (map[string]leave.LeaveBalance, error) {
	balances, err := l.ListMyBalances(ctx, userID)
	if err != nil {
		return nil, err
	}
	return leave.BalanceMap(balances), nil
}

// CreateBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateBalance(ctx context.Context, req leave.CreateLeaveBalanceRequest) (leave.LeaveBalance, error) {
	year := req.Year
	if year == 0 {
		year = l.now().Year()
	}

	created, err := l.balanceRepo.Create(ctx, leave.LeaveBalance{
		UserID:        req.UserID,
		EmployeeID:    req.EmployeeID,
		LeaveType:     req.LeaveType,
		Year:          year,
		TotalDays:     req.TotalDays,
		UsedDays:      req.UsedDays,
		RemainingDays: req.TotalDays - req.UsedDays,
	})
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	l.cache.InvalidateOrLog(ctx, cache.All(cache.LeaveBalances), cache.User(cache.LeaveBalances, created.UserID))
	return created, nil
}

// UpdateBalance implements leave.LeaveService. remaining_days is always
// recomputed as total_days - used_days.
func (l *LeaveServiceImpl) UpdateBalance(ctx context.Context, id string, req leave.UpdateLeaveBalanceRequest) (leave.LeaveBalance, error) {
	balance, err := l.balanceRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	if req.TotalDays != nil {
		balance.TotalDays = *req.TotalDays
	}
	if req.UsedDays != nil {
		balance.UsedDays = *req.UsedDays
	}
	if balance.UsedDays > balance.TotalDays {
		var errs validator.ValidationErrors
		errs.Add("used_days", leave.ErrUsedExceedsTotal.Error())
		return leave.LeaveBalance{}, errs
	}
	balance.RemainingDays = balance.TotalDays - balance.UsedDays

	updated, err := l.balanceRepo.Update(ctx, balance)
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	l.cache.InvalidateOrLog(ctx, cache.All(cache.LeaveBalances), cache.User(cache.LeaveBalances, updated.UserID))
	return updated, nil
}

// ListHolidays implements leave.LeaveService.
func (l *LeaveServiceImpl) ListHolidays(ctx context.Context) ([]leave.Holiday, error) {
	return cache.Fetch(ctx, l.cache, cache.All(cache.Holidays), l.holidayRepo.List)
}

// CreateHoliday implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateHoliday(ctx context.Context, req leave.CreateHolidayRequest) (leave.Holiday, error) {
	date, _ := validator.IsValidDate(req.Date)
	holidayType := req.Type
	if holidayType == "" {
		holidayType = "public"
	}

	created, err := l.holidayRepo.Create(ctx, leave.Holiday{
		Name:        req.Name,
		Date:        date,
		Type:        holidayType,
		Description: req.Description,
	})
	if err != nil {
		return leave.Holiday{}, err
	}
	l.cache.InvalidateOrLog(ctx, cache.All(cache.Holidays))
	return created, nil
}

// UpdateHoliday implements leave.LeaveService.
func (l *LeaveServiceImpl) UpdateHoliday(ctx context.Context, id string, req leave.UpdateHolidayRequest) (leave.Holiday, error) {
	h, err := l.holidayRepo.GetByID(ctx, id)
	if err != nil {
		return leave.Holiday{}, err
	}

	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.Date != nil {
		h.Date, _ = validator.IsValidDate(*req.Date)
	}
	if req.Type != nil {
		h.Type = *req.Type
	}
	if req.Description != nil {
		h.Description = req.Description
	}

	updated, err := l.holidayRepo.Update(ctx, h)
	if err != nil {
		return leave.Holiday{}, err
	}
	l.cache.InvalidateOrLog(ctx, cache.All(cache.Holidays))
	return updated, nil
}

// DeleteHoliday implements leave.LeaveService.
func (l *LeaveServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	if err := l.holidayRepo.Delete(ctx, id); err != nil {
		return err
	}
	l.cache.InvalidateOrLog(ctx, cache.All(cache.Holidays))
	return nil
}
