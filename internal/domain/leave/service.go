package leave

import "context"

type LeaveService interface {
	// Leave types
	ListTypes(ctx context.Context) ([]LeaveType, error)
	CreateType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveType, error)
	UpdateType(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveType, error)
	DeleteType(ctx context.Context, id string) error

	// Leave requests
	ListRequests(ctx context.Context, filter RequestFilter) ([]LeaveRequest, error)
	ListMyRequests(ctx context.Context, userID string) ([]LeaveRequest, error)
	CreateRequest(ctx context.Context, requester Requester, req CreateLeaveRequestRequest) (LeaveRequest, error)
	UpdateRequestStatus(ctx context.Context, id string, reviewerID string, req UpdateLeaveStatusRequest) (LeaveRequest, error)
	DeleteRequest(ctx context.Context, id string) error
	BulkDeleteRequests(ctx context.Context, ids []string) (int64, error)

	// Leave balances
	ListBalances(ctx context.Context) ([]LeaveBalance, error)
	ListMyBalances(ctx context.Context, userID string) ([]LeaveBalance, error)
	MyBalanceMap(ctx context.Context, userID string) (map[string]LeaveBalance, error)
	CreateBalance(ctx context.Context, req CreateLeaveBalanceRequest) (LeaveBalance, error)
	UpdateBalance(ctx context.Context, id string, req UpdateLeaveBalanceRequest) (LeaveBalance, error)

	// Holidays
	ListHolidays(ctx context.Context) ([]Holiday, error)
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (Holiday, error)
	UpdateHoliday(ctx context.Context, id string, req UpdateHolidayRequest) (Holiday, error)
	DeleteHoliday(ctx context.Context, id string) error
}
