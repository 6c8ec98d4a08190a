package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/ems-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	ListTypes(w http.ResponseWriter, r *http.Request)
	CreateType(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)

	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	UpdateRequestStatus(w http.ResponseWriter, r *http.Request)
	DeleteRequest(w http.ResponseWriter, r *http.Request)
	BulkDeleteRequests(w http.ResponseWriter, r *http.Request)

	ListBalances(w http.ResponseWriter, r *http.Request)
	GetMyBalances(w http.ResponseWriter, r *http.Request)
	GetMyBalanceMap(w http.ResponseWriter, r *http.Request)
	CreateBalance(w http.ResponseWriter, r *http.Request)
	UpdateBalance(w http.ResponseWriter, r *http.Request)

	ListHolidays(w http.ResponseWriter, r *http.Request)
	CreateHoliday(w http.ResponseWriter, r *http.Request)
	UpdateHoliday(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// ============= Leave types =============

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := l.leaveService.ListTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, types)
}

// CreateType implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest
	if !decodeAndValidate(w, r, "CreateLeaveType", &req) {
		return
	}

	leaveType, err := l.leaveService.CreateType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave type created successfully", leaveType)
}

// UpdateType implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Leave type")
	if !ok {
		return
	}
	var req leave.UpdateLeaveTypeRequest
	if !decodeAndValidate(w, r, "UpdateLeaveType", &req) {
		return
	}

	leaveType, err := l.leaveService.UpdateType(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave type updated successfully", leaveType)
}

// DeleteType implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Leave type")
	if !ok {
		return
	}
	if err := l.leaveService.DeleteType(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave type deleted successfully", nil)
}

// ============= Leave requests =============

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := leave.RequestFilter{}
	switch status := leave.RequestStatus(r.URL.Query().Get("status")); status {
	case "":
	case leave.StatusPending, leave.StatusApproved, leave.StatusRejected:
		filter.Status = status
	default:
		response.BadRequest(w, "status must be one of: pending, approved, rejected", nil)
		return
	}

	requests, err := l.leaveService.ListRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	requests, err := l.leaveService.ListMyRequests(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}
	var req leave.CreateLeaveRequestRequest
	if !decodeAndValidate(w, r, "CreateLeaveRequest", &req) {
		return
	}

	requester := leave.Requester{UserID: identity.UserID, EmployeeID: identity.EmployeeID()}
	created, err := l.leaveService.CreateRequest(r.Context(), requester, req)
	if err != nil {
		slog.Warn("CreateLeaveRequest rejected", "user_id", identity.UserID, "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted successfully", created)
}

// UpdateRequestStatus implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "Leave request")
	if !ok {
		return
	}
	var req leave.UpdateLeaveStatusRequest
	if !decodeAndValidate(w, r, "UpdateLeaveStatus", &req) {
		return
	}

	updated, err := l.leaveService.UpdateRequestStatus(r.Context(), id, identity.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request "+string(updated.Status)+" successfully", updated)
}

// DeleteRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Leave request")
	if !ok {
		return
	}
	if err := l.leaveService.DeleteRequest(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request deleted successfully", nil)
}

// BulkDeleteRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) BulkDeleteRequests(w http.ResponseWriter, r *http.Request) {
	bulkDelete(w, r, "leave requests", l.leaveService.BulkDeleteRequests)
}

// ============= Leave balances =============

// ListBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) ListBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := l.leaveService.ListBalances(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balances)
}

// GetMyBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	balances, err := l.leaveService.ListMyBalances(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balances)
}

// GetMyBalanceMap implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalanceMap(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	balances, err := l.leaveService.MyBalanceMap(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balances)
}

// CreateBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateBalance(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveBalanceRequest
	if !decodeAndValidate(w, r, "CreateLeaveBalance", &req) {
		return
	}

	balance, err := l.leaveService.CreateBalance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave balance created successfully", balance)
}

// UpdateBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateBalance(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Leave balance")
	if !ok {
		return
	}
	var req leave.UpdateLeaveBalanceRequest
	if !decodeAndValidate(w, r, "UpdateLeaveBalance", &req) {
		return
	}

	balance, err := l.leaveService.UpdateBalance(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave balance updated successfully", balance)
}

// ============= Holidays =============

// ListHolidays implements LeaveHandler.
func (l *LeaveHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := l.leaveService.ListHolidays(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, holidays)
}

// CreateHoliday implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateHolidayRequest
	if !decodeAndValidate(w, r, "CreateHoliday", &req) {
		return
	}

	holiday, err := l.leaveService.CreateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Holiday created successfully", holiday)
}

// UpdateHoliday implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateHoliday(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Holiday")
	if !ok {
		return
	}
	var req leave.UpdateHolidayRequest
	if !decodeAndValidate(w, r, "UpdateHoliday", &req) {
		return
	}

	holiday, err := l.leaveService.UpdateHoliday(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Holiday updated successfully", holiday)
}

// DeleteHoliday implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Holiday")
	if !ok {
		return
	}
	if err := l.leaveService.DeleteHoliday(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Holiday deleted successfully", nil)
}
