package http

import (
	"net/http"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/ems-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetMy(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	MyStats(w http.ResponseWriter, r *http.Request)
	AdminStats(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func actorOf(identity session.Identity) attendance.Actor {
	return attendance.Actor{UserID: identity.UserID, EmployeeID: identity.EmployeeID()}
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// GetMy implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	records, err := h.attendanceService.ListMine(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}
	var req attendance.ClockInRequest
	if r.ContentLength != 0 {
		if !decodeAndValidate(w, r, "ClockIn", &req) {
			return
		}
	}

	record, err := h.attendanceService.ClockIn(r.Context(), actorOf(identity), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Clocked in successfully", record)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.ClockOut(r.Context(), actorOf(identity))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Clocked out successfully", result)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Attendance")
	if !ok {
		return
	}
	var req attendance.UpdateAttendanceRequest
	if !decodeAndValidate(w, r, "UpdateAttendance", &req) {
		return
	}

	record, err := h.attendanceService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance updated successfully", record)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Attendance")
	if !ok {
		return
	}
	if err := h.attendanceService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance deleted successfully", nil)
}

// MyStats implements AttendanceHandler.
func (h *attendanceHandlerImpl) MyStats(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	stats, err := h.attendanceService.MyStats(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

// AdminStats implements AttendanceHandler.
func (h *attendanceHandlerImpl) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.attendanceService.AdminStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}
