package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/chat"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/search"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/bulk"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var balanceErr *leave.BalanceError
	if errors.As(err, &balanceErr) {
		BadRequest(w, balanceErr.Error(), map[string]string{"leave_type": balanceErr.LeaveType})
		return
	}

	switch {
	// Auth and session errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrRefreshTokenRevoked),
		errors.Is(err, auth.ErrSessionInvalid),
		errors.Is(err, session.ErrNotAuthenticated),
		errors.Is(err, session.ErrInvalidEmployeeData),
		errors.Is(err, session.ErrClosed):
		Unauthorized(w, session.ErrNotAuthenticated.Error())
	case errors.Is(err, auth.ErrRoleNotAllowed):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrOAuthDisabled):
		NotFound(w, err.Error())
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrOAuthEmailNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, session.ErrLogoutFailed):
		InternalServerError(w, err.Error())

	// User errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, payroll.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmergencyContactNotFound):
		NotFound(w, "Emergency contact not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrUserAlreadyLinked):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrNoChanges):
		BadRequest(w, "No fields to update", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, leave.ErrLeaveTypeExists),
		errors.Is(err, leave.ErrLeaveBalanceExists):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrStartInPast),
		errors.Is(err, leave.ErrEndBeforeStart):
		ValidationError(w, map[string]string{"start_date": err.Error()})

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotClockedIn):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrCheckOutBeforeIn):
		ValidationError(w, map[string]string{"check_out": err.Error()})
	case errors.Is(err, attendance.ErrEmployeeNotLinked),
		errors.Is(err, payroll.ErrEmployeeNotLinked):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrInvalidAttendanceID):
		BadRequest(w, err.Error(), nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrSalaryComponentNotFound):
		NotFound(w, "Salary component not found")
	case errors.Is(err, payroll.ErrPayrollRunClosed):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrSalaryComponentNameTaken):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrPayslipAccessDenied):
		Forbidden(w, err.Error())

	// Performance domain errors
	case errors.Is(err, performance.ErrReviewNotFound):
		NotFound(w, "Performance review not found")
	case errors.Is(err, performance.ErrGoalNotFound):
		NotFound(w, "Performance goal not found")
	case errors.Is(err, performance.ErrFeedbackNotFound):
		NotFound(w, "Feedback not found")
	case errors.Is(err, performance.ErrSelfFeedback):
		BadRequest(w, err.Error(), nil)

	// Notification, search, chat and bulk errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrInvalidNotificationType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, search.ErrEmptyQuery):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, chat.ErrNoMessages):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, bulk.ErrEmptySelection):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
