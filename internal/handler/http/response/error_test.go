package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/bulk"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	var validationErrs validator.ValidationErrors
	validationErrs.Add("email", "email is required")

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", validationErrs.Err(), http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed"},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED", auth.ErrInvalidCredentials.Error()},
		{"revoked session", fmt.Errorf("refresh: %w", auth.ErrSessionInvalid), http.StatusUnauthorized, "UNAUTHORIZED", session.ErrNotAuthenticated.Error()},
		{"leave request not found", leave.ErrLeaveRequestNotFound, http.StatusNotFound, "NOT_FOUND", "Leave request not found"},
		{"start in past", leave.ErrStartInPast, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed"},
		{"already clocked in", attendance.ErrAlreadyClockedIn, http.StatusConflict, "CONFLICT", attendance.ErrAlreadyClockedIn.Error()},
		{"payslip of someone else", payroll.ErrPayslipAccessDenied, http.StatusForbidden, "FORBIDDEN", payroll.ErrPayslipAccessDenied.Error()},
		{"empty bulk selection", bulk.ErrEmptySelection, http.StatusBadRequest, "BAD_REQUEST", bulk.ErrEmptySelection.Error()},
		{"unknown", errors.New("pq: connection refused"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.message, body.Error.Message)
		})
	}
}

func TestHandleError_BalanceError(t *testing.T) {
	err := fmt.Errorf("create leave request: %w", &leave.BalanceError{LeaveType: "Annual Leave", Remaining: 2, Requested: 4})

	rec := httptest.NewRecorder()
	HandleError(rec, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "insufficient balance. You only have 2 days remaining. You requested 4 days.", body.Error.Message)
	assert.Equal(t, "Annual Leave", body.Error.Details["leave_type"])
}
