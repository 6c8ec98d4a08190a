package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/chat"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ems-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============= Fakes =============

type fakeProvider struct {
	state session.State
}

func (p *fakeProvider) Refresh(ctx context.Context) error { return nil }
func (p *fakeProvider) Logout(ctx context.Context) error  { return nil }
func (p *fakeProvider) Current() session.State            { return p.state }
func (p *fakeProvider) Err() string                       { return p.state.Err }
func (p *fakeProvider) Close()                            {}

type fakeRegistry struct {
	roles map[string]user.Role
}

func (r *fakeRegistry) Open(ctx context.Context, userID string, sessionID string) (session.Provider, error) {
	role, ok := r.roles[sessionID]
	if !ok {
		return nil, session.ErrNotAuthenticated
	}
	identity := session.Identity{UserID: userID, Role: role, SessionID: sessionID}
	return &fakeProvider{state: session.State{Identity: &identity, Authenticated: true}}, nil
}

func (r *fakeRegistry) Get(sessionID string) (session.Provider, bool) { return nil, false }
func (r *fakeRegistry) Close(sessionID string)                        {}
func (r *fakeRegistry) CloseAll()                                     {}
func (r *fakeRegistry) Reap(context.Context, time.Duration) int       { return 0 }

type fakeEmployeeService struct {
	employee.EmployeeService
	listed bool
}

func (s *fakeEmployeeService) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	s.listed = true
	return []employee.Employee{{ID: "e-1", FullName: "Ada Lovelace"}}, nil
}

type fakeLeaveService struct {
	leave.LeaveService
	createErr error
	deleteErr error
	deleted   []string
}

func (s *fakeLeaveService) CreateRequest(ctx context.Context, requester leave.Requester, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{}, s.createErr
}

func (s *fakeLeaveService) BulkDeleteRequests(ctx context.Context, ids []string) (int64, error) {
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	s.deleted = ids
	return int64(len(ids)), nil
}

type fakePayrollService struct {
	payroll.PayrollService
	payslip payroll.Payslip
}

func (s *fakePayrollService) GetPayslip(ctx context.Context, id string) (payroll.Payslip, error) {
	if id != s.payslip.ID {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	return s.payslip, nil
}

type fakeChat struct {
	reply chat.Response
	err   error
}

func (c *fakeChat) Complete(ctx context.Context, req chat.Request) (chat.Response, error) {
	return c.reply, c.err
}

type fakeGenerator struct {
	result notification.GenerateResult
	err    error
}

func (g *fakeGenerator) Generate(ctx context.Context, req notification.GenerateRequest) (notification.GenerateResult, error) {
	return g.result, g.err
}

// ============= Helpers =============

func newTestJWT(t *testing.T) jwt.Service {
	t.Helper()
	svc, err := jwt.NewJWTService("handler-test-secret", "15m", "24h", false)
	require.NoError(t, err)
	return svc
}

func accessToken(t *testing.T, svc jwt.Service, role user.Role, sessionID string) string {
	t.Helper()
	token, _, err := svc.GenerateAccessToken(jwt.AccessClaims{
		UserID:    "u-1",
		Email:     "ada@example.com",
		Role:      role,
		SessionID: sessionID,
	})
	require.NoError(t, err)
	return token
}

func testRouter(t *testing.T, svc jwt.Service, employees employee.EmployeeService) http.Handler {
	t.Helper()
	registry := &fakeRegistry{roles: map[string]user.Role{
		"admin-session":    user.RoleAdmin,
		"employee-session": user.RoleEmployee,
	}}
	return NewRouter(RouterConfig{AllowedOrigins: []string{"*"}}, svc, registry, Handlers{
		Auth:         NewAuthHandler(svc, nil, registry, "http://localhost:3000"),
		Employee:     NewEmployeeHandler(employees),
		Leave:        NewLeaveHandler(nil),
		Attendance:   NewAttendanceHandler(nil),
		Payroll:      NewPayrollHandler(nil),
		Performance:  NewPerformanceHandler(nil),
		Notification: NewNotificationHandler(nil, svc),
		Search:       NewSearchHandler(nil),
		Functions:    NewFunctionsHandler(nil, nil),
	})
}

// withIdentity mounts fn on pattern behind a middleware that signs identity in.
func withIdentity(identity session.Identity, method, pattern string, fn http.HandlerFunc) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(session.WithIdentity(req.Context(), identity)))
		})
	})
	r.Method(method, pattern, fn)
	return r
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// ============= Router and middleware =============

func TestRouter_RejectsMissingToken(t *testing.T) {
	svc := newTestJWT(t)
	router := testRouter(t, svc, &fakeEmployeeService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestRouter_RejectsUnknownSession(t *testing.T) {
	svc := newTestJWT(t)
	router := testRouter(t, svc, &fakeEmployeeService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, svc, user.RoleAdmin, "revoked-session"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeEnvelope(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, session.ErrNotAuthenticated.Error(), body.Error.Message)
}

func TestRouter_EmployeeCannotListEmployees(t *testing.T) {
	svc := newTestJWT(t)
	employees := &fakeEmployeeService{}
	router := testRouter(t, svc, employees)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, svc, user.RoleEmployee, "employee-session"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, employees.listed)
}

func TestRouter_AdminListsEmployees(t *testing.T) {
	svc := newTestJWT(t)
	employees := &fakeEmployeeService{}
	router := testRouter(t, svc, employees)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees?search=ada", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, svc, user.RoleAdmin, "admin-session"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, employees.listed)
	assert.True(t, decodeEnvelope(t, rec).Success)
}

func TestRouter_RefreshTokenIsNotAnAccessToken(t *testing.T) {
	svc := newTestJWT(t)
	router := testRouter(t, svc, &fakeEmployeeService{})

	refresh, _, err := svc.GenerateRefreshToken("u-1", "admin-session")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ============= Leave =============

func TestCreateLeaveRequest_InsufficientBalance(t *testing.T) {
	svc := &fakeLeaveService{createErr: &leave.BalanceError{LeaveType: "Sick Leave", Remaining: 5, Requested: 11}}
	h := NewLeaveHandler(svc)
	router := withIdentity(session.Identity{UserID: "u-1", Role: user.RoleEmployee}, http.MethodPost, "/leave/requests", h.CreateRequest)

	req := httptest.NewRequest(http.MethodPost, "/leave/requests", jsonBody(t, map[string]string{
		"leave_type": "Sick Leave",
		"start_date": "2030-01-10",
		"end_date":   "2030-01-20",
	}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	require.NotNil(t, body.Error)
	assert.Contains(t, body.Error.Message, "You only have 5 days remaining")
	assert.Equal(t, "Sick Leave", body.Error.Details["leave_type"])
}

func TestBulkDeleteLeaveRequests(t *testing.T) {
	ids := []string{
		"6f1c1f7e-3a7a-4a39-9a59-0c0f4f1a0001",
		"6f1c1f7e-3a7a-4a39-9a59-0c0f4f1a0002",
		"6f1c1f7e-3a7a-4a39-9a59-0c0f4f1a0001",
	}

	t.Run("deduplicates the selection", func(t *testing.T) {
		svc := &fakeLeaveService{}
		h := NewLeaveHandler(svc)
		router := withIdentity(session.Identity{UserID: "u-1", Role: user.RoleAdmin}, http.MethodPost, "/bulk-delete", h.BulkDeleteRequests)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bulk-delete", jsonBody(t, map[string][]string{"ids": ids})))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, svc.deleted, 2)
		assert.Equal(t, "2 leave requests deleted successfully", decodeEnvelope(t, rec).Message)
	})

	t.Run("failure answers 500", func(t *testing.T) {
		svc := &fakeLeaveService{deleteErr: errors.New("connection reset")}
		h := NewLeaveHandler(svc)
		router := withIdentity(session.Identity{UserID: "u-1", Role: user.RoleAdmin}, http.MethodPost, "/bulk-delete", h.BulkDeleteRequests)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bulk-delete", jsonBody(t, map[string][]string{"ids": ids})))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("empty ids are rejected", func(t *testing.T) {
		svc := &fakeLeaveService{}
		h := NewLeaveHandler(svc)
		router := withIdentity(session.Identity{UserID: "u-1", Role: user.RoleAdmin}, http.MethodPost, "/bulk-delete", h.BulkDeleteRequests)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bulk-delete", strings.NewReader(`{"ids":[]}`)))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Nil(t, svc.deleted)
	})
}

// ============= Payroll =============

func TestDownloadPayslip(t *testing.T) {
	payslipID := "0b6a3f52-6a0f-4d36-8d0e-6c4cbd5b7e10"
	svc := &fakePayrollService{payslip: payroll.Payslip{
		ID:              payslipID,
		UserID:          "owner",
		EmployeeName:    "Ada Lovelace",
		PayPeriodStart:  time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		PayPeriodEnd:    time.Date(2030, 1, 31, 0, 0, 0, 0, time.UTC),
		BaseSalary:      decimal.NewFromInt(5000),
		GrossPay:        decimal.NewFromInt(5000),
		TotalDeductions: decimal.NewFromInt(500),
		NetPay:          decimal.NewFromInt(4500),
		Status:          payroll.PayslipStatusPaid,
	}}
	h := NewPayrollHandler(svc)
	path := "/payslips/" + payslipID + "/download"

	t.Run("owner gets a pdf", func(t *testing.T) {
		router := withIdentity(session.Identity{UserID: "owner", Role: user.RoleEmployee}, http.MethodGet, "/payslips/{id}/download", h.DownloadPayslip)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "payslip-2030-01-01.pdf")
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
	})

	t.Run("owner gets plain text", func(t *testing.T) {
		router := withIdentity(session.Identity{UserID: "owner", Role: user.RoleEmployee}, http.MethodGet, "/payslips/{id}/download", h.DownloadPayslip)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path+"?format=txt", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Ada Lovelace")
	})

	t.Run("other employees are refused", func(t *testing.T) {
		router := withIdentity(session.Identity{UserID: "someone-else", Role: user.RoleEmployee}, http.MethodGet, "/payslips/{id}/download", h.DownloadPayslip)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admins may download any payslip", func(t *testing.T) {
		router := withIdentity(session.Identity{UserID: "admin", Role: user.RoleAdmin}, http.MethodGet, "/payslips/{id}/download", h.DownloadPayslip)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		router := withIdentity(session.Identity{UserID: "owner", Role: user.RoleEmployee}, http.MethodGet, "/payslips/{id}/download", h.DownloadPayslip)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payslips/not-a-uuid/download", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// ============= Functions =============

func TestChatWithAI(t *testing.T) {
	body := `{"messages":[{"role":"user","content":"How many leave days do I have?"}]}`

	t.Run("success returns generated text", func(t *testing.T) {
		h := NewFunctionsHandler(&fakeChat{reply: chat.Response{GeneratedText: "You have 12 days."}}, nil)
		rec := httptest.NewRecorder()
		h.ChatWithAI(rec, httptest.NewRequest(http.MethodPost, "/functions/chat-with-ai", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"generatedText":"You have 12 days."}`, rec.Body.String())
	})

	t.Run("upstream failure returns 500 with error and fallback text", func(t *testing.T) {
		h := NewFunctionsHandler(&fakeChat{err: errors.New("model unavailable")}, nil)
		rec := httptest.NewRecorder()
		h.ChatWithAI(rec, httptest.NewRequest(http.MethodPost, "/functions/chat-with-ai", strings.NewReader(body)))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var got map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "model unavailable", got["error"])
		assert.Equal(t, chat.FallbackReply, got["generatedText"])
	})

	t.Run("malformed body", func(t *testing.T) {
		h := NewFunctionsHandler(&fakeChat{}, nil)
		rec := httptest.NewRecorder()
		h.ChatWithAI(rec, httptest.NewRequest(http.MethodPost, "/functions/chat-with-ai", strings.NewReader("{")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid request format"}`, rec.Body.String())
	})
}

func TestAttendanceNotifications(t *testing.T) {
	t.Run("invalid type", func(t *testing.T) {
		h := NewFunctionsHandler(nil, &fakeGenerator{err: notification.ErrInvalidNotificationType})
		rec := httptest.NewRecorder()
		h.AttendanceNotifications(rec, httptest.NewRequest(http.MethodPost, "/functions/attendance-notifications", strings.NewReader(`{"type":"weekly"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"`+notification.ErrInvalidNotificationType.Error()+`"}`, rec.Body.String())
	})

	t.Run("generator failure", func(t *testing.T) {
		h := NewFunctionsHandler(nil, &fakeGenerator{err: errors.New("database unavailable")})
		rec := httptest.NewRecorder()
		h.AttendanceNotifications(rec, httptest.NewRequest(http.MethodPost, "/functions/attendance-notifications", strings.NewReader(`{"type":"absent"}`)))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"database unavailable"}`, rec.Body.String())
	})

	t.Run("bad employee id", func(t *testing.T) {
		h := NewFunctionsHandler(nil, &fakeGenerator{})
		rec := httptest.NewRecorder()
		h.AttendanceNotifications(rec, httptest.NewRequest(http.MethodPost, "/functions/attendance-notifications", strings.NewReader(`{"type":"absent","employeeId":"nope"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
