package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ems-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/pdf"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
)

type PayrollHandler interface {
	ListRuns(w http.ResponseWriter, r *http.Request)
	CreateRun(w http.ResponseWriter, r *http.Request)
	ProcessRun(w http.ResponseWriter, r *http.Request)

	ListPayslips(w http.ResponseWriter, r *http.Request)
	GetMyPayslips(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	CreatePayslip(w http.ResponseWriter, r *http.Request)
	UpdatePayslipStatus(w http.ResponseWriter, r *http.Request)
	DownloadPayslip(w http.ResponseWriter, r *http.Request)

	ListComponents(w http.ResponseWriter, r *http.Request)
	UpsertComponent(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ListRuns implements PayrollHandler.
func (h *payrollHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.payrollService.ListRuns(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, runs)
}

// CreateRun implements PayrollHandler.
func (h *payrollHandlerImpl) CreateRun(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}
	var req payroll.CreatePayrollRunRequest
	if !decodeAndValidate(w, r, "CreatePayrollRun", &req) {
		return
	}

	run, err := h.payrollService.CreateRun(r.Context(), identity.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payroll run created successfully", run)
}

// ProcessRun implements PayrollHandler.
func (h *payrollHandlerImpl) ProcessRun(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Payroll run")
	if !ok {
		return
	}

	result, err := h.payrollService.ProcessPayroll(r.Context(), id)
	if err != nil {
		slog.Error("ProcessPayroll failed", "run_id", id, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, fmt.Sprintf("Payroll processed: %d payslips", result.Processed), result)
}

// ListPayslips implements PayrollHandler.
func (h *payrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var filter payroll.PayslipFilter
	var errs validator.ValidationErrors

	if v := query.Get("employee_id"); v != "" {
		if !validator.IsValidUUID(v) {
			errs.Add("employee_id", "employee_id must be a valid UUID")
		}
		filter.EmployeeID = &v
	}
	if v := query.Get("payroll_run_id"); v != "" {
		if !validator.IsValidUUID(v) {
			errs.Add("payroll_run_id", "payroll_run_id must be a valid UUID")
		}
		filter.PayrollRunID = &v
	}
	if v := query.Get("status"); v != "" {
		status := payroll.PayslipStatus(v)
		if !validator.IsInSlice(v, []string{
			string(payroll.PayslipStatusPending),
			string(payroll.PayslipStatusProcessed),
			string(payroll.PayslipStatusPaid),
			string(payroll.PayslipStatusCancelled),
		}) {
			errs.Add("status", "status must be one of: pending, processed, paid, cancelled")
		}
		filter.Status = &status
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	payslips, err := h.payrollService.ListPayslips(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, payslips)
}

// GetMyPayslips implements PayrollHandler.
func (h *payrollHandlerImpl) GetMyPayslips(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	payslips, err := h.payrollService.ListMyPayslips(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, payslips)
}

// GetPayslip implements PayrollHandler.
func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	payslip, ok := h.ownedPayslip(w, r)
	if !ok {
		return
	}
	response.Success(w, payslip)
}

// CreatePayslip implements PayrollHandler.
func (h *payrollHandlerImpl) CreatePayslip(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePayslipRequest
	if !decodeAndValidate(w, r, "CreatePayslip", &req) {
		return
	}

	payslip, err := h.payrollService.CreatePayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payslip created successfully", payslip)
}

// UpdatePayslipStatus implements PayrollHandler.
func (h *payrollHandlerImpl) UpdatePayslipStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Payslip")
	if !ok {
		return
	}
	var req payroll.UpdatePayslipStatusRequest
	if !decodeAndValidate(w, r, "UpdatePayslipStatus", &req) {
		return
	}

	payslip, err := h.payrollService.UpdatePayslipStatus(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payslip status updated successfully", payslip)
}

// DownloadPayslip implements PayrollHandler. format=txt returns the plain
// text rendering, anything else a PDF.
func (h *payrollHandlerImpl) DownloadPayslip(w http.ResponseWriter, r *http.Request) {
	payslip, ok := h.ownedPayslip(w, r)
	if !ok {
		return
	}

	name := "payslip-" + payslip.PayPeriodStart.Format("2006-01-02")
	if r.URL.Query().Get("format") == "txt" {
		response.Attachment(w, name+".txt", "text/plain; charset=utf-8", []byte(payroll.RenderText(payslip)))
		return
	}

	body, err := pdf.Payslip(payslip)
	if err != nil {
		slog.Error("Payslip PDF rendering failed", "payslip_id", payslip.ID, "error", err)
		response.InternalServerError(w, "Failed to render payslip")
		return
	}
	response.Attachment(w, name+".pdf", "application/pdf", body)
}

// ownedPayslip loads the {id} payslip, allowing payroll managers and the
// payslip's owner only.
func (h *payrollHandlerImpl) ownedPayslip(w http.ResponseWriter, r *http.Request) (payroll.Payslip, bool) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return payroll.Payslip{}, false
	}
	id, ok := idParam(w, r, "Payslip")
	if !ok {
		return payroll.Payslip{}, false
	}

	payslip, err := h.payrollService.GetPayslip(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return payroll.Payslip{}, false
	}
	if !canViewPayslip(identity, payslip) {
		response.HandleError(w, payroll.ErrPayslipAccessDenied)
		return payroll.Payslip{}, false
	}
	return payslip, true
}

func canViewPayslip(identity session.Identity, payslip payroll.Payslip) bool {
	return payslip.UserID == identity.UserID || user.HasPermission(identity.Role, user.PermissionPayrollManage)
}

// ListComponents implements PayrollHandler.
func (h *payrollHandlerImpl) ListComponents(w http.ResponseWriter, r *http.Request) {
	components, err := h.payrollService.ListComponents(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, components)
}

// UpsertComponent implements PayrollHandler.
func (h *payrollHandlerImpl) UpsertComponent(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}
	var req payroll.UpsertSalaryComponentRequest
	if !decodeAndValidate(w, r, "UpsertSalaryComponent", &req) {
		return
	}

	component, err := h.payrollService.UpsertComponent(r.Context(), identity.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Salary component saved successfully", component)
}
