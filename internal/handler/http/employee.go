package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	BulkDelete(w http.ResponseWriter, r *http.Request)
	BulkUpdate(w http.ResponseWriter, r *http.Request)
	UpsertEmergencyContact(w http.ResponseWriter, r *http.Request)
	UpsertMyEmergencyContact(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := employee.EmployeeFilter{
		Search:     query.Get("search"),
		Department: query.Get("department"),
		Status:     query.Get("status"),
	}

	employees, err := h.employeeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employees)
}

// Get implements EmployeeHandler.
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Employee")
	if !ok {
		return
	}

	detail, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, detail)
}

// Me implements EmployeeHandler.
func (h *employeeHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	detail, err := h.employeeService.GetByUserID(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, detail)
}

// Create implements EmployeeHandler.
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if !decodeAndValidate(w, r, "CreateEmployee", &req) {
		return
	}

	detail, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		slog.Error("CreateEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee created successfully", detail)
}

// Update implements EmployeeHandler.
func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Employee")
	if !ok {
		return
	}
	var req employee.UpdateEmployeeRequest
	if !decodeAndValidate(w, r, "UpdateEmployee", &req) {
		return
	}

	updated, err := h.employeeService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee updated successfully", updated)
}

// Delete implements EmployeeHandler.
func (h *employeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Employee")
	if !ok {
		return
	}

	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// BulkDelete implements EmployeeHandler.
func (h *employeeHandlerImpl) BulkDelete(w http.ResponseWriter, r *http.Request) {
	bulkDelete(w, r, "employees", h.employeeService.BulkDelete)
}

// BulkUpdate implements EmployeeHandler.
func (h *employeeHandlerImpl) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req employee.BulkUpdateRequest
	if !decodeAndValidate(w, r, "BulkUpdateEmployees", &req) {
		return
	}

	updated, err := h.employeeService.BulkUpdate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employees updated successfully", map[string]int{"updated": updated})
}

// UpsertEmergencyContact implements EmployeeHandler.
func (h *employeeHandlerImpl) UpsertEmergencyContact(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Employee")
	if !ok {
		return
	}
	h.upsertEmergencyContact(w, r, id)
}

// UpsertMyEmergencyContact implements EmployeeHandler.
func (h *employeeHandlerImpl) UpsertMyEmergencyContact(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}
	employeeID := identity.EmployeeID()
	if employeeID == nil {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return
	}
	h.upsertEmergencyContact(w, r, *employeeID)
}

func (h *employeeHandlerImpl) upsertEmergencyContact(w http.ResponseWriter, r *http.Request, employeeID string) {
	var req employee.EmergencyContactRequest
	if !decodeAndValidate(w, r, "UpsertEmergencyContact", &req) {
		return
	}

	contact, err := h.employeeService.UpsertEmergencyContact(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Emergency contact saved successfully", contact)
}
