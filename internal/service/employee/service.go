package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/ems-backend-go/internal/repository/postgresql"
)

type EmployeeServiceImpl struct {
	withTx       postgresql.TxRunner
	employeeRepo employee.EmployeeRepository
	contactRepo  employee.EmergencyContactRepository
	historyRepo  employee.EmploymentHistoryRepository
	cache        *cache.Cache
	now          func() time.Time
}

func NewEmployeeService(
	withTx postgresql.TxRunner,
	employeeRepo employee.EmployeeRepository,
	contactRepo employee.EmergencyContactRepository,
	historyRepo employee.EmploymentHistoryRepository,
	c *cache.Cache,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		withTx:       withTx,
		employeeRepo: employeeRepo,
		contactRepo:  contactRepo,
		historyRepo:  historyRepo,
		cache:        c,
		now:          time.Now,
	}
}

func (s *EmployeeServiceImpl) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// List implements employee.EmployeeService. Only the unfiltered list is cached.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	if !filter.IsZero() {
		return s.employeeRepo.List(ctx, filter)
	}
	return cache.Fetch(ctx, s.cache, cache.All(cache.Employees), func(ctx context.Context) ([]employee.Employee, error) {
		return s.employeeRepo.List(ctx, filter)
	})
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeDetail, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeDetail{}, err
	}
	return s.detail(ctx, emp)
}

// GetByUserID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByUserID(ctx context.Context, userID string) (employee.EmployeeDetail, error) {
	emp, err := s.employeeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return employee.EmployeeDetail{}, err
	}
	return s.detail(ctx, emp)
}

func (s *EmployeeServiceImpl) detail(ctx context.Context, emp employee.Employee) (employee.EmployeeDetail, error) {
	detail := employee.EmployeeDetail{Employee: emp}

	contact, err := s.contactRepo.GetByEmployeeID(ctx, emp.ID)
	switch {
	case err == nil:
		detail.EmergencyContact = &contact
	case !errors.Is(err, employee.ErrEmergencyContactNotFound):
		return employee.EmployeeDetail{}, fmt.Errorf("failed to get emergency contact: %w", err)
	}

	detail.EmploymentHistory, err = s.historyRepo.ListByEmployeeID(ctx, emp.ID)
	if err != nil {
		return employee.EmployeeDetail{}, fmt.Errorf("failed to get employment history: %w", err)
	}
	return detail, nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeDetail, error) {
	newEmployee := employee.Employee{
		UserID:            req.UserID,
		FullName:          req.FullName,
		Email:             req.Email,
		Department:        req.Department,
		Position:          req.Position,
		Status:            req.Status,
		JoinDate:          s.today(),
		BaseSalary:        req.BaseSalary,
		Phone:             req.Phone,
		Address:           req.Address,
		Manager:           req.Manager,
		ProfilePictureURL: req.ProfilePictureURL,
	}
	if newEmployee.Status == "" {
		newEmployee.Status = employee.StatusActive
	}
	if req.JoinDate != "" {
		newEmployee.JoinDate, _ = validator.IsValidDate(req.JoinDate)
	}
	if req.DateOfBirth != nil {
		dob, _ := validator.IsValidDate(*req.DateOfBirth)
		newEmployee.DateOfBirth = &dob
	}

	var detail employee.EmployeeDetail
	err := s.withTx(ctx, func(txCtx context.Context) error {
		created, err := s.employeeRepo.Create(txCtx, newEmployee)
		if err != nil {
			return err
		}
		detail.Employee = created

		if req.EmergencyContact != nil {
			contact, err := s.contactRepo.Upsert(txCtx, employee.EmergencyContact{
				EmployeeID:   created.ID,
				Name:         req.EmergencyContact.Name,
				Phone:        req.EmergencyContact.Phone,
				Relationship: req.EmergencyContact.Relationship,
			})
			if err != nil {
				return fmt.Errorf("failed to save emergency contact: %w", err)
			}
			detail.EmergencyContact = &contact
		}

		history, err := s.historyRepo.Create(txCtx, employee.EmploymentHistory{
			EmployeeID: created.ID,
			Title:      created.Position,
			Department: created.Department,
			StartDate:  created.JoinDate,
			IsCurrent:  true,
		})
		if err != nil {
			return fmt.Errorf("failed to save employment history: %w", err)
		}
		detail.EmploymentHistory = []employee.EmploymentHistory{history}
		return nil
	})
	if err != nil {
		return employee.EmployeeDetail{}, err
	}

	s.cache.InvalidateOrLog(ctx, cache.All(cache.Employees))
	slog.Info("Employee created", "employee_id", detail.ID)
	return detail, nil
}

// applyChanges copies the supplied fields of req onto e.
func applyChanges(e *employee.Employee, req employee.UpdateEmployeeRequest) {
	if req.FullName != nil {
		e.FullName = *req.FullName
	}
	if req.Email != nil {
		e.Email = *req.Email
	}
	if req.Department != nil {
		e.Department = *req.Department
	}
	if req.Position != nil {
		e.Position = *req.Position
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
	if req.JoinDate != nil {
		e.JoinDate, _ = validator.IsValidDate(*req.JoinDate)
	}
	if req.BaseSalary != nil {
		e.BaseSalary = *req.BaseSalary
	}
	if req.Phone != nil {
		e.Phone = req.Phone
	}
	if req.Address != nil {
		e.Address = req.Address
	}
	if req.DateOfBirth != nil {
		dob, _ := validator.IsValidDate(*req.DateOfBirth)
		e.DateOfBirth = &dob
	}
	if req.Manager != nil {
		e.Manager = req.Manager
	}
	if req.ProfilePictureURL != nil {
		e.ProfilePictureURL = req.ProfilePictureURL
	}
}

// update applies req to one employee. A new position or department closes
// the current history entry and opens another.
func (s *EmployeeServiceImpl) update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	existing, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}

	changed := existing
	applyChanges(&changed, req)

	updated, err := s.employeeRepo.Update(ctx, changed)
	if err != nil {
		return employee.Employee{}, err
	}

	if updated.Position != existing.Position || updated.Department != existing.Department {
		today := s.today()
		if err := s.historyRepo.CloseCurrent(ctx, id, today); err != nil {
			return employee.Employee{}, fmt.Errorf("failed to close employment history: %w", err)
		}
		if _, err := s.historyRepo.Create(ctx, employee.EmploymentHistory{
			EmployeeID: id,
			Title:      updated.Position,
			Department: updated.Department,
			StartDate:  today,
			IsCurrent:  true,
		}); err != nil {
			return employee.Employee{}, fmt.Errorf("failed to save employment history: %w", err)
		}
	}
	return updated, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if req.IsEmpty() {
		return employee.Employee{}, employee.ErrNoChanges
	}

	var updated employee.Employee
	err := s.withTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.update(txCtx, id, req)
		return err
	})
	if err != nil {
		return employee.Employee{}, err
	}

	s.cache.InvalidateOrLog(ctx, cache.All(cache.Employees))
	return updated, nil
}

// BulkUpdate implements employee.EmployeeService. Either every item is
// applied or none is.
func (s *EmployeeServiceImpl) BulkUpdate(ctx context.Context, req employee.BulkUpdateRequest) (int, error) {
	err := s.withTx(ctx, func(txCtx context.Context) error {
		for _, item := range req.Items {
			if item.Changes.IsEmpty() {
				continue
			}
			if _, err := s.update(txCtx, item.ID, item.Changes); err != nil {
				return fmt.Errorf("employee %s: %w", item.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.cache.InvalidateOrLog(ctx, cache.All(cache.Employees))
	return len(req.Items), nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateOrLog(ctx, cache.All(cache.Employees))
	return nil
}

// BulkDelete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	var deleted int64
	err := s.withTx(ctx, func(txCtx context.Context) error {
		var err error
		deleted, err = s.employeeRepo.DeleteMany(txCtx, ids)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.cache.InvalidateOrLog(ctx, cache.All(cache.Employees))
	return deleted, nil
}

// UpsertEmergencyContact implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpsertEmergencyContact(ctx context.Context, employeeID string, req employee.EmergencyContactRequest) (employee.EmergencyContact, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return employee.EmergencyContact{}, err
	}

	contact, err := s.contactRepo.Upsert(ctx, employee.EmergencyContact{
		EmployeeID:   employeeID,
		Name:         req.Name,
		Phone:        req.Phone,
		Relationship: req.Relationship,
	})
	if err != nil {
		return employee.EmergencyContact{}, fmt.Errorf("failed to save emergency contact: %w", err)
	}

	s.cache.InvalidateOrLog(ctx, cache.All(cache.EmergencyContacts))
	return contact, nil
}
