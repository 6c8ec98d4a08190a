package employee

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memEmployees struct {
	employee.EmployeeRepository
	rows map[string]employee.Employee
	seq  int
}

func (m *memEmployees) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	m.seq++
	e.ID = "e-" + string(rune('0'+m.seq))
	m.rows[e.ID] = e
	return e, nil
}

func (m *memEmployees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := m.rows[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *memEmployees) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	m.rows[e.ID] = e
	return e, nil
}

type memContacts struct {
	employee.EmergencyContactRepository
	err   error
	saved []employee.EmergencyContact
}

func (m *memContacts) Upsert(_ context.Context, c employee.EmergencyContact) (employee.EmergencyContact, error) {
	if m.err != nil {
		return employee.EmergencyContact{}, m.err
	}
	m.saved = append(m.saved, c)
	return c, nil
}

type memHistory struct {
	employee.EmploymentHistoryRepository
	entries []employee.EmploymentHistory
}

func (m *memHistory) Create(_ context.Context, h employee.EmploymentHistory) (employee.EmploymentHistory, error) {
	m.entries = append(m.entries, h)
	return h, nil
}

func (m *memHistory) CloseCurrent(_ context.Context, employeeID string, endDate time.Time) error {
	for i := range m.entries {
		if m.entries[i].EmployeeID == employeeID && m.entries[i].IsCurrent {
			m.entries[i].IsCurrent = false
			m.entries[i].EndDate = &endDate
		}
	}
	return nil
}

type txRecorder struct {
	calls int
}

func (r *txRecorder) run(ctx context.Context, fn func(context.Context) error) error {
	r.calls++
	return fn(ctx)
}

func newService(contacts *memContacts) (*EmployeeServiceImpl, *memEmployees, *memHistory, *txRecorder) {
	emps := &memEmployees{rows: map[string]employee.Employee{}}
	history := &memHistory{}
	tx := &txRecorder{}
	svc := NewEmployeeService(tx.run, emps, contacts, history, cache.New(nil, 0)).(*EmployeeServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc, emps, history, tx
}

func TestCreate_WritesAllRowsInOneTransaction(t *testing.T) {
	contacts := &memContacts{}
	svc, _, history, tx := newService(contacts)

	detail, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		FullName:   "Jane Doe",
		Email:      "jane@example.com",
		Department: "Engineering",
		Position:   "Engineer",
		BaseSalary: decimal.NewFromInt(5000),
		EmergencyContact: &employee.EmergencyContactRequest{
			Name: "John", Phone: "081234567890", Relationship: "Spouse",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, employee.StatusActive, detail.Status)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), detail.JoinDate)
	require.NotNil(t, detail.EmergencyContact)
	assert.Equal(t, detail.ID, detail.EmergencyContact.EmployeeID)
	require.Len(t, history.entries, 1)
	assert.Equal(t, "Engineer", history.entries[0].Title)
	assert.True(t, history.entries[0].IsCurrent)
}

func TestCreate_ContactFailureAbortsTransaction(t *testing.T) {
	contacts := &memContacts{err: errors.New("constraint violation")}
	svc, _, history, _ := newService(contacts)

	_, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		FullName:         "Jane Doe",
		Email:            "jane@example.com",
		Department:       "Engineering",
		Position:         "Engineer",
		EmergencyContact: &employee.EmergencyContactRequest{Name: "John", Phone: "081234567890", Relationship: "Spouse"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save emergency contact")
	assert.Empty(t, history.entries)
}

func TestUpdate_PositionChangeRollsHistory(t *testing.T) {
	svc, emps, history, _ := newService(&memContacts{})
	emps.rows["e-1"] = employee.Employee{ID: "e-1", FullName: "Jane", Position: "Engineer", Department: "Engineering"}
	history.entries = []employee.EmploymentHistory{{EmployeeID: "e-1", Title: "Engineer", IsCurrent: true}}

	position := "Senior Engineer"
	updated, err := svc.Update(context.Background(), "e-1", employee.UpdateEmployeeRequest{Position: &position})
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer", updated.Position)

	require.Len(t, history.entries, 2)
	assert.False(t, history.entries[0].IsCurrent)
	assert.NotNil(t, history.entries[0].EndDate)
	assert.Equal(t, "Senior Engineer", history.entries[1].Title)
	assert.True(t, history.entries[1].IsCurrent)
}

func TestUpdate_NoChanges(t *testing.T) {
	svc, _, _, _ := newService(&memContacts{})
	_, err := svc.Update(context.Background(), "e-1", employee.UpdateEmployeeRequest{})
	assert.ErrorIs(t, err, employee.ErrNoChanges)
}
