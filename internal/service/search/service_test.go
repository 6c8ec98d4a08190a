package search

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployees struct {
	calls int
	term  string
	rows  []employee.Employee
}

func (f *fakeEmployees) Search(_ context.Context, term string, limit int) ([]employee.Employee, error) {
	f.calls++
	f.term = term
	return f.rows, nil
}

type fakeLeaves struct {
	userID string
	term   string
	rows   []leave.LeaveRequest
}

func (f *fakeLeaves) Search(_ context.Context, userID string, term string, limit int) ([]leave.LeaveRequest, error) {
	f.userID = userID
	f.term = term
	return f.rows, nil
}

type fakeNotifications struct {
	rows []notification.Notification
}

func (f *fakeNotifications) Search(_ context.Context, userID string, term string, limit int) ([]notification.Notification, error) {
	return f.rows, nil
}

func TestSearch_EmployeesOnlyForAdmins(t *testing.T) {
	emps := &fakeEmployees{rows: []employee.Employee{{ID: "e-1", FullName: "Sick Bay Manager", Position: "Manager", Department: "Ops"}}}
	leaves := &fakeLeaves{rows: []leave.LeaveRequest{{
		ID: "l-1", LeaveType: "Sick", Status: leave.StatusPending,
		StartDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
	}}}
	svc := NewSearchService(emps, leaves, &fakeNotifications{}, nil)

	resp, err := svc.Search(context.Background(), search.Requester{UserID: "u-1"}, "  SICK ")
	require.NoError(t, err)
	assert.Equal(t, 0, emps.calls)
	assert.Equal(t, "u-1", leaves.userID)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Sick Leave", resp.Results[0].Title)
	assert.Equal(t, "2024-01-10 to 2024-01-12 - pending", resp.Results[0].Subtitle)

	resp, err = svc.Search(context.Background(), search.Requester{UserID: "u-1", IsAdmin: true}, "sick")
	require.NoError(t, err)
	assert.Equal(t, 1, emps.calls)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, search.TypeEmployee, resp.Results[1].Type)
	assert.Equal(t, "Manager - Ops", resp.Results[1].Subtitle)
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := NewSearchService(&fakeEmployees{}, &fakeLeaves{}, &fakeNotifications{}, nil)
	_, err := svc.Search(context.Background(), search.Requester{UserID: "u-1"}, "   ")
	assert.ErrorIs(t, err, search.ErrEmptyQuery)
}

func TestSearch_SuggestsFromRecent(t *testing.T) {
	svc := NewSearchService(&fakeEmployees{}, &fakeLeaves{}, &fakeNotifications{}, nil)
	ctx := context.Background()

	_, err := svc.SaveSearch(ctx, "u-1", "annual leave")
	require.NoError(t, err)

	resp, err := svc.Search(ctx, search.Requester{UserID: "u-1"}, "anual leave")
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	require.NotNil(t, resp.Suggestion)
	assert.Equal(t, "annual leave", *resp.Suggestion)
}

func TestRecentSearches_MemoryFallback(t *testing.T) {
	svc := NewSearchService(&fakeEmployees{}, &fakeLeaves{}, &fakeNotifications{}, nil)
	ctx := context.Background()

	for _, q := range []string{"payroll", "leave", "payroll"} {
		_, err := svc.SaveSearch(ctx, "u-1", q)
		require.NoError(t, err)
	}
	recent, err := svc.RecentSearches(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"payroll", "leave"}, recent)

	other, err := svc.RecentSearches(ctx, "u-2")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, svc.ClearRecentSearches(ctx, "u-1"))
	recent, err = svc.RecentSearches(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestSearch_PassesQueryAsTyped(t *testing.T) {
	emps := &fakeEmployees{rows: []employee.Employee{
		{ID: "e-1", FullName: "Maria Lopez"},
		{ID: "e-2", FullName: "José Ramírez"},
	}}
	leaves := &fakeLeaves{}
	svc := NewSearchService(emps, leaves, &fakeNotifications{}, nil)

	resp, err := svc.Search(context.Background(), search.Requester{UserID: "u-1", IsAdmin: true}, "  José ")
	require.NoError(t, err)
	assert.Equal(t, "José", emps.term)
	assert.Equal(t, "José", leaves.term)
	assert.Equal(t, "  José ", resp.Query)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "José Ramírez", resp.Results[0].Title, "accent-insensitive ranking")

	_, err = svc.Search(context.Background(), search.Requester{UserID: "u-1", IsAdmin: true}, "50%_off")
	require.NoError(t, err)
	assert.Equal(t, "50%_off", emps.term)
}
