package performance

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memReviews struct {
	performance.ReviewRepository
	rows []performance.Review
}

func (m *memReviews) List(_ context.Context, employeeID *string) ([]performance.Review, error) {
	return m.rows, nil
}

type memGoals struct {
	performance.GoalRepository
	rows []performance.Goal
}

func (m *memGoals) List(_ context.Context, employeeID *string) ([]performance.Goal, error) {
	return m.rows, nil
}

func (m *memGoals) Create(_ context.Context, g performance.Goal) (performance.Goal, error) {
	m.rows = append(m.rows, g)
	return g, nil
}

type memFeedback struct {
	performance.FeedbackRepository
	rows []performance.Feedback
}

func (m *memFeedback) List(_ context.Context, employeeID *string) ([]performance.Feedback, error) {
	var out []performance.Feedback
	for _, f := range m.rows {
		if employeeID == nil || (f.ToEmployeeID != nil && *f.ToEmployeeID == *employeeID) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memFeedback) Create(_ context.Context, f performance.Feedback) (performance.Feedback, error) {
	name := "Sender"
	f.FromName = &name
	m.rows = append(m.rows, f)
	return f, nil
}

func newService() (*PerformanceServiceImpl, *memReviews, *memGoals, *memFeedback) {
	reviews, goals, feedback := &memReviews{}, &memGoals{}, &memFeedback{}
	svc := NewPerformanceService(reviews, goals, feedback, cache.New(nil, 0)).(*PerformanceServiceImpl)
	return svc, reviews, goals, feedback
}

func rating(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestAnalytics(t *testing.T) {
	svc, reviews, goals, _ := newService()
	reviews.rows = []performance.Review{
		{Status: performance.ReviewStatusCompleted, OverallRating: rating("4.5")},
		{Status: performance.ReviewStatusCompleted, OverallRating: rating("3.5")},
		{Status: performance.ReviewStatusDraft},
	}
	goals.rows = []performance.Goal{
		{Status: performance.GoalStatusCompleted},
		{Status: performance.GoalStatusActive},
		{Status: performance.GoalStatusOverdue},
		{Status: performance.GoalStatusCompleted},
	}

	a, err := svc.Analytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4.0, a.AverageRating)
	assert.Equal(t, 50.0, a.GoalCompletionRate)
	assert.Equal(t, 1, a.PendingReviews)
	assert.Equal(t, 1, a.TopPerformers)
}

func TestCreateGoal_DefaultsToActorEmployee(t *testing.T) {
	svc, _, goals, _ := newService()
	employeeID := "e-1"

	g, err := svc.CreateGoal(context.Background(), performance.Actor{UserID: "u-1", EmployeeID: &employeeID}, performance.CreateGoalRequest{Title: "Ship v2"})
	require.NoError(t, err)
	require.NotNil(t, g.EmployeeID)
	assert.Equal(t, "e-1", *g.EmployeeID)
	assert.Equal(t, performance.GoalStatusActive, g.Status)
	assert.Len(t, goals.rows, 1)
}

func TestFeedback_AnonymousSenderHidden(t *testing.T) {
	svc, _, _, _ := newService()
	from, to := "e-1", "e-2"
	actor := performance.Actor{UserID: "u-1", EmployeeID: &from}

	_, err := svc.CreateFeedback(context.Background(), actor, performance.CreateFeedbackRequest{ToEmployeeID: from, Type: performance.FeedbackPositive, Comments: "me"})
	assert.ErrorIs(t, err, performance.ErrSelfFeedback)

	created, err := svc.CreateFeedback(context.Background(), actor, performance.CreateFeedbackRequest{
		ToEmployeeID: to, Type: performance.FeedbackRecognition, Comments: "Great launch", IsAnonymous: true,
	})
	require.NoError(t, err)
	assert.Nil(t, created.FromEmployeeID)
	assert.Nil(t, created.FromName)

	mine, err := svc.ListMyFeedback(context.Background(), to)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Nil(t, mine[0].FromEmployeeID)
	assert.Equal(t, "Great launch", mine[0].Comments)
}
