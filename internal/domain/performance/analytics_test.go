package performance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func rating(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestComputeAnalytics(t *testing.T) {
	reviews := []Review{
		{Status: ReviewStatusCompleted, OverallRating: rating("4.5")},
		{Status: ReviewStatusCompleted, OverallRating: rating("3.0")},
		{Status: ReviewStatusDraft, OverallRating: rating("4.8")},
		{Status: ReviewStatusDraft},
	}
	goals := []Goal{
		{Status: GoalStatusCompleted},
		{Status: GoalStatusActive},
		{Status: GoalStatusOverdue},
	}

	a := ComputeAnalytics(reviews, goals)

	assert.Equal(t, 4.1, a.AverageRating)
	assert.Equal(t, 33.3, a.GoalCompletionRate)
	assert.Equal(t, 2, a.PendingReviews)
	assert.Equal(t, 2, a.TopPerformers)
	assert.Equal(t, 4, a.TotalReviews)
	assert.Equal(t, 3, a.TotalGoals)
}

func TestComputeAnalytics_Empty(t *testing.T) {
	a := ComputeAnalytics(nil, nil)
	assert.Zero(t, a.AverageRating)
	assert.Zero(t, a.GoalCompletionRate)
	assert.Zero(t, a.PendingReviews)
}

func TestFeedback_Redacted(t *testing.T) {
	from := "emp-1"
	name := "Jane"
	f := Feedback{FromEmployeeID: &from, FromName: &name, IsAnonymous: true}

	r := f.Redacted()
	assert.Nil(t, r.FromEmployeeID)
	assert.Nil(t, r.FromName)
	assert.NotNil(t, f.FromEmployeeID)

	f.IsAnonymous = false
	assert.Equal(t, &from, f.Redacted().FromEmployeeID)
}

func TestCreateReviewRequest_Validate(t *testing.T) {
	req := CreateReviewRequest{
		EmployeeID:        "123e4567-e89b-12d3-a456-426614174000",
		ReviewPeriodStart: "2024-06-30",
		ReviewPeriodEnd:   "2024-01-01",
		OverallRating:     rating("6"),
	}
	err := req.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "review_period_end")
	assert.Contains(t, err.Error(), "overall_rating must be between 1 and 5")
}
