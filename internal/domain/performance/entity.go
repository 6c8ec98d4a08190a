package performance

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReviewStatus enum
type ReviewStatus string

const (
	ReviewStatusDraft      ReviewStatus = "draft"
	ReviewStatusInProgress ReviewStatus = "in_progress"
	ReviewStatusCompleted  ReviewStatus = "completed"
)

// GoalStatus enum
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "Active"
	GoalStatusCompleted GoalStatus = "Completed"
	GoalStatusOverdue   GoalStatus = "Overdue"
)

// FeedbackType enum
type FeedbackType string

const (
	FeedbackPositive     FeedbackType = "Positive"
	FeedbackConstructive FeedbackType = "Constructive"
	FeedbackRecognition  FeedbackType = "Recognition"
)

// TopPerformerRating is the minimum overall rating counted as a top performer.
var TopPerformerRating = decimal.RequireFromString("4.5")

type Review struct {
	ID                  string           `json:"id"`
	UserID              string           `json:"user_id"`
	EmployeeID          *string          `json:"employee_id,omitempty"`
	EmployeeName        *string          `json:"employee_name,omitempty"`
	ReviewerID          *string          `json:"reviewer_id,omitempty"`
	ReviewerName        *string          `json:"reviewer_name,omitempty"`
	ReviewPeriodStart   time.Time        `json:"review_period_start"`
	ReviewPeriodEnd     time.Time        `json:"review_period_end"`
	OverallRating       *decimal.Decimal `json:"overall_rating,omitempty"`
	Strengths           *string          `json:"strengths,omitempty"`
	AreasForImprovement *string          `json:"areas_for_improvement,omitempty"`
	Goals               *string          `json:"goals,omitempty"`
	Comments            *string          `json:"comments,omitempty"`
	Status              ReviewStatus     `json:"status"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

type Goal struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	EmployeeID   *string    `json:"employee_id,omitempty"`
	EmployeeName *string    `json:"employee_name,omitempty"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	Progress     int        `json:"progress"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Category     *string    `json:"category,omitempty"`
	Status       GoalStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Feedback struct {
	ID             string       `json:"id"`
	UserID         string       `json:"user_id"`
	FromEmployeeID *string      `json:"from_employee_id,omitempty"`
	FromName       *string      `json:"from_name,omitempty"`
	ToEmployeeID   *string      `json:"to_employee_id,omitempty"`
	ToName         *string      `json:"to_name,omitempty"`
	Type           FeedbackType `json:"type"`
	Comments       string       `json:"comments"`
	IsAnonymous    bool         `json:"is_anonymous"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Redacted hides the sender of anonymous feedback.
func (f Feedback) Redacted() Feedback {
	if f.IsAnonymous {
		f.FromEmployeeID = nil
		f.FromName = nil
	}
	return f
}

type Analytics struct {
	AverageRating      float64 `json:"average_rating"`
	GoalCompletionRate float64 `json:"goal_completion_rate"`
	PendingReviews     int     `json:"pending_reviews"`
	TopPerformers      int     `json:"top_performers"`
	TotalReviews       int     `json:"total_reviews"`
	TotalGoals         int     `json:"total_goals"`
}
