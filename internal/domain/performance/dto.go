package performance

import (
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Actor identifies who is writing a review, goal or feedback.
type Actor struct {
	UserID     string
	EmployeeID *string
}

type CreateReviewRequest struct {
	EmployeeID          string           `json:"employee_id" validate:"required,uuid"`
	ReviewerID          *string          `json:"reviewer_id,omitempty" validate:"omitempty,uuid"`
	ReviewPeriodStart   string           `json:"review_period_start" validate:"required,datetime=2006-01-02"`
	ReviewPeriodEnd     string           `json:"review_period_end" validate:"required,datetime=2006-01-02"`
	OverallRating       *decimal.Decimal `json:"overall_rating,omitempty"`
	Strengths           *string          `json:"strengths,omitempty"`
	AreasForImprovement *string          `json:"areas_for_improvement,omitempty"`
	Goals               *string          `json:"goals,omitempty"`
	Comments            *string          `json:"comments,omitempty"`
	Status              ReviewStatus     `json:"status" validate:"omitempty,oneof=draft in_progress completed"`

	start, end time.Time
}

func (r *CreateReviewRequest) Validate() error {
	errs := validator.StructErrors(r)
	if len(errs) > 0 {
		return errs
	}
	r.start, _ = validator.IsValidDate(r.ReviewPeriodStart)
	r.end, _ = validator.IsValidDate(r.ReviewPeriodEnd)
	if r.end.Before(r.start) {
		errs.Add("review_period_end", ErrInvalidPeriod.Error())
	}
	validateRating(&errs, r.OverallRating)
	return errs.Err()
}

// Period returns the parsed review period. Validate must run first.
func (r *CreateReviewRequest) Period() (time.Time, time.Time) {
	return r.start, r.end
}

type UpdateReviewRequest struct {
	OverallRating       *decimal.Decimal `json:"overall_rating,omitempty"`
	Strengths           *string          `json:"strengths,omitempty"`
	AreasForImprovement *string          `json:"areas_for_improvement,omitempty"`
	Goals               *string          `json:"goals,omitempty"`
	Comments            *string          `json:"comments,omitempty"`
	Status              *ReviewStatus    `json:"status,omitempty" validate:"omitempty,oneof=draft in_progress completed"`
}

func (r *UpdateReviewRequest) Validate() error {
	errs := validator.StructErrors(r)
	validateRating(&errs, r.OverallRating)
	return errs.Err()
}

var (
	minRating = decimal.NewFromInt(1)
	maxRating = decimal.NewFromInt(5)
)

func validateRating(errs *validator.ValidationErrors, rating *decimal.Decimal) {
	if rating == nil {
		return
	}
	if rating.LessThan(minRating) || rating.GreaterThan(maxRating) {
		errs.Add("overall_rating", "overall_rating must be between 1 and 5")
	}
}

type CreateGoalRequest struct {
	EmployeeID  *string    `json:"employee_id,omitempty" validate:"omitempty,uuid"`
	Title       string     `json:"title" validate:"required,max=255"`
	Description *string    `json:"description,omitempty"`
	Progress    int        `json:"progress" validate:"gte=0,lte=100"`
	Deadline    *string    `json:"deadline,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Category    *string    `json:"category,omitempty" validate:"omitempty,max=100"`
	Status      GoalStatus `json:"status" validate:"omitempty,oneof=Active Completed Overdue"`
}

func (r *CreateGoalRequest) Validate() error {
	return validator.StructErrors(r).Err()
}

type UpdateGoalRequest struct {
	Title       *string     `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string     `json:"description,omitempty"`
	Progress    *int        `json:"progress,omitempty" validate:"omitempty,gte=0,lte=100"`
	Deadline    *string     `json:"deadline,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Category    *string     `json:"category,omitempty" validate:"omitempty,max=100"`
	Status      *GoalStatus `json:"status,omitempty" validate:"omitempty,oneof=Active Completed Overdue"`
}

func (r *UpdateGoalRequest) Validate() error {
	return validator.StructErrors(r).Err()
}

type CreateFeedbackRequest struct {
	ToEmployeeID string       `json:"to_employee_id" validate:"required,uuid"`
	Type         FeedbackType `json:"type" validate:"required,oneof=Positive Constructive Recognition"`
	Comments     string       `json:"comments" validate:"required,max=5000"`
	IsAnonymous  bool         `json:"is_anonymous"`
}

func (r *CreateFeedbackRequest) Validate() error {
	return validator.StructErrors(r).Err()
}

type UpdateFeedbackRequest struct {
	Type        *FeedbackType `json:"type,omitempty" validate:"omitempty,oneof=Positive Constructive Recognition"`
	Comments    *string       `json:"comments,omitempty" validate:"omitempty,min=1,max=5000"`
	IsAnonymous *bool         `json:"is_anonymous,omitempty"`
}

func (r *UpdateFeedbackRequest) Validate() error {
	return validator.StructErrors(r).Err()
}
