package performance

import "context"

type PerformanceService interface {
	ListReviews(ctx context.Context) ([]Review, error)
	ListMyReviews(ctx context.Context, employeeID string) ([]Review, error)
	CreateReview(ctx context.Context, actor Actor, req CreateReviewRequest) (Review, error)
	UpdateReview(ctx context.Context, id string, req UpdateReviewRequest) (Review, error)
	DeleteReview(ctx context.Context, id string) error

	ListGoals(ctx context.Context) ([]Goal, error)
	ListMyGoals(ctx context.Context, employeeID string) ([]Goal, error)
	CreateGoal(ctx context.Context, actor Actor, req CreateGoalRequest) (Goal, error)
	UpdateGoal(ctx context.Context, id string, req UpdateGoalRequest) (Goal, error)
	DeleteGoal(ctx context.Context, id string) error

	ListFeedback(ctx context.Context) ([]Feedback, error)
	ListMyFeedback(ctx context.Context, employeeID string) ([]Feedback, error)
	CreateFeedback(ctx context.Context, actor Actor, req CreateFeedbackRequest) (Feedback, error)
	UpdateFeedback(ctx context.Context, id string, req UpdateFeedbackRequest) (Feedback, error)
	DeleteFeedback(ctx context.Context, id string) error

	Analytics(ctx context.Context) (Analytics, error)
}
