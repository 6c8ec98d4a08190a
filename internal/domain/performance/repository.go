package performance

import "context"

type ReviewRepository interface {
	List(ctx context.Context, employeeID *string) ([]Review, error)
	GetByID(ctx context.Context, id string) (Review, error)
	Create(ctx context.Context, review Review) (Review, error)
	Update(ctx context.Context, review Review) (Review, error)
	Delete(ctx context.Context, id string) error
}

type GoalRepository interface {
	List(ctx context.Context, employeeID *string) ([]Goal, error)
	GetByID(ctx context.Context, id string) (Goal, error)
	Create(ctx context.Context, goal Goal) (Goal, error)
	Update(ctx context.Context, goal Goal) (Goal, error)
	Delete(ctx context.Context, id string) error
}

type FeedbackRepository interface {
	// List returns feedback addressed to employeeID, or all feedback when nil.
	List(ctx context.Context, employeeID *string) ([]Feedback, error)
	GetByID(ctx context.Context, id string) (Feedback, error)
	Create(ctx context.Context, feedback Feedback) (Feedback, error)
	Update(ctx context.Context, feedback Feedback) (Feedback, error)
	Delete(ctx context.Context, id string) error
}
