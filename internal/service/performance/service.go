package performance

import (
	"context"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
)

type PerformanceServiceImpl struct {
	reviewRepo   performance.ReviewRepository
	goalRepo     performance.GoalRepository
	feedbackRepo performance.FeedbackRepository
	cache        *cache.Cache
}

func NewPerformanceService(
	reviewRepo performance.ReviewRepository,
	goalRepo performance.GoalRepository,
	feedbackRepo performance.FeedbackRepository,
	c *cache.Cache,
) performance.PerformanceService {
	return &PerformanceServiceImpl{
		reviewRepo:   reviewRepo,
		goalRepo:     goalRepo,
		feedbackRepo: feedbackRepo,
		cache:        c,
	}
}

// Per-employee lists are cached under the employee id. Writes drop every
// scope of the entity because the owner of a row is not always known.

func listFor[T any](ctx context.Context, c *cache.Cache, entity cache.Entity, employeeID *string, list func(context.Context, *string) ([]T, error)) ([]T, error) {
	key := cache.All(entity)
	if employeeID != nil {
		key = cache.User(entity, *employeeID)
	}
	return cache.Fetch(ctx, c, key, func(ctx context.Context) ([]T, error) {
		return list(ctx, employeeID)
	})
}

// ========== REVIEWS ==========

func (s *PerformanceServiceImpl) ListReviews(ctx context.Context) ([]performance.Review, error) {
	return listFor(ctx, s.cache, cache.PerformanceReviews, nil, s.reviewRepo.List)
}

func (s *PerformanceServiceImpl) ListMyReviews(ctx context.Context, employeeID string) ([]performance.Review, error) {
	return listFor(ctx, s.cache, cache.PerformanceReviews, &employeeID, s.reviewRepo.List)
}

func (s *PerformanceServiceImpl) CreateReview(ctx context.Context, actor performance.Actor, req performance.CreateReviewRequest) (performance.Review, error) {
	start, end := req.Period()
	status := req.Status
	if status == "" {
		status = performance.ReviewStatusDraft
	}
	reviewer := req.ReviewerID
	if reviewer == nil {
		reviewer = actor.EmployeeID
	}

	created, err := s.reviewRepo.Create(ctx, performance.Review{
		UserID:              actor.UserID,
		EmployeeID:          &req.EmployeeID,
		ReviewerID:          reviewer,
		ReviewPeriodStart:   start,
		ReviewPeriodEnd:     end,
		OverallRating:       req.OverallRating,
		Strengths:           req.Strengths,
		AreasForImprovement: req.AreasForImprovement,
		Goals:               req.Goals,
		Comments:            req.Comments,
		Status:              status,
	})
	if err != nil {
		return performance.Review{}, err
	}
	s.cache.InvalidateOrLog(ctx, cache.All(cache.PerformanceReviews))
	return created, nil
}

func (s *PerformanceServiceImpl) UpdateReview(ctx context.Context, id string, req performance.UpdateReviewRequest) (performance.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return performance.Review{}, err
	}

	if req.OverallRating != nil {
		review.OverallRating = req.OverallRating
	}
	if req.Strengths != nil {
		review.Strengths = req.Strengths
	}
	if req.AreasForImprovement != nil {
		review.AreasForImprovement = req.AreasForImprovement
	}
	if req.Goals != nil {
		review.Goals = req.Goals
	}
	if req.Comments != nil {
		review.Comments = req.Comments
	}
	if req.Status != nil {
		review.Status = *req.Status
	}

	updated, err := s.reviewRepo.Update(ctx, review)
	if err != nil {
		return performance.Review{}, err
	}
	s.cache.InvalidateOrLog(ctx, cache.All(cache.PerformanceReviews))
	return updated, nil
}

func (s *PerformanceServiceImpl) DeleteReview(ctx context.Context, id string) error {
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateOrLog(ctx, cache.All(cache.PerformanceReviews))
	return nil
}

// ========== GOALS ==========

func (s *PerformanceServiceImpl) ListGoals(ctx context.Context) ([]performance.Goal, error) {
	return listFor(ctx, s.cache, cache.PerformanceGoals, nil, s.goalRepo.List)
}

func (s *PerformanceServiceImpl) ListMyGoals(ctx context.Context, employeeID string) ([]performance.Goal, error) {
	return listFor(ctx, s.cache, cache.PerformanceGoals, &employeeID, s.goalRepo.List)
}

func (s *PerformanceServiceImpl) CreateGoal(ctx context.Context, actor performance.Actor, req performance.CreateGoalRequest) (performance.Goal, error) {
	goal := performance.Goal{
		UserID:      actor.UserID,
		EmployeeID:  req.EmployeeID,
		Title:       req.Title,
		Description: req.Description,
		Progress:    req.Progress,
		Category:    req.Category,
		Status:      req.Status,
	}
	if goal.EmployeeID == nil {
		goal.EmployeeID = actor.EmployeeID
	}
	if goal.Status == "" {
		goal.Status = performance.GoalStatusActive
	}
	if req.Deadline != nil {
		deadline, _ := validator.IsValidDate(*req.Deadline)
		goal.Deadline = &deadline
	}

	created, err := s.goalRepo.Create(ctx, goal)
	if err != nil {
		return performance.Goal{}, err
	}
	s.cache.InvalidateOrLog(ctx, cache.All(cache.PerformanceGoals))
	return created, nil
}

func (s *PerformanceServiceImpl) UpdateGoal(ctx context.Context, id string, req performance.UpdateGoalRequest) (performance.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, id)
	if err != nil {
		return performance.Goal{}, err
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = req.Description
	}
	if req.Progress != nil {
		goal.Progress = *req.Progress
	}
	if req.Deadline != nil {
		deadline, _ := validator.IsValidDate(*req.Deadline)
		goal.Deadline = &deadline
	}
	if req.Category != nil {
		goal.Category = req.Category
	}
	if req.Status != nil {
		goal.Status = *req.Status
	}

	updated, err := s.goalRepo.Update(ctx, goal)
	if err != nil {
		return performance.Goal{}, err
	}
	s.cache.InvalidateOrLog(ctx, cache.All(cache.PerformanceGoals))
	return updated, nil
}

func (s *PerformanceServiceImpl) DeleteGoal(ctx context.Context, id string) error {
	if err := s.goalRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateOrLog(ctx, cache.All(cache.PerformanceGoals))
	return nil
}

// ========== FEEDBACK ==========

func redactAll(items []performance.Feedback) []performance.Feedback {
	out := make([]performance.Feedback, len(items))
	for i, f := range items {
		out[i] = f.Redacted()
	}
	return out
}

func (s *PerformanceServiceImpl) ListFeedback(ctx context.Context) ([]performance.Feedback, error) {
	items, err := listFor(ctx, s.cache, cache.PerformanceFeedback, nil, s.feedbackRepo.List)
	if err != nil {
		return nil, err
	}
	return redactAll(items), nil
}

func (s *PerformanceServiceImpl) ListMyFeedback(ctx context.Context, employeeID string) ([]performance.Feedback, error) {
	items, err := listFor(ctx, s.cache, cache.PerformanceFeedback, &employeeID, s.feedbackRepo.List)
	if err != nil {
		return nil, err
	}
	return redactAll(items), nil
}

func (s *PerformanceServiceImpl) CreateFeedback(ctx context.Context, actor performance.Actor, req performance.CreateFeedbackRequest) (performance.Feedback, error) {
	if actor.EmployeeID != nil && *actor.EmployeeID == req.ToEmployeeID {
		return performance.Feedback{}, performance.ErrSelfFeedback
	}

	created, err := s.feedbackRepo.Create(ctx, performance.Feedback{
		UserID:         actor.UserID,
		FromEmployeeID: actor.EmployeeID,
		ToEmployeeID:   &req.ToEmployeeID,
		Type:           req.Type,
		Comments:       req.Comments,
		IsAnonymous:    req.IsAnonymous,
	})
	if err != nil {
		return performance.Feedback{}, err
	}
	s.cache.InvalidateOrLog(ctx, cache.All(cache.PerformanceFeedback))
	return created.Redacted(), nil
}

func (s *PerformanceServiceImpl) UpdateFeedback(ctx context.Context, id string, req performance.UpdateFeedbackRequest) (performance.Feedback, error) {
	fb, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return performance.Feedback{}, err
	}

	if req.Type != nil {
		fb.Type = *req.Type
	}
	if req.Comments != nil {
		fb.Comments = *req.Comments
	}
	if req.IsAnonymous != nil {
		fb.IsAnonymous = *req.IsAnonymous
	}

	updated, err := s.feedbackRepo.Update(ctx, fb)
	if err != nil {
		return performance.Feedback{}, err
	}
	s.cache.InvalidateOrLog(ctx, cache.All(cache.PerformanceFeedback))
	return updated.Redacted(), nil
}

func (s *PerformanceServiceImpl) DeleteFeedback(ctx context.Context, id string) error {
	if err := s.feedbackRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateOrLog(ctx, cache.All(cache.PerformanceFeedback))
	return nil
}

// ========== ANALYTICS ==========

func (s *PerformanceServiceImpl) Analytics(ctx context.Context) (performance.Analytics, error) {
	return cache.Fetch(ctx, s.cache, cache.All(cache.PerformanceAnalytics), func(ctx context.Context) (performance.Analytics, error) {
		reviews, err := s.reviewRepo.List(ctx, nil)
		if err != nil {
			return performance.Analytics{}, err
		}
		goals, err := s.goalRepo.List(ctx, nil)
		if err != nil {
			return performance.Analytics{}, err
		}
		return performance.ComputeAnalytics(reviews, goals), nil
	})
}
