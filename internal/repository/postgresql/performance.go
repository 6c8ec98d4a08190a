package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// deleteByID removes one row and reports notFound when nothing matched.
func deleteByID(ctx context.Context, db *database.DB, table, id string, notFound error) error {
	q := GetQuerier(ctx, db)
	tag, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}

type reviewRepositoryImpl struct {
	db *database.DB
}

func NewReviewRepository(db *database.DB) performance.ReviewRepository {
	return &reviewRepositoryImpl{db: db}
}

const reviewSelect = `
	SELECT r.id, r.user_id, r.employee_id, e.full_name, r.reviewer_id, rv.full_name,
		r.review_period_start, r.review_period_end, r.overall_rating, r.strengths,
		r.areas_for_improvement, r.goals, r.comments, r.status, r.created_at, r.updated_at
	FROM performance_reviews r
	LEFT JOIN employees e ON e.id = r.employee_id
	LEFT JOIN employees rv ON rv.id = r.reviewer_id`

func scanReview(row pgx.Row) (performance.Review, error) {
	var r performance.Review
	err := row.Scan(
		&r.ID, &r.UserID, &r.EmployeeID, &r.EmployeeName, &r.ReviewerID, &r.ReviewerName,
		&r.ReviewPeriodStart, &r.ReviewPeriodEnd, &r.OverallRating, &r.Strengths,
		&r.AreasForImprovement, &r.Goals, &r.Comments, &r.Status, &r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return performance.Review{}, performance.ErrReviewNotFound
	}
	return r, err
}

// List implements performance.ReviewRepository.
func (r *reviewRepositoryImpl) List(ctx context.Context, employeeID *string) ([]performance.Review, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, reviewSelect+`
		WHERE $1::uuid IS NULL OR r.employee_id = $1
		ORDER BY r.review_period_end DESC, r.created_at DESC`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []performance.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

// GetByID implements performance.ReviewRepository.
func (r *reviewRepositoryImpl) GetByID(ctx context.Context, id string) (performance.Review, error) {
	q := GetQuerier(ctx, r.db)
	return scanReview(q.QueryRow(ctx, reviewSelect+` WHERE r.id = $1`, id))
}

// Create implements performance.ReviewRepository.
func (r *reviewRepositoryImpl) Create(ctx context.Context, review performance.Review) (performance.Review, error) {
	q := GetQuerier(ctx, r.db)
	var id string
	err := q.QueryRow(ctx, `
		INSERT INTO performance_reviews (
			user_id, employee_id, reviewer_id, review_period_start, review_period_end, overall_rating,
			strengths, areas_for_improvement, goals, comments, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		review.UserID, review.EmployeeID, review.ReviewerID, review.ReviewPeriodStart, review.ReviewPeriodEnd,
		review.OverallRating, review.Strengths, review.AreasForImprovement, review.Goals, review.Comments, review.Status,
	).Scan(&id)
	if err != nil {
		return performance.Review{}, err
	}
	return r.GetByID(ctx, id)
}

// Update implements performance.ReviewRepository.
func (r *reviewRepositoryImpl) Update(ctx context.Context, review performance.Review) (performance.Review, error) {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE performance_reviews SET
			employee_id = $2, reviewer_id = $3, review_period_start = $4, review_period_end = $5,
			overall_rating = $6, strengths = $7, areas_for_improvement = $8, goals = $9,
			comments = $10, status = $11, updated_at = NOW()
		WHERE id = $1`,
		review.ID, review.EmployeeID, review.ReviewerID, review.ReviewPeriodStart, review.ReviewPeriodEnd,
		review.OverallRating, review.Strengths, review.AreasForImprovement, review.Goals,
		review.Comments, review.Status,
	)
	if err != nil {
		return performance.Review{}, err
	}
	if tag.RowsAffected() == 0 {
		return performance.Review{}, performance.ErrReviewNotFound
	}
	return r.GetByID(ctx, review.ID)
}

// Delete implements performance.ReviewRepository.
func (r *reviewRepositoryImpl) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "performance_reviews", id, performance.ErrReviewNotFound)
}

type goalRepositoryImpl struct {
	db *database.DB
}

func NewGoalRepository(db *database.DB) performance.GoalRepository {
	return &goalRepositoryImpl{db: db}
}

const goalSelect = `
	SELECT g.id, g.user_id, g.employee_id, e.full_name, g.title, g.description, g.progress,
		g.deadline, g.category, g.status, g.created_at, g.updated_at
	FROM performance_goals g
	LEFT JOIN employees e ON e.id = g.employee_id`

func scanGoal(row pgx.Row) (performance.Goal, error) {
	var g performance.Goal
	err := row.Scan(
		&g.ID, &g.UserID, &g.EmployeeID, &g.EmployeeName, &g.Title, &g.Description, &g.Progress,
		&g.Deadline, &g.Category, &g.Status, &g.CreatedAt, &g.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return performance.Goal{}, performance.ErrGoalNotFound
	}
	return g, err
}

// List implements performance.GoalRepository.
func (r *goalRepositoryImpl) List(ctx context.Context, employeeID *string) ([]performance.Goal, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, goalSelect+`
		WHERE $1::uuid IS NULL OR g.employee_id = $1
		ORDER BY g.deadline NULLS LAST, g.created_at DESC`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []performance.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// GetByID implements performance.GoalRepository.
func (r *goalRepositoryImpl) GetByID(ctx context.Context, id string) (performance.Goal, error) {
	q := GetQuerier(ctx, r.db)
	return scanGoal(q.QueryRow(ctx, goalSelect+` WHERE g.id = $1`, id))
}

// Create implements performance.GoalRepository.
func (r *goalRepositoryImpl) Create(ctx context.Context, g performance.Goal) (performance.Goal, error) {
	q := GetQuerier(ctx, r.db)
	var id string
	err := q.QueryRow(ctx, `
		INSERT INTO performance_goals (user_id, employee_id, title, description, progress, deadline, category, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		g.UserID, g.EmployeeID, g.Title, g.Description, g.Progress, g.Deadline, g.Category, g.Status,
	).Scan(&id)
	if err != nil {
		return performance.Goal{}, err
	}
	return r.GetByID(ctx, id)
}

// Update implements performance.GoalRepository.
func (r *goalRepositoryImpl) Update(ctx context.Context, g performance.Goal) (performance.Goal, error) {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE performance_goals SET
			employee_id = $2, title = $3, description = $4, progress = $5, deadline = $6,
			category = $7, status = $8, updated_at = NOW()
		WHERE id = $1`,
		g.ID, g.EmployeeID, g.Title, g.Description, g.Progress, g.Deadline, g.Category, g.Status,
	)
	if err != nil {
		return performance.Goal{}, err
	}
	if tag.RowsAffected() == 0 {
		return performance.Goal{}, performance.ErrGoalNotFound
	}
	return r.GetByID(ctx, g.ID)
}

// Delete implements performance.GoalRepository.
func (r *goalRepositoryImpl) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "performance_goals", id, performance.ErrGoalNotFound)
}

type feedbackRepositoryImpl struct {
	db *database.DB
}

func NewFeedbackRepository(db *database.DB) performance.FeedbackRepository {
	return &feedbackRepositoryImpl{db: db}
}

const feedbackSelect = `
	SELECT f.id, f.user_id, f.from_employee_id, fe.full_name, f.to_employee_id, te.full_name,
		f.feedback_type, f.comments, f.is_anonymous, f.created_at, f.updated_at
	FROM performance_feedback f
	LEFT JOIN employees fe ON fe.id = f.from_employee_id
	LEFT JOIN employees te ON te.id = f.to_employee_id`

func scanFeedback(row pgx.Row) (performance.Feedback, error) {
	var f performance.Feedback
	err := row.Scan(
		&f.ID, &f.UserID, &f.FromEmployeeID, &f.FromName, &f.ToEmployeeID, &f.ToName,
		&f.Type, &f.Comments, &f.IsAnonymous, &f.CreatedAt, &f.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return performance.Feedback{}, performance.ErrFeedbackNotFound
	}
	return f, err
}

// List implements performance.FeedbackRepository.
func (r *feedbackRepositoryImpl) List(ctx context.Context, employeeID *string) ([]performance.Feedback, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, feedbackSelect+`
		WHERE $1::uuid IS NULL OR f.to_employee_id = $1
		ORDER BY f.created_at DESC`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feedback := []performance.Feedback{}
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		feedback = append(feedback, f)
	}
	return feedback, rows.Err()
}

// GetByID implements performance.FeedbackRepository.
func (r *feedbackRepositoryImpl) GetByID(ctx context.Context, id string) (performance.Feedback, error) {
	q := GetQuerier(ctx, r.db)
	return scanFeedback(q.QueryRow(ctx, feedbackSelect+` WHERE f.id = $1`, id))
}

// Create implements performance.FeedbackRepository.
func (r *feedbackRepositoryImpl) Create(ctx context.Context, f performance.Feedback) (performance.Feedback, error) {
	q := GetQuerier(ctx, r.db)
	var id string
	err := q.QueryRow(ctx, `
		INSERT INTO performance_feedback (user_id, from_employee_id, to_employee_id, feedback_type, comments, is_anonymous)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		f.UserID, f.FromEmployeeID, f.ToEmployeeID, f.Type, f.Comments, f.IsAnonymous,
	).Scan(&id)
	if err != nil {
		return performance.Feedback{}, err
	}
	return r.GetByID(ctx, id)
}

// Update implements performance.FeedbackRepository.
func (r *feedbackRepositoryImpl) Update(ctx context.Context, f performance.Feedback) (performance.Feedback, error) {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE performance_feedback SET
			to_employee_id = $2, feedback_type = $3, comments = $4, is_anonymous = $5, updated_at = NOW()
		WHERE id = $1`,
		f.ID, f.ToEmployeeID, f.Type, f.Comments, f.IsAnonymous,
	)
	if err != nil {
		return performance.Feedback{}, err
	}
	if tag.RowsAffected() == 0 {
		return performance.Feedback{}, performance.ErrFeedbackNotFound
	}
	return r.GetByID(ctx, f.ID)
}

// Delete implements performance.FeedbackRepository.
func (r *feedbackRepositoryImpl) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "performance_feedback", id, performance.ErrFeedbackNotFound)
}
