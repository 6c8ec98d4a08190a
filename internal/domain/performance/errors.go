package performance

import "errors"

var (
	ErrReviewNotFound   = errors.New("performance review not found")
	ErrGoalNotFound     = errors.New("performance goal not found")
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrInvalidPeriod    = errors.New("review period end must not be before start")
	ErrSelfFeedback     = errors.New("feedback cannot be addressed to yourself")
)
