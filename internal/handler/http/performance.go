package http

import (
	"net/http"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ems-backend-go/internal/handler/http/response"
)

type PerformanceHandler interface {
	ListReviews(w http.ResponseWriter, r *http.Request)
	GetMyReviews(w http.ResponseWriter, r *http.Request)
	CreateReview(w http.ResponseWriter, r *http.Request)
	UpdateReview(w http.ResponseWriter, r *http.Request)
	DeleteReview(w http.ResponseWriter, r *http.Request)

	ListGoals(w http.ResponseWriter, r *http.Request)
	GetMyGoals(w http.ResponseWriter, r *http.Request)
	CreateGoal(w http.ResponseWriter, r *http.Request)
	UpdateGoal(w http.ResponseWriter, r *http.Request)
	DeleteGoal(w http.ResponseWriter, r *http.Request)

	ListFeedback(w http.ResponseWriter, r *http.Request)
	GetMyFeedback(w http.ResponseWriter, r *http.Request)
	CreateFeedback(w http.ResponseWriter, r *http.Request)
	UpdateFeedback(w http.ResponseWriter, r *http.Request)
	DeleteFeedback(w http.ResponseWriter, r *http.Request)

	Analytics(w http.ResponseWriter, r *http.Request)
}

type performanceHandlerImpl struct {
	performanceService performance.PerformanceService
}

func NewPerformanceHandler(performanceService performance.PerformanceService) PerformanceHandler {
	return &performanceHandlerImpl{performanceService: performanceService}
}

func performanceActor(identity session.Identity) performance.Actor {
	return performance.Actor{UserID: identity.UserID, EmployeeID: identity.EmployeeID()}
}

// listMine answers an empty list for accounts without an employee record.
func listMine[T any](w http.ResponseWriter, r *http.Request, list func(employeeID string) ([]T, error)) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}
	employeeID := identity.EmployeeID()
	if employeeID == nil {
		response.Success(w, []T{})
		return
	}

	items, err := list(*employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, items)
}

// ============= Reviews =============

func (h *performanceHandlerImpl) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.performanceService.ListReviews(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, reviews)
}

func (h *performanceHandlerImpl) GetMyReviews(w http.ResponseWriter, r *http.Request) {
	listMine(w, r, func(employeeID string) ([]performance.Review, error) {
		return h.performanceService.ListMyReviews(r.Context(), employeeID)
	})
}

func (h *performanceHandlerImpl) CreateReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}
	var req performance.CreateReviewRequest
	if !decodeAndValidate(w, r, "CreateReview", &req) {
		return
	}

	review, err := h.performanceService.CreateReview(r.Context(), performanceActor(identity), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Performance review created successfully", review)
}

func (h *performanceHandlerImpl) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Review")
	if !ok {
		return
	}
	var req performance.UpdateReviewRequest
	if !decodeAndValidate(w, r, "UpdateReview", &req) {
		return
	}

	review, err := h.performanceService.UpdateReview(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Performance review updated successfully", review)
}

func (h *performanceHandlerImpl) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Review")
	if !ok {
		return
	}
	if err := h.performanceService.DeleteReview(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Performance review deleted successfully", nil)
}

// ============= Goals =============

func (h *performanceHandlerImpl) ListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.performanceService.ListGoals(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, goals)
}

func (h *performanceHandlerImpl) GetMyGoals(w http.ResponseWriter, r *http.Request) {
	listMine(w, r, func(employeeID string) ([]performance.Goal, error) {
		return h.performanceService.ListMyGoals(r.Context(), employeeID)
	})
}

// CreateGoal lets employees set their own goals; only performance managers
// may set goals for someone else.
func (h *performanceHandlerImpl) CreateGoal(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}
	var req performance.CreateGoalRequest
	if !decodeAndValidate(w, r, "CreateGoal", &req) {
		return
	}
	if !user.HasPermission(identity.Role, user.PermissionPerformanceManage) {
		req.EmployeeID = identity.EmployeeID()
	}

	goal, err := h.performanceService.CreateGoal(r.Context(), performanceActor(identity), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Goal created successfully", goal)
}

func (h *performanceHandlerImpl) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Goal")
	if !ok {
		return
	}
	var req performance.UpdateGoalRequest
	if !decodeAndValidate(w, r, "UpdateGoal", &req) {
		return
	}

	goal, err := h.performanceService.UpdateGoal(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Goal updated successfully", goal)
}

func (h *performanceHandlerImpl) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Goal")
	if !ok {
		return
	}
	if err := h.performanceService.DeleteGoal(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Goal deleted successfully", nil)
}

// ============= Feedback =============

func (h *performanceHandlerImpl) ListFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.performanceService.ListFeedback(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, feedback)
}

func (h *performanceHandlerImpl) GetMyFeedback(w http.ResponseWriter, r *http.Request) {
	listMine(w, r, func(employeeID string) ([]performance.Feedback, error) {
		return h.performanceService.ListMyFeedback(r.Context(), employeeID)
	})
}

func (h *performanceHandlerImpl) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}
	var req performance.CreateFeedbackRequest
	if !decodeAndValidate(w, r, "CreateFeedback", &req) {
		return
	}

	feedback, err := h.performanceService.CreateFeedback(r.Context(), performanceActor(identity), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Feedback submitted successfully", feedback)
}

func (h *performanceHandlerImpl) UpdateFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Feedback")
	if !ok {
		return
	}
	var req performance.UpdateFeedbackRequest
	if !decodeAndValidate(w, r, "UpdateFeedback", &req) {
		return
	}

	feedback, err := h.performanceService.UpdateFeedback(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Feedback updated successfully", feedback)
}

func (h *performanceHandlerImpl) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "Feedback")
	if !ok {
		return
	}
	if err := h.performanceService.DeleteFeedback(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Feedback deleted successfully", nil)
}

// Analytics implements PerformanceHandler.
func (h *performanceHandlerImpl) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.performanceService.Analytics(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, analytics)
}
