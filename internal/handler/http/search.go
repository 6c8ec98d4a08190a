package http

import (
	"net/http"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/search"
	"github.com/cmlabs-hris/ems-backend-go/internal/handler/http/response"
)

type SearchHandler interface {
	Search(w http.ResponseWriter, r *http.Request)
	RecentSearches(w http.ResponseWriter, r *http.Request)
	SaveSearch(w http.ResponseWriter, r *http.Request)
	ClearRecentSearches(w http.ResponseWriter, r *http.Request)
}

type searchHandlerImpl struct {
	searchService search.Service
}

func NewSearchHandler(searchService search.Service) SearchHandler {
	return &searchHandlerImpl{searchService: searchService}
}

// Search implements SearchHandler.
func (h *searchHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	requester := search.Requester{UserID: identity.UserID, IsAdmin: identity.IsAdmin()}
	result, err := h.searchService.Search(r.Context(), requester, r.URL.Query().Get("q"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// RecentSearches implements SearchHandler.
func (h *searchHandlerImpl) RecentSearches(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	recent, err := h.searchService.RecentSearches(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, recent)
}

// SaveSearch implements SearchHandler.
func (h *searchHandlerImpl) SaveSearch(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}
	var req search.SaveRecentRequest
	if !decodeAndValidate(w, r, "SaveSearch", &req) {
		return
	}

	recent, err := h.searchService.SaveSearch(r.Context(), identity.UserID, req.Query)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, recent)
}

// ClearRecentSearches implements SearchHandler.
func (h *searchHandlerImpl) ClearRecentSearches(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(w, r)
	if !ok {
		return
	}

	if err := h.searchService.ClearRecentSearches(r.Context(), identity.UserID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Recent searches cleared", nil)
}
