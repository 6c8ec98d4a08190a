package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/ems-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/bulk"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// validatable is implemented by every request DTO.
type validatable interface {
	Validate() error
}

// decodeAndValidate reads the JSON body into req and validates it. It writes
// the error response itself and reports whether the handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, op string, req validatable) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	if err := req.Validate(); err != nil {
		slog.Warn(op+" validate error", "error", err)
		response.HandleError(w, err)
		return false
	}
	return true
}

// identityFrom returns the identity placed by the session middleware.
func identityFrom(w http.ResponseWriter, r *http.Request) (session.Identity, bool) {
	identity, ok := session.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, session.ErrNotAuthenticated.Error())
		return session.Identity{}, false
	}
	return identity, true
}

// idParam returns the {id} URL parameter when it is a UUID.
func idParam(w http.ResponseWriter, r *http.Request, label string) (string, bool) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, label+" ID is invalid", nil)
		return "", false
	}
	return id, true
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}

// bulkDelete selects the ids of the request body and deletes them with fn.
func bulkDelete(w http.ResponseWriter, r *http.Request, noun string, fn bulk.DeleteFunc) {
	var req bulk.DeleteRequest
	if !decodeAndValidate(w, r, "BulkDelete "+noun, &req) {
		return
	}

	message, err := bulk.NewSelection(req.IDs...).Delete(r.Context(), noun, fn)
	if err != nil {
		slog.Error("Bulk delete failed", "noun", noun, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, message, nil)
}
