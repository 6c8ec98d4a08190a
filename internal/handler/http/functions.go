package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/chat"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/ems-backend-go/internal/handler/http/response"
)

// FunctionsHandler serves the endpoints that answer bare JSON bodies instead
// of the response envelope.
type FunctionsHandler interface {
	ChatWithAI(w http.ResponseWriter, r *http.Request)
	AttendanceNotifications(w http.ResponseWriter, r *http.Request)
}

type functionsHandlerImpl struct {
	chatService chat.Service
	generator   notification.Generator
}

func NewFunctionsHandler(chatService chat.Service, generator notification.Generator) FunctionsHandler {
	return &functionsHandlerImpl{chatService: chatService, generator: generator}
}

type errorBody struct {
	Error string `json:"error"`
	// GeneratedText carries chat.FallbackReply when the assistant fails.
	GeneratedText string `json:"generatedText,omitempty"`
}

// ChatWithAI implements FunctionsHandler.
func (h *functionsHandlerImpl) ChatWithAI(w http.ResponseWriter, r *http.Request) {
	var req chat.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.JSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request format"})
		return
	}
	if err := req.Validate(); err != nil {
		response.JSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	reply, err := h.chatService.Complete(r.Context(), req)
	if err != nil {
		slog.Error("Chat completion failed", "error", err)
		response.JSON(w, http.StatusInternalServerError, errorBody{Error: err.Error(), GeneratedText: chat.FallbackReply})
		return
	}
	response.JSON(w, http.StatusOK, reply)
}

// AttendanceNotifications implements FunctionsHandler.
func (h *functionsHandlerImpl) AttendanceNotifications(w http.ResponseWriter, r *http.Request) {
	var req notification.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.JSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request format"})
		return
	}
	if err := req.Validate(); err != nil {
		response.JSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	result, err := h.generator.Generate(r.Context(), req)
	switch {
	case errors.Is(err, notification.ErrInvalidNotificationType):
		response.JSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case err != nil:
		slog.Error("Attendance notification run failed", "type", req.Type, "error", err)
		response.JSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
	default:
		response.JSON(w, http.StatusOK, result)
	}
}
