package conversation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/brightdoor/realty-ai-platform/internal/leads"
	"github.com/brightdoor/realty-ai-platform/pkg/logging"
)

// Handler exposes the chat pipeline over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a conversation handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if service == nil {
		panic("conversation: service is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// MessageRequest is the body of POST /message.
type MessageRequest struct {
	Message string  `json:"message"`
	UserID  string  `json:"userId"`
	UISize  *UISize `json:"uiSize,omitempty"`
}

// MessageResponse is the reply payload for POST /message.
type MessageResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	UserID   string `json:"userId"`
	Warning  string `json:"warning,omitempty"`
}

// HistoryResponse is the payload for GET /history/{userID}.
type HistoryResponse struct {
	Success bool         `json:"success"`
	History []leads.Turn `json:"history"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HandleMessage handles POST /message.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		h.respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	result, err := h.service.ProcessMessage(r.Context(), ProcessInput{
		LeadID:  req.UserID,
		Message: req.Message,
		UISize:  req.UISize,
	})
	if err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			h.logger.Error("lead store unavailable", "error", err)
			h.respondError(w, http.StatusServiceUnavailable, "conversation store is unavailable, please retry shortly")
			return
		}
		h.logger.Error("failed to process message", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	h.respondJSON(w, http.StatusOK, MessageResponse{
		Success:  true,
		Response: result.Reply,
		UserID:   result.LeadID,
		Warning:  result.Warning,
	})
}

// HandleHistory handles GET /history/{userID}.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		h.respondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	history, err := h.service.History(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, leads.ErrLeadNotFound):
			h.respondError(w, http.StatusNotFound, "lead not found")
		case errors.Is(err, ErrStoreUnavailable):
			h.logger.Error("lead store unavailable", "error", err)
			h.respondError(w, http.StatusServiceUnavailable, "conversation store is unavailable, please retry shortly")
		default:
			h.logger.Error("failed to load history", "user_id", userID, "error", err)
			h.respondError(w, http.StatusInternalServerError, "failed to load history")
		}
		return
	}

	if history == nil {
		history = []leads.Turn{}
	}
	h.respondJSON(w, http.StatusOK, HistoryResponse{Success: true, History: history})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, errorResponse{Success: false, Error: msg})
}
