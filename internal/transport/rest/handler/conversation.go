package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"aligniq/internal/model"
	"aligniq/internal/scoring"
	"aligniq/internal/service"
	"aligniq/internal/transport/rest/middleware"
)

// ConversationHandler handles conversation endpoints
type ConversationHandler struct {
	convSvc *service.ConversationService
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(convSvc *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{convSvc: convSvc}
}

// SubmitResponseRequest is the request body for answering a question
type SubmitResponseRequest struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
}

// OverrideRecommendationRequest is the request body for the admin override
type OverrideRecommendationRequest struct {
	Category model.Category `json:"category"`
}

// Start handles POST /v1/conversations
func (h *ConversationHandler) Start(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetRepID(r.Context()) // empty for the surgeon-alone flow

	state, err := h.convSvc.Start(r.Context(), ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, state)
}

// Get handles GET /v1/conversations/{id}
func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	state, err := h.convSvc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// List handles GET /v1/conversations (rep only)
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	repID := middleware.GetRepID(r.Context())
	if repID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	convs, err := h.convSvc.ListByOwner(r.Context(), repID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"conversations": convs})
}

// SubmitResponse handles POST /v1/conversations/{id}/responses
func (h *ConversationHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req SubmitResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QuestionID == "" || req.OptionID == "" {
		writeError(w, http.StatusBadRequest, "questionId and optionId are required")
		return
	}

	state, err := h.convSvc.Submit(r.Context(), id, req.QuestionID, req.OptionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// Complete handles POST /v1/conversations/{id}/complete. The force query
// parameter is the explicit early-completion override and only honored for
// authenticated reps.
func (h *ConversationHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	force := r.URL.Query().Get("force") == "true" && middleware.GetRepID(r.Context()) != ""

	state, err := h.convSvc.Complete(r.Context(), id, force)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// Restart handles POST /v1/conversations/{id}/restart
func (h *ConversationHandler) Restart(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	state, err := h.convSvc.Restart(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// Abandon handles POST /v1/conversations/{id}/abandon (rep only)
func (h *ConversationHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	state, err := h.convSvc.Abandon(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// GetRecommendation handles GET /v1/conversations/{id}/recommendation
func (h *ConversationHandler) GetRecommendation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	state, err := h.convSvc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if state.Conversation.Status != model.ConversationCompleted {
		writeError(w, http.StatusConflict, "conversation is not completed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"recommended": state.Conversation.Recommended,
		"totals":      state.Totals,
		"maxima":      state.Maxima,
	})
}

// OverrideRecommendation handles PUT /v1/conversations/{id}/recommendation (rep only)
func (h *ConversationHandler) OverrideRecommendation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req OverrideRecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.convSvc.OverrideRecommendation(r.Context(), id, req.Category)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// GetSnapshot handles GET /v1/conversations/{id}/snapshot, the cheap cached
// view the live chart polls between websocket pushes.
func (h *ConversationHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	snap, err := h.convSvc.GetSnapshot(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// writeServiceError maps the service error taxonomy to HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, scoring.ErrInvalidResponse):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidState):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrIncompleteConversation):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
