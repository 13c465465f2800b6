package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"livenzo-backend/internal/middleware"
	"livenzo-backend/internal/models"
	"livenzo-backend/internal/services"
	"livenzo-backend/pkg/utils"
)

type MessageHandler struct {
	Service *services.MessageService
}

func NewMessageHandler(s *services.MessageService) *MessageHandler {
	return &MessageHandler{Service: s}
}

// List returns a relationship's chat history, newest first
// GET /api/messages/relationship/{id}?limit=N
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	relationshipID := mux.Vars(r)["id"]
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	messages, err := h.Service.List(r.Context(), userID, relationshipID, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if messages == nil {
		messages = []*models.Message{}
	}

	utils.JSON(w, http.StatusOK, messages)
}

// Send posts a message over REST, for clients without a live socket
// POST /api/messages/relationship/{id}
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	relationshipID := mux.Vars(r)["id"]

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	m, err := h.Service.Send(r.Context(), userID, relationshipID, req.Body)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, m)
}

// MarkRead flags the other party's messages as read
// POST /api/messages/relationship/{id}/read
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	relationshipID := mux.Vars(r)["id"]

	if err := h.Service.MarkRead(r.Context(), userID, relationshipID); err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "read"})
}
