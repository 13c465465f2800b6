package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"livenzo-backend/internal/middleware"
	"livenzo-backend/internal/models"
	"livenzo-backend/internal/services"
	"livenzo-backend/pkg/utils"
)

type NoticeHandler struct {
	Service *services.NoticeService
}

func NewNoticeHandler(s *services.NoticeService) *NoticeHandler {
	return &NoticeHandler{Service: s}
}

// Post publishes an owner notice to the renter
// POST /api/notices
func (h *NoticeHandler) Post(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.CreateNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	notice, err := h.Service.Post(r.Context(), ownerID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, notice)
}

// List returns the notices of a relationship
// GET /api/notices/relationship/{id}
func (h *NoticeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	relationshipID := mux.Vars(r)["id"]

	notices, err := h.Service.List(r.Context(), userID, relationshipID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if notices == nil {
		notices = []*models.Notice{}
	}

	utils.JSON(w, http.StatusOK, notices)
}
