package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"livenzo-backend/internal/middleware"
	"livenzo-backend/internal/models"
	"livenzo-backend/internal/services"
	"livenzo-backend/pkg/utils"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

func NewNotificationHandler(s *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: s}
}

// List returns the caller's notifications, newest first
// GET /api/notifications?limit=N
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	notifications, err := h.Service.List(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if notifications == nil {
		notifications = []*models.Notification{}
	}

	utils.JSON(w, http.StatusOK, notifications)
}

// MarkRead flags one notification as read
// POST /api/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	notificationID := mux.Vars(r)["id"]

	if err := h.Service.MarkRead(r.Context(), userID, notificationID); err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// MarkAllRead flags every unread notification as read
// POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.Service.MarkAllRead(r.Context(), userID); err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// UnreadCount returns the badge count
// GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	count, err := h.Service.UnreadCount(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]int{"count": count})
}
