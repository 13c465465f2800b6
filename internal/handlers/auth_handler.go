package handlers

import (
	"encoding/json"
	"net/http"

	"livenzo-backend/internal/middleware"
	"livenzo-backend/internal/models"
	"livenzo-backend/internal/services"
	"livenzo-backend/pkg/utils"
)

type AuthHandler struct {
	Service *services.UserService
}

func NewAuthHandler(s *services.UserService) *AuthHandler {
	return &AuthHandler{Service: s}
}

// Signup registers a new owner or renter
// POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Service.Signup(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, resp)
}

// Login authenticates a user and returns a JWT
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

// Me returns the authenticated user's profile
// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	user, err := h.Service.Get(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "User not found")
		return
	}

	utils.JSON(w, http.StatusOK, user)
}

// UpdateFCMToken stores the device push token
// PUT /api/auth/fcm-token
func (h *AuthHandler) UpdateFCMToken(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.UpdateFCMTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.UpdateFCMToken(r.Context(), userID, req.FCMToken); err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// UpdateUpi sets the owner's UPI collection address
// PUT /api/auth/upi
func (h *AuthHandler) UpdateUpi(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.UpdateUpiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.UpdateUpiID(r.Context(), userID, req.UpiID); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
