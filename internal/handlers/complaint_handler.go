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

type ComplaintHandler struct {
	Service *services.ComplaintService
}

func NewComplaintHandler(s *services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{Service: s}
}

// Create files a renter complaint
// POST /api/complaints
func (h *ComplaintHandler) Create(w http.ResponseWriter, r *http.Request) {
	renterID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.CreateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	complaint, err := h.Service.Create(r.Context(), renterID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, complaint)
}

// UpdateStatus moves a complaint along its lifecycle
// PUT /api/complaints/{id}/status
func (h *ComplaintHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetUserIDFromContext(r.Context())
	complaintID := mux.Vars(r)["id"]

	var req models.UpdateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	complaint, err := h.Service.UpdateStatus(r.Context(), ownerID, complaintID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, complaint)
}

// List returns the caller's complaints, filed or received
// GET /api/complaints
func (h *ComplaintHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	complaints, err := h.Service.ListForUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if complaints == nil {
		complaints = []*models.Complaint{}
	}

	utils.JSON(w, http.StatusOK, complaints)
}
