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

type RelationshipHandler struct {
	Service *services.RelationshipService
}

func NewRelationshipHandler(s *services.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{Service: s}
}

// Connect sends a renter's connection request to an owner
// POST /api/relationships/connect
func (h *RelationshipHandler) Connect(w http.ResponseWriter, r *http.Request) {
	renterID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rel, err := h.Service.Connect(r.Context(), renterID, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, rel)
}

// Respond accepts or declines a pending request
// POST /api/relationships/{id}/respond
func (h *RelationshipHandler) Respond(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetUserIDFromContext(r.Context())
	relationshipID := mux.Vars(r)["id"]

	var req struct {
		Accept bool `json:"accept"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rel, err := h.Service.Respond(r.Context(), ownerID, relationshipID, req.Accept)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, rel)
}

// End closes an accepted relationship
// POST /api/relationships/{id}/end
func (h *RelationshipHandler) End(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	relationshipID := mux.Vars(r)["id"]

	if err := h.Service.End(r.Context(), userID, relationshipID); err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": models.RelationshipEnded})
}

// Get returns one relationship the caller is a party to
// GET /api/relationships/{id}
func (h *RelationshipHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	relationshipID := mux.Vars(r)["id"]

	rel, err := h.Service.Get(r.Context(), userID, relationshipID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, rel)
}

// List returns the caller's relationships
// GET /api/relationships
func (h *RelationshipHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())

	rels, err := h.Service.ListForUser(r.Context(), userID, role)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, rels)
}

// ActiveRenters is the owner dashboard: accepted renters with this month's status
// GET /api/relationships/active-renters
func (h *RelationshipHandler) ActiveRenters(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetUserIDFromContext(r.Context())

	renters, err := h.Service.ActiveRenters(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if renters == nil {
		renters = []*models.ActiveRenter{}
	}

	utils.JSON(w, http.StatusOK, renters)
}
