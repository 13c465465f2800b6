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

type RentStatusHandler struct {
	Service *services.RentStatusService
}

func NewRentStatusHandler(s *services.RentStatusService) *RentStatusHandler {
	return &RentStatusHandler{Service: s}
}

// Current returns the rent status for a billing month (current by default)
// GET /api/rent-status/relationship/{id}?month=YYYY-MM
func (h *RentStatusHandler) Current(w http.ResponseWriter, r *http.Request) {
	relationshipID := mux.Vars(r)["id"]

	billingMonth := r.URL.Query().Get("month")
	if billingMonth == "" {
		billingMonth = models.CurrentBillingMonth()
	} else {
		var err error
		if billingMonth, err = models.ParseBillingMonth(billingMonth); err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	rs, err := h.Service.Current(r.Context(), relationshipID, billingMonth)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, rs)
}

// History lists every recorded billing month for a relationship
// GET /api/rent-status/relationship/{id}/history
func (h *RentStatusHandler) History(w http.ResponseWriter, r *http.Request) {
	relationshipID := mux.Vars(r)["id"]

	statuses, err := h.Service.History(r.Context(), relationshipID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if statuses == nil {
		statuses = []*models.RentStatus{}
	}

	utils.JSON(w, http.StatusOK, statuses)
}

// SetRent records the owner's monthly rent amount
// PUT /api/rent-status/relationship/{id}/rent
func (h *RentStatusHandler) SetRent(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetUserIDFromContext(r.Context())
	relationshipID := mux.Vars(r)["id"]

	var req models.SetMonthlyRentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rs, err := h.Service.SetMonthlyRent(r.Context(), ownerID, relationshipID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, rs)
}

// Transition applies an explicit mark-paid or mark-unpaid action
// POST /api/rent-status/relationship/{id}/transition
func (h *RentStatusHandler) Transition(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	relationshipID := mux.Vars(r)["id"]

	var req models.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Action != models.ActionMarkPaid && req.Action != models.ActionMarkUnpaid {
		utils.Error(w, http.StatusBadRequest, "action must be paid or unpaid")
		return
	}

	rs, err := h.Service.Transition(r.Context(), userID, relationshipID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, rs)
}

// Swipe interprets a released owner drag gesture
// POST /api/rent-status/relationship/{id}/swipe
func (h *RentStatusHandler) Swipe(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetUserIDFromContext(r.Context())
	relationshipID := mux.Vars(r)["id"]

	var req models.SwipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.Service.Swipe(r.Context(), ownerID, relationshipID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, result)
}
