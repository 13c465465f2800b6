package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"livenzo-backend/internal/middleware"
	"livenzo-backend/internal/models"
	"livenzo-backend/internal/services"
	"livenzo-backend/pkg/utils"
)

type PaymentHandler struct {
	Service        *services.PaymentService
	ReceiptService *services.ReceiptService
}

func NewPaymentHandler(service *services.PaymentService, receiptService *services.ReceiptService) *PaymentHandler {
	return &PaymentHandler{Service: service, ReceiptService: receiptService}
}

// UpiIntent builds the upi://pay deep link for the month's total
// POST /api/payments/upi-intent
func (h *PaymentHandler) UpiIntent(w http.ResponseWriter, r *http.Request) {
	renterID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.UpiIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Service.UpiIntent(r.Context(), renterID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

// SubmitProof records renter evidence of an out-of-band payment
// POST /api/payments/proofs
func (h *PaymentHandler) SubmitProof(w http.ResponseWriter, r *http.Request) {
	renterID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.SubmitProofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	proof, err := h.Service.SubmitProof(r.Context(), renterID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, proof)
}

// ReviewProof applies the owner's verdict on a submitted proof
// POST /api/payments/proofs/{id}/review
func (h *PaymentHandler) ReviewProof(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetUserIDFromContext(r.Context())
	proofID := mux.Vars(r)["id"]

	var req models.ReviewProofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	proof, err := h.Service.ReviewProof(r.Context(), ownerID, proofID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, proof)
}

// PendingProofs lists proofs waiting on the owner
// GET /api/payments/proofs/pending
func (h *PaymentHandler) PendingProofs(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetUserIDFromContext(r.Context())

	proofs, err := h.Service.ListPendingProofs(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if proofs == nil {
		proofs = []*models.ManualPaymentProof{}
	}

	utils.JSON(w, http.StatusOK, proofs)
}

// OwnerEntry logs a payment collected offline and marks the month paid
// POST /api/payments/relationship/{id}/owner-entry
func (h *PaymentHandler) OwnerEntry(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := middleware.GetUserIDFromContext(r.Context())
	relationshipID := mux.Vars(r)["id"]

	var req struct {
		ElectricBillAmount float64 `json:"electric_bill_amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.Service.RecordOwnerEntry(r.Context(), ownerID, relationshipID, req.ElectricBillAmount)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, record)
}

// History lists the payment records of a relationship
// GET /api/payments/relationship/{id}
func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	relationshipID := mux.Vars(r)["id"]

	payments, err := h.Service.History(r.Context(), userID, relationshipID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if payments == nil {
		payments = []*models.PaymentRecord{}
	}

	utils.JSON(w, http.StatusOK, payments)
}

// Receipt downloads the PDF receipt of a paid month
// GET /api/payments/relationship/{id}/receipt?month=YYYY-MM
func (h *PaymentHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	relationshipID := mux.Vars(r)["id"]
	billingMonth := r.URL.Query().Get("month")

	pdf, err := h.ReceiptService.Generate(r.Context(), userID, relationshipID, billingMonth)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=rent-receipt-%s.pdf", billingMonth))
	w.Write(pdf)
}
