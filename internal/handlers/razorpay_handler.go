package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"livenzo-backend/internal/middleware"
	"livenzo-backend/internal/models"
	"livenzo-backend/internal/services"
	"livenzo-backend/pkg/utils"
)

type RazorpayHandler struct {
	Service *services.RazorpayService
}

func NewRazorpayHandler(service *services.RazorpayService) *RazorpayHandler {
	return &RazorpayHandler{Service: service}
}

// Status reports whether hosted checkout is available
// GET /api/payments/razorpay/status
func (h *RazorpayHandler) Status(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]bool{"enabled": h.Service.IsEnabled()})
}

// CreateOrder creates a checkout order for the month's total
// POST /api/payments/razorpay/orders
func (h *RazorpayHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	renterID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RelationshipID == "" {
		utils.Error(w, http.StatusBadRequest, "relationship_id is required")
		return
	}

	resp, err := h.Service.CreateOrder(r.Context(), renterID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, resp)
}

// VerifyPayment settles a payment from the checkout callback
// POST /api/payments/razorpay/verify
func (h *RazorpayHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	renterID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		utils.Error(w, http.StatusBadRequest, "order id, payment id and signature are required")
		return
	}

	record, err := h.Service.VerifyPayment(r.Context(), renterID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, record)
}

// Webhook processes Razorpay server-to-server events
// POST /api/webhooks/razorpay
func (h *RazorpayHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Failed to read body")
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if !h.Service.VerifyWebhookSignature(body, signature) {
		log.Printf("[Razorpay] Webhook signature verification failed")
		utils.Error(w, http.StatusUnauthorized, "Invalid webhook signature")
		return
	}

	var event struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid webhook payload")
		return
	}

	if err := h.Service.ProcessWebhook(r.Context(), event.Event, event.Payload); err != nil {
		log.Printf("[Razorpay] Webhook processing error: %v", err)
		// 200 regardless; Razorpay retries on non-2xx and the handlers
		// are idempotent, but a permanent failure should not retry forever.
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
