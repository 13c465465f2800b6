package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"livenzo-backend/internal/handlers"
	"livenzo-backend/internal/middleware"
	"livenzo-backend/internal/models"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	relationshipHandler *handlers.RelationshipHandler,
	rentStatusHandler *handlers.RentStatusHandler,
	paymentHandler *handlers.PaymentHandler,
	razorpayHandler *handlers.RazorpayHandler,
	meterPhotoHandler *handlers.MeterPhotoHandler,
	notificationHandler *handlers.NotificationHandler,
	complaintHandler *handlers.ComplaintHandler,
	noticeHandler *handlers.NoticeHandler,
	messageHandler *handlers.MessageHandler,
	chatWSHandler *handlers.ChatWSHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Health and metrics
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.HealthDetailed).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Public API routes - Authentication
	r.HandleFunc("/api/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Webhooks authenticate by signature, not by bearer token
	r.HandleFunc("/api/webhooks/razorpay", razorpayHandler.Webhook).Methods("POST")

	// WebSocket chat (token in query string)
	r.HandleFunc("/ws/chat/{id}", chatWSHandler.Serve).Methods("GET")

	owner := authMiddleware.RequireRole(models.RoleOwner)
	renter := authMiddleware.RequireRole(models.RoleRenter)

	// Protected API routes - Account
	authAPI := r.PathPrefix("/api/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/me", authHandler.Me).Methods("GET")
	authAPI.HandleFunc("/fcm-token", authHandler.UpdateFCMToken).Methods("PUT")
	authAPI.HandleFunc("/upi", owner(http.HandlerFunc(authHandler.UpdateUpi)).ServeHTTP).Methods("PUT")

	// Protected API routes - Relationships
	relAPI := r.PathPrefix("/api/relationships").Subrouter()
	relAPI.Use(authMiddleware.Authenticate)
	relAPI.HandleFunc("", relationshipHandler.List).Methods("GET")
	relAPI.HandleFunc("/connect", renter(http.HandlerFunc(relationshipHandler.Connect)).ServeHTTP).Methods("POST")
	relAPI.HandleFunc("/active-renters", owner(http.HandlerFunc(relationshipHandler.ActiveRenters)).ServeHTTP).Methods("GET")
	relAPI.HandleFunc("/{id}", relationshipHandler.Get).Methods("GET")
	relAPI.HandleFunc("/{id}/respond", owner(http.HandlerFunc(relationshipHandler.Respond)).ServeHTTP).Methods("POST")
	relAPI.HandleFunc("/{id}/end", relationshipHandler.End).Methods("POST")

	// Protected API routes - Rent status
	rentAPI := r.PathPrefix("/api/rent-status").Subrouter()
	rentAPI.Use(authMiddleware.Authenticate)
	rentAPI.HandleFunc("/relationship/{id}", rentStatusHandler.Current).Methods("GET")
	rentAPI.HandleFunc("/relationship/{id}/history", rentStatusHandler.History).Methods("GET")
	rentAPI.HandleFunc("/relationship/{id}/rent", owner(http.HandlerFunc(rentStatusHandler.SetRent)).ServeHTTP).Methods("PUT")
	rentAPI.HandleFunc("/relationship/{id}/transition", rentStatusHandler.Transition).Methods("POST")
	rentAPI.HandleFunc("/relationship/{id}/swipe", owner(http.HandlerFunc(rentStatusHandler.Swipe)).ServeHTTP).Methods("POST")

	// Protected API routes - Payments
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate)
	paymentsAPI.HandleFunc("/upi-intent", renter(http.HandlerFunc(paymentHandler.UpiIntent)).ServeHTTP).Methods("POST")
	paymentsAPI.HandleFunc("/proofs", renter(http.HandlerFunc(paymentHandler.SubmitProof)).ServeHTTP).Methods("POST")
	paymentsAPI.HandleFunc("/proofs/pending", owner(http.HandlerFunc(paymentHandler.PendingProofs)).ServeHTTP).Methods("GET")
	paymentsAPI.HandleFunc("/proofs/{id}/review", owner(http.HandlerFunc(paymentHandler.ReviewProof)).ServeHTTP).Methods("POST")
	paymentsAPI.HandleFunc("/razorpay/status", razorpayHandler.Status).Methods("GET")
	paymentsAPI.HandleFunc("/razorpay/orders", renter(http.HandlerFunc(razorpayHandler.CreateOrder)).ServeHTTP).Methods("POST")
	paymentsAPI.HandleFunc("/razorpay/verify", renter(http.HandlerFunc(razorpayHandler.VerifyPayment)).ServeHTTP).Methods("POST")
	paymentsAPI.HandleFunc("/relationship/{id}", paymentHandler.History).Methods("GET")
	paymentsAPI.HandleFunc("/relationship/{id}/owner-entry", owner(http.HandlerFunc(paymentHandler.OwnerEntry)).ServeHTTP).Methods("POST")
	paymentsAPI.HandleFunc("/relationship/{id}/receipt", paymentHandler.Receipt).Methods("GET")

	// Protected API routes - Meter photos
	photosAPI := r.PathPrefix("/api/meter-photos").Subrouter()
	photosAPI.Use(authMiddleware.Authenticate)
	photosAPI.HandleFunc("/relationship/{id}", renter(http.HandlerFunc(meterPhotoHandler.Upload)).ServeHTTP).Methods("POST")
	photosAPI.HandleFunc("/relationship/{id}", meterPhotoHandler.List).Methods("GET")

	// Protected API routes - Notifications
	notifAPI := r.PathPrefix("/api/notifications").Subrouter()
	notifAPI.Use(authMiddleware.Authenticate)
	notifAPI.HandleFunc("", notificationHandler.List).Methods("GET")
	notifAPI.HandleFunc("/unread-count", notificationHandler.UnreadCount).Methods("GET")
	notifAPI.HandleFunc("/read-all", notificationHandler.MarkAllRead).Methods("POST")
	notifAPI.HandleFunc("/{id}/read", notificationHandler.MarkRead).Methods("POST")

	// Protected API routes - Complaints
	complaintsAPI := r.PathPrefix("/api/complaints").Subrouter()
	complaintsAPI.Use(authMiddleware.Authenticate)
	complaintsAPI.HandleFunc("", complaintHandler.List).Methods("GET")
	complaintsAPI.HandleFunc("", renter(http.HandlerFunc(complaintHandler.Create)).ServeHTTP).Methods("POST")
	complaintsAPI.HandleFunc("/{id}/status", owner(http.HandlerFunc(complaintHandler.UpdateStatus)).ServeHTTP).Methods("PUT")

	// Protected API routes - Notices
	noticesAPI := r.PathPrefix("/api/notices").Subrouter()
	noticesAPI.Use(authMiddleware.Authenticate)
	noticesAPI.HandleFunc("", owner(http.HandlerFunc(noticeHandler.Post)).ServeHTTP).Methods("POST")
	noticesAPI.HandleFunc("/relationship/{id}", noticeHandler.List).Methods("GET")

	// Protected API routes - Messages
	messagesAPI := r.PathPrefix("/api/messages").Subrouter()
	messagesAPI.Use(authMiddleware.Authenticate)
	messagesAPI.HandleFunc("/relationship/{id}", messageHandler.List).Methods("GET")
	messagesAPI.HandleFunc("/relationship/{id}", messageHandler.Send).Methods("POST")
	messagesAPI.HandleFunc("/relationship/{id}/read", messageHandler.MarkRead).Methods("POST")

	return r
}
