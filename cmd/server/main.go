package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"livenzo-backend/internal/auth"
	"livenzo-backend/internal/cache"
	"livenzo-backend/internal/config"
	"livenzo-backend/internal/database"
	"livenzo-backend/internal/db"
	"livenzo-backend/internal/handlers"
	"livenzo-backend/internal/health"
	h "livenzo-backend/internal/http"
	"livenzo-backend/internal/middleware"
	"livenzo-backend/internal/repositories"
	"livenzo-backend/internal/services"
	"livenzo-backend/internal/storage"
	"livenzo-backend/internal/ws"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (dashboard queries hit the database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, "migrations")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool)
	jwtManager := auth.NewJWTManager(cfg)

	// Object storage for meter photos and payment proofs
	objectStore := storage.NewObjectStore(cfg)
	if objectStore == nil {
		log.Println("[Storage] Object storage not configured, photo uploads disabled")
	}

	// Push notifications
	fcmService := services.NewFCMService(cfg.FCM.CredentialsFile)
	if fcmService == nil {
		log.Println("[FCM] Not configured, push notifications disabled")
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	relationshipRepo := repositories.NewRelationshipRepository(pool)
	rentStatusRepo := repositories.NewRentStatusRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	manualPaymentRepo := repositories.NewManualPaymentRepository(pool)
	meterPhotoRepo := repositories.NewMeterPhotoRepository(pool)
	notificationRepo := repositories.NewNotificationRepository(pool)
	complaintRepo := repositories.NewComplaintRepository(pool)
	noticeRepo := repositories.NewNoticeRepository(pool)
	messageRepo := repositories.NewMessageRepository(pool)

	// Initialize services
	notificationService := services.NewNotificationService(notificationRepo, userRepo, fcmService)
	userService := services.NewUserService(userRepo, jwtManager)
	relationshipService := services.NewRelationshipService(relationshipRepo, userRepo, notificationService)
	rentStatusService := services.NewRentStatusService(rentStatusRepo, relationshipRepo, notificationService)
	paymentService := services.NewPaymentService(paymentRepo, manualPaymentRepo, relationshipRepo, userRepo, rentStatusService, notificationService)
	razorpayService := services.NewRazorpayService(
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.WebhookSecret,
		paymentRepo,
		relationshipRepo,
		rentStatusService,
		notificationService,
	)
	meterPhotoService := services.NewMeterPhotoService(meterPhotoRepo, relationshipRepo, objectStore)
	complaintService := services.NewComplaintService(complaintRepo, relationshipRepo, notificationService)
	noticeService := services.NewNoticeService(noticeRepo, relationshipRepo, notificationService)
	messageService := services.NewMessageService(messageRepo, relationshipRepo, notificationService)
	receiptService := services.NewReceiptService(paymentRepo, relationshipRepo, userRepo)

	// Chat rooms
	chatHub := ws.NewHub()

	// Initialize middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	authHandler := handlers.NewAuthHandler(userService)
	relationshipHandler := handlers.NewRelationshipHandler(relationshipService)
	rentStatusHandler := handlers.NewRentStatusHandler(rentStatusService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, receiptService)
	razorpayHandler := handlers.NewRazorpayHandler(razorpayService)
	meterPhotoHandler := handlers.NewMeterPhotoHandler(meterPhotoService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	complaintHandler := handlers.NewComplaintHandler(complaintService)
	noticeHandler := handlers.NewNoticeHandler(noticeService)
	messageHandler := handlers.NewMessageHandler(messageService)
	chatWSHandler := handlers.NewChatWSHandler(chatHub, jwtManager, messageService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		authHandler,
		relationshipHandler,
		rentStatusHandler,
		paymentHandler,
		razorpayHandler,
		meterPhotoHandler,
		notificationHandler,
		complaintHandler,
		noticeHandler,
		messageHandler,
		chatWSHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
