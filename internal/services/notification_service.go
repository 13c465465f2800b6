package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"livenzo-backend/internal/models"
	"livenzo-backend/internal/repositories"
)

// NotificationService persists in-app notifications and mirrors them to FCM.
// Push delivery is best effort: an FCM failure never fails the caller.
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	userRepo         *repositories.UserRepository
	fcm              *FCMService
}

func NewNotificationService(
	notificationRepo *repositories.NotificationRepository,
	userRepo *repositories.UserRepository,
	fcm *FCMService,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		fcm:              fcm,
	}
}

// Notify stores the notification and dispatches the push in the background.
// The caller's request finishes without waiting on Firebase.
func (s *NotificationService) Notify(ctx context.Context, recipientID, notifType, title, body string, data map[string]string) error {
	payload := ""
	if len(data) > 0 {
		if b, err := json.Marshal(data); err == nil {
			payload = string(b)
		}
	}

	n := &models.Notification{
		RecipientID: recipientID,
		Type:        notifType,
		Title:       title,
		Body:        body,
		Data:        payload,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return err
	}

	push := pushData(data, notifType)
	go func() {
		pushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := s.userRepo.Get(pushCtx, recipientID)
		if err != nil {
			log.Printf("[Notification] Failed to load recipient %s: %v", recipientID, err)
			return
		}
		_ = s.fcm.Send(pushCtx, user.FCMToken, title, body, push)
	}()

	return nil
}

// pushData builds the FCM data payload. The caller's map is copied, not
// mutated; it may still be in use when the push goroutine runs.
func pushData(data map[string]string, notifType string) map[string]string {
	push := make(map[string]string, len(data)+1)
	for k, v := range data {
		push[k] = v
	}
	push["type"] = notifType
	return push
}

func (s *NotificationService) List(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	return s.notificationRepo.ListForUser(ctx, userID, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.notificationRepo.MarkRead(ctx, userID, notificationID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.notificationRepo.UnreadCount(ctx, userID)
}
