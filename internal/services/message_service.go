package services

import (
	"context"
	"fmt"
	"log"

	"livenzo-backend/internal/models"
	"livenzo-backend/internal/repositories"
)

// MessageService persists chat messages; real-time delivery goes through the
// WebSocket hub, offline delivery through notifications.
type MessageService struct {
	messageRepo *repositories.MessageRepository
	relRepo     *repositories.RelationshipRepository
	notifier    Notifier
}

func NewMessageService(
	messageRepo *repositories.MessageRepository,
	relRepo *repositories.RelationshipRepository,
	notifier Notifier,
) *MessageService {
	return &MessageService{messageRepo: messageRepo, relRepo: relRepo, notifier: notifier}
}

// Authorize checks the sender belongs to an accepted relationship and returns it.
func (s *MessageService) Authorize(ctx context.Context, userID, relationshipID string) (*models.Relationship, error) {
	rel, err := s.relRepo.Get(ctx, relationshipID)
	if err != nil {
		return nil, err
	}
	if rel.OwnerID != userID && rel.RenterID != userID {
		return nil, ErrNotAuthorized
	}
	if rel.Status != models.RelationshipAccepted {
		return nil, ErrRelationshipInactive
	}
	return rel, nil
}

// Send persists the message and notifies the other party. The WebSocket
// broadcast happens at the connection layer; notified recipients who are in
// the room simply see both.
func (s *MessageService) Send(ctx context.Context, senderID, relationshipID, body string) (*models.Message, error) {
	if body == "" {
		return nil, fmt.Errorf("message body is empty")
	}

	rel, err := s.Authorize(ctx, senderID, relationshipID)
	if err != nil {
		return nil, err
	}

	m := &models.Message{
		RelationshipID: relationshipID,
		SenderID:       senderID,
		Body:           body,
	}
	if err := s.messageRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	recipient := rel.OwnerID
	if senderID == rel.OwnerID {
		recipient = rel.RenterID
	}
	err = s.notifier.Notify(ctx, recipient, models.NotificationNewMessage,
		"New message",
		body,
		map[string]string{"relationship_id": relationshipID, "message_id": m.ID})
	if err != nil {
		log.Printf("[Message] Failed to notify %s: %v", recipient, err)
	}

	return m, nil
}

func (s *MessageService) List(ctx context.Context, userID, relationshipID string, limit int) ([]*models.Message, error) {
	if _, err := s.Authorize(ctx, userID, relationshipID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListByRelationship(ctx, relationshipID, limit)
}

func (s *MessageService) MarkRead(ctx context.Context, userID, relationshipID string) error {
	if _, err := s.Authorize(ctx, userID, relationshipID); err != nil {
		return err
	}
	return s.messageRepo.MarkRead(ctx, relationshipID, userID)
}
