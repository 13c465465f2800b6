package services

import (
	"context"
	"fmt"
	"log"

	"livenzo-backend/internal/models"
	"livenzo-backend/internal/repositories"
)

type NoticeService struct {
	noticeRepo *repositories.NoticeRepository
	relRepo    *repositories.RelationshipRepository
	notifier   Notifier
}

func NewNoticeService(
	noticeRepo *repositories.NoticeRepository,
	relRepo *repositories.RelationshipRepository,
	notifier Notifier,
) *NoticeService {
	return &NoticeService{noticeRepo: noticeRepo, relRepo: relRepo, notifier: notifier}
}

// Post publishes an owner notice to the renter.
func (s *NoticeService) Post(ctx context.Context, ownerID string, req *models.CreateNoticeRequest) (*models.Notice, error) {
	if req.Title == "" || req.Body == "" {
		return nil, fmt.Errorf("title and body are required")
	}

	rel, err := s.relRepo.Get(ctx, req.RelationshipID)
	if err != nil {
		return nil, err
	}
	if rel.OwnerID != ownerID {
		return nil, ErrNotAuthorized
	}
	if rel.Status != models.RelationshipAccepted {
		return nil, ErrRelationshipInactive
	}

	n := &models.Notice{
		RelationshipID: rel.ID,
		OwnerID:        ownerID,
		RenterID:       rel.RenterID,
		Title:          req.Title,
		Body:           req.Body,
	}
	if err := s.noticeRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	err = s.notifier.Notify(ctx, rel.RenterID, models.NotificationNoticePosted,
		req.Title,
		req.Body,
		map[string]string{"notice_id": n.ID, "relationship_id": rel.ID})
	if err != nil {
		log.Printf("[Notice] Failed to notify renter %s: %v", rel.RenterID, err)
	}

	return n, nil
}

func (s *NoticeService) List(ctx context.Context, userID, relationshipID string) ([]*models.Notice, error) {
	rel, err := s.relRepo.Get(ctx, relationshipID)
	if err != nil {
		return nil, err
	}
	if rel.OwnerID != userID && rel.RenterID != userID {
		return nil, ErrNotAuthorized
	}
	return s.noticeRepo.ListByRelationship(ctx, relationshipID)
}
