package services

import (
	"context"
	"fmt"
	"log"

	"livenzo-backend/internal/models"
	"livenzo-backend/internal/repositories"
)

type ComplaintService struct {
	complaintRepo *repositories.ComplaintRepository
	relRepo       *repositories.RelationshipRepository
	notifier      Notifier
}

func NewComplaintService(
	complaintRepo *repositories.ComplaintRepository,
	relRepo *repositories.RelationshipRepository,
	notifier Notifier,
) *ComplaintService {
	return &ComplaintService{complaintRepo: complaintRepo, relRepo: relRepo, notifier: notifier}
}

func (s *ComplaintService) Create(ctx context.Context, renterID string, req *models.CreateComplaintRequest) (*models.Complaint, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	rel, err := s.relRepo.Get(ctx, req.RelationshipID)
	if err != nil {
		return nil, err
	}
	if rel.RenterID != renterID {
		return nil, ErrNotAuthorized
	}
	if rel.Status != models.RelationshipAccepted {
		return nil, ErrRelationshipInactive
	}

	c := &models.Complaint{
		RelationshipID: rel.ID,
		RenterID:       renterID,
		OwnerID:        rel.OwnerID,
		Title:          req.Title,
		Description:    req.Description,
	}
	if err := s.complaintRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	err = s.notifier.Notify(ctx, rel.OwnerID, models.NotificationComplaintUpdate,
		"New complaint",
		req.Title,
		map[string]string{"complaint_id": c.ID, "relationship_id": rel.ID})
	if err != nil {
		log.Printf("[Complaint] Failed to notify owner %s: %v", rel.OwnerID, err)
	}

	return c, nil
}

// UpdateStatus moves a complaint along open, in_progress, resolved.
func (s *ComplaintService) UpdateStatus(ctx context.Context, ownerID, complaintID string, req *models.UpdateComplaintRequest) (*models.Complaint, error) {
	switch req.Status {
	case models.ComplaintOpen, models.ComplaintInProgress, models.ComplaintResolved:
	default:
		return nil, fmt.Errorf("invalid complaint status %q", req.Status)
	}

	c, err := s.complaintRepo.Get(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("complaint not found")
	}
	if c.OwnerID != ownerID {
		return nil, ErrNotAuthorized
	}

	if err := s.complaintRepo.UpdateStatus(ctx, complaintID, req.Status); err != nil {
		return nil, err
	}
	c.Status = req.Status

	err = s.notifier.Notify(ctx, c.RenterID, models.NotificationComplaintUpdate,
		"Complaint updated",
		fmt.Sprintf("Your complaint %q is now %s.", c.Title, req.Status),
		map[string]string{"complaint_id": c.ID})
	if err != nil {
		log.Printf("[Complaint] Failed to notify renter %s: %v", c.RenterID, err)
	}

	return c, nil
}

func (s *ComplaintService) ListForUser(ctx context.Context, userID string) ([]*models.Complaint, error) {
	return s.complaintRepo.ListForUser(ctx, userID)
}
