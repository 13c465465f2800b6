package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"livenzo-backend/internal/cache"
	"livenzo-backend/internal/models"
	"livenzo-backend/internal/repositories"
)

const activeRentersTTL = 2 * time.Minute

// RelationshipService manages the owner-renter connections every other
// feature hangs off.
type RelationshipService struct {
	relRepo  *repositories.RelationshipRepository
	userRepo *repositories.UserRepository
	notifier Notifier
}

func NewRelationshipService(
	relRepo *repositories.RelationshipRepository,
	userRepo *repositories.UserRepository,
	notifier Notifier,
) *RelationshipService {
	return &RelationshipService{relRepo: relRepo, userRepo: userRepo, notifier: notifier}
}

// Connect sends a renter's connection request to an owner.
func (s *RelationshipService) Connect(ctx context.Context, renterID string, req *models.ConnectRequest) (*models.Relationship, error) {
	owner, err := s.userRepo.Get(ctx, req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("owner not found")
	}
	if owner.Role != models.RoleOwner {
		return nil, fmt.Errorf("target user is not an owner")
	}
	if req.OwnerID == renterID {
		return nil, fmt.Errorf("cannot connect to yourself")
	}

	rel := &models.Relationship{
		OwnerID:      req.OwnerID,
		RenterID:     renterID,
		PropertyName: req.PropertyName,
		Status:       models.RelationshipPending,
	}
	if err := s.relRepo.Create(ctx, rel); err != nil {
		return nil, err
	}

	renter, err := s.userRepo.Get(ctx, renterID)
	if err == nil {
		err = s.notifier.Notify(ctx, req.OwnerID, models.NotificationConnectRequest,
			"New connection request",
			fmt.Sprintf("%s wants to connect as your renter.", renter.Name),
			map[string]string{"relationship_id": rel.ID})
	}
	if err != nil {
		log.Printf("[Relationship] Failed to notify owner %s: %v", req.OwnerID, err)
	}

	return rel, nil
}

// Respond is the owner accepting or declining a pending request.
func (s *RelationshipService) Respond(ctx context.Context, ownerID, relationshipID string, accept bool) (*models.Relationship, error) {
	rel, err := s.relRepo.Get(ctx, relationshipID)
	if err != nil {
		return nil, err
	}
	if rel.OwnerID != ownerID {
		return nil, ErrNotAuthorized
	}
	if rel.Status != models.RelationshipPending {
		return nil, fmt.Errorf("request already %s", rel.Status)
	}

	status := models.RelationshipDeclined
	if accept {
		status = models.RelationshipAccepted
	}
	if err := s.relRepo.UpdateStatus(ctx, relationshipID, status); err != nil {
		return nil, err
	}
	rel.Status = status

	cache.InvalidateKeys(ctx, fmt.Sprintf(cache.ActiveRentersKeyFmt, ownerID))

	if accept {
		err := s.notifier.Notify(ctx, rel.RenterID, models.NotificationConnectAccepted,
			"Connection accepted",
			"Your owner accepted the connection. You can now see your rent details.",
			map[string]string{"relationship_id": rel.ID})
		if err != nil {
			log.Printf("[Relationship] Failed to notify renter %s: %v", rel.RenterID, err)
		}
	}

	return rel, nil
}

// End closes an accepted relationship. Either party can end it; historical
// rent and payment rows stay behind.
func (s *RelationshipService) End(ctx context.Context, userID, relationshipID string) error {
	rel, err := s.relRepo.Get(ctx, relationshipID)
	if err != nil {
		return err
	}
	if rel.OwnerID != userID && rel.RenterID != userID {
		return ErrNotAuthorized
	}
	if rel.Status != models.RelationshipAccepted {
		return fmt.Errorf("relationship is not active")
	}

	if err := s.relRepo.UpdateStatus(ctx, relationshipID, models.RelationshipEnded); err != nil {
		return err
	}

	cache.InvalidateRentCaches(ctx, rel.OwnerID, relationshipID)
	return nil
}

func (s *RelationshipService) Get(ctx context.Context, userID, relationshipID string) (*models.Relationship, error) {
	rel, err := s.relRepo.Get(ctx, relationshipID)
	if err != nil {
		return nil, err
	}
	if rel.OwnerID != userID && rel.RenterID != userID {
		return nil, ErrNotAuthorized
	}
	return rel, nil
}

func (s *RelationshipService) ListForUser(ctx context.Context, userID, role string) ([]*models.Relationship, error) {
	if role == models.RoleOwner {
		return s.relRepo.ListByOwner(ctx, userID)
	}
	return s.relRepo.ListByRenter(ctx, userID)
}

// ActiveRenters serves the owner dashboard, cached for a couple of minutes.
// Every rent transition and payment write invalidates the cache.
func (s *RelationshipService) ActiveRenters(ctx context.Context, ownerID string) ([]*models.ActiveRenter, error) {
	key := fmt.Sprintf(cache.ActiveRentersKeyFmt, ownerID)
	if data, ok := cache.GetCached(ctx, key); ok {
		var renters []*models.ActiveRenter
		if err := json.Unmarshal(data, &renters); err == nil {
			return renters, nil
		}
	}

	renters, err := s.relRepo.ListActiveRenters(ctx, ownerID, models.CurrentBillingMonth())
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(renters); err == nil {
		cache.SetCached(ctx, key, data, activeRentersTTL)
	}

	return renters, nil
}
