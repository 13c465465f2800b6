package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"livenzo-backend/internal/models"
	"livenzo-backend/internal/repositories"
	"livenzo-backend/internal/storage"
)

// Photo uploads are capped at 5 MB per the mobile clients.
const MaxPhotoBytes = 5 << 20

// MeterPhotoService stores utility meter photos for the bill step of the
// payment flow.
type MeterPhotoService struct {
	photoRepo *repositories.MeterPhotoRepository
	relRepo   *repositories.RelationshipRepository
	store     *storage.ObjectStore
}

func NewMeterPhotoService(
	photoRepo *repositories.MeterPhotoRepository,
	relRepo *repositories.RelationshipRepository,
	store *storage.ObjectStore,
) *MeterPhotoService {
	return &MeterPhotoService{photoRepo: photoRepo, relRepo: relRepo, store: store}
}

// Upload pushes the image to object storage and records it against the
// relationship's current billing month.
func (s *MeterPhotoService) Upload(ctx context.Context, renterID, relationshipID, filename, contentType string, size int64, body io.Reader) (*models.MeterPhoto, error) {
	rel, err := s.relRepo.Get(ctx, relationshipID)
	if err != nil {
		return nil, err
	}
	if rel.RenterID != renterID {
		return nil, ErrNotAuthorized
	}
	if rel.Status != models.RelationshipAccepted {
		return nil, ErrRelationshipInactive
	}
	if size > MaxPhotoBytes {
		return nil, fmt.Errorf("photo exceeds the %d MB limit", MaxPhotoBytes>>20)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("only image uploads are accepted")
	}

	billingMonth := models.CurrentBillingMonth()
	key := fmt.Sprintf("meter-photos/%s/%s/%d%s",
		relationshipID, billingMonth, time.Now().UnixNano(), path.Ext(filename))

	url, err := s.store.Upload(ctx, key, body, contentType)
	if err != nil {
		return nil, err
	}

	photo := &models.MeterPhoto{
		RelationshipID: relationshipID,
		RenterID:       renterID,
		OwnerID:        rel.OwnerID,
		BillingMonth:   billingMonth,
		PhotoURL:       url,
		FileSize:       size,
	}
	if err := s.photoRepo.Create(ctx, photo); err != nil {
		return nil, err
	}

	return photo, nil
}

// ListForMonth returns a month's photos to either party of the relationship.
func (s *MeterPhotoService) ListForMonth(ctx context.Context, userID, relationshipID, billingMonth string) ([]*models.MeterPhoto, error) {
	rel, err := s.relRepo.Get(ctx, relationshipID)
	if err != nil {
		return nil, err
	}
	if rel.OwnerID != userID && rel.RenterID != userID {
		return nil, ErrNotAuthorized
	}
	if billingMonth == "" {
		billingMonth = models.CurrentBillingMonth()
	} else if billingMonth, err = models.ParseBillingMonth(billingMonth); err != nil {
		return nil, err
	}

	return s.photoRepo.ListForMonth(ctx, relationshipID, billingMonth)
}

// Latest returns the newest photo for the month, or nil when none exists.
func (s *MeterPhotoService) Latest(ctx context.Context, userID, relationshipID, billingMonth string) (*models.MeterPhoto, error) {
	photos, err := s.ListForMonth(ctx, userID, relationshipID, billingMonth)
	if err != nil {
		return nil, err
	}
	if len(photos) == 0 {
		return nil, nil
	}
	return photos[0], nil
}
