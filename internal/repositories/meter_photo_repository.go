package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"livenzo-backend/internal/models"
)

type MeterPhotoRepository struct {
	DB *pgxpool.Pool
}

func NewMeterPhotoRepository(db *pgxpool.Pool) *MeterPhotoRepository {
	return &MeterPhotoRepository{DB: db}
}

func (r *MeterPhotoRepository) Create(ctx context.Context, photo *models.MeterPhoto) error {
	photo.ID = uuid.NewString()

	query := `
		INSERT INTO meter_photos (id, relationship_id, renter_id, owner_id, billing_month, photo_url, file_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	return r.DB.QueryRow(ctx, query,
		photo.ID,
		photo.RelationshipID,
		photo.RenterID,
		photo.OwnerID,
		photo.BillingMonth,
		photo.PhotoURL,
		photo.FileSize,
	).Scan(&photo.CreatedAt)
}

// LatestForMonth returns the newest photo for a relationship's billing month,
// or nil when none was uploaded.
func (r *MeterPhotoRepository) LatestForMonth(ctx context.Context, relationshipID, billingMonth string) (*models.MeterPhoto, error) {
	query := `
		SELECT id, relationship_id, renter_id, owner_id, billing_month, photo_url, file_size, created_at
		FROM meter_photos
		WHERE relationship_id = $1 AND billing_month = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	photo := &models.MeterPhoto{}
	err := r.DB.QueryRow(ctx, query, relationshipID, billingMonth).Scan(
		&photo.ID,
		&photo.RelationshipID,
		&photo.RenterID,
		&photo.OwnerID,
		&photo.BillingMonth,
		&photo.PhotoURL,
		&photo.FileSize,
		&photo.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return photo, nil
}

// ListForMonth returns every photo for a relationship's billing month, newest first.
func (r *MeterPhotoRepository) ListForMonth(ctx context.Context, relationshipID, billingMonth string) ([]*models.MeterPhoto, error) {
	query := `
		SELECT id, relationship_id, renter_id, owner_id, billing_month, photo_url, file_size, created_at
		FROM meter_photos
		WHERE relationship_id = $1 AND billing_month = $2
		ORDER BY created_at DESC
	`

	rows, err := r.DB.Query(ctx, query, relationshipID, billingMonth)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []*models.MeterPhoto
	for rows.Next() {
		photo := &models.MeterPhoto{}
		err := rows.Scan(
			&photo.ID,
			&photo.RelationshipID,
			&photo.RenterID,
			&photo.OwnerID,
			&photo.BillingMonth,
			&photo.PhotoURL,
			&photo.FileSize,
			&photo.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}

	return photos, rows.Err()
}
