package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"livenzo-backend/internal/models"
)

type ComplaintRepository struct {
	DB *pgxpool.Pool
}

func NewComplaintRepository(db *pgxpool.Pool) *ComplaintRepository {
	return &ComplaintRepository{DB: db}
}

func (r *ComplaintRepository) Create(ctx context.Context, c *models.Complaint) error {
	c.ID = uuid.NewString()

	query := `
		INSERT INTO complaints (id, relationship_id, renter_id, owner_id, title, description, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'open')
		RETURNING status, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		c.ID,
		c.RelationshipID,
		c.RenterID,
		c.OwnerID,
		c.Title,
		c.Description,
	).Scan(&c.Status, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ComplaintRepository) Get(ctx context.Context, id string) (*models.Complaint, error) {
	query := `
		SELECT id, relationship_id, renter_id, owner_id, title, description, status, created_at, updated_at
		FROM complaints
		WHERE id = $1
	`

	c := &models.Complaint{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.RelationshipID,
		&c.RenterID,
		&c.OwnerID,
		&c.Title,
		&c.Description,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE complaints SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

func (r *ComplaintRepository) ListForUser(ctx context.Context, userID string) ([]*models.Complaint, error) {
	query := `
		SELECT id, relationship_id, renter_id, owner_id, title, description, status, created_at, updated_at
		FROM complaints
		WHERE renter_id = $1 OR owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []*models.Complaint
	for rows.Next() {
		c := &models.Complaint{}
		err := rows.Scan(
			&c.ID,
			&c.RelationshipID,
			&c.RenterID,
			&c.OwnerID,
			&c.Title,
			&c.Description,
			&c.Status,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		complaints = append(complaints, c)
	}

	return complaints, rows.Err()
}
