package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"livenzo-backend/internal/models"
)

type NoticeRepository struct {
	DB *pgxpool.Pool
}

func NewNoticeRepository(db *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{DB: db}
}

func (r *NoticeRepository) Create(ctx context.Context, n *models.Notice) error {
	n.ID = uuid.NewString()

	query := `
		INSERT INTO notices (id, relationship_id, owner_id, renter_id, title, body)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	return r.DB.QueryRow(ctx, query,
		n.ID,
		n.RelationshipID,
		n.OwnerID,
		n.RenterID,
		n.Title,
		n.Body,
	).Scan(&n.CreatedAt)
}

func (r *NoticeRepository) ListByRelationship(ctx context.Context, relationshipID string) ([]*models.Notice, error) {
	query := `
		SELECT id, relationship_id, owner_id, renter_id, title, body, created_at
		FROM notices
		WHERE relationship_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.Query(ctx, query, relationshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notices []*models.Notice
	for rows.Next() {
		n := &models.Notice{}
		err := rows.Scan(
			&n.ID,
			&n.RelationshipID,
			&n.OwnerID,
			&n.RenterID,
			&n.Title,
			&n.Body,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}

	return notices, rows.Err()
}
