package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"livenzo-backend/internal/models"
)

type RentStatusRepository struct {
	DB *pgxpool.Pool
}

func NewRentStatusRepository(db *pgxpool.Pool) *RentStatusRepository {
	return &RentStatusRepository{DB: db}
}

// Get returns the rent status row for a relationship and billing month,
// or nil when no row exists yet.
func (r *RentStatusRepository) Get(ctx context.Context, relationshipID, billingMonth string) (*models.RentStatus, error) {
	query := `
		SELECT id, relationship_id, billing_month, status, current_amount, due_date, created_at, updated_at
		FROM rent_status
		WHERE relationship_id = $1 AND billing_month = $2
	`

	rs := &models.RentStatus{}
	err := r.DB.QueryRow(ctx, query, relationshipID, billingMonth).Scan(
		&rs.ID,
		&rs.RelationshipID,
		&rs.BillingMonth,
		&rs.Status,
		&rs.CurrentAmount,
		&rs.DueDate,
		&rs.CreatedAt,
		&rs.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return rs, nil
}

// Upsert writes the rent status row. The UNIQUE(relationship_id, billing_month)
// constraint keeps at most one row per month; concurrent writers last-write-win.
func (r *RentStatusRepository) Upsert(ctx context.Context, rs *models.RentStatus) error {
	if rs.ID == "" {
		rs.ID = uuid.NewString()
	}

	query := `
		INSERT INTO rent_status (id, relationship_id, billing_month, status, current_amount, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (relationship_id, billing_month)
		DO UPDATE SET status = EXCLUDED.status,
		              current_amount = EXCLUDED.current_amount,
		              due_date = EXCLUDED.due_date,
		              updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		rs.ID,
		rs.RelationshipID,
		rs.BillingMonth,
		rs.Status,
		rs.CurrentAmount,
		rs.DueDate,
	).Scan(&rs.ID, &rs.CreatedAt, &rs.UpdatedAt)
}

// History lists all billing months for a relationship, newest first.
func (r *RentStatusRepository) History(ctx context.Context, relationshipID string) ([]*models.RentStatus, error) {
	query := `
		SELECT id, relationship_id, billing_month, status, current_amount, due_date, created_at, updated_at
		FROM rent_status
		WHERE relationship_id = $1
		ORDER BY billing_month DESC
	`

	rows, err := r.DB.Query(ctx, query, relationshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []*models.RentStatus
	for rows.Next() {
		rs := &models.RentStatus{}
		err := rows.Scan(
			&rs.ID,
			&rs.RelationshipID,
			&rs.BillingMonth,
			&rs.Status,
			&rs.CurrentAmount,
			&rs.DueDate,
			&rs.CreatedAt,
			&rs.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, rs)
	}

	return statuses, rows.Err()
}
