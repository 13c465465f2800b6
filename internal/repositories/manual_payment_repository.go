package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"livenzo-backend/internal/models"
)

type ManualPaymentRepository struct {
	DB *pgxpool.Pool
}

func NewManualPaymentRepository(db *pgxpool.Pool) *ManualPaymentRepository {
	return &ManualPaymentRepository{DB: db}
}

func (r *ManualPaymentRepository) Create(ctx context.Context, proof *models.ManualPaymentProof) error {
	proof.ID = uuid.NewString()

	query := `
		INSERT INTO manual_payments (id, renter_id, owner_id, relationship_id, billing_month,
		                             amount, transaction_id, proof_image_url, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'pending')
		RETURNING status, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		proof.ID,
		proof.RenterID,
		proof.OwnerID,
		proof.RelationshipID,
		proof.BillingMonth,
		proof.Amount,
		proof.TransactionID,
		proof.ProofImageURL,
		proof.Notes,
	).Scan(&proof.Status, &proof.CreatedAt, &proof.UpdatedAt)
}

func (r *ManualPaymentRepository) Get(ctx context.Context, id string) (*models.ManualPaymentProof, error) {
	query := `
		SELECT id, renter_id, owner_id, relationship_id, billing_month, amount,
		       COALESCE(transaction_id, ''), COALESCE(proof_image_url, ''),
		       COALESCE(notes, ''), status, created_at, updated_at
		FROM manual_payments
		WHERE id = $1
	`

	proof := &models.ManualPaymentProof{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&proof.ID,
		&proof.RenterID,
		&proof.OwnerID,
		&proof.RelationshipID,
		&proof.BillingMonth,
		&proof.Amount,
		&proof.TransactionID,
		&proof.ProofImageURL,
		&proof.Notes,
		&proof.Status,
		&proof.CreatedAt,
		&proof.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return proof, nil
}

func (r *ManualPaymentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE manual_payments SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

// ListPendingForOwner returns proofs awaiting the owner's review, oldest first.
func (r *ManualPaymentRepository) ListPendingForOwner(ctx context.Context, ownerID string) ([]*models.ManualPaymentProof, error) {
	query := `
		SELECT id, renter_id, owner_id, relationship_id, billing_month, amount,
		       COALESCE(transaction_id, ''), COALESCE(proof_image_url, ''),
		       COALESCE(notes, ''), status, created_at, updated_at
		FROM manual_payments
		WHERE owner_id = $1 AND status = 'pending'
		ORDER BY created_at
	`

	rows, err := r.DB.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proofs []*models.ManualPaymentProof
	for rows.Next() {
		proof := &models.ManualPaymentProof{}
		err := rows.Scan(
			&proof.ID,
			&proof.RenterID,
			&proof.OwnerID,
			&proof.RelationshipID,
			&proof.BillingMonth,
			&proof.Amount,
			&proof.TransactionID,
			&proof.ProofImageURL,
			&proof.Notes,
			&proof.Status,
			&proof.CreatedAt,
			&proof.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		proofs = append(proofs, proof)
	}

	return proofs, rows.Err()
}
