package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"livenzo-backend/internal/models"
)

type RelationshipRepository struct {
	DB *pgxpool.Pool
}

func NewRelationshipRepository(db *pgxpool.Pool) *RelationshipRepository {
	return &RelationshipRepository{DB: db}
}

func (r *RelationshipRepository) Create(ctx context.Context, rel *models.Relationship) error {
	rel.ID = uuid.NewString()

	query := `
		INSERT INTO relationships (id, owner_id, renter_id, property_name, status, monthly_rent)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		rel.ID,
		rel.OwnerID,
		rel.RenterID,
		rel.PropertyName,
		rel.Status,
		rel.MonthlyRent,
	).Scan(&rel.CreatedAt, &rel.UpdatedAt)
}

func (r *RelationshipRepository) Get(ctx context.Context, id string) (*models.Relationship, error) {
	query := `
		SELECT id, owner_id, renter_id, property_name, status, monthly_rent, created_at, updated_at
		FROM relationships
		WHERE id = $1
	`

	rel := &models.Relationship{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&rel.ID,
		&rel.OwnerID,
		&rel.RenterID,
		&rel.PropertyName,
		&rel.Status,
		&rel.MonthlyRent,
		&rel.CreatedAt,
		&rel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return rel, nil
}

func (r *RelationshipRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE relationships SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

func (r *RelationshipRepository) UpdateMonthlyRent(ctx context.Context, id string, amount float64) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE relationships SET monthly_rent = $2, updated_at = NOW() WHERE id = $1`, id, amount)
	return err
}

// ListByOwner returns relationships for an owner joined with renter names.
func (r *RelationshipRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Relationship, error) {
	query := `
		SELECT rel.id, rel.owner_id, rel.renter_id, rel.property_name, rel.status,
		       rel.monthly_rent, rel.created_at, rel.updated_at, u.name
		FROM relationships rel
		JOIN users u ON rel.renter_id = u.id
		WHERE rel.owner_id = $1
		ORDER BY rel.created_at DESC
	`

	rows, err := r.DB.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rels []*models.Relationship
	for rows.Next() {
		rel := &models.Relationship{}
		err := rows.Scan(
			&rel.ID,
			&rel.OwnerID,
			&rel.RenterID,
			&rel.PropertyName,
			&rel.Status,
			&rel.MonthlyRent,
			&rel.CreatedAt,
			&rel.UpdatedAt,
			&rel.RenterName,
		)
		if err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}

	return rels, rows.Err()
}

// ListByRenter returns relationships for a renter joined with owner names.
func (r *RelationshipRepository) ListByRenter(ctx context.Context, renterID string) ([]*models.Relationship, error) {
	query := `
		SELECT rel.id, rel.owner_id, rel.renter_id, rel.property_name, rel.status,
		       rel.monthly_rent, rel.created_at, rel.updated_at, u.name
		FROM relationships rel
		JOIN users u ON rel.owner_id = u.id
		WHERE rel.renter_id = $1
		ORDER BY rel.created_at DESC
	`

	rows, err := r.DB.Query(ctx, query, renterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rels []*models.Relationship
	for rows.Next() {
		rel := &models.Relationship{}
		err := rows.Scan(
			&rel.ID,
			&rel.OwnerID,
			&rel.RenterID,
			&rel.PropertyName,
			&rel.Status,
			&rel.MonthlyRent,
			&rel.CreatedAt,
			&rel.UpdatedAt,
			&rel.OwnerName,
		)
		if err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}

	return rels, rows.Err()
}

// ListActiveRenters is the owner dashboard query: accepted relationships
// joined with the renter and the rent status for the given billing month.
// A missing rent_status row surfaces as "pending" with the relationship's
// monthly rent; a zero monthly rent means no rent has been set yet.
func (r *RelationshipRepository) ListActiveRenters(ctx context.Context, ownerID, billingMonth string) ([]*models.ActiveRenter, error) {
	query := `
		SELECT rel.id, rel.owner_id, rel.renter_id, rel.property_name, rel.status,
		       rel.monthly_rent, rel.created_at, rel.updated_at,
		       u.name, u.phone,
		       COALESCE(rs.status, 'pending'),
		       COALESCE(rs.current_amount, rel.monthly_rent),
		       EXISTS (
		           SELECT 1 FROM meter_photos mp
		           WHERE mp.relationship_id = rel.id AND mp.billing_month = $2
		       )
		FROM relationships rel
		JOIN users u ON rel.renter_id = u.id
		LEFT JOIN rent_status rs
		       ON rs.relationship_id = rel.id AND rs.billing_month = $2
		WHERE rel.owner_id = $1 AND rel.status = 'accepted'
		ORDER BY u.name
	`

	rows, err := r.DB.Query(ctx, query, ownerID, billingMonth)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var renters []*models.ActiveRenter
	for rows.Next() {
		ar := &models.ActiveRenter{BillingMonth: billingMonth}
		err := rows.Scan(
			&ar.Relationship.ID,
			&ar.Relationship.OwnerID,
			&ar.Relationship.RenterID,
			&ar.Relationship.PropertyName,
			&ar.Relationship.Status,
			&ar.Relationship.MonthlyRent,
			&ar.Relationship.CreatedAt,
			&ar.Relationship.UpdatedAt,
			&ar.RenterName,
			&ar.RenterPhone,
			&ar.RentStatus,
			&ar.AmountDue,
			&ar.HasMeterPhoto,
		)
		if err != nil {
			return nil, err
		}
		renters = append(renters, ar)
	}

	return renters, rows.Err()
}
