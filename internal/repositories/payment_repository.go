package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"livenzo-backend/internal/models"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// Upsert writes the payment record for a renter's billing month. The
// UNIQUE(renter_id, owner_id, billing_month) constraint means a retried
// payment replaces the earlier attempt for the same month.
func (r *PaymentRepository) Upsert(ctx context.Context, p *models.PaymentRecord) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	query := `
		INSERT INTO payments (id, renter_id, owner_id, relationship_id, billing_month,
		                      amount, electric_bill_amount, status, payment_method,
		                      transaction_id, razorpay_order_id, razorpay_payment_id, payment_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (renter_id, owner_id, billing_month)
		DO UPDATE SET amount = EXCLUDED.amount,
		              electric_bill_amount = EXCLUDED.electric_bill_amount,
		              status = EXCLUDED.status,
		              payment_method = EXCLUDED.payment_method,
		              transaction_id = EXCLUDED.transaction_id,
		              razorpay_order_id = EXCLUDED.razorpay_order_id,
		              razorpay_payment_id = EXCLUDED.razorpay_payment_id,
		              payment_date = EXCLUDED.payment_date,
		              updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		p.ID,
		p.RenterID,
		p.OwnerID,
		p.RelationshipID,
		p.BillingMonth,
		p.Amount,
		p.ElectricBillAmount,
		p.Status,
		p.PaymentMethod,
		p.TransactionID,
		p.RazorpayOrderID,
		p.RazorpayPaymentID,
		p.PaymentDate,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetForMonth returns the payment row for a renter/owner pair and billing
// month, or nil when none exists.
func (r *PaymentRepository) GetForMonth(ctx context.Context, renterID, ownerID, billingMonth string) (*models.PaymentRecord, error) {
	query := selectPayment + ` WHERE renter_id = $1 AND owner_id = $2 AND billing_month = $3`

	p := &models.PaymentRecord{}
	err := r.DB.QueryRow(ctx, query, renterID, ownerID, billingMonth).Scan(paymentFields(p)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

// GetByOrderID looks a payment up by its Razorpay order, used by signature
// verification and the webhook.
func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*models.PaymentRecord, error) {
	query := selectPayment + ` WHERE razorpay_order_id = $1`

	p := &models.PaymentRecord{}
	err := r.DB.QueryRow(ctx, query, orderID).Scan(paymentFields(p)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

// ListByRelationship returns payment history for a relationship, newest first.
func (r *PaymentRepository) ListByRelationship(ctx context.Context, relationshipID string) ([]*models.PaymentRecord, error) {
	query := selectPayment + ` WHERE relationship_id = $1 ORDER BY billing_month DESC`

	rows, err := r.DB.Query(ctx, query, relationshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.PaymentRecord
	for rows.Next() {
		p := &models.PaymentRecord{}
		if err := rows.Scan(paymentFields(p)...); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

const selectPayment = `
	SELECT id, renter_id, owner_id, relationship_id, billing_month,
	       amount, electric_bill_amount, status, payment_method,
	       COALESCE(transaction_id, ''), COALESCE(razorpay_order_id, ''),
	       COALESCE(razorpay_payment_id, ''), payment_date, created_at, updated_at
	FROM payments`

func paymentFields(p *models.PaymentRecord) []any {
	return []any{
		&p.ID,
		&p.RenterID,
		&p.OwnerID,
		&p.RelationshipID,
		&p.BillingMonth,
		&p.Amount,
		&p.ElectricBillAmount,
		&p.Status,
		&p.PaymentMethod,
		&p.TransactionID,
		&p.RazorpayOrderID,
		&p.RazorpayPaymentID,
		&p.PaymentDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}
