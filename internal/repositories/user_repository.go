package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"livenzo-backend/internal/models"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.NewString()

	query := `
		INSERT INTO users (id, name, email, phone, password_hash, role, upi_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		RETURNING created_at
	`

	return r.DB.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.UpiID,
	).Scan(&user.CreatedAt)
}

func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, name, email, phone, password_hash, role, COALESCE(upi_id, ''),
		       COALESCE(fcm_token, ''), is_active, created_at
		FROM users
		WHERE id = $1
	`

	user := &models.User{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.UpiID,
		&user.FCMToken,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, phone, password_hash, role, COALESCE(upi_id, ''),
		       COALESCE(fcm_token, ''), is_active, created_at
		FROM users
		WHERE email = $1
	`

	user := &models.User{}
	err := r.DB.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.UpiID,
		&user.FCMToken,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *UserRepository) UpdateFCMToken(ctx context.Context, userID, token string) error {
	_, err := r.DB.Exec(ctx, `UPDATE users SET fcm_token = $2 WHERE id = $1`, userID, token)
	return err
}

func (r *UserRepository) UpdateUpiID(ctx context.Context, userID, upiID string) error {
	_, err := r.DB.Exec(ctx, `UPDATE users SET upi_id = $2 WHERE id = $1`, userID, upiID)
	return err
}
