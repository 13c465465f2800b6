package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"livenzo-backend/internal/models"
)

type MessageRepository struct {
	DB *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *models.Message) error {
	m.ID = uuid.NewString()

	query := `
		INSERT INTO messages (id, relationship_id, sender_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	return r.DB.QueryRow(ctx, query,
		m.ID,
		m.RelationshipID,
		m.SenderID,
		m.Body,
	).Scan(&m.CreatedAt)
}

// ListByRelationship returns the newest messages first, capped at limit.
func (r *MessageRepository) ListByRelationship(ctx context.Context, relationshipID string, limit int) ([]*models.Message, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, relationship_id, sender_id, body, is_read, created_at
		FROM messages
		WHERE relationship_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.DB.Query(ctx, query, relationshipID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		m := &models.Message{}
		err := rows.Scan(
			&m.ID,
			&m.RelationshipID,
			&m.SenderID,
			&m.Body,
			&m.IsRead,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// MarkRead flags every message in the relationship not sent by the reader.
func (r *MessageRepository) MarkRead(ctx context.Context, relationshipID, readerID string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE messages SET is_read = TRUE WHERE relationship_id = $1 AND sender_id <> $2 AND is_read = FALSE`,
		relationshipID, readerID)
	return err
}
