package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"neetprep-backend/internal/models"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// List returns the chat log oldest first.
func (r *MessageRepo) List(ctx context.Context) ([]models.MessageRecord, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, text, sender, timestamp FROM messages ORDER BY timestamp ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := []models.MessageRecord{}
	for rows.Next() {
		var m models.MessageRecord
		if err := rows.Scan(&m.ID, &m.Text, &m.Sender, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *MessageRepo) Create(ctx context.Context, m *models.MessageRecord) error {
	err := r.pool.QueryRow(ctx,
		"INSERT INTO messages (text, sender) VALUES ($1, $2) RETURNING id, timestamp",
		m.Text, m.Sender,
	).Scan(&m.ID, &m.Timestamp)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (r *MessageRepo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM messages")
	if err != nil {
		return 0, fmt.Errorf("clear messages: %w", err)
	}
	return tag.RowsAffected(), nil
}
