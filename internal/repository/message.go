package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sivalije58/NexTalk/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// List returns all messages in chronological order, id breaking ties.
func (r *MessageRepository) List(ctx context.Context) ([]model.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, username, content, created_at
		FROM messages
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, storeErr("list messages", err)
	}
	defer rows.Close()

	var msgs []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.Username, &m.Content, &m.CreatedAt); err != nil {
			return nil, storeErr("scan message", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list messages", err)
	}
	return msgs, nil
}

// Create inserts a message; id and created_at are assigned by the insert.
func (r *MessageRepository) Create(ctx context.Context, username, content string) (*model.Message, error) {
	m := &model.Message{}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (username, content)
		VALUES ($1, $2)
		RETURNING id, username, content, created_at
	`, username, content).Scan(&m.ID, &m.Username, &m.Content, &m.CreatedAt)
	if err != nil {
		return nil, storeErr("insert message", err)
	}
	return m, nil
}

// Update replaces the content of an existing message. The single-statement
// UPDATE ... RETURNING keeps id and created_at untouched and serializes
// concurrent edits of the same row.
func (r *MessageRepository) Update(ctx context.Context, id int64, content string) (*model.Message, error) {
	m := &model.Message{}
	err := r.pool.QueryRow(ctx, `
		UPDATE messages SET content = $1
		WHERE id = $2
		RETURNING id, username, content, created_at
	`, content, id).Scan(&m.ID, &m.Username, &m.Content, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("message %d: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, storeErr("update message", err)
	}
	return m, nil
}

// Delete removes a message and returns the deleted row.
func (r *MessageRepository) Delete(ctx context.Context, id int64) (*model.Message, error) {
	m := &model.Message{}
	err := r.pool.QueryRow(ctx, `
		DELETE FROM messages
		WHERE id = $1
		RETURNING id, username, content, created_at
	`, id).Scan(&m.ID, &m.Username, &m.Content, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("message %d: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, storeErr("delete message", err)
	}
	return m, nil
}

// Clear empties the table. Clearing an empty table is a no-op success.
func (r *MessageRepository) Clear(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM messages`); err != nil {
		return storeErr("clear messages", err)
	}
	return nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, model.ErrStorage, err)
}
