package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sivalije58/NexTalk/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, username, created_at
		FROM users
		ORDER BY username ASC
	`)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.CreatedAt); err != nil {
			return nil, storeErr("scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list users", err)
	}
	return users, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, created_at
		FROM users WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, model.ErrNotFound)
	}
	if err != nil {
		return nil, storeErr("find user", err)
	}
	return u, nil
}

// Create inserts a user. The unique index on username is the tie-breaker
// for concurrent inserts: the loser gets ErrConflict and re-reads.
func (r *UserRepository) Create(ctx context.Context, username string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (username)
		VALUES ($1)
		RETURNING id, username, created_at
	`, username).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("user %q: %w", username, model.ErrConflict)
		}
		return nil, storeErr("insert user", err)
	}
	return u, nil
}

// DeleteByUsername removes a user and returns the deleted row. Messages
// keep the username as a soft reference; nothing cascades.
func (r *UserRepository) DeleteByUsername(ctx context.Context, username string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx, `
		DELETE FROM users
		WHERE username = $1
		RETURNING id, username, created_at
	`, username).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, model.ErrNotFound)
	}
	if err != nil {
		return nil, storeErr("delete user", err)
	}
	return u, nil
}
