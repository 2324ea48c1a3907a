package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sivalije58/NexTalk/internal/model"
)

// UserStore is the persistence contract behind the user registry.
type UserStore interface {
	List(ctx context.Context) ([]model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, username string) (*model.User, error)
	DeleteByUsername(ctx context.Context, username string) (*model.User, error)
}

type UserService struct {
	store   UserStore
	timeout time.Duration
}

func NewUserService(store UserStore, timeout time.Duration) *UserService {
	return &UserService{store: store, timeout: timeout}
}

// Login is an idempotent get-or-create: an existing row is returned
// unchanged, and a lost insert race (unique index conflict) falls back to
// re-reading the winner's row.
func (s *UserService) Login(ctx context.Context, username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required: %w", model.ErrValidation)
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	u, err := s.store.FindByUsername(ctx, username)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	u, err = s.store.Create(ctx, username)
	if errors.Is(err, model.ErrConflict) {
		return s.store.FindByUsername(ctx, username)
	}
	return u, err
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.store.List(ctx)
}

func (s *UserService) Get(ctx context.Context, username string) (*model.User, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.store.FindByUsername(ctx, username)
}

func (s *UserService) Delete(ctx context.Context, username string) (*model.User, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.store.DeleteByUsername(ctx, username)
}

func (s *UserService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}
