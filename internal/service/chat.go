package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Sivalije58/NexTalk/internal/model"
)

// MessageStore is the persistence contract the chat service mutates.
type MessageStore interface {
	List(ctx context.Context) ([]model.Message, error)
	Create(ctx context.Context, username, content string) (*model.Message, error)
	Update(ctx context.Context, id int64, content string) (*model.Message, error)
	Delete(ctx context.Context, id int64) (*model.Message, error)
	Clear(ctx context.Context) error
}

// Broadcaster receives one event per committed mutation.
type Broadcaster interface {
	Broadcast(event *model.Event)
}

// ChatService validates and applies message mutations. An event is emitted
// only after the store acknowledges the commit; a rejected mutation leaves
// the store unchanged and emits nothing.
type ChatService struct {
	store   MessageStore
	events  Broadcaster
	timeout time.Duration
}

func NewChatService(store MessageStore, events Broadcaster, timeout time.Duration) *ChatService {
	return &ChatService{store: store, events: events, timeout: timeout}
}

func (s *ChatService) List(ctx context.Context) ([]model.Message, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	return s.store.List(ctx)
}

func (s *ChatService) Post(ctx context.Context, username, content string) (*model.Message, error) {
	username = strings.TrimSpace(username)
	content = strings.TrimSpace(content)
	if username == "" || content == "" {
		return nil, fmt.Errorf("username and content are required: %w", model.ErrValidation)
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	msg, err := s.store.Create(ctx, username, content)
	if err != nil {
		return nil, err
	}
	s.events.Broadcast(model.MessageCreated(msg))
	return msg, nil
}

func (s *ChatService) Edit(ctx context.Context, id int64, content string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("content is required: %w", model.ErrValidation)
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	msg, err := s.store.Update(ctx, id, content)
	if err != nil {
		return nil, err
	}
	s.events.Broadcast(model.MessageEdited(msg))
	return msg, nil
}

func (s *ChatService) Delete(ctx context.Context, id int64) (*model.Message, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	msg, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.events.Broadcast(model.MessageDeleted(msg.ID))
	return msg, nil
}

func (s *ChatService) ClearAll(ctx context.Context) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.events.Broadcast(model.AllMessagesCleared())
	return nil
}

// bound caps store calls so a stalled database fails the request instead of
// hanging the process.
func (s *ChatService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}
