package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Sivalije58/NexTalk/internal/model"

	"github.com/stretchr/testify/require"
)

// fakeMessageStore is an in-memory MessageStore. Timestamps tick with the
// id counter so created_at ordering is strict and deterministic.
type fakeMessageStore struct {
	mu     sync.Mutex
	nextID int64
	msgs   []model.Message
	fail   error
}

var epoch = time.Date(2026, 1, 3, 12, 0, 0, 0, time.UTC)

func (f *fakeMessageStore) List(ctx context.Context) ([]model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	out := make([]model.Message, len(f.msgs))
	copy(out, f.msgs)
	return out, nil
}

func (f *fakeMessageStore) Create(ctx context.Context, username, content string) (*model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	f.nextID++
	m := model.Message{
		ID:        f.nextID,
		Username:  username,
		Content:   content,
		CreatedAt: epoch.Add(time.Duration(f.nextID) * time.Second),
	}
	f.msgs = append(f.msgs, m)
	return &m, nil
}

func (f *fakeMessageStore) Update(ctx context.Context, id int64, content string) (*model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	for i := range f.msgs {
		if f.msgs[i].ID == id {
			f.msgs[i].Content = content
			m := f.msgs[i]
			return &m, nil
		}
	}
	return nil, fmt.Errorf("message %d: %w", id, model.ErrNotFound)
}

func (f *fakeMessageStore) Delete(ctx context.Context, id int64) (*model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	for i := range f.msgs {
		if f.msgs[i].ID == id {
			m := f.msgs[i]
			f.msgs = append(f.msgs[:i], f.msgs[i+1:]...)
			return &m, nil
		}
	}
	return nil, fmt.Errorf("message %d: %w", id, model.ErrNotFound)
}

func (f *fakeMessageStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.msgs = nil
	return nil
}

// recordingBroadcaster captures every emitted event.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []*model.Event
}

func (r *recordingBroadcaster) Broadcast(event *model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingBroadcaster) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func newChatFixture() (*ChatService, *fakeMessageStore, *recordingBroadcaster) {
	store := &fakeMessageStore{}
	events := &recordingBroadcaster{}
	return NewChatService(store, events, time.Second), store, events
}

func TestChatService_Post_AppendsAndBroadcasts(t *testing.T) {
	req := require.New(t)
	svc, _, events := newChatFixture()
	ctx := context.Background()

	msg, err := svc.Post(ctx, "alice", "hi")
	req.NoError(err)
	req.Equal(int64(1), msg.ID)
	req.Equal("alice", msg.Username)
	req.Equal("hi", msg.Content)

	msgs, err := svc.List(ctx)
	req.NoError(err)
	req.Len(msgs, 1)
	req.Equal(*msg, msgs[0])

	req.Equal([]string{model.EventCreated}, events.types())
	req.Equal(msg, events.events[0].Data)
}

func TestChatService_Post_IDsAndTimestampsIncrease(t *testing.T) {
	req := require.New(t)
	svc, _, _ := newChatFixture()
	ctx := context.Background()

	first, err := svc.Post(ctx, "alice", "one")
	req.NoError(err)
	second, err := svc.Post(ctx, "bob", "two")
	req.NoError(err)

	req.Greater(second.ID, first.ID)
	req.True(second.CreatedAt.After(first.CreatedAt))

	msgs, err := svc.List(ctx)
	req.NoError(err)
	req.Equal([]model.Message{*first, *second}, msgs)
}

func TestChatService_Post_RejectsEmptyFields(t *testing.T) {
	req := require.New(t)
	svc, store, events := newChatFixture()
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		content  string
	}{
		{"empty username", "", "hi"},
		{"empty content", "alice", ""},
		{"whitespace content", "alice", "   "},
		{"whitespace username", "\t ", "hi"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Post(ctx, tc.username, tc.content)
			require.ErrorIs(t, err, model.ErrValidation)
		})
	}

	req.Empty(store.msgs, "rejected mutations must leave the store unchanged")
	req.Empty(events.types(), "no event for a failed mutation")
}

func TestChatService_Post_TrimsFields(t *testing.T) {
	req := require.New(t)
	svc, _, _ := newChatFixture()

	msg, err := svc.Post(context.Background(), "  alice ", " hi\n")
	req.NoError(err)
	req.Equal("alice", msg.Username)
	req.Equal("hi", msg.Content)
}

func TestChatService_Edit_InPlace(t *testing.T) {
	req := require.New(t)
	svc, _, events := newChatFixture()
	ctx := context.Background()

	created, err := svc.Post(ctx, "alice", "hi")
	req.NoError(err)

	edited, err := svc.Edit(ctx, created.ID, "hi!")
	req.NoError(err)
	req.Equal(created.ID, edited.ID)
	req.Equal(created.CreatedAt, edited.CreatedAt)
	req.Equal("hi!", edited.Content)

	msgs, err := svc.List(ctx)
	req.NoError(err)
	req.Len(msgs, 1)
	req.Equal("hi!", msgs[0].Content)

	req.Equal([]string{model.EventCreated, model.EventEdited}, events.types())
}

func TestChatService_Edit_UnknownID(t *testing.T) {
	req := require.New(t)
	svc, _, events := newChatFixture()

	_, err := svc.Edit(context.Background(), 42, "nope")
	req.ErrorIs(err, model.ErrNotFound)
	req.Empty(events.types())
}

func TestChatService_Edit_RejectsEmptyContent(t *testing.T) {
	req := require.New(t)
	svc, _, events := newChatFixture()
	ctx := context.Background()

	created, err := svc.Post(ctx, "alice", "hi")
	req.NoError(err)

	_, err = svc.Edit(ctx, created.ID, "  ")
	req.ErrorIs(err, model.ErrValidation)

	msgs, err := svc.List(ctx)
	req.NoError(err)
	req.Equal("hi", msgs[0].Content)
	req.Equal([]string{model.EventCreated}, events.types())
}

func TestChatService_Delete_Twice(t *testing.T) {
	req := require.New(t)
	svc, _, events := newChatFixture()
	ctx := context.Background()

	created, err := svc.Post(ctx, "alice", "hi")
	req.NoError(err)

	deleted, err := svc.Delete(ctx, created.ID)
	req.NoError(err)
	req.Equal(created.ID, deleted.ID)

	_, err = svc.Delete(ctx, created.ID)
	req.ErrorIs(err, model.ErrNotFound)

	req.Equal([]string{model.EventCreated, model.EventDeleted}, events.types())
	req.Equal(model.DeletedRef{ID: created.ID}, events.events[1].Data)
}

func TestChatService_ClearAll_Idempotent(t *testing.T) {
	req := require.New(t)
	svc, _, events := newChatFixture()
	ctx := context.Background()

	// Clearing an empty store is a no-op success.
	req.NoError(svc.ClearAll(ctx))
	req.NoError(svc.ClearAll(ctx))

	_, err := svc.Post(ctx, "alice", "hi")
	req.NoError(err)
	req.NoError(svc.ClearAll(ctx))

	msgs, err := svc.List(ctx)
	req.NoError(err)
	req.Empty(msgs)

	req.Equal([]string{model.EventCleared, model.EventCleared, model.EventCreated, model.EventCleared}, events.types())
}

func TestChatService_StorageFailure_NoEvent(t *testing.T) {
	req := require.New(t)
	store := &fakeMessageStore{fail: fmt.Errorf("pool down: %w", model.ErrStorage)}
	events := &recordingBroadcaster{}
	svc := NewChatService(store, events, time.Second)

	_, err := svc.Post(context.Background(), "alice", "hi")
	req.ErrorIs(err, model.ErrStorage)
	req.Empty(events.types())
}
