package repository

import (
	"context"
	"sync"

	"ugandapi-chat/internal/domain/chat"
	"ugandapi-chat/internal/domain/user"
	relay_errors "ugandapi-chat/pkg/errors"
)

// In-memory implementations backing tests and local runs without a
// database. Contents do not survive a restart.

type MemoryMessageRepository struct {
	mu       sync.RWMutex
	messages []chat.Message
	byID     map[string]int
}

func NewMemoryMessageRepository() *MemoryMessageRepository {
	return &MemoryMessageRepository{byID: make(map[string]int)}
}

func (r *MemoryMessageRepository) Append(ctx context.Context, m *chat.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[m.MessageID]; ok {
		return relay_errors.ErrAlreadyExists
	}
	r.byID[m.MessageID] = len(r.messages)
	r.messages = append(r.messages, *m)
	return nil
}

func (r *MemoryMessageRepository) Get(ctx context.Context, messageID string) (chat.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byID[messageID]
	if !ok {
		return chat.Message{}, relay_errors.ErrNotFound
	}
	return r.messages[idx], nil
}

func (r *MemoryMessageRepository) List(ctx context.Context) ([]chat.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]chat.Message, len(r.messages))
	copy(out, r.messages)
	return out, nil
}

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]user.User)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Username]; ok {
		return relay_errors.ErrAlreadyExists
	}
	r.users[u.Username] = *u
	return nil
}

func (r *MemoryUserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return user.User{}, relay_errors.ErrNotFound
	}
	return u, nil
}
