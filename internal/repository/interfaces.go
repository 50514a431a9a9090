package repository

import (
	"context"

	"ugandapi-chat/internal/domain/chat"
	"ugandapi-chat/internal/domain/user"
)

// UserRepository persists registered users.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByUsername(ctx context.Context, username string) (user.User, error)
}

// MessageRepository is the chat log: append-only, insertion-ordered.
type MessageRepository interface {
	Append(ctx context.Context, m *chat.Message) error
	Get(ctx context.Context, messageID string) (chat.Message, error)
	List(ctx context.Context) ([]chat.Message, error)
}

// ThreadStore maps a caller to its assistant conversation thread id.
// Get returns "" without error when no thread has been recorded yet.
type ThreadStore interface {
	Get(ctx context.Context, sender string) (string, error)
	Set(ctx context.Context, sender, threadID string) error
}
