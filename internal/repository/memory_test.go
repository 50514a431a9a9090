package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ugandapi-chat/internal/domain/chat"
	relay_errors "ugandapi-chat/pkg/errors"

	"github.com/google/uuid"
)

func TestMemoryMessageRepository_AppendGetList(t *testing.T) {
	t.Parallel()

	repo := NewMemoryMessageRepository()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		m := &chat.Message{
			MessageID: uuid.NewString(),
			Sender:    "alice",
			Content:   fmt.Sprintf("message %d", i),
			Timestamp: time.Now(),
		}
		if err := repo.Append(ctx, m); err != nil {
			t.Fatalf("Append error: %v", err)
		}
		ids = append(ids, m.MessageID)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("List returned %d messages, want 3", len(list))
	}
	for i, m := range list {
		if m.MessageID != ids[i] {
			t.Fatalf("insertion order broken at %d: got %s want %s", i, m.MessageID, ids[i])
		}
	}

	got, err := repo.Get(ctx, ids[1])
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Content != "message 1" {
		t.Fatalf("Get returned %q, want %q", got.Content, "message 1")
	}
}

func TestMemoryMessageRepository_EqualTimestampsKeepInsertionOrder(t *testing.T) {
	t.Parallel()

	repo := NewMemoryMessageRepository()
	ctx := context.Background()
	stamp := time.Now()

	var ids []string
	for i := 0; i < 5; i++ {
		m := &chat.Message{
			MessageID: uuid.NewString(),
			Sender:    "alice",
			Content:   fmt.Sprintf("burst %d", i),
			Timestamp: stamp,
		}
		if err := repo.Append(ctx, m); err != nil {
			t.Fatalf("Append error: %v", err)
		}
		ids = append(ids, m.MessageID)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	for i, m := range list {
		if m.MessageID != ids[i] {
			t.Fatalf("insertion order broken at %d: got %s want %s", i, m.MessageID, ids[i])
		}
	}
}

func TestMemoryMessageRepository_GetMissing(t *testing.T) {
	t.Parallel()

	repo := NewMemoryMessageRepository()
	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, relay_errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryMessageRepository_DuplicateID(t *testing.T) {
	t.Parallel()

	repo := NewMemoryMessageRepository()
	ctx := context.Background()
	m := &chat.Message{MessageID: "fixed-id", Sender: "alice", Content: "hi", Timestamp: time.Now()}

	if err := repo.Append(ctx, m); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if err := repo.Append(ctx, m); !errors.Is(err, relay_errors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}
