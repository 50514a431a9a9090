package repository

import (
	"context"
	"path/filepath"
	"testing"
)

func TestFileThreadStore_MissingFile(t *testing.T) {
	t.Parallel()

	store := NewFileThreadStore(filepath.Join(t.TempDir(), "thread_id.txt"))
	threadID, err := store.Get(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if threadID != "" {
		t.Fatalf("expected empty thread id, got %q", threadID)
	}
}

func TestFileThreadStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store := NewFileThreadStore(filepath.Join(t.TempDir(), "thread_id.txt"))
	ctx := context.Background()

	if err := store.Set(ctx, "alice", "thread_abc123"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// The file mode shares one id across senders.
	for _, sender := range []string{"alice", "bob"} {
		threadID, err := store.Get(ctx, sender)
		if err != nil {
			t.Fatalf("Get(%s) error: %v", sender, err)
		}
		if threadID != "thread_abc123" {
			t.Fatalf("Get(%s) = %q, want thread_abc123", sender, threadID)
		}
	}
}
