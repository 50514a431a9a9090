package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Thread key pattern:
// - thread:{sender} - assistant thread id for that caller

// ThreadStore maps each sender to its own assistant thread id, so callers
// never share conversational context.
type ThreadStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// DefaultThreadTTL bounds how long an idle conversation keeps its thread.
const DefaultThreadTTL = 30 * 24 * time.Hour

func NewThreadStore(client *goredis.Client, ttl time.Duration) *ThreadStore {
	if ttl <= 0 {
		ttl = DefaultThreadTTL
	}
	return &ThreadStore{client: client, ttl: ttl}
}

// Get returns the recorded thread id for the sender, or "" on a miss.
func (s *ThreadStore) Get(ctx context.Context, sender string) (string, error) {
	key := fmt.Sprintf("thread:%s", sender)
	threadID, err := s.client.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", nil // no thread yet
	}
	if err != nil {
		return "", err
	}
	return threadID, nil
}

// Set records the thread id for the sender and refreshes its TTL.
func (s *ThreadStore) Set(ctx context.Context, sender, threadID string) error {
	key := fmt.Sprintf("thread:%s", sender)
	return s.client.Set(ctx, key, threadID, s.ttl).Err()
}
