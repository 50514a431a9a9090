package repository

import (
	"context"
	"os"
	"strings"
	"sync"
)

// FileThreadStore keeps a single thread id in a local file, ignoring the
// sender. Every caller without an explicit thread id ends up continuing
// the same assistant conversation. Kept only as a compatibility mode for
// the original deployment; the redis store is the default.
type FileThreadStore struct {
	mu   sync.Mutex
	path string
}

func NewFileThreadStore(path string) *FileThreadStore {
	return &FileThreadStore{path: path}
}

func (s *FileThreadStore) Get(ctx context.Context, sender string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileThreadStore) Set(ctx context.Context, sender, threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path, []byte(threadID), 0o644)
}
