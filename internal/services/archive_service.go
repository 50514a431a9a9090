package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ugandapi-chat/internal/repository"
	relay_errors "ugandapi-chat/pkg/errors"
	"ugandapi-chat/pkg/logger"
)

// ObjectStore is the slice of object storage the archiver needs.
type ObjectStore interface {
	PutObject(ctx context.Context, key, contentType string, body []byte) error
}

// ArchiveService snapshots the chat log to object storage as JSON.
type ArchiveService struct {
	messages repository.MessageRepository
	store    ObjectStore
	logger   *logger.Logger
}

func NewArchiveService(messages repository.MessageRepository, store ObjectStore, l *logger.Logger) *ArchiveService {
	return &ArchiveService{messages: messages, store: store, logger: l}
}

// Archive uploads the full chat log and returns the object key.
func (s *ArchiveService) Archive(ctx context.Context) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("%w: object storage not configured", relay_errors.ErrServiceUnavailable)
	}

	messages, err := s.messages.List(ctx)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(messages)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("transcripts/%s.json", time.Now().UTC().Format("2006-01-02T15-04-05Z"))
	if err := s.store.PutObject(ctx, key, "application/json", payload); err != nil {
		s.logger.Errorf("transcript upload failed: %s", err)
		return "", fmt.Errorf("%w: object storage", relay_errors.ErrServiceUnavailable)
	}

	s.logger.Infof("archived %d messages to %s", len(messages), key)
	return key, nil
}
