package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ugandapi-chat/internal/domain/chat"
	"ugandapi-chat/internal/moderation"
	"ugandapi-chat/internal/repository"
	relay_errors "ugandapi-chat/pkg/errors"
	"ugandapi-chat/pkg/logger"

	"github.com/google/uuid"
)

// AssistantClient is the slice of the assistant service the relay needs:
// open a thread, append the user's message, run to completion.
type AssistantClient interface {
	CreateThread(ctx context.Context) (string, error)
	AddUserMessage(ctx context.Context, threadID, content string) error
	Run(ctx context.Context, threadID string) (string, error)
}

// ChatService turns one inbound chat message into one assistant reply:
// moderate, resolve the conversation thread, forward, persist, respond.
type ChatService struct {
	assistant AssistantClient
	guard     moderation.Guard
	threads   repository.ThreadStore
	messages  repository.MessageRepository
	logger    *logger.Logger
}

func NewChatService(
	assistant AssistantClient,
	guard moderation.Guard,
	threads repository.ThreadStore,
	messages repository.MessageRepository,
	l *logger.Logger,
) *ChatService {
	return &ChatService{
		assistant: assistant,
		guard:     guard,
		threads:   threads,
		messages:  messages,
		logger:    l,
	}
}

type PostInput struct {
	Sender   string
	Content  string
	ThreadID string
}

// Post relays one chat turn. Moderation rejections do not fail the call:
// the rejection description comes back as an ordinary chat message, a
// wire format existing clients depend on. Transport failures on the
// moderation or assistant side surface as ErrServiceUnavailable.
func (s *ChatService) Post(ctx context.Context, in PostInput) (chat.Message, error) {
	if in.Sender == "" || in.Content == "" {
		return chat.Message{}, relay_errors.ErrInvalidInput
	}

	if err := s.guard.Validate(ctx, in.Content); err != nil {
		if errors.Is(err, relay_errors.ErrContentRejected) {
			s.logger.Warnf("moderation rejected message from %s: %s", in.Sender, err)
			rejected := chat.Message{
				MessageID: uuid.NewString(),
				Sender:    in.Sender,
				Content:   err.Error(),
				Timestamp: time.Now().UTC(),
			}
			if appendErr := s.messages.Append(ctx, &rejected); appendErr != nil {
				return chat.Message{}, appendErr
			}
			return rejected, nil
		}
		s.logger.Errorf("moderation check failed: %s", err)
		return chat.Message{}, fmt.Errorf("%w: moderation service", relay_errors.ErrServiceUnavailable)
	}

	threadID, err := s.resolveThread(ctx, in)
	if err != nil {
		return chat.Message{}, err
	}

	if err := s.assistant.AddUserMessage(ctx, threadID, in.Content); err != nil {
		s.logger.Errorf("appending message to thread %s failed: %s", threadID, err)
		return chat.Message{}, fmt.Errorf("%w: assistant service", relay_errors.ErrServiceUnavailable)
	}

	reply, err := s.assistant.Run(ctx, threadID)
	if err != nil {
		s.logger.Errorf("assistant run on thread %s failed: %s", threadID, err)
		return chat.Message{}, fmt.Errorf("%w: assistant service", relay_errors.ErrServiceUnavailable)
	}

	message := chat.Message{
		MessageID: uuid.NewString(),
		Sender:    in.Sender,
		Content:   reply,
		Timestamp: time.Now().UTC(),
		ThreadID:  threadID,
	}

	if err := s.messages.Append(ctx, &message); err != nil {
		return chat.Message{}, err
	}

	return message, nil
}

// resolveThread picks the conversation thread for this turn: an explicit
// id from the request wins, otherwise the sender's recorded thread, and
// on a miss a fresh thread is created and recorded.
func (s *ChatService) resolveThread(ctx context.Context, in PostInput) (string, error) {
	if in.ThreadID != "" {
		return in.ThreadID, nil
	}

	threadID, err := s.threads.Get(ctx, in.Sender)
	if err != nil {
		s.logger.Errorf("thread store lookup failed: %s", err)
		return "", fmt.Errorf("%w: thread store", relay_errors.ErrServiceUnavailable)
	}
	if threadID != "" {
		return threadID, nil
	}

	threadID, err = s.assistant.CreateThread(ctx)
	if err != nil {
		s.logger.Errorf("thread creation failed: %s", err)
		return "", fmt.Errorf("%w: assistant service", relay_errors.ErrServiceUnavailable)
	}

	if err := s.threads.Set(ctx, in.Sender, threadID); err != nil {
		s.logger.Errorf("recording thread %s failed: %s", threadID, err)
		return "", fmt.Errorf("%w: thread store", relay_errors.ErrServiceUnavailable)
	}

	return threadID, nil
}

func (s *ChatService) List(ctx context.Context) ([]chat.Message, error) {
	return s.messages.List(ctx)
}

func (s *ChatService) Get(ctx context.Context, messageID string) (chat.Message, error) {
	return s.messages.Get(ctx, messageID)
}
