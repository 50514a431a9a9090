package repository

import (
	"context"
	"errors"

	"ugandapi-chat/internal/domain/chat"
	relay_errors "ugandapi-chat/pkg/errors"

	"gorm.io/gorm"
)

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Append(ctx context.Context, m *chat.Message) error {
	res := r.db.WithContext(ctx).Create(m)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return relay_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresMessageRepository) Get(ctx context.Context, messageID string) (chat.Message, error) {
	var m chat.Message
	err := r.db.WithContext(ctx).
		Where("message_id = ?", messageID).
		First(&m).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return chat.Message{}, relay_errors.ErrNotFound
		}
		return chat.Message{}, err
	}

	return m, nil
}

func (r *PostgresMessageRepository) List(ctx context.Context) ([]chat.Message, error) {
	var messages []chat.Message
	err := r.db.WithContext(ctx).
		Order("seq ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
