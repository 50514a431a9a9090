package chat

import (
	"time"
)

// Message represents the chat_messages table. A row is created for every
// produced chat turn, including moderation rejections, and is never
// updated or deleted afterwards.
type Message struct {
	MessageID string `gorm:"type:uuid;primaryKey" json:"messageId"`
	// Seq is a database-assigned serial that fixes insertion order even
	// when two messages share a timestamp.
	Seq       uint64    `gorm:"autoIncrement;uniqueIndex" json:"-"`
	Sender    string    `gorm:"type:varchar(50);not null" json:"sender"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
	// ThreadID links messages that share assistant conversational context.
	// Empty for messages that never reached the assistant.
	ThreadID string `gorm:"type:varchar(64);index" json:"thread_id,omitempty"`
}

func (Message) TableName() string {
	return "chat_messages"
}
