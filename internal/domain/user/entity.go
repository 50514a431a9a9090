package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents the users table. Username is immutable after creation
// and only the bcrypt hash of the password is ever stored.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(128);not null" json:"-"`
	Email        string    `gorm:"type:varchar(255)" json:"email"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
