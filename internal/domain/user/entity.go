package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents the users table. The password is persisted only as a
// bcrypt hash and never serialized into a response or cookie.
type User struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string      `gorm:"type:text;not null" json:"name"`
	Email          string      `gorm:"type:text;not null;uniqueIndex:idx_users_email" json:"email"`
	PasswordHash   string      `gorm:"type:text;not null" json:"-"`
	CreatedCourses []uuid.UUID `gorm:"type:jsonb;serializer:json" json:"createdCourses"`
	LikedCourses   []uuid.UUID `gorm:"type:jsonb;serializer:json" json:"likedCourses"`
	CreatedAt      time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}
