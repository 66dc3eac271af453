package course

import (
	"time"

	"github.com/google/uuid"
)

// TaskItem wraps a single step of a course's learning path.
type TaskItem struct {
	Value string `json:"value"`
}

// Course represents the courses table. Tasks and Video keep the
// document-shaped fields of the original records as JSONB columns.
type Course struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string         `gorm:"type:text;not null;uniqueIndex:idx_courses_title" json:"title"`
	Introduction string         `gorm:"type:text" json:"introduction"`
	Tasks        []TaskItem     `gorm:"type:jsonb;serializer:json" json:"tasks"`
	Pros         string         `gorm:"type:text" json:"pros"`
	Category     string         `gorm:"type:text;index:idx_courses_category" json:"category"`
	Beginner     string         `gorm:"type:text" json:"beginner"`
	Intermediate string         `gorm:"type:text" json:"intermediate"`
	Advance      string         `gorm:"type:text" json:"advance"`
	Link         string         `gorm:"type:text" json:"link"`
	UserID       uuid.UUID      `gorm:"type:uuid;index:idx_courses_user" json:"userid"`
	Video        map[string]any `gorm:"type:jsonb;serializer:json;not null" json:"video"`
	Liked        int64          `gorm:"not null;default:0" json:"liked"`
	CreatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"date"`
}
