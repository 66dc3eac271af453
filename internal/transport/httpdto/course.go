package httpdto

import (
	"courseshare/internal/domain/course"
)

type CreateCourseRequest struct {
	Title        string            `json:"title"`
	Introduction string            `json:"introduction"`
	Tasks        []course.TaskItem `json:"tasks"`
	Pros         string            `json:"pros"`
	Category     string            `json:"category"`
	Beginner     string            `json:"beginner"`
	Intermediate string            `json:"intermediate"`
	Advance      string            `json:"advance"`
	Link         string            `json:"link"`
	UserID       string            `json:"userid"`
	Video        map[string]any    `json:"video"`
}

// UpdateCourseRequest carries a partial course; only the set fields are
// merged into the stored record.
type UpdateCourseRequest struct {
	Title        *string           `json:"title"`
	Introduction *string           `json:"introduction"`
	Tasks        []course.TaskItem `json:"tasks"`
	Pros         *string           `json:"pros"`
	Category     *string           `json:"category"`
	Beginner     *string           `json:"beginner"`
	Intermediate *string           `json:"intermediate"`
	Advance      *string           `json:"advance"`
	Link         *string           `json:"link"`
	Video        map[string]any    `json:"video"`
	Liked        *int64            `json:"liked"`
}

type UpdateCourseResponse struct {
	Message string        `json:"message"`
	Course  course.Course `json:"course"`
}
