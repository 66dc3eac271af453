package repository

import (
	"context"

	"github.com/google/uuid"

	"courseshare/internal/domain/course"
	"courseshare/internal/domain/user"
)

type CourseRepository interface {
	Create(ctx context.Context, c *course.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (course.Course, error)
	GetAll(ctx context.Context) ([]course.Course, error)
	GetByCategory(ctx context.Context, category string) ([]course.Course, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]course.Course, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (course.Course, error)
	Delete(ctx context.Context, id uuid.UUID) (course.Course, error)
	MostLiked(ctx context.Context, limit int) ([]course.Course, error)
	MostRecent(ctx context.Context, limit int) ([]course.Course, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	AppendCreatedCourse(ctx context.Context, userID, courseID uuid.UUID) error
}
