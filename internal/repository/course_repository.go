package repository

import (
	"context"
	"encoding/json"
	"errors"

	"courseshare/internal/domain/course"
	apperrors "courseshare/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresCourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &PostgresCourseRepository{db: db}
}

func (r *PostgresCourseRepository) Create(ctx context.Context, c *course.Course) error {
	res := r.db.WithContext(ctx).Create(c)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return apperrors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresCourseRepository) GetByID(ctx context.Context, id uuid.UUID) (course.Course, error) {
	var c course.Course
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return course.Course{}, apperrors.ErrNotFound
		}
		return course.Course{}, err
	}
	return c, nil
}

func (r *PostgresCourseRepository) GetAll(ctx context.Context) ([]course.Course, error) {
	courses := []course.Course{}
	if err := r.db.WithContext(ctx).Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *PostgresCourseRepository) GetByCategory(ctx context.Context, category string) ([]course.Course, error) {
	courses := []course.Course{}
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *PostgresCourseRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]course.Course, error) {
	courses := []course.Course{}
	if len(ids) == 0 {
		return courses, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *PostgresCourseRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (course.Course, error) {
	// Map-based Updates bypasses the model serializers, so the jsonb
	// columns are marshaled here.
	converted := make(map[string]any, len(fields))
	for k, v := range fields {
		switch k {
		case "tasks", "video":
			data, err := json.Marshal(v)
			if err != nil {
				return course.Course{}, err
			}
			converted[k] = gorm.Expr("?::jsonb", string(data))
		default:
			converted[k] = v
		}
	}

	res := r.db.WithContext(ctx).
		Model(&course.Course{}).
		Where("id = ?", id).
		Updates(converted)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return course.Course{}, apperrors.ErrAlreadyExists
		}
		return course.Course{}, res.Error
	}
	if res.RowsAffected == 0 {
		return course.Course{}, apperrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresCourseRepository) Delete(ctx context.Context, id uuid.UUID) (course.Course, error) {
	deleted, err := r.GetByID(ctx, id)
	if err != nil {
		return course.Course{}, err
	}
	res := r.db.WithContext(ctx).Delete(&course.Course{}, "id = ?", id)
	if res.Error != nil {
		return course.Course{}, res.Error
	}
	if res.RowsAffected == 0 {
		return course.Course{}, apperrors.ErrNotFound
	}
	return deleted, nil
}

func (r *PostgresCourseRepository) MostLiked(ctx context.Context, limit int) ([]course.Course, error) {
	courses := []course.Course{}
	err := r.db.WithContext(ctx).
		Order("liked DESC").
		Limit(limit).
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *PostgresCourseRepository) MostRecent(ctx context.Context, limit int) ([]course.Course, error) {
	courses := []course.Course{}
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}
