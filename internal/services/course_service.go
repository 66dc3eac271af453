package services

import (
	"context"
	"errors"
	"time"

	"courseshare/internal/domain/course"
	"courseshare/internal/repository"
	apperrors "courseshare/pkg/errors"
	"courseshare/pkg/logger"

	"github.com/google/uuid"
)

// DefaultTopCount caps the most-liked and most-recent listings.
const DefaultTopCount = 3

// ListCache serves the hot read-only listings. Implemented by the Redis
// course cache; may be nil, in which case every read hits the store.
type ListCache interface {
	GetList(ctx context.Context, key string) ([]course.Course, bool, error)
	SetList(ctx context.Context, key string, courses []course.Course) error
	Invalidate(ctx context.Context) error
}

// Cache keys, mirrored from the Redis store.
const (
	cacheKeyThumbnail  = "courses:thumbnail"
	cacheKeyMostLiked  = "courses:most-liked"
	cacheKeyMostRecent = "courses:most-recent"
)

type CourseService struct {
	courseRepo repository.CourseRepository
	userRepo   repository.UserRepository
	cache      ListCache
	log        *logger.Logger
}

func NewCourseService(courseRepo repository.CourseRepository, userRepo repository.UserRepository, cache ListCache, log *logger.Logger) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		userRepo:   userRepo,
		cache:      cache,
		log:        log,
	}
}

type CreateCourseInput struct {
	Title        string
	Introduction string
	Tasks        []course.TaskItem
	Pros         string
	Category     string
	Beginner     string
	Intermediate string
	Advance      string
	Link         string
	UserID       uuid.UUID
	Video        map[string]any
}

// CreateCourseResult carries the persisted course plus a warning when the
// best-effort owner link could not be written. The course itself is still
// saved in that case.
type CreateCourseResult struct {
	Course           course.Course
	OwnerLinkWarning string
}

type UpdateCourseInput struct {
	Title        *string
	Introduction *string
	Tasks        []course.TaskItem
	Pros         *string
	Category     *string
	Beginner     *string
	Intermediate *string
	Advance      *string
	Link         *string
	Video        map[string]any
	Liked        *int64
}

// GetByID returns (nil, nil) when no course has the id; a missing course is
// an empty payload, not an error.
func (s *CourseService) GetByID(ctx context.Context, id uuid.UUID) (*course.Course, error) {
	c, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// ListAll serves the thumbnail listing.
func (s *CourseService) ListAll(ctx context.Context) ([]course.Course, error) {
	if cached, ok := s.cachedList(ctx, cacheKeyThumbnail); ok {
		return cached, nil
	}

	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	s.fillCache(ctx, cacheKeyThumbnail, courses)
	return courses, nil
}

func (s *CourseService) ListByCategory(ctx context.Context, category string) ([]course.Course, error) {
	return s.courseRepo.GetByCategory(ctx, category)
}

// Create persists the course, then links it to the owning user. The link is
// best-effort: a failure surfaces as a warning on the result, never as an
// error, and never unwinds the already-persisted course.
func (s *CourseService) Create(ctx context.Context, in CreateCourseInput) (CreateCourseResult, error) {
	newCourse := &course.Course{
		ID:           uuid.New(),
		Title:        in.Title,
		Introduction: in.Introduction,
		Tasks:        in.Tasks,
		Pros:         in.Pros,
		Category:     in.Category,
		Beginner:     in.Beginner,
		Intermediate: in.Intermediate,
		Advance:      in.Advance,
		Link:         in.Link,
		UserID:       in.UserID,
		Video:        in.Video,
		Liked:        0,
		CreatedAt:    time.Now(),
	}

	if err := s.courseRepo.Create(ctx, newCourse); err != nil {
		return CreateCourseResult{}, err
	}

	result := CreateCourseResult{Course: *newCourse}
	if err := s.userRepo.AppendCreatedCourse(ctx, in.UserID, newCourse.ID); err != nil {
		result.OwnerLinkWarning = "course saved, but linking it to the user failed"
		if s.log != nil {
			s.log.Warnf("owner link failed for course %s, user %s: %v", newCourse.ID, in.UserID, err)
		}
	}

	s.invalidateCache(ctx)
	return result, nil
}

// ListByUser resolves the courses named in the user's createdCourses list.
// An unknown user is an error; an empty list is an empty result.
func (s *CourseService) ListByUser(ctx context.Context, userID uuid.UUID) ([]course.Course, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.courseRepo.GetByIDs(ctx, u.CreatedCourses)
}

// Delete removes and returns the course. The owning user's createdCourses
// list is deliberately left untouched (no cascade).
func (s *CourseService) Delete(ctx context.Context, id uuid.UUID) (course.Course, error) {
	deleted, err := s.courseRepo.Delete(ctx, id)
	if err != nil {
		return course.Course{}, err
	}
	s.invalidateCache(ctx)
	return deleted, nil
}

// Update merges the set fields into the stored course and returns the result.
func (s *CourseService) Update(ctx context.Context, id uuid.UUID, in UpdateCourseInput) (course.Course, error) {
	fields := in.fields()
	if len(fields) == 0 {
		return s.courseRepo.GetByID(ctx, id)
	}

	updated, err := s.courseRepo.Update(ctx, id, fields)
	if err != nil {
		return course.Course{}, err
	}
	s.invalidateCache(ctx)
	return updated, nil
}

func (s *CourseService) MostLiked(ctx context.Context, limit int) ([]course.Course, error) {
	if limit <= 0 {
		limit = DefaultTopCount
	}
	if limit == DefaultTopCount {
		if cached, ok := s.cachedList(ctx, cacheKeyMostLiked); ok {
			return cached, nil
		}
	}

	courses, err := s.courseRepo.MostLiked(ctx, limit)
	if err != nil {
		return nil, err
	}
	if limit == DefaultTopCount {
		s.fillCache(ctx, cacheKeyMostLiked, courses)
	}
	return courses, nil
}

func (s *CourseService) MostRecent(ctx context.Context, limit int) ([]course.Course, error) {
	if limit <= 0 {
		limit = DefaultTopCount
	}
	if limit == DefaultTopCount {
		if cached, ok := s.cachedList(ctx, cacheKeyMostRecent); ok {
			return cached, nil
		}
	}

	courses, err := s.courseRepo.MostRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if limit == DefaultTopCount {
		s.fillCache(ctx, cacheKeyMostRecent, courses)
	}
	return courses, nil
}

func (in UpdateCourseInput) fields() map[string]any {
	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Introduction != nil {
		fields["introduction"] = *in.Introduction
	}
	if in.Tasks != nil {
		fields["tasks"] = in.Tasks
	}
	if in.Pros != nil {
		fields["pros"] = *in.Pros
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.Beginner != nil {
		fields["beginner"] = *in.Beginner
	}
	if in.Intermediate != nil {
		fields["intermediate"] = *in.Intermediate
	}
	if in.Advance != nil {
		fields["advance"] = *in.Advance
	}
	if in.Link != nil {
		fields["link"] = *in.Link
	}
	if in.Video != nil {
		fields["video"] = in.Video
	}
	if in.Liked != nil {
		fields["liked"] = *in.Liked
	}
	return fields
}

func (s *CourseService) cachedList(ctx context.Context, key string) ([]course.Course, bool) {
	if s.cache == nil {
		return nil, false
	}
	courses, ok, err := s.cache.GetList(ctx, key)
	if err != nil {
		if s.log != nil {
			s.log.Warnf("course cache read failed for %s: %v", key, err)
		}
		return nil, false
	}
	return courses, ok
}

func (s *CourseService) fillCache(ctx context.Context, key string, courses []course.Course) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetList(ctx, key, courses); err != nil && s.log != nil {
		s.log.Warnf("course cache write failed for %s: %v", key, err)
	}
}

func (s *CourseService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil && s.log != nil {
		s.log.Warnf("course cache invalidation failed: %v", err)
	}
}
