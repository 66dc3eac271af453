package handler

import (
	"context"
	"sort"

	"courseshare/config"
	"courseshare/internal/domain/course"
	"courseshare/internal/domain/user"
	"courseshare/internal/redis"
	"courseshare/internal/services"
	apperrors "courseshare/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// In-memory fakes so the handlers run against the real services without a
// database or redis behind them.

type memUserRepo struct {
	users map[uuid.UUID]user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]user.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return apperrors.ErrAlreadyExists
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, apperrors.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, apperrors.ErrNotFound
}

func (r *memUserRepo) AppendCreatedCourse(_ context.Context, userID, courseID uuid.UUID) error {
	u, ok := r.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.CreatedCourses = append(u.CreatedCourses, courseID)
	r.users[userID] = u
	return nil
}

type memCourseRepo struct {
	courses map[uuid.UUID]course.Course
}

func newMemCourseRepo() *memCourseRepo {
	return &memCourseRepo{courses: make(map[uuid.UUID]course.Course)}
}

func (r *memCourseRepo) Create(_ context.Context, c *course.Course) error {
	for _, existing := range r.courses {
		if existing.Title == c.Title {
			return apperrors.ErrAlreadyExists
		}
	}
	r.courses[c.ID] = *c
	return nil
}

func (r *memCourseRepo) GetByID(_ context.Context, id uuid.UUID) (course.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return course.Course{}, apperrors.ErrNotFound
	}
	return c, nil
}

func (r *memCourseRepo) GetAll(_ context.Context) ([]course.Course, error) {
	result := []course.Course{}
	for _, c := range r.courses {
		result = append(result, c)
	}
	return result, nil
}

func (r *memCourseRepo) GetByCategory(_ context.Context, category string) ([]course.Course, error) {
	result := []course.Course{}
	for _, c := range r.courses {
		if c.Category == category {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *memCourseRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]course.Course, error) {
	result := []course.Course{}
	for _, id := range ids {
		if c, ok := r.courses[id]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *memCourseRepo) Update(_ context.Context, id uuid.UUID, fields map[string]any) (course.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return course.Course{}, apperrors.ErrNotFound
	}
	if title, ok := fields["title"].(string); ok {
		c.Title = title
	}
	if intro, ok := fields["introduction"].(string); ok {
		c.Introduction = intro
	}
	if liked, ok := fields["liked"].(int64); ok {
		c.Liked = liked
	}
	r.courses[id] = c
	return c, nil
}

func (r *memCourseRepo) Delete(_ context.Context, id uuid.UUID) (course.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return course.Course{}, apperrors.ErrNotFound
	}
	delete(r.courses, id)
	return c, nil
}

func (r *memCourseRepo) MostLiked(_ context.Context, limit int) ([]course.Course, error) {
	result, _ := r.GetAll(context.Background())
	sort.SliceStable(result, func(i, j int) bool { return result[i].Liked > result[j].Liked })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *memCourseRepo) MostRecent(_ context.Context, limit int) ([]course.Course, error) {
	result, _ := r.GetAll(context.Background())
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type memSessionStore struct {
	records map[uuid.UUID]redis.SessionRecord
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{records: make(map[uuid.UUID]redis.SessionRecord)}
}

func (s *memSessionStore) Put(_ context.Context, record *redis.SessionRecord) error {
	s.records[record.ID] = *record
	return nil
}

func (s *memSessionStore) Get(_ context.Context, id uuid.UUID) (*redis.SessionRecord, error) {
	record, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *memSessionStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.records, id)
	return nil
}

type testEnv struct {
	router     *gin.Engine
	userRepo   *memUserRepo
	courseRepo *memCourseRepo
	sessions   *memSessionStore
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		SessionSecret:     "test-secret",
		SessionExpiryDays: 7,
		BcryptCost:        bcrypt.MinCost,
	}

	userRepo := newMemUserRepo()
	courseRepo := newMemCourseRepo()
	sessions := newMemSessionStore()

	authHandler := NewAuthHandler(services.NewAuthService(userRepo, sessions, cfg))
	courseHandler := NewCourseHandler(services.NewCourseService(courseRepo, userRepo, nil, nil))

	router := gin.New()
	router.GET("/course/:id", courseHandler.GetByID)
	router.GET("/category/:id", courseHandler.ByCategory)
	router.GET("/thumbnail", courseHandler.Thumbnail)
	router.POST("/create", courseHandler.Create)
	router.GET("/mycourses/:userId", courseHandler.MyCourses)
	router.DELETE("/cards/:id", courseHandler.Delete)
	router.PUT("/update/:id", courseHandler.Update)
	router.GET("/most-liked", courseHandler.MostLiked)
	router.GET("/most-recent", courseHandler.MostRecent)
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.POST("/logout", authHandler.Logout)
	router.GET("/check-login", authHandler.CheckLogin)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Page not found"})
	})

	return &testEnv{
		router:     router,
		userRepo:   userRepo,
		courseRepo: courseRepo,
		sessions:   sessions,
	}
}
