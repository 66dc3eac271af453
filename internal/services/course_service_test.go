package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"courseshare/internal/domain/course"
	"courseshare/internal/domain/user"
	apperrors "courseshare/pkg/errors"

	"github.com/google/uuid"
)

type stubCourseRepo struct {
	courses map[uuid.UUID]course.Course
}

func newStubCourseRepo() *stubCourseRepo {
	return &stubCourseRepo{courses: make(map[uuid.UUID]course.Course)}
}

func (r *stubCourseRepo) Create(_ context.Context, c *course.Course) error {
	for _, existing := range r.courses {
		if existing.Title == c.Title {
			return apperrors.ErrAlreadyExists
		}
	}
	r.courses[c.ID] = *c
	return nil
}

func (r *stubCourseRepo) GetByID(_ context.Context, id uuid.UUID) (course.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return course.Course{}, apperrors.ErrNotFound
	}
	return c, nil
}

func (r *stubCourseRepo) GetAll(_ context.Context) ([]course.Course, error) {
	return r.sorted(func(a, b course.Course) bool { return false }, 0), nil
}

func (r *stubCourseRepo) GetByCategory(_ context.Context, category string) ([]course.Course, error) {
	result := []course.Course{}
	for _, c := range r.courses {
		if c.Category == category {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *stubCourseRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]course.Course, error) {
	result := []course.Course{}
	for _, id := range ids {
		if c, ok := r.courses[id]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *stubCourseRepo) Update(_ context.Context, id uuid.UUID, fields map[string]any) (course.Course, error) {
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

func (r *stubCourseRepo) Delete(_ context.Context, id uuid.UUID) (course.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return course.Course{}, apperrors.ErrNotFound
	}
	delete(r.courses, id)
	return c, nil
}

func (r *stubCourseRepo) MostLiked(_ context.Context, limit int) ([]course.Course, error) {
	return r.sorted(func(a, b course.Course) bool { return a.Liked > b.Liked }, limit), nil
}

func (r *stubCourseRepo) MostRecent(_ context.Context, limit int) ([]course.Course, error) {
	return r.sorted(func(a, b course.Course) bool { return a.CreatedAt.After(b.CreatedAt) }, limit), nil
}

func (r *stubCourseRepo) sorted(less func(a, b course.Course) bool, limit int) []course.Course {
	result := []course.Course{}
	for _, c := range r.courses {
		result = append(result, c)
	}
	sort.SliceStable(result, func(i, j int) bool { return less(result[i], result[j]) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

type countingCache struct {
	lists       map[string][]course.Course
	invalidated int
}

func newCountingCache() *countingCache {
	return &countingCache{lists: make(map[string][]course.Course)}
}

func (c *countingCache) GetList(_ context.Context, key string) ([]course.Course, bool, error) {
	list, ok := c.lists[key]
	return list, ok, nil
}

func (c *countingCache) SetList(_ context.Context, key string, courses []course.Course) error {
	c.lists[key] = courses
	return nil
}

func (c *countingCache) Invalidate(_ context.Context) error {
	c.invalidated++
	c.lists = make(map[string][]course.Course)
	return nil
}

func newTestCourseService() (*CourseService, *stubCourseRepo, *stubUserRepo, *countingCache) {
	courseRepo := newStubCourseRepo()
	userRepo := newStubUserRepo()
	cache := newCountingCache()
	return NewCourseService(courseRepo, userRepo, cache, nil), courseRepo, userRepo, cache
}

func seedUser(repo *stubUserRepo) user.User {
	u := user.User{ID: uuid.New(), Name: "A", Email: "a@x.com", PasswordHash: "x"}
	repo.users[u.ID] = u
	return u
}

func createInput(title string, userID uuid.UUID) CreateCourseInput {
	return CreateCourseInput{
		Title:    title,
		Category: "go",
		UserID:   userID,
		Video:    map[string]any{"url": "https://example.com/v"},
	}
}

func TestCreateAppendsOwnerLinkExactlyOnce(t *testing.T) {
	svc, _, userRepo, _ := newTestCourseService()
	owner := seedUser(userRepo)

	result, err := svc.Create(context.Background(), createInput("Go Basics", owner.ID))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if result.OwnerLinkWarning != "" {
		t.Fatalf("unexpected warning: %q", result.OwnerLinkWarning)
	}

	linked := userRepo.users[owner.ID].CreatedCourses
	if len(linked) != 1 || linked[0] != result.Course.ID {
		t.Fatalf("createdCourses = %v, want exactly [%s]", linked, result.Course.ID)
	}

	mine, err := svc.ListByUser(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != result.Course.ID {
		t.Fatalf("ListByUser = %v, want the new course", mine)
	}
}

func TestCreateSurvivesOwnerLinkFailure(t *testing.T) {
	svc, courseRepo, userRepo, _ := newTestCourseService()
	userRepo.appendErr = apperrors.ErrNotFound

	result, err := svc.Create(context.Background(), createInput("Orphan Course", uuid.New()))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if result.OwnerLinkWarning == "" {
		t.Fatal("expected an owner-link warning, got none")
	}
	if _, ok := courseRepo.courses[result.Course.ID]; !ok {
		t.Fatal("course was not persisted despite primary success")
	}
}

func TestCreateDuplicateTitle(t *testing.T) {
	svc, _, userRepo, _ := newTestCourseService()
	owner := seedUser(userRepo)

	if _, err := svc.Create(context.Background(), createInput("Go Basics", owner.ID)); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}
	_, err := svc.Create(context.Background(), createInput("Go Basics", owner.ID))
	if !errors.Is(err, apperrors.ErrAlreadyExists) {
		t.Fatalf("duplicate Create error = %v, want ErrAlreadyExists", err)
	}
}

func TestListByUser(t *testing.T) {
	svc, _, userRepo, _ := newTestCourseService()
	owner := seedUser(userRepo)

	mine, err := svc.ListByUser(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ListByUser with empty createdCourses returned error: %v", err)
	}
	if len(mine) != 0 {
		t.Fatalf("ListByUser = %v, want empty list", mine)
	}

	if _, err := svc.ListByUser(context.Background(), uuid.New()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("ListByUser for unknown user error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	svc, _, userRepo, _ := newTestCourseService()
	owner := seedUser(userRepo)

	result, err := svc.Create(context.Background(), createInput("Go Basics", owner.ID))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	deleted, err := svc.Delete(context.Background(), result.Course.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted.Title != "Go Basics" {
		t.Fatalf("Delete returned %q, want the deleted course", deleted.Title)
	}

	found, err := svc.GetByID(context.Background(), result.Course.ID)
	if err != nil {
		t.Fatalf("GetByID after delete returned error: %v", err)
	}
	if found != nil {
		t.Fatalf("GetByID after delete = %v, want nil", found)
	}

	// No cascade: the owner's list still names the deleted id.
	if linked := userRepo.users[owner.ID].CreatedCourses; len(linked) != 1 {
		t.Fatalf("createdCourses after delete = %v, want the stale link kept", linked)
	}

	if _, err := svc.Delete(context.Background(), uuid.New()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Delete of unknown id error = %v, want ErrNotFound", err)
	}
}

func TestMostLikedOrderAndCap(t *testing.T) {
	svc, courseRepo, _, _ := newTestCourseService()

	likes := []int64{5, 12, 1, 9, 7}
	for i, n := range likes {
		c := course.Course{ID: uuid.New(), Title: string(rune('A' + i)), Liked: n}
		courseRepo.courses[c.ID] = c
	}

	top, err := svc.MostLiked(context.Background(), DefaultTopCount)
	if err != nil {
		t.Fatalf("MostLiked returned error: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("MostLiked returned %d courses, want 3", len(top))
	}
	want := []int64{12, 9, 7}
	for i, c := range top {
		if c.Liked != want[i] {
			t.Fatalf("MostLiked[%d].Liked = %d, want %d", i, c.Liked, want[i])
		}
	}
}

func TestMostRecentOrderAndCap(t *testing.T) {
	svc, courseRepo, _, _ := newTestCourseService()

	base := time.Now()
	for i := 0; i < 5; i++ {
		c := course.Course{ID: uuid.New(), Title: string(rune('A' + i)), CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		courseRepo.courses[c.ID] = c
	}

	recent, err := svc.MostRecent(context.Background(), DefaultTopCount)
	if err != nil {
		t.Fatalf("MostRecent returned error: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("MostRecent returned %d courses, want 3", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].CreatedAt.After(recent[i-1].CreatedAt) {
			t.Fatalf("MostRecent not ordered descending at index %d", i)
		}
	}
}

func TestUpdate(t *testing.T) {
	svc, _, userRepo, _ := newTestCourseService()
	owner := seedUser(userRepo)

	result, err := svc.Create(context.Background(), createInput("Go Basics", owner.ID))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	intro := "an introduction"
	updated, err := svc.Update(context.Background(), result.Course.ID, UpdateCourseInput{Introduction: &intro})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Introduction != intro {
		t.Fatalf("Update introduction = %q, want %q", updated.Introduction, intro)
	}
	if updated.Title != "Go Basics" {
		t.Fatalf("Update clobbered unrelated field: title = %q", updated.Title)
	}

	if _, err := svc.Update(context.Background(), uuid.New(), UpdateCourseInput{Introduction: &intro}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Update of unknown id error = %v, want ErrNotFound", err)
	}
}

func TestWritesInvalidateListCache(t *testing.T) {
	svc, _, userRepo, cache := newTestCourseService()
	owner := seedUser(userRepo)

	if _, err := svc.ListAll(context.Background()); err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if _, ok := cache.lists[cacheKeyThumbnail]; !ok {
		t.Fatal("ListAll did not populate the thumbnail cache")
	}

	if _, err := svc.Create(context.Background(), createInput("Go Basics", owner.ID)); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if cache.invalidated == 0 {
		t.Fatal("Create did not invalidate the list cache")
	}

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll after create returned error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("ListAll after create = %d courses, want 1", len(all))
	}
}
