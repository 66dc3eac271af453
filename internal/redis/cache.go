package redis

import (
	"context"
	"encoding/json"
	"time"

	"courseshare/internal/domain/course"

	goredis "github.com/redis/go-redis/v9"
)

// Cache keys for the course listings:
// - courses:thumbnail   - full unfiltered listing
// - courses:most-liked  - top N by like counter
// - courses:most-recent - top N by creation time
const (
	KeyThumbnail  = "courses:thumbnail"
	KeyMostLiked  = "courses:most-liked"
	KeyMostRecent = "courses:most-recent"
)

// CourseCache keeps the hot read-only listings in Redis with a short TTL.
// Any course write invalidates all three keys.
type CourseCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewCourseCache(client *goredis.Client, ttl time.Duration) *CourseCache {
	return &CourseCache{client: client, ttl: ttl}
}

// GetList returns (nil, false, nil) on a cache miss.
func (c *CourseCache) GetList(ctx context.Context, key string) ([]course.Course, bool, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var courses []course.Course
	if err := json.Unmarshal([]byte(data), &courses); err != nil {
		return nil, false, err
	}
	return courses, true, nil
}

func (c *CourseCache) SetList(ctx context.Context, key string, courses []course.Course) error {
	data, err := json.Marshal(courses)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *CourseCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, KeyThumbnail, KeyMostLiked, KeyMostRecent).Err()
}
