package main

import (
	"log"
	"time"

	"courseshare/config"
	"courseshare/internal/domain/course"
	"courseshare/internal/domain/user"
	"courseshare/internal/handler"
	"courseshare/internal/redis"
	"courseshare/internal/repository"
	"courseshare/internal/server"
	"courseshare/internal/services"
	"courseshare/pkg/database"
	"courseshare/pkg/logger"
)

const courseCacheTTL = time.Minute

func main() {
	cfg := config.LoadConfig()

	logMode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		logMode = logger.ProductionMode
	}
	l := logger.New(logMode)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&user.User{}, &course.Course{}); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	redisClient := redis.NewClient(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	sessionTTL := time.Duration(cfg.SessionExpiryDays) * 24 * time.Hour
	sessions := redis.NewSessionStore(redisClient, sessionTTL)
	courseCache := redis.NewCourseCache(redisClient, courseCacheTTL)

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)

	authService := services.NewAuthService(userRepo, sessions, cfg)
	courseService := services.NewCourseService(courseRepo, userRepo, courseCache, l)

	handlers := &server.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		Course: handler.NewCourseHandler(courseService),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, db)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
}
