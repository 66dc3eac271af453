package services

import (
	"context"
	"errors"
	"time"

	"courseshare/config"
	"courseshare/internal/domain/user"
	"courseshare/internal/redis"
	"courseshare/internal/repository"
	apperrors "courseshare/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SessionStore is the server-side session state the auth flow issues and
// revokes. Implemented by the Redis store.
type SessionStore interface {
	Put(ctx context.Context, record *redis.SessionRecord) error
	Get(ctx context.Context, id uuid.UUID) (*redis.SessionRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AuthService struct {
	userRepo      repository.UserRepository
	sessions      SessionStore
	sessionSecret []byte
	sessionTTL    time.Duration
	bcryptCost    int
}

func NewAuthService(userRepo repository.UserRepository, sessions SessionStore, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		sessions:      sessions,
		sessionSecret: []byte(cfg.SessionSecret),
		sessionTTL:    time.Duration(cfg.SessionExpiryDays) * 24 * time.Hour,
		bcryptCost:    cfg.BcryptCost,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// SessionClaims is the payload of the signed cookie token. It names the
// server-side session and nothing else.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionTTL returns the configured session lifetime, which is also the
// cookie max-age.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return user.User{}, apperrors.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return user.User{}, err
	}

	now := time.Now()
	newUser := &user.User{
		ID:             uuid.New(),
		Name:           in.Name,
		Email:          in.Email,
		PasswordHash:   string(hash),
		CreatedCourses: []uuid.UUID{},
		LikedCourses:   []uuid.UUID{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return user.User{}, err
	}

	return *newUser, nil
}

// Login verifies the credentials and issues a session. An unknown email and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (user.User, string, error) {
	if in.Email == "" || in.Password == "" {
		return user.User{}, "", apperrors.ErrInvalidCredentials
	}

	u, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return user.User{}, "", apperrors.ErrInvalidCredentials
		}
		return user.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, "", apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	record := &redis.SessionRecord{
		ID:        uuid.New(),
		UserID:    u.ID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Put(ctx, record); err != nil {
		return user.User{}, "", err
	}

	token, err := s.newSessionToken(record.ID, record.ExpiresAt)
	if err != nil {
		return user.User{}, "", err
	}

	return u, token, nil
}

// Logout destroys the session named by the cookie token. It always succeeds;
// a missing or garbled token just means there is nothing to destroy.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.parseSessionToken(token)
	if err != nil {
		return nil
	}
	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// CheckLogin resolves the cookie token against the server-side session and
// loads the user fresh, so a profile change after login is never served stale.
func (s *AuthService) CheckLogin(ctx context.Context, token string) (user.User, bool, error) {
	claims, err := s.parseSessionToken(token)
	if err != nil {
		return user.User{}, false, nil
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return user.User{}, false, nil
	}

	record, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return user.User{}, false, err
	}
	if record == nil || time.Now().After(record.ExpiresAt) {
		return user.User{}, false, nil
	}

	u, err := s.userRepo.GetByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return user.User{}, false, nil
		}
		return user.User{}, false, err
	}

	return u, true, nil
}

func (s *AuthService) newSessionToken(sessionID uuid.UUID, expiresAt time.Time) (string, error) {
	claims := SessionClaims{
		SessionID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.sessionSecret)
}

func (s *AuthService) parseSessionToken(token string) (SessionClaims, error) {
	if token == "" {
		return SessionClaims{}, apperrors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthorized
		}
		return s.sessionSecret, nil
	})
	if err != nil {
		return SessionClaims{}, apperrors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return SessionClaims{}, apperrors.ErrUnauthorized
	}

	return *claims, nil
}
